package engine

import (
	"context"

	"soloquest/internal/storage"
)

// StatView is a stat with its equipment bonus applied for display.
// EffectiveLevel is derived at read time; bonuses never touch the stored
// stat records.
type StatView struct {
	storage.Stat
	Bonus          int
	EffectiveLevel int
}

type DashboardSnapshot struct {
	Character          *storage.Character
	Stats              []StatView
	Streaks            []storage.Streak
	QuestsToday        []storage.Quest
	ActiveBoss         *storage.Quest
	Achievements       []storage.Achievement
	OverallLevel       int
	OverallXPInLevel   int
	OverallNextLevelXP int
	EquipmentBonuses   map[Stat]int
	Today              string
}

// Dashboard assembles the read-only aggregate view. A nil Character means
// the system is uninitialized; everything else degrades to empty.
func (s *Service) Dashboard(ctx context.Context) (*DashboardSnapshot, error) {
	var snap *DashboardSnapshot
	err := s.runTx(ctx, func(r *storage.Repos) error {
		today := s.today()

		character, err := r.Characters.Get(ctx)
		if err != nil {
			return err
		}
		stats, err := r.Stats.ListAll(ctx)
		if err != nil {
			return err
		}
		streaks, err := r.Streaks.ListAll(ctx)
		if err != nil {
			return err
		}
		questsToday, err := r.Quests.ListOnDate(ctx, today)
		if err != nil {
			return err
		}
		activeBoss, err := r.Quests.ActiveBoss(ctx)
		if err != nil {
			return err
		}
		achievements, err := r.Achievements.ListAll(ctx)
		if err != nil {
			return err
		}
		equipped, err := r.Equipment.ListEquipped(ctx)
		if err != nil {
			return err
		}

		bonuses := make(map[Stat]int)
		for _, item := range equipped {
			for _, b := range item.StatBonuses {
				bonuses[Stat(b.Stat)] += b.Value
			}
		}

		byID := make(map[Stat]storage.Stat, len(stats))
		totalXP := 0
		for _, st := range stats {
			byID[Stat(st.ID)] = st
			totalXP += st.TotalXP
		}

		// Fixed display order, independent of storage ordering.
		views := make([]StatView, 0, len(stats))
		for _, id := range AllStats() {
			st, ok := byID[id]
			if !ok {
				continue
			}
			bonus := bonuses[id]
			views = append(views, StatView{Stat: st, Bonus: bonus, EffectiveLevel: st.Level + bonus})
		}

		level, inLevel, next := CharacterProgress(totalXP)

		snap = &DashboardSnapshot{
			Character:          character,
			Stats:              views,
			Streaks:            streaks,
			QuestsToday:        questsToday,
			ActiveBoss:         activeBoss,
			Achievements:       achievements,
			OverallLevel:       level,
			OverallXPInLevel:   inLevel,
			OverallNextLevelXP: next,
			EquipmentBonuses:   bonuses,
			Today:              today,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
