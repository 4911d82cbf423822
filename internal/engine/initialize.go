package engine

import (
	"context"

	"soloquest/internal/storage"
)

type InitResult struct {
	Seeded bool
	Reason string
}

type streakSeed struct {
	Type  StreakType
	Label string
}

func streakSeeds() []streakSeed {
	return []streakSeed{
		{StreakDaily, "Daily"},
		{StreakGym, "Gym"},
		{StreakDeepWork, "Deep Work"},
		{StreakReading, "Reading"},
	}
}

type achievementSeed struct {
	Key  string
	Name string
	Icon string
}

func achievementSeeds() []achievementSeed {
	return []achievementSeed{
		{"first_quest", "First Blood", "🗡️"},
		{"discipline_10", "Iron Routine", "⛓️"},
		{"strength_5", "Body Forged", "🏋️"},
		{"social_5", "Networked", "🤝"},
		{"creator_5", "Spark Ignited", "✨"},
		{"int_5", "Mind Palace", "🧠"},
		{"boss_clear", "Boss Slayer", "👑"},
		{"week_streak", "Seven-Day Chain", "🔥"},
		{"unicornslayer", "Unicorn", "🦄"},
	}
}

// InitializeCharacter seeds the character singleton, the five stats at
// level 1, the streak counters, the default achievement set, and an
// initial quest batch. No-ops if a character already exists.
func (s *Service) InitializeCharacter(ctx context.Context) (*InitResult, error) {
	var res *InitResult
	err := s.runTx(ctx, func(r *storage.Repos) error {
		existing, err := r.Characters.Get(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			res = &InitResult{Seeded: false, Reason: "already_initialized"}
			return nil
		}

		now := s.nowISO()
		today := s.today()

		if err := r.Characters.Insert(ctx, storage.Character{
			Name:         "Player",
			Class:        "Founder",
			OverallLevel: 1,
			LastUpdated:  now,
		}); err != nil {
			return err
		}

		for _, stat := range AllStats() {
			if err := r.Stats.Insert(ctx, storage.Stat{
				ID:    string(stat),
				Name:  stat.DisplayName(),
				Level: 1,
			}); err != nil {
				return err
			}
		}

		for _, seed := range streakSeeds() {
			if err := r.Streaks.Insert(ctx, storage.Streak{
				Type:  string(seed.Type),
				Label: seed.Label,
			}); err != nil {
				return err
			}
		}

		for _, seed := range achievementSeeds() {
			if err := r.Achievements.Insert(ctx, storage.Achievement{
				Key:  seed.Key,
				Name: seed.Name,
				Icon: seed.Icon,
			}); err != nil {
				return err
			}
		}

		for _, tmpl := range dailyQuestTemplates() {
			desc := tmpl.Description
			if _, err := r.Quests.Insert(ctx, storage.QuestInsert{
				Name:        tmpl.Name,
				Stat:        string(tmpl.Stat),
				XPReward:    tmpl.XPReward,
				Date:        today,
				Description: &desc,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		// Starter boss: one active boss exists from day one.
		deadline := today + "T23:59:59Z"
		if _, err := r.Quests.Insert(ctx, storage.QuestInsert{
			Name:      "Boss Fight: Ship Weekly Milestone",
			Stat:      string(StatDISC),
			XPReward:  150,
			Date:      today,
			IsBoss:    true,
			Deadline:  &deadline,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		res = &InitResult{Seeded: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
