package engine

import (
	"context"

	"soloquest/internal/storage"
)

// milestoneDef pairs a seeded achievement key with its unlock predicate.
// Predicates only observe state; unlocking is one-way and idempotent, so
// re-evaluating after every completion is safe.
type milestoneDef struct {
	Key    string
	Unlock func(ev *milestoneEval) bool
}

type milestoneEval struct {
	statLevels map[Stat]int
	dailyCount int
	bossClear  bool
}

func milestoneDefs() []milestoneDef {
	statMilestone := func(stat Stat, level int) func(ev *milestoneEval) bool {
		return func(ev *milestoneEval) bool {
			return ev.statLevels[stat] >= level
		}
	}

	return []milestoneDef{
		{Key: "int_5", Unlock: statMilestone(StatINT, 5)},
		{Key: "discipline_10", Unlock: statMilestone(StatDISC, 10)},
		{Key: "strength_5", Unlock: statMilestone(StatSTR, 5)},
		{Key: "social_5", Unlock: statMilestone(StatSOC, 5)},
		{Key: "creator_5", Unlock: statMilestone(StatCRE, 5)},
		{Key: "week_streak", Unlock: func(ev *milestoneEval) bool { return ev.dailyCount >= 7 }},
		{Key: "boss_clear", Unlock: func(ev *milestoneEval) bool { return ev.bossClear }},
	}
}

// evaluateMilestones unlocks any milestone achievements whose conditions
// now hold. justCompleted carries the quest that triggered the evaluation;
// a boss there counts as a boss clear (a boss retired by a new boss upsert
// does not pass through here).
func (s *Service) evaluateMilestones(ctx context.Context, r *storage.Repos, justCompleted *storage.Quest) ([]string, error) {
	stats, err := r.Stats.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ev := &milestoneEval{statLevels: make(map[Stat]int, len(stats))}
	for _, st := range stats {
		ev.statLevels[Stat(st.ID)] = st.Level
	}

	daily, err := r.Streaks.Get(ctx, string(StreakDaily))
	if err != nil {
		return nil, err
	}
	if daily != nil {
		ev.dailyCount = daily.Count
	}
	ev.bossClear = justCompleted != nil && justCompleted.IsBoss

	var unlocked []string
	for _, def := range milestoneDefs() {
		row, err := r.Achievements.Get(ctx, def.Key)
		if err != nil {
			return nil, err
		}
		if row == nil || row.Unlocked {
			continue
		}
		if !def.Unlock(ev) {
			continue
		}
		if err := r.Achievements.Unlock(ctx, def.Key, s.nowISO()); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, def.Key)
	}
	return unlocked, nil
}

// AddAchievement registers a new locked achievement. No-op if the key
// already exists.
func (s *Service) AddAchievement(ctx context.Context, key, name, icon string) (bool, error) {
	created := false
	err := s.runTx(ctx, func(r *storage.Repos) error {
		existing, err := r.Achievements.Get(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		if err := r.Achievements.Insert(ctx, storage.Achievement{Key: key, Name: name, Icon: icon}); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// UpdateAchievement patches an achievement's display fields. The unlocked
// flag is not touchable through this path.
func (s *Service) UpdateAchievement(ctx context.Context, key string, name, icon, condition *string) error {
	return s.runTx(ctx, func(r *storage.Repos) error {
		a, err := r.Achievements.Get(ctx, key)
		if err != nil {
			return err
		}
		if a == nil {
			return NotFoundError{Entity: "achievement", Key: key}
		}
		if name != nil {
			a.Name = *name
		}
		if icon != nil {
			a.Icon = *icon
		}
		if condition != nil {
			a.Condition = condition
		}
		return r.Achievements.UpdateMeta(ctx, a.Key, a.Name, a.Icon, a.Condition)
	})
}
