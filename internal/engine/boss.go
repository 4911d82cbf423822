package engine

import (
	"context"

	"soloquest/internal/storage"
)

type BossInput struct {
	Name        string
	Stat        Stat
	XPReward    int
	Deadline    *string
	TargetValue *int
	Lore        *string
}

type BossResult struct {
	QuestID   int64
	RetiredID *int64
}

// UpsertBossFight creates a new boss quest, force-retiring any currently
// active boss first so at most one uncompleted boss ever exists.
// Retirement marks the old boss completed without awarding XP.
func (s *Service) UpsertBossFight(ctx context.Context, in BossInput) (*BossResult, error) {
	var res *BossResult
	err := s.runTx(ctx, func(r *storage.Repos) error {
		if _, err := s.requireCharacter(ctx, r); err != nil {
			return err
		}

		var retiredID *int64
		active, err := r.Quests.ActiveBoss(ctx)
		if err != nil {
			return err
		}
		if active != nil {
			if err := r.Quests.MarkCompleted(ctx, active.ID); err != nil {
				return err
			}
			id := active.ID
			retiredID = &id
		}

		var current *int
		if in.TargetValue != nil {
			zero := 0
			current = &zero
		}
		id, err := r.Quests.Insert(ctx, storage.QuestInsert{
			Name:         in.Name,
			Stat:         string(in.Stat),
			XPReward:     in.XPReward,
			Date:         s.today(),
			Lore:         in.Lore,
			IsBoss:       true,
			Deadline:     in.Deadline,
			CurrentValue: current,
			TargetValue:  in.TargetValue,
			CreatedAt:    s.nowISO(),
		})
		if err != nil {
			return err
		}

		res = &BossResult{QuestID: id, RetiredID: retiredID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateBossProgress patches the progress counter of the active boss.
func (s *Service) UpdateBossProgress(ctx context.Context, currentValue int) (*storage.Quest, error) {
	var boss *storage.Quest
	err := s.runTx(ctx, func(r *storage.Repos) error {
		active, err := r.Quests.ActiveBoss(ctx)
		if err != nil {
			return err
		}
		if active == nil {
			return NotFoundError{Entity: "boss", Key: "active"}
		}
		if err := r.Quests.UpdateCurrentValue(ctx, active.ID, currentValue); err != nil {
			return err
		}
		active.CurrentValue = &currentValue
		boss = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return boss, nil
}
