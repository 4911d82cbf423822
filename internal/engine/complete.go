package engine

import (
	"context"
	"strconv"

	"soloquest/internal/storage"
)

// completionEffects names the bookkeeping side effects a completion
// pathway carries. The two entry points intentionally differ: completing
// a known quest advances the daily streak and unlocks achievements,
// logging a completion by template identity awards XP only.
type completionEffects struct {
	advanceDailyStreak bool
	unlockFirstQuest   bool
	evaluateMilestones bool
}

var (
	questCompletionEffects = completionEffects{
		advanceDailyStreak: true,
		unlockFirstQuest:   true,
		evaluateMilestones: true,
	}
	loggedCompletionEffects = completionEffects{}
)

type CompleteResult struct {
	QuestID          int64
	AlreadyCompleted bool
	XP               *XPResult
	Unlocked         []string
}

// CompleteQuest completes a known quest by identity. Re-completion is a
// no-op reported distinctly via AlreadyCompleted.
func (s *Service) CompleteQuest(ctx context.Context, questID int64) (*CompleteResult, error) {
	var res *CompleteResult
	err := s.runTx(ctx, func(r *storage.Repos) error {
		if _, err := s.requireCharacter(ctx, r); err != nil {
			return err
		}

		q, err := r.Quests.Get(ctx, questID)
		if err != nil {
			return err
		}
		if q == nil {
			return NotFoundError{Entity: "quest", Key: strconv.FormatInt(questID, 10)}
		}
		if q.Completed {
			res = &CompleteResult{QuestID: q.ID, AlreadyCompleted: true}
			return nil
		}

		if err := r.Quests.MarkCompleted(ctx, q.ID); err != nil {
			return err
		}

		xpRes, err := s.applyStatDelta(ctx, r, Stat(q.Stat), signedReward(q))
		if err != nil {
			return err
		}

		unlocked, err := s.settleCompletion(ctx, r, q, questCompletionEffects)
		if err != nil {
			return err
		}

		res = &CompleteResult{QuestID: q.ID, XP: xpRes, Unlocked: unlocked}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type LogQuestInput struct {
	Name        string
	Stat        Stat
	XPReward    int
	IsPenalty   bool
	Description *string
	Lore        *string
	Note        *string
}

type LogResult struct {
	QuestID   int64
	Duplicate bool
	Created   bool
	XP        *XPResult
}

// LogQuest records a completion directly from a template identity,
// idempotent against the same logical quest occurring twice on the same
// calendar date. An existing uncompleted instance is patched rather than
// duplicated.
func (s *Service) LogQuest(ctx context.Context, in LogQuestInput) (*LogResult, error) {
	var res *LogResult
	err := s.runTx(ctx, func(r *storage.Repos) error {
		if _, err := s.requireCharacter(ctx, r); err != nil {
			return err
		}

		today := s.today()
		existing, err := r.Quests.FindByNameOnDate(ctx, in.Name, today)
		if err != nil {
			return err
		}
		if existing != nil && existing.Completed {
			res = &LogResult{QuestID: existing.ID, Duplicate: true}
			return nil
		}

		var q *storage.Quest
		created := false
		if existing != nil {
			if err := r.Quests.MarkCompletedWithProof(ctx, existing.ID, in.Note); err != nil {
				return err
			}
			q = existing
		} else {
			id, err := r.Quests.Insert(ctx, storage.QuestInsert{
				Name:        in.Name,
				Stat:        string(in.Stat),
				XPReward:    in.XPReward,
				Completed:   true,
				Date:        today,
				Description: in.Description,
				Lore:        in.Lore,
				Proof:       in.Note,
				IsPenalty:   in.IsPenalty,
				CreatedAt:   s.nowISO(),
			})
			if err != nil {
				return err
			}
			q = &storage.Quest{ID: id, Stat: string(in.Stat), XPReward: in.XPReward, IsPenalty: in.IsPenalty}
			created = true
		}

		xpRes, err := s.applyStatDelta(ctx, r, Stat(q.Stat), signedReward(q))
		if err != nil {
			return err
		}

		if _, err := s.settleCompletion(ctx, r, q, loggedCompletionEffects); err != nil {
			return err
		}

		res = &LogResult{QuestID: q.ID, Created: created, XP: xpRes}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// signedReward converts a quest's reward into the signed ledger delta.
func signedReward(q *storage.Quest) int {
	if q.IsPenalty {
		reward := q.XPReward
		if reward < 0 {
			reward = -reward
		}
		return -reward
	}
	return q.XPReward
}

// settleCompletion applies the pathway's named side-effect set: daily
// streak advance, first-quest unlock, milestone achievement evaluation.
func (s *Service) settleCompletion(ctx context.Context, r *storage.Repos, q *storage.Quest, effects completionEffects) ([]string, error) {
	var unlocked []string

	if effects.advanceDailyStreak {
		daily, err := r.Streaks.Get(ctx, string(StreakDaily))
		if err != nil {
			return nil, err
		}
		if daily != nil {
			if err := r.Streaks.UpdateCount(ctx, daily.Type, daily.Count+1, s.today()); err != nil {
				return nil, err
			}
		}
	}

	if effects.unlockFirstQuest {
		first, err := r.Achievements.Get(ctx, "first_quest")
		if err != nil {
			return nil, err
		}
		if first != nil && !first.Unlocked {
			if err := r.Achievements.Unlock(ctx, first.Key, s.nowISO()); err != nil {
				return nil, err
			}
			unlocked = append(unlocked, first.Key)
		}
	}

	if effects.evaluateMilestones {
		keys, err := s.evaluateMilestones(ctx, r, q)
		if err != nil {
			return nil, err
		}
		unlocked = append(unlocked, keys...)
	}

	return unlocked, nil
}

