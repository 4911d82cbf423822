package engine

import (
	"context"
	"strconv"

	"soloquest/internal/storage"
)

// ListAllQuests returns every quest instance, newest date first.
func (s *Service) ListAllQuests(ctx context.Context) ([]storage.Quest, error) {
	return s.Repos().Quests.ListAll(ctx)
}

func (s *Service) UpdateQuestDescription(ctx context.Context, questID int64, description string) error {
	return s.runTx(ctx, func(r *storage.Repos) error {
		q, err := r.Quests.Get(ctx, questID)
		if err != nil {
			return err
		}
		if q == nil {
			return NotFoundError{Entity: "quest", Key: strconv.FormatInt(questID, 10)}
		}
		return r.Quests.UpdateDescription(ctx, questID, description)
	})
}

// AddQuestToday inserts an uncompleted ad-hoc quest for today's date.
// No-op if a quest of the same name already exists today.
func (s *Service) AddQuestToday(ctx context.Context, name string, stat Stat, xpReward int, isPenalty bool, description *string) (bool, error) {
	created := false
	err := s.runTx(ctx, func(r *storage.Repos) error {
		if _, err := s.requireCharacter(ctx, r); err != nil {
			return err
		}
		today := s.today()
		existing, err := r.Quests.FindByNameOnDate(ctx, name, today)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		_, err = r.Quests.Insert(ctx, storage.QuestInsert{
			Name:        name,
			Stat:        string(stat),
			XPReward:    xpReward,
			Date:        today,
			Description: description,
			IsPenalty:   isPenalty,
			CreatedAt:   s.nowISO(),
		})
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}
