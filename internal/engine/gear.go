package engine

import (
	"context"
	"strconv"

	"soloquest/internal/storage"
)

// Equipment and abilities are external collaborators: the engine stores
// them and sums their bonuses into the dashboard, nothing more.

func (s *Service) ListEquipment(ctx context.Context) ([]storage.EquipmentItem, error) {
	return s.Repos().Equipment.ListAll(ctx)
}

func (s *Service) AddEquipment(ctx context.Context, item storage.EquipmentItem) (int64, error) {
	var id int64
	err := s.runTx(ctx, func(r *storage.Repos) error {
		var err error
		id, err = r.Equipment.Insert(ctx, item)
		return err
	})
	return id, err
}

func (s *Service) SetEquipped(ctx context.Context, id int64, equipped bool) error {
	return s.runTx(ctx, func(r *storage.Repos) error {
		item, err := r.Equipment.Get(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return NotFoundError{Entity: "equipment", Key: strconv.FormatInt(id, 10)}
		}
		return r.Equipment.SetEquipped(ctx, id, equipped)
	})
}

func (s *Service) ListAbilities(ctx context.Context) ([]storage.Ability, error) {
	return s.Repos().Abilities.ListAll(ctx)
}

func (s *Service) AddAbility(ctx context.Context, a storage.Ability) (int64, error) {
	var id int64
	err := s.runTx(ctx, func(r *storage.Repos) error {
		var err error
		id, err = r.Abilities.Insert(ctx, a)
		return err
	})
	return id, err
}
