package engine

import (
	"context"

	"soloquest/internal/storage"
)

// UpsertCatalogEntry adds or replaces a reusable quest template in the
// catalog, keyed by name.
func (s *Service) UpsertCatalogEntry(ctx context.Context, e storage.CatalogEntry) error {
	return s.runTx(ctx, func(r *storage.Repos) error {
		return r.Catalog.Upsert(ctx, e)
	})
}

func (s *Service) ListCatalog(ctx context.Context) ([]storage.CatalogEntry, error) {
	return s.Repos().Catalog.ListAll(ctx)
}

// LogFromCatalog logs a completion of a catalog template by name. The
// catalog stores penalties as negative XP; the logged quest carries the
// magnitude plus the penalty flag.
func (s *Service) LogFromCatalog(ctx context.Context, name string, note *string) (*LogResult, error) {
	entry, err := s.Repos().Catalog.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, NotFoundError{Entity: "catalog entry", Key: name}
	}

	xp := entry.XP
	if xp < 0 {
		xp = -xp
	}
	stat, ok := ParseStat(entry.Stat)
	if !ok {
		stat = Stat(entry.Stat)
	}
	return s.LogQuest(ctx, LogQuestInput{
		Name:        entry.Name,
		Stat:        stat,
		XPReward:    xp,
		IsPenalty:   entry.IsPenalty,
		Description: entry.Description,
		Lore:        entry.Lore,
		Note:        note,
	})
}
