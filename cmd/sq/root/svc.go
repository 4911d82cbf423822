package root

import (
	"context"

	"soloquest/internal/config"
	"soloquest/internal/engine"
	"soloquest/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return engine.NewService(db, engine.SystemClock(), loc), cleanup, nil
}
