package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repos are bound to a DBTX so the same repo code runs standalone or
// inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repos bundles one repo per table, all bound to the same DBTX.
type Repos struct {
	Characters   *CharacterRepo
	Stats        *StatRepo
	Streaks      *StreakRepo
	Quests       *QuestRepo
	Catalog      *CatalogRepo
	Achievements *AchievementRepo
	Equipment    *EquipmentRepo
	Abilities    *AbilityRepo
}

func NewRepos(db DBTX) *Repos {
	return &Repos{
		Characters:   NewCharacterRepo(db),
		Stats:        NewStatRepo(db),
		Streaks:      NewStreakRepo(db),
		Quests:       NewQuestRepo(db),
		Catalog:      NewCatalogRepo(db),
		Achievements: NewAchievementRepo(db),
		Equipment:    NewEquipmentRepo(db),
		Abilities:    NewAbilityRepo(db),
	}
}

// WithTx runs fn inside a SQL transaction with a transaction-scoped Repos.
func WithTx(ctx context.Context, db *sql.DB, fn func(r *Repos) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(NewRepos(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}
