package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const CharacterKey = "main"

type CharacterRepo struct {
	db DBTX
}

func NewCharacterRepo(db DBTX) *CharacterRepo {
	return &CharacterRepo{db: db}
}

// Get returns the singleton character, or nil if the system is
// uninitialized.
func (r *CharacterRepo) Get(ctx context.Context) (*Character, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, name, class, overall_level, overall_total_xp, last_updated
		FROM character
		WHERE key = ?
	`, CharacterKey)

	var c Character
	if err := row.Scan(&c.Key, &c.Name, &c.Class, &c.OverallLevel, &c.OverallTotalXP, &c.LastUpdated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("character get: %w", err)
	}
	return &c, nil
}

func (r *CharacterRepo) Insert(ctx context.Context, c Character) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO character (key, name, class, overall_level, overall_total_xp, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
	`, CharacterKey, c.Name, c.Class, c.OverallLevel, c.OverallTotalXP, c.LastUpdated)
	if err != nil {
		return fmt.Errorf("character insert: %w", err)
	}
	return nil
}

// UpdateProgress refreshes the cached overall progression fields.
func (r *CharacterRepo) UpdateProgress(ctx context.Context, overallLevel, overallTotalXP int, lastUpdated string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE character
		SET overall_level = ?, overall_total_xp = ?, last_updated = ?
		WHERE key = ?
	`, overallLevel, overallTotalXP, lastUpdated, CharacterKey)
	if err != nil {
		return fmt.Errorf("character update progress: %w", err)
	}
	return nil
}
