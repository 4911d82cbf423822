package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type StreakRepo struct {
	db DBTX
}

func NewStreakRepo(db DBTX) *StreakRepo {
	return &StreakRepo{db: db}
}

func (r *StreakRepo) Get(ctx context.Context, streakType string) (*Streak, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT type, label, count, last_updated FROM streaks WHERE type = ?
	`, streakType)

	var s Streak
	var last sql.NullString
	if err := row.Scan(&s.Type, &s.Label, &s.Count, &last); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("streak get: %w", err)
	}
	if last.Valid {
		v := last.String
		s.LastUpdated = &v
	}
	return &s, nil
}

func (r *StreakRepo) ListAll(ctx context.Context) ([]Streak, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT type, label, count, last_updated FROM streaks ORDER BY type ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("streak list: %w", err)
	}
	defer rows.Close()

	var out []Streak
	for rows.Next() {
		var s Streak
		var last sql.NullString
		if err := rows.Scan(&s.Type, &s.Label, &s.Count, &last); err != nil {
			return nil, fmt.Errorf("streak scan: %w", err)
		}
		if last.Valid {
			v := last.String
			s.LastUpdated = &v
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("streak rows: %w", err)
	}
	return out, nil
}

func (r *StreakRepo) Insert(ctx context.Context, s Streak) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO streaks (type, label, count, last_updated) VALUES (?, ?, ?, ?)
	`, s.Type, s.Label, s.Count, s.LastUpdated)
	if err != nil {
		return fmt.Errorf("streak insert: %w", err)
	}
	return nil
}

func (r *StreakRepo) UpdateCount(ctx context.Context, streakType string, count int, lastUpdated string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE streaks SET count = ?, last_updated = ? WHERE type = ?
	`, count, lastUpdated, streakType)
	if err != nil {
		return fmt.Errorf("streak update count: %w", err)
	}
	return nil
}
