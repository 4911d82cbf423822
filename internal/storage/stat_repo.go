package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type StatRepo struct {
	db DBTX
}

func NewStatRepo(db DBTX) *StatRepo {
	return &StatRepo{db: db}
}

func (r *StatRepo) Get(ctx context.Context, statID string) (*Stat, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT stat_id, name, level, xp, total_xp FROM stats WHERE stat_id = ?
	`, statID)

	var s Stat
	if err := row.Scan(&s.ID, &s.Name, &s.Level, &s.XP, &s.TotalXP); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("stat get: %w", err)
	}
	return &s, nil
}

func (r *StatRepo) ListAll(ctx context.Context) ([]Stat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT stat_id, name, level, xp, total_xp FROM stats ORDER BY stat_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("stat list: %w", err)
	}
	defer rows.Close()

	var out []Stat
	for rows.Next() {
		var s Stat
		if err := rows.Scan(&s.ID, &s.Name, &s.Level, &s.XP, &s.TotalXP); err != nil {
			return nil, fmt.Errorf("stat scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stat rows: %w", err)
	}
	return out, nil
}

func (r *StatRepo) Insert(ctx context.Context, s Stat) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stats (stat_id, name, level, xp, total_xp) VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.Name, s.Level, s.XP, s.TotalXP)
	if err != nil {
		return fmt.Errorf("stat insert: %w", err)
	}
	return nil
}

func (r *StatRepo) UpdateProgress(ctx context.Context, statID string, level, xp, totalXP int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stats SET level = ?, xp = ?, total_xp = ? WHERE stat_id = ?
	`, level, xp, totalXP, statID)
	if err != nil {
		return fmt.Errorf("stat update progress: %w", err)
	}
	return nil
}
