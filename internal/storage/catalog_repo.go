package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CatalogRepo struct {
	db DBTX
}

func NewCatalogRepo(db DBTX) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) GetByName(ctx context.Context, name string) (*CatalogEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, stat, xp, is_penalty, category, description, lore
		FROM quest_catalog
		WHERE name = ?
	`, name)
	return scanCatalogRow(row)
}

func (r *CatalogRepo) ListAll(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, stat, xp, is_penalty, category, description, lore
		FROM quest_catalog
		ORDER BY category ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}
	defer rows.Close()

	var out []CatalogEntry
	for rows.Next() {
		e, err := scanCatalogRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows: %w", err)
	}
	return out, nil
}

func (r *CatalogRepo) Upsert(ctx context.Context, e CatalogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quest_catalog (name, stat, xp, is_penalty, category, description, lore)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			stat = excluded.stat,
			xp = excluded.xp,
			is_penalty = excluded.is_penalty,
			category = excluded.category,
			description = excluded.description,
			lore = excluded.lore
	`, e.Name, e.Stat, e.XP, boolToInt(e.IsPenalty), e.Category, e.Description, e.Lore)
	if err != nil {
		return fmt.Errorf("catalog upsert: %w", err)
	}
	return nil
}

func scanCatalogRow(row scanner) (*CatalogEntry, error) {
	var (
		e           CatalogEntry
		isPenalty   int
		description sql.NullString
		lore        sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Stat, &e.XP, &isPenalty, &e.Category, &description, &lore); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog scan: %w", err)
	}
	e.IsPenalty = isPenalty != 0
	if description.Valid {
		v := description.String
		e.Description = &v
	}
	if lore.Valid {
		v := lore.String
		e.Lore = &v
	}
	return &e, nil
}
