package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type AbilityRepo struct {
	db DBTX
}

func NewAbilityRepo(db DBTX) *AbilityRepo {
	return &AbilityRepo{db: db}
}

func (r *AbilityRepo) ListAll(ctx context.Context) ([]Ability, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, icon, description, unlocked, stat_bonuses
		FROM abilities
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ability list: %w", err)
	}
	defer rows.Close()

	var out []Ability
	for rows.Next() {
		a, err := scanAbilityRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ability rows: %w", err)
	}
	return out, nil
}

func (r *AbilityRepo) Insert(ctx context.Context, a Ability) (int64, error) {
	bonuses, err := marshalBonuses(a.StatBonuses)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO abilities (name, icon, description, unlocked, stat_bonuses)
		VALUES (?, ?, ?, ?, ?)
	`, a.Name, a.Icon, a.Description, boolToInt(a.Unlocked), bonuses)
	if err != nil {
		return 0, fmt.Errorf("ability insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ability last insert id: %w", err)
	}
	return id, nil
}

func (r *AbilityRepo) SetUnlocked(ctx context.Context, id int64, unlocked bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE abilities SET unlocked = ? WHERE id = ?`, boolToInt(unlocked), id)
	if err != nil {
		return fmt.Errorf("ability set unlocked: %w", err)
	}
	return nil
}

func scanAbilityRow(row scanner) (*Ability, error) {
	var (
		a           Ability
		description sql.NullString
		unlocked    int
		bonusesRaw  sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Icon, &description, &unlocked, &bonusesRaw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ability scan: %w", err)
	}
	if description.Valid {
		v := description.String
		a.Description = &v
	}
	a.Unlocked = unlocked != 0
	bonuses, err := unmarshalBonuses(bonusesRaw)
	if err != nil {
		return nil, err
	}
	a.StatBonuses = bonuses
	return &a, nil
}
