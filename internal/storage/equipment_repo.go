package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type EquipmentRepo struct {
	db DBTX
}

func NewEquipmentRepo(db DBTX) *EquipmentRepo {
	return &EquipmentRepo{db: db}
}

func (r *EquipmentRepo) Get(ctx context.Context, id int64) (*EquipmentItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, slot, icon, description, equipped, stat_bonuses
		FROM equipment
		WHERE id = ?
	`, id)
	return scanEquipmentRow(row)
}

func (r *EquipmentRepo) ListAll(ctx context.Context) ([]EquipmentItem, error) {
	return r.list(ctx, `
		SELECT id, name, slot, icon, description, equipped, stat_bonuses
		FROM equipment
		ORDER BY slot ASC, name ASC
	`)
}

// ListEquipped returns only the items whose bonuses apply to the dashboard.
func (r *EquipmentRepo) ListEquipped(ctx context.Context) ([]EquipmentItem, error) {
	return r.list(ctx, `
		SELECT id, name, slot, icon, description, equipped, stat_bonuses
		FROM equipment
		WHERE equipped = 1
		ORDER BY slot ASC, name ASC
	`)
}

func (r *EquipmentRepo) Insert(ctx context.Context, item EquipmentItem) (int64, error) {
	bonuses, err := marshalBonuses(item.StatBonuses)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO equipment (name, slot, icon, description, equipped, stat_bonuses)
		VALUES (?, ?, ?, ?, ?, ?)
	`, item.Name, item.Slot, item.Icon, item.Description, boolToInt(item.Equipped), bonuses)
	if err != nil {
		return 0, fmt.Errorf("equipment insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("equipment last insert id: %w", err)
	}
	return id, nil
}

func (r *EquipmentRepo) SetEquipped(ctx context.Context, id int64, equipped bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE equipment SET equipped = ? WHERE id = ?`, boolToInt(equipped), id)
	if err != nil {
		return fmt.Errorf("equipment set equipped: %w", err)
	}
	return nil
}

func (r *EquipmentRepo) list(ctx context.Context, query string, args ...any) ([]EquipmentItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("equipment list: %w", err)
	}
	defer rows.Close()

	var out []EquipmentItem
	for rows.Next() {
		item, err := scanEquipmentRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("equipment rows: %w", err)
	}
	return out, nil
}

func scanEquipmentRow(row scanner) (*EquipmentItem, error) {
	var (
		item        EquipmentItem
		description sql.NullString
		equipped    int
		bonusesRaw  sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Slot, &item.Icon, &description, &equipped, &bonusesRaw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("equipment scan: %w", err)
	}
	if description.Valid {
		v := description.String
		item.Description = &v
	}
	item.Equipped = equipped != 0
	bonuses, err := unmarshalBonuses(bonusesRaw)
	if err != nil {
		return nil, err
	}
	item.StatBonuses = bonuses
	return &item, nil
}

func marshalBonuses(bonuses []StatBonus) (*string, error) {
	if len(bonuses) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(bonuses)
	if err != nil {
		return nil, fmt.Errorf("marshal stat bonuses: %w", err)
	}
	s := string(data)
	return &s, nil
}

func unmarshalBonuses(raw sql.NullString) ([]StatBonus, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var bonuses []StatBonus
	if err := json.Unmarshal([]byte(raw.String), &bonuses); err != nil {
		return nil, fmt.Errorf("unmarshal stat bonuses: %w", err)
	}
	return bonuses, nil
}
