package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

func (r *AchievementRepo) Get(ctx context.Context, key string) (*Achievement, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, name, icon, unlocked, unlocked_at, condition
		FROM achievements
		WHERE key = ?
	`, key)
	return scanAchievementRow(row)
}

func (r *AchievementRepo) ListAll(ctx context.Context) ([]Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, name, icon, unlocked, unlocked_at, condition
		FROM achievements
		ORDER BY key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		a, err := scanAchievementRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}

func (r *AchievementRepo) Insert(ctx context.Context, a Achievement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (key, name, icon, unlocked, unlocked_at, condition)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.Key, a.Name, a.Icon, boolToInt(a.Unlocked), a.UnlockedAt, a.Condition)
	if err != nil {
		return fmt.Errorf("achievement insert: %w", err)
	}
	return nil
}

// Unlock flips the one-way unlocked flag. A WHERE guard keeps unlocked_at
// from being overwritten on repeat calls.
func (r *AchievementRepo) Unlock(ctx context.Context, key string, unlockedAt string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE achievements
		SET unlocked = 1, unlocked_at = ?
		WHERE key = ? AND unlocked = 0
	`, unlockedAt, key)
	if err != nil {
		return fmt.Errorf("achievement unlock: %w", err)
	}
	return nil
}

func (r *AchievementRepo) UpdateMeta(ctx context.Context, key, name, icon string, condition *string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE achievements SET name = ?, icon = ?, condition = ? WHERE key = ?
	`, name, icon, condition, key)
	if err != nil {
		return fmt.Errorf("achievement update meta: %w", err)
	}
	return nil
}

func scanAchievementRow(row scanner) (*Achievement, error) {
	var (
		a          Achievement
		unlocked   int
		unlockedAt sql.NullString
		condition  sql.NullString
	)
	if err := row.Scan(&a.Key, &a.Name, &a.Icon, &unlocked, &unlockedAt, &condition); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("achievement scan: %w", err)
	}
	a.Unlocked = unlocked != 0
	if unlockedAt.Valid {
		v := unlockedAt.String
		a.UnlockedAt = &v
	}
	if condition.Valid {
		v := condition.String
		a.Condition = &v
	}
	return &a, nil
}
