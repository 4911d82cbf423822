package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

type QuestInsert struct {
	Name         string
	Stat         string
	XPReward     int
	Completed    bool
	Date         string
	Description  *string
	Lore         *string
	Proof        *string
	IsBoss       bool
	IsPenalty    bool
	Deadline     *string
	CurrentValue *int
	TargetValue  *int
	CreatedAt    string
}

const questColumns = `id, name, stat, xp_reward, completed, date, description, lore, proof,
	is_boss, is_penalty, deadline, current_value, target_value, created_at`

func (r *QuestRepo) Insert(ctx context.Context, in QuestInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (
			name, stat, xp_reward, completed, date, description, lore, proof,
			is_boss, is_penalty, deadline, current_value, target_value, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Stat, in.XPReward, boolToInt(in.Completed), in.Date, in.Description, in.Lore, in.Proof,
		boolToInt(in.IsBoss), boolToInt(in.IsPenalty), in.Deadline, in.CurrentValue, in.TargetValue, in.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("quest insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quest last insert id: %w", err)
	}
	return id, nil
}

func (r *QuestRepo) Get(ctx context.Context, id int64) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
	return scanQuestRow(row)
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	return r.list(ctx, `SELECT `+questColumns+` FROM quests ORDER BY date DESC, id DESC`)
}

// ListOnDate returns the non-boss quest instances belonging to one calendar
// date.
func (r *QuestRepo) ListOnDate(ctx context.Context, date string) ([]Quest, error) {
	return r.list(ctx, `
		SELECT `+questColumns+` FROM quests
		WHERE date = ? AND is_boss = 0
		ORDER BY id ASC
	`, date)
}

func (r *QuestRepo) CountOnDate(ctx context.Context, date string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM quests WHERE date = ? AND is_boss = 0
	`, date)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("quest count on date: %w", err)
	}
	return n, nil
}

// FindByNameOnDate locates a non-boss quest instance by its template
// identity (name + date).
func (r *QuestRepo) FindByNameOnDate(ctx context.Context, name, date string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+questColumns+` FROM quests
		WHERE name = ? AND date = ? AND is_boss = 0
		LIMIT 1
	`, name, date)
	return scanQuestRow(row)
}

// ActiveBoss returns the single uncompleted boss quest, or nil.
func (r *QuestRepo) ActiveBoss(ctx context.Context) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+questColumns+` FROM quests
		WHERE is_boss = 1 AND completed = 0
		ORDER BY id DESC
		LIMIT 1
	`)
	return scanQuestRow(row)
}

func (r *QuestRepo) MarkCompleted(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE quests SET completed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("quest mark completed: %w", err)
	}
	return nil
}

// MarkCompletedWithProof completes a quest and records optional proof text
// in one statement.
func (r *QuestRepo) MarkCompletedWithProof(ctx context.Context, id int64, proof *string) error {
	if proof == nil {
		return r.MarkCompleted(ctx, id)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE quests SET completed = 1, proof = ? WHERE id = ?`, *proof, id)
	if err != nil {
		return fmt.Errorf("quest mark completed with proof: %w", err)
	}
	return nil
}

func (r *QuestRepo) UpdateDescription(ctx context.Context, id int64, description string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE quests SET description = ? WHERE id = ?`, description, id)
	if err != nil {
		return fmt.Errorf("quest update description: %w", err)
	}
	return nil
}

func (r *QuestRepo) UpdateCurrentValue(ctx context.Context, id int64, currentValue int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE quests SET current_value = ? WHERE id = ?`, currentValue, id)
	if err != nil {
		return fmt.Errorf("quest update current value: %w", err)
	}
	return nil
}

func (r *QuestRepo) list(ctx context.Context, query string, args ...any) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func scanQuestRow(row scanner) (*Quest, error) {
	var (
		id           int64
		name         string
		stat         string
		xpReward     int
		completed    int
		date         string
		description  sql.NullString
		lore         sql.NullString
		proof        sql.NullString
		isBoss       int
		isPenalty    int
		deadline     sql.NullString
		currentValue sql.NullInt64
		targetValue  sql.NullInt64
		createdAt    string
	)

	if err := row.Scan(
		&id, &name, &stat, &xpReward, &completed, &date, &description, &lore, &proof,
		&isBoss, &isPenalty, &deadline, &currentValue, &targetValue, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest scan: %w", err)
	}

	q := Quest{
		ID:        id,
		Name:      name,
		Stat:      stat,
		XPReward:  xpReward,
		Completed: completed != 0,
		Date:      date,
		IsBoss:    isBoss != 0,
		IsPenalty: isPenalty != 0,
		CreatedAt: createdAt,
	}
	if description.Valid {
		v := description.String
		q.Description = &v
	}
	if lore.Valid {
		v := lore.String
		q.Lore = &v
	}
	if proof.Valid {
		v := proof.String
		q.Proof = &v
	}
	if deadline.Valid {
		v := deadline.String
		q.Deadline = &v
	}
	if currentValue.Valid {
		v := int(currentValue.Int64)
		q.CurrentValue = &v
	}
	if targetValue.Valid {
		v := int(targetValue.Int64)
		q.TargetValue = &v
	}
	return &q, nil
}
