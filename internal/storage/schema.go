package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS character (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			class TEXT NOT NULL,
			overall_level INTEGER DEFAULT 1,
			overall_total_xp INTEGER DEFAULT 0,
			last_updated TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stats (
			stat_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			level INTEGER DEFAULT 1,
			xp INTEGER DEFAULT 0,
			total_xp INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS streaks (
			type TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			count INTEGER DEFAULT 0,
			last_updated TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			stat TEXT NOT NULL,
			xp_reward INTEGER NOT NULL,
			completed INTEGER DEFAULT 0,
			date TEXT NOT NULL,
			description TEXT,
			lore TEXT,
			proof TEXT,
			is_boss INTEGER DEFAULT 0,
			is_penalty INTEGER DEFAULT 0,
			deadline TEXT,
			current_value INTEGER,
			target_value INTEGER,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quest_catalog (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			stat TEXT NOT NULL,
			xp INTEGER NOT NULL,
			is_penalty INTEGER DEFAULT 0,
			category TEXT NOT NULL,
			description TEXT,
			lore TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT NOT NULL,
			unlocked INTEGER DEFAULT 0,
			unlocked_at TEXT,
			condition TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS equipment (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			slot TEXT NOT NULL,
			icon TEXT NOT NULL,
			description TEXT,
			equipped INTEGER DEFAULT 0,
			stat_bonuses TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS abilities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			icon TEXT NOT NULL,
			description TEXT,
			unlocked INTEGER DEFAULT 0,
			stat_bonuses TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_date_boss ON quests(date, is_boss);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_boss_completed ON quests(is_boss, completed);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
