package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mcbridge/internal/database/models"

	_ "modernc.org/sqlite"
)

// Database persists player achievement stats. It implements
// minecraft.StatStore.
type Database struct {
	db *sql.DB
}

// NewDatabase opens (and if necessary creates) the stats database at
// dbPath and runs migrations.
func NewDatabase(dbPath string) (*Database, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	database := &Database{db: db}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Println("✅ Stats database connected and migrated")
	return database, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// migrate runs database migrations
func (d *Database) migrate() error {
	migrations := []string{
		createAchievementsTable,
		createIndexes,
	}

	for i, migration := range migrations {
		if _, err := d.db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %v", i+1, err)
		}
	}

	return nil
}

const createAchievementsTable = `
CREATE TABLE IF NOT EXISTS achievements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    player TEXT NOT NULL,
    achievement TEXT NOT NULL,
    unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(player, achievement)
);`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_achievements_player ON achievements(player);`

// Unlock records an achievement unlock for a player. Recording the same
// unlock twice is a no-op.
func (d *Database) Unlock(player, achievement string) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO achievements (player, achievement) VALUES (?, ?)`,
		player, achievement,
	)
	if err != nil {
		return fmt.Errorf("failed to record achievement: %v", err)
	}
	return nil
}

// HasUnlocked reports whether the player already earned the achievement.
func (d *Database) HasUnlocked(player, achievement string) (bool, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(1) FROM achievements WHERE player = ? AND achievement = ?`,
		player, achievement,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query achievement: %v", err)
	}
	return count > 0, nil
}

// ListUnlocked returns all achievements the player has earned, oldest
// first.
func (d *Database) ListUnlocked(player string) ([]*models.AchievementRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, player, achievement, unlocked_at FROM achievements WHERE player = ? ORDER BY unlocked_at, id`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %v", err)
	}
	defer rows.Close()

	var records []*models.AchievementRecord
	for rows.Next() {
		record := &models.AchievementRecord{}
		if err := rows.Scan(&record.ID, &record.Player, &record.Achievement, &record.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement row: %v", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
