package models

import "time"

// AchievementRecord is a single persisted achievement unlock.
type AchievementRecord struct {
	ID          int64     `json:"id"`
	Player      string    `json:"player"`
	Achievement string    `json:"achievement"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
