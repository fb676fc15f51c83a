package models

import "time"

// Group is a multi-member chat that opted into leaderboard broadcasts.
type Group struct {
	ChatID    int64     `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
