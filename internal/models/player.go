package models

import (
	"fmt"
	"time"
)

// Player holds the derived rating for fast lookup; match history stays the
// source of truth.
type Player struct {
	ID   string `gorm:"type:uuid;primaryKey"`
	Name string `gorm:"uniqueIndex"`

	Rating int

	// ChatID is the player's private chat with the bot. Zero until the
	// player's first private message is observed.
	ChatID int64

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (p *Player) String() string {
	return fmt.Sprintf("Player(%s, rating=%d)", p.Name, p.Rating)
}
