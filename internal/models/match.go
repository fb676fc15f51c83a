package models

import (
	"fmt"
	"time"
)

// Match is immutable once created. Player names are stored as given to the
// interpreter; their existence is validated there, not here.
type Match struct {
	ID string `gorm:"type:uuid;primaryKey"`

	Player1 string `gorm:"index"`
	Player2 string `gorm:"index"`

	Player1Score int
	Player2Score int

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (m *Match) String() string {
	return fmt.Sprintf("%s %d - %d %s", m.Player1, m.Player1Score, m.Player2Score, m.Player2)
}
