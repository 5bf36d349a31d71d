package model

import "time"

// Message is one anonymous inbox entry. Rows are keyed by (UserID, ID) so a
// delete can always be scoped to the owning account.
type Message struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
}
