package model

import (
	"strings"
	"time"
)

// User is a person known to the identity provider. The core only reads
// users; account creation and profile edits happen on the management
// surface.
type User struct {
	ID            int64   `gorm:"primaryKey"`
	FirstName     string  `gorm:"size:100"`
	LastName      string  `gorm:"size:100"`
	Patronymic    string  `gorm:"size:100"`
	Email         string  `gorm:"size:120"`
	Phone         string  `gorm:"size:30"`
	BadgeID       *string `gorm:"uniqueIndex;size:64"` // RFID badge, optional
	AccessGroupID int64   `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Associations
	AccessGroup AccessGroup
}

// DisplayName is the "last first" form stations show on their screens.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.LastName + " " + u.FirstName)
}
