package model

import "time"

// SpecialAccessRight lets one named user borrow one specific equipment
// instance regardless of rank. An explicit allow-list entry, granted on the
// management surface.
type SpecialAccessRight struct {
	UserID      int64     `gorm:"primaryKey;autoIncrement:false"`
	EquipmentID int64     `gorm:"primaryKey;autoIncrement:false"`
	GrantedAt   time.Time `gorm:"not null"`
}
