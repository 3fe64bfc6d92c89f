package model

import "time"

// Station is a physical kiosk where equipment is picked up and returned.
type Station struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	Location  string `gorm:"size:256"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Equipment []EquipmentInstance `gorm:"foreignKey:StationID"`
}
