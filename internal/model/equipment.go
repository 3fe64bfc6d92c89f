package model

import "time"

// EquipmentType is a catalog entry ("laptop", "HDMI cable"); it is not
// individually trackable.
type EquipmentType struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:1000"`
	PicURL      string `gorm:"size:200"`
}

// EquipmentInstance is one trackable physical item of a type, homed at a
// station. AccessGroupID is the minimum rank required to borrow it, absent
// a special access right.
type EquipmentInstance struct {
	ID            int64 `gorm:"primaryKey"`
	StockNum      int64 `gorm:"uniqueIndex;not null"`
	TypeID        int64 `gorm:"index;not null"`
	StationID     int64 `gorm:"index;not null"`
	AccessGroupID int64 `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Associations
	Type        EquipmentType `gorm:"foreignKey:TypeID"`
	AccessGroup AccessGroup
}
