package model

import "time"

const RentalTable = "rental_records"

// RentalRecord is one loan period for one equipment instance. The record is
// open while EndAt is null; closing sets EndAt exactly once and nothing ever
// deletes a record (audit trail). At most one open record may exist per
// equipment instance, enforced by a partial unique index (see internal/db).
type RentalRecord struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	UserID      int64      `gorm:"index;not null"`
	StationID   int64      `gorm:"index;not null"` // station where the rental was opened
	EquipmentID int64      `gorm:"index;not null"`
	BeginAt     time.Time  `gorm:"index;not null"`
	EndAt       *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (RentalRecord) TableName() string { return RentalTable }

// Open reports whether the rental is still running.
func (r RentalRecord) Open() bool { return r.EndAt == nil }
