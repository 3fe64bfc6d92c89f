package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sharingbox-backend/internal/model"
)

var (
	ErrStationNotFound   = errors.New("station not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrEquipmentRented   = errors.New("equipment already rented")
	ErrRentalNotFound    = errors.New("rental not found")
	ErrRentalClosed      = errors.New("rental already closed")
)

// Ledger owns all writes to rental records. Every transition re-reads
// current state inside its own transaction; nothing caches "is rented"
// outside this package.
type Ledger struct {
	db        *gorm.DB
	opTimeout time.Duration
}

// New creates a ledger. opTimeout bounds each storage operation; zero
// disables the bound.
func New(db *gorm.DB, opTimeout time.Duration) *Ledger {
	return &Ledger{db: db, opTimeout: opTimeout}
}

func (l *Ledger) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, l.opTimeout)
}

// Open transitions one equipment instance from available to rented. Of any
// number of concurrent callers for the same instance exactly one succeeds;
// the rest get ErrEquipmentRented. The in-transaction check handles the
// common case, the partial unique index on open records decides races.
func (l *Ledger) Open(ctx context.Context, stationID, equipmentID, userID int64) (*model.RentalRecord, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	var rec *model.RentalRecord
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var station model.Station
		if err := tx.First(&station, stationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStationNotFound
			}
			return err
		}

		var eq model.EquipmentInstance
		if err := tx.First(&eq, equipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}

		var open int64
		if err := tx.Model(&model.RentalRecord{}).
			Where("equipment_id = ? AND end_at IS NULL", equipmentID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrEquipmentRented
		}

		r := &model.RentalRecord{
			ID:          uuid.NewString(),
			UserID:      userID,
			StationID:   stationID,
			EquipmentID: equipmentID,
			BeginAt:     time.Now().UTC(),
		}
		if err := tx.Create(r).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrEquipmentRented
			}
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Close sets end_at exactly once. The conditional update means exactly one
// of any number of racing closers wins; the rest get ErrRentalClosed.
func (l *Ledger) Close(ctx context.Context, rentalID string) (*model.RentalRecord, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	res := l.db.WithContext(ctx).Model(&model.RentalRecord{}).
		Where("id = ? AND end_at IS NULL", rentalID).
		Update("end_at", time.Now().UTC())
	if res.Error != nil {
		return nil, res.Error
	}

	var r model.RentalRecord
	if err := l.db.WithContext(ctx).First(&r, "id = ?", rentalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	if res.RowsAffected == 0 {
		// The record exists but the update matched nothing: it was
		// already closed, possibly by a racing caller.
		return nil, ErrRentalClosed
	}
	return &r, nil
}

// OpenForUser returns the user's open rentals at one station, oldest first.
func (l *Ledger) OpenForUser(ctx context.Context, userID, stationID int64) ([]model.RentalRecord, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	var recs []model.RentalRecord
	err := l.db.WithContext(ctx).
		Where("user_id = ? AND station_id = ? AND end_at IS NULL", userID, stationID).
		Order("begin_at ASC").
		Find(&recs).Error
	return recs, err
}

// OpenEquipment reports which of the given equipment instances currently
// have an open rental.
func (l *Ledger) OpenEquipment(ctx context.Context, equipmentIDs []int64) (map[int64]bool, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	rented := make(map[int64]bool, len(equipmentIDs))
	if len(equipmentIDs) == 0 {
		return rented, nil
	}
	var ids []int64
	err := l.db.WithContext(ctx).
		Model(&model.RentalRecord{}).
		Where("equipment_id IN ? AND end_at IS NULL", equipmentIDs).
		Pluck("equipment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		rented[id] = true
	}
	return rented, nil
}

// isUniqueViolation matches the duplicate-key errors Postgres and SQLite
// report when the one-open-rental index rejects an insert.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
