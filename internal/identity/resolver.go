package identity

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sharingbox-backend/internal/model"
)

// ErrUserNotFound is returned for unknown badge ids and unknown user ids
// alike, so callers cannot tell which form of identifier missed.
var ErrUserNotFound = errors.New("user not found")

// Resolver maps badge ids or account ids to user records. Pure lookup, no
// side effects.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a resolver backed by the given database handle.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// ByBadge resolves a user by RFID badge id.
func (r *Resolver) ByBadge(ctx context.Context, badgeID string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Preload("AccessGroup").
		Where("badge_id = ?", badgeID).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ByID resolves a user by account id.
func (r *Resolver) ByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Preload("AccessGroup").
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
