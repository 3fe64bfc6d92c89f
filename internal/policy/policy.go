package policy

import (
	"context"

	"gorm.io/gorm"

	"sharingbox-backend/internal/model"
)

// Decision is the outcome of an access check. Reason is set only on deny.
type Decision struct {
	Allowed bool
	Reason  string
}

// RightsLookup answers whether a user holds a special access right for one
// specific equipment instance.
type RightsLookup interface {
	HasSpecialAccess(ctx context.Context, userID, equipmentID int64) (bool, error)
}

// Engine decides whether a user may rent an equipment instance. The
// decision has no side effects and is safe to evaluate concurrently.
type Engine struct {
	rights RightsLookup
}

// NewEngine creates an engine over the given special-rights lookup.
func NewEngine(rights RightsLookup) *Engine {
	return &Engine{rights: rights}
}

// CanRent applies the two-step rule: a special access right for the exact
// (user, equipment) pair always allows; otherwise the user's group rank must
// meet the equipment's required rank.
func (e *Engine) CanRent(ctx context.Context, user *model.User, eq *model.EquipmentInstance) (Decision, error) {
	granted, err := e.rights.HasSpecialAccess(ctx, user.ID, eq.ID)
	if err != nil {
		return Decision{}, err
	}
	if granted {
		return Decision{Allowed: true}, nil
	}
	if RankAllows(user.AccessGroup.Rank, eq.AccessGroup.Rank) {
		return Decision{Allowed: true}, nil
	}
	return Decision{Reason: "insufficient access group"}, nil
}

// RankAllows reports whether a holder of rank have may borrow equipment
// requiring rank need.
func RankAllows(have, need int) bool {
	return have >= need
}

// GormRights is the database-backed RightsLookup.
type GormRights struct {
	db *gorm.DB
}

// NewGormRights creates a rights lookup over the given database handle.
func NewGormRights(db *gorm.DB) *GormRights {
	return &GormRights{db: db}
}

// HasSpecialAccess reports whether an allow-list entry exists for the pair.
func (g *GormRights) HasSpecialAccess(ctx context.Context, userID, equipmentID int64) (bool, error) {
	var n int64
	err := g.db.WithContext(ctx).
		Model(&model.SpecialAccessRight{}).
		Where("user_id = ? AND equipment_id = ?", userID, equipmentID).
		Count(&n).Error
	return n > 0, err
}
