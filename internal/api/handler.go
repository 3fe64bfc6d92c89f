package api

import (
	"context"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"sharingbox-backend/internal/identity"
	"sharingbox-backend/internal/ledger"
	"sharingbox-backend/internal/policy"
	"sharingbox-backend/internal/registry"
)

// Notifier receives the id of an equipment instance that just became
// available. The notification worker pool implements it; a nil Notifier
// disables dispatch.
type Notifier interface {
	Dispatch(equipmentID int64)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	db        *gorm.DB
	opTimeout time.Duration
	resolver  *identity.Resolver
	registry  *registry.Registry
	policy    *policy.Engine
	ledger    *ledger.Ledger
	webpush   *webpush.Options
	notify    Notifier
}

// NewHandler wires the station gateway over one database handle.
func NewHandler(db *gorm.DB, opTimeout time.Duration, webpushOptions *webpush.Options, notify Notifier) *Handler {
	return &Handler{
		db:        db,
		opTimeout: opTimeout,
		resolver:  identity.NewResolver(db),
		registry:  registry.NewRegistry(db),
		policy:    policy.NewEngine(policy.NewGormRights(db)),
		ledger:    ledger.New(db, opTimeout),
		webpush:   webpushOptions,
		notify:    notify,
	}
}

// bound applies the storage operation deadline to a request context, so a
// stalled backend fails the request instead of hanging the station. Zero
// disables the bound.
func (h *Handler) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.opTimeout)
}
