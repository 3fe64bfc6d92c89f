package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sharingbox-backend/internal/model"
)

type openRentalRequest struct {
	EquipmentID int64   `json:"equipment_id" binding:"required"`
	UserID      *int64  `json:"user_id"`
	BadgeID     *string `json:"badge_id"`
}

// OpenRental handles POST /api/stations/{station_id}/rentals. Identity is
// resolved first, then the access policy, then the ledger performs the
// atomic transition.
func (h *Handler) OpenRental(c *gin.Context) {
	stationID, err := strconv.ParseInt(c.Param("station_id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, KindValidation, "invalid station id")
		return
	}

	var req openRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, KindValidation, "equipment_id is required")
		return
	}

	ctx, cancel := h.bound(c.Request.Context())
	defer cancel()

	var user *model.User
	switch {
	case req.UserID != nil:
		user, err = h.resolver.ByID(ctx, *req.UserID)
	case req.BadgeID != nil:
		user, err = h.resolver.ByBadge(ctx, *req.BadgeID)
	default:
		fail(c, http.StatusBadRequest, KindValidation, "user_id or badge_id is required")
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}

	eq, err := h.registry.Get(ctx, req.EquipmentID)
	if err != nil {
		failErr(c, err)
		return
	}

	decision, err := h.policy.CanRent(ctx, user, eq)
	if err != nil {
		failErr(c, err)
		return
	}
	if !decision.Allowed {
		fail(c, http.StatusForbidden, KindForbidden, decision.Reason)
		return
	}

	rec, err := h.ledger.Open(ctx, stationID, eq.ID, user.ID)
	if err != nil {
		failErr(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"rental_id": rec.ID})
}

// CloseRental handles PUT /api/stations/{station_id}/rentals/{rental_id}.
// Rental ids are globally unique, so the station in the path only records
// where the return was made; the ledger decides by rental id alone.
func (h *Handler) CloseRental(c *gin.Context) {
	if _, err := strconv.ParseInt(c.Param("station_id"), 10, 64); err != nil {
		fail(c, http.StatusBadRequest, KindValidation, "invalid station id")
		return
	}
	rentalID := c.Param("rental_id")

	ctx, cancel := h.bound(c.Request.Context())
	defer cancel()

	rec, err := h.ledger.Close(ctx, rentalID)
	if err != nil {
		failErr(c, err)
		return
	}

	if h.notify != nil {
		h.notify.Dispatch(rec.EquipmentID)
	}

	respond(c, http.StatusOK, nil)
}
