package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type openRentalItem struct {
	RentalID    string `json:"rental_id"`
	EquipmentID int64  `json:"equipment_id"`
	StationID   int64  `json:"station_id"`
}

// Identify handles GET /api/stations/{station_id}/users/{badge_id}: a badge
// tap at a kiosk. An unknown badge is a normal, reportable outcome, not a
// server failure.
func (h *Handler) Identify(c *gin.Context) {
	stationID, err := strconv.ParseInt(c.Param("station_id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, KindValidation, "invalid station id")
		return
	}
	badgeID := c.Param("badge_id")

	ctx, cancel := h.bound(c.Request.Context())
	defer cancel()

	user, err := h.resolver.ByBadge(ctx, badgeID)
	if err != nil {
		failErr(c, err)
		return
	}

	recs, err := h.ledger.OpenForUser(ctx, user.ID, stationID)
	if err != nil {
		failErr(c, err)
		return
	}

	rentals := make([]openRentalItem, 0, len(recs))
	for _, r := range recs {
		rentals = append(rentals, openRentalItem{
			RentalID:    r.ID,
			EquipmentID: r.EquipmentID,
			StationID:   r.StationID,
		})
	}

	respond(c, http.StatusOK, gin.H{
		"user_id":   user.ID,
		"user_name": user.DisplayName(),
		"rentals":   rentals,
	})
}
