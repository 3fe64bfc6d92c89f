package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sharingbox-backend/internal/identity"
	"sharingbox-backend/internal/ledger"
	"sharingbox-backend/internal/registry"
)

// Error kinds carried in the response envelope. Stations branch on the
// kind; the message is for humans.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindForbidden  = "forbidden"
	KindConflict   = "conflict"
	KindTransient  = "transient"
	KindInternal   = "internal"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["ok"] = true
	c.JSON(status, payload)
}

func fail(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"ok":    false,
		"error": errorBody{Kind: kind, Message: message},
	})
}

// failErr maps component sentinels onto wire status codes. This is the only
// place that translation happens; anything unclassified is an internal
// error with its detail kept out of the response.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		fail(c, http.StatusNotFound, KindNotFound, "user not found")
	case errors.Is(err, ledger.ErrStationNotFound):
		fail(c, http.StatusNotFound, KindNotFound, "station not found")
	case errors.Is(err, ledger.ErrEquipmentNotFound),
		errors.Is(err, registry.ErrEquipmentNotFound):
		fail(c, http.StatusNotFound, KindNotFound, "equipment not found")
	case errors.Is(err, ledger.ErrRentalNotFound):
		fail(c, http.StatusNotFound, KindNotFound, "rental not found")
	case errors.Is(err, ledger.ErrEquipmentRented):
		fail(c, http.StatusConflict, KindConflict, "equipment already rented")
	case errors.Is(err, ledger.ErrRentalClosed):
		fail(c, http.StatusConflict, KindConflict, "rental already closed")
	case errors.Is(err, context.DeadlineExceeded):
		fail(c, http.StatusServiceUnavailable, KindTransient, "storage timeout, retry later")
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		fail(c, http.StatusInternalServerError, KindInternal, "internal error")
	}
}
