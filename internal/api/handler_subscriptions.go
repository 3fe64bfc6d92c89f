package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sharingbox-backend/internal/model"
)

type putSubscriptionRequest struct {
	Endpoint            string  `json:"endpoint" binding:"required"`
	P256DH              string  `json:"p256dh" binding:"required"`
	Auth                string  `json:"auth" binding:"required"`
	SubscribedEquipment []int64 `json:"subscribed_equipment"`
}

// PutSubscription creates or replaces a push subscription and the set of
// equipment instances it watches.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, KindValidation, "endpoint, p256dh and auth are required")
		return
	}

	subscription := model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
	}

	ctx, cancel := h.bound(c.Request.Context())
	defer cancel()

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(&subscription).Error; err != nil {
			return err
		}

		var equipment []model.EquipmentInstance
		if len(req.SubscribedEquipment) > 0 {
			if err := tx.Find(&equipment, req.SubscribedEquipment).Error; err != nil {
				return err
			}
		}

		return tx.Model(&subscription).Association("Equipment").Replace(&equipment)
	})
	if err != nil {
		failErr(c, err)
		return
	}

	respond(c, http.StatusCreated, nil)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription removes a push subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, KindValidation, "endpoint is required")
		return
	}

	ctx, cancel := h.bound(c.Request.Context())
	defer cancel()

	if err := h.db.WithContext(ctx).
		Delete(&model.PushSubscription{Endpoint: req.Endpoint}).Error; err != nil {
		failErr(c, err)
		return
	}

	respond(c, http.StatusOK, nil)
}

// GetSubscription returns the equipment ids a subscription watches.
func (h *Handler) GetSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		fail(c, http.StatusBadRequest, KindValidation, "endpoint is required")
		return
	}

	ctx, cancel := h.bound(c.Request.Context())
	defer cancel()

	var subscription model.PushSubscription
	err := h.db.WithContext(ctx).
		Preload("Equipment").
		First(&subscription, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusNotFound, KindNotFound, "subscription not found")
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}

	ids := make([]int64, len(subscription.Equipment))
	for i, eq := range subscription.Equipment {
		ids[i] = eq.ID
	}
	respond(c, http.StatusOK, gin.H{"subscribed_equipment": ids})
}
