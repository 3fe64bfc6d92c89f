package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"sharingbox-backend/config"
	"sharingbox-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(db *gorm.DB, cfg *config.Config, webpushOptions *webpush.Options, notify Notifier) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(db, cfg.Database.OpTimeout, webpushOptions, notify)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Browse surface; responses may be served from cache.
		api.GET("/stations", caching, handler.ListStations)
		api.GET("/stations/:station_id/equipment", caching, handler.ListStationEquipment)

		// Station gateway. Never cached: every transition re-reads
		// ledger state at decision time.
		api.GET("/stations/:station_id/users/:badge_id", handler.Identify)
		api.POST("/stations/:station_id/rentals", handler.OpenRental)
		api.PUT("/stations/:station_id/rentals/:rental_id", handler.CloseRental)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
