package api

import (
	"path/filepath"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"barber-booking-backend/config"
	"barber-booking-backend/internal/mw"
	"barber-booking-backend/internal/notification"
	"barber-booking-backend/internal/store"
)

// NewResponseCache creates the response cache sized from the configured TTL.
// It is built by the caller rather than the router so the reclamation service
// can share it and flush it after pruning.
func NewResponseCache(cfg *config.Config) *cache.Cache {
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	return cache.New(cacheTTL, 2*cacheTTL)
}

// NewRouter creates and configures a new Gin router. A nil cacheStore gets a
// private cache, which is fine when nothing outside the router mutates data.
func NewRouter(cfg *config.Config, s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool, cacheStore *cache.Cache) *gin.Engine {
	r := gin.Default()

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cacheStore == nil {
		cacheStore = NewResponseCache(cfg)
	}

	handler := NewHandler(s, webpushOptions, pool, cacheStore)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/available-slots", caching, handler.GetAvailableSlots)
		api.POST("/book", handler.BookAppointment)

		api.GET("/bookings", caching, handler.GetBookings)
		api.GET("/bookings/today", caching, handler.GetTodayBookings)
		api.DELETE("/bookings/:date/:id", handler.DeleteBooking)

		api.GET("/notifications", handler.GetNotifications)
		api.POST("/notifications/:id/read", handler.MarkNotificationRead)

		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	// Booking page at the root, owner dashboard at /owner.
	public := cfg.Server.PublicDir
	r.StaticFile("/", filepath.Join(public, "index.html"))
	r.StaticFile("/app.js", filepath.Join(public, "app.js"))
	r.StaticFile("/owner", filepath.Join(public, "owner.html"))
	r.StaticFile("/owner.js", filepath.Join(public, "owner.js"))
	r.StaticFile("/sw.js", filepath.Join(public, "sw.js"))
	r.StaticFile("/style.css", filepath.Join(public, "style.css"))

	return r
}
