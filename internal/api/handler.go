package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"barber-booking-backend/internal/notification"
	"barber-booking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	webpush *webpush.Options
	pool    *notification.WorkerPool
	cache   *cache.Cache
}

// NewHandler creates a new API handler. pool may be nil when web push is not
// configured; cacheStore may be nil when response caching is off.
func NewHandler(s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool, cacheStore *cache.Cache) *Handler {
	return &Handler{
		store:   s,
		webpush: webpushOptions,
		pool:    pool,
		cache:   cacheStore,
	}
}

// flushCache drops every cached GET response. Called after any successful
// mutation so stale availability is never served.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}
