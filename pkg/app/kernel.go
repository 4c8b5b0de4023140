package app

// Builds the http.Handler from the Application config. Nothing here imports
// app-layer code; models and routes arrive through the builder methods.

import (
	"net/http"
	"time"

	"github.com/thanhvudev/furnimart/pkg/cache"
	"github.com/thanhvudev/furnimart/pkg/database"
	"github.com/thanhvudev/furnimart/pkg/metrics"
	"github.com/thanhvudev/furnimart/pkg/middleware"
	"github.com/thanhvudev/furnimart/pkg/orm"
	"github.com/thanhvudev/furnimart/pkg/reqid"
	"github.com/thanhvudev/furnimart/pkg/router"
	"github.com/thanhvudev/furnimart/pkg/session"
)

// buildHandler sets up the global middleware stack, runs auto-migrations,
// then calls the registered route callbacks.
func buildHandler(a *Application) http.Handler {
	orm.CacheStore = &ormCache{}

	if database.DB != nil && len(a.models) > 0 {
		database.DB.AutoMigrate(a.models...)
	}

	r := router.New()

	// Outermost to innermost: metrics wraps everything so latency covers the
	// whole stack, recovery catches panics, the request ID lands before the
	// logger reads it, and the session loads before any handler runs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}

	return r.Handler()
}

// ormCache bridges pkg/cache to the orm.Cacher interface so neither package
// imports the other.
type ormCache struct{}

func (c *ormCache) Get(key string, dest interface{}) bool {
	return cache.Get(key, dest)
}

func (c *ormCache) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}
