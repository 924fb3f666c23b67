package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/delgrossoviaggi/bus-booking/internal/config"
	"github.com/delgrossoviaggi/bus-booking/internal/handler"
	"github.com/delgrossoviaggi/bus-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the public and privileged route groups.  The rate
// limiter spans the whole /v1 surface; the response cache sits only in
// front of the trip list, never the seatmap, so availability shown to
// a client is always a fresh read of the store.
func RegisterAPI(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, b *handler.BookingHandler, t *handler.TripHandler, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	tripCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	v1 := e.Group("/v1", limiter)

	// Passenger-facing routes: no authentication, matching the
	// reference behavior where anyone can view the seatmap and book.
	v1.POST("/auth/login", a.Login)
	v1.GET("/buses/:busType/seatmap", b.Seatmap)
	v1.GET("/buses/:busType/bookings", b.List)
	v1.POST("/bookings", b.Create)
	v1.GET("/trips", t.List, tripCache)

	// Privileged routes: a valid ADMIN token is required.  Services
	// re-check the session themselves, so the middleware is a
	// convenience for early 401/403s, not the authority.
	admin := v1.Group("", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("ADMIN"))
	admin.GET("/me", a.Me)
	admin.DELETE("/bookings/:id", b.Delete)
	admin.POST("/trips", t.Create)
	admin.PUT("/trips/:id", t.Update)
	admin.DELETE("/trips/:id", t.Delete)
}
