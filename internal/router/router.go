// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/watchnow/watchnow/internal/config"
	"github.com/watchnow/watchnow/internal/handler"
	"github.com/watchnow/watchnow/internal/middleware"
)

// Handlers collects the per-area handlers wired in main.  Routes only
// see this struct; construction and dependency injection happen at
// startup.
type Handlers struct {
	Movies *handler.MovieHandler
	Series *handler.SeriesHandler
	Users  *handler.UserHandler
	Auth   *handler.AuthHandler
}

// RegisterRoutes registers every route of the catalog API.
//
// Reads are public.  Catalog and user mutations go through the admin
// gate, which re-resolves the token subject against the user store on
// each request.  The unauthenticated POST endpoints (login,
// registration, password reset) additionally sit behind the Redis token
// bucket; a nil Redis client leaves them unthrottled.
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, users middleware.UserResolver, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Public catalog reads.
	e.GET("/movies", h.Movies.List)
	e.GET("/series", h.Series.List)
	e.GET("/usuarios", h.Users.List)

	// Unauthenticated writes, rate limited.
	limited := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	e.POST("/login", h.Auth.Login, limited)
	e.POST("/usuarios", h.Users.Register, limited)
	e.POST("/reset-password", h.Auth.ResetPassword, limited)

	// Admin-gated catalog and user mutations.
	admin := middleware.RequireAdmin(cfg.JWTSecret, users)
	e.POST("/movies", h.Movies.Create, admin)
	e.PUT("/movies/:id", h.Movies.Update, admin)
	e.DELETE("/movies/:id", h.Movies.Delete, admin)
	e.POST("/series", h.Series.Create, admin)
	e.PUT("/series/:id", h.Series.Update, admin)
	e.DELETE("/series/:id", h.Series.Delete, admin)
	e.PUT("/usuarios/:id", h.Users.Update, admin)
	e.DELETE("/usuarios/:id", h.Users.Delete, admin)

	// Login page and its assets.
	e.Static("/", "web/public")
}
