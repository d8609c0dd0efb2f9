package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/watchnow/watchnow/internal/config"
	"github.com/watchnow/watchnow/internal/database"
	"github.com/watchnow/watchnow/internal/handler"
	"github.com/watchnow/watchnow/internal/queue"
	"github.com/watchnow/watchnow/internal/repository"
	"github.com/watchnow/watchnow/internal/router"
	queue_publisher "github.com/watchnow/watchnow/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}
	cfg := config.Load()

	client, err := database.Open(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connect failed: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.DBName)

	movies := repository.NewMovieRepo(db)
	series := repository.NewSeriesRepo(db)
	users := repository.NewUserRepo(db)

	if cfg.SeedData {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.Seed(ctx, movies, series, users, cfg.BcryptCost); err != nil {
			log.Printf("seed failed: %v", err)
		}
		cancel()
	}

	audit := &queue_publisher.Publisher{}
	if cfg.AuditConsumer {
		go func() {
			if err := queue.StartAuditConsumer(); err != nil {
				log.Printf("audit consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	// The login page is served from a different origin during development.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	h := router.Handlers{
		Movies: handler.NewMovieHandler(movies, audit),
		Series: handler.NewSeriesHandler(series, audit),
		Users:  handler.NewUserHandler(cfg, users, audit),
		Auth:   handler.NewAuthHandler(cfg, users),
	}
	router.RegisterRoutes(e, cfg, h, users, config.NewRedisClient())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start failed: %v", err)
		}
	}()

	// Wait for an interrupt and shut down gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
