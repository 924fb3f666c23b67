package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/delgrossoviaggi/bus-booking/internal/auth"
	"github.com/delgrossoviaggi/bus-booking/internal/config"
	"github.com/delgrossoviaggi/bus-booking/internal/database"
	"github.com/delgrossoviaggi/bus-booking/internal/handler"
	"github.com/delgrossoviaggi/bus-booking/internal/queue"
	"github.com/delgrossoviaggi/bus-booking/internal/repository"
	"github.com/delgrossoviaggi/bus-booking/internal/router"
	"github.com/delgrossoviaggi/bus-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		database.Options{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnLifetime,
		})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables caching and rate limiting

	bookings := service.NewBookingService(repository.NewBookingRepo(db), service.PublishBookingCreated)
	trips := service.NewTripService(repository.NewTripRepo(db))
	gate := auth.NewGate(cfg.AdminSecretHash, cfg.AdminSecret)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, cfg,
		handler.NewAuthHandler(cfg, gate),
		handler.NewBookingHandler(bookings),
		handler.NewTripHandler(trips),
		rdb,
	)

	// Background consumer for booking.created notifications; it keeps
	// reconnecting on its own and never takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
