package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/booking"
	"github.com/iliyamo/meeting-room-booking/internal/config"
	"github.com/iliyamo/meeting-room-booking/internal/database"
	"github.com/iliyamo/meeting-room-booking/internal/handler"
	"github.com/iliyamo/meeting-room-booking/internal/middleware"
	"github.com/iliyamo/meeting-room-booking/internal/queue"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
	"github.com/iliyamo/meeting-room-booking/internal/router"
	"github.com/iliyamo/meeting-room-booking/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; rate limiting and response caching disabled")
	}

	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	engine := booking.NewEngine(roomRepo, reservationRepo, userRepo, log)
	catalog := booking.NewCatalog(roomRepo, userRepo, log)
	registrar := booking.NewRegistrar(userRepo, cfg.BcryptCost, log)

	publisher := queue.NewPublisher(cfg.AMQPURL, log)
	go queue.StartReservationConsumer(cfg.AMQPURL, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	e.Use(middleware.RequestID(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.NewTokenBucket(cfg.RateLimit, rdb))
	e.Use(middleware.NewRedisCache(cfg.Cache, rdb))

	router.RegisterRoutes(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, registrar, userRepo, tokenRepo),
		Users:        handler.NewUserHandler(registrar),
		Rooms:        handler.NewRoomHandler(catalog, engine),
		Reservations: handler.NewReservationHandler(engine, publisher),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
