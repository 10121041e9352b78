package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/database"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/router"
)

func main() {
	// A missing .env is fine; the environment may be set by the deployer.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	notifications := repository.NewNotificationRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	roomH := handler.NewRoomHandler(rooms)
	resH := handler.NewReservationHandler(rooms, reservations, notifications)
	notifH := &handler.NotificationHandler{Notifications: notifications}
	staffH := handler.NewStaffHandler(cfg, users, tokens, rooms, reservations, notifications)

	e := echo.New()
	e.HideBanner = true

	// Redis is optional: without it the limiter and cache pass through.
	rdb := config.NewRedisClient()
	if rlCfg := config.LoadRateLimitConfig(); rlCfg.Enabled && rdb != nil {
		e.Use(middleware.NewTokenBucket(rlCfg, rdb))
	}
	var cacheMW echo.MiddlewareFunc
	if cCfg := config.LoadCacheConfig(); cCfg.Enabled && rdb != nil {
		cacheMW = middleware.NewRedisCache(cCfg, rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBrowse(e, roomH, cfg.JWTSecret, cacheMW)
	router.RegisterMember(e, resH, notifH, cfg.JWTSecret)
	router.RegisterStaff(e, staffH, cfg.JWTSecret)

	// Consume reservation events in the background; the consumer
	// reconnects on its own if the broker drops.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
