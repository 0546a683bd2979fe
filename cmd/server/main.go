package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wishlist/internal/config"
	"github.com/iliyamo/wishlist/internal/database"
	"github.com/iliyamo/wishlist/internal/handler"
	"github.com/iliyamo/wishlist/internal/middleware"
	"github.com/iliyamo/wishlist/internal/queue"
	"github.com/iliyamo/wishlist/internal/repository"
	"github.com/iliyamo/wishlist/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // fails fast on any missing required value

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	// Redis is best effort: without it, caching and rate limiting are
	// simply disabled and MySQL serves every read.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiter disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	presents := repository.NewPresentRepo(db)
	adminH := handler.NewAdminHandler(cfg)
	presentH := handler.NewPresentHandler(presents, cacheCfg, rdb)
	reserveH := handler.NewReserveHandler(cfg, presents, cacheCfg, rdb)
	uploadH := handler.NewUploadHandler(cfg.UploadDir)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	router.RegisterRoutes(e, cfg.UploadDir)
	router.RegisterPublic(e, presentH, reserveH, cacheCfg, rdb)
	router.RegisterAdmin(e, adminH, presentH, uploadH, cfg.JWTSecret)

	// Background consumer keeps its own reconnect loop for the lifetime
	// of the process.
	go queue.StartReservationConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
