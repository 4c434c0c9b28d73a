package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	_ "github.com/rsilveira/stock-ledger/docs"
	"github.com/rsilveira/stock-ledger/internal/auth"
	"github.com/rsilveira/stock-ledger/internal/config"
	"github.com/rsilveira/stock-ledger/internal/db"
	api "github.com/rsilveira/stock-ledger/internal/http"
	"github.com/rsilveira/stock-ledger/internal/http/handlers"
	rl "github.com/rsilveira/stock-ledger/internal/http/rate_limiter"
	"github.com/rsilveira/stock-ledger/internal/ledger"
	"github.com/rsilveira/stock-ledger/internal/repo"
)

// @title Stock Ledger API
// @version 1.0
// @description REST API for product records, stock movements and balances.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration:", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("❌ Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	rl.SetLimits(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rl.StartVisitorCleanupLoop()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	server := handlers.NewServer(handlers.Deps{
		Products:  repo.NewPostgresProductRepository(database),
		Movements: repo.NewPostgresMovementRepository(database),
		Balances:  repo.NewPostgresBalanceRepository(database),
		Users:     repo.NewPostgresUserRepository(database),
		Metrics:   repo.NewPostgresMetricsRepository(database),
		Ledger:    ledger.NewEngine(database),
		Tokens:    tokens,
		Refresh:   auth.NewRedisRefreshStore(rdb, cfg.RefreshTokenTTL),
		Throttle:  auth.NewRedisLoginThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginLockout),
	})

	r := api.RateLimitMiddleware(api.NewRouter(server))
	log.Println("✅ Server running on", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatal(err)
	}
}
