package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tixgo/seatengine/internal/config"
	"github.com/tixgo/seatengine/internal/postgres"
	"github.com/tixgo/seatengine/internal/redis"
	postgresrepo "github.com/tixgo/seatengine/internal/repository/postgres"
	redisrepo "github.com/tixgo/seatengine/internal/repository/redis"
	"github.com/tixgo/seatengine/internal/service"
	"github.com/tixgo/seatengine/internal/service/reservation"
	httpgin "github.com/tixgo/seatengine/internal/transport/http/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	services   *service.Services
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redis.NewSeatAvailabilityPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl", 10, 1*time.Minute)

	// Initialize services
	services := service.NewServices(store, cache, pubsub, limiter, service.Config{
		Reservation: reservation.Config{
			HoldTTL:  cfg.Engine.HoldDuration,
			Strategy: parseStrategy(cfg.Engine.Strategy),
		},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Periodic expiration nudge: the engine runs no timers of its own (spec
	// §9), so a host that wants holds reclaimed close to their TTL rather
	// than only on the next request calls numAvailable on a schedule.
	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				a.services.Reservation.NudgeAll(gCtx)
			}
		}
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

// parseStrategy maps the ENGINE_ALLOCATOR_STRATEGY config value onto the
// reservation package's Strategy enum, defaulting to the time-optimal
// divide-and-conquer allocator (spec §4.4) for any unrecognized value.
func parseStrategy(s string) reservation.Strategy {
	if s == "three-pass" {
		return reservation.StrategyThreePass
	}
	return reservation.StrategyDivideConquer
}
