// Command api runs the HTTP server: the admin editor API, the public
// stylesheet route and the class listing.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customcss_backend/internal/auth"
	"customcss_backend/internal/classmanager"
	"customcss_backend/internal/events"
	apphttp "customcss_backend/internal/http"
	"customcss_backend/internal/http/router"
	"customcss_backend/internal/publisher"
	"customcss_backend/internal/scheduler"
	"customcss_backend/internal/styles"
	"customcss_backend/internal/updates"
	"customcss_backend/migrations"
	"customcss_backend/platform/config"
	"customcss_backend/platform/db"
	"customcss_backend/platform/logger"
	"customcss_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := withRetry(ctx, log, "database migrations", func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		return err
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database", func() error {
		var err error
		pool, err = db.NewPool(ctx, cfg)
		return err
	}); err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := newRedisClient(cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()
	if err := withRetry(ctx, log, "redis", func() error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		return err
	}

	pub, err := publisher.NewMinIOPublisher(cfg)
	if err != nil {
		return fmt.Errorf("publisher: %w", err)
	}
	if err := withRetry(ctx, log, "object store", func() error {
		return pub.EnsureBucketExists(ctx)
	}); err != nil {
		return err
	}

	taskClient, err := scheduler.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("task client: %w", err)
	}
	defer taskClient.Close()

	bus := events.NewInMemoryBus(log)
	validate := validator.New()

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: bus,
		Health: []apphttp.HealthChecker{
			pool,
			redisPinger{rdb},
		},
		Modules: []apphttp.Module{
			auth.New(cfg, log, validate),
			styles.New(rdb, pub, taskClient, bus, log, validate),
			classmanager.New(pool, bus, log, validate),
			updates.New(rdb, cfg, bus, log),
		},
	}

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", server.Addr, "version", cfg.GetAppVersion())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// redisPinger adapts the redis client to the health check interface.
type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.TLSConfig != nil && cfg.GetRedisTLSInsecure() {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return redis.NewClient(opts), nil
}

// withRetry attempts fn a few times with a fixed backoff, so the server
// survives dependencies that come up slightly later than it does.
func withRetry(ctx context.Context, log *logger.Logger, name string, fn func() error) error {
	const attempts = 5
	const backoff = 3 * time.Second

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		log.Warn("dependency not ready", "dependency", name, "attempt", i, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%s unavailable after %d attempts: %w", name, attempts, err)
}
