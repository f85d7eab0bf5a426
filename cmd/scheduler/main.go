// Command scheduler runs the background worker: queued republish tasks and
// the periodic update check, with email notification on new releases.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"customcss_backend/internal/events"
	"customcss_backend/internal/mailer"
	"customcss_backend/internal/publisher"
	"customcss_backend/internal/scheduler"
	stylesrepo "customcss_backend/internal/styles/repository"
	stylesservice "customcss_backend/internal/styles/service"
	"customcss_backend/internal/updates/feed"
	updatesrepo "customcss_backend/internal/updates/repository"
	updatesservice "customcss_backend/internal/updates/service"
	"customcss_backend/platform/config"
	"customcss_backend/platform/logger"

	"github.com/redis/go-redis/v9"
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
		log.Error("worker exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	rdb, err := newRedisClient(cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	pub, err := publisher.NewMinIOPublisher(cfg)
	if err != nil {
		return fmt.Errorf("publisher: %w", err)
	}

	bus := events.NewInMemoryBus(log)

	styles := stylesservice.New(stylesrepo.New(rdb), pub, nil, bus, log)
	updates := updatesservice.New(
		updatesrepo.New(rdb),
		feed.New(cfg.GetUpdateFeedURL(), nil),
		bus,
		log,
		cfg.GetAppVersion(),
	)

	if err := subscribeUpdateMailer(cfg, bus, log); err != nil {
		return err
	}

	worker, err := scheduler.NewWorker(cfg, styles, updates, log)
	if err != nil {
		return fmt.Errorf("worker: %w", err)
	}

	log.Info("worker starting", "queue", cfg.GetAsynqQueueName(), "version", cfg.GetAppVersion())
	return worker.Run(ctx)
}

// subscribeUpdateMailer emails the administrator when a new release is
// first seen. A disabled email configuration is not an error; the notice is
// still visible in the admin API.
func subscribeUpdateMailer(cfg config.EmailConfig, bus events.Bus, log *logger.Logger) error {
	m, err := mailer.NewSMTP(cfg)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	if m == nil {
		log.Info("email disabled, update notices will not be mailed")
		return nil
	}

	bus.Subscribe(events.UpdateAvailableEventName, events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		available, ok := event.(events.UpdateAvailable)
		if !ok {
			return fmt.Errorf("unexpected event type %T for %s", event, events.UpdateAvailableEventName)
		}
		return m.SendUpdateNotice(ctx, mailer.UpdateNotice{
			CurrentVersion: available.CurrentVersion,
			LatestVersion:  available.LatestVersion,
			ReleaseURL:     available.ReleaseURL,
			Notes:          available.Notes,
		})
	}))
	return nil
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
