package scheduler

import (
	"context"
	"fmt"

	stylesservice "customcss_backend/internal/styles/service"
	updatesservice "customcss_backend/internal/updates/service"
	"customcss_backend/platform/config"
	"customcss_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// WorkerConfig combines the config interfaces needed by the worker process.
type WorkerConfig interface {
	config.SchedulerConfig
	config.UpdatesConfig
}

// Worker consumes background tasks and runs the periodic update check.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	log       *logger.Logger
}

// NewWorker creates the task worker. The styles and updates services carry
// the actual task logic; the worker only routes and retries.
func NewWorker(cfg WorkerConfig, styles *stylesservice.Service, updates *updatesservice.Service, log *logger.Logger) (*Worker, error) {
	opt, err := redisConnOpt(cfg)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.GetAsynqConcurrency(),
		Queues:      map[string]int{queue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error("task failed", "type", task.Type(), "error", err)
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskStylesRepublish, func(ctx context.Context, task *asynq.Task) error {
		if err := styles.Republish(ctx); err != nil {
			return fmt.Errorf("republish stylesheet: %w", err)
		}
		log.Info("stylesheet republished")
		return nil
	})
	mux.HandleFunc(TaskUpdatesCheck, func(ctx context.Context, task *asynq.Task) error {
		notice, err := updates.Check(ctx)
		if err != nil {
			return fmt.Errorf("update check: %w", err)
		}
		log.Info("update check completed", "available", notice.Available, "latest", notice.Latest)
		return nil
	})

	sched := asynq.NewScheduler(opt, &asynq.SchedulerOpts{})
	if cfg.IsUpdateCheckEnabled() {
		interval := fmt.Sprintf("@every %s", cfg.GetUpdateCheckInterval())
		if _, err := sched.Register(interval, asynq.NewTask(TaskUpdatesCheck, nil), asynq.Queue(queue)); err != nil {
			return nil, fmt.Errorf("register periodic update check: %w", err)
		}
	} else {
		log.Warn("UPDATE_FEED_URL not set, periodic update check disabled")
	}

	return &Worker{server: server, scheduler: sched, mux: mux, log: log}, nil
}

// Run starts the task server and the periodic scheduler and blocks until
// the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if err := w.server.Start(w.mux); err != nil {
		w.scheduler.Shutdown()
		return fmt.Errorf("start task server: %w", err)
	}

	<-ctx.Done()
	w.log.Info("shutting down worker")
	w.scheduler.Shutdown()
	w.server.Shutdown()
	return nil
}
