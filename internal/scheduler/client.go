package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"customcss_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates a task client from the redis configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisConnOpt(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: asynq.NewClient(opt),
		queue:  cfg.GetAsynqQueueName(),
	}, nil
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueStylesRepublish queues a republish of the stored stylesheet.
func (c *Client) EnqueueStylesRepublish(ctx context.Context) error {
	task := asynq.NewTask(TaskStylesRepublish, nil)
	_, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskStylesRepublish, err)
	}
	return nil
}

// redisConnOpt translates the redis URL configuration into an asynq
// connection option.
func redisConnOpt(cfg config.RedisConfig) (asynq.RedisClientOpt, error) {
	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}

	connOpt := asynq.RedisClientOpt{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	}
	if opts.TLSConfig != nil {
		connOpt.TLSConfig = opts.TLSConfig
		if cfg.GetRedisTLSInsecure() {
			connOpt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		}
	}
	return connOpt, nil
}
