// Package postgres establishes the pgx connection pool backing the stores.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloria/catalog-api/internal/logger"
)

// ConnectOptions defines Postgres connection and retry behavior.
type ConnectOptions struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration // total time allowed for connection attempts
	RetryInterval  time.Duration // initial wait between retries, grows exponentially
	MaxWait        time.Duration // cap on the wait between retries
	PingTimeout    time.Duration
}

func (o ConnectOptions) validate() error {
	if o.DSN == "" {
		return fmt.Errorf("DSN must not be empty")
	}
	if o.ConnectTimeout <= 0 {
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	}
	if o.RetryInterval <= 0 {
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	}
	if o.MaxWait <= 0 {
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	}
	if o.PingTimeout <= 0 {
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	}
	return nil
}

// Connect builds a pgx pool and pings it with exponential backoff until
// ConnectTimeout is exhausted.
func Connect(opts ConnectOptions, log logger.Logger) (*pgxpool.Pool, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		poolCfg.MinConns = opts.MinConns
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	log.Info("connecting to postgres",
		logger.String("host", poolCfg.ConnConfig.Host),
		logger.Duration("timeout", opts.ConnectTimeout))

	attempt := 0
	wait := opts.RetryInterval
	for {
		attempt++

		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err = pool.Ping(pingCtx)
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to postgres after retry",
					logger.String("host", poolCfg.ConnConfig.Host),
					logger.Int("attempts", attempt))
			} else {
				log.Info("connected to postgres", logger.String("host", poolCfg.ConnConfig.Host))
			}
			return pool, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			pool.Close()
			log.Error("postgres unavailable - failed to connect after timeout",
				logger.String("host", poolCfg.ConnConfig.Host),
				logger.Int("attempts", attempt),
				logger.Error(err))
			return nil, fmt.Errorf("postgres unavailable after %d attempts (timeout: %v): %w",
				attempt, opts.ConnectTimeout, err)

		case <-timer.C:
			log.Warn("postgres connection failed, retrying",
				logger.String("host", poolCfg.ConnConfig.Host),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err))
			wait *= 2
			if wait > opts.MaxWait {
				wait = opts.MaxWait
			}
		}
	}
}
