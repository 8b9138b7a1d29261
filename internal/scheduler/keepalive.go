// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/veloria/catalog-api/internal/logger"
	"github.com/veloria/catalog-api/internal/utils"
)

// KeepAlive periodically pings the service's own public URL so free-tier
// hosts do not idle the instance out.
type KeepAlive struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   logger.Logger

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

func NewKeepAlive(url string, interval time.Duration, log logger.Logger) *KeepAlive {
	return &KeepAlive{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the ping loop. The first ping fires after one interval.
func (k *KeepAlive) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.started {
		return fmt.Errorf("keepalive already started")
	}
	if k.url == "" {
		return fmt.Errorf("keepalive url is empty")
	}
	k.started = true

	k.wg.Add(1)
	go k.run(ctx)
	return nil
}

func (k *KeepAlive) run(ctx context.Context) {
	defer k.wg.Done()

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-k.stopCh:
			return
		case <-ticker.C:
			k.ping(ctx)
		}
	}
}

func (k *KeepAlive) ping(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, k.url, nil)
	if err != nil {
		k.logger.Error("keepalive request build failed", logger.Error(err))
		return
	}

	resp, err := k.client.Do(req)
	if err != nil {
		k.logger.Warn("keepalive ping failed",
			logger.String("url", k.url),
			logger.Error(err))
		return
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		k.logger.Warn("keepalive ping returned error status",
			logger.String("url", k.url),
			logger.Int("status", resp.StatusCode))
		return
	}
	k.logger.Debug("keepalive ping ok", logger.String("url", k.url))
}

// Stop terminates the loop and waits for it to exit.
func (k *KeepAlive) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.started {
		return
	}
	close(k.stopCh)
	k.wg.Wait()
	k.started = false
}
