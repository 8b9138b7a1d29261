package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/veloria/catalog-api/internal/logger"
)

func TestKeepAlivePingsTarget(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	k := NewKeepAlive(srv.URL, 20*time.Millisecond, logger.New("error", false))
	if err := k.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for hits.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 pings, got %d", hits.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
	k.Stop()

	after := hits.Load()
	time.Sleep(60 * time.Millisecond)
	if hits.Load() != after {
		t.Error("pings continued after Stop()")
	}
}

func TestKeepAliveRejectsEmptyURL(t *testing.T) {
	k := NewKeepAlive("", time.Minute, logger.New("error", false))
	if err := k.Start(context.Background()); err == nil {
		t.Error("Start() with empty url should fail")
	}
}

func TestKeepAliveDoubleStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	k := NewKeepAlive(srv.URL, time.Minute, logger.New("error", false))
	if err := k.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer k.Stop()

	if err := k.Start(context.Background()); err == nil {
		t.Error("second Start() should fail")
	}
}
