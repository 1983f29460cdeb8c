package quote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newUpstream(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("X-Api-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]Quote{
			{Quote: "Simplicity is prerequisite for reliability.", Author: "Edsger Dijkstra"},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestService_Today_FetchesAndCaches(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var calls atomic.Int32
	srv := newUpstream(t, &calls)

	svc := NewService(client, "test-key", slog.Default()).WithEndpoint(srv.URL)
	ctx := context.Background()

	q, err := svc.Today(ctx)
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if q.Author != "Edsger Dijkstra" {
		t.Errorf("Author = %q", q.Author)
	}
	wantDay := time.Now().UTC().Format("2006-01-02")
	if q.Date != wantDay {
		t.Errorf("Date = %q, want %q", q.Date, wantDay)
	}

	// Second call is served from the cache.
	again, err := svc.Today(ctx)
	if err != nil {
		t.Fatalf("Today() second call error = %v", err)
	}
	if again.Quote != q.Quote {
		t.Errorf("cached quote differs: %q vs %q", again.Quote, q.Quote)
	}
	if calls.Load() != 1 {
		t.Errorf("upstream called %d times, want 1", calls.Load())
	}

	if !mr.Exists("daily_quote:" + wantDay) {
		t.Error("expected cache key for today")
	}
}

func TestService_Today_NilRedis(t *testing.T) {
	var calls atomic.Int32
	srv := newUpstream(t, &calls)

	svc := NewService(nil, "test-key", slog.Default()).WithEndpoint(srv.URL)

	if _, err := svc.Today(context.Background()); err != nil {
		t.Fatalf("Today() without redis error = %v", err)
	}
	if _, err := svc.Today(context.Background()); err != nil {
		t.Fatalf("Today() without redis error = %v", err)
	}
	// No cache, so every call goes upstream.
	if calls.Load() != 2 {
		t.Errorf("upstream called %d times, want 2", calls.Load())
	}
}

func TestService_Today_RedisDownFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	var calls atomic.Int32
	srv := newUpstream(t, &calls)

	svc := NewService(client, "test-key", slog.Default()).WithEndpoint(srv.URL)

	q, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("Today() with broken redis error = %v", err)
	}
	if q.Quote == "" {
		t.Error("expected a quote despite the cache being down")
	}
}

func TestService_Today_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewService(nil, "test-key", slog.Default()).WithEndpoint(srv.URL)

	if _, err := svc.Today(context.Background()); err == nil {
		t.Error("expected error from failing upstream")
	}
}

func TestService_Today_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Quote{})
	}))
	defer srv.Close()

	svc := NewService(nil, "test-key", slog.Default()).WithEndpoint(srv.URL)

	if _, err := svc.Today(context.Background()); err == nil {
		t.Error("expected error when upstream returns no quotes")
	}
}
