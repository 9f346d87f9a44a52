package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/app/games"
	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/metrics"
	"github.com/mito-shogi/wars-kif-service/internal/providers/fixture"
	"github.com/mito-shogi/wars-kif-service/internal/store"
)

type stubRefresher struct {
	mu     sync.Mutex
	games  []kifu.GameSummary
	err    error
	users  []string
	calls  atomic.Int32
	notify chan struct{}
}

func (s *stubRefresher) RefreshHistory(ctx context.Context, userID string) ([]kifu.GameSummary, error) {
	_ = ctx
	if s.notify != nil {
		select {
		case <-s.notify:
		default:
			close(s.notify)
		}
	}
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, userID)
	return s.games, s.err
}

func (s *stubRefresher) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func TestPollerRefreshesConfiguredUser(t *testing.T) {
	refresher := &stubRefresher{
		games:  []kifu.GameSummary{{GameID: "poll-game"}},
		notify: make(chan struct{}),
	}

	p := New(refresher, "alice", nil, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-refresher.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	time.Sleep(30 * time.Millisecond) // allow at least one ticker fire

	cancel()
	_ = p.Stop(context.Background())

	refresher.mu.Lock()
	defer refresher.mu.Unlock()
	if len(refresher.users) < 1 || refresher.users[0] != "alice" {
		t.Fatalf("expected refresh for alice, got %v", refresher.users)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	refresher := &stubRefresher{notify: make(chan struct{})}

	p := New(refresher, "alice", nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-refresher.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	callsAfterStop := refresher.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if refresher.calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional fetches after stop; before=%d after=%d", callsAfterStop, refresher.calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&stubRefresher{}, "alice", nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&stubRefresher{}, "alice", nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&stubRefresher{}, "alice", nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

func TestPollerStartReturnsWhenAlreadyStarted(t *testing.T) {
	p := New(&stubRefresher{}, "alice", nil, nil, time.Hour)
	p.started = true
	p.Start(context.Background())
	if p.ticker != nil {
		t.Fatalf("expected ticker not to be created when already started")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	refresher := &stubRefresher{
		games: []kifu.GameSummary{{GameID: "a"}, {GameID: "b"}},
		err:   errors.New("boom"),
	}
	rec := metrics.NewRecorder()

	p := New(refresher, "alice", nil, rec, time.Millisecond)
	ctx := context.Background()

	p.fetchOnce(ctx)
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}

	refresher.setErr(nil)
	p.fetchOnce(ctx)
	status = p.Status()
	if status.ConsecutiveFailures != 0 {
		t.Fatalf("expected failures reset, got %d", status.ConsecutiveFailures)
	}
	if status.LastSuccess.IsZero() || status.LastCount != 2 {
		t.Fatalf("expected success with 2 games, got %+v", status)
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestPollerLogsOnErrorAndSuccess(t *testing.T) {
	refresher := &stubRefresher{err: errors.New("fail")}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p := New(refresher, "alice", logger, nil, time.Second)
	p.fetchOnce(context.Background()) // should log error

	refresher.setErr(nil)
	p.fetchOnce(context.Background()) // should log info
}

func TestPollerWarmsHistoryCache(t *testing.T) {
	cache := store.NewMemoryStore()
	svc := games.NewService(fixture.New(), cache, nil, nil, time.Hour)

	p := New(svc, "alice", nil, nil, time.Hour)
	p.fetchOnce(context.Background())

	if !p.Status().IsReady() {
		t.Fatalf("expected ready status, got %+v", p.Status())
	}
	var cached []kifu.GameSummary
	if err := store.GetJSON(context.Background(), cache, store.HistoryKey("alice"), &cached); err != nil {
		t.Fatalf("expected cached history, got %v", err)
	}
	if len(cached) != p.Status().LastCount || len(cached) == 0 {
		t.Fatalf("expected %d cached games, got %d", p.Status().LastCount, len(cached))
	}
}

func BenchmarkPollerFetchOnce(b *testing.B) {
	refresher := &stubRefresher{games: []kifu.GameSummary{{GameID: "bench-game"}}}
	p := New(refresher, "alice", nil, nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.fetchOnce(ctx)
	}
}
