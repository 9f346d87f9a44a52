package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mito-shogi/wars-kif-service/internal/config"
	"github.com/mito-shogi/wars-kif-service/internal/metrics"
	"github.com/mito-shogi/wars-kif-service/internal/providers/fixture"
	"github.com/mito-shogi/wars-kif-service/internal/testutil"
)

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: config.ProviderFixture,
	}

	srv := newServerWithMetrics(cfg, nil, fixture.New(), nil)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsSetup(t *testing.T) {
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: false},
		Provider: config.ProviderFixture,
	}

	srv := newServerWithMetrics(cfg, nil, fixture.New(), nil)
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: config.ProviderFixture,
	}

	srv := newServerWithMetrics(cfg, nil, fixture.New(), rec)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no metrics shutdown for injected recorder")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected injected shutdown to succeed, got %v", err)
	}
}

func TestServerRecordsProviderAttempts(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	cfg := config.Config{Provider: config.ProviderFixture}

	srv := newServerWithMetrics(cfg, nil, fixture.New(), rec)
	if _, err := srv.gamesService.Detail(context.Background(), fixture.GameID); err != nil {
		t.Fatalf("expected fixture detail, got %v", err)
	}
	if rec.ProviderCalls(config.ProviderFixture) != 1 {
		t.Fatalf("expected one provider call, got %d", rec.ProviderCalls(config.ProviderFixture))
	}
}
