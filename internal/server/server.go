package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mito-shogi/wars-kif-service/internal/app/games"
	"github.com/mito-shogi/wars-kif-service/internal/archive"
	"github.com/mito-shogi/wars-kif-service/internal/config"
	httpserver "github.com/mito-shogi/wars-kif-service/internal/http"
	"github.com/mito-shogi/wars-kif-service/internal/http/handlers"
	"github.com/mito-shogi/wars-kif-service/internal/logging"
	"github.com/mito-shogi/wars-kif-service/internal/metrics"
	"github.com/mito-shogi/wars-kif-service/internal/poller"
	"github.com/mito-shogi/wars-kif-service/internal/providers"
	"github.com/mito-shogi/wars-kif-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	cache         store.Store
	gamesService  *games.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	archiver      *archive.Syncer
	metricsStop   func(context.Context) error
	// closers run last during shutdown (rate limiter ticker, redis pool).
	closers []func() error
}

// New constructs a server with default provider, cache and poller wiring.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) *Server {
	return newServer(ctx, cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.Provider) *Server {
	return newServer(context.Background(), cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.Provider, recorder *metrics.Recorder) *Server {
	return newServer(context.Background(), cfg, logger, provider, recorder)
}

func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.Provider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	var closers []func() error
	if provider == nil {
		var release func()
		provider, release = newProviderFactory(logger, recorder).build(cfg)
		closers = append(closers, func() error { release(); return nil })
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), cfg.Retries, cfg.RetryBackoff)
	}

	cache, closeCache := buildStore(ctx, cfg.Cache, logger)
	if closeCache != nil {
		closers = append(closers, closeCache)
	}
	gameSvc := games.NewService(provider, cache, recorder, logger, cfg.Cache.TTL)

	var plr Poller
	if cfg.Wars.UserID != "" {
		plr = poller.New(gameSvc, cfg.Wars.UserID, logger, recorder, cfg.FetchInterval)
	}
	httpSrv := buildHTTPServer(cfg, gameSvc, logger, recorder, plr)
	archiver := buildArchiver(cfg, gameSvc, logger)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		cache:         cache,
		gamesService:  gameSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		archiver:      archiver,
		metricsStop:   metricsShutdown,
		closers:       closers,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
		poller:       plr,
	}
}

// buildArchiver returns nil unless both ARCHIVE_DIR and WARS_USER_ID are set.
func buildArchiver(cfg config.Config, gameSvc *games.Service, logger *slog.Logger) *archive.Syncer {
	if cfg.Archive.Dir == "" || cfg.Wars.UserID == "" {
		return nil
	}
	writer := archive.NewWriter(cfg.Archive.Dir, cfg.Archive.RetentionDays)
	return archive.NewSyncer(gameSvc, writer, archive.SyncConfig{
		Enabled:  true,
		UserID:   cfg.Wars.UserID,
		Interval: cfg.Archive.Interval,
	}, logger)
}

func buildHTTPServer(cfg config.Config, gameSvc *games.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(gameSvc, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(gameSvc, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin, logger, recorder)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}
	if s.archiver != nil {
		go s.archiver.Run(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop poller", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && s.logger != nil {
			s.logger.Warn("close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", logging.FieldError, err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
