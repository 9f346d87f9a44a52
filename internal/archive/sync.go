package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/logging"
	"github.com/mito-shogi/wars-kif-service/internal/timeutil"
)

// GameSource is what the syncer needs from the games service.
type GameSource interface {
	History(ctx context.Context, userID string) ([]kifu.GameSummary, error)
	CSA(ctx context.Context, gameID string) (string, error)
}

// SyncConfig controls archive sync behavior.
type SyncConfig struct {
	Enabled  bool
	UserID   string
	Interval time.Duration
}

// Syncer archives the finished games of one user on a schedule.
type Syncer struct {
	source    GameSource
	writer    *Writer
	cfg       SyncConfig
	logger    *slog.Logger
	newTicker func(time.Duration) *time.Ticker
}

// NewSyncer constructs an archive syncer.
func NewSyncer(source GameSource, writer *Writer, cfg SyncConfig, logger *slog.Logger) *Syncer {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Syncer{
		source:    source,
		writer:    writer,
		cfg:       cfg,
		logger:    logger,
		newTicker: time.NewTicker,
	}
}

// Run syncs once, then again every Interval until ctx is done. Callers
// should run this in a goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil || s.source == nil || s.cfg.UserID == "" {
		return
	}
	logging.Info(s.logger, "archive sync starting",
		slog.String(logging.FieldUserID, s.cfg.UserID),
		slog.String("interval", s.cfg.Interval.String()),
		slog.String("path", s.writer.BasePath()),
	)
	s.syncAndLog(ctx)

	ticker := s.newTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncAndLog(ctx)
		}
	}
}

func (s *Syncer) syncAndLog(ctx context.Context) {
	start := time.Now()
	written, err := s.SyncOnce(ctx)
	if err != nil {
		logging.Warn(s.logger, "archive sync failed",
			slog.String(logging.FieldUserID, s.cfg.UserID),
			slog.Int(logging.FieldCount, written),
			logging.FieldError, err,
		)
		return
	}
	logging.Info(s.logger, "archive sync complete",
		slog.String(logging.FieldUserID, s.cfg.UserID),
		slog.Int(logging.FieldCount, written),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

// SyncOnce archives every finished game in the user's history that is not
// on disk yet and returns how many files it wrote. Games that fail to
// convert are skipped and reported in the joined error.
func (s *Syncer) SyncOnce(ctx context.Context) (int, error) {
	games, err := s.source.History(ctx, s.cfg.UserID)
	if err != nil {
		return 0, fmt.Errorf("archive history: %w", err)
	}

	var (
		written int
		errs    []error
	)
	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if game.Status == kifu.StatusPlaying || game.Result == kifu.ResultPlaying {
			continue
		}
		date, err := playDate(game.PlayTime)
		if err != nil {
			errs = append(errs, fmt.Errorf("game %s: %w", game.GameID, err))
			continue
		}
		if s.writer.Has(date, game.GameID) {
			continue
		}
		text, err := s.source.CSA(ctx, game.GameID)
		if err != nil {
			errs = append(errs, fmt.Errorf("game %s: %w", game.GameID, err))
			continue
		}
		if err := s.writer.WriteGame(date, game.GameID, text); err != nil {
			errs = append(errs, fmt.Errorf("game %s: %w", game.GameID, err))
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}

func playDate(playTime string) (string, error) {
	t, err := time.Parse(time.RFC3339, playTime)
	if err != nil {
		return "", err
	}
	return t.In(timeutil.JST).Format(time.DateOnly), nil
}
