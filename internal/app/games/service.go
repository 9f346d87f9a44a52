// Package games coordinates fetching, normalizing and caching game records.
package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/logging"
	"github.com/mito-shogi/wars-kif-service/internal/metrics"
	"github.com/mito-shogi/wars-kif-service/internal/pipeline"
	"github.com/mito-shogi/wars-kif-service/internal/providers"
	"github.com/mito-shogi/wars-kif-service/internal/ruleset"
	"github.com/mito-shogi/wars-kif-service/internal/store"
)

// Service fetches raw payloads from a Provider and turns them into
// canonical records. Finished games are cached as CSA text.
type Service struct {
	provider providers.Provider
	store    store.Store
	metrics  *metrics.Recorder
	logger   *slog.Logger
	ttl      time.Duration
}

// NewService constructs a Service. A nil store disables caching.
func NewService(provider providers.Provider, cache store.Store, recorder *metrics.Recorder, logger *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		provider: provider,
		store:    cache,
		metrics:  recorder,
		logger:   logger,
		ttl:      ttl,
	}
}

// History returns the first history page of every time class for userID,
// preferring the cached copy written by the last refresh.
func (s *Service) History(ctx context.Context, userID string) ([]kifu.GameSummary, error) {
	if s.store != nil {
		var cached []kifu.GameSummary
		err := store.GetJSON(ctx, s.store, store.HistoryKey(userID), &cached)
		s.metrics.RecordCacheLookup(err == nil)
		if err == nil {
			return cached, nil
		}
	}
	return s.RefreshHistory(ctx, userID)
}

// RefreshHistory fetches the history of userID and replaces the cached copy.
func (s *Service) RefreshHistory(ctx context.Context, userID string) ([]kifu.GameSummary, error) {
	pages := make([][]kifu.GameSummary, len(kifu.TimeClasses))

	g, gCtx := errgroup.WithContext(ctx)
	for i, tc := range kifu.TimeClasses {
		i, tc := i, tc
		g.Go(func() error {
			entity, err := s.fetch(gCtx, providers.Request{
				Kind:      providers.KindHistory,
				UserID:    userID,
				TimeClass: tc,
				Page:      1,
			}, kifu.KindSummaries)
			if err != nil {
				return fmt.Errorf("history %s: %w", tc, err)
			}
			pages[i] = entity.Summaries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	games := mergeSummaries(pages)
	if s.store != nil {
		if err := store.SetJSON(ctx, s.store, store.HistoryKey(userID), games, s.ttl); err != nil {
			logging.Warn(logging.FromContext(ctx, s.logger), "history cache write failed", logging.FieldUserID, userID, logging.FieldError, err)
		}
	}
	return games, nil
}

// Detail returns the canonical detail of gameID.
func (s *Service) Detail(ctx context.Context, gameID string) (kifu.GameDetail, error) {
	entity, err := s.fetch(ctx, providers.Request{Kind: providers.KindDetail, GameID: gameID}, kifu.KindDetail)
	if err != nil {
		return kifu.GameDetail{}, err
	}
	return *entity.Detail, nil
}

// CSA returns gameID as CSA text. Games still in progress are not cached.
func (s *Service) CSA(ctx context.Context, gameID string) (string, error) {
	if s.store != nil {
		raw, err := s.store.Get(ctx, store.CSAKey(gameID))
		s.metrics.RecordCacheLookup(err == nil)
		if err == nil {
			return string(raw), nil
		}
	}

	detail, err := s.Detail(ctx, gameID)
	if err != nil {
		return "", err
	}
	text, err := pipeline.ToCSA(detail)
	if err != nil {
		return "", err
	}

	if s.store != nil && detail.Result != kifu.ResultPlaying {
		if err := s.store.Set(ctx, store.CSAKey(gameID), []byte(text), s.ttl); err != nil {
			logging.Warn(logging.FromContext(ctx, s.logger), "csa cache write failed", logging.FieldGameID, gameID, logging.FieldError, err)
		}
	}
	return text, nil
}

// Profile returns the my-page of userID.
func (s *Service) Profile(ctx context.Context, userID string) (kifu.UserProfile, error) {
	entity, err := s.fetch(ctx, providers.Request{Kind: providers.KindMyPage, UserID: userID}, kifu.KindProfile)
	if err != nil {
		return kifu.UserProfile{}, err
	}
	return *entity.Profile, nil
}

// Friends searches users whose name starts with prefix.
func (s *Service) Friends(ctx context.Context, prefix string) (kifu.FriendList, error) {
	entity, err := s.fetch(ctx, providers.Request{Kind: providers.KindFriends, Prefix: prefix}, kifu.KindFriends)
	if err != nil {
		return kifu.FriendList{}, err
	}
	return *entity.Friends, nil
}

func (s *Service) fetch(ctx context.Context, req providers.Request, want kifu.EntityKind) (kifu.Entity, error) {
	if s.provider == nil {
		return kifu.Entity{}, providers.ErrProviderUnavailable
	}
	payload, err := s.provider.Fetch(ctx, req)
	if err != nil {
		return kifu.Entity{}, err
	}

	start := time.Now()
	entity, err := pipeline.Normalize(payload.Raw(), payload.Hint)
	s.metrics.RecordNormalize(rulesetLabel(payload.Hint), time.Since(start), err)
	if err == nil && entity.Kind != want {
		err = fmt.Errorf("%w: expected %s entity, got %s", apperr.ErrStructuralMismatch, want, entity.Kind)
	}
	if err != nil {
		logger := logging.FromContext(ctx, s.logger)
		logging.Error(logger, "normalize failed", err,
			logging.FieldEndpoint, payload.Hint.Endpoint,
			logging.FieldRuleset, rulesetLabel(payload.Hint),
		)
		return kifu.Entity{}, err
	}
	return entity, nil
}

func rulesetLabel(h ruleset.Hint) string {
	return h.Endpoint + "@" + h.APIVersion
}

// mergeSummaries concatenates pages in order, keeping the first row seen for
// each game id.
func mergeSummaries(pages [][]kifu.GameSummary) []kifu.GameSummary {
	seen := make(map[string]struct{})
	out := make([]kifu.GameSummary, 0)
	for _, page := range pages {
		for _, game := range page {
			if _, dup := seen[game.GameID]; dup {
				continue
			}
			seen[game.GameID] = struct{}{}
			out = append(out, game)
		}
	}
	return out
}

// IsUpstreamError reports whether err came from the provider rather than
// from normalizing its payload.
func IsUpstreamError(err error) bool {
	if errors.Is(err, providers.ErrProviderUnavailable) {
		return true
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		return true
	}
	_, ok := providers.AsStatusError(err)
	return ok
}
