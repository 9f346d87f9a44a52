package testutil

import (
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/app/games"
	"github.com/mito-shogi/wars-kif-service/internal/metrics"
	"github.com/mito-shogi/wars-kif-service/internal/providers"
	"github.com/mito-shogi/wars-kif-service/internal/providers/fixture"
	"github.com/mito-shogi/wars-kif-service/internal/store"
)

// NewFixtureService builds a games service that reads the recorded fixture
// payloads and caches in process memory.
func NewFixtureService() (*games.Service, *store.MemoryStore, *metrics.Recorder) {
	return NewServiceWithProvider(fixture.New())
}

// NewServiceWithProvider builds a games service over p with an in-memory cache.
func NewServiceWithProvider(p providers.Provider) (*games.Service, *store.MemoryStore, *metrics.Recorder) {
	cache := store.NewMemoryStore()
	rec := metrics.NewRecorder()
	return games.NewService(p, cache, rec, nil, time.Hour), cache, rec
}
