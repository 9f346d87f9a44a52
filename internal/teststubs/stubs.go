package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/providers"
	"github.com/mito-shogi/wars-kif-service/internal/ruleset"
)

// StubProvider is a test double for providers.Provider. History requests
// use HistoryByClass when it has an entry for the time class.
type StubProvider struct {
	Payloads       map[providers.RequestKind]providers.RawPayload
	HistoryByClass map[kifu.TimeClass]providers.RawPayload
	Err            error
	Calls          atomic.Int32
	Notify         chan struct{}

	mu       sync.Mutex
	requests []providers.Request
}

// Fetch returns the payload configured for req.Kind and Err while tracking calls.
func (s *StubProvider) Fetch(ctx context.Context, req providers.Request) (providers.RawPayload, error) {
	_ = ctx
	s.Calls.Add(1)
	s.mu.Lock()
	s.requests = append(s.requests, req)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.mu.Unlock()
	if s.Err != nil {
		return providers.RawPayload{}, s.Err
	}
	payload := s.Payloads[req.Kind]
	if byClass, ok := s.HistoryByClass[req.TimeClass]; ok && req.Kind == providers.KindHistory {
		payload = byClass
	}
	if payload.Hint == (ruleset.Hint{}) {
		payload.Hint = providers.HintFor(req.Kind)
	}
	return payload, nil
}

// Requests returns a copy of every request seen so far.
func (s *StubProvider) Requests() []providers.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]providers.Request(nil), s.requests...)
}
