package providers

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

type flakeyProvider struct {
	failures int
	calls    int
	err      error
}

func (f *flakeyProvider) Fetch(ctx context.Context, req Request) (RawPayload, error) {
	_ = ctx
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return RawPayload{}, f.err
		}
		return RawPayload{}, errors.New("boom")
	}
	return RawPayload{Body: []byte("ok"), Hint: HintFor(req.Kind)}, nil
}

type rateLimitThenSuccessProvider struct {
	calls int
}

func (p *rateLimitThenSuccessProvider) Fetch(ctx context.Context, req Request) (RawPayload, error) {
	_ = ctx
	p.calls++
	if p.calls == 1 {
		return RawPayload{}, &RateLimitError{Provider: "rl", StatusCode: 429, RetryAfter: time.Millisecond}
	}
	return RawPayload{Body: []byte("ok"), Hint: HintFor(req.Kind)}, nil
}

type countingProvider struct {
	calls atomic.Int32
}

func (p *countingProvider) Fetch(ctx context.Context, req Request) (RawPayload, error) {
	_ = ctx
	p.calls.Add(1)
	return RawPayload{Hint: HintFor(req.Kind)}, nil
}
