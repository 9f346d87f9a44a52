package testutil

import (
	"context"
	"net/http"

	"github.com/mito-shogi/wars-kif-service/internal/providers"
)

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) Fetch(ctx context.Context, req providers.Request) (providers.RawPayload, error) {
	return providers.RawPayload{}, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) Fetch(ctx context.Context, req providers.Request) (providers.RawPayload, error) {
	return providers.RawPayload{}, providers.ErrProviderUnavailable
}

// NotFoundProvider answers every request like the site does for an unknown id.
type NotFoundProvider struct{}

func (NotFoundProvider) Fetch(ctx context.Context, req providers.Request) (providers.RawPayload, error) {
	return providers.RawPayload{}, &providers.StatusError{Provider: "test", StatusCode: http.StatusNotFound}
}

// BodyProvider serves Body for every request with the default hint for its kind.
type BodyProvider struct {
	Body string
}

func (p BodyProvider) Fetch(ctx context.Context, req providers.Request) (providers.RawPayload, error) {
	return providers.RawPayload{Body: []byte(p.Body), Hint: providers.HintFor(req.Kind)}, nil
}
