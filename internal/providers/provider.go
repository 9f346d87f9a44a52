package providers

import (
	"context"
	"errors"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/ruleset"
)

// ErrProviderUnavailable is returned when no upstream is wired.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RequestKind names the upstream endpoint a Request targets.
type RequestKind string

const (
	KindHistory RequestKind = "history"
	KindDetail  RequestKind = "detail"
	KindFriends RequestKind = "friends"
	KindMyPage  RequestKind = "mypage"
)

// Request describes one upstream fetch. Only the fields of its Kind are read.
type Request struct {
	Kind      RequestKind
	UserID    string
	GameID    string
	TimeClass kifu.TimeClass
	Page      int
	Prefix    string
}

// RawPayload is an upstream body together with the hint the ruleset
// selector needs to pick its extraction rules.
type RawPayload struct {
	Body        []byte
	ContentType string
	Hint        ruleset.Hint
}

// Raw strips the hint for the normalizer.
func (p RawPayload) Raw() ruleset.RawPayload {
	return ruleset.RawPayload{Body: p.Body, ContentType: p.ContentType}
}

// Provider fetches raw payloads from the game platform. Providers do no
// parsing; the pipeline owns normalization.
type Provider interface {
	Fetch(ctx context.Context, req Request) (RawPayload, error)
}

// HintFor returns the endpoint and version tag a provider reports for kind.
func HintFor(kind RequestKind) ruleset.Hint {
	switch kind {
	case KindHistory:
		return ruleset.Hint{Endpoint: ruleset.EndpointHistory, APIVersion: ruleset.VersionWebapp10}
	case KindDetail:
		return ruleset.Hint{Endpoint: ruleset.EndpointDetail, APIVersion: ruleset.VersionWebapp9}
	case KindFriends:
		return ruleset.Hint{Endpoint: ruleset.EndpointFriends, APIVersion: ruleset.VersionLegacy}
	case KindMyPage:
		return ruleset.Hint{Endpoint: ruleset.EndpointMyPage, APIVersion: ruleset.VersionWebapp10}
	default:
		return ruleset.Hint{}
	}
}
