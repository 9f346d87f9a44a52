// Package fixture serves recorded upstream payloads for local runs and tests.
package fixture

import (
	"context"
	"embed"
	"fmt"
	"net/http"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/providers"
)

// GameID is the only game the fixture detail endpoint knows.
const GameID = "alice-bob-20240102_030405"

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeJS   = "text/javascript; charset=utf-8"
)

//go:embed data
var payloads embed.FS

// Provider returns the same recorded payloads for every user. The 10 second
// history is an empty page, as for a user who never played that class.
type Provider struct {
	files embed.FS
}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{files: payloads}
}

// Fetch returns the recorded body for req.Kind. Detail requests for any game
// other than GameID answer 404 like the live site does.
func (p *Provider) Fetch(ctx context.Context, req providers.Request) (providers.RawPayload, error) {
	if err := ctx.Err(); err != nil {
		return providers.RawPayload{}, err
	}

	var name, contentType string
	switch req.Kind {
	case providers.KindHistory:
		name, contentType = "history.html", contentTypeHTML
		if req.TimeClass == kifu.TimeClass10Sec {
			name = "history_empty.html"
		}
	case providers.KindDetail:
		if req.GameID != GameID {
			return providers.RawPayload{}, &providers.StatusError{Provider: "fixture", StatusCode: http.StatusNotFound}
		}
		name, contentType = "game_analysis_info.json", contentTypeJSON
	case providers.KindFriends:
		name, contentType = "friends_search.js", contentTypeJS
	case providers.KindMyPage:
		name, contentType = "mypage.html", contentTypeHTML
	default:
		return providers.RawPayload{}, fmt.Errorf("fixture: unknown request kind %q", req.Kind)
	}

	body, err := p.files.ReadFile("data/" + name)
	if err != nil {
		return providers.RawPayload{}, err
	}
	return providers.RawPayload{
		Body:        body,
		ContentType: contentType,
		Hint:        providers.HintFor(req.Kind),
	}, nil
}
