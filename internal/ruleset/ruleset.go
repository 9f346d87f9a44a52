// Package ruleset selects the extraction rules for a raw upstream payload
// from its endpoint and API version tag, and runs them.
package ruleset

import (
	"strings"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/extract"
)

// Endpoints the platform serves payloads from.
const (
	EndpointHistory  = "games/history"
	EndpointDetail   = "api/app/games/game_analysis_info"
	EndpointFriends  = "friends/search"
	EndpointMyPage   = "users/mypage"
	VersionWebapp10  = "webapp_10.0.0_standard"
	VersionWebapp9   = "webapp_9.0.0_standard"
	VersionLegacy    = "legacy"
	contentTypeJSON  = "application/json"
	historyContainer = "div.game_list_contents"
	historyFrame     = "div.contents"
)

// Hint tells the selector where a payload came from.
type Hint struct {
	Endpoint   string `json:"endpoint"`
	APIVersion string `json:"api_version"`
}

func (h Hint) normalized() Hint {
	return Hint{
		Endpoint:   strings.Trim(strings.TrimSpace(h.Endpoint), "/"),
		APIVersion: strings.TrimSpace(h.APIVersion),
	}
}

// RawPayload is an upstream response body as fetched.
type RawPayload struct {
	Body        []byte
	ContentType string
}

func (p RawPayload) text() string {
	return string(p.Body)
}

func (p RawPayload) isJSON() bool {
	if strings.Contains(strings.ToLower(p.ContentType), contentTypeJSON) {
		return true
	}
	trimmed := strings.TrimSpace(p.text())
	return strings.HasPrefix(trimmed, "{")
}

// Ruleset is one versioned extraction strategy.
type Ruleset struct {
	Name        string
	Endpoint    string
	APIVersion  string
	RankFormula extract.RankFormula
	Kind        kifu.EntityKind

	matches func(RawPayload) bool
	extract func(RawPayload, extract.RankFormula) (kifu.Entity, error)
}

// Matches runs the ruleset's shape check.
func (r Ruleset) Matches(p RawPayload) bool {
	return r.matches(p)
}

// Extract turns the payload into a validated canonical entity.
func (r Ruleset) Extract(p RawPayload) (kifu.Entity, error) {
	return r.extract(p, r.RankFormula)
}

var registry = []Ruleset{
	{
		Name:        "history/" + VersionWebapp10,
		Endpoint:    EndpointHistory,
		APIVersion:  VersionWebapp10,
		RankFormula: extract.RankKyuNegated,
		Kind:        kifu.KindSummaries,
		matches:     historyShape,
		extract:     extractHistory,
	},
	{
		Name:        "history/" + VersionWebapp9,
		Endpoint:    EndpointHistory,
		APIVersion:  VersionWebapp9,
		RankFormula: extract.RankKyuLegacy,
		Kind:        kifu.KindSummaries,
		matches:     historyShape,
		extract:     extractHistory,
	},
	{
		Name:        "game_analysis_info/" + VersionWebapp9,
		Endpoint:    EndpointDetail,
		APIVersion:  VersionWebapp9,
		RankFormula: extract.RankKyuNegated,
		Kind:        kifu.KindDetail,
		matches:     detailShape,
		extract:     extractDetail,
	},
	{
		Name:        "friends_search/" + VersionLegacy,
		Endpoint:    EndpointFriends,
		APIVersion:  VersionLegacy,
		RankFormula: extract.RankKyuLegacy,
		Kind:        kifu.KindFriends,
		matches:     friendsShape,
		extract:     extractFriends,
	},
	{
		Name:        "mypage/" + VersionWebapp10,
		Endpoint:    EndpointMyPage,
		APIVersion:  VersionWebapp10,
		RankFormula: extract.RankKyuNegated,
		Kind:        kifu.KindProfile,
		matches:     myPageShape,
		extract:     extractMyPage,
	},
}

// All returns the registered rulesets in selection order.
func All() []Ruleset {
	out := make([]Ruleset, len(registry))
	copy(out, registry)
	return out
}

// Select returns the ruleset registered for the hint's endpoint and version
// whose shape check accepts the payload. There is no fallback.
func Select(payload RawPayload, hint Hint) (Ruleset, error) {
	h := hint.normalized()
	var candidate *Ruleset
	for i := range registry {
		r := &registry[i]
		if r.Endpoint != h.Endpoint || r.APIVersion != h.APIVersion {
			continue
		}
		candidate = r
		if r.Matches(payload) {
			return *r, nil
		}
	}
	if candidate == nil {
		return Ruleset{}, &StructuralMismatchError{Hint: h, Reason: "no ruleset registered"}
	}
	return Ruleset{}, &StructuralMismatchError{Hint: h, Ruleset: candidate.Name, Reason: "payload shape rejected"}
}
