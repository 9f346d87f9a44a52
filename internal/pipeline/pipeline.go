// Package pipeline is the library surface of the normalizer: raw payloads in,
// canonical entities and CSA text out. It performs no I/O and keeps no state.
package pipeline

import (
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/clock"
	"github.com/mito-shogi/wars-kif-service/internal/csa"
	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/ruleset"
)

// MoveLogUnit is the unit of the remaining-time values in detail move logs.
const MoveLogUnit = time.Second

// Normalize selects the ruleset for hint and extracts the canonical entity.
func Normalize(raw ruleset.RawPayload, hint ruleset.Hint) (kifu.Entity, error) {
	r, err := ruleset.Select(raw, hint)
	if err != nil {
		return kifu.Entity{}, err
	}
	return r.Extract(raw)
}

// Moves reconstructs the per-move clock consumption of a detail.
func Moves(detail kifu.GameDetail) ([]kifu.MoveRecord, error) {
	entries, err := clock.ParseMoveLog(detail.MoveLog, MoveLogUnit)
	if err != nil {
		return nil, err
	}
	return clock.Reconstruct(entries, clock.BudgetFor(detail.TimeClass))
}

// ToCSA renders a detail as CSA text.
func ToCSA(detail kifu.GameDetail) (string, error) {
	moves, err := Moves(detail)
	if err != nil {
		return "", err
	}
	return csa.Serialize(detail, moves)
}
