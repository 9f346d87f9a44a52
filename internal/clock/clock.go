// Package clock rebuilds per-move thinking time from the remaining-time
// snapshots recorded in a Shogi Wars move log.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/mapper"
)

// Entry is one move of the log and the mover's remaining time after it.
type Entry struct {
	Notation        string
	RemainingMillis int64
}

// Budget is the clock both sides start with.
type Budget struct {
	MainMillis      int64
	ByoyomiMillis   int64
	IncrementMillis int64
}

// BudgetFor returns the starting clock of a time class.
func BudgetFor(tc kifu.TimeClass) Budget {
	return BudgetFromControl(mapper.TimeControlFor(tc))
}

// BudgetFromControl converts a time control in seconds to a millisecond budget.
func BudgetFromControl(tcl kifu.TimeControl) Budget {
	return Budget{
		MainMillis:      int64(tcl.MainSeconds) * 1000,
		ByoyomiMillis:   int64(tcl.ByoyomiSeconds) * 1000,
		IncrementMillis: int64(tcl.IncrementSeconds) * 1000,
	}
}

// ParseMoveLog splits "move,remaining|move,remaining|..." into entries.
// Remaining values are counted in unit. An empty log has no entries.
func ParseMoveLog(kif string, unit time.Duration) ([]Entry, error) {
	kif = strings.TrimSpace(kif)
	if kif == "" {
		return []Entry{}, nil
	}
	if unit <= 0 {
		unit = time.Second
	}
	parts := strings.Split(kif, "|")
	entries := make([]Entry, 0, len(parts))
	for i, part := range parts {
		move, remaining, ok := strings.Cut(part, ",")
		move = strings.TrimSpace(move)
		if !ok || move == "" {
			return nil, &MoveLogCorruptError{Index: i, Entry: part, Reason: "expected move,remaining"}
		}
		n, err := strconv.ParseInt(strings.TrimSpace(remaining), 10, 64)
		if err != nil {
			return nil, &MoveLogCorruptError{Index: i, Entry: part, Reason: "remaining time is not an integer"}
		}
		if n < 0 {
			return nil, &MoveLogCorruptError{Index: i, Entry: part, Reason: "remaining time is negative"}
		}
		entries = append(entries, Entry{
			Notation:        move,
			RemainingMillis: n * unit.Milliseconds(),
		})
	}
	return entries, nil
}

// side is the running clock of one player.
type side struct {
	mainMillis int64
}

// Reconstruct returns one MoveRecord per entry with the time the mover spent
// on it. Sides alternate starting with the first entry. A snapshot larger
// than the time the mover had available fails with *MoveLogCorruptError.
func Reconstruct(entries []Entry, budget Budget) ([]kifu.MoveRecord, error) {
	clocks := [2]side{
		{mainMillis: budget.MainMillis},
		{mainMillis: budget.MainMillis},
	}
	records := make([]kifu.MoveRecord, 0, len(entries))
	for i, entry := range entries {
		mover := &clocks[i%2]
		available := mover.mainMillis + budget.ByoyomiMillis + budget.IncrementMillis
		consumed := available - entry.RemainingMillis
		if consumed < 0 {
			return nil, &MoveLogCorruptError{
				Index:  i,
				Entry:  entry.Notation,
				Reason: fmt.Sprintf("remaining %dms exceeds available %dms", entry.RemainingMillis, available),
			}
		}
		mover.mainMillis = min(entry.RemainingMillis, mover.mainMillis+budget.IncrementMillis)
		records = append(records, kifu.MoveRecord{
			Notation:       entry.Notation,
			ConsumedMillis: consumed,
		})
	}
	return records, nil
}
