package clock

import (
	"fmt"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
)

// MoveLogCorruptError reports the first move log entry that cannot be
// decoded or that implies negative thinking time.
type MoveLogCorruptError struct {
	Index  int
	Entry  string
	Reason string
}

func (e *MoveLogCorruptError) Error() string {
	return fmt.Sprintf("move log corrupt at entry %d (%q): %s", e.Index, e.Entry, e.Reason)
}

func (e *MoveLogCorruptError) Unwrap() error {
	return apperr.ErrMoveLogCorrupt
}
