package ruleset

import (
	"errors"
	"fmt"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
	"github.com/mito-shogi/wars-kif-service/internal/extract"
)

// StructuralMismatchError means no ruleset accepts the payload under its hint.
type StructuralMismatchError struct {
	Hint    Hint
	Ruleset string
	Reason  string
}

func (e *StructuralMismatchError) Error() string {
	if e.Ruleset != "" {
		return fmt.Sprintf("structural mismatch for %s@%s: %s by %s", e.Hint.Endpoint, e.Hint.APIVersion, e.Reason, e.Ruleset)
	}
	return fmt.Sprintf("structural mismatch for %s@%s: %s", e.Hint.Endpoint, e.Hint.APIVersion, e.Reason)
}

func (e *StructuralMismatchError) Unwrap() error {
	return apperr.ErrStructuralMismatch
}

// atItem tags a format error with the list item it came from.
func atItem(err error, item int) error {
	var bad *extract.BadUpstreamFormatError
	if errors.As(err, &bad) {
		bad.Item = item
	}
	return err
}
