// Package apperr defines the error kinds shared by the normalization and
// serialization pipeline. Component packages return typed errors that unwrap
// to one of these sentinels so callers can branch with errors.Is.
package apperr

import "errors"

var (
	ErrStructuralMismatch = errors.New("structural mismatch")
	ErrBadUpstreamFormat  = errors.New("bad upstream format")
	ErrValidation         = errors.New("validation failed")
	ErrMoveLogCorrupt     = errors.New("move log corrupt")
	ErrPositionParse      = errors.New("position parse error")
	ErrMoveParse          = errors.New("move parse error")
	ErrIllegalMove        = errors.New("illegal move")
)

var inputRejections = []error{
	ErrStructuralMismatch,
	ErrBadUpstreamFormat,
	ErrValidation,
	ErrMoveLogCorrupt,
	ErrPositionParse,
	ErrMoveParse,
	ErrIllegalMove,
}

// IsInputRejection reports whether err means the upstream payload was
// rejected on semantic grounds, as opposed to an opaque fetch failure.
func IsInputRejection(err error) bool {
	if err == nil {
		return false
	}
	for _, kind := range inputRejections {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
