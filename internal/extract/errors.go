package extract

import (
	"fmt"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
)

// BadUpstreamFormatError reports that an expected selector or pattern found
// nothing, which almost always means the upstream markup drifted.
type BadUpstreamFormatError struct {
	Field string
	Query string
	// Item is the zero-based list item index, or -1 outside list extraction.
	Item int
}

func (e *BadUpstreamFormatError) Error() string {
	if e.Item >= 0 {
		return fmt.Sprintf("bad upstream format: field %q (item %d): query %q matched nothing", e.Field, e.Item, e.Query)
	}
	return fmt.Sprintf("bad upstream format: field %q: query %q matched nothing", e.Field, e.Query)
}

func (e *BadUpstreamFormatError) Unwrap() error {
	return apperr.ErrBadUpstreamFormat
}

// Missing reports a required field that query could not locate.
func Missing(field, query string) *BadUpstreamFormatError {
	return &BadUpstreamFormatError{Field: field, Query: query, Item: -1}
}
