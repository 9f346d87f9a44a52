package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
)

// Violation is one failed constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every constraint an entity violated.
type ValidationError struct {
	Entity     string      `json:"entity"`
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return apperr.ErrValidation
}

// violations flattens ozzo errors into sorted field/message pairs. Nested
// validation.Errors are expanded with dotted field names.
func violations(prefix string, errs validation.Errors) []Violation {
	out := make([]Violation, 0, len(errs))
	for field, err := range errs {
		if err == nil {
			continue
		}
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(err, &nested) {
			out = append(out, violations(name, nested)...)
			continue
		}
		out = append(out, Violation{Field: name, Message: err.Error()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Field < out[j].Field
	})
	return out
}

func asError(entity string, list []Violation) error {
	if len(list) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Violations: list}
}
