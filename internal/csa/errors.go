package csa

import (
	"fmt"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
)

// PositionParseError means the initial position could not be loaded.
type PositionParseError struct {
	Position string
	Err      error
}

func (e *PositionParseError) Error() string {
	return fmt.Sprintf("initial position %q: %v", e.Position, e.Err)
}

func (e *PositionParseError) Unwrap() []error {
	return []error{apperr.ErrPositionParse, e.Err}
}

// MoveParseError means the move at Index is not CSA move notation.
type MoveParseError struct {
	Index    int
	Notation string
	Err      error
}

func (e *MoveParseError) Error() string {
	return fmt.Sprintf("move %d %q: %v", e.Index, e.Notation, e.Err)
}

func (e *MoveParseError) Unwrap() []error {
	return []error{apperr.ErrMoveParse, e.Err}
}

// IllegalMoveError means the move at Index is well formed but not playable.
type IllegalMoveError struct {
	Index    int
	Notation string
	Err      error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("move %d %q: %v", e.Index, e.Notation, e.Err)
}

func (e *IllegalMoveError) Unwrap() []error {
	return []error{apperr.ErrIllegalMove, e.Err}
}
