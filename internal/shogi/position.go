package shogi

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMoveSyntax is returned for notation that is not a CSA move.
	ErrMoveSyntax = errors.New("malformed csa move")
	// ErrIllegal is returned for a well formed move the position does not allow.
	ErrIllegal = errors.New("illegal move")
)

// MoveError describes why a move was rejected.
type MoveError struct {
	Move   string
	Reason string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Err, e.Move, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Position is a board, both hands and the side to move.
type Position struct {
	board [81]Piece
	hands [2][King]int
	turn  Color
}

// Turn returns the side to move.
func (p *Position) Turn() Color {
	return p.turn
}

// At returns the piece on sq.
func (p *Position) At(sq Square) Piece {
	if !sq.valid() {
		return Piece{}
	}
	return p.board[sq.index()]
}

// Hand returns how many pieces of kind c holds.
func (p *Position) Hand(c Color, kind Kind) int {
	if kind <= NoKind || kind >= King {
		return 0
	}
	return p.hands[c][kind]
}

// Move is a parsed, legal move. From is the zero Square for drops.
type Move struct {
	Color    Color
	From     Square
	To       Square
	Kind     Kind
	Promote  bool
	Captured Kind
}

// IsDrop reports whether the move places a piece from hand.
func (m Move) IsDrop() bool {
	return m.From == Square{}
}

// CSA renders the move as "+7776FU".
func (m Move) CSA() string {
	return fmt.Sprintf("%s%d%d%d%d%s", m.Color.Sign(), m.From.File, m.From.Rank, m.To.File, m.To.Rank, m.Kind.CSA())
}

var csaMovePattern = regexp.MustCompile(`^([+-]?)([0-9])([0-9])([1-9])([1-9])([A-Z]{2})$`)

// ParseCSAMove parses notation such as "+7776FU" against the position and
// checks that it is legal. A missing side prefix means the side to move.
func (p *Position) ParseCSAMove(notation string) (Move, error) {
	text := strings.TrimSpace(notation)
	m := csaMovePattern.FindStringSubmatch(text)
	if m == nil {
		return Move{}, &MoveError{Move: notation, Reason: "expected [+-]FFTTPP", Err: ErrMoveSyntax}
	}
	kind, ok := KindFromCSA(m[6])
	if !ok {
		return Move{}, &MoveError{Move: notation, Reason: "unknown piece " + m[6], Err: ErrMoveSyntax}
	}
	from := Square{File: digit(m[2]), Rank: digit(m[3])}
	if (from.File == 0) != (from.Rank == 0) {
		return Move{}, &MoveError{Move: notation, Reason: "half empty origin square", Err: ErrMoveSyntax}
	}
	color := p.turn
	switch m[1] {
	case "+":
		color = Black
	case "-":
		color = White
	}
	move := Move{
		Color: color,
		From:  from,
		To:    Square{File: digit(m[4]), Rank: digit(m[5])},
		Kind:  kind,
	}
	if err := p.check(&move); err != nil {
		return Move{}, &MoveError{Move: notation, Reason: err.Error(), Err: ErrIllegal}
	}
	return move, nil
}

func (p *Position) check(m *Move) error {
	if m.Color != p.turn {
		return errors.New("not the side to move")
	}
	target := p.At(m.To)
	if !target.Empty() && target.Color == m.Color {
		return errors.New("destination holds own piece")
	}
	if m.IsDrop() {
		if err := p.checkDrop(*m); err != nil {
			return err
		}
	} else if err := p.checkBoardMove(m); err != nil {
		return err
	}

	next := *p
	next.Apply(*m)
	if king, ok := next.kingSquare(m.Color); ok && next.attacked(king, m.Color.Opponent()) {
		return errors.New("leaves own king in check")
	}
	return nil
}

func (p *Position) checkDrop(m Move) error {
	if m.Kind >= King {
		return fmt.Errorf("cannot drop %s", m.Kind.CSA())
	}
	if p.hands[m.Color][m.Kind] == 0 {
		return fmt.Errorf("no %s in hand", m.Kind.CSA())
	}
	if !p.At(m.To).Empty() {
		return errors.New("drop on occupied square")
	}
	if deadSquare(m.Color, m.Kind, m.To.Rank) {
		return errors.New("dropped piece could never move")
	}
	if m.Kind == Pawn {
		for rank := 1; rank <= 9; rank++ {
			if p.At(Square{File: m.To.File, Rank: rank}) == (Piece{Color: m.Color, Kind: Pawn}) {
				return errors.New("second pawn on file")
			}
		}
	}
	return nil
}

func (p *Position) checkBoardMove(m *Move) error {
	piece := p.At(m.From)
	if piece.Empty() {
		return errors.New("no piece on origin square")
	}
	if piece.Color != m.Color {
		return errors.New("origin piece belongs to opponent")
	}
	switch {
	case m.Kind == piece.Kind:
		if deadSquare(m.Color, piece.Kind, m.To.Rank) {
			return errors.New("promotion is mandatory")
		}
	default:
		promoted, ok := piece.Kind.Promoted()
		if !ok || promoted != m.Kind || promoted == piece.Kind {
			return fmt.Errorf("%s cannot become %s", piece.Kind.CSA(), m.Kind.CSA())
		}
		if relativeRank(m.Color, m.From.Rank) > 3 && relativeRank(m.Color, m.To.Rank) > 3 {
			return errors.New("promotion outside the zone")
		}
		m.Promote = true
	}
	if p.At(m.To).Kind == King {
		return errors.New("king cannot be captured")
	}
	if !p.reaches(m.From, m.To, piece) {
		return fmt.Errorf("%s cannot reach %d%d", piece.Kind.CSA(), m.To.File, m.To.Rank)
	}
	m.Captured = p.At(m.To).Kind
	return nil
}

// deadSquare reports whether an unpromoted piece on rank could never move again.
func deadSquare(c Color, kind Kind, rank int) bool {
	rel := relativeRank(c, rank)
	switch kind {
	case Pawn, Lance:
		return rel == 1
	case Knight:
		return rel <= 2
	default:
		return false
	}
}

// Apply plays a move returned by ParseCSAMove.
func (p *Position) Apply(m Move) {
	if m.IsDrop() {
		p.hands[m.Color][m.Kind]--
	} else {
		p.board[m.From.index()] = Piece{}
		if captured := p.board[m.To.index()]; !captured.Empty() {
			p.hands[m.Color][captured.Kind.Base()]++
		}
	}
	p.board[m.To.index()] = Piece{Color: m.Color, Kind: m.Kind}
	p.turn = m.Color.Opponent()
}

func (p *Position) kingSquare(c Color) (Square, bool) {
	for i, piece := range p.board {
		if piece == (Piece{Color: c, Kind: King}) {
			return Square{File: i%9 + 1, Rank: i/9 + 1}, true
		}
	}
	return Square{}, false
}

func (p *Position) attacked(sq Square, by Color) bool {
	for i, piece := range p.board {
		if piece.Empty() || piece.Color != by {
			continue
		}
		if p.reaches(Square{File: i%9 + 1, Rank: i/9 + 1}, sq, piece) {
			return true
		}
	}
	return false
}

func digit(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
