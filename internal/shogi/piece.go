// Package shogi provides the board representation and move legality checks
// the CSA serializer replays moves against.
package shogi

// Color is the side a piece belongs to. Black (sente) moves first.
type Color int

const (
	Black Color = iota
	White
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	return 1 - c
}

// Sign is the CSA side prefix.
func (c Color) Sign() string {
	if c == White {
		return "-"
	}
	return "+"
}

// Kind is a piece type, promoted kinds included.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	Horse
	Dragon
)

var csaNames = [...]string{
	NoKind:    "",
	Pawn:      "FU",
	Lance:     "KY",
	Knight:    "KE",
	Silver:    "GI",
	Gold:      "KI",
	Bishop:    "KA",
	Rook:      "HI",
	King:      "OU",
	ProPawn:   "TO",
	ProLance:  "NY",
	ProKnight: "NK",
	ProSilver: "NG",
	Horse:     "UM",
	Dragon:    "RY",
}

// CSA returns the two letter CSA code of the kind.
func (k Kind) CSA() string {
	if int(k) >= len(csaNames) {
		return ""
	}
	return csaNames[k]
}

// KindFromCSA parses a two letter CSA piece code.
func KindFromCSA(code string) (Kind, bool) {
	for k, name := range csaNames {
		if name != "" && name == code {
			return Kind(k), true
		}
	}
	return NoKind, false
}

// Promoted returns the promoted form of k, if it has one.
func (k Kind) Promoted() (Kind, bool) {
	switch k {
	case Pawn:
		return ProPawn, true
	case Lance:
		return ProLance, true
	case Knight:
		return ProKnight, true
	case Silver:
		return ProSilver, true
	case Bishop:
		return Horse, true
	case Rook:
		return Dragon, true
	default:
		return k, false
	}
}

// Base returns the unpromoted form of k; captured pieces return to hand as Base.
func (k Kind) Base() Kind {
	switch k {
	case ProPawn:
		return Pawn
	case ProLance:
		return Lance
	case ProKnight:
		return Knight
	case ProSilver:
		return Silver
	case Horse:
		return Bishop
	case Dragon:
		return Rook
	default:
		return k
	}
}

// handKinds lists droppable kinds in CSA hand order.
var handKinds = []Kind{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// Piece is an occupant of a square. The zero value is an empty square.
type Piece struct {
	Color Color
	Kind  Kind
}

// Empty reports whether the square holds nothing.
func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// Square addresses the board by file and rank, both 1 through 9.
type Square struct {
	File int
	Rank int
}

func (s Square) valid() bool {
	return s.File >= 1 && s.File <= 9 && s.Rank >= 1 && s.Rank <= 9
}

func (s Square) index() int {
	return (s.Rank-1)*9 + (s.File - 1)
}

// relativeRank counts ranks from the given side's far edge: 1 is the last rank.
func relativeRank(c Color, rank int) int {
	if c == White {
		return 10 - rank
	}
	return rank
}
