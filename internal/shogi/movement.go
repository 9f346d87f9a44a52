package shogi

type delta struct {
	dx int
	dy int
}

// Deltas are from black's point of view: forward is a smaller rank.
var (
	goldSteps   = []delta{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}}
	silverSteps = []delta{{-1, -1}, {0, -1}, {1, -1}, {-1, 1}, {1, 1}}
	kingSteps   = []delta{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	orthoSteps  = []delta{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	diagSteps   = []delta{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

	steps = map[Kind][]delta{
		Pawn:      {{0, -1}},
		Knight:    {{-1, -2}, {1, -2}},
		Silver:    silverSteps,
		Gold:      goldSteps,
		King:      kingSteps,
		ProPawn:   goldSteps,
		ProLance:  goldSteps,
		ProKnight: goldSteps,
		ProSilver: goldSteps,
		Horse:     orthoSteps,
		Dragon:    diagSteps,
	}
	slides = map[Kind][]delta{
		Lance:  {{0, -1}},
		Bishop: diagSteps,
		Rook:   orthoSteps,
		Horse:  diagSteps,
		Dragon: orthoSteps,
	}
)

// reaches reports whether piece on from attacks to, honoring blockers.
func (p *Position) reaches(from, to Square, piece Piece) bool {
	dx, dy := to.File-from.File, to.Rank-from.Rank
	if dx == 0 && dy == 0 {
		return false
	}
	rdx, rdy := dx, dy
	if piece.Color == White {
		rdx, rdy = -dx, -dy
	}
	for _, d := range steps[piece.Kind] {
		if d.dx == rdx && d.dy == rdy {
			return true
		}
	}
	for _, d := range slides[piece.Kind] {
		if !alongRay(d, rdx, rdy) {
			continue
		}
		sx, sy := sign(dx), sign(dy)
		for f, r := from.File+sx, from.Rank+sy; f != to.File || r != to.Rank; f, r = f+sx, r+sy {
			if !p.At(Square{File: f, Rank: r}).Empty() {
				return false
			}
		}
		return true
	}
	return false
}

func alongRay(d delta, dx, dy int) bool {
	if sign(dx) != d.dx || sign(dy) != d.dy {
		return false
	}
	if d.dx != 0 && d.dy != 0 {
		return abs(dx) == abs(dy)
	}
	return true
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
