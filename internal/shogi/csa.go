package shogi

import (
	"fmt"
	"strings"
)

// WriteCSA writes the position as CSA board lines: P1 to P9, the hands that
// are not empty, and the side to move.
func (p *Position) WriteCSA(b *strings.Builder) {
	for rank := 1; rank <= 9; rank++ {
		fmt.Fprintf(b, "P%d", rank)
		for file := 9; file >= 1; file-- {
			piece := p.At(Square{File: file, Rank: rank})
			if piece.Empty() {
				b.WriteString(" * ")
				continue
			}
			b.WriteString(piece.Color.Sign())
			b.WriteString(piece.Kind.CSA())
		}
		b.WriteByte('\n')
	}
	for _, c := range []Color{Black, White} {
		var hand strings.Builder
		for _, kind := range handKinds {
			for i := 0; i < p.hands[c][kind]; i++ {
				hand.WriteString("00")
				hand.WriteString(kind.CSA())
			}
		}
		if hand.Len() > 0 {
			fmt.Fprintf(b, "P%s%s\n", c.Sign(), hand.String())
		}
	}
	b.WriteString(p.turn.Sign())
	b.WriteByte('\n')
}
