package shogi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSFEN is returned for position text that cannot be decoded.
var ErrSFEN = errors.New("invalid sfen")

// StartSFEN is the regular starting position.
const StartSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

var sfenKinds = map[byte]Kind{
	'p': Pawn,
	'l': Lance,
	'n': Knight,
	's': Silver,
	'g': Gold,
	'b': Bishop,
	'r': Rook,
	'k': King,
}

// ParseSFEN decodes an SFEN position. A leading "position", "sfen" or the
// word "startpos" are accepted.
func ParseSFEN(text string) (*Position, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "position ")
	text = strings.TrimSpace(strings.TrimPrefix(text, "sfen "))
	if text == "startpos" {
		text = StartSFEN
	}
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: expected board, side and hands in %q", ErrSFEN, text)
	}

	pos := &Position{}
	if err := pos.parseBoard(fields[0]); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "b":
		pos.turn = Black
	case "w":
		pos.turn = White
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrSFEN, fields[1])
	}
	if err := pos.parseHands(fields[2]); err != nil {
		return nil, err
	}
	return pos, nil
}

func (p *Position) parseBoard(board string) error {
	rows := strings.Split(board, "/")
	if len(rows) != 9 {
		return fmt.Errorf("%w: expected 9 ranks, got %d", ErrSFEN, len(rows))
	}
	for r, row := range rows {
		file := 9
		promoted := false
		for i := 0; i < len(row); i++ {
			ch := row[i]
			switch {
			case ch == '+':
				promoted = true
				continue
			case ch >= '1' && ch <= '9':
				if promoted {
					return fmt.Errorf("%w: dangling promotion in rank %d", ErrSFEN, r+1)
				}
				file -= int(ch - '0')
				continue
			}
			kind, ok := sfenKinds[lower(ch)]
			if !ok {
				return fmt.Errorf("%w: unknown piece %q", ErrSFEN, ch)
			}
			if promoted {
				if kind, ok = kind.Promoted(); !ok {
					return fmt.Errorf("%w: piece %q cannot promote", ErrSFEN, ch)
				}
				promoted = false
			}
			if file < 1 {
				return fmt.Errorf("%w: rank %d overflows", ErrSFEN, r+1)
			}
			color := Black
			if ch >= 'a' && ch <= 'z' {
				color = White
			}
			p.board[Square{File: file, Rank: r + 1}.index()] = Piece{Color: color, Kind: kind}
			file--
		}
		if file != 0 {
			return fmt.Errorf("%w: rank %d has %d files", ErrSFEN, r+1, 9-file)
		}
	}
	return nil
}

func (p *Position) parseHands(hands string) error {
	if hands == "-" {
		return nil
	}
	count := 0
	for i := 0; i < len(hands); i++ {
		ch := hands[i]
		if ch >= '0' && ch <= '9' {
			j := i
			for j < len(hands) && hands[j] >= '0' && hands[j] <= '9' {
				j++
			}
			n, err := strconv.Atoi(hands[i:j])
			if err != nil {
				return fmt.Errorf("%w: hand count %q", ErrSFEN, hands[i:j])
			}
			count = n
			i = j - 1
			continue
		}
		kind, ok := sfenKinds[lower(ch)]
		if !ok || kind == King {
			return fmt.Errorf("%w: unknown hand piece %q", ErrSFEN, ch)
		}
		if count == 0 {
			count = 1
		}
		color := Black
		if ch >= 'a' && ch <= 'z' {
			color = White
		}
		p.hands[color][kind] += count
		count = 0
	}
	return nil
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
