// Package csa renders a canonical game detail as CSA V3.0 text.
package csa

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/mapper"
	"github.com/mito-shogi/wars-kif-service/internal/shogi"
	"github.com/mito-shogi/wars-kif-service/internal/timeutil"
)

// state is the serializer's progress through a record.
type state int

const (
	stateInit state = iota
	statePositionLoaded
	stateReplaying
	stateFinalized
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "init"
	case statePositionLoaded:
		return "position_loaded"
	case stateReplaying:
		return "replaying"
	case stateFinalized:
		return "finalized"
	default:
		return "failed"
	}
}

type serializer struct {
	state state
	pos   *shogi.Position
	out   strings.Builder
}

// Serialize replays moves from the detail's initial position and returns the
// whole record as CSA text. Any failure discards the partial output.
func Serialize(detail kifu.GameDetail, moves []kifu.MoveRecord) (string, error) {
	s := &serializer{}
	if err := s.load(detail); err != nil {
		return "", err
	}
	for i, m := range moves {
		if err := s.replay(i, m); err != nil {
			return "", err
		}
	}
	return s.finalize(detail), nil
}

func (s *serializer) load(detail kifu.GameDetail) error {
	if s.state != stateInit {
		return fmt.Errorf("csa: load in state %s", s.state)
	}
	if strings.TrimSpace(detail.InitialPosition) == "" {
		s.state = stateFailed
		return &PositionParseError{Position: detail.InitialPosition, Err: errors.New("empty position")}
	}
	pos, err := shogi.ParseSFEN(detail.InitialPosition)
	if err != nil {
		s.state = stateFailed
		return &PositionParseError{Position: detail.InitialPosition, Err: err}
	}
	s.pos = pos
	s.writeHeader(detail)
	s.state = statePositionLoaded
	return nil
}

func (s *serializer) writeHeader(detail kifu.GameDetail) {
	b := &s.out
	b.WriteString("'CSA encoding=UTF-8\n")
	b.WriteString("V3.0\n")
	if detail.Mode != kifu.ModeCoach {
		fmt.Fprintf(b, "N+%s\n", detail.Black.Name)
		fmt.Fprintf(b, "N-%s\n", detail.White.Name)
	}
	fmt.Fprintf(b, "$EVENT:%s,%s\n", detail.Mode, detail.RuleClass)
	if start, err := time.Parse(time.RFC3339, detail.PlayTime); err == nil {
		fmt.Fprintf(b, "$START_TIME:%s\n", timeutil.FormatCSA(start))
	}
	control := mapper.TimeControlFor(detail.TimeClass)
	fmt.Fprintf(b, "$TIME+:%s\n", control)
	fmt.Fprintf(b, "$TIME-:%s\n", control)
	s.pos.WriteCSA(b)
}

func (s *serializer) replay(index int, record kifu.MoveRecord) error {
	if s.state != statePositionLoaded && s.state != stateReplaying {
		return fmt.Errorf("csa: replay in state %s", s.state)
	}
	move, err := s.pos.ParseCSAMove(record.Notation)
	if err != nil {
		s.state = stateFailed
		if errors.Is(err, shogi.ErrMoveSyntax) {
			return &MoveParseError{Index: index, Notation: record.Notation, Err: err}
		}
		return &IllegalMoveError{Index: index, Notation: record.Notation, Err: err}
	}
	s.pos.Apply(move)
	s.out.WriteString(move.CSA())
	s.out.WriteByte('\n')
	s.out.WriteString(elapsed(record.ConsumedMillis))
	s.out.WriteByte('\n')
	s.state = stateReplaying
	return nil
}

func (s *serializer) finalize(detail kifu.GameDetail) string {
	s.out.WriteString(terminal(detail))
	s.out.WriteByte('\n')
	s.state = stateFinalized
	return s.out.String()
}

// elapsed renders a CSA time line: whole seconds, with milliseconds only when
// they are not zero.
func elapsed(millis int64) string {
	if millis%1000 == 0 {
		return fmt.Sprintf("T%d", millis/1000)
	}
	return fmt.Sprintf("T%d.%03d", millis/1000, millis%1000)
}

func terminal(detail kifu.GameDetail) string {
	if detail.Result == kifu.ResultPlaying {
		return "%CHUDAN"
	}
	switch detail.Termination {
	case kifu.TerminationResign, kifu.TerminationDisconnect:
		return "%TORYO"
	case kifu.TerminationCheckmate:
		return "%TSUMI"
	case kifu.TerminationTimeout:
		return "%TIME_UP"
	case kifu.TerminationEnteringKing:
		return "%KACHI"
	case kifu.TerminationRepetition:
		return "%SENNICHITE"
	default:
		return "%CHUDAN"
	}
}
