// Package mapper converts upstream codes and labels into canonical enums.
// Every table is total: unknown input falls through to a documented default
// instead of failing.
package mapper

import (
	"strings"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
)

// ModeFromCode maps the numeric game_type code. Default: ModeNormal.
func ModeFromCode(code int) kifu.Mode {
	switch code {
	case 0:
		return kifu.ModeNormal
	case 1:
		return kifu.ModeFriends
	case 2:
		return kifu.ModeCoach
	case 3:
		return kifu.ModeEvent
	case 4:
		return kifu.ModeLearning
	default:
		return kifu.ModeNormal
	}
}

// ModeFromLabel maps the opponent type label of the history page. Default: ModeNormal.
func ModeFromLabel(label string) kifu.Mode {
	switch normalizeLabel(label) {
	case "rank", "ranked":
		return kifu.ModeNormal
	case "friends", "friend":
		return kifu.ModeFriends
	case "coach", "coaching":
		return kifu.ModeCoach
	case "event":
		return kifu.ModeEvent
	case "learning":
		return kifu.ModeLearning
	default:
		return kifu.ModeNormal
	}
}

// TimeClassFromGType maps the gtype token. Default: TimeClass10Min.
func TimeClassFromGType(gtype string) kifu.TimeClass {
	switch strings.TrimSpace(gtype) {
	case "sb":
		return kifu.TimeClass3Min
	case "s1":
		return kifu.TimeClass10Sec
	default:
		return kifu.TimeClass10Min
	}
}

// GTypeForTimeClass is the inverse of TimeClassFromGType, used to build history queries.
func GTypeForTimeClass(tc kifu.TimeClass) string {
	switch tc {
	case kifu.TimeClass3Min:
		return "sb"
	case kifu.TimeClass10Sec:
		return "s1"
	default:
		return ""
	}
}

// TimeClassFromLabel maps labels such as "10 min" or "3 min". Default: TimeClass10Min.
func TimeClassFromLabel(label string) kifu.TimeClass {
	switch strings.ReplaceAll(normalizeLabel(label), " ", "") {
	case "10min":
		return kifu.TimeClass10Min
	case "3min":
		return kifu.TimeClass3Min
	case "10sec":
		return kifu.TimeClass10Sec
	default:
		return kifu.TimeClass10Min
	}
}

// RuleFromInitPosType maps the init_pos_type code. Default: RuleNormal.
func RuleFromInitPosType(code int) kifu.RuleClass {
	switch code {
	case 0:
		return kifu.RuleNormal
	case 1:
		return kifu.RuleSprint
	default:
		return kifu.RuleNormal
	}
}

// RuleFromLabel maps the init position label. Default: RuleNormal.
func RuleFromLabel(label string) kifu.RuleClass {
	if normalizeLabel(label) == "sprint" {
		return kifu.RuleSprint
	}
	return kifu.RuleNormal
}

// Outcome is the mapped form of a detail result code.
type Outcome struct {
	Result      kifu.Result
	Termination kifu.Termination
}

var outcomeReasons = map[string]kifu.Termination{
	"TORYO":         kifu.TerminationResign,
	"CHECKMATE":     kifu.TerminationCheckmate,
	"TIMEOUT":       kifu.TerminationTimeout,
	"DISCONNECT":    kifu.TerminationDisconnect,
	"ENTERINGKING":  kifu.TerminationEnteringKing,
	"SENNICHI":      kifu.TerminationRepetition,
	"OUTE_SENNICHI": kifu.TerminationRepetition,
}

// OutcomeFromResultCode maps codes such as SENTE_WIN_TORYO or DRAW_SENNICHI.
// A winner prefix with an unknown reason is treated as a resignation; any
// other unknown code maps to playing/abort.
func OutcomeFromResultCode(code string) Outcome {
	code = strings.ToUpper(strings.TrimSpace(code))
	var (
		result kifu.Result
		reason string
	)
	switch {
	case strings.HasPrefix(code, "SENTE_WIN_"):
		result, reason = kifu.ResultBlackWin, strings.TrimPrefix(code, "SENTE_WIN_")
	case strings.HasPrefix(code, "GOTE_WIN_"):
		result, reason = kifu.ResultWhiteWin, strings.TrimPrefix(code, "GOTE_WIN_")
	case strings.HasPrefix(code, "DRAW_"):
		return Outcome{Result: kifu.ResultDraw, Termination: kifu.TerminationRepetition}
	default:
		return Outcome{Result: kifu.ResultPlaying, Termination: kifu.TerminationAbort}
	}
	termination, ok := outcomeReasons[reason]
	if !ok {
		termination = kifu.TerminationResign
	}
	return Outcome{Result: result, Termination: termination}
}

// TimeControlFor returns the per-side clock of a time class. Default: 10 minutes.
func TimeControlFor(tc kifu.TimeClass) kifu.TimeControl {
	switch tc {
	case kifu.TimeClass3Min:
		return kifu.TimeControl{MainSeconds: 180}
	case kifu.TimeClass10Sec:
		return kifu.TimeControl{ByoyomiSeconds: 10}
	default:
		return kifu.TimeControl{MainSeconds: 600}
	}
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
