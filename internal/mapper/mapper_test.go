package mapper

import (
	"testing"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
)

func TestModeFromCodeCoversVariants(t *testing.T) {
	cases := map[int]kifu.Mode{
		0:  kifu.ModeNormal,
		1:  kifu.ModeFriends,
		2:  kifu.ModeCoach,
		3:  kifu.ModeEvent,
		4:  kifu.ModeLearning,
		99: kifu.ModeNormal,
		-1: kifu.ModeNormal,
	}
	for input, expected := range cases {
		if got := ModeFromCode(input); got != expected {
			t.Fatalf("code %d expected %s, got %s", input, expected, got)
		}
	}
}

func TestModeFromLabelIgnoresCaseAndSpacing(t *testing.T) {
	cases := map[string]kifu.Mode{
		" Rank ":   kifu.ModeNormal,
		"Friends":  kifu.ModeFriends,
		"COACH":    kifu.ModeCoach,
		"Event":    kifu.ModeEvent,
		"Learning": kifu.ModeLearning,
		"Tsume":    kifu.ModeNormal,
	}
	for input, expected := range cases {
		if got := ModeFromLabel(input); got != expected {
			t.Fatalf("label %q expected %s, got %s", input, expected, got)
		}
	}
}

func TestTimeClassTablesRoundTrip(t *testing.T) {
	for _, tc := range kifu.TimeClasses {
		if got := TimeClassFromGType(GTypeForTimeClass(tc)); got != tc {
			t.Fatalf("gtype round trip for %s gave %s", tc, got)
		}
	}
	if got := TimeClassFromGType("zz"); got != kifu.TimeClass10Min {
		t.Fatalf("expected default 10min, got %s", got)
	}
	if got := TimeClassFromLabel("3  min"); got != kifu.TimeClass3Min {
		t.Fatalf("expected 3min, got %s", got)
	}
	if got := TimeClassFromLabel("10 Sec"); got != kifu.TimeClass10Sec {
		t.Fatalf("expected 10sec, got %s", got)
	}
	if got := TimeClassFromLabel("1 day"); got != kifu.TimeClass10Min {
		t.Fatalf("expected default 10min, got %s", got)
	}
}

func TestRuleTables(t *testing.T) {
	if RuleFromInitPosType(1) != kifu.RuleSprint || RuleFromInitPosType(0) != kifu.RuleNormal {
		t.Fatal("unexpected init_pos_type mapping")
	}
	if RuleFromInitPosType(7) != kifu.RuleNormal {
		t.Fatal("unknown init_pos_type must default to normal")
	}
	if RuleFromLabel("Sprint") != kifu.RuleSprint || RuleFromLabel("Normal") != kifu.RuleNormal {
		t.Fatal("unexpected rule label mapping")
	}
}

func TestOutcomeFromResultCode(t *testing.T) {
	cases := map[string]Outcome{
		"SENTE_WIN_TORYO":        {kifu.ResultBlackWin, kifu.TerminationResign},
		"GOTE_WIN_CHECKMATE":     {kifu.ResultWhiteWin, kifu.TerminationCheckmate},
		"SENTE_WIN_TIMEOUT":      {kifu.ResultBlackWin, kifu.TerminationTimeout},
		"GOTE_WIN_DISCONNECT":    {kifu.ResultWhiteWin, kifu.TerminationDisconnect},
		"SENTE_WIN_ENTERINGKING": {kifu.ResultBlackWin, kifu.TerminationEnteringKing},
		"GOTE_WIN_SOMETHING_NEW": {kifu.ResultWhiteWin, kifu.TerminationResign},
		"DRAW_SENNICHI":          {kifu.ResultDraw, kifu.TerminationRepetition},
		"":                       {kifu.ResultPlaying, kifu.TerminationAbort},
		"UNKNOWN":                {kifu.ResultPlaying, kifu.TerminationAbort},
	}
	for input, expected := range cases {
		if got := OutcomeFromResultCode(input); got != expected {
			t.Fatalf("code %q expected %+v, got %+v", input, expected, got)
		}
	}
}

func TestTimeControlFor(t *testing.T) {
	if got := TimeControlFor(kifu.TimeClass10Min).String(); got != "600+0+0" {
		t.Fatalf("unexpected 10min control %s", got)
	}
	if got := TimeControlFor(kifu.TimeClass3Min).String(); got != "180+0+0" {
		t.Fatalf("unexpected 3min control %s", got)
	}
	if got := TimeControlFor(kifu.TimeClass10Sec).String(); got != "0+10+0" {
		t.Fatalf("unexpected 10sec control %s", got)
	}
}
