package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
)

func validSummary() SummaryFields {
	return SummaryFields{
		GameID:    "alice-bob-20240102_123456",
		PlayTime:  "2024/01/02 12:34",
		Black:     PlayerFields{Name: "alice", Rank: 3, IsWin: kifu.Bool(true)},
		White:     PlayerFields{Name: "bob", Rank: -2, IsWin: kifu.Bool(false)},
		Mode:      kifu.ModeNormal,
		TimeClass: kifu.TimeClass10Min,
		RuleClass: kifu.RuleNormal,
		Status:    kifu.StatusWin,
		Result:    kifu.ResultBlackWin,
		Tags:      []int{7, 3, 7},
	}
}

func TestSummaryBuildsCanonicalEntity(t *testing.T) {
	got, err := Summary(validSummary())
	require.NoError(t, err)
	require.Equal(t, "2024-01-02T12:34:00+09:00", got.PlayTime)
	require.Equal(t, []int{3, 7}, got.Tags)
	require.Equal(t, kifu.PlatformShogiWars, got.Platform)
	require.True(t, got.Black.Won())
	require.False(t, got.White.Won())
}

func TestSummaryReportsEveryViolation(t *testing.T) {
	row := validSummary()
	row.Mode = kifu.Mode("arena")
	row.Black.Rank = 11
	row.White.IsWin = kifu.Bool(true)
	row.Tags = []int{-1}
	row.PlayTime = "soon"

	_, err := Summary(row)
	require.True(t, errors.Is(err, apperr.ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	require.Equal(t, []string{"black.rank", "mode", "play_time", "tags.0", "white.is_win"}, fields)
}

func TestSummaryChecksGameIDAgreement(t *testing.T) {
	row := validSummary()
	row.White.Name = "carol"
	row.PlayTime = "2024/01/02 12:35"

	_, err := Summary(row)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Violations, 2)
	require.Equal(t, "play_time", verr.Violations[0].Field)
	require.Equal(t, "white.name", verr.Violations[1].Field)
}

func TestSummariesPrefixesRowIndex(t *testing.T) {
	bad := validSummary()
	bad.GameID = "not-a-game-id"

	_, err := Summaries([]SummaryFields{validSummary(), bad})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "games[1].game_id", verr.Violations[0].Field)
}

func TestDrawAndPlayingRequireNoWinner(t *testing.T) {
	for _, result := range []kifu.Result{kifu.ResultDraw, kifu.ResultPlaying} {
		row := validSummary()
		row.Result = result
		row.Status = kifu.StatusDraw
		_, err := Summary(row)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "result %s", result)
		require.Equal(t, "black.is_win", verr.Violations[0].Field)

		row.Black.IsWin = kifu.Bool(false)
		_, err = Summary(row)
		require.NoError(t, err, "result %s", result)
	}
}

func validDetail() DetailFields {
	return DetailFields{
		GameID:          "alice-bob-20240102_123456",
		Black:           PlayerFields{Name: "alice", Rank: 3},
		White:           PlayerFields{Name: "bob", Rank: -2},
		Mode:            kifu.ModeNormal,
		TimeClass:       kifu.TimeClass3Min,
		RuleClass:       kifu.RuleNormal,
		Result:          kifu.ResultWhiteWin,
		Termination:     kifu.TerminationResign,
		InitialPosition: "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1",
		MoveLog:         "+7776FU,175|-3334FU,170",
	}
}

func TestDetailDerivesPlayTimeFromGameID(t *testing.T) {
	got, err := Detail(validDetail())
	require.NoError(t, err)
	require.Equal(t, "2024-01-02T12:34:56+09:00", got.PlayTime)
}

func TestDetailDerivesWinFlagsFromResult(t *testing.T) {
	cases := []struct {
		result       kifu.Result
		black, white bool
	}{
		{kifu.ResultBlackWin, true, false},
		{kifu.ResultWhiteWin, false, true},
		{kifu.ResultDraw, false, false},
		{kifu.ResultPlaying, false, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.result), func(t *testing.T) {
			row := validDetail()
			row.Result = tc.result
			got, err := Detail(row)
			require.NoError(t, err)
			require.NotNil(t, got.Black.IsWin)
			require.NotNil(t, got.White.IsWin)
			require.Equal(t, tc.black, *got.Black.IsWin)
			require.Equal(t, tc.white, *got.White.IsWin)
		})
	}
}

func TestDetailRejectsWinFlagContradictingResult(t *testing.T) {
	row := validDetail()
	row.Black.IsWin = kifu.Bool(true)

	_, err := Detail(row)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "black.is_win", verr.Violations[0].Field)
}

func TestDetailRejectsMalformedMoveLogAndMissingPosition(t *testing.T) {
	row := validDetail()
	row.MoveLog = "+7776FU"
	row.InitialPosition = ""

	_, err := Detail(row)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "initial_position", verr.Violations[0].Field)
	require.Equal(t, "move_log", verr.Violations[1].Field)
}

func TestFriendsCountsResults(t *testing.T) {
	list, err := Friends([]FriendFields{{Name: "alice", Rank: 0, Avatar: "a1"}})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)

	_, err = Friends([]FriendFields{{Name: "", Rank: 1, Avatar: "a1"}})
	require.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestProfileValidatesStats(t *testing.T) {
	_, err := Profile(ProfileFields{
		Avatar: "a1",
		Stats: []RuleStatsFields{{
			TimeClass: kifu.TimeClass10Min,
			RuleClass: kifu.RuleNormal,
			Rank:      1,
			Rate:      120,
			Black:     kifu.WinLose{Win: 1, Lose: -1},
		}},
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "stats[0].black.lose", verr.Violations[0].Field)
	require.Equal(t, "stats[0].rate", verr.Violations[1].Field)
}
