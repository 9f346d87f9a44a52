package ruleset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/extract"
	"github.com/mito-shogi/wars-kif-service/internal/validate"
)

func load(t *testing.T, name, contentType string) RawPayload {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return RawPayload{Body: body, ContentType: contentType}
}

func run(t *testing.T, payload RawPayload, hint Hint) kifu.Entity {
	t.Helper()
	r, err := Select(payload, hint)
	require.NoError(t, err)
	entity, err := r.Extract(payload)
	require.NoError(t, err)
	return entity
}

func TestSelectRequiresExactEndpointAndVersion(t *testing.T) {
	payload := load(t, "history.html", "text/html")

	r, err := Select(payload, Hint{Endpoint: "/games/history/", APIVersion: VersionWebapp10})
	require.NoError(t, err)
	require.Equal(t, "history/webapp_10.0.0_standard", r.Name)
	require.Equal(t, extract.RankKyuNegated, r.RankFormula)

	r, err = Select(payload, Hint{Endpoint: EndpointHistory, APIVersion: VersionWebapp9})
	require.NoError(t, err)
	require.Equal(t, extract.RankKyuLegacy, r.RankFormula)

	for _, hint := range []Hint{
		{Endpoint: EndpointHistory, APIVersion: "webapp_11.0.0_standard"},
		{Endpoint: EndpointHistory},
		{Endpoint: "games/archive", APIVersion: VersionWebapp10},
	} {
		_, err := Select(payload, hint)
		var mismatch *StructuralMismatchError
		require.True(t, errors.As(err, &mismatch), "%+v", hint)
		require.ErrorIs(t, err, apperr.ErrStructuralMismatch)
	}
}

func TestSelectRejectsWrongShape(t *testing.T) {
	detail := load(t, "game_analysis_info.json", "application/json")
	_, err := Select(detail, Hint{Endpoint: EndpointHistory, APIVersion: VersionWebapp10})
	var mismatch *StructuralMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, "history/webapp_10.0.0_standard", mismatch.Ruleset)

	history := load(t, "history.html", "text/html")
	_, err = Select(history, Hint{Endpoint: EndpointDetail, APIVersion: VersionWebapp9})
	require.ErrorIs(t, err, apperr.ErrStructuralMismatch)

	_, err = Select(RawPayload{Body: []byte(`{"game_id":"x"}`)}, Hint{Endpoint: EndpointDetail, APIVersion: VersionWebapp9})
	require.ErrorIs(t, err, apperr.ErrStructuralMismatch)

	_, err = Select(RawPayload{Body: []byte("<html><body>maintenance</body></html>")}, Hint{Endpoint: EndpointMyPage, APIVersion: VersionWebapp10})
	require.ErrorIs(t, err, apperr.ErrStructuralMismatch)
}

func TestAllListsEveryRuleset(t *testing.T) {
	names := make([]string, 0)
	for _, r := range All() {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{
		"history/webapp_10.0.0_standard",
		"history/webapp_9.0.0_standard",
		"game_analysis_info/webapp_9.0.0_standard",
		"friends_search/legacy",
		"mypage/webapp_10.0.0_standard",
	}, names)
}

func TestHistoryExtraction(t *testing.T) {
	entity := run(t, load(t, "history.html", "text/html"), Hint{Endpoint: EndpointHistory, APIVersion: VersionWebapp10})
	require.Equal(t, kifu.KindSummaries, entity.Kind)
	require.Len(t, entity.Summaries, 3)

	won := entity.Summaries[0]
	require.Equal(t, "alice-bob-20240102_030405", won.GameID)
	require.Equal(t, "2024-01-02T03:04:00+09:00", won.PlayTime)
	require.Equal(t, kifu.Player{Name: "alice", Rank: 3, IsWin: kifu.Bool(true)}, won.Black)
	require.Equal(t, kifu.Player{Name: "bob", Rank: -2, IsWin: kifu.Bool(false)}, won.White)
	require.Equal(t, kifu.ModeNormal, won.Mode)
	require.Equal(t, kifu.TimeClass10Min, won.TimeClass)
	require.Equal(t, kifu.RuleNormal, won.RuleClass)
	require.Equal(t, kifu.StatusWin, won.Status)
	require.Equal(t, kifu.ResultBlackWin, won.Result)
	require.Equal(t, kifu.PlatformShogiWars, won.Platform)
	require.Equal(t, []int{3, 12}, won.Tags)

	draw := entity.Summaries[1]
	require.Equal(t, kifu.StatusDraw, draw.Status)
	require.Equal(t, kifu.ResultDraw, draw.Result)
	require.False(t, draw.Black.Won())
	require.False(t, draw.White.Won())
	require.Equal(t, kifu.ModeFriends, draw.Mode)
	require.Equal(t, kifu.RuleSprint, draw.RuleClass)
	require.Equal(t, kifu.TimeClass3Min, draw.TimeClass)
	require.Empty(t, draw.Tags)

	playing := entity.Summaries[2]
	require.Equal(t, kifu.StatusPlaying, playing.Status)
	require.Equal(t, kifu.ResultPlaying, playing.Result)
	require.Equal(t, kifu.TimeClass10Sec, playing.TimeClass)
	require.Equal(t, -15, playing.White.Rank)
}

func TestHistoryLegacyKyuFormula(t *testing.T) {
	entity := run(t, load(t, "history.html", "text/html"), Hint{Endpoint: EndpointHistory, APIVersion: VersionWebapp9})
	require.Equal(t, 3, entity.Summaries[0].Black.Rank)
	require.Equal(t, -1, entity.Summaries[0].White.Rank)
	require.Equal(t, -14, entity.Summaries[2].White.Rank)
}

func TestHistoryMissingSelectorNamesField(t *testing.T) {
	payload := load(t, "history.html", "text/html")
	broken := strings.Replace(string(payload.Body), `<div class="player_dan_text_right">15 Kyu</div>`, "", 1)
	payload.Body = []byte(broken)

	r, err := Select(payload, Hint{Endpoint: EndpointHistory, APIVersion: VersionWebapp10})
	require.NoError(t, err)
	_, err = r.Extract(payload)

	var bad *extract.BadUpstreamFormatError
	require.True(t, errors.As(err, &bad))
	require.Equal(t, "white.rank", bad.Field)
	require.Equal(t, ".player_dan_text_right", bad.Query)
	require.Equal(t, 2, bad.Item)
	require.ErrorIs(t, err, apperr.ErrBadUpstreamFormat)
}

func TestHistoryPlayTimeMustMatchGameID(t *testing.T) {
	payload := load(t, "history.html", "text/html")
	payload.Body = []byte(strings.Replace(string(payload.Body), "2024/01/02 03:04", "2024/01/02 03:05", 1))

	r, err := Select(payload, Hint{Endpoint: EndpointHistory, APIVersion: VersionWebapp10})
	require.NoError(t, err)
	_, err = r.Extract(payload)

	var invalid *validate.ValidationError
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, "games[0].play_time", invalid.Violations[0].Field)
}

func TestDetailExtraction(t *testing.T) {
	entity := run(t, load(t, "game_analysis_info.json", "application/json; charset=utf-8"), Hint{Endpoint: EndpointDetail, APIVersion: VersionWebapp9})
	require.Equal(t, kifu.KindDetail, entity.Kind)

	detail := entity.Detail
	require.Equal(t, "alice-bob-20240102_030405", detail.GameID)
	require.Equal(t, "2024-01-02T03:04:05+09:00", detail.PlayTime)
	require.Equal(t, kifu.Player{Name: "alice", Rank: 3, IsWin: kifu.Bool(true), Avatar: "_ou"}, detail.Black)
	require.Equal(t, kifu.Player{Name: "bob", Rank: -2, IsWin: kifu.Bool(false), Avatar: "_kin"}, detail.White)
	require.Equal(t, kifu.ModeNormal, detail.Mode)
	require.Equal(t, kifu.TimeClass3Min, detail.TimeClass)
	require.Equal(t, kifu.RuleNormal, detail.RuleClass)
	require.Equal(t, kifu.ResultBlackWin, detail.Result)
	require.Equal(t, kifu.TerminationResign, detail.Termination)
	require.True(t, strings.HasPrefix(detail.MoveLog, "+7776FU,175|"))
}

func TestDetailWinFlagsFollowResultCode(t *testing.T) {
	cases := []struct {
		code         string
		result       kifu.Result
		black, white bool
	}{
		{"SENTE_WIN_TORYO", kifu.ResultBlackWin, true, false},
		{"GOTE_WIN_CHECKMATE", kifu.ResultWhiteWin, false, true},
		{"GOTE_WIN_TIMEOUT", kifu.ResultWhiteWin, false, true},
		{"DRAW_SENNICHI", kifu.ResultDraw, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			body := `{"game_id":"alice-bob-20240102_030405","kif":"","user_info":[{"name":"alice","dan":1},{"name":"bob","dan":1}],` +
				`"result":"` + tc.code + `","init_sfen_position":"startpos"}`
			detail := run(t, RawPayload{Body: []byte(body)}, Hint{Endpoint: EndpointDetail, APIVersion: VersionWebapp9}).Detail
			require.Equal(t, tc.result, detail.Result)
			require.NotNil(t, detail.Black.IsWin)
			require.NotNil(t, detail.White.IsWin)
			require.Equal(t, tc.black, *detail.Black.IsWin)
			require.Equal(t, tc.white, *detail.White.IsWin)
		})
	}
}

func TestDetailMissingMoveLogIsBadUpstreamFormat(t *testing.T) {
	body := `{"game_id":"alice-bob-20240102_030405","user_info":[{"name":"alice","dan":1},{"name":"bob","dan":1}],` +
		`"init_sfen_position":"startpos"}`
	payload := RawPayload{Body: []byte(body)}
	r, err := Select(payload, Hint{Endpoint: EndpointDetail, APIVersion: VersionWebapp9})
	require.NoError(t, err)
	_, err = r.Extract(payload)

	var bad *extract.BadUpstreamFormatError
	require.True(t, errors.As(err, &bad))
	require.Equal(t, "move_log", bad.Field)
	require.ErrorIs(t, err, apperr.ErrBadUpstreamFormat)
}

func TestHistoryEmptyPageYieldsNoGames(t *testing.T) {
	payload := RawPayload{
		Body:        []byte(`<!DOCTYPE html><html><body><div class="contents"><p>No games</p></div></body></html>`),
		ContentType: "text/html",
	}
	for _, version := range []string{VersionWebapp10, VersionWebapp9} {
		entity := run(t, payload, Hint{Endpoint: EndpointHistory, APIVersion: version})
		require.Equal(t, kifu.KindSummaries, entity.Kind)
		require.NotNil(t, entity.Summaries)
		require.Empty(t, entity.Summaries)
	}

	_, err := Select(RawPayload{Body: []byte("<html><body>maintenance</body></html>")}, Hint{Endpoint: EndpointHistory, APIVersion: VersionWebapp10})
	require.ErrorIs(t, err, apperr.ErrStructuralMismatch)
}

func TestDetailUnknownCodesFallBackToDefaults(t *testing.T) {
	body := `{"game_id":"alice-bob-20240102_030405","game_type":99,"gtype":"zz","init_pos_type":7,` +
		`"kif":"","user_info":[{"name":"alice","dan":1},{"name":"bob","dan":1}],"result":"???",` +
		`"init_sfen_position":"startpos"}`
	entity := run(t, RawPayload{Body: []byte(body)}, Hint{Endpoint: EndpointDetail, APIVersion: VersionWebapp9})
	require.Equal(t, kifu.ModeNormal, entity.Detail.Mode)
	require.Equal(t, kifu.TimeClass10Min, entity.Detail.TimeClass)
	require.Equal(t, kifu.RuleNormal, entity.Detail.RuleClass)
	require.Equal(t, kifu.ResultPlaying, entity.Detail.Result)
	require.Equal(t, kifu.TerminationAbort, entity.Detail.Termination)
}

func TestDetailMissingFieldNamesField(t *testing.T) {
	body := `{"game_id":"alice-bob-20240102_030405","kif":"","user_info":[{"name":"alice","dan":1},{"name":"bob"}],` +
		`"init_sfen_position":"startpos"}`
	payload := RawPayload{Body: []byte(body)}
	r, err := Select(payload, Hint{Endpoint: EndpointDetail, APIVersion: VersionWebapp9})
	require.NoError(t, err)
	_, err = r.Extract(payload)

	var bad *extract.BadUpstreamFormatError
	require.True(t, errors.As(err, &bad))
	require.Equal(t, "white.rank", bad.Field)
	require.Equal(t, "user_info[1].dan", bad.Query)
}

func TestFriendSearchExtraction(t *testing.T) {
	entity := run(t, load(t, "friends_search.js", "text/javascript"), Hint{Endpoint: EndpointFriends, APIVersion: VersionLegacy})
	require.Equal(t, kifu.KindFriends, entity.Kind)
	require.Equal(t, &kifu.FriendList{
		Count: 3,
		Results: []kifu.Friend{
			{Name: "alice", Rank: 3, Avatar: "_ou"},
			{Name: "alicia", Rank: 0, Avatar: "_kin"},
			{Name: "alina", Rank: -4, Avatar: "_hi"},
		},
	}, entity.Friends)
}

func TestMyPageExtraction(t *testing.T) {
	entity := run(t, load(t, "mypage.html", "text/html"), Hint{Endpoint: EndpointMyPage, APIVersion: VersionWebapp10})
	require.Equal(t, kifu.KindProfile, entity.Kind)

	profile := entity.Profile
	require.Equal(t, "_ou", profile.Avatar)
	require.Len(t, profile.Stats, 4)
	require.Equal(t, kifu.RuleStats{
		TimeClass: kifu.TimeClass10Min,
		RuleClass: kifu.RuleNormal,
		Rank:      3,
		Rate:      45.5,
		Black:     kifu.WinLose{Win: 10, Lose: 5},
		White:     kifu.WinLose{Win: 8, Lose: 7},
	}, profile.Stats[0])
	require.Equal(t, -1, profile.Stats[1].Rank)
	require.Equal(t, kifu.TimeClass10Sec, profile.Stats[2].TimeClass)
	require.Equal(t, -30, profile.Stats[2].Rank)
	require.Equal(t, kifu.RuleStats{
		TimeClass: kifu.TimeClass3Min,
		RuleClass: kifu.RuleSprint,
		Rank:      1,
		Rate:      80,
		Black:     kifu.WinLose{Win: 4, Lose: 4},
		White:     kifu.WinLose{Win: 6, Lose: 2},
	}, profile.Stats[3])
}

func TestMyPageRecordMismatch(t *testing.T) {
	payload := load(t, "mypage.html", "text/html")
	payload.Body = []byte(strings.Replace(string(payload.Body), "10 win 5 lose", "10 wins", 1))

	r, err := Select(payload, Hint{Endpoint: EndpointMyPage, APIVersion: VersionWebapp10})
	require.NoError(t, err)
	_, err = r.Extract(payload)

	var bad *extract.BadUpstreamFormatError
	require.True(t, errors.As(err, &bad))
	require.Equal(t, "black.lose", bad.Field)
	require.Equal(t, 0, bad.Item)
}

func TestMyPageRecordOverflowNamesField(t *testing.T) {
	payload := load(t, "mypage.html", "text/html")
	payload.Body = []byte(strings.Replace(string(payload.Body), "10 win 5 lose", "99999999999999999999 win 5 lose", 1))

	r, err := Select(payload, Hint{Endpoint: EndpointMyPage, APIVersion: VersionWebapp10})
	require.NoError(t, err)
	_, err = r.Extract(payload)

	var bad *extract.BadUpstreamFormatError
	require.True(t, errors.As(err, &bad))
	require.Equal(t, "black.win", bad.Field)
	require.Equal(t, `(\d+)\s*win`, bad.Query)
}
