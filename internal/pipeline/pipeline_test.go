package pipeline

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
	"github.com/mito-shogi/wars-kif-service/internal/clock"
	"github.com/mito-shogi/wars-kif-service/internal/csa"
	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/ruleset"
)

var detailHint = ruleset.Hint{Endpoint: ruleset.EndpointDetail, APIVersion: ruleset.VersionWebapp9}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return body
}

func normalizeDetail(t *testing.T, body []byte) kifu.GameDetail {
	t.Helper()
	entity, err := Normalize(ruleset.RawPayload{Body: body, ContentType: "application/json"}, detailHint)
	require.NoError(t, err)
	require.Equal(t, kifu.KindDetail, entity.Kind)
	return *entity.Detail
}

func TestToCSAGolden(t *testing.T) {
	detail := normalizeDetail(t, readFixture(t, "game_analysis_info.json"))
	out, err := ToCSA(detail)
	require.NoError(t, err)
	require.Equal(t, string(readFixture(t, "game_analysis_info.csa")), out)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	body := readFixture(t, "game_analysis_info.json")
	first, err := Normalize(ruleset.RawPayload{Body: body}, detailHint)
	require.NoError(t, err)
	second, err := Normalize(ruleset.RawPayload{Body: body}, detailHint)
	require.NoError(t, err)
	require.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	require.JSONEq(t, string(a), string(b))
}

func TestMovesMatchLogLength(t *testing.T) {
	detail := normalizeDetail(t, readFixture(t, "game_analysis_info.json"))
	moves, err := Moves(detail)
	require.NoError(t, err)
	require.Len(t, moves, 5)
	require.Equal(t, kifu.MoveRecord{Notation: "+7776FU", ConsumedMillis: 5000}, moves[0])
	require.Equal(t, kifu.MoveRecord{Notation: "-3334FU", ConsumedMillis: 10000}, moves[1])
}

func TestToCSARejectsIncreasingClock(t *testing.T) {
	detail := normalizeDetail(t, readFixture(t, "game_analysis_info.json"))
	detail.MoveLog = "+7776FU,175|-3334FU,170|+2726FU,180"

	_, err := ToCSA(detail)
	var corrupt *clock.MoveLogCorruptError
	require.True(t, errors.As(err, &corrupt))
	require.Equal(t, 2, corrupt.Index)
	require.True(t, apperr.IsInputRejection(err))
}

func TestToCSARejectsIllegalMove(t *testing.T) {
	detail := normalizeDetail(t, readFixture(t, "game_analysis_info.json"))
	detail.MoveLog = "+7776FU,175|-3334FU,170|+8811UM,168"

	out, err := ToCSA(detail)
	require.Empty(t, out)
	var illegal *csa.IllegalMoveError
	require.True(t, errors.As(err, &illegal))
	require.Equal(t, 2, illegal.Index)
}

func TestNormalizeModeCodeDefault(t *testing.T) {
	body := `{"game_id":"alice-bob-20240102_030405","game_type":99,"gtype":"s1","kif":"+7776FU,7",` +
		`"user_info":[{"name":"alice","dan":1},{"name":"bob","dan":1}],"result":"GOTE_WIN_TIMEOUT",` +
		`"init_sfen_position":"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"}`
	detail := normalizeDetail(t, []byte(body))
	require.Equal(t, kifu.ModeNormal, detail.Mode)
	require.Equal(t, kifu.TimeClass10Sec, detail.TimeClass)

	out, err := ToCSA(detail)
	require.NoError(t, err)
	require.Contains(t, out, "$TIME+:0+10+0\n")
	require.Contains(t, out, "+7776FU\nT3\n%TIME_UP\n")
}

func TestNormalizeStructuralMismatch(t *testing.T) {
	_, err := Normalize(ruleset.RawPayload{Body: []byte("<html></html>")}, detailHint)
	require.ErrorIs(t, err, apperr.ErrStructuralMismatch)
}
