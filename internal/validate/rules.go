package validate

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/timeutil"
)

// Rank bounds: 10 Dan is the ceiling; the floor is deliberately loose.
const (
	minRank = -10000
	maxRank = 10
)

var (
	gameIDPattern = regexp.MustCompile(`^([A-Za-z0-9_]+)-([A-Za-z0-9_]+)-(\d{8}_\d{6})$`)

	errGameIDMismatch = validation.NewError("validation_game_id_mismatch", "must agree with the game id")
	errWinMismatch    = validation.NewError("validation_win_mismatch", "must agree with the result")
	errNegative       = validation.NewError("validation_negative", "must not be negative")
)

// gameID is the structured form of a game id.
type gameID struct {
	Black   string
	White   string
	Started time.Time
}

func parseGameID(id string) (gameID, bool) {
	m := gameIDPattern.FindStringSubmatch(id)
	if m == nil {
		return gameID{}, false
	}
	started, err := timeutil.ParseJST(timeutil.GameIDLayout, m[3])
	if err != nil {
		return gameID{}, false
	}
	return gameID{Black: m[1], White: m[2], Started: started}, true
}

// PlayerFields is the raw form of a player.
type PlayerFields struct {
	Name   string
	Rank   int
	IsWin  *bool
	Avatar string
}

func validatePlayer(p PlayerFields) validation.Errors {
	return validation.Errors{
		"name": validation.Validate(p.Name, validation.Required),
		"rank": validation.Validate(p.Rank, validation.Min(minRank), validation.Max(maxRank)),
	}
}

func (p PlayerFields) canonical() kifu.Player {
	var isWin *bool
	if p.IsWin != nil {
		isWin = kifu.Bool(*p.IsWin)
	}
	return kifu.Player{Name: p.Name, Rank: p.Rank, IsWin: isWin, Avatar: p.Avatar}
}

// settleWins fills missing is_win flags from result. Every Result value
// decides both flags; flags already present are left for winConsistency.
func settleWins(result kifu.Result, black, white *PlayerFields) {
	var wantBlack, wantWhite bool
	switch result {
	case kifu.ResultBlackWin:
		wantBlack = true
	case kifu.ResultWhiteWin:
		wantWhite = true
	case kifu.ResultDraw, kifu.ResultPlaying:
	default:
		return
	}
	if black.IsWin == nil {
		black.IsWin = kifu.Bool(wantBlack)
	}
	if white.IsWin == nil {
		white.IsWin = kifu.Bool(wantWhite)
	}
}

// winConsistency checks the is_win flags against the result. Unknown flags
// are not checked.
func winConsistency(result kifu.Result, black, white PlayerFields) validation.Errors {
	errs := validation.Errors{}
	wantBlack, wantWhite := false, false
	switch result {
	case kifu.ResultBlackWin:
		wantBlack = true
	case kifu.ResultWhiteWin:
		wantWhite = true
	}
	if black.IsWin != nil && *black.IsWin != wantBlack {
		errs["black.is_win"] = errWinMismatch
	}
	if white.IsWin != nil && *white.IsWin != wantWhite {
		errs["white.is_win"] = errWinMismatch
	}
	return errs
}

// identityConsistency checks player names against the ids embedded in the game id.
func identityConsistency(id gameID, black, white PlayerFields) validation.Errors {
	errs := validation.Errors{}
	if black.Name != "" && black.Name != id.Black {
		errs["black.name"] = errGameIDMismatch
	}
	if white.Name != "" && white.Name != id.White {
		errs["white.name"] = errGameIDMismatch
	}
	return errs
}

func merge(dst validation.Errors, prefix string, src validation.Errors) {
	for k, v := range src {
		if v == nil {
			continue
		}
		if prefix != "" {
			k = prefix + "." + k
		}
		dst[k] = v
	}
}

func nonNegative(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return errNegative
	}
	return nil
}
