package validate

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/timeutil"
)

// DetailFields is the raw field map of a game detail payload.
type DetailFields struct {
	GameID          string
	Black           PlayerFields
	White           PlayerFields
	Mode            kifu.Mode
	TimeClass       kifu.TimeClass
	RuleClass       kifu.RuleClass
	Result          kifu.Result
	Termination     kifu.Termination
	InitialPosition string
	MoveLog         string
}

// Detail validates a game detail. The play time is taken from the game id,
// which is the only place the detail endpoint exposes it. The payload has no
// per-player win flags, so they are derived from the result.
func Detail(f DetailFields) (kifu.GameDetail, error) {
	settleWins(f.Result, &f.Black, &f.White)
	errs := validation.Errors{
		"game_id":          validation.Validate(f.GameID, validation.Required, validation.Match(gameIDPattern)),
		"mode":             validation.Validate(f.Mode, validation.Required, validation.In(kifu.AllModes...)),
		"time_class":       validation.Validate(f.TimeClass, validation.Required, validation.In(kifu.AllTimeClasses...)),
		"rule_class":       validation.Validate(f.RuleClass, validation.Required, validation.In(kifu.AllRuleClasses...)),
		"result":           validation.Validate(f.Result, validation.Required, validation.In(kifu.AllResults...)),
		"termination":      validation.Validate(f.Termination, validation.Required, validation.In(kifu.AllTerminations...)),
		"initial_position": validation.Validate(f.InitialPosition, validation.Required),
		"move_log":         validation.Validate(f.MoveLog, validation.By(moveLogShape)),
	}
	merge(errs, "black", validatePlayer(f.Black))
	merge(errs, "white", validatePlayer(f.White))
	merge(errs, "", winConsistency(f.Result, f.Black, f.White))

	id, ok := parseGameID(f.GameID)
	if ok {
		merge(errs, "", identityConsistency(id, f.Black, f.White))
	}

	if err := asError("game_detail", violations("", filter(errs))); err != nil {
		return kifu.GameDetail{}, err
	}

	return kifu.GameDetail{
		GameID:          f.GameID,
		PlayTime:        timeutil.FormatISO(id.Started),
		Black:           f.Black.canonical(),
		White:           f.White.canonical(),
		Mode:            f.Mode,
		TimeClass:       f.TimeClass,
		RuleClass:       f.RuleClass,
		Result:          f.Result,
		Termination:     f.Termination,
		InitialPosition: strings.TrimSpace(f.InitialPosition),
		MoveLog:         f.MoveLog,
	}, nil
}

var errMoveLogShape = validation.NewError("validation_move_log_shape", "must be pipe separated move,time entries")

// moveLogShape only checks the coarse shape; the clock engine reports
// precise positions of malformed entries.
func moveLogShape(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, entry := range strings.Split(s, "|") {
		if !strings.Contains(entry, ",") {
			return errMoveLogShape
		}
	}
	return nil
}
