package validate

import (
	"fmt"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/timeutil"
)

// SummaryFields is the raw field map of one history row.
type SummaryFields struct {
	GameID string
	// PlayTime is the list-page date text, read with timeutil.ListDateLayout in JST.
	PlayTime  string
	Black     PlayerFields
	White     PlayerFields
	Mode      kifu.Mode
	TimeClass kifu.TimeClass
	RuleClass kifu.RuleClass
	Status    kifu.Status
	Result    kifu.Result
	Tags      []int
}

// Summaries validates every row and returns the canonical list, or one
// ValidationError covering all rows.
func Summaries(rows []SummaryFields) ([]kifu.GameSummary, error) {
	out := make([]kifu.GameSummary, 0, len(rows))
	var all []Violation
	for i, row := range rows {
		summary, errs := summary(row)
		if len(errs) > 0 {
			all = append(all, violations(fmt.Sprintf("games[%d]", i), errs)...)
			continue
		}
		out = append(out, summary)
	}
	if err := asError("game_summary", all); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary validates a single history row.
func Summary(row SummaryFields) (kifu.GameSummary, error) {
	summary, errs := summary(row)
	if err := asError("game_summary", violations("", errs)); err != nil {
		return kifu.GameSummary{}, err
	}
	return summary, nil
}

func summary(f SummaryFields) (kifu.GameSummary, validation.Errors) {
	errs := validation.Errors{
		"game_id":    validation.Validate(f.GameID, validation.Required, validation.Match(gameIDPattern)),
		"play_time":  validation.Validate(f.PlayTime, validation.Required, validation.Date(timeutil.ListDateLayout)),
		"mode":       validation.Validate(f.Mode, validation.Required, validation.In(kifu.AllModes...)),
		"time_class": validation.Validate(f.TimeClass, validation.Required, validation.In(kifu.AllTimeClasses...)),
		"rule_class": validation.Validate(f.RuleClass, validation.Required, validation.In(kifu.AllRuleClasses...)),
		"status":     validation.Validate(f.Status, validation.Required, validation.In(kifu.AllStatuses...)),
		"result":     validation.Validate(f.Result, validation.Required, validation.In(kifu.AllResults...)),
		"tags":       validation.Validate(f.Tags, validation.Each(validation.By(nonNegative))),
	}
	merge(errs, "black", validatePlayer(f.Black))
	merge(errs, "white", validatePlayer(f.White))
	merge(errs, "", winConsistency(f.Result, f.Black, f.White))

	played, playErr := timeutil.ParseJST(timeutil.ListDateLayout, f.PlayTime)
	if id, ok := parseGameID(f.GameID); ok {
		merge(errs, "", identityConsistency(id, f.Black, f.White))
		if playErr == nil && !played.Equal(id.Started.Truncate(time.Minute)) {
			errs["play_time"] = errGameIDMismatch
		}
	}

	errs = filter(errs)
	if len(errs) > 0 {
		return kifu.GameSummary{}, errs
	}

	return kifu.GameSummary{
		GameID:    f.GameID,
		PlayTime:  timeutil.FormatISO(played),
		Black:     f.Black.canonical(),
		White:     f.White.canonical(),
		Mode:      f.Mode,
		TimeClass: f.TimeClass,
		RuleClass: f.RuleClass,
		Status:    f.Status,
		Result:    f.Result,
		Platform:  kifu.PlatformShogiWars,
		Tags:      normalizeTags(f.Tags),
	}, nil
}

// normalizeTags returns the tags as a sorted set.
func normalizeTags(tags []int) []int {
	seen := make(map[int]struct{}, len(tags))
	out := make([]int, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Ints(out)
	return out
}

func filter(errs validation.Errors) validation.Errors {
	out := validation.Errors{}
	for k, v := range errs {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
