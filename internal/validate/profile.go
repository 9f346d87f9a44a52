package validate

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
)

// RuleStatsFields is the raw field map of one ranking row of the my-page.
type RuleStatsFields struct {
	TimeClass kifu.TimeClass
	RuleClass kifu.RuleClass
	Rank      int
	Rate      float64
	Black     kifu.WinLose
	White     kifu.WinLose
}

// ProfileFields is the raw field map of a user's my-page.
type ProfileFields struct {
	Avatar string
	Stats  []RuleStatsFields
}

// Profile validates a user profile.
func Profile(f ProfileFields) (kifu.UserProfile, error) {
	errs := validation.Errors{
		"avatar": validation.Validate(f.Avatar, validation.Required),
	}
	stats := make([]kifu.RuleStats, 0, len(f.Stats))
	for i, row := range f.Stats {
		merge(errs, fmt.Sprintf("stats[%d]", i), validation.Errors{
			"time_class": validation.Validate(row.TimeClass, validation.Required, validation.In(kifu.AllTimeClasses...)),
			"rule_class": validation.Validate(row.RuleClass, validation.Required, validation.In(kifu.AllRuleClasses...)),
			"rank":       validation.Validate(row.Rank, validation.Min(minRank), validation.Max(maxRank)),
			"rate":       validation.Validate(row.Rate, validation.Min(0.0), validation.Max(100.0)),
			"black.win":  validation.Validate(row.Black.Win, validation.By(nonNegative)),
			"black.lose": validation.Validate(row.Black.Lose, validation.By(nonNegative)),
			"white.win":  validation.Validate(row.White.Win, validation.By(nonNegative)),
			"white.lose": validation.Validate(row.White.Lose, validation.By(nonNegative)),
		})
		stats = append(stats, kifu.RuleStats(row))
	}
	if err := asError("user_profile", violations("", filter(errs))); err != nil {
		return kifu.UserProfile{}, err
	}
	return kifu.UserProfile{Avatar: f.Avatar, Stats: stats}, nil
}
