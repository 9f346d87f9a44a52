package ruleset

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/extract"
	"github.com/mito-shogi/wars-kif-service/internal/mapper"
	"github.com/mito-shogi/wars-kif-service/internal/validate"
)

var (
	profileAvatarPattern = regexp.MustCompile(`/(\w+)-l\.png`)
	ratePattern          = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	winPattern           = regexp.MustCompile(`(\d+)\s*win`)
	losePattern          = regexp.MustCompile(`(\d+)\s*lose`)
)

const (
	rankRowSelector   = "table#user_dankyu tr"
	recordRowSelector = ".game_record.data_rows"
)

var rankRowSpecs = []extract.FieldSpec{
	{Name: "time_class", Selector: "th", OwnText: true},
	{Name: "rank", Selector: ".dankyu", OwnText: true},
	{Name: "rate", Selector: ".progress_bar span", Pattern: ratePattern},
}

var winLoseSpecs = []extract.FieldSpec{
	{Name: "win", Pattern: winPattern},
	{Name: "lose", Pattern: losePattern},
}

func myPageShape(p RawPayload) bool {
	return !p.isJSON() && strings.Contains(p.text(), "user_profile")
}

func extractMyPage(p RawPayload, formula extract.RankFormula) (kifu.Entity, error) {
	doc, err := extract.Parse(p.text())
	if err != nil {
		return kifu.Entity{}, extract.Missing("document", err.Error())
	}
	head, err := extract.Extract(doc.Selection, []extract.FieldSpec{
		{Name: "avatar", Selector: "#user_profile .profile img", Attr: "src", Pattern: profileAvatarPattern},
	})
	if err != nil {
		return kifu.Entity{}, err
	}

	ranks := extract.Items(doc.Selection, rankRowSelector)
	records := extract.Items(doc.Selection, recordRowSelector)
	if len(records) != len(ranks) {
		return kifu.Entity{}, extract.Missing("stats", recordRowSelector)
	}
	stats := make([]validate.RuleStatsFields, 0, len(ranks))
	for i := range ranks {
		row, err := ruleStats(ranks[i], records[i], formula)
		if err != nil {
			return kifu.Entity{}, atItem(err, i)
		}
		stats = append(stats, row)
	}

	profile, err := validate.Profile(validate.ProfileFields{Avatar: head["avatar"], Stats: stats})
	if err != nil {
		return kifu.Entity{}, err
	}
	return kifu.ProfileEntity(profile), nil
}

func ruleStats(rank, record *goquery.Selection, formula extract.RankFormula) (validate.RuleStatsFields, error) {
	fields, err := extract.Extract(rank, rankRowSpecs)
	if err != nil {
		return validate.RuleStatsFields{}, err
	}
	n, err := extract.ParseRank("rank", fields["rank"], formula)
	if err != nil {
		return validate.RuleStatsFields{}, err
	}
	rate, err := strconv.ParseFloat(fields["rate"], 64)
	if err != nil {
		return validate.RuleStatsFields{}, extract.Missing("rate", ratePattern.String())
	}

	divs := extract.Items(record, "div")
	if len(divs) < 3 {
		return validate.RuleStatsFields{}, extract.Missing("black", recordRowSelector+" div")
	}
	black, err := winLose("black", divs[1])
	if err != nil {
		return validate.RuleStatsFields{}, err
	}
	white, err := winLose("white", divs[2])
	if err != nil {
		return validate.RuleStatsFields{}, err
	}

	label := fields["time_class"]
	rule := mapper.RuleFromLabel(label)
	timeClass := mapper.TimeClassFromLabel(label)
	if rule == kifu.RuleSprint {
		timeClass = kifu.TimeClass3Min
	}
	return validate.RuleStatsFields{
		TimeClass: timeClass,
		RuleClass: rule,
		Rank:      n,
		Rate:      rate,
		Black:     black,
		White:     white,
	}, nil
}

func winLose(side string, div *goquery.Selection) (kifu.WinLose, error) {
	fields, err := extract.Extract(div, winLoseSpecs)
	if err != nil {
		var bad *extract.BadUpstreamFormatError
		if errors.As(err, &bad) {
			bad.Field = side + "." + bad.Field
		}
		return kifu.WinLose{}, err
	}
	win, err := strconv.Atoi(fields["win"])
	if err != nil {
		return kifu.WinLose{}, extract.Missing(side+".win", winPattern.String())
	}
	lose, err := strconv.Atoi(fields["lose"])
	if err != nil {
		return kifu.WinLose{}, extract.Missing(side+".lose", losePattern.String())
	}
	return kifu.WinLose{Win: win, Lose: lose}, nil
}
