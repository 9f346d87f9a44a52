package ruleset

import (
	"net/url"
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
	gameIDParam   = regexp.MustCompile(`[?&]wars_game_id=([^&#"]+)`)
	trophyPattern = regexp.MustCompile(`trophy/(\d+)`)
)

const (
	winnerClass   = "winner_bg"
	drawClass     = "flat_bg"
	winLoseImage  = "div.game_players .left_right_players .left_player img.win_lose_img"
	badgeSelector = "div.game_footer .game_badges span a"
)

var historySpecs = []extract.FieldSpec{
	{Name: "game_id", Selector: "div.caption_right_side .analytics_link a", Attr: "href", Pattern: gameIDParam, Fallback: gameIDParam},
	{Name: "black.name", Selector: ".player_name_text_left", OwnText: true},
	{Name: "black.rank", Selector: ".player_dan_text_left", OwnText: true},
	{Name: "white.name", Selector: ".player_name_text_right", OwnText: true},
	{Name: "white.rank", Selector: ".player_dan_text_right", OwnText: true},
	{Name: "mode", Selector: "div.game_category .opponent_type_text", OwnText: true},
	{Name: "rule_class", Selector: "div.game_category .init_pos_type_text", OwnText: true},
	{Name: "time_class", Selector: "div.game_category .time_mode_text", OwnText: true},
	{Name: "play_time", Selector: "div.game_footer .game_date", OwnText: true},
	{Name: "win_lose_image", Selector: winLoseImage, Attr: "src"},
}

// historyShape accepts any page that renders the list frame. A user with no
// games in a time class gets the frame with no rows.
func historyShape(p RawPayload) bool {
	if p.isJSON() {
		return false
	}
	doc, err := extract.Parse(p.text())
	if err != nil {
		return false
	}
	return extract.Exists(doc.Selection, historyFrame) || extract.Exists(doc.Selection, historyContainer)
}

func extractHistory(p RawPayload, formula extract.RankFormula) (kifu.Entity, error) {
	doc, err := extract.Parse(p.text())
	if err != nil {
		return kifu.Entity{}, extract.Missing("document", err.Error())
	}
	items := extract.Items(doc.Selection, historyContainer)
	rows := make([]validate.SummaryFields, 0, len(items))
	for i, item := range items {
		row, err := historyRow(item, formula)
		if err != nil {
			return kifu.Entity{}, atItem(err, i)
		}
		rows = append(rows, row)
	}
	games, err := validate.Summaries(rows)
	if err != nil {
		return kifu.Entity{}, err
	}
	return kifu.SummariesEntity(games), nil
}

func historyRow(item *goquery.Selection, formula extract.RankFormula) (validate.SummaryFields, error) {
	fields, err := extract.Extract(item, historySpecs)
	if err != nil {
		return validate.SummaryFields{}, err
	}
	blackRank, err := extract.ParseRank("black.rank", fields["black.rank"], formula)
	if err != nil {
		return validate.SummaryFields{}, err
	}
	whiteRank, err := extract.ParseRank("white.rank", fields["white.rank"], formula)
	if err != nil {
		return validate.SummaryFields{}, err
	}
	tags, err := badges(item)
	if err != nil {
		return validate.SummaryFields{}, err
	}
	gameID, err := url.QueryUnescape(fields["game_id"])
	if err != nil {
		return validate.SummaryFields{}, extract.Missing("game_id", gameIDParam.String())
	}

	won := extract.HasClass(item, winnerClass)
	draw := extract.HasClass(item, drawClass)
	playing := strings.Contains(fields["win_lose_image"], "playing")
	blackLost := extract.Exists(item, ".left_player_avatar.lose_avatar")
	whiteLost := extract.Exists(item, ".right_player_avatar.lose_avatar")

	settled := !draw && !playing
	black := validate.PlayerFields{Name: fields["black.name"], Rank: blackRank, IsWin: kifu.Bool(settled && !blackLost)}
	white := validate.PlayerFields{Name: fields["white.name"], Rank: whiteRank, IsWin: kifu.Bool(settled && !whiteLost)}

	var (
		status kifu.Status
		result kifu.Result
	)
	switch {
	case playing:
		status, result = kifu.StatusPlaying, kifu.ResultPlaying
	case draw:
		status, result = kifu.StatusDraw, kifu.ResultDraw
	default:
		status = kifu.StatusLose
		if won {
			status = kifu.StatusWin
		}
		result = kifu.ResultWhiteWin
		if !blackLost {
			result = kifu.ResultBlackWin
		}
	}

	return validate.SummaryFields{
		GameID:    gameID,
		PlayTime:  fields["play_time"],
		Black:     black,
		White:     white,
		Mode:      mapper.ModeFromLabel(fields["mode"]),
		TimeClass: mapper.TimeClassFromLabel(fields["time_class"]),
		RuleClass: mapper.RuleFromLabel(fields["rule_class"]),
		Status:    status,
		Result:    result,
		Tags:      tags,
	}, nil
}

// badges reads the trophy ids linked from the row footer.
func badges(item *goquery.Selection) ([]int, error) {
	links := extract.Items(item, badgeSelector)
	tags := make([]int, 0, len(links))
	for _, link := range links {
		fields, err := extract.Extract(link, []extract.FieldSpec{
			{Name: "tags", Attr: "href", Pattern: trophyPattern},
		})
		if err != nil {
			return nil, err
		}
		id, err := strconv.Atoi(fields["tags"])
		if err != nil {
			return nil, extract.Missing("tags", trophyPattern.String())
		}
		tags = append(tags, id)
	}
	return tags, nil
}
