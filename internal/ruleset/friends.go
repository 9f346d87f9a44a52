package ruleset

import (
	"regexp"
	"strings"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/extract"
	"github.com/mito-shogi/wars-kif-service/internal/validate"
)

var (
	friendListPattern = regexp.MustCompile(`(?s)<ul[^>]*>(.*?)</ul>`)
	avatarPattern     = regexp.MustCompile(`/avatar/(.+?)-l\.png`)
)

var friendSpecs = []extract.FieldSpec{
	{Name: "name", Selector: "span", OwnText: true},
	{Name: "rank", OwnText: true},
	{Name: "avatar", Selector: "img", Attr: "src", Pattern: avatarPattern},
}

func friendsShape(p RawPayload) bool {
	return strings.Contains(extract.Unescape(p.text()), "<ul")
}

func extractFriends(p RawPayload, formula extract.RankFormula) (kifu.Entity, error) {
	m := friendListPattern.FindStringSubmatch(extract.Unescape(p.text()))
	if m == nil {
		return kifu.Entity{}, extract.Missing("results", friendListPattern.String())
	}
	doc, err := extract.Parse("<ul>" + m[1] + "</ul>")
	if err != nil {
		return kifu.Entity{}, extract.Missing("results", err.Error())
	}
	items, err := extract.ExtractItems(doc.Selection, "li", friendSpecs)
	if err != nil {
		return kifu.Entity{}, err
	}
	rows := make([]validate.FriendFields, 0, len(items))
	for i, fields := range items {
		rank, err := extract.ParseRank("rank", fields["rank"], formula)
		if err != nil {
			return kifu.Entity{}, atItem(err, i)
		}
		rows = append(rows, validate.FriendFields{Name: fields["name"], Rank: rank, Avatar: fields["avatar"]})
	}
	list, err := validate.Friends(rows)
	if err != nil {
		return kifu.Entity{}, err
	}
	return kifu.FriendsEntity(list), nil
}
