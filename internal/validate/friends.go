package validate

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
)

// FriendFields is the raw field map of one friend search result.
type FriendFields struct {
	Name   string
	Rank   int
	Avatar string
}

// Friends validates friend search results.
func Friends(rows []FriendFields) (kifu.FriendList, error) {
	results := make([]kifu.Friend, 0, len(rows))
	var all []Violation
	for i, row := range rows {
		errs := filter(validation.Errors{
			"name":   validation.Validate(row.Name, validation.Required),
			"rank":   validation.Validate(row.Rank, validation.Min(minRank), validation.Max(maxRank)),
			"avatar": validation.Validate(row.Avatar, validation.Required),
		})
		if len(errs) > 0 {
			all = append(all, violations(fmt.Sprintf("results[%d]", i), errs)...)
			continue
		}
		results = append(results, kifu.Friend{Name: row.Name, Rank: row.Rank, Avatar: row.Avatar})
	}
	if err := asError("friend_list", all); err != nil {
		return kifu.FriendList{}, err
	}
	return kifu.FriendList{Count: len(results), Results: results}, nil
}
