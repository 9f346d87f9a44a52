package extract

import (
	"regexp"
	"strconv"
)

// RankFormula selects how "N Kyu" is turned into a signed rank. Two
// historical extraction paths disagree, so both are kept behind version tags.
type RankFormula int

const (
	// RankKyuNegated maps "N Kyu" to -N.
	RankKyuNegated RankFormula = iota
	// RankKyuLegacy maps "N Kyu" to -(N-1); used by the friend search and the
	// webapp 9 history markup.
	RankKyuLegacy
)

func (f RankFormula) String() string {
	if f == RankKyuLegacy {
		return "kyu-legacy"
	}
	return "kyu-negated"
}

var rankPattern = regexp.MustCompile(`(\d+)\s*(Dan|Kyu)`)

// ParseRank converts localized rank text into a signed integer. Dan ranks are
// positive; Kyu ranks are negative with magnitude chosen by formula.
func ParseRank(field, text string, formula RankFormula) (int, error) {
	m := rankPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, Missing(field, rankPattern.String())
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, Missing(field, rankPattern.String())
	}
	if m[2] == "Dan" {
		return n, nil
	}
	if formula == RankKyuLegacy {
		return -(n - 1), nil
	}
	return -n, nil
}
