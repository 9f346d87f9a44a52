package testutil

import (
	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
)

// SampleSummary returns a minimal finished ten-minute game with the provided id.
func SampleSummary(id string) kifu.GameSummary {
	win := true
	lose := false
	return kifu.GameSummary{
		GameID:    id,
		PlayTime:  "2024-01-02T03:04:05+09:00",
		Black:     kifu.Player{Name: "alice", Rank: 3, IsWin: &win},
		White:     kifu.Player{Name: "bob", Rank: 1, IsWin: &lose},
		Mode:      kifu.ModeNormal,
		TimeClass: kifu.TimeClass10Min,
		RuleClass: kifu.RuleNormal,
		Status:    kifu.StatusWin,
		Result:    kifu.ResultBlackWin,
		Platform:  kifu.PlatformShogiWars,
		Tags:      []int{},
	}
}

// SampleHistory builds one summary per id, in order.
func SampleHistory(ids ...string) []kifu.GameSummary {
	out := make([]kifu.GameSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, SampleSummary(id))
	}
	return out
}
