// Package kifu holds the canonical game-record model produced by the
// normalization pipeline. Values are built once by the validator and are
// never mutated afterwards.
package kifu

// Player is one side of a game.
type Player struct {
	Name   string `json:"name"`
	Rank   int    `json:"rank"`
	IsWin  *bool  `json:"is_win,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Won reports whether the player is known to have won.
func (p Player) Won() bool {
	return p.IsWin != nil && *p.IsWin
}

// GameSummary is one row of a user's game history.
type GameSummary struct {
	GameID    string    `json:"game_id"`
	PlayTime  string    `json:"play_time"`
	Black     Player    `json:"black"`
	White     Player    `json:"white"`
	Mode      Mode      `json:"mode"`
	TimeClass TimeClass `json:"time_class"`
	RuleClass RuleClass `json:"rule_class"`
	Status    Status    `json:"status"`
	Result    Result    `json:"result"`
	Platform  Platform  `json:"platform"`
	Tags      []int     `json:"tags"`
}

// GameDetail is a single game with its initial position and raw move log.
type GameDetail struct {
	GameID          string      `json:"game_id"`
	PlayTime        string      `json:"play_time"`
	Black           Player      `json:"black"`
	White           Player      `json:"white"`
	Mode            Mode        `json:"mode"`
	TimeClass       TimeClass   `json:"time_class"`
	RuleClass       RuleClass   `json:"rule_class"`
	Result          Result      `json:"result"`
	Termination     Termination `json:"termination"`
	InitialPosition string      `json:"initial_position"`
	MoveLog         string      `json:"move_log"`
}

// MoveRecord is one replayed move and the clock time it consumed.
type MoveRecord struct {
	Notation       string `json:"notation"`
	ConsumedMillis int64  `json:"consumed_millis"`
}

// Friend is one result of a friend search.
type Friend struct {
	Name   string `json:"name"`
	Rank   int    `json:"rank"`
	Avatar string `json:"avatar"`
}

// FriendList is the paginated friend search payload.
type FriendList struct {
	Count   int      `json:"count"`
	Results []Friend `json:"results"`
}

// WinLose counts wins and losses for one side.
type WinLose struct {
	Win  int `json:"win"`
	Lose int `json:"lose"`
}

// RuleStats is the ranking state of a user for one time class.
type RuleStats struct {
	TimeClass TimeClass `json:"time_class"`
	RuleClass RuleClass `json:"rule_class"`
	Rank      int       `json:"rank"`
	Rate      float64   `json:"rate"`
	Black     WinLose   `json:"black"`
	White     WinLose   `json:"white"`
}

// UserProfile is the normalized my-page of a user.
type UserProfile struct {
	Avatar string      `json:"avatar"`
	Stats  []RuleStats `json:"stats"`
}
