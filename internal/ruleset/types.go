package ruleset

// analysisInfo is the game_analysis_info response body.
type analysisInfo struct {
	GameID           *string    `json:"game_id"`
	GameType         *int       `json:"game_type"`
	GType            string     `json:"gtype"`
	InitPosType      *int       `json:"init_pos_type"`
	Kif              *string    `json:"kif"`
	UserInfo         []userInfo `json:"user_info"`
	Result           string     `json:"result"`
	InitSFENPosition *string    `json:"init_sfen_position"`
}

type userInfo struct {
	Name   *string `json:"name"`
	Dan    *int    `json:"dan"`
	Avatar string  `json:"avatar"`
}
