package ruleset

import (
	"encoding/json"
	"fmt"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/extract"
	"github.com/mito-shogi/wars-kif-service/internal/mapper"
	"github.com/mito-shogi/wars-kif-service/internal/validate"
)

func detailShape(p RawPayload) bool {
	if !p.isJSON() {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(p.Body, &probe); err != nil {
		return false
	}
	_, hasID := probe["game_id"]
	_, hasUsers := probe["user_info"]
	return hasID && hasUsers
}

func extractDetail(p RawPayload, _ extract.RankFormula) (kifu.Entity, error) {
	var info analysisInfo
	if err := json.Unmarshal(p.Body, &info); err != nil {
		return kifu.Entity{}, extract.Missing("document", err.Error())
	}
	if info.GameID == nil {
		return kifu.Entity{}, extract.Missing("game_id", "game_id")
	}
	if info.Kif == nil {
		return kifu.Entity{}, extract.Missing("move_log", "kif")
	}
	if info.InitSFENPosition == nil {
		return kifu.Entity{}, extract.Missing("initial_position", "init_sfen_position")
	}
	if len(info.UserInfo) < 2 {
		return kifu.Entity{}, extract.Missing("white", "user_info[1]")
	}
	black, err := detailPlayer("black", 0, info.UserInfo[0])
	if err != nil {
		return kifu.Entity{}, err
	}
	white, err := detailPlayer("white", 1, info.UserInfo[1])
	if err != nil {
		return kifu.Entity{}, err
	}

	mode := kifu.ModeNormal
	if info.GameType != nil {
		mode = mapper.ModeFromCode(*info.GameType)
	}
	rule := kifu.RuleNormal
	if info.InitPosType != nil {
		rule = mapper.RuleFromInitPosType(*info.InitPosType)
	}
	outcome := mapper.OutcomeFromResultCode(info.Result)

	detail, err := validate.Detail(validate.DetailFields{
		GameID:          *info.GameID,
		Black:           black,
		White:           white,
		Mode:            mode,
		TimeClass:       mapper.TimeClassFromGType(info.GType),
		RuleClass:       rule,
		Result:          outcome.Result,
		Termination:     outcome.Termination,
		InitialPosition: *info.InitSFENPosition,
		MoveLog:         *info.Kif,
	})
	if err != nil {
		return kifu.Entity{}, err
	}
	return kifu.DetailEntity(detail), nil
}

func detailPlayer(side string, index int, u userInfo) (validate.PlayerFields, error) {
	if u.Name == nil {
		return validate.PlayerFields{}, extract.Missing(side+".name", fmt.Sprintf("user_info[%d].name", index))
	}
	if u.Dan == nil {
		return validate.PlayerFields{}, extract.Missing(side+".rank", fmt.Sprintf("user_info[%d].dan", index))
	}
	return validate.PlayerFields{Name: *u.Name, Rank: *u.Dan, Avatar: u.Avatar}, nil
}
