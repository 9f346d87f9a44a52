package kifu

// TimeClass is the clock class a game was played under.
type TimeClass string

const (
	TimeClass10Min TimeClass = "10min"
	TimeClass3Min  TimeClass = "3min"
	TimeClass10Sec TimeClass = "10sec"
)

// TimeClasses lists every time class in the order the history pages are fetched.
var TimeClasses = []TimeClass{TimeClass10Min, TimeClass3Min, TimeClass10Sec}

// RuleClass distinguishes the regular starting position from sprint.
type RuleClass string

const (
	RuleNormal RuleClass = "normal"
	RuleSprint RuleClass = "sprint"
)

// Mode is the kind of match. ModeNormal is the ranked ladder.
type Mode string

const (
	ModeNormal   Mode = "rank"
	ModeFriends  Mode = "friends"
	ModeCoach    Mode = "coach"
	ModeEvent    Mode = "event"
	ModeLearning Mode = "learning"
)

// Result is the outcome of a game from the board's point of view.
type Result string

const (
	ResultBlackWin Result = "black_win"
	ResultWhiteWin Result = "white_win"
	ResultDraw     Result = "draw"
	ResultPlaying  Result = "playing"
)

// Status is the outcome from the point of view of the user whose history was listed.
type Status string

const (
	StatusWin     Status = "win"
	StatusLose    Status = "lose"
	StatusDraw    Status = "draw"
	StatusPlaying Status = "playing"
)

// Termination records how a finished game ended.
type Termination string

const (
	TerminationResign       Termination = "resign"
	TerminationCheckmate    Termination = "checkmate"
	TerminationTimeout      Termination = "timeout"
	TerminationDisconnect   Termination = "disconnect"
	TerminationEnteringKing Termination = "entering_king"
	TerminationRepetition   Termination = "repetition"
	TerminationAbort        Termination = "abort"
)

// Platform identifies the upstream service a record was scraped from.
type Platform string

const PlatformShogiWars Platform = "shogi_wars"

// Valid enum members, used by the validator.
var (
	AllTimeClasses  = []any{TimeClass10Min, TimeClass3Min, TimeClass10Sec}
	AllRuleClasses  = []any{RuleNormal, RuleSprint}
	AllModes        = []any{ModeNormal, ModeFriends, ModeCoach, ModeEvent, ModeLearning}
	AllResults      = []any{ResultBlackWin, ResultWhiteWin, ResultDraw, ResultPlaying}
	AllStatuses     = []any{StatusWin, StatusLose, StatusDraw, StatusPlaying}
	AllTerminations = []any{
		TerminationResign, TerminationCheckmate, TerminationTimeout, TerminationDisconnect,
		TerminationEnteringKing, TerminationRepetition, TerminationAbort,
	}
)
