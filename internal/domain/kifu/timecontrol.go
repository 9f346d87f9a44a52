package kifu

import "fmt"

// TimeControl is the clock budget of one side, in seconds.
type TimeControl struct {
	MainSeconds      int
	ByoyomiSeconds   int
	IncrementSeconds int
}

// String renders the control in the CSA V3 "main+byoyomi+increment" form.
func (t TimeControl) String() string {
	return fmt.Sprintf("%d+%d+%d", t.MainSeconds, t.ByoyomiSeconds, t.IncrementSeconds)
}
