package timeutil

import "time"

// Layouts used by the upstream platform and by CSA output.
const (
	// GameIDLayout is the timestamp embedded in game ids (YYYYMMDD_HHMMSS).
	GameIDLayout = "20060102_150405"
	// ListDateLayout is the date shown on history pages.
	ListDateLayout = "2006/01/02 15:04"
	// CSALayout is the $START_TIME layout.
	CSALayout = "2006/01/02 15:04:05"
)

// JST is the platform's home timezone. A fixed zone keeps output independent
// of the host tz database.
var JST = time.FixedZone("Asia/Tokyo", 9*60*60)

// ParseJST parses value with layout, interpreting it as Japan time.
func ParseJST(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, JST)
}

// FormatISO renders t in JST as RFC 3339.
func FormatISO(t time.Time) string {
	return t.In(JST).Format(time.RFC3339)
}

// FormatCSA renders t in JST with the CSA $START_TIME layout.
func FormatCSA(t time.Time) string {
	return t.In(JST).Format(CSALayout)
}
