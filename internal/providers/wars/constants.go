package wars

import "time"

const (
	providerName       = "wars"
	defaultBaseURL     = "https://shogiwars.heroz.jp/"
	defaultHTTPTimeout = 10 * time.Second
	defaultLocale      = "en"
	sessionCookie      = "_web_session"
	maxErrorBody       = 512
)

// gtype query values for each time class.
const (
	gtype10Min = ""
	gtype3Min  = "sb"
	gtype10Sec = "s1"
)
