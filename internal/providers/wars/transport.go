package wars

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/") + "/"
}

func gtypeFor(tc kifu.TimeClass) string {
	switch tc {
	case kifu.TimeClass3Min:
		return gtype3Min
	case kifu.TimeClass10Sec:
		return gtype10Sec
	default:
		return gtype10Min
	}
}

// parseRetryAfter reads the delta-seconds or HTTP-date form of Retry-After.
func parseRetryAfter(raw string, now time.Time) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
