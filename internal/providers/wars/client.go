// Package wars fetches raw payloads from the Shogi Wars web site.
package wars

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mito-shogi/wars-kif-service/internal/providers"
	"github.com/mito-shogi/wars-kif-service/internal/ruleset"
)

// Config controls how the client reaches the site.
type Config struct {
	BaseURL     string
	Cookie      string
	UserID      string
	Secret      string
	FriendToken string
	HTTPClient  *http.Client
}

// Client fetches history pages, game details, friend searches and my-pages.
// Bodies are returned untouched; the ruleset layer parses them.
type Client struct {
	baseURL     string
	cookie      string
	userID      string
	secret      string
	friendToken string
	httpClient  httpDoer
	now         func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:     normalizeBaseURL(cfg.BaseURL),
		cookie:      cfg.Cookie,
		userID:      cfg.UserID,
		secret:      cfg.Secret,
		friendToken: cfg.FriendToken,
		httpClient:  resolveHTTPClient(cfg.HTTPClient),
		now:         time.Now,
	}
}

// Fetch performs the request for req.Kind.
func (c *Client) Fetch(ctx context.Context, req providers.Request) (providers.RawPayload, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return providers.RawPayload{}, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return providers.RawPayload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return providers.RawPayload{}, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return providers.RawPayload{}, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return providers.RawPayload{}, fmt.Errorf("wars: read %s body: %w", req.Kind, err)
	}
	return providers.RawPayload{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Hint:        providers.HintFor(req.Kind),
	}, nil
}

func (c *Client) buildRequest(ctx context.Context, req providers.Request) (*http.Request, error) {
	var (
		method = http.MethodGet
		path   string
		query  url.Values
		form   url.Values
	)

	switch req.Kind {
	case providers.KindHistory:
		if req.UserID == "" {
			return nil, fmt.Errorf("wars: history request needs a user id")
		}
		page := req.Page
		if page <= 0 {
			page = 1
		}
		path = ruleset.EndpointHistory
		query = url.Values{
			"gtype":   {gtypeFor(req.TimeClass)},
			"locale":  {defaultLocale},
			"page":    {strconv.Itoa(page)},
			"user_id": {req.UserID},
			"version": {ruleset.VersionWebapp10},
		}
	case providers.KindDetail:
		if req.GameID == "" {
			return nil, fmt.Errorf("wars: detail request needs a game id")
		}
		path = ruleset.EndpointDetail
		query = url.Values{
			"user_id": {c.userID},
			"secret":  {c.secret},
			"game_id": {req.GameID},
			"locale":  {defaultLocale},
			"version": {ruleset.VersionWebapp9},
		}
	case providers.KindFriends:
		method = http.MethodPost
		path = ruleset.EndpointFriends
		form = url.Values{
			"authenticity_token": {c.friendToken},
			"prefix":             {req.Prefix},
			"user_id":            {c.userID},
		}
	case providers.KindMyPage:
		if req.UserID == "" {
			return nil, fmt.Errorf("wars: mypage request needs a user id")
		}
		path = ruleset.EndpointMyPage + "/" + url.PathEscape(req.UserID)
	default:
		return nil, fmt.Errorf("wars: unknown request kind %q", req.Kind)
	}

	target := c.baseURL + path
	if query != nil {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cookie != "" {
		httpReq.Header.Set("Cookie", sessionCookie+"="+c.cookie)
	}
	return httpReq, nil
}
