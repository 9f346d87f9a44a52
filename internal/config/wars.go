package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// WarsConfig controls how we talk to the Shogi Wars site.
type WarsConfig struct {
	BaseURL     string
	Cookie      string
	UserID      string
	Secret      string
	FriendToken string
}

func loadWars() WarsConfig {
	return WarsConfig{
		BaseURL:     envOrDefault(envWarsBaseURL, defaultWarsBaseURL),
		Cookie:      envOrDefault(envWarsCookie, ""),
		UserID:      envOrDefault(envWarsUserID, ""),
		Secret:      envOrDefault(envWarsSecret, ""),
		FriendToken: envOrDefault(envWarsFriendToken, ""),
	}
}

// Validate requires the session cookie; the site rejects anonymous calls.
func (c WarsConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Cookie, validation.Required),
	)
}
