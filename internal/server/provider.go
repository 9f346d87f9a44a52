package server

import (
	"log/slog"

	"github.com/mito-shogi/wars-kif-service/internal/config"
	"github.com/mito-shogi/wars-kif-service/internal/providers"
	"github.com/mito-shogi/wars-kif-service/internal/providers/fixture"
	"github.com/mito-shogi/wars-kif-service/internal/providers/wars"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.Provider {
	switch cfg.Provider {
	case config.ProviderFixture, "":
		return fixture.New()
	case config.ProviderWars:
		return wars.NewClient(wars.Config{
			BaseURL:     cfg.Wars.BaseURL,
			Cookie:      cfg.Wars.Cookie,
			UserID:      cfg.Wars.UserID,
			Secret:      cfg.Wars.Secret,
			FriendToken: cfg.Wars.FriendToken,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
