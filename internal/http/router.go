// Package http assembles the public router.
package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mito-shogi/wars-kif-service/internal/http/handlers"
	"github.com/mito-shogi/wars-kif-service/internal/http/middleware"
	"github.com/mito-shogi/wars-kif-service/internal/metrics"
)

// NewRouter mounts every route on a chi router. admin may be nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger, recorder *metrics.Recorder) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(logger, recorder))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/users/{user_id}", handler.UserProfile)
	r.Get("/users/{user_id}/games", handler.UserGames)
	r.Get("/games/{game_id}", handler.Game)
	r.Get("/friends", handler.Friends)

	if admin != nil {
		r.Post("/admin/users/{user_id}/refresh", admin.RefreshHistory)
	}

	r.NotFound(func(w nethttp.ResponseWriter, req *nethttp.Request) {
		nethttp.Error(w, `{"error":"not found"}`, nethttp.StatusNotFound)
	})
	return r
}
