package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/http/requestutil"
	"github.com/mito-shogi/wars-kif-service/internal/logging"
)

// HistoryRefresher re-fetches the history of a user, bypassing the cache.
type HistoryRefresher interface {
	RefreshHistory(ctx context.Context, userID string) ([]kifu.GameSummary, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher HistoryRefresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. Every request is refused when
// token is empty.
func NewAdminHandler(refresher HistoryRefresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// RefreshHistory re-fetches the history of {user_id} and replaces the cache.
func (h *AdminHandler) RefreshHistory(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresher not configured", h.logger)
		return
	}

	userID, ok := userParam(w, r, h.logger)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)
	games, err := h.refresher.RefreshHistory(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"games":   len(games),
		"status":  "ok",
	}, logger)
	logging.Info(logger, "admin history refreshed",
		slog.String(logging.FieldUserID, userID),
		slog.Int(logging.FieldCount, len(games)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
