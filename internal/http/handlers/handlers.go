package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/pipeline"
	"github.com/mito-shogi/wars-kif-service/internal/poller"
)

const contentTypeCSA = "text/plain; charset=utf-8"

var (
	userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	gameIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// GameService is what the handlers need from the games service.
type GameService interface {
	History(ctx context.Context, userID string) ([]kifu.GameSummary, error)
	Detail(ctx context.Context, gameID string) (kifu.GameDetail, error)
	CSA(ctx context.Context, gameID string) (string, error)
	Profile(ctx context.Context, userID string) (kifu.UserProfile, error)
	Friends(ctx context.Context, prefix string) (kifu.FriendList, error)
}

// Handler wires HTTP routes to the games service.
type Handler struct {
	svc      GameService
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no poller runs.
func NewHandler(svc GameService, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// GameView is the JSON form of a game with its replayed moves.
type GameView struct {
	kifu.GameDetail
	Moves []kifu.MoveRecord `json:"moves"`
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// UserGames returns the recent games of a user across all time classes.
func (h *Handler) UserGames(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r, h.logger)
	if !ok {
		return
	}
	games, err := h.svc.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, games, h.logger)
}

// UserProfile returns the ranking profile of a user.
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r, h.logger)
	if !ok {
		return
	}
	profile, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, profile, h.logger)
}

// Game returns a game as CSA text, or as JSON with per-move clock use when
// format=json is requested.
func (h *Handler) Game(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game_id")
	if err := validation.Validate(gameID, validation.Required, validation.Length(1, 128), validation.Match(gameIDPattern)); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid game id: "+err.Error(), h.logger)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		detail, err := h.svc.Detail(r.Context(), gameID)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		moves, err := pipeline.Moves(detail)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, GameView{GameDetail: detail, Moves: moves}, h.logger)
		return
	}

	text, err := h.svc.CSA(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeText(w, http.StatusOK, contentTypeCSA, text)
}

// Friends searches users by name prefix.
func (h *Handler) Friends(w http.ResponseWriter, r *http.Request) {
	prefix := strings.TrimSpace(r.URL.Query().Get("prefix"))
	if err := validation.Validate(prefix, validation.Required, validation.Length(1, 32), validation.Match(userIDPattern)); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid prefix: "+err.Error(), h.logger)
		return
	}
	list, err := h.svc.Friends(r.Context(), prefix)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, list, h.logger)
}

func userParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	userID := chi.URLParam(r, "user_id")
	if err := validation.Validate(userID, validation.Required, validation.Length(1, 64), validation.Match(userIDPattern)); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid user id: "+err.Error(), logger)
		return "", false
	}
	return userID, true
}
