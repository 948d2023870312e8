package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/stakugame/staku-backend/internal/apperror"
	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/render"
	"github.com/stakugame/staku-backend/internal/repository"
)

type Handlers interface {
	Ping(w http.ResponseWriter, r *http.Request)
	IssueToken(w http.ResponseWriter, r *http.Request)
	ListArchive(w http.ResponseWriter, r *http.Request)
	GetArchivedGame(w http.ResponseWriter, r *http.Request)
	RenderBoard(w http.ResponseWriter, r *http.Request)

	WithAuth(next http.HandlerFunc) http.HandlerFunc
}

type authService interface {
	GenerateToken(playerID string) (string, error)
	VerifyToken(tokenString string) (string, error)
}

type archiveService interface {
	ListGames(ctx context.Context, limit int) ([]*repository.GameRecord, error)
	GetGame(ctx context.Context, id string) (*repository.GameRecord, error)
}

type gameService interface {
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type handlers struct {
	logger *slog.Logger

	authService    authService
	archiveService archiveService
	gameService    gameService
}

func NewHandlers(logger *slog.Logger, authService authService, archiveService archiveService, gameService gameService) Handlers {
	return &handlers{
		logger:         logger,
		authService:    authService,
		archiveService: archiveService,
		gameService:    gameService,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// IssueToken hands out a bearer token for the given player id.
func (that *handlers) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "IssueToken")

	var request struct {
		PlayerID string `json:"player_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if request.PlayerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}

	token, err := that.authService.GenerateToken(request.PlayerID)
	if err != nil {
		log.Error("failed to generate token", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// WithAuth checks the Authorization header before calling the next handler.
func (that *handlers) WithAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if _, err := that.authService.VerifyToken(tokenString); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func (that *handlers) ListArchive(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListArchive")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := that.archiveService.ListGames(r.Context(), limit)
	if err != nil {
		log.Error("failed to list archived games", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []*repository.GameRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

func (that *handlers) GetArchivedGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetArchivedGame")

	record, err := that.archiveService.GetGame(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperror.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to get archived game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// RenderBoard draws the current board of a live game as SVG.
func (that *handlers) RenderBoard(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "RenderBoard")

	game, err := that.gameService.GetGameByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrGameNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err = render.Render(w, game); err != nil {
		log.Error("failed to render board", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
