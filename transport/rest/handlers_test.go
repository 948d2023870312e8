package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakugame/staku-backend/internal/apperror"
	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/repository"
	"github.com/stakugame/staku-backend/internal/service"
	"github.com/stakugame/staku-backend/internal/staku"
)

type fakeArchiveService struct {
	records map[string]*repository.GameRecord
}

func (that *fakeArchiveService) ListGames(_ context.Context, _ int) ([]*repository.GameRecord, error) {
	var records []*repository.GameRecord
	for _, record := range that.records {
		records = append(records, record)
	}
	return records, nil
}

func (that *fakeArchiveService) GetGame(_ context.Context, id string) (*repository.GameRecord, error) {
	record, ok := that.records[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return record, nil
}

type fakeGameService struct {
	games map[string]*entity.Game
}

func (that *fakeGameService) GetGameByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	return game, nil
}

func newTestHandlers() Handlers {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	archive := &fakeArchiveService{records: map[string]*repository.GameRecord{
		"rec-1": {ID: "rec-1", GameID: "42", Variant: "staku-3", Winner: "W", Reason: "palace"},
	}}
	games := &fakeGameService{games: map[string]*entity.Game{
		"42": staku.NewGame("42", entity.PrivateType, staku.Staku3),
	}}

	return NewHandlers(logger, service.NewAuthService("test-secret"), archive, games)
}

func TestHandlers_Ping(t *testing.T) {
	handlersInstance := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	handlersInstance.Ping(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestHandlers_IssueToken(t *testing.T) {
	t.Run("Issues a token for a player", func(t *testing.T) {
		handlersInstance := newTestHandlers()

		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"player_id":"p1"}`))
		rec := httptest.NewRecorder()

		handlersInstance.IssueToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "token")
	})

	t.Run("Rejects an empty player id", func(t *testing.T) {
		handlersInstance := newTestHandlers()

		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		handlersInstance.IssueToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlers_WithAuth(t *testing.T) {
	handlersInstance := newTestHandlers()

	protected := handlersInstance.WithAuth(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Rejects a missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/archive", nil)
		rec := httptest.NewRecorder()

		protected(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Rejects a bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/archive", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()

		protected(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Lets a valid token through", func(t *testing.T) {
		token, err := service.NewAuthService("test-secret").GenerateToken("p1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/archive", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protected(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandlers_Archive(t *testing.T) {
	handlersInstance := newTestHandlers()

	t.Run("Lists archived games", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/archive", nil)
		rec := httptest.NewRecorder()

		handlersInstance.ListArchive(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "rec-1")
	})

	t.Run("Returns a single record", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/archive/rec-1", nil)
		req.SetPathValue("id", "rec-1")
		rec := httptest.NewRecorder()

		handlersInstance.GetArchivedGame(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "palace")
	})

	t.Run("404s on an unknown record", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/archive/nope", nil)
		req.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()

		handlersInstance.GetArchivedGame(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandlers_RenderBoard(t *testing.T) {
	handlersInstance := newTestHandlers()

	t.Run("Serves the board as SVG", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/games/42/board.svg", nil)
		req.SetPathValue("id", "42")
		rec := httptest.NewRecorder()

		handlersInstance.RenderBoard(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "<svg")
	})

	t.Run("404s on an unknown game", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/games/nope/board.svg", nil)
		req.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()

		handlersInstance.RenderBoard(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
