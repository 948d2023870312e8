package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stakugame/staku-backend/internal/apperror"
	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/repository"
)

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	GetOrCreateGame(ctx context.Context, playerID, gameType, variant string) (*entity.Game, error)
	CreateOrJoinToPublicGame(ctx context.Context, playerID, gameType, variant string) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID, move string) (*entity.Game, error)
	EndGame(ctx context.Context, game *entity.Game) error
}

type playerService interface {
	CreatePlayer(ctx context.Context) (*entity.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*entity.Player, error)
	UpdatePlayer(ctx context.Context, player *entity.Player) error
}

type gamePlayService interface {
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	JoinWaitingPublicGame(ctx context.Context, playerID string) (*entity.Game, error)
	GetOrCreateGame(ctx context.Context, player *entity.Player, gameType, variant string) (*entity.Game, error)
	CleanupGame(ctx context.Context, game *entity.Game)
	MakeTurn(ctx context.Context, playerID, move string) (*entity.Game, error)
}

type archiveService interface {
	RecordGame(ctx context.Context, game *entity.Game) (*repository.GameRecord, error)
}

type gameUseCase struct {
	logger *slog.Logger

	playerService   playerService
	gamePlayService gamePlayService
	archiveService  archiveService
}

func NewGameUseCase(logger *slog.Logger, playerService playerService, gamePlayService gamePlayService, archiveService archiveService) GameUseCase {
	return &gameUseCase{
		logger:          logger,
		playerService:   playerService,
		gamePlayService: gamePlayService,
		archiveService:  archiveService,
	}
}

func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		player, err := that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player, err = that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}

		return player, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) GetOrCreateGame(ctx context.Context, playerID, gameType, variant string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	game, err := that.gamePlayService.GetOrCreateGame(ctx, player, gameType, variant)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create game: %w", err)
	}

	return game, nil
}

// CreateOrJoinToPublicGame pairs the player with the waiting public game, or
// starts a new one when there is nothing to join.
func (that *gameUseCase) CreateOrJoinToPublicGame(ctx context.Context, playerID, gameType, variant string) (*entity.Game, error) {
	game, err := that.gamePlayService.JoinWaitingPublicGame(ctx, playerID)
	if err == nil {
		return game, nil
	}

	if !errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to join waiting public game: %w", err)
	}

	return that.GetOrCreateGame(ctx, playerID, gameType, variant)
}

func (that *gameUseCase) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.JoinGameByID(ctx, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	return that.gamePlayService.GetOrCreateGame(ctx, player, "", "")
}

func (that *gameUseCase) MakeTurn(ctx context.Context, playerID, move string) (*entity.Game, error) {
	game, err := that.gamePlayService.MakeTurn(ctx, playerID, move)
	if err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		if _, err = that.archiveService.RecordGame(ctx, game); err != nil {
			that.logger.Error("failed to archive finished game", "gameID", game.ID, "error", err)
		}

		that.gamePlayService.CleanupGame(ctx, game)

		return game, apperror.ErrGameFinished
	}

	return game, nil
}

// EndGame finishes a game early, archiving what was played.
func (that *gameUseCase) EndGame(ctx context.Context, game *entity.Game) error {
	game.Status = entity.StatusFinished

	if _, err := that.archiveService.RecordGame(ctx, game); err != nil {
		that.logger.Error("failed to archive ended game", "gameID", game.ID, "error", err)
	}

	that.gamePlayService.CleanupGame(ctx, game)

	return nil
}
