package service

import (
	"context"
	"fmt"

	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/staku"
)

type GameService interface {
	CreateGame(ctx context.Context, player *entity.Player, gameType, variant string) (*entity.Game, *entity.Player, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	GetPublicGameByID(ctx context.Context) (*entity.Game, error)
	MarkGameWaiting(ctx context.Context, gameID string) error
	UnmarkGameWaiting(ctx context.Context) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error

	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetWaitingPublicGame(ctx context.Context) (*entity.Game, error)
	SetWaitingPublicGame(ctx context.Context, id string) error
	ClearWaitingPublicGame(ctx context.Context) error

	DeleteByID(ctx context.Context, id string) error
}

type gameIDGenerator func() (string, error)

type gameService struct {
	gameRepo   gameRepo
	generateID gameIDGenerator
}

func NewGameService(gameRepo gameRepo, generateID gameIDGenerator) GameService {
	return &gameService{
		gameRepo:   gameRepo,
		generateID: generateID,
	}
}

// CreateGame sets up a fresh board for the given variant; the creator always
// plays White.
func (that *gameService) CreateGame(ctx context.Context, player *entity.Player, gameType, variant string) (*entity.Game, *entity.Player, error) {
	parsedVariant, err := staku.ParseVariant(variant)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse variant: %w", err)
	}

	gameID, err := that.generateID()
	if err != nil {
		return nil, nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := staku.NewGame(gameID, gameType, parsedVariant)

	player.GameID = gameID
	player.Mark = entity.PlayerW

	game.Players = []*entity.Player{player}
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to create game from storage: %w", err)
	}

	return game, player, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetPublicGameByID(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameRepo.GetWaitingPublicGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve active public game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) MarkGameWaiting(ctx context.Context, gameID string) error {
	if err := that.gameRepo.SetWaitingPublicGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to mark game as waiting: %w", err)
	}

	return nil
}

func (that *gameService) UnmarkGameWaiting(ctx context.Context) error {
	if err := that.gameRepo.ClearWaitingPublicGame(ctx); err != nil {
		return fmt.Errorf("failed to unmark waiting game: %w", err)
	}

	return nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
