package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/staku"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays a random legal move for the bot side.
func (that *botService) MakeTurn(game *entity.Game) error {
	moves, err := staku.LegalMoves(game)
	if err != nil {
		return fmt.Errorf("failed to list legal moves: %w", err)
	}

	if len(moves) == 0 {
		return ErrNoAvailableMoves
	}

	var botPlayer *entity.Player
	for _, player := range game.Players {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return ErrBotNotFound
	}

	chosenMove := moves[rand.Intn(len(moves))] //nolint: gosec // it's ok

	if err = staku.ApplyMove(game, botPlayer.Mark, chosenMove); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
