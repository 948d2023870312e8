package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/staku"
)

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Plays a legal move for the bot side", func(t *testing.T) {
		// Given: an ongoing bot game where the bot plays White
		game := staku.NewGame("1", entity.WithBotType, staku.Staku3)
		game.Status = entity.StatusOngoing
		game.Players = []*entity.Player{
			{ID: "human", Mark: entity.PlayerB, GameID: game.ID},
			entity.NewBotPlayer(game.ID, entity.PlayerW),
		}

		bot := NewBotService()

		// When: the bot makes a turn
		err := bot.MakeTurn(game)

		// Then: one move was recorded and the turn passed to the human
		require.NoError(t, err)
		assert.Len(t, game.Moves, 1)
		assert.Equal(t, entity.PlayerB, game.Turn)
	})

	t.Run("Fails when there is no bot in the game", func(t *testing.T) {
		// Given: a game with humans only
		game := staku.NewGame("1", entity.PrivateType, staku.Staku3)
		game.Status = entity.StatusOngoing
		game.Players = []*entity.Player{
			{ID: "p1", Mark: entity.PlayerW, GameID: game.ID},
			{ID: "p2", Mark: entity.PlayerB, GameID: game.ID},
		}

		bot := NewBotService()

		err := bot.MakeTurn(game)

		require.ErrorIs(t, err, ErrBotNotFound)
	})
}
