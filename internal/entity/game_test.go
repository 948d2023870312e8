package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakugame/staku-backend/internal/apperror"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it reports finished
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_GetRandomMarks(t *testing.T) {
	// Given: a game dealing marks
	game := &Game{}

	// When: dealing many times
	for i := 0; i < 32; i++ {
		first, second := game.GetRandomMarks()

		// Then: the two player colors always come out, in some order
		assert.NotEqual(t, first, second)
		assert.Contains(t, []string{PlayerW, PlayerB}, first)
		assert.Contains(t, []string{PlayerW, PlayerB}, second)
	}
}

func TestGameTypeMethods(t *testing.T) {
	assert.True(t, (&Game{Type: PublicType}).IsPublic())
	assert.False(t, (&Game{Type: PrivateType}).IsPublic())
	assert.True(t, (&Game{Type: WithBotType}).IsWithBot())
}

func TestPlayer_IsBot(t *testing.T) {
	// Given: a bot created for a game
	bot := NewBotPlayer("42", PlayerB)

	// Then: it is recognized as a bot and bound to the game
	assert.True(t, bot.IsBot())
	assert.Equal(t, "42", bot.GameID)

	human := &Player{ID: "some-session-id"}
	assert.False(t, human.IsBot())
}
