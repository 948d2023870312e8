package staku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakugame/staku-backend/internal/apperror"
	"github.com/stakugame/staku-backend/internal/entity"
)

func newOngoingGame(t *testing.T, variant Variant) *entity.Game {
	t.Helper()

	gameInstance := NewGame("42", entity.PrivateType, variant)
	gameInstance.Players = []*entity.Player{
		{ID: "p1", Mark: entity.PlayerW, GameID: gameInstance.ID},
		{ID: "p2", Mark: entity.PlayerB, GameID: gameInstance.ID},
	}
	gameInstance.Status = entity.StatusOngoing
	return gameInstance
}

func TestNewGame(t *testing.T) {
	// Given: a fresh Staku-3 game
	gameInstance := NewGame("42", entity.PublicType, Staku3)

	// Then: it starts waiting, White to move, with the full starting board
	assert.Equal(t, entity.StatusWaiting, gameInstance.Status)
	assert.Equal(t, entity.PlayerW, gameInstance.Turn)
	assert.Equal(t, string(Staku3), gameInstance.Variant)
	assert.Len(t, gameInstance.Cells, CellCount)
	assert.Equal(t, "W", gameInstance.Cells[cell(t, "b4")])
	assert.Equal(t, "N", gameInstance.Cells[cell(t, "d4")])
}

func TestApplyMove(t *testing.T) {
	t.Run("Moves alternate between the players", func(t *testing.T) {
		// Given: an ongoing game
		gameInstance := newOngoingGame(t, Staku3)

		// When: White steps out and Black answers
		require.NoError(t, ApplyMove(gameInstance, entity.PlayerW, "b4-c4"))
		require.NoError(t, ApplyMove(gameInstance, entity.PlayerB, "f4-e4"))

		// Then: board, history and counters moved along
		assert.Equal(t, "W", gameInstance.Cells[cell(t, "c4")])
		assert.Equal(t, "B", gameInstance.Cells[cell(t, "e4")])
		assert.Equal(t, []string{"b4-c4", "f4-e4"}, gameInstance.Moves)
		assert.Equal(t, 2, gameInstance.Ply)
		assert.Equal(t, entity.PlayerW, gameInstance.Turn)
	})

	t.Run("Playing out of turn is refused", func(t *testing.T) {
		gameInstance := newOngoingGame(t, Staku3)

		err := ApplyMove(gameInstance, entity.PlayerB, "f4-e4")
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Illegal notation is refused", func(t *testing.T) {
		gameInstance := newOngoingGame(t, Staku3)

		err := ApplyMove(gameInstance, entity.PlayerW, "b4-g1")
		require.ErrorIs(t, err, ErrIllegalMove)

		err = ApplyMove(gameInstance, entity.PlayerW, "nonsense")
		require.ErrorIs(t, err, ErrMalformedNotation)
	})

	t.Run("A finished game accepts no moves", func(t *testing.T) {
		gameInstance := newOngoingGame(t, Staku3)
		gameInstance.Status = entity.StatusFinished

		err := ApplyMove(gameInstance, entity.PlayerW, "b4-c4")
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Reaching the palace finishes the game", func(t *testing.T) {
		// Given: a white token one step from Black's corner palace
		gameInstance := newOngoingGame(t, Staku3)
		gameInstance.Cells = make([]string, CellCount)
		gameInstance.Cells[cell(t, "g2")] = "W"
		gameInstance.Cells[cell(t, "f1")] = "B"

		// When: stepping onto g1
		require.NoError(t, ApplyMove(gameInstance, entity.PlayerW, "g2-g1"))

		// Then: White wins and the game closes
		assert.Equal(t, entity.StatusFinished, gameInstance.Status)
		assert.Equal(t, entity.PlayerW, gameInstance.Winner)
		assert.Equal(t, ReasonPalace, gameInstance.Reason)
		assert.Empty(t, gameInstance.Turn)
	})

	t.Run("Capturing the last enemy token finishes the game", func(t *testing.T) {
		gameInstance := newOngoingGame(t, Staku3)
		gameInstance.Cells = make([]string, CellCount)
		gameInstance.Cells[cell(t, "d4")] = "W"
		gameInstance.Cells[cell(t, "d5")] = "B"

		require.NoError(t, ApplyMove(gameInstance, entity.PlayerW, "d4*d5"))

		assert.Equal(t, entity.StatusFinished, gameInstance.Status)
		assert.Equal(t, entity.PlayerW, gameInstance.Winner)
		assert.Equal(t, ReasonEliminated, gameInstance.Reason)
	})
}

func TestLegalMoves(t *testing.T) {
	// Given: a fresh ongoing game
	gameInstance := newOngoingGame(t, Staku3)

	// When: listing White's moves
	notations, err := LegalMoves(gameInstance)

	// Then: every notation replays cleanly on a copy
	require.NoError(t, err)
	require.NotEmpty(t, notations)
	for _, notation := range notations {
		replay := newOngoingGame(t, Staku3)
		assert.NoError(t, ApplyMove(replay, entity.PlayerW, notation), "move %s", notation)
	}
}

func TestPackedBoard(t *testing.T) {
	gameInstance := newOngoingGame(t, Staku2)

	packed, err := PackedBoard(gameInstance)
	require.NoError(t, err)
	assert.Len(t, packed, PackedSize)

	var fixed [PackedSize]byte
	copy(fixed[:], packed)
	restored, err := UnpackBoard(fixed)
	require.NoError(t, err)
	assert.Equal(t, gameInstance.Cells, restored.Strings())
}
