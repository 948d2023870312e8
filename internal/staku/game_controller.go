package staku

import (
	"fmt"

	"github.com/stakugame/staku-backend/internal/apperror"
	"github.com/stakugame/staku-backend/internal/entity"
)

// NewGame creates a waiting game entity with the variant's starting position.
func NewGame(id, gameType string, variant Variant) *entity.Game {
	position := NewPosition(variant)
	return entity.NewGame(id, gameType, string(variant), position.Board.Strings())
}

// ApplyMove plays one move, given in written notation, for the player with
// the given mark, and updates the game's board, history and status.
func ApplyMove(gameInstance *entity.Game, mark, notation string) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	position, err := positionFromGame(gameInstance)
	if err != nil {
		return fmt.Errorf("failed to load position: %w", err)
	}

	if markFromColor(position.Turn) != mark {
		return apperror.ErrNotYourTurn
	}

	move, err := position.ResolveNotation(notation)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	position.Apply(move)

	gameInstance.Moves = append(gameInstance.Moves, move.Notation())
	writePosition(gameInstance, position)
	updateGameStatus(gameInstance, position)

	return nil
}

// LegalMoves lists the legal moves of the side to move in written notation.
func LegalMoves(gameInstance *entity.Game) ([]string, error) {
	position, err := positionFromGame(gameInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to load position: %w", err)
	}

	moves := position.LegalMoves()
	notations := make([]string, 0, len(moves))
	for _, move := range moves {
		notations = append(notations, move.Notation())
	}
	return notations, nil
}

// PackedBoard returns the game's board in its 25-byte packed form.
func PackedBoard(gameInstance *entity.Game) ([]byte, error) {
	board, err := BoardFromStrings(gameInstance.Cells)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	packed := board.Pack()
	return packed[:], nil
}

func positionFromGame(gameInstance *entity.Game) (*Position, error) {
	variant, err := ParseVariant(gameInstance.Variant)
	if err != nil {
		return nil, err
	}

	board, err := BoardFromStrings(gameInstance.Cells)
	if err != nil {
		return nil, err
	}

	return &Position{
		Board:     board,
		Turn:      colorFromMark(gameInstance.Turn),
		MaxHeight: variant.MaxHeight(),
		Reserve:   gameInstance.Reserve,
		Ply:       gameInstance.Ply,
	}, nil
}

func writePosition(gameInstance *entity.Game, position *Position) {
	gameInstance.Cells = position.Board.Strings()
	gameInstance.Turn = markFromColor(position.Turn)
	gameInstance.Reserve = position.Reserve
	gameInstance.Ply = position.Ply
}

// updateGameStatus checks the game for a terminal state after a move.
func updateGameStatus(gameInstance *entity.Game, position *Position) {
	outcome := position.Outcome(DefaultPlyLimit)
	if !outcome.Finished {
		return
	}

	gameInstance.Status = entity.StatusFinished
	gameInstance.Reason = outcome.Reason
	gameInstance.Turn = ""

	if outcome.Winner == NoColor {
		gameInstance.Winner = entity.PlayerTie
	} else {
		gameInstance.Winner = markFromColor(outcome.Winner)
	}
}

func colorFromMark(mark string) Color {
	switch mark {
	case entity.PlayerW:
		return White
	case entity.PlayerB:
		return Black
	default:
		return NoColor
	}
}

func markFromColor(color Color) string {
	switch color {
	case White:
		return entity.PlayerW
	case Black:
		return entity.PlayerB
	default:
		return ""
	}
}
