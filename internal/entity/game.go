package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/stakugame/staku-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerW   = "W"
	PlayerB   = "B"
	PlayerTie = "-"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the stored form of a Staku game. Cells holds the 49 board cells
// as bottom-to-top token strings; the rules live in the staku package.
type Game struct {
	ID      string    `json:"id"`
	Variant string    `json:"variant"`
	Cells   []string  `json:"cells"`
	Turn    string    `json:"player_turn,omitempty"`
	Winner  string    `json:"winner,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Status  string    `json:"status"`
	Moves   []string  `json:"moves,omitempty"`
	Reserve int       `json:"reserve"`
	Ply     int       `json:"ply"`
	Players []*Player `json:"players,omitempty"`
	Type    string    `json:"type,omitempty"`
}

// NewGame creates a waiting game with the given starting cells; White moves
// first once the game begins.
func NewGame(id, gameType, variant string, cells []string) *Game {
	return &Game{
		ID:      id,
		Variant: variant,
		Cells:   cells,
		Turn:    PlayerW,
		Status:  StatusWaiting,
		Type:    gameType,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// GetRandomMarks deals the two player colors in random order.
func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerW, PlayerB
	}
	return PlayerB, PlayerW
}
