package staku

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedNotation = errors.New("malformed move notation")
	ErrUnknownCell       = errors.New("unknown cell name")
	ErrIllegalMove       = errors.New("illegal move")
)

// MoveKind distinguishes how a unit travels.
type MoveKind byte

const (
	// MoveStep moves the top token to an adjacent cell, or leaps when the
	// step passes over a trampoline stack.
	MoveStep MoveKind = iota + 1
	// MoveStack slides a whole stack in a straight line, one cell per token.
	MoveStack
	// MoveLeap is a step that bounced off an adjacent stack of two or three.
	MoveLeap
)

// Move is a resolved, board-indexed move.
type Move struct {
	From    int
	To      int
	Kind    MoveKind
	Capture bool
}

// Notation renders the move in the game's written form: "a1-a2" for steps
// and leaps, "a1=a2" for whole-stack moves, "a1*a2" for any capture.
func (that Move) Notation() string {
	separator := "-"
	switch {
	case that.Capture:
		separator = "*"
	case that.Kind == MoveStack:
		separator = "="
	}
	return CellName(that.From) + separator + CellName(that.To)
}

// parsedMove is notation split into its raw parts; the position later
// resolves it against the legal moves.
type parsedMove struct {
	from    int
	to      int
	capture bool
	stack   bool
}

func parseNotation(notation string) (parsedMove, error) {
	separatorAt := strings.IndexAny(notation, "-=*")
	if separatorAt < 0 {
		return parsedMove{}, fmt.Errorf("%w: %q", ErrMalformedNotation, notation)
	}

	fromName := notation[:separatorAt]
	toName := notation[separatorAt+1:]

	from, ok := CellIndex(fromName)
	if !ok {
		return parsedMove{}, fmt.Errorf("%w: %q", ErrUnknownCell, fromName)
	}

	to, ok := CellIndex(toName)
	if !ok {
		return parsedMove{}, fmt.Errorf("%w: %q", ErrUnknownCell, toName)
	}

	return parsedMove{
		from:    from,
		to:      to,
		capture: notation[separatorAt] == '*',
		stack:   notation[separatorAt] == '=',
	}, nil
}
