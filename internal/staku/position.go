package staku

import (
	"errors"
	"fmt"
)

var ErrUnknownVariant = errors.New("unknown game variant")

// Variant selects the stack height cap: Staku-2 plays with stacks of at
// most two tokens, Staku-3 with stacks of at most three.
type Variant string

const (
	Staku2 Variant = "staku-2"
	Staku3 Variant = "staku-3"
)

// MaxHeight returns the stack height cap of the variant.
func (that Variant) MaxHeight() int {
	if that == Staku2 {
		return 2
	}
	return 3
}

// ParseVariant resolves a variant name.
func ParseVariant(name string) (Variant, error) {
	switch Variant(name) {
	case Staku2, Staku3:
		return Variant(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// DefaultPlyLimit is the number of half-moves after which a game is a tie.
const DefaultPlyLimit = 200

// Position is a full game state: board, side to move, variant height cap,
// the shared reserve of captured neutral tokens and the half-move counter.
type Position struct {
	Board     Board
	Turn      Color
	MaxHeight int
	Reserve   int
	Ply       int
}

// NewPosition sets up the initial position: White singles on row b, Black
// singles on row f, three neutral singles in the middle of row d. The
// corner palaces start empty.
func NewPosition(variant Variant) *Position {
	position := &Position{
		Turn:      White,
		MaxHeight: variant.MaxHeight(),
	}

	for _, name := range []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7"} {
		index, _ := CellIndex(name)
		position.Board[index] = CellW
	}
	for _, name := range []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7"} {
		index, _ := CellIndex(name)
		position.Board[index] = CellB
	}
	for _, name := range []string{"d3", "d4", "d5"} {
		index, _ := CellIndex(name)
		position.Board[index] = CellN
	}

	return position
}

// LegalMoves generates every legal move for the side to move.
func (that *Position) LegalMoves() []Move {
	var moves []Move
	for index := range that.Board {
		if that.Board[index].Top() == that.Turn {
			moves = append(moves, that.movesFrom(index)...)
		}
	}
	return moves
}

// movesFrom generates the moves of the unit on the given controlled cell.
func (that *Position) movesFrom(from int) []Move {
	var moves []Move

	for direction := 0; direction < DirectionCount; direction++ {
		adjacent := Neighbor(from, direction)
		if adjacent < 0 {
			continue
		}

		target := that.Board[adjacent]
		switch {
		case target == CellEmpty:
			moves = append(moves, Move{From: from, To: adjacent, Kind: MoveStep})
		case target.Height() == 1 && target.Top() == that.Turn.Opponent():
			moves = append(moves, Move{From: from, To: adjacent, Kind: MoveStep, Capture: true})
		default:
			if _, ok := target.Push(that.Turn, that.MaxHeight); ok {
				moves = append(moves, Move{From: from, To: adjacent, Kind: MoveStep})
			}
			if leap, ok := that.leapOver(from, adjacent, direction); ok {
				moves = append(moves, leap)
			}
		}
	}

	moves = append(moves, that.stackMovesFrom(from)...)

	return moves
}

// leapOver checks the trampoline effect: a top token adjacent to a stack of
// two or three may bounce over it, landing as many cells beyond the stack
// as the stack is high, over empty cells only.
func (that *Position) leapOver(from, trampoline, direction int) (Move, bool) {
	height := that.Board[trampoline].Height()
	if height < 2 {
		return Move{}, false
	}

	landing := trampoline
	for step := 1; step <= height; step++ {
		landing = Neighbor(landing, direction)
		if landing < 0 {
			return Move{}, false
		}
		if step < height && that.Board[landing] != CellEmpty {
			return Move{}, false
		}
	}

	target := that.Board[landing]
	switch {
	case target == CellEmpty:
		return Move{From: from, To: landing, Kind: MoveLeap}, true
	case target.Height() == 1 && target.Top() == that.Turn.Opponent():
		return Move{From: from, To: landing, Kind: MoveLeap, Capture: true}, true
	default:
		if _, ok := target.Push(that.Turn, that.MaxHeight); ok {
			return Move{From: from, To: landing, Kind: MoveLeap}, true
		}
		return Move{}, false
	}
}

// stackMovesFrom generates whole-stack slides: a stack of height h moves
// exactly h cells in a straight line over empty cells, landing on an empty
// cell or capturing an enemy stack of strictly lower height.
func (that *Position) stackMovesFrom(from int) []Move {
	height := that.Board[from].Height()
	if height < 2 {
		return nil
	}

	var moves []Move
	for direction := 0; direction < DirectionCount; direction++ {
		landing := from
		blocked := false
		for step := 1; step <= height; step++ {
			landing = Neighbor(landing, direction)
			if landing < 0 {
				blocked = true
				break
			}
			if step < height && that.Board[landing] != CellEmpty {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		target := that.Board[landing]
		switch {
		case target == CellEmpty:
			moves = append(moves, Move{From: from, To: landing, Kind: MoveStack})
		case target.Top() == that.Turn.Opponent() && target.Height() < height:
			moves = append(moves, Move{From: from, To: landing, Kind: MoveStack, Capture: true})
		}
	}
	return moves
}

// ResolveNotation matches written notation against the legal moves.
func (that *Position) ResolveNotation(notation string) (Move, error) {
	parsed, err := parseNotation(notation)
	if err != nil {
		return Move{}, err
	}

	for _, move := range that.LegalMoves() {
		if move.From != parsed.from || move.To != parsed.to {
			continue
		}
		if move.Capture != parsed.capture {
			continue
		}
		if parsed.stack && move.Kind != MoveStack {
			continue
		}
		// The bare step separator never means a slide; captures are written
		// with * for every kind.
		if !parsed.stack && !parsed.capture && move.Kind == MoveStack {
			continue
		}
		return move, nil
	}

	return Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, notation)
}

// Apply plays a legal move, flips the turn and advances the ply counter.
// Captured neutral tokens go to the shared reserve, captured color tokens
// leave the game.
func (that *Position) Apply(move Move) {
	switch move.Kind {
	case MoveStep, MoveLeap:
		rest, top := that.Board[move.From].Pop()
		that.Board[move.From] = rest

		target := that.Board[move.To]
		switch {
		case move.Capture:
			_, _, neutral := target.Counts()
			that.Reserve += neutral
			that.Board[move.To], _ = CellEmpty.Push(top, that.MaxHeight)
		case target == CellEmpty:
			that.Board[move.To], _ = CellEmpty.Push(top, that.MaxHeight)
		default:
			that.Board[move.To], _ = target.Push(top, that.MaxHeight)
		}

	case MoveStack:
		if move.Capture {
			_, _, neutral := that.Board[move.To].Counts()
			that.Reserve += neutral
		}
		that.Board[move.To] = that.Board[move.From]
		that.Board[move.From] = CellEmpty
	}

	that.Ply++
	that.Turn = that.Turn.Opponent()
}

// Validate reports whether the move is legal in this position.
func (that *Position) Validate(move Move) error {
	for _, legal := range that.LegalMoves() {
		if legal == move {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalMove, move.Notation())
}
