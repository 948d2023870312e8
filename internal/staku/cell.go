package staku

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCellState = errors.New("unknown cell state")
	ErrBadPackedBoard   = errors.New("bad packed board")
	ErrBadBoardSize     = errors.New("bad board size")
)

// Color of a token: white and black belong to the players, neutral tokens
// belong to neither and only travel inside stacks.
type Color byte

const (
	NoColor Color = iota
	White
	Black
	Neutral
)

func (that Color) String() string {
	switch that {
	case White:
		return "W"
	case Black:
		return "B"
	case Neutral:
		return "N"
	default:
		return ""
	}
}

// Opponent returns the other player color.
func (that Color) Opponent() Color {
	if that == White {
		return Black
	}
	return White
}

// Cell encodes the full content of one board cell in four bits. The 15
// states are exactly the stacks allowed by the composition rule: zero or
// more neutral tokens at the bottom topped by tokens of one player color,
// never both colors together, never three neutrals.
type Cell byte

const (
	CellEmpty Cell = iota
	CellW
	CellB
	CellN
	CellWW
	CellBB
	CellNW
	CellNB
	CellNN
	CellWWW
	CellBBB
	CellNWW
	CellNBB
	CellNNW
	CellNNB

	cellStateCount = 15
)

// cellTokens lists each state as its tokens from bottom to top.
var cellTokens = [cellStateCount]string{
	"", "W", "B", "N",
	"WW", "BB", "NW", "NB", "NN",
	"WWW", "BBB", "NWW", "NBB", "NNW", "NNB",
}

var tokensToCell map[string]Cell

func init() {
	tokensToCell = make(map[string]Cell, cellStateCount)
	for state, tokens := range cellTokens {
		tokensToCell[tokens] = Cell(state)
	}
}

// Tokens returns the cell content as bottom-to-top token letters.
func (that Cell) Tokens() string {
	return cellTokens[that]
}

func (that Cell) String() string {
	return cellTokens[that]
}

// Height returns the number of tokens stacked on the cell.
func (that Cell) Height() int {
	return len(cellTokens[that])
}

// Top returns the color of the topmost token, or NoColor for an empty cell.
func (that Cell) Top() Color {
	tokens := cellTokens[that]
	if tokens == "" {
		return NoColor
	}
	return colorFromLetter(tokens[len(tokens)-1])
}

// Counts returns how many white, black and neutral tokens the cell holds.
func (that Cell) Counts() (white, black, neutral int) {
	for _, letter := range []byte(cellTokens[that]) {
		switch colorFromLetter(letter) {
		case White:
			white++
		case Black:
			black++
		case Neutral:
			neutral++
		}
	}
	return white, black, neutral
}

// Push returns the cell resulting from dropping a token on top, and whether
// the resulting stack is legal under the composition rule and height cap.
func (that Cell) Push(top Color, maxHeight int) (Cell, bool) {
	if that.Height()+1 > maxHeight {
		return that, false
	}

	cell, ok := tokensToCell[cellTokens[that]+top.String()]
	if !ok {
		return that, false
	}
	return cell, true
}

// Pop removes the topmost token and returns the remaining cell and the
// removed color. Popping an empty cell returns the empty cell and NoColor.
func (that Cell) Pop() (Cell, Color) {
	tokens := cellTokens[that]
	if tokens == "" {
		return CellEmpty, NoColor
	}

	rest := tokensToCell[tokens[:len(tokens)-1]]
	return rest, colorFromLetter(tokens[len(tokens)-1])
}

// ParseCell resolves bottom-to-top token letters to a cell state.
func ParseCell(tokens string) (Cell, error) {
	cell, ok := tokensToCell[tokens]
	if !ok {
		return CellEmpty, fmt.Errorf("%w: %q", ErrUnknownCellState, tokens)
	}
	return cell, nil
}

func colorFromLetter(letter byte) Color {
	switch letter {
	case 'W':
		return White
	case 'B':
		return Black
	case 'N':
		return Neutral
	default:
		return NoColor
	}
}

// PackedSize is the byte length of a packed board: two 4-bit cells per byte.
const PackedSize = 25

// Board holds one cell state per board cell, indexed like the hexagon table.
type Board [CellCount]Cell

// Pack serializes the board to 25 bytes, two cells per byte, low nibble first.
func (that *Board) Pack() [PackedSize]byte {
	var packed [PackedSize]byte
	for index, cell := range that {
		if index%2 == 0 {
			packed[index/2] = byte(cell)
		} else {
			packed[index/2] |= byte(cell) << 4
		}
	}
	return packed
}

// UnpackBoard restores a board from its packed form.
func UnpackBoard(packed [PackedSize]byte) (Board, error) {
	var board Board
	for index := range board {
		nibble := packed[index/2] >> (4 * uint(index%2)) & 0x0f
		if nibble >= cellStateCount {
			return Board{}, fmt.Errorf("%w: nibble %d at cell %d", ErrBadPackedBoard, nibble, index)
		}
		board[index] = Cell(nibble)
	}
	return board, nil
}

// Strings returns the board as bottom-to-top token strings, one per cell.
func (that *Board) Strings() []string {
	cells := make([]string, CellCount)
	for index, cell := range that {
		cells[index] = cell.Tokens()
	}
	return cells
}

// BoardFromStrings restores a board from per-cell token strings.
func BoardFromStrings(cells []string) (Board, error) {
	var board Board
	if len(cells) != CellCount {
		return Board{}, fmt.Errorf("%w: expected %d cells, got %d", ErrBadBoardSize, CellCount, len(cells))
	}

	for index, tokens := range cells {
		cell, err := ParseCell(tokens)
		if err != nil {
			return Board{}, fmt.Errorf("cell %s: %w", CellName(index), err)
		}
		board[index] = cell
	}
	return board, nil
}
