package staku

// The board is made of 49 hexagonal cells laid out in seven rows:
// a(6) b(7) c(8) d(7) e(8) f(7) g(6). Cells are addressed in an oblique
// u-v frame; each cell has up to six neighbours. The four corner cells
// a1, a6, g1 and g6 are the palaces.

const (
	// CellCount is the number of cells on the board.
	CellCount = 49

	// DirectionCount is the number of hexagon sides.
	DirectionCount = 6
)

var (
	deltaU = [DirectionCount]int{+1, +1, 0, -1, -1, 0}
	deltaV = [DirectionCount]int{0, -1, -1, 0, +1, +1}
)

type hexagon struct {
	name string
	u, v int
	ring int
}

// hexagons lists the cells in name order, which is also the index order.
var hexagons = [CellCount]hexagon{
	{"a1", -1, -3, 4}, {"a2", 0, -3, 3}, {"a3", 1, -3, 3}, {"a4", 2, -3, 3}, {"a5", 3, -3, 3}, {"a6", 4, -3, 4},
	{"b1", -2, -2, 4}, {"b2", -1, -2, 3}, {"b3", 0, -2, 2}, {"b4", 1, -2, 2}, {"b5", 2, -2, 2}, {"b6", 3, -2, 3}, {"b7", 4, -2, 4},
	{"c1", -3, -1, 4}, {"c2", -2, -1, 3}, {"c3", -1, -1, 2}, {"c4", 0, -1, 1}, {"c5", 1, -1, 1}, {"c6", 2, -1, 2}, {"c7", 3, -1, 3}, {"c8", 4, -1, 4},
	{"d1", -3, 0, 3}, {"d2", -2, 0, 2}, {"d3", -1, 0, 1}, {"d4", 0, 0, 0}, {"d5", 1, 0, 1}, {"d6", 2, 0, 2}, {"d7", 3, 0, 3},
	{"e1", -4, 1, 4}, {"e2", -3, 1, 3}, {"e3", -2, 1, 2}, {"e4", -1, 1, 1}, {"e5", 0, 1, 1}, {"e6", 1, 1, 2}, {"e7", 2, 1, 3}, {"e8", 3, 1, 4},
	{"f1", -4, 2, 4}, {"f2", -3, 2, 3}, {"f3", -2, 2, 2}, {"f4", -1, 2, 2}, {"f5", 0, 2, 2}, {"f6", 1, 2, 3}, {"f7", 2, 2, 4},
	{"g1", -4, 3, 4}, {"g2", -3, 3, 3}, {"g3", -2, 3, 3}, {"g4", -1, 3, 3}, {"g5", 0, 3, 3}, {"g6", 1, 3, 4},
}

var (
	nameToIndex map[string]int
	neighbors   [CellCount][DirectionCount]int

	whitePalaces [2]int // own palaces of White, Black must reach them
	blackPalaces [2]int // own palaces of Black, White must reach them
)

func init() {
	nameToIndex = make(map[string]int, CellCount)
	positionToIndex := make(map[[2]int]int, CellCount)

	for index, hex := range hexagons {
		nameToIndex[hex.name] = index
		positionToIndex[[2]int{hex.u, hex.v}] = index
	}

	for index, hex := range hexagons {
		for direction := 0; direction < DirectionCount; direction++ {
			position := [2]int{hex.u + deltaU[direction], hex.v + deltaV[direction]}
			if neighbor, ok := positionToIndex[position]; ok {
				neighbors[index][direction] = neighbor
			} else {
				neighbors[index][direction] = -1
			}
		}
	}

	whitePalaces = [2]int{nameToIndex["a1"], nameToIndex["a6"]}
	blackPalaces = [2]int{nameToIndex["g1"], nameToIndex["g6"]}
}

// CellIndex - resolves a cell name like "d4" to its board index.
func CellIndex(name string) (int, bool) {
	index, ok := nameToIndex[name]
	return index, ok
}

// CellName returns the name of the cell at the given index.
func CellName(index int) string {
	return hexagons[index].name
}

// CellPosition returns the oblique u-v coordinates of a cell.
func CellPosition(index int) (int, int) {
	return hexagons[index].u, hexagons[index].v
}

// CellRing returns the distance ring of a cell, 0 at the center.
func CellRing(index int) int {
	return hexagons[index].ring
}

// Neighbor returns the index of the adjacent cell in the given direction,
// or -1 when the direction leaves the board.
func Neighbor(index, direction int) int {
	return neighbors[index][direction]
}

// PalaceTargets returns the two palace cells the given color must reach to win.
func PalaceTargets(color Color) [2]int {
	if color == White {
		return blackPalaces
	}
	return whitePalaces
}
