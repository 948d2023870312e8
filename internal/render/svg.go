package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/staku"
)

const (
	cellWidth  = 60
	canvasSize = 640

	tokenRadius = 16
	tokenLift   = 9
)

var tokenFill = map[staku.Color]string{
	staku.White:   "#f0f0f0",
	staku.Black:   "#303030",
	staku.Neutral: "#b08968",
}

// Render draws the game's board as an SVG document.
func Render(w io.Writer, game *entity.Game) error {
	board, err := staku.BoardFromStrings(game.Cells)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}

	canvas := svg.New(w)
	canvas.Start(canvasSize, canvasSize)
	canvas.Rect(0, 0, canvasSize, canvasSize, "fill:#fdf8ef")

	palaces := palaceSet()

	for index := 0; index < staku.CellCount; index++ {
		cx, cy := cellCenter(index)

		style := "fill:#e8dcc8;stroke:#8a7a5c;stroke-width:2"
		if staku.CellRing(index)%2 == 1 {
			style = "fill:#d9c9a8;stroke:#8a7a5c;stroke-width:2"
		}
		if palaces[index] {
			style = "fill:#c9a84c;stroke:#7a5c1e;stroke-width:3"
		}

		xs, ys := hexCorners(cx, cy)
		canvas.Polygon(xs, ys, style)

		canvas.Text(cx, cy+cellWidth/2-6, staku.CellName(index),
			"font-family:sans-serif;font-size:11px;fill:#6a5a3c;text-anchor:middle")

		drawStack(canvas, cx, cy, board[index])
	}

	canvas.End()

	return nil
}

// cellCenter maps a cell's axial coordinates onto the canvas.
func cellCenter(index int) (int, int) {
	u, v := staku.CellPosition(index)

	x := float64(cellWidth) * (float64(u) + float64(v)/2)
	y := -float64(cellWidth) * math.Sqrt(3) / 2 * float64(v)

	return canvasSize/2 + int(math.Round(x)), canvasSize/2 + int(math.Round(y))
}

func hexCorners(cx, cy int) ([]int, []int) {
	radius := float64(cellWidth) / math.Sqrt(3)

	xs := make([]int, staku.DirectionCount)
	ys := make([]int, staku.DirectionCount)
	for k := 0; k < staku.DirectionCount; k++ {
		angle := math.Pi / 6 * float64(2*k+1)
		xs[k] = cx + int(math.Round(radius*math.Cos(angle)))
		ys[k] = cy + int(math.Round(radius*math.Sin(angle)))
	}

	return xs, ys
}

// drawStack draws a cell's tokens bottom-up, each token slightly above the
// one below it.
func drawStack(canvas *svg.SVG, cx, cy int, cell staku.Cell) {
	tokens := cell.Tokens()

	for i, token := range tokens {
		var color staku.Color
		switch token {
		case 'W':
			color = staku.White
		case 'B':
			color = staku.Black
		default:
			color = staku.Neutral
		}

		y := cy - i*tokenLift
		canvas.Circle(cx, y, tokenRadius,
			fmt.Sprintf("fill:%s;stroke:#4a3a24;stroke-width:1.5", tokenFill[color]))
	}
}

func palaceSet() map[int]bool {
	palaces := make(map[int]bool, 4)
	for _, color := range []staku.Color{staku.White, staku.Black} {
		for _, index := range staku.PalaceTargets(color) {
			palaces[index] = true
		}
	}

	return palaces
}
