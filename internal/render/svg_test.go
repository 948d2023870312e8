package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/staku"
)

func TestRender(t *testing.T) {
	t.Run("Draws every cell of a fresh board", func(t *testing.T) {
		// Given: a fresh game
		game := staku.NewGame("1", entity.PrivateType, staku.Staku3)

		// When: rendering it
		var buf bytes.Buffer
		err := Render(&buf, game)

		// Then: the SVG holds one hexagon per cell and one disc per token
		require.NoError(t, err)

		out := buf.String()
		assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
		assert.Contains(t, out, "</svg>")
		assert.Equal(t, staku.CellCount, strings.Count(out, "<polygon"))

		// 7 White, 7 Black and 3 neutral tokens on the opening board
		assert.Equal(t, 17, strings.Count(out, "<circle"))
	})

	t.Run("Stacked tokens get one disc each", func(t *testing.T) {
		game := staku.NewGame("1", entity.PrivateType, staku.Staku3)
		game.Cells = make([]string, staku.CellCount)
		game.Cells[0] = "NNW"

		var buf bytes.Buffer
		require.NoError(t, Render(&buf, game))

		assert.Equal(t, 3, strings.Count(buf.String(), "<circle"))
	})

	t.Run("Fails on a corrupt board", func(t *testing.T) {
		game := staku.NewGame("1", entity.PrivateType, staku.Staku3)
		game.Cells[0] = "WB"

		var buf bytes.Buffer
		err := Render(&buf, game)

		require.Error(t, err)
	})
}
