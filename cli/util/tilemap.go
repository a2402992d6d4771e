package util

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/wkalt/tileland/area"
	"github.com/wkalt/tileland/coverage"
	"github.com/wkalt/tileland/spiral"
)

/*
RenderMap draws the square of cells around the origin. Each uncovered tile is
painted across its extents in a color keyed to its anchor; cells outside any
tile are drawn as dots. A single character per cell marks the last digit of the
anchor's identifier.
*/

////////////////////////////////////////////////////////////////////////////////

var palette = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
	color.New(color.FgHiRed),
	color.New(color.FgHiGreen),
}

// RenderMap writes a map of the cells with both coordinates in [-radius,
// radius).
func RenderMap(w io.Writer, tiles []coverage.Tile, radius int32) error {
	if radius <= 0 {
		return fmt.Errorf("radius must be positive")
	}
	owners := make(map[spiral.Coord]int)
	for i, tile := range tiles {
		rect, err := area.NewRect(tile.ID, tile.Width, tile.Height)
		if err != nil {
			return fmt.Errorf("failed to place tile %d: %w", tile.ID, err)
		}
		for c := range rect.Coords() {
			owners[c] = i
		}
	}
	for y := -radius; y < radius; y++ {
		for x := -radius; x < radius; x++ {
			i, ok := owners[spiral.Coord{X: x, Y: y}]
			if !ok {
				fmt.Fprint(w, ".")
				continue
			}
			glyph := fmt.Sprintf("%d", tiles[i].ID%10)
			palette[i%len(palette)].Fprint(w, glyph)
		}
		fmt.Fprintln(w)
	}
	return nil
}
