package area

import (
	"errors"
	"fmt"
	"iter"

	"github.com/wkalt/tileland/spiral"
)

/*
Package area enumerates the identifiers covering a rectangle of tiles. The
rectangle is anchored at its top-left tile (smallest x, smallest y) and walked
column by column, top to bottom within each column.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrOutOfBounds is returned when a rectangle extends past the lattice.
var ErrOutOfBounds = errors.New("rectangle exceeds coordinate bounds")

// Rect is a rectangle of tiles.
type Rect struct {
	Anchor spiral.Coord
	Width  uint8
	Height uint8
}

// NewRect returns the rectangle anchored at the tile with identifier anchor.
func NewRect(anchor uint64, width, height uint8) (Rect, error) {
	r := Rect{Anchor: spiral.Decode(anchor), Width: width, Height: height}
	if err := r.validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

func (r Rect) validate() error {
	if r.Width == 0 || r.Height == 0 {
		return nil
	}
	if _, ok := r.Anchor.Add(int64(r.Width)-1, int64(r.Height)-1); !ok {
		return fmt.Errorf("%w: %dx%d at %s", ErrOutOfBounds, r.Width, r.Height, r.Anchor)
	}
	return nil
}

// Len returns the number of tiles in the rectangle.
func (r Rect) Len() int {
	return int(r.Width) * int(r.Height)
}

// Coords yields the coordinates of every tile in the rectangle.
func (r Rect) Coords() iter.Seq[spiral.Coord] {
	return func(yield func(spiral.Coord) bool) {
		for i := int64(0); i < int64(r.Width); i++ {
			for j := int64(0); j < int64(r.Height); j++ {
				c, ok := r.Anchor.Add(i, j)
				if !ok {
					return
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// IDs yields the identifier of every tile in the rectangle.
func (r Rect) IDs() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for c := range r.Coords() {
			if !yield(spiral.Encode(c)) {
				return
			}
		}
	}
}

// IDs returns the identifiers covering the width x height rectangle anchored
// at anchor. The sequence may be ranged over any number of times.
func IDs(anchor uint64, width, height uint8) (iter.Seq[uint64], error) {
	r, err := NewRect(anchor, width, height)
	if err != nil {
		return nil, err
	}
	return r.IDs(), nil
}

// Collect returns the identifiers of IDs as a slice.
func Collect(anchor uint64, width, height uint8) ([]uint64, error) {
	seq, err := IDs(anchor, width, height)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, int(width)*int(height))
	for id := range seq {
		ids = append(ids, id)
	}
	return ids, nil
}
