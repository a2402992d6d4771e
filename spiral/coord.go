package spiral

import "fmt"

/*
Coordinates live on the int32 lattice. Rings are indexed by a "degree" that is
asymmetric about the origin: ring d spans [-d-1, d] on both axes, so the four
cells around the origin form ring 0.
*/

////////////////////////////////////////////////////////////////////////////////

// Coord is a position on the plane. Y grows downward; the top-left tile of a
// rectangle has the smallest X and Y.
type Coord struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Add returns the coordinate offset by dx, dy. The second return value is
// false if the result leaves the lattice.
func (c Coord) Add(dx, dy int64) (Coord, bool) {
	x := int64(c.X) + dx
	y := int64(c.Y) + dy
	if x < minCoord || x > maxCoord || y < minCoord || y > maxCoord {
		return Coord{}, false
	}
	return Coord{X: int32(x), Y: int32(y)}, true
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

const (
	minCoord = -1 << 31
	maxCoord = 1<<31 - 1
)

func adjusted(v int32) uint32 {
	if v >= 0 {
		return uint32(v)
	}
	return uint32(-(int64(v) + 1))
}

// Degree returns the ring degree of c.
func Degree(c Coord) uint32 {
	return max(adjusted(c.X), adjusted(c.Y))
}

// RingSize returns the number of coordinates on ring d.
func RingSize(d uint32) uint64 {
	return 8*uint64(d) + 4
}

// RingStart returns the first identifier on ring d.
func RingStart(d uint32) uint64 {
	side := 2 * uint64(d)
	return side * side
}
