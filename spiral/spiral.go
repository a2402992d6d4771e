package spiral

import (
	"math"
	"math/bits"
)

/*
Package spiral maps identifiers to lattice coordinates and back. Identifiers are
handed out ring by ring, starting from 0 at (-1, -1). Within ring d the walk
starts at (2d)^2 and covers four edges of length 2d+1 in order:

	0: left edge,   x = -d-1, y from d-1 down to -d-1
	1: top edge,    y = -d-1, x from -d up to d
	2: right edge,  x = d,    y from -d up to d
	3: bottom edge, y = d,    x from d-1 down to -d-1

The last ring that fits in 64 bits is d = 2^31-1, which ends at 2^64-1 and
spans exactly the int32 lattice. So Encode and Decode form a bijection between
uint64 and int32 x int32 with no values excluded on either side.
*/

////////////////////////////////////////////////////////////////////////////////

// Decode returns the coordinate assigned to id.
func Decode(id uint64) Coord {
	d := isqrt(id) / 2
	count := id - 4*d*d
	edgeLen := 2*d + 1
	edge := count / edgeLen
	left := int64(count % edgeLen)
	deg := int64(d)
	switch edge {
	case 0:
		return coord(-deg-1, deg-1-left)
	case 1:
		return coord(-deg+left, -deg-1)
	case 2:
		return coord(deg, -deg+left)
	default:
		return coord(deg-1-left, deg)
	}
}

// Encode returns the identifier assigned to c.
func Encode(c Coord) uint64 {
	d := Degree(c)
	deg := int64(d)
	edgeLen := 2*deg + 1
	lo, hi := -deg-1, deg
	x, y := int64(c.X), int64(c.Y)

	var offset int64
	switch {
	case x == lo && y < hi:
		offset = (hi - 1) - y
	case y == lo:
		offset = edgeLen + x - (lo + 1)
	case x == hi:
		offset = 2*edgeLen + y - (lo + 1)
	default:
		offset = 3*edgeLen + (hi - 1) - x
	}
	return RingStart(d) + uint64(offset)
}

func coord(x, y int64) Coord {
	return Coord{X: int32(x), Y: int32(y)}
}

// isqrt returns floor(sqrt(n)). The float estimate is corrected in both
// directions since float64 cannot represent every uint64.
func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	if r > math.MaxUint32 {
		r = math.MaxUint32
	}
	for square(r) > n {
		r--
	}
	for r < math.MaxUint32 && square(r+1) <= n {
		r++
	}
	return r
}

func square(r uint64) uint64 {
	hi, lo := bits.Mul64(r, r)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
