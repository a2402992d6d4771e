package spiral

import (
	"fmt"
	"strconv"
)

/*
Identifiers cross every external boundary as canonical base-10 text. Anything
else, including "007", "+7" and "-1", is malformed. DecodeLenient keeps the
legacy behavior of mapping unparsable text to the origin instead of failing.
*/

////////////////////////////////////////////////////////////////////////////////

// MalformedIDError is returned when identifier text is not a canonical
// non-negative decimal integer.
type MalformedIDError struct {
	Input string
}

func (e MalformedIDError) Error() string {
	return fmt.Sprintf("malformed identifier %q", e.Input)
}

// Is reports whether target is a MalformedIDError.
func (e MalformedIDError) Is(target error) bool {
	_, ok := target.(MalformedIDError)
	return ok
}

// ParseID parses canonical identifier text.
func ParseID(s string) (uint64, error) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, MalformedIDError{s}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, MalformedIDError{s}
		}
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, MalformedIDError{s}
	}
	return id, nil
}

// FormatID renders an identifier as canonical text.
func FormatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// DecodeString parses s and returns its coordinate.
func DecodeString(s string) (Coord, error) {
	id, err := ParseID(s)
	if err != nil {
		return Coord{}, err
	}
	return Decode(id), nil
}

// DecodeLenient is DecodeString with malformed input mapped to (0, 0).
func DecodeLenient(s string) Coord {
	c, err := DecodeString(s)
	if err != nil {
		return Coord{}
	}
	return c
}

// EncodeString returns the identifier text for c.
func EncodeString(c Coord) string {
	return FormatID(Encode(c))
}
