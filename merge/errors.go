package merge

import (
	"errors"
	"fmt"
)

// ErrInvalidExtent is returned when a merge requests a zero width or height.
var ErrInvalidExtent = errors.New("width and height must be between 1 and 255")

// PermissionDeniedError is returned when the actor may not merge the anchor,
// or a member tile belongs to someone other than the anchor's owner.
type PermissionDeniedError struct {
	ID     uint64
	Actor  string
	Reason string
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied for %q on tile %d: %s", e.Actor, e.ID, e.Reason)
}

// Is reports whether target is a PermissionDeniedError.
func (e PermissionDeniedError) Is(target error) bool {
	_, ok := target.(PermissionDeniedError)
	return ok
}

// CorruptRecordError is returned when a stored merge record or coverage link
// cannot be decoded.
type CorruptRecordError struct {
	Key   string
	Value []byte
}

func (e CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record at %s: %x", e.Key, e.Value)
}

// Is reports whether target is a CorruptRecordError.
func (e CorruptRecordError) Is(target error) bool {
	_, ok := target.(CorruptRecordError)
	return ok
}
