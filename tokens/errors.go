package tokens

import "fmt"

// TokenNotFoundError is returned when a token has not been minted.
type TokenNotFoundError struct {
	ID uint64
}

func (e TokenNotFoundError) Error() string {
	return fmt.Sprintf("token %d not found", e.ID)
}

// Is reports whether target is a TokenNotFoundError.
func (e TokenNotFoundError) Is(target error) bool {
	_, ok := target.(TokenNotFoundError)
	return ok
}

// TokenExistsError is returned when minting an identifier that already exists.
type TokenExistsError struct {
	ID uint64
}

func (e TokenExistsError) Error() string {
	return fmt.Sprintf("token %d already exists", e.ID)
}

// Is reports whether target is a TokenExistsError.
func (e TokenExistsError) Is(target error) bool {
	_, ok := target.(TokenExistsError)
	return ok
}

// NotOwnerError is returned when an account acts on a token it does not own.
type NotOwnerError struct {
	ID      uint64
	Account string
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("account %q does not own token %d", e.Account, e.ID)
}

// Is reports whether target is a NotOwnerError.
func (e NotOwnerError) Is(target error) bool {
	_, ok := target.(NotOwnerError)
	return ok
}
