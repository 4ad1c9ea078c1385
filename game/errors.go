// game/errors.go
package game

import "errors"

// Failure outcomes surfaced by engine operations. "Not found" for module and
// route lookups inside CompleteModule is deliberately absorbed as a no-op
// instead of appearing here.
var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginTaken         = errors.New("student id already exists")
	ErrIncorrectPassword  = errors.New("incorrect old password")
)
