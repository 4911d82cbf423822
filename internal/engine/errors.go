package engine

import (
	"errors"
	"fmt"
)

// ErrUninitialized is returned by operations that require the character
// singleton before InitializeCharacter has run.
var ErrUninitialized = errors.New("character not initialized (run init first)")

// NotFoundError indicates a referenced record does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
