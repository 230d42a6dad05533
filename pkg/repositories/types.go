package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a player has no stored score.
type ErrNotFound struct {
	Name string
}

func (e *ErrNotFound) Error() string {
	if e.Name == "" {
		return "score not found"
	}
	return fmt.Sprintf("no score found for %s", e.Name)
}

// IsNotFound reports whether err, or anything it wraps, is an ErrNotFound.
func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	return errors.As(err, &notFound)
}
