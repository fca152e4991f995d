package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/pycourse/internal/repository"
)

// lookupErr converts a repository lookup error into a service error kind.
func lookupErr(err error, what string, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return fmt.Errorf("%w: loading %s %d: %v", ErrInternal, what, id, err)
}
