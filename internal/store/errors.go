package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// RepositoryError carries the entity and id a store operation failed on.
// Kind is ErrNotFound or ErrConflict; match it with errors.Is.
type RepositoryError struct {
	Kind   error
	Entity string
	ID     string
}

func (e *RepositoryError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %v", e.Entity, e.Kind)
	}
	return fmt.Sprintf("%s %q %v", e.Entity, e.ID, e.Kind)
}

func (e *RepositoryError) Unwrap() error {
	return e.Kind
}

func notFound(entity, id string) error {
	return &RepositoryError{Kind: ErrNotFound, Entity: entity, ID: id}
}

func conflict(entity, id string) error {
	return &RepositoryError{Kind: ErrConflict, Entity: entity, ID: id}
}
