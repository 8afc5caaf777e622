package repository

import (
	"errors"
	"fmt"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already registered")
)

// PersistenceError reports that the database engine rejected an operation
// (locked file, full disk, constraint violation, closed connection, ...).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err came from the database engine.
func IsPersistence(err error) bool {
	var pErr *PersistenceError
	return errors.As(err, &pErr)
}

func persistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
