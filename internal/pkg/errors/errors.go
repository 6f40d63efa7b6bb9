package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalid        = errors.New("invalid")
	ErrConflict       = errors.New("conflict")
	ErrDataCorruption = errors.New("data corruption")
	ErrIO             = errors.New("io failure")

	ErrDuplicateID   = fmt.Errorf("%w: duplicate id", ErrConflict)
	ErrDuplicateName = fmt.Errorf("%w: duplicate name", ErrConflict)
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsDataCorruption(err error) bool {
	return errors.Is(err, ErrDataCorruption)
}
