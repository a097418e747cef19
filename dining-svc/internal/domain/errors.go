package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrCapacityExceeded    = errors.New("guest count exceeds table capacity")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrCancelWindowElapsed = errors.New("order can no longer be cancelled")
	ErrNotOrderOwner       = errors.New("order belongs to another customer")
	ErrCategoryInUse       = errors.New("category is still referenced by menu items")
	ErrTableInUse          = errors.New("table has open orders")
	ErrUpstream            = errors.New("upstream service failure")
)

func NotFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, ErrNotFound)
}

func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
