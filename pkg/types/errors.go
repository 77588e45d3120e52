package types

import (
	"errors"
	"fmt"
	"strings"
)

// Property and registry errors.
var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidValueType = errors.New("invalid value type")
	ErrTypeMismatch     = errors.New("value does not match property type")
)

// ValidationError reports every mandatory property of a category that was
// left without a value when constructing an item. Missing always carries the
// complete list, not just the first offender.
type ValidationError struct {
	Category string   // category code the item was constructed against
	Missing  []string // special names of the absent mandatory properties
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item of category %q is missing mandatory properties: %s",
		e.Category, strings.Join(e.Missing, ", "))
}

// MandatoryPropertyError reports an attempt to remove a mandatory property
// from an item without the explicit override.
type MandatoryPropertyError struct {
	Property string // display name of the protected property
}

func (e *MandatoryPropertyError) Error() string {
	return fmt.Sprintf("cannot remove property %q because it is mandatory", e.Property)
}

// NotFoundError reports an operation against an entity that is not in the
// expected working set, such as lending an item that is not active.
type NotFoundError struct {
	Entity string // entity kind: "item", "person", ...
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in the active set", e.Entity, e.ID)
}
