package catalog

import (
	"errors"
	"fmt"
)

// ErrLabelNotFound is matched by every LabelNotFoundError.
var ErrLabelNotFound = errors.New("label not found")

// LabelNotFoundError is returned when a label is not part of the active catalog.
type LabelNotFoundError struct {
	Mode  Mode
	Label string
}

func (e *LabelNotFoundError) Error() string {
	if e.Mode == "" {
		return fmt.Sprintf("unknown query %q", e.Label)
	}
	return fmt.Sprintf("unknown query %q in %s catalog", e.Label, e.Mode)
}

// Is reports whether target is ErrLabelNotFound.
func (e *LabelNotFoundError) Is(target error) bool {
	return target == ErrLabelNotFound
}

// UnknownModeError is returned by ParseMode for values outside the mode set.
type UnknownModeError struct {
	Value string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown mode %q (expected %s or %s)", e.Value, ModePrimary, ModeSecondary)
}
