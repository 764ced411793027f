package command

import (
	"errors"
	"fmt"
)

// ErrNoCommand is the cause of the fault raised for an empty command body.
var ErrNoCommand = errors.New("no command element")

// MissingElementError reports a required child that is absent.
type MissingElementError struct {
	Parent string
	Name   string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("element %s: missing required child %s", e.Parent, e.Name)
}

// InvalidValueError reports text that cannot be converted to the element's type.
type InvalidValueError struct {
	Element string
	Value   string
	Err     error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("element %s: invalid value %q: %v", e.Element, e.Value, e.Err)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}
