package xmlutil

import "errors"

// RootCause follows the Unwrap chain of err and returns the innermost
// non-nil error. It returns nil only when err is nil.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
