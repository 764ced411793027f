package enum

import "errors"

// ErrUnknownValue is returned by Set.Parse for names outside the set.
var ErrUnknownValue = errors.New("unknown enumeration value")
