package command

import (
	"fmt"
	"strconv"
	"strings"
)

// LockMode is the bitmask carried by Lock/Mode.
type LockMode uint32

// Lock mode flags.
const (
	LockCommitShared    LockMode = 1 << 0
	LockCommitExclusive LockMode = 1 << 1
)

var lockModeNames = []struct {
	name string
	flag LockMode
}{
	{"CommitShared", LockCommitShared},
	{"CommitExclusive", LockCommitExclusive},
}

// ParseLockMode decodes a supplied Lock/Mode value: either a base-10 mask or
// flag names separated by spaces or '|'.
func ParseLockMode(s string) (LockMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty lock mode")
	}
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		m := LockMode(n)
		if m&^(LockCommitShared|LockCommitExclusive) != 0 {
			return 0, fmt.Errorf("lock mode %d has unknown bits", n)
		}
		return m, nil
	}
	var m LockMode
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ' ' || r == ',' }) {
		flag, ok := lockModeFlag(tok)
		if !ok {
			return 0, fmt.Errorf("unknown lock mode %q", tok)
		}
		m |= flag
	}
	return m, nil
}

func lockModeFlag(name string) (LockMode, bool) {
	for _, n := range lockModeNames {
		if n.name == name {
			return n.flag, true
		}
	}
	return 0, false
}

// Has reports whether flag is set.
func (m LockMode) Has(flag LockMode) bool { return m&flag == flag }

// String renders the set flags separated by '|'.
func (m LockMode) String() string {
	var parts []string
	for _, n := range lockModeNames {
		if m.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}

// MarshalYAML renders the mode by flag names.
func (m LockMode) MarshalYAML() (any, error) {
	return m.String(), nil
}
