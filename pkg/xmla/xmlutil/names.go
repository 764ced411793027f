package xmlutil

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// NameEncoder escapes arbitrary strings into valid XML element names.
// Characters outside the XML Name production are replaced by _xHHHH_.
// A character above U+FFFF becomes two such escapes, one per UTF-16 unit.
//
// Results are memoized for the lifetime of the encoder. The key space is the
// set of distinct column names a server emits, so entries are never evicted.
// A NameEncoder is safe for concurrent use.
type NameEncoder struct {
	cache sync.Map // string -> string
}

// NewNameEncoder creates an empty encoder.
func NewNameEncoder() *NameEncoder {
	return &NameEncoder{}
}

// Encode returns the escaped element name for name.
func (e *NameEncoder) Encode(name string) string {
	if v, ok := e.cache.Load(name); ok {
		return v.(string)
	}
	encoded := EncodeElementName(name)
	actual, _ := e.cache.LoadOrStore(name, encoded)
	return actual.(string)
}

// Len returns the number of memoized names.
func (e *NameEncoder) Len() int {
	n := 0
	e.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// EncodeElementName escapes name without memoization.
func EncodeElementName(name string) string {
	if IsValidName(name) {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 8)
	first := true
	for _, r := range name {
		valid := isNameChar(r)
		if first {
			valid = isNameStartChar(r)
			first = false
		}
		if valid {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, "_x%04X__x%04X_", hi, lo)
			continue
		}
		fmt.Fprintf(&b, "_x%04X_", r)
	}
	return b.String()
}

// IsValidName reports whether s matches the XML Name production.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(s)
	if !isNameStartChar(r) {
		return false
	}
	for _, r := range s[size:] {
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func isNameStartChar(r rune) bool {
	return r == ':' || r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) ||
		r == '-' || r == '.' ||
		unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
		isExtender(r)
}

// isExtender matches the Extender class of XML 1.0 (2nd edition).
func isExtender(r rune) bool {
	switch r {
	case 0x00B7, 0x02D0, 0x02D1, 0x0387, 0x0640, 0x0E46, 0x0EC6, 0x3005:
		return true
	}
	return (r >= 0x3031 && r <= 0x3035) ||
		(r >= 0x309D && r <= 0x309E) ||
		(r >= 0x30FC && r <= 0x30FE)
}
