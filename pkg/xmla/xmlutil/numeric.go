package xmlutil

import "strings"

// NormalizeNumericString removes insignificant trailing zeros from a decimal
// string so that fixed-point and floating-point renderings of the same value
// compare equal: "12.340" becomes "12.34" and "12.00" becomes "12".
// Strings with an exponent marker or without a decimal point are returned
// unchanged.
func NormalizeNumericString(s string) string {
	if strings.ContainsAny(s, "eE") {
		return s
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	end := len(s)
	for end > dot+1 && s[end-1] == '0' {
		end--
	}
	if end == dot+1 {
		end = dot
	}
	return s[:end]
}
