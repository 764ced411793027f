package command

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrIndeterminateDuration reports a duration with year or month parts,
	// which has no fixed length.
	ErrIndeterminateDuration = errors.New("duration with years or months has no fixed length")

	errDurationOverflow = errors.New("duration overflows")

	durationPattern = regexp.MustCompile(`^(-)?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)
)

// ParseDuration parses an ISO-8601 (xs:duration) value such as "PT1H30M" or
// "-P2DT0.5S" into a time.Duration.
func ParseDuration(s string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "-P" || strings.HasSuffix(s, "T") {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}
	if !allZero(m[2], m[3]) {
		return 0, ErrIndeterminateDuration
	}

	var total float64
	units := []struct {
		text string
		unit time.Duration
	}{
		{m[4], 24 * time.Hour},
		{m[5], time.Hour},
		{m[6], time.Minute},
	}
	for _, u := range units {
		if u.text == "" {
			continue
		}
		n, err := strconv.ParseUint(u.text, 10, 63)
		if err != nil {
			return 0, errDurationOverflow
		}
		total += float64(n) * float64(u.unit)
	}
	if m[7] != "" {
		secs, err := strconv.ParseFloat(m[7], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds %q: %w", m[7], err)
		}
		total += secs * float64(time.Second)
	}
	// float64(math.MaxInt64) is 2^63, which does not fit in an int64.
	if total >= math.MaxInt64 {
		return 0, errDurationOverflow
	}

	d := time.Duration(math.Round(total))
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}

func allZero(values ...string) bool {
	for _, v := range values {
		if strings.Trim(v, "0") != "" {
			return false
		}
	}
	return true
}
