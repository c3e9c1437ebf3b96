package synclyrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTimestamp converts a timing attribute value to seconds.
//
// A value with a ':' is split at the first one into minutes and seconds
// ("01:02.5" is 62.5). An unparsable minutes part counts as zero; an
// unparsable seconds part is an error. A value without ':' is seconds.
func ParseTimestamp(value string) (float64, error) {
	minutesPart, secondsPart, found := strings.Cut(value, ":")
	if !found {
		return parseDecimal(value)
	}

	minutes, err := parseDecimal(minutesPart)
	if err != nil {
		minutes = 0
	}

	seconds, err := parseDecimal(secondsPart)
	if err != nil {
		return 0, err
	}

	total := minutes*60 + seconds
	if math.IsInf(total, 0) {
		return 0, fmt.Errorf("timestamp %q out of range", value)
	}
	return total, nil
}

// parseDecimal parses a finite decimal number. strconv.ParseFloat also
// accepts hex floats, digit separators, NaN and Inf; none of those are
// valid in a timing or metadata attribute.
func parseDecimal(s string) (float64, error) {
	if strings.ContainsAny(s, "xX_") {
		return 0, fmt.Errorf("%q is not a decimal number", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
