package reports

import (
	"strconv"
	"strings"

	"reviewstats/internal/models"
)

// FormatRounded rounds v to places decimals and drops trailing zeros while
// keeping at least one decimal, so 7 prints as "7.0" and 66.6666 as "66.667".
func FormatRounded(v float64, places int) string {
	return keepOneDecimal(strconv.FormatFloat(v, 'f', places, 64))
}

// FormatScore prints a score the way it was stored: integers without
// decimals, floats with as many decimals as they need and at least one
func FormatScore(s models.ReviewScore) string {
	if s.Integer {
		return strconv.FormatInt(int64(s.Value), 10)
	}
	return keepOneDecimal(strconv.FormatFloat(s.Value, 'f', -1, 64))
}

func keepOneDecimal(s string) string {
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
