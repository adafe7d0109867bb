package risk

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v the way the matrix files show numbers: the shortest
// decimal that round-trips, always with a fractional part ("7.0", "2.8").
// Very small and very large magnitudes switch to exponent form.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatFixed renders v with exactly prec decimals.
func FormatFixed(v float64, prec int) string {
	return fmt.Sprintf("%.*f", prec, v)
}

// ParseDecimal parses a number that may use a comma as decimal separator.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
