package utils

import (
	"strconv"
	"strings"
)

// ParseDecimal converts a feed value to a decimal number. Vendor exports use
// either a comma or a period as the decimal separator, so a comma is
// normalized before parsing. Empty or unparseable values yield zero.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseInt converts a feed value to an int, falling back to def when the
// value is empty or not an integer.
func ParseInt(s string, def int) int {
	if v := ParseIntPtr(s); v != nil {
		return *v
	}
	return def
}

// ParseIntPtr converts a feed value to an int, returning nil when the value
// is empty or not an integer. Callers use the nil case to distinguish
// "absent" from zero.
func ParseIntPtr(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &i
}

// ParseBool reports whether a feed value is the literal "true", ignoring
// case. Any other value, including absence, is false.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
