// Package numparse normalises locale-formatted numeric strings.
package numparse

import (
	"strconv"
	"strings"
)

// Amount parses a human-entered monetary string into a float. It tolerates
// currency symbols, whitespace and both "1.234,56" and "1,234.56" shapes.
// Garbage falls back to 0 rather than erroring.
func Amount(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, raw)
	if cleaned == "" {
		return 0
	}

	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')
	switch {
	case lastComma > lastDot:
		// Comma is the decimal separator, dots are grouping.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case lastDot > lastComma:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		lastDot = strings.LastIndexByte(cleaned, '.')
		// A lone dot with exactly three trailing digits is Turkish grouping
		// ("1.500" is one thousand five hundred), not a decimal point.
		if strings.Count(cleaned, ".") > 1 || len(cleaned)-lastDot == 4 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
