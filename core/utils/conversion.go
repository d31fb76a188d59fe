package utils

import (
	"strconv"
	"strings"
)

// ParseFloat parses a numeric cell from a tabular export. It tolerates
// surrounding whitespace and thousands separators ("1,234.5"). Empty
// cells and placeholder dashes report no value rather than zero, so
// callers can tell absent data from a genuine zero.
func ParseFloat(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "-" || cell == "--" {
		return 0, false
	}
	cell = strings.ReplaceAll(cell, ",", "")
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseYear parses a four-digit calendar year. Anything that is not
// exactly four digits reports no value ("20211" is not a year).
func ParseYear(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if len(cell) != 4 {
		return 0, false
	}
	for _, r := range cell {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(cell)
	if err != nil {
		return 0, false
	}
	return year, true
}
