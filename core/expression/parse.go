package expression

import (
	"fmt"
	"strconv"
	"strings"
)

// Series is a parsed multi-year expression.
type Series struct {
	Form   Form
	Points []Point
	// Scale is the trailing multiplicative factor, 1 when absent.
	Scale float64
}

// Values returns the series points as a year-to-value map, suitable for
// feeding back into Build.
func (s Series) Values() map[int]float64 {
	values := make(map[int]float64, len(s.Points))
	for _, p := range s.Points {
		values[p.Year] = p.Value
	}
	return values
}

// Parse decodes a series expression of the shape produced by Build:
// "Interp(2020, 50, 2021, 55)" or "Data(...)*1000". Bare constants are not
// series and return an error.
func Parse(expr string) (Series, error) {
	s := Series{Scale: 1}
	expr = strings.TrimSpace(expr)

	open := strings.Index(expr, "(")
	closing := strings.LastIndex(expr, ")")
	if open < 1 || closing < open {
		return s, fmt.Errorf("not a series expression: %q", expr)
	}

	switch Form(expr[:open]) {
	case FormInterp:
		s.Form = FormInterp
	case FormData:
		s.Form = FormData
	default:
		return s, fmt.Errorf("unknown series form %q", expr[:open])
	}

	if tail := strings.TrimSpace(expr[closing+1:]); tail != "" {
		factor, ok := strings.CutPrefix(tail, "*")
		if !ok {
			return s, fmt.Errorf("unexpected trailing %q in %q", tail, expr)
		}
		scale, err := strconv.ParseFloat(strings.TrimSpace(factor), 64)
		if err != nil {
			return s, fmt.Errorf("bad scale factor in %q: %w", expr, err)
		}
		s.Scale = scale
	}

	args := strings.Split(expr[open+1:closing], ",")
	if len(args)%2 != 0 {
		return s, fmt.Errorf("odd argument count in %q", expr)
	}
	for i := 0; i < len(args); i += 2 {
		year, err := strconv.Atoi(strings.TrimSpace(args[i]))
		if err != nil {
			return s, fmt.Errorf("bad year in %q: %w", expr, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(args[i+1]), 64)
		if err != nil {
			return s, fmt.Errorf("bad value in %q: %w", expr, err)
		}
		s.Points = append(s.Points, Point{Year: year, Value: value})
	}
	return s, nil
}
