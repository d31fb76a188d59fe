package expression

import (
	"sort"
	"strconv"
	"strings"
)

// Eval computes the value an expression takes at a given year.
//
// Bare constants evaluate to themselves for every year. Interp series
// interpolate linearly between points; Data series hold each value until
// the next listed year. Outside the listed span both forms clamp to the
// nearest endpoint. Scale suffixes are applied.
func Eval(expr string, year int) (float64, error) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(expr), 64); err == nil {
		return v, nil
	}

	series, err := Parse(expr)
	if err != nil {
		return 0, err
	}
	return series.At(year), nil
}

// At computes the series value at a year, applying the scale factor.
func (s Series) At(year int) float64 {
	if len(s.Points) == 0 {
		return 0
	}

	points := make([]Point, len(s.Points))
	copy(points, s.Points)
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	if year <= points[0].Year {
		return points[0].Value * s.Scale
	}
	last := points[len(points)-1]
	if year >= last.Year {
		return last.Value * s.Scale
	}

	for i := 1; i < len(points); i++ {
		if year >= points[i].Year {
			continue
		}
		prev, next := points[i-1], points[i]
		if s.Form == FormData {
			return prev.Value * s.Scale
		}
		span := float64(next.Year - prev.Year)
		frac := float64(year-prev.Year) / span
		return (prev.Value + (next.Value-prev.Value)*frac) * s.Scale
	}
	return last.Value * s.Scale
}
