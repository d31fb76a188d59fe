package expression

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrInvalidVariable indicates an empty variable name.
	ErrInvalidVariable = errors.New("variable name is empty")

	// ErrNoData indicates that no data points remain after applying the
	// fill policy, so no expression can be built.
	ErrNoData = errors.New("no data points for expression")
)

// Form selects the series function used for multi-year expressions.
type Form string

const (
	// FormInterp emits Interp(year, value, ...) series, interpolating
	// between the listed points.
	FormInterp Form = "Interp"
	// FormData emits Data(year, value, ...) series, holding each value
	// until the next listed year.
	FormData Form = "Data"
)

// FillPolicy decides how years without values are treated when building a
// multi-year series.
type FillPolicy string

const (
	// FillSkip omits years that carry no value.
	FillSkip FillPolicy = "skip"
	// FillZero inserts 0 for years that carry no value.
	FillZero FillPolicy = "zero"
	// FillCarryForward repeats the last known value for years that carry
	// no value. Years before the first known value are omitted.
	FillCarryForward FillPolicy = "carry_forward"
)

// Valid reports whether the policy is one of the enumerated values.
func (p FillPolicy) Valid() bool {
	switch p {
	case FillSkip, FillZero, FillCarryForward:
		return true
	default:
		return false
	}
}

// Point is a (year, value) pair in a series expression.
type Point struct {
	Year  int
	Value float64
}

// Build synthesizes the textual expression the external tree node should
// hold for the given variable.
//
// A single surviving point yields a bare constant ("50"); multiple points
// yield a series in the requested form ("Interp(2020, 50, 2021, 55)") with
// years ascending. The years slice is the full year span of the input
// table; years absent from values are handled per the fill policy.
//
// A numeric scale folds into the expression as a multiplicative suffix.
// Named scales (e.g. "Thousands", "Percent") are left for the external
// application to resolve; the application is known to resolve them
// incorrectly for percentage/share variables, so callers must surface that
// instead of relying on the expression (see mapping.Engine warnings).
func Build(variable, scale string, values map[int]float64, years []int, policy FillPolicy, form Form) (string, error) {
	if strings.TrimSpace(variable) == "" {
		return "", ErrInvalidVariable
	}
	if policy == "" {
		policy = FillSkip
	}
	if !policy.Valid() {
		return "", fmt.Errorf("unknown fill policy %q", policy)
	}
	if form == "" {
		form = FormInterp
	}

	points := assemble(values, years, policy)
	if len(points) == 0 {
		return "", ErrNoData
	}

	var expr string
	if len(points) == 1 {
		expr = formatValue(points[0].Value)
	} else {
		args := make([]string, 0, len(points)*2)
		for _, p := range points {
			args = append(args, strconv.Itoa(p.Year), formatValue(p.Value))
		}
		expr = string(form) + "(" + strings.Join(args, ", ") + ")"
	}

	if factor, ok := NumericScale(scale); ok && factor != 1 {
		expr += "*" + formatValue(factor)
	}
	return expr, nil
}

// NumericScale parses a scale string as a plain multiplier. Named scales
// ("Thousands", "Percent") return ok=false and stay with the caller.
func NumericScale(scale string) (float64, bool) {
	scale = strings.TrimSpace(scale)
	if scale == "" {
		return 0, false
	}
	factor, err := strconv.ParseFloat(scale, 64)
	if err != nil {
		return 0, false
	}
	return factor, true
}

// assemble orders the year span and applies the fill policy.
func assemble(values map[int]float64, years []int, policy FillPolicy) []Point {
	span := make([]int, 0, len(years)+len(values))
	seen := make(map[int]struct{}, len(years)+len(values))
	for _, y := range years {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			span = append(span, y)
		}
	}
	// Values for years outside the declared span still count.
	for y := range values {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			span = append(span, y)
		}
	}
	sort.Ints(span)

	points := make([]Point, 0, len(span))
	var last float64
	known := false
	for _, y := range span {
		v, present := values[y]
		switch {
		case present:
			last, known = v, true
			points = append(points, Point{Year: y, Value: v})
		case policy == FillZero:
			points = append(points, Point{Year: y, Value: 0})
		case policy == FillCarryForward && known:
			points = append(points, Point{Year: y, Value: last})
		}
	}
	return points
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
