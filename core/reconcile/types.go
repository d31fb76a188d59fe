package reconcile

import (
	"fmt"
	"math"
)

// Key identifies one reconciliation cell: a (region, sector, fuel, year)
// coordinate shared by both datasets.
type Key struct {
	// Region is the geographic region ("Viet Nam").
	Region string `json:"region"`

	// Sector is the demand or supply sector ("Transport").
	Sector string `json:"sector"`

	// Fuel is the energy carrier ("Diesel").
	Fuel string `json:"fuel"`

	// Year is the data year.
	Year int `json:"year"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s/%d", k.Region, k.Sector, k.Fuel, k.Year)
}

// Row is one input record before aggregation. Multiple rows may carry the
// same key (e.g. sub-sector breakdowns); Aggregate sums them.
type Row struct {
	Key

	// Value is the energy quantity in the dataset's common unit.
	Value float64 `json:"value"`
}

// Dataset maps each key to its aggregated value. Build one with Aggregate.
type Dataset map[Key]float64

// Aggregate folds rows into a dataset, summing values that share a key.
func Aggregate(rows []Row) Dataset {
	ds := make(Dataset, len(rows))
	for _, row := range rows {
		ds[row.Key] += row.Value
	}
	return ds
}

// Mode selects which tolerance thresholds apply.
type Mode string

const (
	// ModeAbsolute compares |delta| against the absolute threshold.
	ModeAbsolute Mode = "absolute"
	// ModeRelative compares |delta| against the relative threshold times
	// the source magnitude.
	ModeRelative Mode = "relative"
	// ModeBoth requires both thresholds to hold.
	ModeBoth Mode = "both"
)

// Tolerance configures when a value difference counts as a match.
type Tolerance struct {
	// Mode selects which thresholds apply. Empty defaults to ModeAbsolute.
	Mode Mode `json:"mode"`

	// Absolute is the maximum |model - source| for a match, in the
	// dataset's unit. Used by ModeAbsolute and ModeBoth.
	Absolute float64 `json:"absolute"`

	// Relative is the maximum |model - source| / |source| for a match.
	// Used by ModeRelative and ModeBoth. A zero source value only
	// matches a zero model value under relative comparison.
	Relative float64 `json:"relative"`
}

// ToleranceConfigError reports an invalid tolerance configuration.
type ToleranceConfigError struct {
	// Reason describes the invalid field.
	Reason string
}

func (e *ToleranceConfigError) Error() string {
	return "invalid tolerance: " + e.Reason
}

// Validate checks the tolerance configuration: the mode must be one of the
// enumerated values and thresholds must be non-negative finite numbers.
func (t Tolerance) Validate() error {
	switch t.Mode {
	case "", ModeAbsolute, ModeRelative, ModeBoth:
	default:
		return &ToleranceConfigError{Reason: fmt.Sprintf("unknown mode %q", t.Mode)}
	}
	if t.Absolute < 0 || math.IsNaN(t.Absolute) || math.IsInf(t.Absolute, 0) {
		return &ToleranceConfigError{Reason: "absolute threshold must be a non-negative finite number"}
	}
	if t.Relative < 0 || math.IsNaN(t.Relative) || math.IsInf(t.Relative, 0) {
		return &ToleranceConfigError{Reason: "relative threshold must be a non-negative finite number"}
	}
	return nil
}

// within reports whether the model value matches the source value under
// this tolerance.
func (t Tolerance) within(source, model float64) bool {
	delta := math.Abs(model - source)
	absOK := delta <= t.Absolute
	relOK := delta <= t.Relative*math.Abs(source)

	switch t.Mode {
	case ModeRelative:
		return relOK
	case ModeBoth:
		return absOK && relOK
	default:
		return absOK
	}
}

// Status classifies one reconciliation record.
type Status string

const (
	// StatusMatched means both datasets carry the key and the values
	// agree within tolerance.
	StatusMatched Status = "matched"
	// StatusOutOfTolerance means both datasets carry the key but the
	// values disagree beyond tolerance.
	StatusOutOfTolerance Status = "out_of_tolerance"
	// StatusMissingFromModel means only the source dataset carries the key.
	StatusMissingFromModel Status = "missing_from_model"
	// StatusMissingFromSource means only the model dataset carries the key.
	StatusMissingFromSource Status = "missing_from_source"
)

// Record is the reconciliation output for a single key.
type Record struct {
	Key

	// Status classifies the comparison.
	Status Status `json:"status"`

	// SourceValue is the aggregated source value; zero when missing.
	SourceValue float64 `json:"source_value"`

	// ModelValue is the aggregated model value; zero when missing.
	ModelValue float64 `json:"model_value"`

	// Delta is ModelValue - SourceValue. Only meaningful when both
	// datasets carry the key.
	Delta float64 `json:"delta"`

	// ScaleFactor is the multiplier (source/model) that would bring the
	// model value onto the source value. Set only for out-of-tolerance
	// records with a nonzero model value; values are never adjusted here,
	// callers apply the factor themselves.
	ScaleFactor float64 `json:"scale_factor,omitempty"`
}

// Summary provides aggregate counts for a reconciliation.
type Summary struct {
	// TotalKeys is the size of the union of both key sets.
	TotalKeys int `json:"total_keys"`

	// Matched counts keys whose values agree within tolerance.
	Matched int `json:"matched"`

	// OutOfTolerance counts keys whose values disagree beyond tolerance.
	OutOfTolerance int `json:"out_of_tolerance"`

	// MissingFromModel counts keys present only in the source dataset.
	MissingFromModel int `json:"missing_from_model"`

	// MissingFromSource counts keys present only in the model dataset.
	MissingFromSource int `json:"missing_from_source"`

	// MaxAbsDelta is the largest |delta| over keys both datasets carry.
	MaxAbsDelta float64 `json:"max_abs_delta"`
}

// Clean reports whether every key matched.
func (s Summary) Clean() bool {
	return s.OutOfTolerance == 0 && s.MissingFromModel == 0 && s.MissingFromSource == 0
}
