package reconcile

import (
	"math"
	"sort"
)

// Reconcile compares the model dataset against the source dataset. It
// computes the union of both key sets and returns one record per key,
// sorted by (region, sector, fuel, year) for deterministic output.
//
// Deltas are always model minus source: a positive delta means the model
// carries more energy than the source statistics.
func Reconcile(source, model Dataset, tol Tolerance) ([]Record, Summary, error) {
	if err := tol.Validate(); err != nil {
		return nil, Summary{}, err
	}

	union := buildUnion(source, model)

	records := make([]Record, 0, len(union))
	var summary Summary
	summary.TotalKeys = len(union)

	for key := range union {
		record := buildRecord(key, source, model, tol)
		records = append(records, record)

		switch record.Status {
		case StatusMatched:
			summary.Matched++
		case StatusOutOfTolerance:
			summary.OutOfTolerance++
		case StatusMissingFromModel:
			summary.MissingFromModel++
		case StatusMissingFromSource:
			summary.MissingFromSource++
		}
		if record.Status == StatusMatched || record.Status == StatusOutOfTolerance {
			if d := math.Abs(record.Delta); d > summary.MaxAbsDelta {
				summary.MaxAbsDelta = d
			}
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].Key, records[j].Key
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.Sector != b.Sector {
			return a.Sector < b.Sector
		}
		if a.Fuel != b.Fuel {
			return a.Fuel < b.Fuel
		}
		return a.Year < b.Year
	})

	return records, summary, nil
}

// buildUnion creates the union of both datasets' key sets.
func buildUnion(source, model Dataset) map[Key]struct{} {
	union := make(map[Key]struct{}, len(source)+len(model))
	for key := range source {
		union[key] = struct{}{}
	}
	for key := range model {
		union[key] = struct{}{}
	}
	return union
}

// buildRecord creates the Record for a single key.
func buildRecord(key Key, source, model Dataset, tol Tolerance) Record {
	sourceValue, sourcePresent := source[key]
	modelValue, modelPresent := model[key]

	record := Record{
		Key:         key,
		SourceValue: sourceValue,
		ModelValue:  modelValue,
	}

	switch {
	case !modelPresent:
		record.Status = StatusMissingFromModel
	case !sourcePresent:
		record.Status = StatusMissingFromSource
	default:
		record.Delta = modelValue - sourceValue
		if tol.within(sourceValue, modelValue) {
			record.Status = StatusMatched
		} else {
			record.Status = StatusOutOfTolerance
			if modelValue != 0 {
				record.ScaleFactor = sourceValue / modelValue
			}
		}
	}
	return record
}
