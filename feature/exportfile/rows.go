package exportfile

import (
	"leap-bridge/core/mapping"
	"leap-bridge/core/table"
	"leap-bridge/core/utils"
)

// Filter selects and defaults export rows. A non-empty field both filters
// rows that name a different value and fills rows whose column is absent
// or empty.
type Filter struct {
	// Scenario is the scenario to select, and the default for rows
	// without one.
	Scenario string

	// Region is the region to select, and the default for rows
	// without one.
	Region string
}

// MappingRows converts a tabular export into mapping rows. The table must
// carry Branch and Variable columns; everything else is optional. Year
// cells that are empty or non-numeric carry no value, so downstream fill
// policies can tell absent data from zero.
func MappingRows(tbl *table.Table, filter Filter) ([]mapping.Row, error) {
	if err := tbl.Require(ColBranch, ColVariable); err != nil {
		return nil, err
	}

	yearCols := tbl.YearColumns()
	years := make([]int, len(yearCols))
	for i, yc := range yearCols {
		years[i] = yc.Year
	}

	rows := make([]mapping.Row, 0, len(tbl.Rows))
	for _, raw := range tbl.Rows {
		scenario := tbl.Get(raw, ColScenario)
		if scenario == "" {
			scenario = filter.Scenario
		} else if filter.Scenario != "" && scenario != filter.Scenario {
			continue
		}

		region := tbl.Get(raw, ColRegion)
		if region == "" {
			region = filter.Region
		} else if filter.Region != "" && region != filter.Region {
			continue
		}

		values := make(map[int]float64, len(yearCols))
		for _, yc := range yearCols {
			if v, ok := utils.ParseFloat(raw[yc.Index]); ok {
				values[yc.Year] = v
			}
		}

		rows = append(rows, mapping.Row{
			Path:     tbl.Get(raw, ColBranch),
			Variable: tbl.Get(raw, ColVariable),
			Scenario: scenario,
			Region:   region,
			Scale:    tbl.Get(raw, ColScale),
			Units:    tbl.Get(raw, ColUnits),
			Per:      tbl.Get(raw, ColPer),
			Values:   values,
			Years:    years,
		})
	}
	return rows, nil
}
