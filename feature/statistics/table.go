package statistics

import (
	"fmt"

	"leap-bridge/core/reconcile"
	"leap-bridge/core/table"
	"leap-bridge/core/utils"
)

// Statistics CSV column names, for environments without database access.
const (
	ColRegion = "Region"
	ColSector = "Sector"
	ColFuel   = "Fuel"
	ColYear   = "Year"
	ColValue  = "Value"
)

// DatasetFromTable builds a reconciliation dataset from a long-format
// statistics CSV (one row per region/sector/fuel/year). The same cleaning
// applies as for database rows: ordering prefixes are stripped and
// subtotal rows are dropped.
func DatasetFromTable(tbl *table.Table) (reconcile.Dataset, error) {
	if err := tbl.Require(ColRegion, ColSector, ColFuel, ColYear, ColValue); err != nil {
		return nil, err
	}

	rows := make([]reconcile.Row, 0, len(tbl.Rows))
	for i, raw := range tbl.Rows {
		sector := tbl.Get(raw, ColSector)
		fuel := tbl.Get(raw, ColFuel)
		if IsSubtotal(sector) || IsSubtotal(fuel) {
			continue
		}

		year, ok := utils.ParseYear(tbl.Get(raw, ColYear))
		if !ok {
			return nil, fmt.Errorf("row %d: %q is not a year", i, tbl.Get(raw, ColYear))
		}
		value, ok := utils.ParseFloat(tbl.Get(raw, ColValue))
		if !ok {
			// Blank value cells carry no data point.
			continue
		}

		rows = append(rows, reconcile.Row{
			Key: reconcile.Key{
				Region: tbl.Get(raw, ColRegion),
				Sector: CleanName(sector),
				Fuel:   CleanName(fuel),
				Year:   year,
			},
			Value: value,
		})
	}

	return reconcile.Aggregate(rows), nil
}
