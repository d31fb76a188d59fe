package statistics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"leap-bridge/core/database"
	"leap-bridge/core/reconcile"

	"gorm.io/gorm"
)

// Filter narrows a statistics query. Zero-value fields match everything.
type Filter struct {
	// Regions restricts the query to the named regions.
	Regions []string

	// Years restricts the query to the named years.
	Years []int

	// Sectors restricts the query to the named sectors, matched after
	// name cleaning.
	Sectors []string

	// Fuels restricts the query to the named fuels, matched after name
	// cleaning.
	Fuels []string
}

// cacheKey returns a stable identifier for this filter.
func (f Filter) cacheKey() string {
	var b strings.Builder
	b.WriteString(strings.Join(f.Regions, ","))
	b.WriteString("|")
	for i, y := range f.Years {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.Itoa(y))
	}
	b.WriteString("|")
	b.WriteString(strings.Join(f.Sectors, ","))
	b.WriteString("|")
	b.WriteString(strings.Join(f.Fuels, ","))
	return b.String()
}

// Store queries the energy statistics database. It never writes.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over an established database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// VerifySchema checks that the statistics table carries the columns the
// store's queries depend on.
func (s *Store) VerifySchema() error {
	return database.VerifyColumns(s.db, EnergyUsage{}.TableName(), RequiredColumns...)
}

// Dataset loads statistics rows matching the filter and aggregates them
// into a reconciliation dataset. Category names are cleaned of ordering
// prefixes and subtotal rows are excluded, so the dataset holds each
// energy quantity exactly once.
func (s *Store) Dataset(ctx context.Context, filter Filter) (reconcile.Dataset, error) {
	var usage []EnergyUsage

	query := s.db.WithContext(ctx).Model(&EnergyUsage{})
	if len(filter.Regions) > 0 {
		query = query.Where("region IN ?", filter.Regions)
	}
	if len(filter.Years) > 0 {
		query = query.Where("year IN ?", filter.Years)
	}
	if err := query.Find(&usage).Error; err != nil {
		return nil, fmt.Errorf("query energy usage: %w", err)
	}

	sectors := cleanedSet(filter.Sectors)
	fuels := cleanedSet(filter.Fuels)

	rows := make([]reconcile.Row, 0, len(usage))
	for _, u := range usage {
		if IsSubtotal(u.Sector) || IsSubtotal(u.Fuel) {
			continue
		}
		sector := CleanName(u.Sector)
		fuel := CleanName(u.Fuel)
		if sectors != nil {
			if _, ok := sectors[sector]; !ok {
				continue
			}
		}
		if fuels != nil {
			if _, ok := fuels[fuel]; !ok {
				continue
			}
		}
		rows = append(rows, reconcile.Row{
			Key: reconcile.Key{
				Region: u.Region,
				Sector: sector,
				Fuel:   fuel,
				Year:   u.Year,
			},
			Value: u.Value,
		})
	}

	return reconcile.Aggregate(rows), nil
}

func cleanedSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[CleanName(name)] = struct{}{}
	}
	return set
}
