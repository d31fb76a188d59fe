package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"leap-bridge/core/utils"
)

// Table is an in-memory tabular dataset: a header row plus data rows.
// Cells are kept as raw strings; callers convert with core/utils.
type Table struct {
	// Columns holds the header names in file order, whitespace-trimmed.
	Columns []string

	// Rows holds the data rows. Every row has len(Columns) cells.
	Rows [][]string

	index map[string]int
}

// MissingColumnError lists required columns absent from a table.
type MissingColumnError struct {
	// Columns are the missing column names.
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// YearColumn is a header column whose name is a four-digit year.
type YearColumn struct {
	// Name is the original header cell.
	Name string

	// Year is the parsed year.
	Year int

	// Index is the column position in the table.
	Index int
}

// ReadCSV parses a CSV stream into a Table. The first record is the
// header; short records are padded so every row has a cell per column.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no header row")
	}

	columns := make([]string, len(records[0]))
	index := make(map[string]int, len(columns))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		columns[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(columns))
		copy(row, record)
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows, index: index}, nil
}

// Index returns the position of a column, or -1 when absent.
func (t *Table) Index(col string) int {
	if i, ok := t.index[col]; ok {
		return i
	}
	return -1
}

// Require verifies that every named column is present.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, col := range cols {
		if t.Index(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Columns: missing}
	}
	return nil
}

// Get returns the trimmed cell of a row under the named column, or the
// empty string when the column is absent.
func (t *Table) Get(row []string, col string) string {
	i := t.Index(col)
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// YearColumns returns every header column that parses as a four-digit
// year, in ascending year order.
func (t *Table) YearColumns() []YearColumn {
	var years []YearColumn
	for i, name := range t.Columns {
		if year, ok := utils.ParseYear(name); ok {
			years = append(years, YearColumn{Name: name, Year: year, Index: i})
		}
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
	return years
}
