package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// SchemaError reports columns missing from a database table.
type SchemaError struct {
	// Table is the inspected table name.
	Table string

	// Missing lists the absent columns.
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %q is missing columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// GetTableColumns retrieves the column definitions for a given table.
// Field and type names are normalized to lowercase.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// VerifyColumns checks that a table carries every required column.
// Column matching is case-insensitive. Statistics queries run against
// externally maintained tables, so a pre-flight check gives a clearer
// failure than a mid-query SQL error.
func VerifyColumns(db *gorm.DB, tableName string, required ...string) error {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return err
	}

	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col.Field] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: tableName, Missing: missing}
	}
	return nil
}
