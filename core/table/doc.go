// Package table provides a thin tabular model over CSV exports: a header
// row, string cells, and year-column detection for wide-format energy
// tables whose data years are spread across columns.
package table
