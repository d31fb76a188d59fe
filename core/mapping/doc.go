// Package mapping turns tabular energy-data rows into branch tree
// operations and applies them through a tree.Adapter. Rows fail and
// succeed independently; a Report carries the per-row audit trail, the
// ordered operations, and aggregate counts for one run.
package mapping
