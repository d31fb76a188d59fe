// Package branch resolves slash-delimited branch path strings into ordered
// segment sequences.
//
// Branch paths identify nodes in the external modeling application's
// hierarchical tree (e.g., "Demand/Transport/Road/Diesel"). Resolution is a
// pure function: it trims whitespace, drops empty segments, and rejects
// strings that carry no segments at all.
//
// The package guarantees that Resolve followed by Join reproduces the
// original path with trimmed segments, which keeps the export/import
// round-trip stable.
package branch
