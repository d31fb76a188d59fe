// Package reconcile compares two energy datasets keyed by
// (region, sector, fuel, year): a source statistics dataset and a dataset
// derived from the model. It aggregates duplicate keys by summing,
// classifies every key in the union of both sets, and reports per-key
// records plus aggregate counts.
//
// Reconciliation is read-only. Discrepancies are reported, never
// corrected: the source statistics and the model are both authoritative
// in different ways, and which one is wrong is an analyst's call.
package reconcile
