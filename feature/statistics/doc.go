// Package statistics loads energy statistics from the source database and
// shapes them into reconciliation datasets.
//
// Source tables are maintained externally and carry presentation
// artifacts the reconciliation must not see: ordering prefixes on
// category names ("01. Industry") and subtotal rows that duplicate their
// constituents. The store cleans names, drops subtotals, and aggregates
// the remainder by (region, sector, fuel, year).
//
// Datasets can be cached with a TTL; see CachedDataset.
package statistics
