// Package exportfile reads tabular export files, from object storage or
// the local filesystem, and converts them into mapping rows. It also
// uploads run reports back to storage.
//
// Exports are wide-format CSV: fixed metadata columns (Branch, Variable,
// Scenario, Region, Scale, Units, Per) plus one column per data year.
package exportfile
