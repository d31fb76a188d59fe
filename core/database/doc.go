// Package database handles statistics database connections and schema
// inspection.
//
// It provides a wrapper around GORM to configure MySQL connections based
// on the application's configuration. The database holds externally
// maintained energy statistics (e.g. ESTO tables); this package never
// writes to it.
//
// # Connect
//
// The Connect function establishes a connection with sane timeouts and
// pool settings and verifies it with a ping.
//
// # Schema Inspection
//
// GetTableColumns and VerifyColumns let callers check that a statistics
// table carries the expected columns before running queries against it,
// turning schema drift into a clear pre-flight error.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.VerifyColumns(db, "energy_usage", "region", "sector", "fuel", "year", "value")
package database
