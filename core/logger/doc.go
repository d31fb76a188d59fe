// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different
// environments (development vs production).
//
// # Run Correlation
//
// Every mapping or reconciliation run carries a run ID. The WithRunID
// helper attaches it to the log entry, ensuring that all logs related to
// a specific run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Run started")
//
//	l := logger.WithRunID(log, report.RunID)
//	l.Warn("Row failed", zap.Error(err))
package logger
