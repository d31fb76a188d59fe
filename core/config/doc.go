// Package config provides configuration management for leap-bridge.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application
// settings, divided into subsections:
//   - Database: MySQL connection details for the statistics database
//   - Storage: S3/MinIO credentials and bucket settings for exports
//   - Log: Logging level and format
//   - Model: Mapping run defaults (scenario, region, fill policy)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Model.Scenario)
package config
