// Package config provides configuration management for the vessel manager.
//
// It uses Viper for environment variables and godotenv for an optional .env file.
// Defaults live in `default` struct tags next to each `mapstructure` key.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and the bucket holding candidate drops
//   - Log: logging level and format
//   - Enhance: cache TTL, batch workers, candidate prefix and enabled sources
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
