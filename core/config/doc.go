// Package config provides configuration management for the Vend sync service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, channel name
//   - Vend: tenant site id, personal token, rate limit, fan-out concurrency
//   - Database: external reference store connection
//   - Storage: S3/MinIO archive bucket
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Vend.SiteID)
package config
