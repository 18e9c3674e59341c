// Package database handles database connections.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (local runs and tests) connections from the application's configuration.
// The database only backs the external reference store; the POS remains the
// source of truth for consignments.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("reference store unavailable", zap.Error(err))
//	}
package database
