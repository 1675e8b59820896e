// Package database handles connections to the catalog store.
//
// It wraps GORM and selects the dialect from configuration: MySQL for the
// hosted relational store, SQLite for local runs and the test suite.
//
// # Connect
//
// Connect opens the database, applies pool settings and verifies the
// connection with a bounded ping. Migrate runs AutoMigrate for the given models.
//
// # Schema Inspection
//
// TableColumns and MissingColumns read back the live schema so the migrate
// command can confirm that cursor columns exist after a migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "sets", []string{"price_sync_progress"})
package database
