// Package database handles database connections and schema inspection.
//
// It wraps GORM and configures either a MySQL connection (production) or a
// SQLite database (local runs and tests) from the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list of a table so the integrity
// check can compare it with the vessel model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "vessels")
package database
