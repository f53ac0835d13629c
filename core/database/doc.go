// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections (sqlite
// for tests and local runs) based on the application's configuration. All
// catalog SQL is raw DDL/DML executed through the connection; GORM supplies
// connection management, transactions, and the dialect switch.
//
// # Schema Inspection
//
// The inspector answers structural questions about the live schema: column
// listings, table existence, and unique-index membership. The catalog's
// schema-drift detection is built on these primitives. Lookups always hit
// the live catalog metadata; nothing is cached.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.ColumnNames(db, "currencies")
package database
