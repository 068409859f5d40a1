// Package database handles catalog database connections and schema inspection.
//
// It provides a wrapper around GORM that configures either an embedded
// sqlite catalog file (the default for local curation) or a shared MySQL
// server, based on the application's configuration.
//
// # Connect
//
// The Connect function establishes the connection. It is agnostic to the
// catalog schema itself; migration and version checking are the catalog
// store's responsibility.
//
// # Schema Inspection
//
// The package includes tools to inspect the live database schema, used by
// the integrity checks to compare actual tables against the expected
// catalog models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "releases")
package database
