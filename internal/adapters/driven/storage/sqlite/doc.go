// Package sqlite provides the SQLite-backed record catalog.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. A single database
// connection serves two ports:
//
//   - CatalogStore: canonical record persistence between imports and builds
//   - RecordSource: the "catalog" position in the build fallback chain
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. Records are stored as JSON field maps alongside the columns the
// store keys on (practice slug, import batch).
//
// # Data Location
//
// By default, the database is stored at data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
