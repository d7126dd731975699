// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RecordSource: Fetches raw directory records from a data source
//   - PageRenderer: Turns page contexts into rendered documents
//   - SiteWriter: Stages and promotes the generated output tree
//
// # Optional Interfaces
//
// These are wired only for the commands that need them:
//
//   - CatalogStore: Local record catalog (SQLite). Required by the
//     import, export, and geocode paths; the build path can run
//     entirely from CSV or the remote table without it.
//   - Geocoder: Forward geocoding for practices without coordinates.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
