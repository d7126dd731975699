// Package domain defines the core business entities for vetsite.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Practice: A veterinary practice listing
//   - Category: A treatment modality/specialty offered by practices
//   - Region: A state-level grouping entity
//   - Record: A raw field mapping from a data source, pre-normalization
//   - Finding: A single validation outcome with severity
//   - Route: One output page or artifact with a stable path
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
