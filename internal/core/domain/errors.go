package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoSources indicates no data sources are configured.
	ErrNoSources = errors.New("no data sources configured")

	// ErrSourcesExhausted indicates every configured data source failed.
	ErrSourcesExhausted = errors.New("all data sources failed")

	// ErrInvalidRecord indicates a record was rejected by validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrNoMatch indicates the geocoder found nothing for an address.
	ErrNoMatch = errors.New("no geocoding match")

	// ErrUnsupportedType indicates an unknown source type in configuration.
	ErrUnsupportedType = errors.New("unsupported type")
)
