// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The aggregation engine (Directory) is built here once per run from
// the loaded entity lists; every index it exposes is read-only after
// construction.
package services
