// Package geocode implements the Geocoder port against an
// OpenStreetMap Nominatim compatible endpoint.
//
// Lookups are rate limited to the configured requests per second
// (Nominatim's usage policy allows one) and successful results are
// cached in a JSON file keyed by the lowercased address, so repeated
// runs only pay for addresses the cache has never seen. Cache write
// failures are logged, not fatal.
package geocode
