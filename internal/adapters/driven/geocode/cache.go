package geocode

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/logger"
)

// cacheEntry is one stored result. The key set matches what earlier
// tooling wrote, so existing cache files stay usable.
type cacheEntry struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// fileCache remembers resolved addresses in a JSON file. Every put is
// written through immediately.
type fileCache struct {
	path    string
	entries map[string]cacheEntry
}

func loadCache(path string) *fileCache {
	c := &fileCache{path: path, entries: map[string]cacheEntry{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c
	}
	if err != nil {
		logger.Warn("Could not read geocode cache %s: %v", path, err)
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		logger.Warn("Ignoring malformed geocode cache %s: %v", path, err)
		c.entries = map[string]cacheEntry{}
		return c
	}

	logger.Debug("Loaded %d cached geocoding results from %s", len(c.entries), path)
	return c
}

func (c *fileCache) get(key string) (domain.Coordinate, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{Lat: entry.Latitude, Lng: entry.Longitude}, true
}

func (c *fileCache) put(key string, coord domain.Coordinate) error {
	c.entries[key] = cacheEntry{Latitude: coord.Lat, Longitude: coord.Lng}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
