package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/logger"
)

const (
	// DefaultEndpoint is the public Nominatim search API.
	DefaultEndpoint = "https://nominatim.openstreetmap.org/search"

	// DefaultUserAgent identifies this tool per the Nominatim usage
	// policy, which requires a distinctive agent string.
	DefaultUserAgent = "vetsite-geocoder/1.0"

	// DefaultRequestsPerSecond matches the public Nominatim limit.
	DefaultRequestsPerSecond = 1

	// DefaultTimeout bounds one lookup.
	DefaultTimeout = 10 * time.Second
)

// Config holds the geocoder settings.
type Config struct {
	// Endpoint is the search URL. Defaults to the public Nominatim API.
	Endpoint string

	// CachePath is the JSON cache location. Defaults to
	// data/geocode_cache.json.
	CachePath string

	// UserAgent is sent with every request.
	UserAgent string

	// RequestsPerSecond throttles lookups.
	RequestsPerSecond int

	// Timeout bounds one HTTP request.
	Timeout time.Duration
}

// Client resolves addresses through a Nominatim compatible service.
type Client struct {
	client   *http.Client
	limiter  *rate.Limiter
	endpoint string
	agent    string
	cache    *fileCache
}

var _ driven.Geocoder = (*Client)(nil)

// NewClient builds a geocoding client and loads its cache.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join("data", "geocode_cache.json")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		endpoint: cfg.Endpoint,
		agent:    cfg.UserAgent,
		cache:    loadCache(cfg.CachePath),
	}
}

// Geocode resolves one address. Cache hits skip the network entirely;
// an address the service does not know reports domain.ErrNoMatch.
func (c *Client) Geocode(ctx context.Context, query string) (domain.Coordinate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinate{}, fmt.Errorf("empty address: %w", domain.ErrNoMatch)
	}

	key := strings.ToLower(query)
	if coord, ok := c.cache.get(key); ok {
		logger.Debug("Geocode cache hit for %q", query)
		return coord, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Coordinate{}, err
	}

	coord, err := c.lookup(ctx, query)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if err := c.cache.put(key, coord); err != nil {
		logger.Warn("Could not save geocode cache: %v", err)
	}
	return coord, nil
}

func (c *Client) lookup(ctx context.Context, query string) (domain.Coordinate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.agent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("reading geocode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("geocode service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return decodePlaces(body, query)
}

// place is one Nominatim search result. Coordinates arrive as strings.
type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func decodePlaces(body []byte, query string) (domain.Coordinate, error) {
	var places []place
	if err := json.Unmarshal(body, &places); err != nil {
		return domain.Coordinate{}, fmt.Errorf("decoding geocode response: %w", err)
	}
	if len(places) == 0 {
		return domain.Coordinate{}, fmt.Errorf("no results for %q: %w", query, domain.ErrNoMatch)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("malformed latitude %q: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("malformed longitude %q: %w", places[0].Lon, err)
	}
	return domain.Coordinate{Lat: lat, Lng: lng}, nil
}
