// Package table loads records from the hosted table API backing the
// directory. It is the "table" position in the build fallback chain.
package table

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/logger"
)

// Default configuration values.
const (
	DefaultEndpoint          = "https://api.airtable.com/v0"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 5
)

// Table names in the remote base.
const (
	practicesTable  = "Veterinarians"
	categoriesTable = "Specialties"
	regionsTable    = "States"
)

// activeFilter selects the practice rows the site lists. Bases without
// a Status field reject the formula; the fetch then loads every row.
const activeFilter = "{Status} = 'Active'"

// pageSize is the API maximum per request.
const pageSize = 100

// errBadFilter marks a filter formula the remote base rejected.
var errBadFilter = errors.New("filter formula rejected")

// Config holds remote table API settings.
type Config struct {
	// BaseID identifies the remote base.
	BaseID string

	// APIToken authenticates requests.
	APIToken string

	// Endpoint overrides the API root, mainly for tests. Empty uses
	// the public API.
	Endpoint string

	// RequestsPerSecond throttles API calls. Zero uses the default.
	RequestsPerSecond int

	// Timeout is the per-request timeout. Zero uses the default.
	Timeout time.Duration
}

// Source fetches the three record collections from the remote table
// API, following offset pagination. Missing credentials are reported at
// fetch time so a fallback chain can move on.
type Source struct {
	client   *http.Client
	limiter  *rate.Limiter
	endpoint string
	baseID   string
	token    string
}

var _ driven.RecordSource = (*Source)(nil)

// NewSource creates a remote table source.
func NewSource(cfg Config) *Source {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken})
	client := oauth2.NewClient(context.Background(), ts)
	client.Timeout = cfg.Timeout

	return &Source{
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		endpoint: cfg.Endpoint,
		baseID:   cfg.BaseID,
		token:    cfg.APIToken,
	}
}

// Name returns the source name for logs and diagnostics.
func (s *Source) Name() string {
	return "table"
}

// Fetch loads every record collection from the remote base. The fetch
// is all-or-nothing: any request failure fails the whole source.
func (s *Source) Fetch(ctx context.Context) (*domain.RecordSet, error) {
	if s.token == "" || s.baseID == "" {
		return nil, errors.New("table source not configured: base_id and api_token are required")
	}

	practices, err := s.fetchPractices(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.listRecords(ctx, categoriesTable, "")
	if err != nil {
		return nil, err
	}

	regions, err := s.listRecords(ctx, regionsTable, "")
	if err != nil {
		return nil, err
	}

	return &domain.RecordSet{
		Practices:  practices,
		Categories: keepNamed(categories, domain.FieldCategoryName),
		Regions:    keepCoded(regions),
	}, nil
}

// fetchPractices loads listable practice rows. The active-status filter
// is tried first; a base without the field serves everything.
func (s *Source) fetchPractices(ctx context.Context) ([]domain.Record, error) {
	records, err := s.listRecords(ctx, practicesTable, activeFilter)
	if errors.Is(err, errBadFilter) {
		logger.Debug("Status filter rejected by base, loading all practice rows")
		records, err = s.listRecords(ctx, practicesTable, "")
	}
	if err != nil {
		return nil, err
	}
	return keepNamed(records, domain.FieldName), nil
}

// listRecords pages through one table until the API stops returning an
// offset.
func (s *Source) listRecords(ctx context.Context, table, filter string) ([]domain.Record, error) {
	var records []domain.Record
	offset := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		page, err := s.listPage(ctx, table, filter, offset)
		if err != nil {
			return nil, err
		}

		for _, row := range page.Records {
			records = append(records, toRecord(row.Fields))
		}

		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

// tablePage is one page of the list-records response.
type tablePage struct {
	Records []tableRow `json:"records"`
	Offset  string     `json:"offset"`
}

// tableRow is one record as the API delivers it.
type tableRow struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

func (s *Source) listPage(ctx context.Context, table, filter, offset string) (*tablePage, error) {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(pageSize))
	if filter != "" {
		params.Set("filterByFormula", filter)
	}
	if offset != "" {
		params.Set("offset", offset)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s",
		s.endpoint, url.PathEscape(s.baseID), url.PathEscape(table), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity && filter != "" {
		return nil, fmt.Errorf("list %s: %w", table, errBadFilter)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list %s: status %d: %s", table, resp.StatusCode, string(body))
	}

	return decodePage(body)
}

func decodePage(body []byte) (*tablePage, error) {
	var page tablePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &page, nil
}

// toRecord converts an API row to the ingestion form, resolving legacy
// field spellings onto canonical names.
func toRecord(fields map[string]any) domain.Record {
	record := make(domain.Record, len(fields))
	for name, value := range fields {
		record[domain.CanonicalFieldName(name)] = fieldValue(value)
	}
	return record
}

// fieldValue converts a remote cell to a field value. The API delivers
// multi-selects as arrays, checkboxes as booleans and numeric columns
// as floats; everything becomes text or a native list.
func fieldValue(v any) domain.FieldValue {
	switch value := v.(type) {
	case string:
		return domain.String(value)
	case bool:
		if value {
			return domain.String("true")
		}
		return domain.String("false")
	case float64:
		return domain.String(strconv.FormatFloat(value, 'f', -1, 64))
	case []any:
		items := make([]string, 0, len(value))
		for _, item := range value {
			items = append(items, fieldValue(item).Text())
		}
		return domain.List(items...)
	default:
		return domain.String(fmt.Sprintf("%v", value))
	}
}

// keepNamed filters out rows missing the identifying field.
func keepNamed(records []domain.Record, field string) []domain.Record {
	var kept []domain.Record
	for _, record := range records {
		if record.Has(field) {
			kept = append(kept, record)
		}
	}
	return kept
}

// keepCoded filters region rows to those carrying both a name and a
// code; the directory keys regions on the code.
func keepCoded(records []domain.Record) []domain.Record {
	var kept []domain.Record
	for _, record := range records {
		if record.Has(domain.FieldRegionName) && record.Has(domain.FieldRegionCode) {
			kept = append(kept, record)
		}
	}
	return kept
}
