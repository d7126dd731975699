package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/greenpaws/vetsite/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
)

// Store is the SQLite-backed record catalog. It persists canonical
// practice, category and region records between imports and serves them
// back as a build source.
//
// Practices keep their first-insertion position across re-imports: an
// upsert on a known slug updates the row in place, so catalog order is
// stable. Categories and regions are reference data replaced wholesale.
type Store struct {
	db   *sql.DB
	path string
}

var (
	_ driven.CatalogStore = (*Store)(nil)
	_ driven.RecordSource = (*Store)(nil)
)

// NewStore opens the catalog database at dbPath, creating the file and
// its parent directory on first use. If dbPath is empty, defaults to
// data/catalog.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = filepath.Join("data", "catalog.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Catalog Store ====================

// UpsertPractices inserts or updates practice records under an import
// batch ID. Rows are keyed on the practice slug; an existing row keeps
// its catalog position. Returns the number of records written.
func (s *Store) UpsertPractices(ctx context.Context, batchID string, records []domain.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	written := 0
	for _, record := range records {
		slug := domain.PracticeFromRecord(record).Slug
		if slug == "" {
			return 0, fmt.Errorf("practice record without a name: %w", domain.ErrInvalidRecord)
		}

		fields, err := encodeFields(record)
		if err != nil {
			return 0, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO practices (slug, fields, import_batch, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				fields = excluded.fields,
				import_batch = excluded.import_batch,
				updated_at = excluded.updated_at
		`, slug, fields, batchID, now, now)
		if err != nil {
			return 0, fmt.Errorf("upserting practice %s: %w", slug, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return written, nil
}

// ReplaceCategories swaps the category reference set.
func (s *Store) ReplaceCategories(ctx context.Context, records []domain.Record) (int, error) {
	return s.replaceAll(ctx, "categories", records)
}

// ReplaceRegions swaps the region reference set.
func (s *Store) ReplaceRegions(ctx context.Context, records []domain.Record) (int, error) {
	return s.replaceAll(ctx, "regions", records)
}

// replaceAll clears a reference table and inserts the given records in
// order. The table name is one of the fixed catalog tables, never user
// input.
func (s *Store) replaceAll(ctx context.Context, table string, records []domain.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("clearing %s: %w", table, err)
	}

	for _, record := range records {
		fields, err := encodeFields(record)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO "+table+" (fields) VALUES (?)", fields); err != nil {
			return 0, fmt.Errorf("inserting into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(records), nil
}

// Records returns the full catalog contents in insertion order.
func (s *Store) Records(ctx context.Context) (*domain.RecordSet, error) {
	practices, err := s.selectRecords(ctx, "SELECT fields FROM practices ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading practices: %w", err)
	}

	categories, err := s.selectRecords(ctx, "SELECT fields FROM categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	regions, err := s.selectRecords(ctx, "SELECT fields FROM regions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading regions: %w", err)
	}

	return &domain.RecordSet{
		Practices:  practices,
		Categories: categories,
		Regions:    regions,
	}, nil
}

// PracticesWithoutCoordinates returns practice records missing a usable
// coordinate pair, in insertion order. Records with unparsable
// coordinate text count as missing so they get geocoded again.
func (s *Store) PracticesWithoutCoordinates(ctx context.Context) ([]domain.Record, error) {
	records, err := s.selectRecords(ctx, "SELECT fields FROM practices ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading practices: %w", err)
	}

	var missing []domain.Record
	for _, record := range records {
		if !domain.PracticeFromRecord(record).HasCoordinates() {
			missing = append(missing, record)
		}
	}
	return missing, nil
}

// SetCoordinates writes geocoded coordinates onto a practice.
func (s *Store) SetCoordinates(ctx context.Context, slug string, coord domain.Coordinate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var fields string
	row := tx.QueryRowContext(ctx, "SELECT fields FROM practices WHERE slug = ?", slug)
	if err := row.Scan(&fields); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return fmt.Errorf("scanning practice: %w", err)
	}

	record, err := decodeFields(fields)
	if err != nil {
		return err
	}
	record[domain.FieldLatitude] = domain.String(strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	record[domain.FieldLongitude] = domain.String(strconv.FormatFloat(coord.Lng, 'f', -1, 64))

	updated, err := encodeFields(record)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, "UPDATE practices SET fields = ?, updated_at = ? WHERE slug = ?",
		updated, time.Now().UTC(), slug)
	if err != nil {
		return fmt.Errorf("updating practice %s: %w", slug, err)
	}

	return tx.Commit()
}

// ==================== Record Source ====================

// Name returns the source name for logs and diagnostics.
func (s *Store) Name() string {
	return "catalog"
}

// Fetch loads every record collection from the catalog. A catalog with
// no rows at all reports ErrNotFound so a build fallback chain moves on
// instead of publishing an empty site from a database that was never
// imported into.
func (s *Store) Fetch(ctx context.Context) (*domain.RecordSet, error) {
	set, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	if len(set.Practices) == 0 && len(set.Categories) == 0 && len(set.Regions) == 0 {
		return nil, fmt.Errorf("catalog %s is empty: %w", s.path, domain.ErrNotFound)
	}
	return set, nil
}

// ==================== Helpers ====================

// selectRecords runs a single-column fields query and decodes each row.
func (s *Store) selectRecords(ctx context.Context, query string) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record //nolint:prealloc // size unknown from query
	for rows.Next() {
		var fields string
		if err := rows.Scan(&fields); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		record, err := decodeFields(fields)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// encodeFields serializes a canonical record as a JSON object of field
// name to scalar text. Multi-value fields are pipe-joined by Text, the
// same form canonical records already hold, so the mapping is lossless.
func encodeFields(record domain.Record) (string, error) {
	fields := make(map[string]string, len(record))
	for name, value := range record {
		fields[name] = value.Text()
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshalling record: %w", err)
	}
	return string(data), nil
}

// decodeFields restores a record from its stored JSON field map.
func decodeFields(data string) (domain.Record, error) {
	var fields map[string]string
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("unmarshalling record: %w", err)
	}
	record := make(domain.Record, len(fields))
	for name, value := range fields {
		record[name] = domain.String(value)
	}
	return record, nil
}
