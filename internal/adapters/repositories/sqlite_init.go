package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavour a repository speaks.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// rebind rewrites ? placeholders to $n for Postgres.
func (d Dialect) rebind(q string) string {
	if d != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initialize the database schema.
func InitSchema(db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ratingID := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if d == Postgres {
		ratingID = "BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY"
	}

	createItemsQuery := `
	CREATE TABLE IF NOT EXISTS items (
		id BIGINT PRIMARY KEY,
		title TEXT NOT NULL,
		address TEXT NOT NULL,
		category TEXT NOT NULL,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		rating_count INTEGER NOT NULL DEFAULT 0,
		url TEXT NOT NULL DEFAULT ''
	);
	`

	createRatingsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS ratings (
		id %s,
		item_id BIGINT NOT NULL REFERENCES items(id),
		user_id TEXT NOT NULL,
		score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5)
	);
	`, ratingID)

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_ratings_item_id
    ON ratings(item_id);
	`

	statements := []string{
		createItemsQuery,
		createRatingsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d (%s): %w", i+1, d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ItemSeed struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Address  string  `json:"address"`
	Category string  `json:"category"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	URL      string  `json:"url"`
}

// Populate the database with items from a JSON file. Existing rows keep
// their rating aggregates, and their coordinates when the seed has none.
func SeedFromJSON(db *sql.DB, d Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed items: read %q: %w", jsonPath, err)
	}

	var data []ItemSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed items: parse json: %w", err)
	}

	rows := make([]ItemSeed, 0, len(data))
	for i, item := range data {
		if item.ID <= 0 {
			return fmt.Errorf("seed items: invalid id at index %d: %d", i+1, item.ID)
		}

		item.Title = strings.TrimSpace(item.Title)
		item.Address = strings.TrimSpace(item.Address)
		if item.Title == "" || item.Address == "" {
			return fmt.Errorf("seed items: item id=%d: title and address cannot be empty", item.ID)
		}
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed items: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := d.rebind(`
	INSERT INTO items (
		id,
		title,
		address,
		category,
		lon,
		lat,
		url
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET title = EXCLUDED.title,
		address = EXCLUDED.address,
		category = EXCLUDED.category,
		lon = CASE WHEN EXCLUDED.lon = 0 AND EXCLUDED.lat = 0 THEN items.lon ELSE EXCLUDED.lon END,
		lat = CASE WHEN EXCLUDED.lon = 0 AND EXCLUDED.lat = 0 THEN items.lat ELSE EXCLUDED.lat END,
		url = EXCLUDED.url;
	`)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed items: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range rows {
		if _, err := stmt.Exec(it.ID, it.Title, it.Address, it.Category, it.Lon, it.Lat, it.URL); err != nil {
			return fmt.Errorf("seed items: insert id=%d: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed items: commit tx: %w", err)
	}

	return nil
}
