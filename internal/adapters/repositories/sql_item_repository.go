package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/obs"
)

// SQL-backed implementation of the ItemRepository port.
type SQLItemRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

// NewItemRepository returns a repository speaking the given dialect.
func NewItemRepository(db *sql.DB, d Dialect) *SQLItemRepository {
	return &SQLItemRepository{DB: db, Dialect: d}
}

func NewSqliteItemRepository(db *sql.DB) *SQLItemRepository {
	return NewItemRepository(db, SQLite)
}

const itemColumns = `id, title, address, category, lon, lat, avg_rating, rating_count, url`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (domain.Item, error) {
	var it domain.Item
	err := row.Scan(
		&it.ID,
		&it.Title,
		&it.Address,
		&it.Category,
		&it.Coordinates.Lon,
		&it.Coordinates.Lat,
		&it.AvgRating,
		&it.RatingCount,
		&it.URL,
	)
	return it, err
}

// ListItems returns items whose category contains q.Category and whose title
// or address contains q.Search, ordered by id.
func (s *SQLItemRepository) ListItems(ctx context.Context, q domain.Query) (_ []domain.Item, err error) {
	defer obs.Time(ctx, "items.repo.ListItems")(&err)

	if s.DB == nil {
		return nil, errors.New("item repository: DB is nil")
	}

	q = q.Normalize()
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1 = 1`
	args := make([]any, 0, 3)
	if q.FiltersCategory() {
		query += ` AND category LIKE ?`
		args = append(args, "%"+q.Category+"%")
	}
	if q.Search != "" {
		query += ` AND (title LIKE ? OR address LIKE ?)`
		args = append(args, "%"+q.Search+"%", "%"+q.Search+"%")
	}
	query += ` ORDER BY id;`

	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list items: query items table: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0, 64)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: scan row: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: row iteration: %w", err)
	}

	return items, nil
}

func (s *SQLItemRepository) RandomItem(ctx context.Context) (_ domain.Item, err error) {
	defer obs.Time(ctx, "items.repo.RandomItem")(&err)

	if s.DB == nil {
		return domain.Item{}, errors.New("item repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY RANDOM() LIMIT 1;`)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, fmt.Errorf("random item: %w", domain.ErrItemNotFound)
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("random item: scan row: %w", err)
	}
	return it, nil
}

// RecordRating stores r and folds it into the item's running average in one
// transaction.
func (s *SQLItemRepository) RecordRating(ctx context.Context, r domain.Rating) (_ domain.RatingResult, err error) {
	defer obs.Time(ctx, "items.repo.RecordRating")(&err)

	if s.DB == nil {
		return domain.RatingResult{}, errors.New("item repository: DB is nil")
	}
	if err := domain.ValidateScore(r.Score); err != nil {
		return domain.RatingResult{}, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.RatingResult{}, fmt.Errorf("record rating: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sel := `SELECT avg_rating, rating_count FROM items WHERE id = ?`
	if s.Dialect == Postgres {
		sel += ` FOR UPDATE`
	}

	var avg float64
	var count int
	err = tx.QueryRowContext(ctx, s.Dialect.rebind(sel), r.ItemID).Scan(&avg, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RatingResult{}, fmt.Errorf("record rating id=%d: %w", r.ItemID, domain.ErrItemNotFound)
	}
	if err != nil {
		return domain.RatingResult{}, fmt.Errorf("record rating id=%d: read aggregate: %w", r.ItemID, err)
	}

	if _, err := tx.ExecContext(ctx,
		s.Dialect.rebind(`INSERT INTO ratings (item_id, user_id, score) VALUES (?, ?, ?);`),
		r.ItemID, r.UserID, r.Score,
	); err != nil {
		return domain.RatingResult{}, fmt.Errorf("record rating id=%d: insert rating: %w", r.ItemID, err)
	}

	avg, count = domain.RunningAverage(avg, count, r.Score)
	if _, err := tx.ExecContext(ctx,
		s.Dialect.rebind(`UPDATE items SET avg_rating = ?, rating_count = ? WHERE id = ?;`),
		avg, count, r.ItemID,
	); err != nil {
		return domain.RatingResult{}, fmt.Errorf("record rating id=%d: update aggregate: %w", r.ItemID, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.RatingResult{}, fmt.Errorf("record rating id=%d: commit tx: %w", r.ItemID, err)
	}

	return domain.RatingResult{ItemID: r.ItemID, AvgRating: avg, RatingCount: count}, nil
}

// MissingCoordinates lists items that were seeded without a location.
func (s *SQLItemRepository) MissingCoordinates(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+itemColumns+` FROM items WHERE lon = 0 AND lat = 0 ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("missing coordinates: query items table: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("missing coordinates: scan row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("missing coordinates: row iteration: %w", err)
	}
	return items, nil
}

func (s *SQLItemRepository) UpdateCoordinates(ctx context.Context, id domain.ItemID, c domain.Coordinates) error {
	res, err := s.DB.ExecContext(ctx,
		s.Dialect.rebind(`UPDATE items SET lon = ?, lat = ? WHERE id = ?;`),
		c.Lon, c.Lat, id,
	)
	if err != nil {
		return fmt.Errorf("update coordinates id=%d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update coordinates id=%d: %w", id, domain.ErrItemNotFound)
	}
	return nil
}
