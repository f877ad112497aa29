package news

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shopfront/internal/database"
)

// ErrItemNotFound is returned when a news item does not exist
var ErrItemNotFound = errors.New("news item not found")

// Repository handles all database operations for news items
type Repository struct {
	db database.Service
}

// NewRepository creates a new news repository
func NewRepository(db database.Service) *Repository {
	return &Repository{db: db}
}

// Create inserts a news item
func (r *Repository) Create(ctx context.Context, title, body string) (*Item, error) {
	query := `
		INSERT INTO news_items (id, title, body, published_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, title, body, published_at
	`

	item := &Item{}
	err := r.db.QueryRow(ctx, query, uuid.New(), title, body).Scan(
		&item.ID, &item.Title, &item.Body, &item.PublishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}

	return item, nil
}

// GetByID retrieves a single news item
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	query := `
		SELECT id, title, body, published_at
		FROM news_items
		WHERE id = $1
	`

	item := &Item{}
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Title, &item.Body, &item.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}

	return item, nil
}

// GetAll retrieves news items with pagination, newest first
func (r *Repository) GetAll(ctx context.Context, page, pageSize int) ([]Item, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM news_items`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count news items: %w", err)
	}

	query := `
		SELECT id, title, body, published_at
		FROM news_items
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list news items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.PublishedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate news items: %w", err)
	}

	return items, totalCount, nil
}
