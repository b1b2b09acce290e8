package store

import (
	"context"
	"fmt"
	"time"

	"bakery-storefront/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store is a read-only view of the menu tables. The storefront never writes
// to the database.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetMenuItems retrieves every active menu item in display order
func (s *Store) GetMenuItems(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := s.db.SelectContext(ctx, &items, `
		SELECT id, name, description, price, image, category
		FROM menu_items
		WHERE active = TRUE
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select menu items: %w", err)
	}
	return items, nil
}
