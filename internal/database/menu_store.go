package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pizzeria/internal/models"
)

// PostgresMenuStore reads and seeds the menu in PostgreSQL
type PostgresMenuStore struct {
	db *DB
}

func NewPostgresMenuStore(db *DB) *PostgresMenuStore {
	return &PostgresMenuStore{db: db}
}

// LoadMenu returns the stored menu in display order
func (s *PostgresMenuStore) LoadMenu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.Query(ctx, SelectMenuSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		var category string
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Image, &category); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		item.Category = models.Category(category)
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertMenu writes items in one transaction, keeping their order as position
func (s *PostgresMenuStore) UpsertMenu(ctx context.Context, items []models.MenuItem) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		for i, item := range items {
			if _, err := tx.Exec(ctx, UpsertMenuItemSQL,
				item.ID, item.Name, item.Description, item.Price, item.Image, string(item.Category), i,
			); err != nil {
				return fmt.Errorf("failed to upsert menu item %s: %w", item.ID, err)
			}
		}
		return nil
	})
}

// SQLiteMenuStore reads and seeds the menu in a local sqlite file
type SQLiteMenuStore struct {
	db *sql.DB
}

func NewSQLiteMenuStore(db *sql.DB) *SQLiteMenuStore {
	return &SQLiteMenuStore{db: db}
}

// LoadMenu returns the stored menu in display order
func (s *SQLiteMenuStore) LoadMenu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, SQLiteSelectMenuSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		var category string
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Image, &category); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		item.Category = models.Category(category)
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertMenu writes items in one transaction, keeping their order as position
func (s *SQLiteMenuStore) UpsertMenu(ctx context.Context, items []models.MenuItem) error {
	return WithSQLiteTx(s.db, func(tx *sql.Tx) error {
		for i, item := range items {
			if _, err := tx.ExecContext(ctx, SQLiteUpsertMenuItemSQL,
				item.ID, item.Name, item.Description, item.Price, item.Image, string(item.Category), i,
			); err != nil {
				return fmt.Errorf("failed to upsert menu item %s: %w", item.ID, err)
			}
		}
		return nil
	})
}
