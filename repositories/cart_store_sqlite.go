package repositories

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"tailor-shop/models"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteCartStore keeps the cart in a client-local SQLite database. It is
// the default store.
type SQLiteCartStore struct {
	db *sql.DB
}

func NewSQLiteCartStore(path string) (*SQLiteCartStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cart data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart database: %w", err)
	}
	// Serialized access; the repository is the only writer.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteCartStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (s *SQLiteCartStore) Load(ctx context.Context) (models.Cart, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, variant_id, name, variant_label, unit_price, quantity, image_url, max_quantity
		FROM cart_items ORDER BY position`)
	if err != nil {
		return models.Cart{}, err
	}
	defer rows.Close()

	var cart models.Cart
	for rows.Next() {
		var (
			item  models.CartLineItem
			price string
		)
		if err := rows.Scan(&item.ProductID, &item.VariantID, &item.Name, &item.VariantLabel,
			&price, &item.Quantity, &item.ImageURL, &item.MaxQuantity); err != nil {
			return models.Cart{}, err
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return models.Cart{}, fmt.Errorf("corrupt unit price %q: %w", price, err)
		}
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

// Save replaces the stored cart wholesale inside one transaction, so a
// crash mid-write never leaves a half-updated cart behind.
func (s *SQLiteCartStore) Save(ctx context.Context, cart models.Cart) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return err
	}

	for pos, item := range cart.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (position, product_id, variant_id, name, variant_label, unit_price, quantity, image_url, max_quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			pos, item.ProductID, item.VariantID, item.Name, item.VariantLabel,
			item.UnitPrice.String(), item.Quantity, item.ImageURL, item.MaxQuantity)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteCartStore) Close() error {
	return s.db.Close()
}
