// Package testutil builds throwaway sqlite databases with the production
// schema and seeds them for handler and repository tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snnyvrz/library-api/internal/db"
	"github.com/snnyvrz/library-api/internal/model"
)

// NewTestDB returns a migrated in-memory database private to the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb := OpenEmptyDB(t)

	if err := db.Migrate(context.Background(), gdb, DiscardLogger()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return gdb
}

// OpenEmptyDB returns an in-memory database without any tables, which makes
// every query fail with a store error.
func OpenEmptyDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=1"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return gdb
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func SeedBook(t *testing.T, gdb *gorm.DB, book model.Book) model.Book {
	t.Helper()

	if book.Author == "" {
		book.Author = "Unknown Author"
	}
	if book.ISBN == "" {
		book.ISBN = uuid.New().String()[:13]
	}

	if err := gdb.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", book.Title, err)
	}
	return book
}

func SeedOrder(t *testing.T, gdb *gorm.DB, order model.Order) model.Order {
	t.Helper()

	if order.CustomerName == "" {
		order.CustomerName = "Test Customer"
	}
	if order.CustomerEmail == "" {
		order.CustomerEmail = "customer@example.com"
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = model.DateOf(time.Now())
	}
	if order.Quantity == 0 {
		order.Quantity = 1
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}

	if err := gdb.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order for book %d: %v", order.BookID, err)
	}
	return order
}

func Ptr[T any](v T) *T {
	return &v
}

// Price parses s as a valid nullable decimal and panics on bad input.
func Price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func Day(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
