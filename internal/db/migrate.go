package db

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/snnyvrz/library-api/internal/model"
)

var trigramIndexes = []string{
	"CREATE INDEX IF NOT EXISTS ix_books_title_trgm ON books USING gin (title gin_trgm_ops)",
	"CREATE INDEX IF NOT EXISTS ix_books_author_trgm ON books USING gin (author gin_trgm_ops)",
}

const metadataIndex = "CREATE INDEX IF NOT EXISTS ix_books_metadata_info_gin ON books USING gin (metadata_info)"

// Migrate creates the tables and, on postgres, the extension and indexes the
// search endpoints rely on. Every statement is idempotent.
func Migrate(ctx context.Context, gdb *gorm.DB, log *slog.Logger) error {
	tx := gdb.WithContext(ctx)

	if err := tx.AutoMigrate(&model.Book{}, &model.Order{}, &model.BookStat{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if gdb.Dialector.Name() != "postgres" {
		return nil
	}

	if err := tx.Exec(metadataIndex).Error; err != nil {
		return fmt.Errorf("create metadata index: %w", err)
	}

	// Managed databases may refuse CREATE EXTENSION; full-text search then
	// falls back to substring matching.
	if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error; err != nil {
		log.Warn("pg_trgm unavailable, skipping trigram indexes", slog.Any("error", err))
		return nil
	}

	for _, stmt := range trigramIndexes {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create trigram index: %w", err)
		}
	}
	return nil
}
