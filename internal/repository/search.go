package repository

import (
	"context"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/snnyvrz/library-api/internal/model"
)

// SimilarityThreshold is the minimum pg_trgm similarity a title or author
// needs to count as a full-text match.
const SimilarityThreshold = 0.3

// SearchMetadata returns books that carry term as a substring of any value in
// their metadata document. Matching is case sensitive. Stores without JSON
// table functions yield no results.
func (r *GormBookRepository) SearchMetadata(ctx context.Context, term string) ([]model.Book, error) {
	var predicate string
	switch r.db.Dialector.Name() {
	case "postgres":
		predicate = "EXISTS (SELECT 1 FROM jsonb_each_text(books.metadata_info) AS kv WHERE strpos(kv.value, ?) > 0)"
	case "sqlite":
		predicate = "EXISTS (SELECT 1 FROM json_each(books.metadata_info) AS kv WHERE instr(CAST(kv.value AS TEXT), ?) > 0)"
	default:
		return []model.Book{}, nil
	}

	books := []model.Book{}
	err := r.db.WithContext(ctx).
		Where("metadata_info IS NOT NULL").
		Where(predicate, term).
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, storeError("search metadata", err)
	}
	return books, nil
}

// SearchFullText ranks books by trigram similarity of title and author, also
// matching description and metadata by substring. Without pg_trgm it falls
// back to a case-insensitive substring match ordered by id.
func (r *GormBookRepository) SearchFullText(ctx context.Context, term string) ([]model.Book, error) {
	if r.trigramAvailable(ctx) {
		return r.searchTrigram(ctx, term)
	}
	return r.searchSubstring(ctx, term)
}

func (r *GormBookRepository) searchTrigram(ctx context.Context, term string) ([]model.Book, error) {
	pattern := containsPattern(term)

	books := []model.Book{}
	err := r.db.WithContext(ctx).
		Where(
			`similarity(title, ?) > ? OR similarity(author, ?) > ? OR description ILIKE ? ESCAPE '\' OR metadata_info::text ILIKE ? ESCAPE '\'`,
			term, SimilarityThreshold, term, SimilarityThreshold, pattern, pattern,
		).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "similarity(title, ?) DESC, id",
			Vars:               []any{term},
			WithoutParentheses: true,
		}}).
		Find(&books).Error
	if err != nil {
		return nil, storeError("search full text", err)
	}
	return books, nil
}

func (r *GormBookRepository) searchSubstring(ctx context.Context, term string) ([]model.Book, error) {
	pattern := containsPattern(strings.ToLower(term))

	books := []model.Book{}
	err := r.db.WithContext(ctx).
		Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(author) LIKE ? ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\' OR LOWER(COALESCE(CAST(metadata_info AS TEXT), '')) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern,
		).
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, storeError("search full text", err)
	}
	return books, nil
}

func (r *GormBookRepository) trigramAvailable(ctx context.Context) bool {
	if r.db.Dialector.Name() != "postgres" {
		return false
	}

	var ok bool
	err := r.db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'pg_trgm')").
		Scan(&ok).Error
	return err == nil && ok
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into a LIKE pattern matching any value that
// contains s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
