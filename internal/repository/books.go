package repository

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snnyvrz/library-api/internal/model"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, params BookListParams) ([]model.Book, error)
	ListByFilters(ctx context.Context, filters BookFilters) ([]model.Book, error)
	ListByAuthor(ctx context.Context, author string) ([]model.Book, error)
	ListWithOrders(ctx context.Context, skip, limit int) ([]model.Book, error)
	Update(ctx context.Context, id int64, upd BookUpdate) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	ApplyDiscount(ctx context.Context, genre string, percent decimal.Decimal) (int64, error)
	GenreStatistics(ctx context.Context) ([]GenreStat, error)
	SearchMetadata(ctx context.Context, term string) ([]model.Book, error)
	SearchFullText(ctx context.Context, term string) ([]model.Book, error)
}

type BookListParams struct {
	Skip     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// sortableColumns maps accepted sort_by values to column names. Anything
// else leaves the page unsorted.
var sortableColumns = map[string]string{
	"title":          "title",
	"author":         "author",
	"price":          "price",
	"published_date": "published_date",
	"id":             "id",
}

// BookFilters are AND-combined; nil fields are ignored.
type BookFilters struct {
	Genre    *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	MinDate  *time.Time
	InStock  *bool
}

// BookUpdate carries a partial update. A nil field is left untouched.
// An empty Genre or Description clears the column, as does a zero
// PublishedDate.
type BookUpdate struct {
	Title         *string
	Author        *string
	ISBN          *string
	PublishedDate *model.Date
	Genre         *string
	Price         *decimal.Decimal
	Quantity      *int
	Description   *string
	MetadataInfo  map[string]any
}

type GenreStat struct {
	Genre         string
	BookCount     int64
	TotalQuantity int64
	AvgPrice      decimal.NullDecimal
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// Create stores book. An empty genre or description is stored as NULL, the
// same as Update does.
func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	book.Genre = emptyToNil(book.Genre)
	book.Description = emptyToNil(book.Description)

	if err := validateBook(book); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateISBN
		case isNumericOverflow(err):
			return priceTooLarge()
		}
		return storeError("create book", err)
	}
	return nil
}

func (r *GormBookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, storeError("find book", err)
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context, params BookListParams) ([]model.Book, error) {
	query := r.db.WithContext(ctx).Model(&model.Book{})

	if col, ok := sortableColumns[params.SortBy]; ok {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   params.SortDesc,
		})
	}

	books := []model.Book{}
	if err := query.Offset(params.Skip).Limit(params.Limit).Find(&books).Error; err != nil {
		return nil, storeError("list books", err)
	}
	return books, nil
}

func (r *GormBookRepository) ListByFilters(ctx context.Context, f BookFilters) ([]model.Book, error) {
	query := r.db.WithContext(ctx).Model(&model.Book{})

	if f.Genre != nil && *f.Genre != "" {
		query = query.Where("genre = ?", *f.Genre)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinDate != nil {
		query = query.Where("published_date >= ?", f.MinDate.Format(model.DateLayout))
	}
	if f.InStock != nil {
		if *f.InStock {
			query = query.Where("quantity > 0")
		} else {
			query = query.Where("quantity = 0")
		}
	}

	books := []model.Book{}
	if err := query.Order("id").Find(&books).Error; err != nil {
		return nil, storeError("filter books", err)
	}
	return books, nil
}

func (r *GormBookRepository) ListByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	books := []model.Book{}
	err := r.db.WithContext(ctx).
		Where(`LOWER(author) LIKE ? ESCAPE '\'`, containsPattern(strings.ToLower(author))).
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, storeError("list books by author", err)
	}
	return books, nil
}

// ListWithOrders returns each book that at least one order references.
func (r *GormBookRepository) ListWithOrders(ctx context.Context, skip, limit int) ([]model.Book, error) {
	books := []model.Book{}
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Select("books.*").
		Joins("JOIN orders ON orders.book_id = books.id").
		Group("books.id").
		Order("books.id").
		Offset(skip).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, storeError("list books with orders", err)
	}
	return books, nil
}

func (r *GormBookRepository) Update(ctx context.Context, id int64, upd BookUpdate) (*model.Book, error) {
	if err := upd.validate(); err != nil {
		return nil, err
	}

	var book model.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}

		cols := upd.columns()
		if len(cols) == 0 {
			return nil
		}

		if err := tx.Model(&model.Book{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(&book, id).Error
	})

	switch {
	case err == nil:
		return &book, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrBookNotFound
	case isUniqueViolation(err):
		return nil, ErrDuplicateISBN
	case isNumericOverflow(err):
		return nil, priceTooLarge()
	default:
		return nil, storeError("update book", err)
	}
}

// Delete refuses to remove a book that orders still reference. The count
// runs under a row lock so a concurrent order cannot slip in between.
func (r *GormBookRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, id).Error; err != nil {
			return err
		}

		var orders int64
		if err := tx.Model(&model.Order{}).Where("book_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return ErrBookHasOrders
		}

		return tx.Delete(&model.Book{}, id).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrBookNotFound
	case errors.Is(err, ErrBookHasOrders), isForeignKeyViolation(err):
		return ErrBookHasOrders
	default:
		return storeError("delete book", err)
	}
}

var hundred = decimal.NewFromInt(100)

// ApplyDiscount reduces the price of every priced, in-stock book of genre by
// percent in one statement and reports how many rows it touched.
func (r *GormBookRepository) ApplyDiscount(ctx context.Context, genre string, percent decimal.Decimal) (int64, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return 0, &ValidationError{Field: "discount_percent", Reason: "must be between 0 and 100"}
	}

	factor := decimal.NewFromInt(1).Sub(percent.Div(hundred))

	result := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("genre = ? AND price > 0 AND quantity > 0", genre).
		Update("price", gorm.Expr("ROUND(price * ?, 2)", factor))
	if result.Error != nil {
		return 0, storeError("apply discount", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormBookRepository) GenreStatistics(ctx context.Context) ([]GenreStat, error) {
	stats := []GenreStat{}
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Select("genre, COUNT(id) AS book_count, COALESCE(SUM(quantity), 0) AS total_quantity, AVG(price) AS avg_price").
		Where("genre IS NOT NULL").
		Group("genre").
		Order("genre").
		Scan(&stats).Error
	if err != nil {
		return nil, storeError("genre statistics", err)
	}
	return stats, nil
}

func (u BookUpdate) columns() map[string]any {
	cols := make(map[string]any)

	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Author != nil {
		cols["author"] = *u.Author
	}
	if u.ISBN != nil {
		cols["isbn"] = *u.ISBN
	}
	if u.PublishedDate != nil {
		if u.PublishedDate.IsZero() {
			cols["published_date"] = nil
		} else {
			cols["published_date"] = model.DateOf(u.PublishedDate.Time)
		}
	}
	if u.Genre != nil {
		cols["genre"] = nullIfEmpty(*u.Genre)
	}
	if u.Price != nil {
		cols["price"] = u.Price.Round(2)
	}
	if u.Quantity != nil {
		cols["quantity"] = *u.Quantity
	}
	if u.Description != nil {
		cols["description"] = nullIfEmpty(*u.Description)
	}
	if u.MetadataInfo != nil {
		cols["metadata_info"] = datatypes.JSONMap(u.MetadataInfo)
	}

	return cols
}

func (u BookUpdate) validate() error {
	if u.Title != nil {
		if err := checkLength("title", *u.Title, 1, 200); err != nil {
			return err
		}
	}
	if u.Author != nil {
		if err := checkLength("author", *u.Author, 1, 100); err != nil {
			return err
		}
	}
	if u.ISBN != nil {
		if err := checkLength("isbn", *u.ISBN, 1, 13); err != nil {
			return err
		}
	}
	if u.Genre != nil {
		if err := checkLength("genre", *u.Genre, 0, 50); err != nil {
			return err
		}
	}
	if u.Price != nil {
		if err := checkPrice(*u.Price); err != nil {
			return err
		}
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must be greater than or equal to 0"}
	}
	return nil
}

func validateBook(b *model.Book) error {
	if err := checkLength("title", b.Title, 1, 200); err != nil {
		return err
	}
	if err := checkLength("author", b.Author, 1, 100); err != nil {
		return err
	}
	if err := checkLength("isbn", b.ISBN, 1, 13); err != nil {
		return err
	}
	if b.Genre != nil {
		if err := checkLength("genre", *b.Genre, 0, 50); err != nil {
			return err
		}
	}
	if b.Price.Valid {
		if err := checkPrice(b.Price.Decimal); err != nil {
			return err
		}
	}
	if b.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must be greater than or equal to 0"}
	}
	return nil
}

func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		if min == 1 {
			return &ValidationError{Field: field, Reason: "is required"}
		}
		return &ValidationError{Field: field, Reason: "is too short"}
	}
	if n > max {
		return &ValidationError{Field: field, Reason: "is too long"}
	}
	return nil
}

func checkPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must be greater than or equal to 0"}
	}
	if p.Round(2).GreaterThan(MaxAmount) {
		return priceTooLarge()
	}
	return nil
}

func priceTooLarge() error {
	return &ValidationError{Field: "price", Reason: "must be less than or equal to " + MaxAmount.StringFixed(2)}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
