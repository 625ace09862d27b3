package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/validation"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// parseNonNegativeIntQuery reads key as an int >= 0, falling back to def when
// absent. On bad input it has already aborted with 422.
func parseNonNegativeIntQuery(c *gin.Context, key string, def int) (int, bool) {
	s := c.Query(key)
	if s == "" {
		return def, true
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		validation.AbortWithFieldError(c, key, "int", key+" must be an integer")
		return 0, false
	}
	if v < 0 {
		validation.AbortWithFieldError(c, key, "gte", key+" must be greater than or equal to 0")
		return 0, false
	}
	return v, true
}

func parseDecimalQuery(c *gin.Context, key string) (*decimal.Decimal, bool) {
	s := c.Query(key)
	if s == "" {
		return nil, true
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		validation.AbortWithFieldError(c, key, "decimal", key+" must be a decimal number")
		return nil, false
	}
	return &d, true
}

func parseBoolQuery(c *gin.Context, key string) (*bool, bool) {
	s := c.Query(key)
	if s == "" {
		return nil, true
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		validation.AbortWithFieldError(c, key, "bool", key+" must be true or false")
		return nil, false
	}
	return &b, true
}

func parseDate(c *gin.Context, key, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}

	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		validation.AbortWithFieldError(c, key, "date", key+" must be in format YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

func parseBookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, "INVALID_BOOK_ID", "book id must be an integer")
		return 0, false
	}
	return id, true
}

func formatMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

func toBookResponse(b model.Book) Book {
	var meta map[string]any
	if b.MetadataInfo != nil {
		meta = map[string]any(b.MetadataInfo)
	}

	return Book{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedDate: model.DatePtr(b.PublishedDate),
		Genre:         b.Genre,
		Price:         formatMoney(b.Price),
		Quantity:      b.Quantity,
		Description:   b.Description,
		MetadataInfo:  meta,
	}
}

func toBookResponses(books []model.Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return out
}

func toOrderResponse(o model.Order) Order {
	return Order{
		ID:            o.ID,
		BookID:        o.BookID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		OrderDate:     model.NewDate(o.OrderDate),
		Quantity:      o.Quantity,
		TotalPrice:    o.TotalPrice.StringFixed(2),
		Status:        o.Status,
	}
}

func toGenreStatistics(stats []repository.GenreStat) []GenreStatistic {
	out := make([]GenreStatistic, 0, len(stats))
	for _, s := range stats {
		avg := s.AvgPrice
		if avg.Valid {
			avg.Decimal = avg.Decimal.Round(2)
		}
		out = append(out, GenreStatistic{
			Genre:         s.Genre,
			BookCount:     s.BookCount,
			TotalQuantity: s.TotalQuantity,
			AvgPrice:      formatMoney(avg),
		})
	}
	return out
}

func (r UpdateBookRequest) toUpdate() repository.BookUpdate {
	return repository.BookUpdate{
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		PublishedDate: r.PublishedDate,
		Genre:         r.Genre,
		Price:         r.Price,
		Quantity:      r.Quantity,
		Description:   r.Description,
		MetadataInfo:  r.MetadataInfo,
	}
}
