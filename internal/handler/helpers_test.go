package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/snnyvrz/library-api/internal/metrics"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/testutil"
	"github.com/snnyvrz/library-api/internal/validation"
)

func setupTestRouterWithRepos(bookRepo repository.BookRepository, orderRepo repository.OrderRepository, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	logger := testutil.DiscardLogger()

	NewBookHandler(bookRepo, logger).RegisterRoutes(r.Group(""))
	NewOrderHandler(orderRepo, m, logger).RegisterRoutes(r.Group(""))

	return r
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	return setupTestRouterWithRepos(
		repository.NewGormBookRepository(db),
		repository.NewGormOrderRepository(db),
		metrics.New(),
	)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response: %v, body=%s", err, w.Body.String())
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) validation.ErrorResponse {
	t.Helper()

	if w.Code != status {
		t.Fatalf("expected status %d, got %d, body=%s", status, w.Code, w.Body.String())
	}
	resp := decode[validation.ErrorResponse](t, w)
	if resp.Code != code {
		t.Fatalf("expected code %q, got %q", code, resp.Code)
	}
	return resp
}

type fakeBookRepo struct {
	CreateFn          func(ctx context.Context, b *model.Book) error
	FindByIDFn        func(ctx context.Context, id int64) (*model.Book, error)
	ListFn            func(ctx context.Context, params repository.BookListParams) ([]model.Book, error)
	ListByFiltersFn   func(ctx context.Context, f repository.BookFilters) ([]model.Book, error)
	ListByAuthorFn    func(ctx context.Context, author string) ([]model.Book, error)
	ListWithOrdersFn  func(ctx context.Context, skip, limit int) ([]model.Book, error)
	UpdateFn          func(ctx context.Context, id int64, upd repository.BookUpdate) (*model.Book, error)
	DeleteFn          func(ctx context.Context, id int64) error
	ApplyDiscountFn   func(ctx context.Context, genre string, percent decimal.Decimal) (int64, error)
	GenreStatisticsFn func(ctx context.Context) ([]repository.GenreStat, error)
	SearchMetadataFn  func(ctx context.Context, term string) ([]model.Book, error)
	SearchFullTextFn  func(ctx context.Context, term string) ([]model.Book, error)
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrBookNotFound
}

func (f *fakeBookRepo) List(ctx context.Context, params repository.BookListParams) ([]model.Book, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, params)
	}
	return nil, nil
}

func (f *fakeBookRepo) ListByFilters(ctx context.Context, filters repository.BookFilters) ([]model.Book, error) {
	if f.ListByFiltersFn != nil {
		return f.ListByFiltersFn(ctx, filters)
	}
	return nil, nil
}

func (f *fakeBookRepo) ListByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	if f.ListByAuthorFn != nil {
		return f.ListByAuthorFn(ctx, author)
	}
	return nil, nil
}

func (f *fakeBookRepo) ListWithOrders(ctx context.Context, skip, limit int) ([]model.Book, error) {
	if f.ListWithOrdersFn != nil {
		return f.ListWithOrdersFn(ctx, skip, limit)
	}
	return nil, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, id int64, upd repository.BookUpdate) (*model.Book, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, upd)
	}
	return nil, repository.ErrBookNotFound
}

func (f *fakeBookRepo) Delete(ctx context.Context, id int64) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeBookRepo) ApplyDiscount(ctx context.Context, genre string, percent decimal.Decimal) (int64, error) {
	if f.ApplyDiscountFn != nil {
		return f.ApplyDiscountFn(ctx, genre, percent)
	}
	return 0, nil
}

func (f *fakeBookRepo) GenreStatistics(ctx context.Context) ([]repository.GenreStat, error) {
	if f.GenreStatisticsFn != nil {
		return f.GenreStatisticsFn(ctx)
	}
	return nil, nil
}

func (f *fakeBookRepo) SearchMetadata(ctx context.Context, term string) ([]model.Book, error) {
	if f.SearchMetadataFn != nil {
		return f.SearchMetadataFn(ctx, term)
	}
	return nil, nil
}

func (f *fakeBookRepo) SearchFullText(ctx context.Context, term string) ([]model.Book, error) {
	if f.SearchFullTextFn != nil {
		return f.SearchFullTextFn(ctx, term)
	}
	return nil, nil
}

type fakeOrderRepo struct {
	CreateFn         func(ctx context.Context, o *model.Order) error
	ListByCustomerFn func(ctx context.Context, email string) ([]model.Order, error)
	DailySalesFn     func(ctx context.Context, day time.Time) (repository.DailySales, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *model.Order) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, o)
	}
	return nil
}

func (f *fakeOrderRepo) ListByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	if f.ListByCustomerFn != nil {
		return f.ListByCustomerFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeOrderRepo) DailySales(ctx context.Context, day time.Time) (repository.DailySales, error) {
	if f.DailySalesFn != nil {
		return f.DailySalesFn(ctx, day)
	}
	return repository.DailySales{}, nil
}

func storeFailure(op string) error {
	return &repository.StoreError{Op: op, Err: context.DeadlineExceeded}
}
