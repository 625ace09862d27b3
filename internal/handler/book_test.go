package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/testutil"
	"github.com/snnyvrz/library-api/internal/validation"
)

func TestCreateBook_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	body := map[string]any{
		"title":          "Clean Code",
		"author":         "Robert C. Martin",
		"isbn":           "9780132350884",
		"published_date": "2008-08-01",
		"genre":          "Programming",
		"price":          39.99,
		"quantity":       4,
		"metadata_info":  map[string]any{"publisher": "Prentice Hall", "tags": []string{"craft"}},
	}

	w := doJSON(t, router, http.MethodPost, "/books/", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[Book](t, w)
	if resp.ID == 0 {
		t.Errorf("expected non-zero ID")
	}
	if resp.Price == nil || *resp.Price != "39.99" {
		t.Errorf("expected price \"39.99\", got %v", resp.Price)
	}
	if resp.PublishedDate == nil || resp.PublishedDate.String() != "2008-08-01" {
		t.Errorf("expected published_date 2008-08-01, got %v", resp.PublishedDate)
	}
	if resp.MetadataInfo["publisher"] != "Prentice Hall" {
		t.Errorf("expected metadata to round-trip, got %v", resp.MetadataInfo)
	}

	var stored model.Book
	if err := db.First(&stored, resp.ID).Error; err != nil {
		t.Fatalf("failed to load stored book: %v", err)
	}
	if stored.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", stored.Quantity)
	}
}

func TestCreateBook_PriceRendersTwoDecimals(t *testing.T) {
	router := setupTestRouter(testutil.NewTestDB(t))

	w := doJSON(t, router, http.MethodPost, "/books/", `{"title":"T","author":"A","isbn":"1234567890","price":"10"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"price":"10.00"`) {
		t.Fatalf("expected price rendered as \"10.00\", body=%s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"genre":null`) {
		t.Fatalf("expected null genre, body=%s", w.Body.String())
	}
}

func TestCreateBook_EmptyGenreLeavesStatisticsAlone(t *testing.T) {
	router := setupTestRouter(testutil.NewTestDB(t))

	w := doJSON(t, router, http.MethodPost, "/books/", `{"title":"T","author":"A","isbn":"1234567890","genre":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"genre":null`) {
		t.Fatalf("expected empty genre stored as null, body=%s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/books/statistics/genre/", nil)
	if stats := decode[[]GenreStatistic](t, w); len(stats) != 0 {
		t.Fatalf("expected no genre buckets, got %+v", stats)
	}
}

func TestCreateBook_ValidationErrors(t *testing.T) {
	router := setupTestRouter(testutil.NewTestDB(t))

	cases := []struct {
		name  string
		body  string
		field string
		rule  string
	}{
		{"missing title", `{"author":"A","isbn":"1234567890"}`, "title", "required"},
		{"short isbn", `{"title":"T","author":"A","isbn":"123"}`, "isbn", "min"},
		{"long isbn", `{"title":"T","author":"A","isbn":"12345678901234"}`, "isbn", "max"},
		{"negative price", `{"title":"T","author":"A","isbn":"1234567890","price":-5}`, "price", "gte"},
		{"price above column range", `{"title":"T","author":"A","isbn":"1234567890","price":100000000}`, "price", "lte"},
		{"negative quantity", `{"title":"T","author":"A","isbn":"1234567890","quantity":-1}`, "quantity", "gte"},
		{"long genre", `{"title":"T","author":"A","isbn":"1234567890","genre":"` + strings.Repeat("g", 51) + `"}`, "genre", "max"},
		{"bad date", `{"title":"T","author":"A","isbn":"1234567890","published_date":"yesterday"}`, "", "syntax"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/books/", tc.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected status 422, got %d, body=%s", w.Code, w.Body.String())
			}

			resp := decode[validation.ErrorResponse](t, w)
			if len(resp.Errors) != 1 {
				t.Fatalf("expected a single field error, got %+v", resp.Errors)
			}
			if resp.Errors[0].Rule != tc.rule {
				t.Fatalf("expected rule %q, got %+v", tc.rule, resp.Errors[0])
			}
			if tc.field != "" && resp.Errors[0].Field != tc.field {
				t.Fatalf("expected field %q, got %+v", tc.field, resp.Errors[0])
			}
		})
	}
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedBook(t, db, model.Book{Title: "First", ISBN: "1234567890"})

	w := doJSON(t, router, http.MethodPost, "/books/", `{"title":"Second","author":"A","isbn":"1234567890"}`)
	expectError(t, w, http.StatusConflict, "DUPLICATE_ISBN")
}

func TestCreateBook_RepoError(t *testing.T) {
	repo := &fakeBookRepo{
		CreateFn: func(ctx context.Context, b *model.Book) error {
			return storeFailure("create book")
		},
	}
	router := setupTestRouterWithRepos(repo, &fakeOrderRepo{}, nil)

	w := doJSON(t, router, http.MethodPost, "/books/", `{"title":"T","author":"A","isbn":"1234567890"}`)
	expectError(t, w, http.StatusInternalServerError, "BOOK_CREATE_FAILED")
}

func TestListBooks_DefaultsAndSort(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedBook(t, db, model.Book{Title: "Beta"})
	testutil.SeedBook(t, db, model.Book{Title: "Alpha"})

	w := doJSON(t, router, http.MethodGet, "/books/?sort_by=title", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	books := decode[[]Book](t, w)
	if len(books) != 2 || books[0].Title != "Alpha" {
		t.Fatalf("expected [Alpha Beta], got %+v", books)
	}

	w = doJSON(t, router, http.MethodGet, "/books/?sort_by=title&sort_desc=true&limit=1", nil)
	books = decode[[]Book](t, w)
	if len(books) != 1 || books[0].Title != "Beta" {
		t.Fatalf("expected [Beta], got %+v", books)
	}
}

func TestListBooks_PassesParams(t *testing.T) {
	var got repository.BookListParams
	repo := &fakeBookRepo{
		ListFn: func(ctx context.Context, params repository.BookListParams) ([]model.Book, error) {
			got = params
			return nil, nil
		},
	}
	router := setupTestRouterWithRepos(repo, &fakeOrderRepo{}, nil)

	w := doJSON(t, router, http.MethodGet, "/books/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got.Skip != 0 || got.Limit != 100 {
		t.Fatalf("expected default skip=0 limit=100, got %+v", got)
	}
	if w.Body.String() != "[]" {
		t.Fatalf("expected empty JSON array, got %s", w.Body.String())
	}
}

func TestListBooks_InvalidPaging(t *testing.T) {
	router := setupTestRouterWithRepos(&fakeBookRepo{}, &fakeOrderRepo{}, nil)

	for _, q := range []string{"skip=-1", "limit=-5", "limit=abc", "sort_desc=maybe"} {
		w := doJSON(t, router, http.MethodGet, "/books/?"+q, nil)
		expectError(t, w, http.StatusUnprocessableEntity, validation.CodeValidationFailed)
	}
}

func TestGetBookByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	book := testutil.SeedBook(t, db, model.Book{Title: "Found", Price: testutil.Price("5.5")})

	w := doJSON(t, router, http.MethodGet, "/books/"+itoa(book.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	resp := decode[Book](t, w)
	if resp.Title != "Found" || resp.Price == nil || *resp.Price != "5.50" {
		t.Fatalf("unexpected book: %+v", resp)
	}
}

func TestGetBookByID_NotFound(t *testing.T) {
	router := setupTestRouter(testutil.NewTestDB(t))

	w := doJSON(t, router, http.MethodGet, "/books/999", nil)
	expectError(t, w, http.StatusNotFound, "BOOK_NOT_FOUND")
}

func TestGetBookByID_InvalidID(t *testing.T) {
	router := setupTestRouterWithRepos(&fakeBookRepo{}, &fakeOrderRepo{}, nil)

	w := doJSON(t, router, http.MethodGet, "/books/abc", nil)
	expectError(t, w, http.StatusUnprocessableEntity, "INVALID_BOOK_ID")
}

func TestUpdateBook_Partial(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	book := testutil.SeedBook(t, db, model.Book{
		Title:    "Original",
		Author:   "Keep Me",
		Price:    testutil.Price("10"),
		Quantity: 3,
	})

	w := doJSON(t, router, http.MethodPut, "/books/"+itoa(book.ID), `{"title":"Renamed","price":"12.5"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[Book](t, w)
	if resp.Title != "Renamed" {
		t.Errorf("expected title Renamed, got %q", resp.Title)
	}
	if resp.Author != "Keep Me" {
		t.Errorf("expected author untouched, got %q", resp.Author)
	}
	if resp.Quantity != 3 {
		t.Errorf("expected quantity untouched, got %d", resp.Quantity)
	}
	if resp.Price == nil || *resp.Price != "12.50" {
		t.Errorf("expected price 12.50, got %v", resp.Price)
	}
}

func TestUpdateBook_NotFound(t *testing.T) {
	router := setupTestRouter(testutil.NewTestDB(t))

	w := doJSON(t, router, http.MethodPut, "/books/77", `{"title":"x"}`)
	expectError(t, w, http.StatusNotFound, "BOOK_NOT_FOUND")
}

func TestUpdateBook_Validation(t *testing.T) {
	router := setupTestRouterWithRepos(&fakeBookRepo{}, &fakeOrderRepo{}, nil)

	w := doJSON(t, router, http.MethodPut, "/books/1", `{"quantity":-2}`)
	expectError(t, w, http.StatusUnprocessableEntity, validation.CodeValidationFailed)
}

func TestUpdateBook_PassesOnlyProvidedFields(t *testing.T) {
	var got repository.BookUpdate
	repo := &fakeBookRepo{
		UpdateFn: func(ctx context.Context, id int64, upd repository.BookUpdate) (*model.Book, error) {
			got = upd
			return &model.Book{ID: id, Title: "T"}, nil
		},
	}
	router := setupTestRouterWithRepos(repo, &fakeOrderRepo{}, nil)

	w := doJSON(t, router, http.MethodPut, "/books/5", `{"description":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got.Title != nil || got.Price != nil || got.Quantity != nil {
		t.Fatalf("expected unset fields to stay nil, got %+v", got)
	}
	if got.Description == nil || *got.Description != "" {
		t.Fatalf("expected empty description to be passed through, got %v", got.Description)
	}
}

func TestDeleteBook(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	book := testutil.SeedBook(t, db, model.Book{Title: "Gone"})

	w := doJSON(t, router, http.MethodDelete, "/books/"+itoa(book.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if resp := decode[MessageResponse](t, w); resp.Message != "Book deleted successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	w = doJSON(t, router, http.MethodDelete, "/books/"+itoa(book.ID), nil)
	expectError(t, w, http.StatusNotFound, "BOOK_NOT_FOUND")
}

func TestDeleteBook_WithOrders(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	book := testutil.SeedBook(t, db, model.Book{Title: "Ordered", Quantity: 2})
	testutil.SeedOrder(t, db, model.Order{BookID: book.ID, TotalPrice: decimal.NewFromInt(1)})

	w := doJSON(t, router, http.MethodDelete, "/books/"+itoa(book.ID), nil)
	expectError(t, w, http.StatusConflict, "BOOK_HAS_ORDERS")
}

func TestFilterBooks(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedBook(t, db, model.Book{Title: "Cheap Fantasy", Genre: testutil.Ptr("Fantasy"), Price: testutil.Price("5"), Quantity: 1})
	testutil.SeedBook(t, db, model.Book{Title: "Pricey Fantasy", Genre: testutil.Ptr("Fantasy"), Price: testutil.Price("50"), Quantity: 1})
	testutil.SeedBook(t, db, model.Book{Title: "Sold Out Fantasy", Genre: testutil.Ptr("Fantasy"), Price: testutil.Price("7"), Quantity: 0})
	testutil.SeedBook(t, db, model.Book{Title: "Cheap Horror", Genre: testutil.Ptr("Horror"), Price: testutil.Price("5"), Quantity: 1})

	w := doJSON(t, router, http.MethodGet, "/books/filter/advanced/?genre=Fantasy&max_price=10&in_stock=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	books := decode[[]Book](t, w)
	if len(books) != 1 || books[0].Title != "Cheap Fantasy" {
		t.Fatalf("expected [Cheap Fantasy], got %+v", books)
	}
}

func TestFilterBooks_InvalidParams(t *testing.T) {
	router := setupTestRouterWithRepos(&fakeBookRepo{}, &fakeOrderRepo{}, nil)

	for _, q := range []string{"min_price=cheap", "min_date=01/02/2020", "in_stock=perhaps"} {
		w := doJSON(t, router, http.MethodGet, "/books/filter/advanced/?"+q, nil)
		expectError(t, w, http.StatusUnprocessableEntity, validation.CodeValidationFailed)
	}
}

func TestListBooksByAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedBook(t, db, model.Book{Title: "Emma", Author: "Jane Austen"})
	testutil.SeedBook(t, db, model.Book{Title: "Ulysses", Author: "James Joyce"})

	w := doJSON(t, router, http.MethodGet, "/books/by-author/?author=AUSTEN", nil)
	books := decode[[]Book](t, w)
	if len(books) != 1 || books[0].Title != "Emma" {
		t.Fatalf("expected [Emma], got %+v", books)
	}

	w = doJSON(t, router, http.MethodGet, "/books/by-author/", nil)
	expectError(t, w, http.StatusUnprocessableEntity, validation.CodeValidationFailed)
}

func TestListBooksWithOrders(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	ordered := testutil.SeedBook(t, db, model.Book{Title: "Ordered", Quantity: 2})
	testutil.SeedBook(t, db, model.Book{Title: "Idle", Quantity: 2})
	testutil.SeedOrder(t, db, model.Order{BookID: ordered.ID, TotalPrice: decimal.NewFromInt(1)})

	w := doJSON(t, router, http.MethodGet, "/books/with-orders/", nil)
	books := decode[[]Book](t, w)
	if len(books) != 1 || books[0].ID != ordered.ID {
		t.Fatalf("expected only the ordered book, got %+v", books)
	}
}

func TestGenreStatistics(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedBook(t, db, model.Book{Title: "A", Genre: testutil.Ptr("Fantasy"), Price: testutil.Price("10"), Quantity: 1})
	testutil.SeedBook(t, db, model.Book{Title: "B", Genre: testutil.Ptr("Fantasy"), Price: testutil.Price("15"), Quantity: 2})

	w := doJSON(t, router, http.MethodGet, "/books/statistics/genre/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	stats := decode[[]GenreStatistic](t, w)
	if len(stats) != 1 {
		t.Fatalf("expected one genre, got %+v", stats)
	}
	s := stats[0]
	if s.Genre != "Fantasy" || s.BookCount != 2 || s.TotalQuantity != 3 {
		t.Fatalf("unexpected statistics: %+v", s)
	}
	if s.AvgPrice == nil || *s.AvgPrice != "12.50" {
		t.Fatalf("expected avg_price 12.50, got %v", s.AvgPrice)
	}
}

func TestApplyDiscount(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	book := testutil.SeedBook(t, db, model.Book{Title: "A", Genre: testutil.Ptr("Fantasy"), Price: testutil.Price("20"), Quantity: 1})

	w := doJSON(t, router, http.MethodPut, "/books/discount/Fantasy/?discount_percent=25", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if resp := decode[DiscountResponse](t, w); resp.UpdatedBooks != 1 {
		t.Fatalf("expected 1 updated book, got %d", resp.UpdatedBooks)
	}

	w = doJSON(t, router, http.MethodGet, "/books/"+itoa(book.ID), nil)
	if resp := decode[Book](t, w); resp.Price == nil || *resp.Price != "15.00" {
		t.Fatalf("expected discounted price 15.00, got %v", resp.Price)
	}
}

func TestApplyDiscount_Bounds(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	book := testutil.SeedBook(t, db, model.Book{Title: "A", Genre: testutil.Ptr("Poetry"), Price: testutil.Price("19.99"), Quantity: 1})

	priceOf := func() string {
		w := doJSON(t, router, http.MethodGet, "/books/"+itoa(book.ID), nil)
		resp := decode[Book](t, w)
		if resp.Price == nil {
			t.Fatalf("expected a price, got null")
		}
		return *resp.Price
	}

	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodPut, "/books/discount/Poetry/?discount_percent=0", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
		}
		if p := priceOf(); p != "19.99" {
			t.Fatalf("expected price unchanged at 19.99, got %s", p)
		}
	}

	w := doJSON(t, router, http.MethodPut, "/books/discount/Poetry/?discount_percent=100", nil)
	if resp := decode[DiscountResponse](t, w); resp.UpdatedBooks != 1 {
		t.Fatalf("expected 1 updated book, got %d", resp.UpdatedBooks)
	}
	if p := priceOf(); p != "0.00" {
		t.Fatalf("expected price 0.00, got %s", p)
	}
}

func TestApplyDiscount_Invalid(t *testing.T) {
	router := setupTestRouter(testutil.NewTestDB(t))

	for _, q := range []string{"", "?discount_percent=101", "?discount_percent=-1", "?discount_percent=lots"} {
		w := doJSON(t, router, http.MethodPut, "/books/discount/Fantasy/"+q, nil)
		expectError(t, w, http.StatusUnprocessableEntity, validation.CodeValidationFailed)
	}
}

func TestSearchMetadata(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedBook(t, db, model.Book{Title: "Tagged", MetadataInfo: map[string]any{"publisher": "Penguin Classics"}})
	testutil.SeedBook(t, db, model.Book{Title: "Plain"})

	w := doJSON(t, router, http.MethodGet, "/books/search/metadata/?q=Penguin", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	books := decode[[]Book](t, w)
	if len(books) != 1 || books[0].Title != "Tagged" {
		t.Fatalf("expected [Tagged], got %+v", books)
	}

	w = doJSON(t, router, http.MethodGet, "/books/search/metadata/", nil)
	expectError(t, w, http.StatusUnprocessableEntity, validation.CodeValidationFailed)
}

func TestSearchFullText(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	testutil.SeedBook(t, db, model.Book{Title: "The Hobbit", Author: "Tolkien"})
	testutil.SeedBook(t, db, model.Book{Title: "Dune", Author: "Herbert"})

	w := doJSON(t, router, http.MethodGet, "/books/search/fulltext/?q=hobbit", nil)
	books := decode[[]Book](t, w)
	if len(books) != 1 || books[0].Title != "The Hobbit" {
		t.Fatalf("expected [The Hobbit], got %+v", books)
	}
}

func TestSearch_RepoError(t *testing.T) {
	repo := &fakeBookRepo{
		SearchFullTextFn: func(ctx context.Context, term string) ([]model.Book, error) {
			return nil, storeFailure("search full text")
		},
	}
	router := setupTestRouterWithRepos(repo, &fakeOrderRepo{}, nil)

	w := doJSON(t, router, http.MethodGet, "/books/search/fulltext/?q=x", nil)
	expectError(t, w, http.StatusInternalServerError, "SEARCH_FAILED")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
