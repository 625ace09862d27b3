package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/validation"
)

type BookHandler struct {
	repo   repository.BookRepository
	logger *slog.Logger
}

func NewBookHandler(repo repository.BookRepository, logger *slog.Logger) *BookHandler {
	return &BookHandler{repo: repo, logger: logger}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.POST("/", h.CreateBook)
		books.GET("/", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)

		books.GET("/filter/advanced/", h.FilterBooks)
		books.GET("/by-author/", h.ListBooksByAuthor)
		books.GET("/with-orders/", h.ListBooksWithOrders)
		books.GET("/statistics/genre/", h.GenreStatistics)
		books.PUT("/discount/:genre/", h.ApplyDiscount)
		books.GET("/search/metadata/", h.SearchMetadata)
		books.GET("/search/fulltext/", h.SearchFullText)
	}
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a new book. isbn must be unique.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      200      {object}  Book
// @Failure      409      {object}  validation.ErrorResponse   "Duplicate isbn"
// @Failure      422      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/ [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Genre:       req.Genre,
		Quantity:    req.Quantity,
		Description: req.Description,
	}
	if req.PublishedDate != nil && !req.PublishedDate.IsZero() {
		d := model.DateOf(req.PublishedDate.Time)
		book.PublishedDate = &d
	}
	if req.Price != nil {
		book.Price = decimal.NewNullDecimal(req.Price.Round(2))
	}
	if req.MetadataInfo != nil {
		book.MetadataInfo = datatypes.JSONMap(req.MetadataInfo)
	}

	if err := h.repo.Create(c.Request.Context(), &book); err != nil {
		writeRepoError(c, h.logger, err, "BOOK_CREATE_FAILED", "failed to create book")
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

// ListBooks godoc
// @Summary      List books
// @Description  Page through books, optionally sorted.
// @Tags         books
// @Produce      json
// @Param        skip       query     int     false  "Rows to skip"     default(0) minimum(0)
// @Param        limit      query     int     false  "Rows to return"   default(100) minimum(0)
// @Param        sort_by    query     string  false  "Sort column" Enums(title,author,price,published_date,id)
// @Param        sort_desc  query     bool    false  "Sort descending"
// @Success      200  {array}   Book
// @Failure      422  {object}  validation.ErrorResponse   "Invalid query parameters"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/ [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	skip, ok := parseNonNegativeIntQuery(c, "skip", defaultSkip)
	if !ok {
		return
	}
	limit, ok := parseNonNegativeIntQuery(c, "limit", defaultLimit)
	if !ok {
		return
	}
	desc, ok := parseBoolQuery(c, "sort_desc")
	if !ok {
		return
	}

	params := repository.BookListParams{
		Skip:   skip,
		Limit:  limit,
		SortBy: c.Query("sort_by"),
	}
	if desc != nil {
		params.SortDesc = *desc
	}

	books, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		writeRepoError(c, h.logger, err, "BOOK_LIST_FAILED", "failed to fetch books")
		return
	}

	c.JSON(http.StatusOK, toBookResponses(books))
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  Book
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, h.logger, err, "BOOK_FETCH_FAILED", "failed to fetch book")
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partially update a book. Only provided fields are changed. An empty genre or description clears it.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Book ID"
// @Param        payload  body      UpdateBookRequest          true  "Fields to update"
// @Success      200      {object}  Book
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      409      {object}  validation.ErrorResponse   "Duplicate isbn"
// @Failure      422      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.repo.Update(c.Request.Context(), id, req.toUpdate())
	if err != nil {
		writeRepoError(c, h.logger, err, "BOOK_UPDATE_FAILED", "failed to update book")
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      409  {object}  validation.ErrorResponse   "Book has orders"
// @Failure      422  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		writeRepoError(c, h.logger, err, "BOOK_DELETE_FAILED", "failed to delete book")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Book deleted successfully"})
}

// FilterBooks godoc
// @Summary      Filter books
// @Description  All filters are optional and combined with AND.
// @Tags         books
// @Produce      json
// @Param        genre      query     string  false  "Exact genre"
// @Param        min_price  query     number  false  "Minimum price"
// @Param        max_price  query     number  false  "Maximum price"
// @Param        min_date   query     string  false  "Published on or after YYYY-MM-DD" example(2015-01-01)
// @Param        in_stock   query     bool    false  "true: quantity > 0, false: quantity = 0"
// @Success      200  {array}   Book
// @Failure      422  {object}  validation.ErrorResponse   "Invalid query parameters"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/filter/advanced/ [get]
func (h *BookHandler) FilterBooks(c *gin.Context) {
	minPrice, ok := parseDecimalQuery(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := parseDecimalQuery(c, "max_price")
	if !ok {
		return
	}
	minDate, ok := parseDate(c, "min_date", c.Query("min_date"))
	if !ok {
		return
	}
	inStock, ok := parseBoolQuery(c, "in_stock")
	if !ok {
		return
	}

	filters := repository.BookFilters{
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		MinDate:  minDate,
		InStock:  inStock,
	}
	if genre := c.Query("genre"); genre != "" {
		filters.Genre = &genre
	}

	books, err := h.repo.ListByFilters(c.Request.Context(), filters)
	if err != nil {
		writeRepoError(c, h.logger, err, "BOOK_FILTER_FAILED", "failed to filter books")
		return
	}

	c.JSON(http.StatusOK, toBookResponses(books))
}

// ListBooksByAuthor godoc
// @Summary      Books by author
// @Description  Case-insensitive substring match on the author name.
// @Tags         books
// @Produce      json
// @Param        author  query     string  true  "Author name or part of it"
// @Success      200  {array}   Book
// @Failure      422  {object}  validation.ErrorResponse   "Missing author"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/by-author/ [get]
func (h *BookHandler) ListBooksByAuthor(c *gin.Context) {
	author := c.Query("author")
	if author == "" {
		validation.AbortWithFieldError(c, "author", "required", "author is required")
		return
	}

	books, err := h.repo.ListByAuthor(c.Request.Context(), author)
	if err != nil {
		writeRepoError(c, h.logger, err, "BOOK_LIST_FAILED", "failed to fetch books")
		return
	}

	c.JSON(http.StatusOK, toBookResponses(books))
}

// ListBooksWithOrders godoc
// @Summary      Books that have orders
// @Tags         books
// @Produce      json
// @Param        skip   query     int  false  "Rows to skip"    default(0) minimum(0)
// @Param        limit  query     int  false  "Rows to return"  default(100) minimum(0)
// @Success      200  {array}   Book
// @Failure      422  {object}  validation.ErrorResponse   "Invalid query parameters"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/with-orders/ [get]
func (h *BookHandler) ListBooksWithOrders(c *gin.Context) {
	skip, ok := parseNonNegativeIntQuery(c, "skip", defaultSkip)
	if !ok {
		return
	}
	limit, ok := parseNonNegativeIntQuery(c, "limit", defaultLimit)
	if !ok {
		return
	}

	books, err := h.repo.ListWithOrders(c.Request.Context(), skip, limit)
	if err != nil {
		writeRepoError(c, h.logger, err, "BOOK_LIST_FAILED", "failed to fetch books")
		return
	}

	c.JSON(http.StatusOK, toBookResponses(books))
}

// GenreStatistics godoc
// @Summary      Statistics per genre
// @Description  Book count, total stock and average price for every genre.
// @Tags         statistics
// @Produce      json
// @Success      200  {array}   GenreStatistic
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/statistics/genre/ [get]
func (h *BookHandler) GenreStatistics(c *gin.Context) {
	stats, err := h.repo.GenreStatistics(c.Request.Context())
	if err != nil {
		writeRepoError(c, h.logger, err, "STATISTICS_FAILED", "failed to compute genre statistics")
		return
	}

	c.JSON(http.StatusOK, toGenreStatistics(stats))
}

// ApplyDiscount godoc
// @Summary      Discount a genre
// @Description  Reduce the price of every priced, in-stock book in the genre.
// @Tags         books
// @Produce      json
// @Param        genre             path      string  true  "Genre"
// @Param        discount_percent  query     number  true  "Discount between 0 and 100"
// @Success      200  {object}  DiscountResponse
// @Failure      422  {object}  validation.ErrorResponse   "Invalid discount"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/discount/{genre}/ [put]
func (h *BookHandler) ApplyDiscount(c *gin.Context) {
	percent, ok := parseDecimalQuery(c, "discount_percent")
	if !ok {
		return
	}
	if percent == nil {
		validation.AbortWithFieldError(c, "discount_percent", "required", "discount_percent is required")
		return
	}

	n, err := h.repo.ApplyDiscount(c.Request.Context(), c.Param("genre"), *percent)
	if err != nil {
		writeRepoError(c, h.logger, err, "DISCOUNT_FAILED", "failed to apply discount")
		return
	}

	c.JSON(http.StatusOK, DiscountResponse{UpdatedBooks: n})
}

// SearchMetadata godoc
// @Summary      Search book metadata
// @Description  Books whose metadata has a value containing q. Case sensitive.
// @Tags         search
// @Produce      json
// @Param        q    query     string  true  "Search term"
// @Success      200  {array}   Book
// @Failure      422  {object}  validation.ErrorResponse   "Missing q"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/search/metadata/ [get]
func (h *BookHandler) SearchMetadata(c *gin.Context) {
	term, ok := searchTerm(c)
	if !ok {
		return
	}

	books, err := h.repo.SearchMetadata(c.Request.Context(), term)
	if err != nil {
		writeRepoError(c, h.logger, err, "SEARCH_FAILED", "failed to search books")
		return
	}

	c.JSON(http.StatusOK, toBookResponses(books))
}

// SearchFullText godoc
// @Summary      Full-text search
// @Description  Trigram similarity on title and author plus substring match on description and metadata, best title match first.
// @Tags         search
// @Produce      json
// @Param        q    query     string  true  "Search term"
// @Success      200  {array}   Book
// @Failure      422  {object}  validation.ErrorResponse   "Missing q"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/search/fulltext/ [get]
func (h *BookHandler) SearchFullText(c *gin.Context) {
	term, ok := searchTerm(c)
	if !ok {
		return
	}

	books, err := h.repo.SearchFullText(c.Request.Context(), term)
	if err != nil {
		writeRepoError(c, h.logger, err, "SEARCH_FAILED", "failed to search books")
		return
	}

	c.JSON(http.StatusOK, toBookResponses(books))
}

func searchTerm(c *gin.Context) (string, bool) {
	q := c.Query("q")
	if q == "" {
		validation.AbortWithFieldError(c, "q", "required", "q is required")
		return "", false
	}
	return q, true
}
