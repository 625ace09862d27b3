package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/library-api/internal/metrics"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/validation"
)

type OrderHandler struct {
	repo    repository.OrderRepository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewOrderHandler(repo repository.OrderRepository, m *metrics.Metrics, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, metrics: m, logger: logger}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/books/orders")
	{
		orders.POST("/", h.CreateOrder)
		orders.GET("/customer/", h.ListCustomerOrders)
		orders.GET("/daily/:date/", h.DailySales)
	}
}

// CreateOrder godoc
// @Summary      Place an order
// @Description  Reserve copies of a book. Stock is decremented atomically and the total is price times quantity.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateOrderRequest         true  "Order to place"
// @Success      200      {object}  Order
// @Failure      400      {object}  validation.ErrorResponse   "Book not found or insufficient stock"
// @Failure      422      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/orders/ [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if !validation.BindAndValidateJSON(c, &req) {
		h.metrics.OrderRejected(metrics.ReasonInvalid)
		return
	}
	if req.OrderDate.IsZero() {
		h.metrics.OrderRejected(metrics.ReasonInvalid)
		validation.AbortWithFieldError(c, "order_date", "required", "order_date is required")
		return
	}

	order := model.Order{
		BookID:        req.BookID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		OrderDate:     model.DateOf(req.OrderDate.Time),
		Quantity:      1,
	}
	if req.Quantity != nil {
		order.Quantity = *req.Quantity
	}
	if req.Status != nil {
		order.Status = *req.Status
	}

	err := h.repo.Create(c.Request.Context(), &order)
	switch {
	case err == nil:
		h.metrics.OrderCreated()
		c.JSON(http.StatusOK, toOrderResponse(order))
	case errors.Is(err, repository.ErrBookNotFound):
		h.metrics.OrderRejected(metrics.ReasonBookNotFound)
		writeError(c, http.StatusBadRequest, "BOOK_NOT_FOUND", "book not found")
	case errors.Is(err, repository.ErrInsufficientStock):
		h.metrics.OrderRejected(metrics.ReasonInsufficientStock)
		writeError(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", "not enough copies in stock")
	case errors.As(err, new(*repository.ValidationError)):
		h.metrics.OrderRejected(metrics.ReasonInvalid)
		writeRepoError(c, h.logger, err, "ORDER_CREATE_FAILED", "failed to create order")
	default:
		writeRepoError(c, h.logger, err, "ORDER_CREATE_FAILED", "failed to create order")
	}
}

// ListCustomerOrders godoc
// @Summary      Orders of a customer
// @Tags         orders
// @Produce      json
// @Param        email  query     string  true  "Customer email"
// @Success      200  {array}   Order
// @Failure      422  {object}  validation.ErrorResponse   "Missing email"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/orders/customer/ [get]
func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		validation.AbortWithFieldError(c, "email", "required", "email is required")
		return
	}

	orders, err := h.repo.ListByCustomer(c.Request.Context(), email)
	if err != nil {
		writeRepoError(c, h.logger, err, "ORDER_LIST_FAILED", "failed to fetch orders")
		return
	}

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, out)
}

// DailySales godoc
// @Summary      Sales for a day
// @Description  Sum of order totals and number of orders placed on the date.
// @Tags         statistics
// @Produce      json
// @Param        date  path      string  true  "Date YYYY-MM-DD" example(2024-01-15)
// @Success      200  {object}  DailySalesResponse
// @Failure      422  {object}  validation.ErrorResponse   "Invalid date"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/orders/daily/{date}/ [get]
func (h *OrderHandler) DailySales(c *gin.Context) {
	day, ok := parseDate(c, "date", c.Param("date"))
	if !ok {
		return
	}
	if day == nil {
		validation.AbortWithFieldError(c, "date", "required", "date is required")
		return
	}

	sales, err := h.repo.DailySales(c.Request.Context(), *day)
	if err != nil {
		writeRepoError(c, h.logger, err, "DAILY_SALES_FAILED", "failed to compute daily sales")
		return
	}

	c.JSON(http.StatusOK, DailySalesResponse{
		Date:       model.NewDate(*day),
		TotalSales: sales.TotalSales.StringFixed(2),
		OrderCount: sales.OrderCount,
	})
}
