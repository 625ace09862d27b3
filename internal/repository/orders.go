package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snnyvrz/library-api/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	ListByCustomer(ctx context.Context, email string) ([]model.Order, error)
	DailySales(ctx context.Context, day time.Time) (DailySales, error)
}

type DailySales struct {
	TotalSales decimal.Decimal
	OrderCount int64
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create places an order. The book row is locked for the length of the
// transaction, its stock is decremented by the ordered quantity and the
// total is computed from the current price. Stock never goes negative.
func (r *GormOrderRepository) Create(ctx context.Context, order *model.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, order.BookID).Error; err != nil {
			return err
		}

		if book.Quantity < order.Quantity {
			return ErrInsufficientStock
		}

		price := decimal.Zero
		if book.Price.Valid {
			price = book.Price.Decimal
		}
		order.TotalPrice = price.Mul(decimal.NewFromInt(int64(order.Quantity))).Round(2)
		if order.TotalPrice.GreaterThan(MaxAmount) {
			return totalTooLarge()
		}
		order.OrderDate = model.DateOf(order.OrderDate)
		if order.Status == "" {
			order.Status = model.OrderStatusPending
		}

		result := tx.Model(&model.Book{}).
			Where("id = ? AND quantity >= ?", book.ID, order.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", order.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		return tx.Create(order).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrBookNotFound
	case errors.Is(err, ErrInsufficientStock):
		return err
	case errors.As(err, new(*ValidationError)):
		return err
	case isForeignKeyViolation(err):
		return ErrBookNotFound
	case isNumericOverflow(err):
		return totalTooLarge()
	default:
		return storeError("create order", err)
	}
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, storeError("list customer orders", err)
	}
	return orders, nil
}

// DailySales sums the totals of every order placed on day. A day without
// orders reports zero for both figures.
func (r *GormOrderRepository) DailySales(ctx context.Context, day time.Time) (DailySales, error) {
	var row struct {
		TotalSales decimal.NullDecimal
		OrderCount int64
	}

	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(SUM(total_price), 0) AS total_sales, COUNT(id) AS order_count").
		Where("DATE(order_date) = ?", day.Format(model.DateLayout)).
		Scan(&row).Error
	if err != nil {
		return DailySales{}, storeError("daily sales", err)
	}

	sales := DailySales{TotalSales: decimal.Zero, OrderCount: row.OrderCount}
	if row.TotalSales.Valid {
		sales.TotalSales = row.TotalSales.Decimal.Round(2)
	}
	return sales, nil
}

func validateOrder(o *model.Order) error {
	if o.BookID <= 0 {
		return &ValidationError{Field: "book_id", Reason: "must be greater than 0"}
	}
	if err := checkLength("customer_name", o.CustomerName, 1, 100); err != nil {
		return err
	}
	if err := checkLength("customer_email", o.CustomerEmail, 1, 320); err != nil {
		return err
	}
	if o.OrderDate.IsZero() {
		return &ValidationError{Field: "order_date", Reason: "is required"}
	}
	if o.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return checkLength("status", o.Status, 0, 20)
}

func totalTooLarge() error {
	return &ValidationError{Field: "quantity", Reason: "puts the order total above " + MaxAmount.StringFixed(2)}
}
