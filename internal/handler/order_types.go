package handler

import (
	"github.com/snnyvrz/library-api/internal/model"
)

type CreateOrderRequest struct {
	BookID        int64       `json:"book_id" binding:"required,gt=0"`
	CustomerName  string      `json:"customer_name" binding:"required,min=1,max=100"`
	CustomerEmail string      `json:"customer_email" binding:"required,min=3,max=320"`
	OrderDate     *model.Date `json:"order_date" binding:"required" swaggertype:"string" example:"2024-01-15"`
	Quantity      *int        `json:"quantity" binding:"omitempty,min=1" example:"1"`
	Status        *string     `json:"status" binding:"omitempty,max=20" example:"pending"`
}

type Order struct {
	ID            int64      `json:"id"`
	BookID        int64      `json:"book_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	OrderDate     model.Date `json:"order_date" swaggertype:"string" example:"2024-01-15"`
	Quantity      int        `json:"quantity"`
	TotalPrice    string     `json:"total_price" example:"30.00"`
	Status        string     `json:"status"`
}

type DailySalesResponse struct {
	Date       model.Date `json:"date" swaggertype:"string" example:"2024-01-15"`
	TotalSales string     `json:"total_sales" example:"19.75"`
	OrderCount int64      `json:"order_count"`
}
