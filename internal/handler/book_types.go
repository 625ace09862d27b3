package handler

import (
	"github.com/shopspring/decimal"

	"github.com/snnyvrz/library-api/internal/model"
)

type CreateBookRequest struct {
	Title         string           `json:"title" binding:"required,min=1,max=200"`
	Author        string           `json:"author" binding:"required,min=1,max=100"`
	ISBN          string           `json:"isbn" binding:"required,min=10,max=13"`
	PublishedDate *model.Date      `json:"published_date" swaggertype:"string" example:"2008-08-01"`
	Genre         *string          `json:"genre" binding:"omitempty,max=50"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty,gte=0,lte=99999999.99" swaggertype:"string" example:"39.99"`
	Quantity      int              `json:"quantity" binding:"gte=0"`
	Description   *string          `json:"description"`
	MetadataInfo  map[string]any   `json:"metadata_info"`
}

// UpdateBookRequest is a partial update; omitted fields keep their value.
type UpdateBookRequest struct {
	Title         *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Author        *string          `json:"author" binding:"omitempty,min=1,max=100"`
	ISBN          *string          `json:"isbn" binding:"omitempty,min=10,max=13"`
	PublishedDate *model.Date      `json:"published_date" swaggertype:"string" example:"2008-08-01"`
	Genre         *string          `json:"genre" binding:"omitempty,max=50"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty,gte=0,lte=99999999.99" swaggertype:"string" example:"34.99"`
	Quantity      *int             `json:"quantity" binding:"omitempty,gte=0"`
	Description   *string          `json:"description"`
	MetadataInfo  map[string]any   `json:"metadata_info"`
}

type Book struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Author        string         `json:"author"`
	ISBN          string         `json:"isbn"`
	PublishedDate *model.Date    `json:"published_date" swaggertype:"string" example:"2008-08-01"`
	Genre         *string        `json:"genre"`
	Price         *string        `json:"price" example:"39.99"`
	Quantity      int            `json:"quantity"`
	Description   *string        `json:"description"`
	MetadataInfo  map[string]any `json:"metadata_info"`
}

type GenreStatistic struct {
	Genre         string  `json:"genre"`
	BookCount     int64   `json:"book_count"`
	TotalQuantity int64   `json:"total_quantity"`
	AvgPrice      *string `json:"avg_price" example:"24.50"`
}

type DiscountResponse struct {
	UpdatedBooks int64 `json:"updated_books"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
