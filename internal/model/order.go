package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusPending = "pending"

type Order struct {
	ID            int64           `gorm:"primaryKey"`
	BookID        int64           `gorm:"not null;index"`
	CustomerName  string          `gorm:"size:100;not null"`
	CustomerEmail string          `gorm:"size:320;not null;index"`
	OrderDate     time.Time       `gorm:"type:date;not null;index"`
	Quantity      int             `gorm:"not null;default:1"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status        string          `gorm:"size:20;not null;default:pending;index"`
}
