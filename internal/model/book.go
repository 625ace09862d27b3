package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Book struct {
	ID            int64               `gorm:"primaryKey"`
	Title         string              `gorm:"size:200;not null;index"`
	Author        string              `gorm:"size:100;not null;index"`
	ISBN          string              `gorm:"column:isbn;size:13;uniqueIndex"`
	PublishedDate *time.Time          `gorm:"type:date;index"`
	Genre         *string             `gorm:"size:50;index"`
	Price         decimal.NullDecimal `gorm:"type:numeric(10,2);index"`
	Quantity      int                 `gorm:"not null;default:0"`
	Description   *string             `gorm:"type:text"`
	MetadataInfo  datatypes.JSONMap   `gorm:"column:metadata_info"`
	Orders        []Order             `json:"-" gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:NO ACTION"`
}

// BookStat holds per-book aggregates. Nothing in the service writes it yet.
type BookStat struct {
	ID            int64               `gorm:"primaryKey"`
	BookID        int64               `gorm:"uniqueIndex"`
	Book          *Book               `gorm:"constraint:OnDelete:CASCADE"`
	TotalOrders   int                 `gorm:"default:0"`
	TotalRevenue  decimal.Decimal     `gorm:"type:numeric(10,2);default:0"`
	AverageRating decimal.NullDecimal `gorm:"type:numeric(3,2)"`
}
