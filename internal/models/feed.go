package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FeedUsage struct {
	ID      string  `gorm:"type:varchar(36);primaryKey"`
	CageID  *string `gorm:"type:varchar(36);index"`
	CycleID *string `gorm:"type:varchar(36);index"`

	FeedType   string          `gorm:"type:varchar(50);not null;index"`
	QuantityKg decimal.Decimal `gorm:"column:quantity_kg;type:numeric(20,4);not null"`

	Date      time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (FeedUsage) TableName() string {
	return "feed_usages"
}

type FeedStock struct {
	ID string `gorm:"type:varchar(36);primaryKey"`

	FeedType   string          `gorm:"type:varchar(50);not null;index"`
	QuantityKg decimal.Decimal `gorm:"column:quantity_kg;type:numeric(20,4);not null"`
	CostPerKg  decimal.Decimal `gorm:"column:cost_per_kg;type:numeric(20,4);not null"`
	Supplier   string          `gorm:"type:varchar(100)"`

	ReceivedAt time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (FeedStock) TableName() string {
	return "feed_stocks"
}
