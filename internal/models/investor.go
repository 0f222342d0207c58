package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investor carries cached aggregates. TotalInvestment, TotalReturns and ROI
// are derived fields: they must always equal the sums over the investor's
// investments and paid/processing payouts, and are recomputed after every
// payout-affecting event.
type Investor struct {
	ID    string `gorm:"type:varchar(36);primaryKey"`
	Name  string `gorm:"type:varchar(100);not null"`
	Email string `gorm:"type:varchar(200);uniqueIndex"`
	Phone string `gorm:"type:varchar(30)"`

	Status string `gorm:"type:varchar(20);not null;default:'active';index"`

	TotalInvestment decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	TotalReturns    decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	ROI             decimal.Decimal `gorm:"column:roi;type:numeric(10,2);not null;default:0"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Investor) TableName() string {
	return "investors"
}
