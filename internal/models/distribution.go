package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Distribution marks one distribution run for a cycle. The unique index on
// CycleID is the per-cycle serialization point: two concurrent initiations
// race on this insert inside the payout transaction, and exactly one wins.
type Distribution struct {
	ID      string `gorm:"type:varchar(36);primaryKey"`
	CycleID string `gorm:"type:varchar(36);not null;uniqueIndex"`

	Policy    string `gorm:"type:varchar(50);not null"`
	Reference string `gorm:"type:varchar(100);not null;uniqueIndex"`

	Revenue      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	FarmExpenses decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	TotalPayout  decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	PayoutCount  int             `gorm:"not null"`

	HarvestDate time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Distribution) TableName() string {
	return "distributions"
}
