package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetAllocation struct {
	ID      string `gorm:"type:varchar(36);primaryKey"`
	CycleID string `gorm:"type:varchar(36);not null;index"`

	Category  ExpenseCategory `gorm:"type:varchar(30);not null"`
	Allocated decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Spent     decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (BudgetAllocation) TableName() string {
	return "budget_allocations"
}
