package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseFingerlings ExpenseCategory = "fingerlings"
	ExpenseFeed        ExpenseCategory = "feed"
	ExpenseLabor       ExpenseCategory = "labor"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseUtilities   ExpenseCategory = "utilities"
	ExpenseOther       ExpenseCategory = "other"
)

// DirectExpenseCategories is the fixed partition used for gross vs. net
// profit: everything listed here is a direct cost, the rest is indirect.
var DirectExpenseCategories = []ExpenseCategory{
	ExpenseFingerlings,
	ExpenseFeed,
	ExpenseLabor,
	ExpenseMaintenance,
	ExpenseUtilities,
}

func (c ExpenseCategory) IsDirect() bool {
	for _, d := range DirectExpenseCategories {
		if c == d {
			return true
		}
	}
	return false
}

type Expense struct {
	ID      string  `gorm:"type:varchar(36);primaryKey"`
	CageID  *string `gorm:"type:varchar(36);index"`
	CycleID *string `gorm:"type:varchar(36);index"`

	Category    ExpenseCategory `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Description string          `gorm:"type:text"`
	Reference   string          `gorm:"type:varchar(100);index"`

	IncurredAt time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
