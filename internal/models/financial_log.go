package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// FinancialLog is the best-effort audit ledger. Rows record distributions,
// ROI calculations and harvest revenue/expense/profit entries. Writing them
// must never fail the operation that produced them.
type FinancialLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	Type       string `gorm:"type:varchar(50);not null;index"`
	EntityID   string `gorm:"type:varchar(36);not null;index"`
	EntityType string `gorm:"type:varchar(30);not null"`

	Amount    *decimal.Decimal `gorm:"type:numeric(20,2)"`
	Reference string           `gorm:"type:varchar(100);index"`
	Notes     string           `gorm:"type:text"`

	Metadata datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (FinancialLog) TableName() string {
	return "financial_logs"
}
