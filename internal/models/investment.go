package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is one capital stake tied to a cage and/or a cycle.
// When ShareUnits and UnitPrice are both supplied, Amount must equal
// ShareUnits * UnitPrice. ShareUnits must be positive for the stake to be
// eligible under the proportional-by-units allocation policy.
type Investment struct {
	ID         string  `gorm:"type:varchar(36);primaryKey"`
	InvestorID string  `gorm:"type:varchar(36);not null;index"`
	Investor   Investor `gorm:"foreignKey:InvestorID"`

	CageID  *string `gorm:"type:varchar(36);index"`
	CycleID *string `gorm:"type:varchar(36);index"`

	Amount     decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	ShareUnits decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`

	StartDate time.Time  `gorm:"type:timestamptz;not null"`
	EndDate   *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Investment) TableName() string {
	return "investments"
}

// StakeAmount resolves the effective money amount of the stake: the explicit
// amount when present, otherwise shareUnits * unitPrice.
func (i Investment) StakeAmount() decimal.Decimal {
	if !i.Amount.IsZero() {
		return i.Amount
	}
	return i.ShareUnits.Mul(i.UnitPrice)
}
