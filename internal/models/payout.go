package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutPaid       PayoutStatus = "paid"
	PayoutRejected   PayoutStatus = "rejected"
)

// Payout is the audit record for one investor's share of one cycle's
// results. Rows are created only by the distribution workflow, never from
// direct user input, so the allocation and idempotency rules cannot be
// bypassed. Reference carries the distribution-run prefix until completion,
// when it is replaced by the payment reference.
type Payout struct {
	ID         string   `gorm:"type:varchar(36);primaryKey"`
	InvestorID string   `gorm:"type:varchar(36);not null;index"`
	Investor   Investor `gorm:"foreignKey:InvestorID"`
	CycleID    string   `gorm:"type:varchar(36);not null;index"`
	Cycle      Cycle    `gorm:"foreignKey:CycleID"`

	Amount decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Status PayoutStatus    `gorm:"type:varchar(20);not null;default:'pending';index"`

	Reference string `gorm:"type:varchar(100);index"`

	PaidAt    *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"type:timestamptz;autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Payout) TableName() string {
	return "payouts"
}

// CanTransition reports whether the lifecycle allows moving to next.
// pending -> processing|rejected, processing -> paid|rejected; paid and
// rejected are terminal.
func (p Payout) CanTransition(next PayoutStatus) bool {
	switch p.Status {
	case PayoutPending:
		return next == PayoutProcessing || next == PayoutRejected
	case PayoutProcessing:
		return next == PayoutPaid || next == PayoutRejected
	default:
		return false
	}
}
