package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Revenue struct {
	ID      string  `gorm:"type:varchar(36);primaryKey"`
	CageID  *string `gorm:"type:varchar(36);index"`
	CycleID *string `gorm:"type:varchar(36);index"`

	Type        string          `gorm:"type:varchar(50);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Description string          `gorm:"type:text"`
	Reference   string          `gorm:"type:varchar(100);index"`

	OccurredAt time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Revenue) TableName() string {
	return "revenues"
}
