package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CycleStatus string

const (
	CyclePlanned   CycleStatus = "planned"
	CycleActive    CycleStatus = "active"
	CycleCompleted CycleStatus = "completed"
)

// Cycle is one stocking-to-harvest production run on a cage. Revenue,
// profit and FCR are cached once harvest data arrives; the row becomes
// immutable as soon as payouts exist for it.
type Cycle struct {
	ID     string `gorm:"type:varchar(36);primaryKey"`
	CageID string `gorm:"type:varchar(36);not null;index"`
	Cage   Cage   `gorm:"foreignKey:CageID"`

	Species   string      `gorm:"type:varchar(50)"`
	Status    CycleStatus `gorm:"type:varchar(20);not null;default:'planned';index"`
	StartDate time.Time   `gorm:"type:timestamptz;not null"`
	EndDate   *time.Time  `gorm:"type:timestamptz"`

	InitialStock   int `gorm:"not null;default:0"`
	HarvestedStock int `gorm:"not null;default:0"`

	BiomassStartKg decimal.Decimal `gorm:"column:biomass_start_kg;type:numeric(20,4);not null;default:0"`
	BiomassEndKg   decimal.Decimal `gorm:"column:biomass_end_kg;type:numeric(20,4);not null;default:0"`

	Revenue *decimal.Decimal `gorm:"type:numeric(20,2)"`
	Profit  *decimal.Decimal `gorm:"type:numeric(20,2)"`
	FCR     *decimal.Decimal `gorm:"column:fcr;type:numeric(10,4)"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Cycle) TableName() string {
	return "cycles"
}
