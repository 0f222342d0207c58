package models

import "time"

type Cage struct {
	ID     string `gorm:"type:varchar(36);primaryKey"`
	FarmID string `gorm:"type:varchar(36);not null;index"`
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(100);not null"`

	Species    string  `gorm:"type:varchar(50)"`
	CapacityKg float64 `gorm:"column:capacity_kg"`

	Status string `gorm:"type:varchar(20);not null;default:'active';index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Cage) TableName() string {
	return "cages"
}
