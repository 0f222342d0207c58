package db

import (
	"aquafund/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Cage{},
		&models.Cycle{},
		&models.Investor{},
		&models.Investment{},
		&models.Revenue{},
		&models.Expense{},
		&models.BudgetAllocation{},
		&models.FeedStock{},
		&models.FeedUsage{},
		&models.Distribution{},
		&models.Payout{},
		&models.FinancialLog{},
	)
}
