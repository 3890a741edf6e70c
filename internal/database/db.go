package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mandi-backend/internal/config"
	"mandi-backend/internal/models"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("database connected, migration complete")
}

// Migrate runs AutoMigrate over every model. Shared with tests, which run
// it against their own in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Farmer{},
		&models.Purchaser{},
		&models.TradeEntry{},
		&models.PaymentFarmer{},
		&models.PaymentPurchaser{},
		&models.FirmTransaction{},
	)
}
