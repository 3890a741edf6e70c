package ledger

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mandi-backend/internal/database"
	"mandi-backend/internal/models"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database per test. cache=shared keeps
// the schema visible across the pool's connections; the unique name keeps
// tests isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ledgertest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewService(db, nil), db
}

func seedFarmer(t *testing.T, db *gorm.DB, name string, opening float64) *models.Farmer {
	t.Helper()
	f := models.Farmer{
		Name:           name,
		OpeningBalance: opening,
		CurrentBalance: opening,
		IsActive:       true,
	}
	if err := db.Create(&f).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
	return &f
}

func seedPurchaser(t *testing.T, db *gorm.DB, name string, opening float64) *models.Purchaser {
	t.Helper()
	p := models.Purchaser{
		CompanyName:    name,
		OpeningBalance: opening,
		CurrentBalance: opening,
		IsActive:       true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed purchaser: %v", err)
	}
	return &p
}

func farmerBalance(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var f models.Farmer
	if err := db.First(&f, "id = ?", id).Error; err != nil {
		t.Fatalf("load farmer %d: %v", id, err)
	}
	return f.CurrentBalance
}

func purchaserBalance(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var p models.Purchaser
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		t.Fatalf("load purchaser %d: %v", id, err)
	}
	return p.CurrentBalance
}
