package ledger

import (
	"errors"
	"testing"
	"time"

	"mandi-backend/internal/models"
)

func TestRecalcFarmerBalance(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 1000)
	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)

	// Trade worth net 5000: gross 25.5*200 = 5100, deductions 100.
	if _, err := svc.CreateTrade(TradeInput{
		FarmerID:    farmer.ID,
		PurchaserID: purchaser.ID,
		Bhaav:       25.5,
		Weight:      200,
		Commission:  100,
	}); err != nil {
		t.Fatalf("create trade: %v", err)
	}

	if _, err := svc.PayFarmer(FarmerPaymentInput{
		FarmerID: farmer.ID,
		Amount:   2000,
	}); err != nil {
		t.Fatalf("pay farmer: %v", err)
	}

	balance, err := svc.RecalcFarmerBalance(farmer.ID)
	if err != nil {
		t.Fatalf("recalc: %v", err)
	}
	if balance != 4000 {
		t.Fatalf("balance = %v, want 4000 (1000 opening + 5000 net - 2000 paid)", balance)
	}
	if got := farmerBalance(t, db, farmer.ID); got != 4000 {
		t.Fatalf("stored balance = %v, want 4000", got)
	}
}

func TestRecalcIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 500)
	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)

	if _, err := svc.CreateTrade(TradeInput{
		FarmerID:    farmer.ID,
		PurchaserID: purchaser.ID,
		Bhaav:       10,
		Weight:      50,
	}); err != nil {
		t.Fatalf("create trade: %v", err)
	}

	first, err := svc.RecalcFarmerBalance(farmer.ID)
	if err != nil {
		t.Fatalf("first recalc: %v", err)
	}
	second, err := svc.RecalcFarmerBalance(farmer.ID)
	if err != nil {
		t.Fatalf("second recalc: %v", err)
	}
	if first != second {
		t.Fatalf("recalc not idempotent: %v then %v", first, second)
	}
	if first != 1000 {
		t.Fatalf("balance = %v, want 1000", first)
	}
}

func TestRecalcUnknownParty(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.RecalcFarmerBalance(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("farmer err = %v, want ErrNotFound", err)
	}
	if _, err := svc.RecalcPurchaserBalance(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("purchaser err = %v, want ErrNotFound", err)
	}
}

// The stored balance must always equal a from-scratch derivation over the
// raw rows, even when those rows were written behind the engine's back.
func TestRecalcOverwritesStaleBalance(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)

	// Raw insert, no recalculation triggered.
	raw := models.PaymentFarmer{
		Date:     time.Now(),
		FarmerID: farmer.ID,
		Mode:     models.PaymentModeCash,
		Amount:   750,
	}
	if err := db.Create(&raw).Error; err != nil {
		t.Fatalf("raw payment insert: %v", err)
	}
	if got := farmerBalance(t, db, farmer.ID); got != 0 {
		t.Fatalf("balance moved without recalc: %v", got)
	}

	balance, err := svc.RecalcFarmerBalance(farmer.ID)
	if err != nil {
		t.Fatalf("recalc: %v", err)
	}
	if balance != -750 {
		t.Fatalf("balance = %v, want -750", balance)
	}
}

func TestRecalcAllBalances(t *testing.T) {
	svc, db := newTestService(t)
	f1 := seedFarmer(t, db, "Ramesh", 100)
	f2 := seedFarmer(t, db, "Suresh", 200)
	p1 := seedPurchaser(t, db, "Krishna Traders", 0)

	if _, err := svc.CreateTrade(TradeInput{
		FarmerID:    f1.ID,
		PurchaserID: p1.ID,
		Bhaav:       10,
		Weight:      30,
	}); err != nil {
		t.Fatalf("create trade: %v", err)
	}

	// Corrupt the stored balances, then recompute everything.
	db.Model(&models.Farmer{}).Where("1 = 1").Update("current_balance", 9999)
	db.Model(&models.Purchaser{}).Where("1 = 1").Update("current_balance", 9999)

	if err := svc.RecalcAllBalances(); err != nil {
		t.Fatalf("recalc all: %v", err)
	}
	if got := farmerBalance(t, db, f1.ID); got != 400 {
		t.Fatalf("farmer 1 balance = %v, want 400", got)
	}
	if got := farmerBalance(t, db, f2.ID); got != 200 {
		t.Fatalf("farmer 2 balance = %v, want 200", got)
	}
	if got := purchaserBalance(t, db, p1.ID); got != 300 {
		t.Fatalf("purchaser balance = %v, want 300", got)
	}
}
