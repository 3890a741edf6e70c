package ledger

import (
	"errors"
	"testing"

	"mandi-backend/internal/models"
)

func TestPayFarmerMirrorsFirmTransaction(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)

	p, err := svc.PayFarmer(FarmerPaymentInput{
		FarmerID:  farmer.ID,
		Amount:    1500,
		Mode:      models.PaymentModeCash,
		Reference: "CHQ-001",
	})
	if err != nil {
		t.Fatalf("pay farmer: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("payment not persisted")
	}

	var mirror models.FirmTransaction
	if err := db.First(&mirror, "counterparty_type = ? AND counterparty_id = ?",
		models.CounterpartyFarmer, farmer.ID).Error; err != nil {
		t.Fatalf("mirror not written: %v", err)
	}
	if mirror.Type != models.FirmTxnExpense {
		t.Fatalf("mirror type = %q, want expense", mirror.Type)
	}
	if mirror.Account != models.FirmAccountCash {
		t.Fatalf("mirror account = %q, want cash (cash payment)", mirror.Account)
	}
	if mirror.Category != "farmer_payment" {
		t.Fatalf("mirror category = %q, want farmer_payment", mirror.Category)
	}
	if mirror.Amount != 1500 {
		t.Fatalf("mirror amount = %v, want 1500", mirror.Amount)
	}
	if mirror.Notes != "CHQ-001" {
		t.Fatalf("mirror notes = %q, want reference carried over", mirror.Notes)
	}
}

func TestReceiveFromPurchaserMirrorsIncome(t *testing.T) {
	svc, db := newTestService(t)
	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)

	// Mode omitted: purchaser receipts default to bank.
	p, err := svc.ReceiveFromPurchaser(PurchaserReceiptInput{
		PurchaserID: purchaser.ID,
		Amount:      2500,
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if p.Mode != models.PaymentModeBank {
		t.Fatalf("mode = %q, want default bank", p.Mode)
	}

	var mirror models.FirmTransaction
	if err := db.First(&mirror, "counterparty_type = ? AND counterparty_id = ?",
		models.CounterpartyPurchaser, purchaser.ID).Error; err != nil {
		t.Fatalf("mirror not written: %v", err)
	}
	if mirror.Type != models.FirmTxnIncome {
		t.Fatalf("mirror type = %q, want income", mirror.Type)
	}
	if mirror.Account != models.FirmAccountBank {
		t.Fatalf("mirror account = %q, want bank", mirror.Account)
	}
	if mirror.Category != "purchaser_receipt" {
		t.Fatalf("mirror category = %q, want purchaser_receipt", mirror.Category)
	}
}

func TestPayFarmerDefaultsToCash(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)

	p, err := svc.PayFarmer(FarmerPaymentInput{FarmerID: farmer.ID, Amount: 100})
	if err != nil {
		t.Fatalf("pay farmer: %v", err)
	}
	if p.Mode != models.PaymentModeCash {
		t.Fatalf("mode = %q, want default cash", p.Mode)
	}
}

func TestOverpaymentDrivesBalanceNegative(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)

	if _, err := svc.PayFarmer(FarmerPaymentInput{FarmerID: farmer.ID, Amount: 300}); err != nil {
		t.Fatalf("pay farmer: %v", err)
	}
	if got := farmerBalance(t, db, farmer.ID); got != -300 {
		t.Fatalf("farmer balance = %v, want -300 (overpayment permitted)", got)
	}

	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)
	if _, err := svc.ReceiveFromPurchaser(PurchaserReceiptInput{PurchaserID: purchaser.ID, Amount: 300}); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if got := purchaserBalance(t, db, purchaser.ID); got != -300 {
		t.Fatalf("purchaser balance = %v, want -300 (overpayment permitted)", got)
	}
}

func TestPaymentValidation(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)

	if _, err := svc.PayFarmer(FarmerPaymentInput{FarmerID: farmer.ID, Amount: 0}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount err = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.PayFarmer(FarmerPaymentInput{FarmerID: farmer.ID, Amount: -50}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative amount err = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.PayFarmer(FarmerPaymentInput{FarmerID: 999, Amount: 100}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown farmer err = %v, want ErrNotFound", err)
	}
	if _, err := svc.ReceiveFromPurchaser(PurchaserReceiptInput{PurchaserID: 999, Amount: 100}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown purchaser err = %v, want ErrNotFound", err)
	}

	// Nothing persisted by the rejected calls.
	var count int64
	db.Model(&models.PaymentFarmer{}).Count(&count)
	if count != 0 {
		t.Fatalf("payments persisted = %d, want 0", count)
	}
	db.Model(&models.FirmTransaction{}).Count(&count)
	if count != 0 {
		t.Fatalf("firm transactions persisted = %d, want 0", count)
	}
}
