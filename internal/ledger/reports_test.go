package ledger

import (
	"errors"
	"testing"
	"time"

	"mandi-backend/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDailySummaryGroupsByCalendarDay(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)
	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)

	mk := func(d time.Time, bhaav, weight float64) {
		t.Helper()
		if _, err := svc.CreateTrade(TradeInput{
			Date:        d,
			FarmerID:    farmer.ID,
			PurchaserID: purchaser.ID,
			Bhaav:       bhaav,
			Weight:      weight,
		}); err != nil {
			t.Fatalf("create trade: %v", err)
		}
	}

	mk(day(2026, 1, 6), 10, 100) // 1000
	mk(day(2026, 1, 5), 10, 50)  // 500
	mk(day(2026, 1, 5), 20, 25)  // 500

	rows, err := svc.DailySummary(DateRange{})
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 days", len(rows))
	}
	if rows[0].Date != "2026-01-05" || rows[1].Date != "2026-01-06" {
		t.Fatalf("days out of order: %s, %s", rows[0].Date, rows[1].Date)
	}
	if rows[0].Net != 1000 {
		t.Fatalf("day 1 net = %v, want 1000", rows[0].Net)
	}
	if rows[0].Weight != 75 {
		t.Fatalf("day 1 weight = %v, want 75", rows[0].Weight)
	}
	if rows[1].Net != 1000 {
		t.Fatalf("day 2 net = %v, want 1000", rows[1].Net)
	}
}

func TestDailySummaryRespectsRange(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)
	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)

	for _, d := range []time.Time{day(2026, 1, 1), day(2026, 1, 15), day(2026, 2, 1)} {
		if _, err := svc.CreateTrade(TradeInput{
			Date:        d,
			FarmerID:    farmer.ID,
			PurchaserID: purchaser.ID,
			Bhaav:       10,
			Weight:      10,
		}); err != nil {
			t.Fatalf("create trade: %v", err)
		}
	}

	from := day(2026, 1, 10)
	to := day(2026, 1, 31)
	rows, err := svc.DailySummary(DateRange{From: &from, To: &to})
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if len(rows) != 1 || rows[0].Date != "2026-01-15" {
		t.Fatalf("rows = %+v, want only 2026-01-15", rows)
	}
}

func TestFarmerLedger(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)
	other := seedFarmer(t, db, "Suresh", 0)
	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)

	if _, err := svc.CreateTrade(TradeInput{
		Date:        day(2026, 1, 5),
		FarmerID:    farmer.ID,
		PurchaserID: purchaser.ID,
		Bhaav:       10,
		Weight:      100,
	}); err != nil {
		t.Fatalf("create trade: %v", err)
	}
	if _, err := svc.CreateTrade(TradeInput{
		Date:        day(2026, 1, 6),
		FarmerID:    other.ID,
		PurchaserID: purchaser.ID,
		Bhaav:       10,
		Weight:      100,
	}); err != nil {
		t.Fatalf("create trade: %v", err)
	}
	if _, err := svc.PayFarmer(FarmerPaymentInput{
		FarmerID: farmer.ID,
		Amount:   400,
		Date:     day(2026, 1, 7),
	}); err != nil {
		t.Fatalf("pay farmer: %v", err)
	}

	result, err := svc.FarmerLedger(farmer.ID, DateRange{})
	if err != nil {
		t.Fatalf("farmer ledger: %v", err)
	}
	if len(result.Trades) != 1 {
		t.Fatalf("trades = %d, want 1 (other farmer's rows excluded)", len(result.Trades))
	}
	if len(result.Payments) != 1 || result.Payments[0].Amount != 400 {
		t.Fatalf("payments = %+v, want the single 400 payout", result.Payments)
	}

	if _, err := svc.FarmerLedger(999, DateRange{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown farmer err = %v, want ErrNotFound", err)
	}
}

func TestPurchaserLedgerRange(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)
	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)

	for _, d := range []time.Time{day(2026, 1, 5), day(2026, 2, 5)} {
		if _, err := svc.CreateTrade(TradeInput{
			Date:        d,
			FarmerID:    farmer.ID,
			PurchaserID: purchaser.ID,
			Bhaav:       10,
			Weight:      10,
		}); err != nil {
			t.Fatalf("create trade: %v", err)
		}
	}
	if _, err := svc.ReceiveFromPurchaser(PurchaserReceiptInput{
		PurchaserID: purchaser.ID,
		Amount:      50,
		Date:        day(2026, 1, 20),
	}); err != nil {
		t.Fatalf("receive: %v", err)
	}

	from := day(2026, 1, 1)
	to := day(2026, 1, 31)
	result, err := svc.PurchaserLedger(purchaser.ID, DateRange{From: &from, To: &to})
	if err != nil {
		t.Fatalf("purchaser ledger: %v", err)
	}
	if len(result.Trades) != 1 {
		t.Fatalf("trades = %d, want 1 (february row excluded)", len(result.Trades))
	}
	if len(result.Receipts) != 1 {
		t.Fatalf("receipts = %d, want 1", len(result.Receipts))
	}
}

func TestFirmCashFlowTotals(t *testing.T) {
	svc, db := newTestService(t)
	farmer := seedFarmer(t, db, "Ramesh", 0)
	purchaser := seedPurchaser(t, db, "Krishna Traders", 0)

	if _, err := svc.PayFarmer(FarmerPaymentInput{FarmerID: farmer.ID, Amount: 100}); err != nil {
		t.Fatalf("pay farmer: %v", err)
	}
	if _, err := svc.ReceiveFromPurchaser(PurchaserReceiptInput{PurchaserID: purchaser.ID, Amount: 250}); err != nil {
		t.Fatalf("receive: %v", err)
	}
	// A manual firm expense alongside the mirrors.
	if err := db.Create(&models.FirmTransaction{
		Date:             time.Now(),
		Type:             models.FirmTxnExpense,
		Account:          models.FirmAccountCash,
		Category:         "diesel",
		Amount:           40,
		CounterpartyType: models.CounterpartyOther,
	}).Error; err != nil {
		t.Fatalf("manual txn: %v", err)
	}

	result, err := svc.FirmCashFlow(DateRange{})
	if err != nil {
		t.Fatalf("cash flow: %v", err)
	}
	if len(result.Transactions) != 3 {
		t.Fatalf("transactions = %d, want 3", len(result.Transactions))
	}
	if result.Income != 250 {
		t.Fatalf("income = %v, want 250", result.Income)
	}
	if result.Expense != 140 {
		t.Fatalf("expense = %v, want 140", result.Expense)
	}
	if result.Profit != 110 {
		t.Fatalf("profit = %v, want 110", result.Profit)
	}
}
