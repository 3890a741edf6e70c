package ledger

import (
	"time"

	"gorm.io/gorm"

	"mandi-backend/internal/models"
)

// DateRange is an inclusive [from, to] filter; nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) apply(q *gorm.DB) *gorm.DB {
	if r.From != nil {
		q = q.Where("date >= ?", *r.From)
	}
	if r.To != nil {
		q = q.Where("date <= ?", *r.To)
	}
	return q
}

// DailySummaryRow - one calendar day's trade totals.
type DailySummaryRow struct {
	Date       string  `json:"date"`
	Gross      float64 `json:"gross"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
	Weight     float64 `json:"weight"`
}

// DailySummary groups trades in range by calendar date, ascending.
func (s *Service) DailySummary(r DateRange) ([]DailySummaryRow, error) {
	var trades []models.TradeEntry
	if err := r.apply(s.db.Model(&models.TradeEntry{})).
		Order("date asc, id asc").
		Find(&trades).Error; err != nil {
		return nil, err
	}

	byDate := make(map[string]*DailySummaryRow)
	order := make([]string, 0)
	for _, t := range trades {
		key := t.Date.Format("2006-01-02")
		row, ok := byDate[key]
		if !ok {
			row = &DailySummaryRow{Date: key}
			byDate[key] = row
			order = append(order, key)
		}
		row.Gross += t.GrossAmount
		row.Deductions += t.TotalDeductions
		row.Net += t.NetAmount
		row.Weight += t.Weight
	}

	rows := make([]DailySummaryRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byDate[key])
	}
	return rows, nil
}

// FarmerLedgerResult - raw trade and payment lists for one farmer in range.
// Totals and formatting are the consumer's job.
type FarmerLedgerResult struct {
	Trades   []models.TradeEntry    `json:"trades"`
	Payments []models.PaymentFarmer `json:"payments"`
}

func (s *Service) FarmerLedger(farmerID uint, r DateRange) (*FarmerLedgerResult, error) {
	if err := s.partyExists(&models.Farmer{}, farmerID); err != nil {
		return nil, err
	}

	out := FarmerLedgerResult{
		Trades:   make([]models.TradeEntry, 0),
		Payments: make([]models.PaymentFarmer, 0),
	}
	if err := r.apply(s.db.Where("farmer_id = ?", farmerID)).
		Order("date asc, id asc").
		Find(&out.Trades).Error; err != nil {
		return nil, err
	}
	if err := r.apply(s.db.Where("farmer_id = ?", farmerID)).
		Order("date asc, id asc").
		Find(&out.Payments).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// PurchaserLedgerResult - raw trade and receipt lists for one purchaser.
type PurchaserLedgerResult struct {
	Trades   []models.TradeEntry       `json:"trades"`
	Receipts []models.PaymentPurchaser `json:"receipts"`
}

func (s *Service) PurchaserLedger(purchaserID uint, r DateRange) (*PurchaserLedgerResult, error) {
	if err := s.partyExists(&models.Purchaser{}, purchaserID); err != nil {
		return nil, err
	}

	out := PurchaserLedgerResult{
		Trades:   make([]models.TradeEntry, 0),
		Receipts: make([]models.PaymentPurchaser, 0),
	}
	if err := r.apply(s.db.Where("purchaser_id = ?", purchaserID)).
		Order("date asc, id asc").
		Find(&out.Trades).Error; err != nil {
		return nil, err
	}
	if err := r.apply(s.db.Where("purchaser_id = ?", purchaserID)).
		Order("date asc, id asc").
		Find(&out.Receipts).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// CashFlowResult - firm transactions in range plus income/expense/profit.
type CashFlowResult struct {
	Transactions []models.FirmTransaction `json:"transactions"`
	Income       float64                  `json:"income"`
	Expense      float64                  `json:"expense"`
	Profit       float64                  `json:"profit"`
}

func (s *Service) FirmCashFlow(r DateRange) (*CashFlowResult, error) {
	out := CashFlowResult{Transactions: make([]models.FirmTransaction, 0)}
	if err := r.apply(s.db.Model(&models.FirmTransaction{})).
		Order("date asc, id asc").
		Find(&out.Transactions).Error; err != nil {
		return nil, err
	}

	type totalRow struct {
		Type  string  `gorm:"column:type"`
		Total float64 `gorm:"column:total"`
	}
	var totals []totalRow
	if err := r.apply(s.db.Model(&models.FirmTransaction{})).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Group("type").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	for _, t := range totals {
		switch models.FirmTransactionType(t.Type) {
		case models.FirmTxnIncome:
			out.Income = t.Total
		case models.FirmTxnExpense:
			out.Expense = t.Total
		}
	}
	out.Profit = out.Income - out.Expense
	return &out, nil
}
