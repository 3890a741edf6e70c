package models

import "time"

// PaymentMode - how money moved.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeBank   PaymentMode = "bank"
	PaymentModeUPI    PaymentMode = "upi"
	PaymentModeCheque PaymentMode = "cheque"
)

// PaymentFarmer - money paid out by the firm to a farmer. Write-once;
// balances change only through recalculation, never directly.
type PaymentFarmer struct {
	ID        uint        `gorm:"primaryKey"`
	Date      time.Time   `gorm:"index:idx_payfarmer_farmer_date,priority:2;not null"`
	FarmerID  uint        `gorm:"index:idx_payfarmer_farmer_date,priority:1;not null"`
	Farmer    Farmer      `gorm:"foreignKey:FarmerID"`
	Mode      PaymentMode `gorm:"size:10;not null;default:cash"`
	Amount    float64     `gorm:"not null"`
	Reference string      `gorm:"size:100"` // txn id / cheque no
	Notes     string      `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentPurchaser - money received by the firm from a purchaser.
type PaymentPurchaser struct {
	ID          uint        `gorm:"primaryKey"`
	Date        time.Time   `gorm:"index:idx_paypurch_purchaser_date,priority:2;not null"`
	PurchaserID uint        `gorm:"index:idx_paypurch_purchaser_date,priority:1;not null"`
	Purchaser   Purchaser   `gorm:"foreignKey:PurchaserID"`
	Mode        PaymentMode `gorm:"size:10;not null;default:bank"`
	Amount      float64     `gorm:"not null"`
	Reference   string      `gorm:"size:100"`
	Notes       string      `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
