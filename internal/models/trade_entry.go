package models

import "time"

// TradeEntry - one banana-lot transaction between a farmer and a purchaser.
// GrossAmount/TotalDeductions/NetAmount are derived from the raw inputs and
// persisted together with them; they are recomputed as a unit whenever any
// input field changes.
type TradeEntry struct {
	ID      uint      `gorm:"primaryKey"`
	Date    time.Time `gorm:"index;not null"`
	SrNo    int
	BoardNo string `gorm:"size:20"`
	GaadiNo string `gorm:"size:20"` // vehicle number

	Bhaav      float64 `gorm:"not null"` // agreed rate for the lot
	Weight     float64 `gorm:"not null"` // kg
	Lungar     float64 `gorm:"not null;default:0"`
	MandiTax   float64 `gorm:"not null;default:0"`
	Commission float64 `gorm:"not null;default:0"`
	Majduri    float64 `gorm:"not null;default:0"`

	FarmerID    uint      `gorm:"index:idx_trade_farmer_date,priority:1;not null"`
	Farmer      Farmer    `gorm:"foreignKey:FarmerID"`
	PurchaserID uint      `gorm:"index:idx_trade_purchaser_date,priority:1;not null"`
	Purchaser   Purchaser `gorm:"foreignKey:PurchaserID"`

	GrossAmount     float64 `gorm:"not null"` // bhaav * weight
	TotalDeductions float64 `gorm:"not null"` // lungar + mandiTax + commission + majduri
	NetAmount       float64 `gorm:"not null"` // gross - deductions

	Remarks   string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
