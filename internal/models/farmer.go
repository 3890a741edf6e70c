package models

import "time"

// Farmer - banana grower the firm buys lots from.
// CurrentBalance is derived; only the ledger recalculator writes it.
type Farmer struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null;index"`
	Mobile        string `gorm:"size:20;index"`
	AltMobile     string `gorm:"size:20"`
	Village       string `gorm:"size:100"`
	District      string `gorm:"size:100"`
	BankName      string `gorm:"size:100"`
	AccountNumber string `gorm:"size:30"`
	IFSC          string `gorm:"size:15"`
	Notes         string `gorm:"size:500"`

	OpeningBalance float64 `gorm:"not null;default:0"` // positive => firm owes farmer
	CurrentBalance float64 `gorm:"not null;default:0"` // recalculated from full history

	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
