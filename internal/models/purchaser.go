package models

import "time"

// Purchaser - trader/company buying lots from the firm.
type Purchaser struct {
	ID            uint    `gorm:"primaryKey"`
	CompanyName   string  `gorm:"size:150;not null;index"`
	ContactPerson string  `gorm:"size:100"`
	Mobile        string  `gorm:"size:20;index"`
	Email         string  `gorm:"size:100"`
	City          string  `gorm:"size:100"`
	GSTNumber     string  `gorm:"size:20;index"`
	CreditLimit   float64 `gorm:"not null;default:0"`
	Notes         string  `gorm:"size:500"`

	OpeningBalance float64 `gorm:"not null;default:0"` // positive => purchaser owes firm
	CurrentBalance float64 `gorm:"not null;default:0"` // recalculated from full history

	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
