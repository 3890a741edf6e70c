package models

import "time"

type FirmTransactionType string

const (
	FirmTxnIncome   FirmTransactionType = "income"
	FirmTxnExpense  FirmTransactionType = "expense"
	FirmTxnTransfer FirmTransactionType = "transfer"
)

type FirmAccount string

const (
	FirmAccountCash FirmAccount = "cash"
	FirmAccountBank FirmAccount = "bank"
)

type CounterpartyType string

const (
	CounterpartyFarmer    CounterpartyType = "farmer"
	CounterpartyPurchaser CounterpartyType = "purchaser"
	CounterpartyOther     CounterpartyType = "other"
)

// FirmTransaction - firm-wide cash-flow record. Append-only: every payment
// mirrors one of these, and general firm entries (diesel, rent, interest)
// are recorded here directly.
type FirmTransaction struct {
	ID               uint                `gorm:"primaryKey"`
	Date             time.Time           `gorm:"index:idx_firmtxn_date_account,priority:1;not null"`
	Type             FirmTransactionType `gorm:"size:20;not null;index"`
	Account          FirmAccount         `gorm:"size:10;not null;default:bank;index:idx_firmtxn_date_account,priority:2"`
	Category         string              `gorm:"size:50;not null;default:general"`
	Amount           float64             `gorm:"not null"`
	CounterpartyType CounterpartyType    `gorm:"size:20;not null;default:other"`
	CounterpartyID   *uint               `gorm:"index"`
	Notes            string              `gorm:"size:500"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
