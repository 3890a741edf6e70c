package ledger

import (
	"time"

	"gorm.io/gorm"

	"mandi-backend/internal/models"
)

// FarmerPaymentInput - a payout from the firm to a farmer.
type FarmerPaymentInput struct {
	FarmerID  uint
	Amount    float64
	Mode      models.PaymentMode
	Reference string
	Notes     string
	Date      time.Time
}

// PurchaserReceiptInput - money received from a purchaser.
type PurchaserReceiptInput struct {
	PurchaserID uint
	Amount      float64
	Mode        models.PaymentMode
	Reference   string
	Notes       string
	Date        time.Time
}

func accountFor(mode models.PaymentMode) models.FirmAccount {
	if mode == models.PaymentModeCash {
		return models.FirmAccountCash
	}
	return models.FirmAccountBank
}

// PayFarmer records a payment to a farmer, mirrors it into the firm
// cash-flow ledger and recalculates the farmer's balance. The payment row
// and its mirror land in one DB transaction. Overpayment is permitted; the
// balance simply goes negative.
func (s *Service) PayFarmer(in FarmerPaymentInput) (*models.PaymentFarmer, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := s.partyExists(&models.Farmer{}, in.FarmerID); err != nil {
		return nil, err
	}
	if in.Mode == "" {
		in.Mode = models.PaymentModeCash
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	payment := models.PaymentFarmer{
		Date:      in.Date,
		FarmerID:  in.FarmerID,
		Mode:      in.Mode,
		Amount:    in.Amount,
		Reference: in.Reference,
		Notes:     in.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		mirror := models.FirmTransaction{
			Date:             in.Date,
			Type:             models.FirmTxnExpense,
			Account:          accountFor(in.Mode),
			Category:         "farmer_payment",
			Amount:           in.Amount,
			CounterpartyType: models.CounterpartyFarmer,
			CounterpartyID:   &payment.FarmerID,
			Notes:            in.Reference,
		}
		return tx.Create(&mirror).Error
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.RecalcFarmerBalance(in.FarmerID); err != nil {
		return &payment, err
	}
	return &payment, nil
}

// ReceiveFromPurchaser records a receipt from a purchaser, mirrors it as
// firm income and recalculates the purchaser's balance.
func (s *Service) ReceiveFromPurchaser(in PurchaserReceiptInput) (*models.PaymentPurchaser, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := s.partyExists(&models.Purchaser{}, in.PurchaserID); err != nil {
		return nil, err
	}
	if in.Mode == "" {
		in.Mode = models.PaymentModeBank
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	receipt := models.PaymentPurchaser{
		Date:        in.Date,
		PurchaserID: in.PurchaserID,
		Mode:        in.Mode,
		Amount:      in.Amount,
		Reference:   in.Reference,
		Notes:       in.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}
		mirror := models.FirmTransaction{
			Date:             in.Date,
			Type:             models.FirmTxnIncome,
			Account:          accountFor(in.Mode),
			Category:         "purchaser_receipt",
			Amount:           in.Amount,
			CounterpartyType: models.CounterpartyPurchaser,
			CounterpartyID:   &receipt.PurchaserID,
			Notes:            in.Reference,
		}
		return tx.Create(&mirror).Error
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.RecalcPurchaserBalance(in.PurchaserID); err != nil {
		return &receipt, err
	}
	return &receipt, nil
}
