package ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"mandi-backend/internal/models"
)

// TradeInput carries the raw fields of a new trade entry. Derived totals are
// never accepted from the caller.
type TradeInput struct {
	Date    time.Time
	SrNo    int
	BoardNo string
	GaadiNo string

	Bhaav      float64
	Weight     float64
	Lungar     float64
	MandiTax   float64
	Commission float64
	Majduri    float64

	FarmerID    uint
	PurchaserID uint
	Remarks     string
}

// TradeUpdate is a partial update; nil fields keep their stored value.
type TradeUpdate struct {
	Date    *time.Time
	SrNo    *int
	BoardNo *string
	GaadiNo *string

	Bhaav      *float64
	Weight     *float64
	Lungar     *float64
	MandiTax   *float64
	Commission *float64
	Majduri    *float64

	FarmerID    *uint
	PurchaserID *uint
	Remarks     *string
}

func (u TradeUpdate) touchesMoney() bool {
	return u.Bhaav != nil || u.Weight != nil || u.Lungar != nil ||
		u.MandiTax != nil || u.Commission != nil || u.Majduri != nil
}

// CreateTrade derives totals, persists the entry and recalculates both
// parties' balances. ErrInvalidTrade if bhaav/weight/party refs are missing
// (non-positive bhaav or weight counts as missing), ErrNotFound if a party
// ref is dangling. On a recalculation failure the persisted trade is
// returned together with the error.
func (s *Service) CreateTrade(in TradeInput) (*models.TradeEntry, error) {
	if in.FarmerID == 0 || in.PurchaserID == 0 || in.Bhaav <= 0 || in.Weight <= 0 {
		return nil, ErrInvalidTrade
	}
	if err := s.partyExists(&models.Farmer{}, in.FarmerID); err != nil {
		return nil, err
	}
	if err := s.partyExists(&models.Purchaser{}, in.PurchaserID); err != nil {
		return nil, err
	}

	totals := DeriveTotals(in.Bhaav, in.Weight, in.Lungar, in.MandiTax, in.Commission, in.Majduri)
	trade := models.TradeEntry{
		Date:            in.Date,
		SrNo:            in.SrNo,
		BoardNo:         in.BoardNo,
		GaadiNo:         in.GaadiNo,
		Bhaav:           in.Bhaav,
		Weight:          in.Weight,
		Lungar:          in.Lungar,
		MandiTax:        in.MandiTax,
		Commission:      in.Commission,
		Majduri:         in.Majduri,
		FarmerID:        in.FarmerID,
		PurchaserID:     in.PurchaserID,
		GrossAmount:     totals.GrossAmount,
		TotalDeductions: totals.TotalDeductions,
		NetAmount:       totals.NetAmount,
		Remarks:         in.Remarks,
	}
	if trade.Date.IsZero() {
		trade.Date = time.Now()
	}

	if err := s.db.Create(&trade).Error; err != nil {
		return nil, err
	}

	if err := s.recalcTradeParties(trade.FarmerID, trade.PurchaserID); err != nil {
		return &trade, err
	}
	return &trade, nil
}

// UpdateTrade merges the partial update onto the stored record, rederives
// the totals from the merged view whenever a monetary input changed, and
// recalculates balances for the trade's current parties - and for the
// previous farmer/purchaser too when the update reassigned them, so no
// stale balance is left behind.
func (s *Service) UpdateTrade(id uint, in TradeUpdate) (*models.TradeEntry, error) {
	var trade models.TradeEntry
	if err := s.db.First(&trade, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	prevFarmerID := trade.FarmerID
	prevPurchaserID := trade.PurchaserID

	if in.FarmerID != nil && *in.FarmerID != trade.FarmerID {
		if err := s.partyExists(&models.Farmer{}, *in.FarmerID); err != nil {
			return nil, err
		}
		trade.FarmerID = *in.FarmerID
	}
	if in.PurchaserID != nil && *in.PurchaserID != trade.PurchaserID {
		if err := s.partyExists(&models.Purchaser{}, *in.PurchaserID); err != nil {
			return nil, err
		}
		trade.PurchaserID = *in.PurchaserID
	}

	if in.Date != nil {
		trade.Date = *in.Date
	}
	if in.SrNo != nil {
		trade.SrNo = *in.SrNo
	}
	if in.BoardNo != nil {
		trade.BoardNo = *in.BoardNo
	}
	if in.GaadiNo != nil {
		trade.GaadiNo = *in.GaadiNo
	}
	if in.Remarks != nil {
		trade.Remarks = *in.Remarks
	}

	if in.Bhaav != nil {
		trade.Bhaav = *in.Bhaav
	}
	if in.Weight != nil {
		trade.Weight = *in.Weight
	}
	if in.Lungar != nil {
		trade.Lungar = *in.Lungar
	}
	if in.MandiTax != nil {
		trade.MandiTax = *in.MandiTax
	}
	if in.Commission != nil {
		trade.Commission = *in.Commission
	}
	if in.Majduri != nil {
		trade.Majduri = *in.Majduri
	}

	if in.touchesMoney() {
		if trade.Bhaav <= 0 || trade.Weight <= 0 {
			return nil, ErrInvalidTrade
		}
		totals := DeriveTotals(trade.Bhaav, trade.Weight, trade.Lungar, trade.MandiTax, trade.Commission, trade.Majduri)
		trade.GrossAmount = totals.GrossAmount
		trade.TotalDeductions = totals.TotalDeductions
		trade.NetAmount = totals.NetAmount
	}

	if err := s.db.Save(&trade).Error; err != nil {
		return nil, err
	}

	if err := s.recalcTradeParties(trade.FarmerID, trade.PurchaserID); err != nil {
		return &trade, err
	}
	if prevFarmerID != trade.FarmerID {
		if _, err := s.RecalcFarmerBalance(prevFarmerID); err != nil {
			return &trade, err
		}
	}
	if prevPurchaserID != trade.PurchaserID {
		if _, err := s.RecalcPurchaserBalance(prevPurchaserID); err != nil {
			return &trade, err
		}
	}
	return &trade, nil
}

// DeleteTrade removes the entry and recalculates both former parties.
// Deleting an unknown id is not an error; it returns (false, nil).
func (s *Service) DeleteTrade(id uint) (bool, error) {
	var trade models.TradeEntry
	if err := s.db.First(&trade, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.db.Delete(&trade).Error; err != nil {
		return false, err
	}

	if err := s.recalcTradeParties(trade.FarmerID, trade.PurchaserID); err != nil {
		return true, err
	}
	return true, nil
}
