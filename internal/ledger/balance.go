package ledger

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mandi-backend/internal/models"
)

// RecalcFarmerBalance recomputes a farmer's balance from scratch:
// openingBalance + sum(netAmount of their trades) - sum(payments to them),
// and persists it. Always reads the entire history; no incremental state is
// trusted, which makes the call idempotent. Positive => firm owes farmer.
func (s *Service) RecalcFarmerBalance(farmerID uint) (float64, error) {
	lock := s.partyLock("farmer", farmerID)
	lock.Lock()
	defer lock.Unlock()

	var farmer models.Farmer
	if err := s.db.First(&farmer, "id = ?", farmerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	var tradeNet float64
	if err := s.db.Model(&models.TradeEntry{}).
		Where("farmer_id = ?", farmerID).
		Select("COALESCE(SUM(net_amount), 0)").
		Scan(&tradeNet).Error; err != nil {
		return 0, err
	}

	var paid float64
	if err := s.db.Model(&models.PaymentFarmer{}).
		Where("farmer_id = ?", farmerID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return 0, err
	}

	balance := farmer.OpeningBalance + tradeNet - paid
	if err := s.db.Model(&models.Farmer{}).
		Where("id = ?", farmerID).
		Update("current_balance", balance).Error; err != nil {
		return 0, &RecalcError{PartyKind: "farmer", PartyID: farmerID, Err: err}
	}

	s.log.Debug("farmer balance recalculated",
		zap.Uint("farmer_id", farmerID),
		zap.Float64("balance", balance))
	return balance, nil
}

// RecalcPurchaserBalance is the purchaser-side counterpart:
// openingBalance + sum(netAmount of their trades) - sum(receipts from them).
// Positive => purchaser owes firm.
func (s *Service) RecalcPurchaserBalance(purchaserID uint) (float64, error) {
	lock := s.partyLock("purchaser", purchaserID)
	lock.Lock()
	defer lock.Unlock()

	var purchaser models.Purchaser
	if err := s.db.First(&purchaser, "id = ?", purchaserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	var tradeNet float64
	if err := s.db.Model(&models.TradeEntry{}).
		Where("purchaser_id = ?", purchaserID).
		Select("COALESCE(SUM(net_amount), 0)").
		Scan(&tradeNet).Error; err != nil {
		return 0, err
	}

	var received float64
	if err := s.db.Model(&models.PaymentPurchaser{}).
		Where("purchaser_id = ?", purchaserID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&received).Error; err != nil {
		return 0, err
	}

	balance := purchaser.OpeningBalance + tradeNet - received
	if err := s.db.Model(&models.Purchaser{}).
		Where("id = ?", purchaserID).
		Update("current_balance", balance).Error; err != nil {
		return 0, &RecalcError{PartyKind: "purchaser", PartyID: purchaserID, Err: err}
	}

	s.log.Debug("purchaser balance recalculated",
		zap.Uint("purchaser_id", purchaserID),
		zap.Float64("balance", balance))
	return balance, nil
}

// RecalcAllBalances recomputes every party's balance. Used after bulk
// imports, and safe to run at any time.
func (s *Service) RecalcAllBalances() error {
	var farmerIDs []uint
	if err := s.db.Model(&models.Farmer{}).Pluck("id", &farmerIDs).Error; err != nil {
		return err
	}
	for _, id := range farmerIDs {
		if _, err := s.RecalcFarmerBalance(id); err != nil {
			return err
		}
	}

	var purchaserIDs []uint
	if err := s.db.Model(&models.Purchaser{}).Pluck("id", &purchaserIDs).Error; err != nil {
		return err
	}
	for _, id := range purchaserIDs {
		if _, err := s.RecalcPurchaserBalance(id); err != nil {
			return err
		}
	}
	return nil
}

// recalcTradeParties recalculates both sides of a trade. Order does not
// matter; the two parties' records are disjoint.
func (s *Service) recalcTradeParties(farmerID, purchaserID uint) error {
	if _, err := s.RecalcFarmerBalance(farmerID); err != nil {
		return err
	}
	if _, err := s.RecalcPurchaserBalance(purchaserID); err != nil {
		return err
	}
	return nil
}
