package importer

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mandi-backend/internal/database"
	"mandi-backend/internal/ledger"
	"mandi-backend/internal/models"
)

// Legacy records carry the string ids of the old system. Cross references
// (trades, payments) point at those legacy ids and are remapped during the
// import.

type LegacyFarmer struct {
	LegacyID       string  `json:"legacy_id"`
	Name           string  `json:"name"`
	Mobile         string  `json:"mobile"`
	Village        string  `json:"village"`
	OpeningBalance float64 `json:"opening_balance"`
}

type LegacyPurchaser struct {
	LegacyID       string  `json:"legacy_id"`
	CompanyName    string  `json:"company_name"`
	ContactPerson  string  `json:"contact_person"`
	Mobile         string  `json:"mobile"`
	OpeningBalance float64 `json:"opening_balance"`
}

type LegacyTrade struct {
	Date        string  `json:"date"`
	SrNo        int     `json:"sr_no"`
	BoardNo     string  `json:"board_no"`
	GaadiNo     string  `json:"gaadi_no"`
	Bhaav       float64 `json:"bhaav"`
	Weight      float64 `json:"weight"`
	Lungar      float64 `json:"lungar"`
	MandiTax    float64 `json:"mandi_tax"`
	Commission  float64 `json:"commission"`
	Majduri     float64 `json:"majduri"`
	FarmerID    string  `json:"farmer_id"`
	PurchaserID string  `json:"purchaser_id"`
	Remarks     string  `json:"remarks"`
}

type LegacyPayment struct {
	Date      string  `json:"date"`
	PartyID   string  `json:"party_id"`
	Mode      string  `json:"mode"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
	Notes     string  `json:"notes"`
}

type LegacyFirmTransaction struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Account  string  `json:"account"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes"`
}

type ImportRequest struct {
	Farmers           []LegacyFarmer          `json:"farmers"`
	Purchasers        []LegacyPurchaser       `json:"purchasers"`
	Trades            []LegacyTrade           `json:"trades"`
	FarmerPayments    []LegacyPayment         `json:"farmer_payments"`
	PurchaserReceipts []LegacyPayment         `json:"purchaser_receipts"`
	FirmTransactions  []LegacyFirmTransaction `json:"firm_transactions"`
}

type ImportResult struct {
	Farmers           int `json:"farmers"`
	Purchasers        int `json:"purchasers"`
	Trades            int `json:"trades"`
	FarmerPayments    int `json:"farmer_payments"`
	PurchaserReceipts int `json:"purchaser_receipts"`
	FirmTransactions  int `json:"firm_transactions"`
}

func parseLegacyDate(s string) time.Time {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d
	}
	return time.Now()
}

// POST /api/import/legacy
// One-shot bulk load from the old bookkeeping system. Everything lands in a
// single DB transaction; totals are rederived and every balance is
// recalculated afterwards, so legacy derived values are never trusted.
func LegacyImportHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ImportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var result ImportResult
		farmerIDs := make(map[string]uint, len(body.Farmers))
		purchaserIDs := make(map[string]uint, len(body.Purchasers))

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			for _, lf := range body.Farmers {
				if lf.Name == "" {
					return fmt.Errorf("farmer %q has no name", lf.LegacyID)
				}
				f := models.Farmer{
					Name:           lf.Name,
					Mobile:         lf.Mobile,
					Village:        lf.Village,
					OpeningBalance: lf.OpeningBalance,
					IsActive:       true,
				}
				if err := tx.Create(&f).Error; err != nil {
					return err
				}
				if lf.LegacyID != "" {
					farmerIDs[lf.LegacyID] = f.ID
				}
				result.Farmers++
			}

			for _, lp := range body.Purchasers {
				if lp.CompanyName == "" {
					return fmt.Errorf("purchaser %q has no company name", lp.LegacyID)
				}
				p := models.Purchaser{
					CompanyName:    lp.CompanyName,
					ContactPerson:  lp.ContactPerson,
					Mobile:         lp.Mobile,
					OpeningBalance: lp.OpeningBalance,
					IsActive:       true,
				}
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
				if lp.LegacyID != "" {
					purchaserIDs[lp.LegacyID] = p.ID
				}
				result.Purchasers++
			}

			for i, lt := range body.Trades {
				fid, ok := farmerIDs[lt.FarmerID]
				if !ok {
					return fmt.Errorf("trade %d references unknown farmer %q", i, lt.FarmerID)
				}
				pid, ok := purchaserIDs[lt.PurchaserID]
				if !ok {
					return fmt.Errorf("trade %d references unknown purchaser %q", i, lt.PurchaserID)
				}
				if lt.Bhaav <= 0 || lt.Weight <= 0 {
					return fmt.Errorf("trade %d has non-positive bhaav or weight", i)
				}

				totals := ledger.DeriveTotals(lt.Bhaav, lt.Weight, lt.Lungar, lt.MandiTax, lt.Commission, lt.Majduri)
				t := models.TradeEntry{
					Date:            parseLegacyDate(lt.Date),
					SrNo:            lt.SrNo,
					BoardNo:         lt.BoardNo,
					GaadiNo:         lt.GaadiNo,
					Bhaav:           lt.Bhaav,
					Weight:          lt.Weight,
					Lungar:          lt.Lungar,
					MandiTax:        lt.MandiTax,
					Commission:      lt.Commission,
					Majduri:         lt.Majduri,
					FarmerID:        fid,
					PurchaserID:     pid,
					GrossAmount:     totals.GrossAmount,
					TotalDeductions: totals.TotalDeductions,
					NetAmount:       totals.NetAmount,
					Remarks:         lt.Remarks,
				}
				if err := tx.Create(&t).Error; err != nil {
					return err
				}
				result.Trades++
			}

			for i, lp := range body.FarmerPayments {
				fid, ok := farmerIDs[lp.PartyID]
				if !ok {
					return fmt.Errorf("farmer payment %d references unknown farmer %q", i, lp.PartyID)
				}
				mode := models.PaymentMode(lp.Mode)
				if mode == "" {
					mode = models.PaymentModeCash
				}
				p := models.PaymentFarmer{
					Date:      parseLegacyDate(lp.Date),
					FarmerID:  fid,
					Mode:      mode,
					Amount:    lp.Amount,
					Reference: lp.Reference,
					Notes:     lp.Notes,
				}
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
				result.FarmerPayments++
			}

			for i, lp := range body.PurchaserReceipts {
				pid, ok := purchaserIDs[lp.PartyID]
				if !ok {
					return fmt.Errorf("purchaser receipt %d references unknown purchaser %q", i, lp.PartyID)
				}
				mode := models.PaymentMode(lp.Mode)
				if mode == "" {
					mode = models.PaymentModeBank
				}
				p := models.PaymentPurchaser{
					Date:        parseLegacyDate(lp.Date),
					PurchaserID: pid,
					Mode:        mode,
					Amount:      lp.Amount,
					Reference:   lp.Reference,
					Notes:       lp.Notes,
				}
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
				result.PurchaserReceipts++
			}

			// Legacy data ships its own firm ledger rows, mirrors included,
			// so imported payments get no fresh mirrors here.
			for _, lt := range body.FirmTransactions {
				txn := models.FirmTransaction{
					Date:             parseLegacyDate(lt.Date),
					Type:             models.FirmTransactionType(lt.Type),
					Account:          models.FirmAccount(lt.Account),
					Category:         lt.Category,
					Amount:           lt.Amount,
					CounterpartyType: models.CounterpartyOther,
					Notes:            lt.Notes,
				}
				if err := tx.Create(&txn).Error; err != nil {
					return err
				}
				result.FirmTransactions++
			}

			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := svc.RecalcAllBalances(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "import saved but balance recalculation failed")
		}

		return c.Status(fiber.StatusCreated).JSON(result)
	}
}
