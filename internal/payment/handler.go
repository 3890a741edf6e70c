package payment

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mandi-backend/internal/database"
	"mandi-backend/internal/ledger"
	"mandi-backend/internal/models"
)

var validate = validator.New()

type FarmerPaymentRequest struct {
	FarmerID  uint    `json:"farmer_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Mode      string  `json:"mode" validate:"omitempty,oneof=cash bank upi cheque"`
	Reference string  `json:"reference"`
	Notes     string  `json:"notes"`
	Date      string  `json:"date"` // YYYY-MM-DD, defaults to today
}

type PurchaserReceiptRequest struct {
	PurchaserID uint    `json:"purchaser_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Mode        string  `json:"mode" validate:"omitempty,oneof=cash bank upi cheque"`
	Reference   string  `json:"reference"`
	Notes       string  `json:"notes"`
	Date        string  `json:"date"`
}

type PaymentResponse struct {
	ID        uint    `json:"id"`
	Date      string  `json:"date"`
	PartyID   uint    `json:"party_id"`
	Mode      string  `json:"mode"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
	Notes     string  `json:"notes"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "party not found")
	case errors.Is(err, ledger.ErrInvalidAmount):
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}
	var rerr *ledger.RecalcError
	if errors.As(err, &rerr) {
		return fiber.NewError(fiber.StatusInternalServerError, "payment saved but balance recalculation failed")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "could not record payment")
}

// POST /api/payments/farmer
func PayFarmerHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FarmerPaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "farmer_id and a positive amount are required; mode must be cash, bank, upi or cheque")
		}

		in := ledger.FarmerPaymentInput{
			FarmerID:  body.FarmerID,
			Amount:    body.Amount,
			Mode:      models.PaymentMode(body.Mode),
			Reference: body.Reference,
			Notes:     body.Notes,
		}
		if body.Date != "" {
			d, err := parseDate(body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			in.Date = d
		}

		p, err := svc.PayFarmer(in)
		if err != nil {
			return mapLedgerError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(PaymentResponse{
			ID:        p.ID,
			Date:      p.Date.Format("2006-01-02"),
			PartyID:   p.FarmerID,
			Mode:      string(p.Mode),
			Amount:    p.Amount,
			Reference: p.Reference,
			Notes:     p.Notes,
		})
	}
}

// POST /api/payments/purchaser
func ReceiveFromPurchaserHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PurchaserReceiptRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "purchaser_id and a positive amount are required; mode must be cash, bank, upi or cheque")
		}

		in := ledger.PurchaserReceiptInput{
			PurchaserID: body.PurchaserID,
			Amount:      body.Amount,
			Mode:        models.PaymentMode(body.Mode),
			Reference:   body.Reference,
			Notes:       body.Notes,
		}
		if body.Date != "" {
			d, err := parseDate(body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			in.Date = d
		}

		p, err := svc.ReceiveFromPurchaser(in)
		if err != nil {
			return mapLedgerError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(PaymentResponse{
			ID:        p.ID,
			Date:      p.Date.Format("2006-01-02"),
			PartyID:   p.PurchaserID,
			Mode:      string(p.Mode),
			Amount:    p.Amount,
			Reference: p.Reference,
			Notes:     p.Notes,
		})
	}
}

// GET /api/payments/farmer?farmer_id=&from=&to=
func ListFarmerPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PaymentFarmer{})

		if v := c.Query("farmer_id"); v != "" {
			dbq = dbq.Where("farmer_id = ?", v)
		}
		if v := c.Query("from"); v != "" {
			d, err := parseDate(v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
			}
			dbq = dbq.Where("date >= ?", d)
		}
		if v := c.Query("to"); v != "" {
			d, err := parseDate(v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
			}
			dbq = dbq.Where("date <= ?", d)
		}

		var payments []models.PaymentFarmer
		if err := dbq.Order("date desc, id desc").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list payments")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			resp = append(resp, PaymentResponse{
				ID:        p.ID,
				Date:      p.Date.Format("2006-01-02"),
				PartyID:   p.FarmerID,
				Mode:      string(p.Mode),
				Amount:    p.Amount,
				Reference: p.Reference,
				Notes:     p.Notes,
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/payments/purchaser?purchaser_id=&from=&to=
func ListPurchaserReceiptsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PaymentPurchaser{})

		if v := c.Query("purchaser_id"); v != "" {
			dbq = dbq.Where("purchaser_id = ?", v)
		}
		if v := c.Query("from"); v != "" {
			d, err := parseDate(v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
			}
			dbq = dbq.Where("date >= ?", d)
		}
		if v := c.Query("to"); v != "" {
			d, err := parseDate(v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
			}
			dbq = dbq.Where("date <= ?", d)
		}

		var receipts []models.PaymentPurchaser
		if err := dbq.Order("date desc, id desc").Find(&receipts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list receipts")
		}

		resp := make([]PaymentResponse, 0, len(receipts))
		for _, p := range receipts {
			resp = append(resp, PaymentResponse{
				ID:        p.ID,
				Date:      p.Date.Format("2006-01-02"),
				PartyID:   p.PurchaserID,
				Mode:      string(p.Mode),
				Amount:    p.Amount,
				Reference: p.Reference,
				Notes:     p.Notes,
			})
		}
		return c.JSON(resp)
	}
}
