package trade

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mandi-backend/internal/database"
	"mandi-backend/internal/ledger"
	"mandi-backend/internal/models"
)

var validate = validator.New()

type CreateTradeRequest struct {
	Date    string `json:"date"` // YYYY-MM-DD, defaults to today
	SrNo    int    `json:"sr_no"`
	BoardNo string `json:"board_no"`
	GaadiNo string `json:"gaadi_no"`

	Bhaav      float64 `json:"bhaav" validate:"required,gt=0"`
	Weight     float64 `json:"weight" validate:"required,gt=0"`
	Lungar     float64 `json:"lungar" validate:"gte=0"`
	MandiTax   float64 `json:"mandi_tax" validate:"gte=0"`
	Commission float64 `json:"commission" validate:"gte=0"`
	Majduri    float64 `json:"majduri" validate:"gte=0"`

	FarmerID    uint   `json:"farmer_id" validate:"required"`
	PurchaserID uint   `json:"purchaser_id" validate:"required"`
	Remarks     string `json:"remarks"`
}

type UpdateTradeRequest struct {
	Date    *string `json:"date"`
	SrNo    *int    `json:"sr_no"`
	BoardNo *string `json:"board_no"`
	GaadiNo *string `json:"gaadi_no"`

	Bhaav      *float64 `json:"bhaav"`
	Weight     *float64 `json:"weight"`
	Lungar     *float64 `json:"lungar"`
	MandiTax   *float64 `json:"mandi_tax"`
	Commission *float64 `json:"commission"`
	Majduri    *float64 `json:"majduri"`

	FarmerID    *uint   `json:"farmer_id"`
	PurchaserID *uint   `json:"purchaser_id"`
	Remarks     *string `json:"remarks"`
}

type TradeResponse struct {
	ID      uint   `json:"id"`
	Date    string `json:"date"`
	SrNo    int    `json:"sr_no"`
	BoardNo string `json:"board_no"`
	GaadiNo string `json:"gaadi_no"`

	Bhaav      float64 `json:"bhaav"`
	Weight     float64 `json:"weight"`
	Lungar     float64 `json:"lungar"`
	MandiTax   float64 `json:"mandi_tax"`
	Commission float64 `json:"commission"`
	Majduri    float64 `json:"majduri"`

	FarmerID      uint   `json:"farmer_id"`
	FarmerName    string `json:"farmer_name,omitempty"`
	PurchaserID   uint   `json:"purchaser_id"`
	PurchaserName string `json:"purchaser_name,omitempty"`

	GrossAmount     float64 `json:"gross_amount"`
	TotalDeductions float64 `json:"total_deductions"`
	NetAmount       float64 `json:"net_amount"`
	Remarks         string  `json:"remarks"`
}

func tradeResponse(t *models.TradeEntry) TradeResponse {
	return TradeResponse{
		ID:              t.ID,
		Date:            t.Date.Format("2006-01-02"),
		SrNo:            t.SrNo,
		BoardNo:         t.BoardNo,
		GaadiNo:         t.GaadiNo,
		Bhaav:           t.Bhaav,
		Weight:          t.Weight,
		Lungar:          t.Lungar,
		MandiTax:        t.MandiTax,
		Commission:      t.Commission,
		Majduri:         t.Majduri,
		FarmerID:        t.FarmerID,
		FarmerName:      t.Farmer.Name,
		PurchaserID:     t.PurchaserID,
		PurchaserName:   t.Purchaser.CompanyName,
		GrossAmount:     t.GrossAmount,
		TotalDeductions: t.TotalDeductions,
		NetAmount:       t.NetAmount,
		Remarks:         t.Remarks,
	}
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "farmer or purchaser not found")
	case errors.Is(err, ledger.ErrInvalidTrade):
		return fiber.NewError(fiber.StatusBadRequest, "bhaav, weight, farmer_id and purchaser_id must be set and positive")
	}
	var rerr *ledger.RecalcError
	if errors.As(err, &rerr) {
		return fiber.NewError(fiber.StatusInternalServerError, "trade saved but balance recalculation failed")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "could not process trade")
}

// POST /api/trades
func CreateTradeHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTradeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "bhaav, weight, farmer_id and purchaser_id must be set and positive")
		}

		in := ledger.TradeInput{
			SrNo:        body.SrNo,
			BoardNo:     body.BoardNo,
			GaadiNo:     body.GaadiNo,
			Bhaav:       body.Bhaav,
			Weight:      body.Weight,
			Lungar:      body.Lungar,
			MandiTax:    body.MandiTax,
			Commission:  body.Commission,
			Majduri:     body.Majduri,
			FarmerID:    body.FarmerID,
			PurchaserID: body.PurchaserID,
			Remarks:     body.Remarks,
		}
		if body.Date != "" {
			d, err := parseDate(body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			in.Date = d
		}

		trade, err := svc.CreateTrade(in)
		if err != nil {
			return mapLedgerError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(tradeResponse(trade))
	}
}

// GET /api/trades?farmer_id=&purchaser_id=&from=&to=
func ListTradesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.TradeEntry{}).
			Preload("Farmer").
			Preload("Purchaser")

		if v := c.Query("farmer_id"); v != "" {
			dbq = dbq.Where("farmer_id = ?", v)
		}
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

		var trades []models.TradeEntry
		if err := dbq.Order("date desc, id desc").Find(&trades).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list trades")
		}

		resp := make([]TradeResponse, 0, len(trades))
		for i := range trades {
			resp = append(resp, tradeResponse(&trades[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/trades/:id
func GetTradeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var trade models.TradeEntry
		if err := database.DB.
			Preload("Farmer").
			Preload("Purchaser").
			First(&trade, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trade not found")
		}
		return c.JSON(tradeResponse(&trade))
	}
}

// PUT /api/trades/:id
func UpdateTradeHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateTradeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		in := ledger.TradeUpdate{
			SrNo:        body.SrNo,
			BoardNo:     body.BoardNo,
			GaadiNo:     body.GaadiNo,
			Bhaav:       body.Bhaav,
			Weight:      body.Weight,
			Lungar:      body.Lungar,
			MandiTax:    body.MandiTax,
			Commission:  body.Commission,
			Majduri:     body.Majduri,
			FarmerID:    body.FarmerID,
			PurchaserID: body.PurchaserID,
			Remarks:     body.Remarks,
		}
		if body.Date != nil {
			d, err := parseDate(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			in.Date = &d
		}

		trade, err := svc.UpdateTrade(id, in)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "trade not found")
			}
			return mapLedgerError(err)
		}
		return c.JSON(tradeResponse(trade))
	}
}

// DELETE /api/trades/:id
// Deleting an already deleted trade succeeds with deleted=false.
func DeleteTradeHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		deleted, err := svc.DeleteTrade(id)
		if err != nil {
			return mapLedgerError(err)
		}
		return c.JSON(fiber.Map{
			"deleted": deleted,
			"id":      id,
		})
	}
}
