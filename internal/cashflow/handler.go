package cashflow

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mandi-backend/internal/database"
	"mandi-backend/internal/models"
)

var validate = validator.New()

type CreateTransactionRequest struct {
	Date     string  `json:"date"` // YYYY-MM-DD, defaults to today
	Type     string  `json:"type" validate:"required,oneof=income expense transfer"`
	Account  string  `json:"account" validate:"required,oneof=cash bank"`
	Category string  `json:"category" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Notes    string  `json:"notes"`
}

type TransactionResponse struct {
	ID               uint    `json:"id"`
	Date             string  `json:"date"`
	Type             string  `json:"type"`
	Account          string  `json:"account"`
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	CounterpartyType string  `json:"counterparty_type"`
	CounterpartyID   *uint   `json:"counterparty_id,omitempty"`
	Notes            string  `json:"notes"`
}

func transactionResponse(t *models.FirmTransaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		Date:             t.Date.Format("2006-01-02"),
		Type:             string(t.Type),
		Account:          string(t.Account),
		Category:         t.Category,
		Amount:           t.Amount,
		CounterpartyType: string(t.CounterpartyType),
		CounterpartyID:   t.CounterpartyID,
		Notes:            t.Notes,
	}
}

// POST /api/firm-transactions
// Manual entries only: diesel, rent, interest and the like. Payment and
// receipt mirrors are written by the ledger, never through here.
func CreateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Category = strings.TrimSpace(body.Category)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "type, account, category and a positive amount are required")
		}

		txn := models.FirmTransaction{
			Date:             time.Now(),
			Type:             models.FirmTransactionType(body.Type),
			Account:          models.FirmAccount(body.Account),
			Category:         body.Category,
			Amount:           body.Amount,
			CounterpartyType: models.CounterpartyOther,
			Notes:            strings.TrimSpace(body.Notes),
		}
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			txn.Date = d
		}

		if err := database.DB.Create(&txn).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not save transaction")
		}
		return c.Status(fiber.StatusCreated).JSON(transactionResponse(&txn))
	}
}

// GET /api/firm-transactions?type=&account=&category=&from=&to=
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.FirmTransaction{})

		if v := c.Query("type"); v != "" {
			dbq = dbq.Where("type = ?", v)
		}
		if v := c.Query("account"); v != "" {
			dbq = dbq.Where("account = ?", v)
		}
		if v := c.Query("category"); v != "" {
			dbq = dbq.Where("category = ?", v)
		}
		if v := c.Query("from"); v != "" {
			d, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
			}
			dbq = dbq.Where("date >= ?", d)
		}
		if v := c.Query("to"); v != "" {
			d, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
			}
			dbq = dbq.Where("date <= ?", d)
		}

		var txns []models.FirmTransaction
		if err := dbq.Order("date desc, id desc").Find(&txns).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list transactions")
		}

		resp := make([]TransactionResponse, 0, len(txns))
		for i := range txns {
			resp = append(resp, transactionResponse(&txns[i]))
		}
		return c.JSON(resp)
	}
}
