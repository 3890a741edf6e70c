package party

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mandi-backend/internal/database"
	"mandi-backend/internal/ledger"
	"mandi-backend/internal/models"
)

type CreatePurchaserRequest struct {
	CompanyName    string  `json:"company_name" validate:"required"`
	ContactPerson  string  `json:"contact_person"`
	Mobile         string  `json:"mobile"`
	Email          string  `json:"email"`
	City           string  `json:"city"`
	GSTNumber      string  `json:"gst_number"`
	CreditLimit    float64 `json:"credit_limit"`
	Notes          string  `json:"notes"`
	OpeningBalance float64 `json:"opening_balance"`
}

type UpdatePurchaserRequest struct {
	CompanyName    *string  `json:"company_name"`
	ContactPerson  *string  `json:"contact_person"`
	Mobile         *string  `json:"mobile"`
	Email          *string  `json:"email"`
	City           *string  `json:"city"`
	GSTNumber      *string  `json:"gst_number"`
	CreditLimit    *float64 `json:"credit_limit"`
	Notes          *string  `json:"notes"`
	OpeningBalance *float64 `json:"opening_balance"`
	IsActive       *bool    `json:"is_active"`
}

type PurchaserResponse struct {
	ID             uint    `json:"id"`
	CompanyName    string  `json:"company_name"`
	ContactPerson  string  `json:"contact_person"`
	Mobile         string  `json:"mobile"`
	Email          string  `json:"email"`
	City           string  `json:"city"`
	GSTNumber      string  `json:"gst_number"`
	CreditLimit    float64 `json:"credit_limit"`
	Notes          string  `json:"notes"`
	OpeningBalance float64 `json:"opening_balance"`
	CurrentBalance float64 `json:"current_balance"`
	IsActive       bool    `json:"is_active"`
}

func purchaserResponse(p *models.Purchaser) PurchaserResponse {
	return PurchaserResponse{
		ID:             p.ID,
		CompanyName:    p.CompanyName,
		ContactPerson:  p.ContactPerson,
		Mobile:         p.Mobile,
		Email:          p.Email,
		City:           p.City,
		GSTNumber:      p.GSTNumber,
		CreditLimit:    p.CreditLimit,
		Notes:          p.Notes,
		OpeningBalance: p.OpeningBalance,
		CurrentBalance: p.CurrentBalance,
		IsActive:       p.IsActive,
	}
}

// POST /api/purchasers
func CreatePurchaserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.CompanyName = strings.TrimSpace(body.CompanyName)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "company_name is required")
		}

		purchaser := models.Purchaser{
			CompanyName:    body.CompanyName,
			ContactPerson:  strings.TrimSpace(body.ContactPerson),
			Mobile:         strings.TrimSpace(body.Mobile),
			Email:          strings.TrimSpace(strings.ToLower(body.Email)),
			City:           strings.TrimSpace(body.City),
			GSTNumber:      strings.TrimSpace(strings.ToUpper(body.GSTNumber)),
			CreditLimit:    body.CreditLimit,
			Notes:          strings.TrimSpace(body.Notes),
			OpeningBalance: body.OpeningBalance,
			CurrentBalance: body.OpeningBalance,
			IsActive:       true,
		}

		if err := database.DB.Create(&purchaser).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not save purchaser")
		}

		return c.Status(fiber.StatusCreated).JSON(purchaserResponse(&purchaser))
	}
}

// GET /api/purchasers?q=...&active=true
func ListPurchasersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Purchaser{})

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("company_name LIKE ?", "%"+q+"%")
		}
		if active := c.Query("active"); active != "" {
			dbq = dbq.Where("is_active = ?", active == "true")
		}

		var purchasers []models.Purchaser
		if err := dbq.Order("company_name asc").Find(&purchasers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list purchasers")
		}

		resp := make([]PurchaserResponse, 0, len(purchasers))
		for i := range purchasers {
			resp = append(resp, purchaserResponse(&purchasers[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/purchasers/:id
func GetPurchaserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var purchaser models.Purchaser
		if err := database.DB.First(&purchaser, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "purchaser not found")
		}
		return c.JSON(purchaserResponse(&purchaser))
	}
}

// PUT /api/purchasers/:id
func UpdatePurchaserHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var purchaser models.Purchaser
		if err := database.DB.First(&purchaser, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "purchaser not found")
		}

		var body UpdatePurchaserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.CompanyName != nil {
			name := strings.TrimSpace(*body.CompanyName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "company_name cannot be empty")
			}
			purchaser.CompanyName = name
		}
		if body.ContactPerson != nil {
			purchaser.ContactPerson = strings.TrimSpace(*body.ContactPerson)
		}
		if body.Mobile != nil {
			purchaser.Mobile = strings.TrimSpace(*body.Mobile)
		}
		if body.Email != nil {
			purchaser.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.City != nil {
			purchaser.City = strings.TrimSpace(*body.City)
		}
		if body.GSTNumber != nil {
			purchaser.GSTNumber = strings.TrimSpace(strings.ToUpper(*body.GSTNumber))
		}
		if body.CreditLimit != nil {
			purchaser.CreditLimit = *body.CreditLimit
		}
		if body.Notes != nil {
			purchaser.Notes = strings.TrimSpace(*body.Notes)
		}
		if body.IsActive != nil {
			purchaser.IsActive = *body.IsActive
		}

		openingChanged := false
		if body.OpeningBalance != nil && *body.OpeningBalance != purchaser.OpeningBalance {
			purchaser.OpeningBalance = *body.OpeningBalance
			openingChanged = true
		}

		if err := database.DB.Save(&purchaser).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update purchaser")
		}

		if openingChanged {
			if _, err := svc.RecalcPurchaserBalance(purchaser.ID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "purchaser saved but balance recalculation failed")
			}
			database.DB.First(&purchaser, "id = ?", purchaser.ID)
		}

		return c.JSON(purchaserResponse(&purchaser))
	}
}

// POST /api/purchasers/:id/recalc
func RecalcPurchaserHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		balance, err := svc.RecalcPurchaserBalance(id)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "purchaser not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "balance recalculation failed")
		}

		return c.JSON(fiber.Map{
			"id":              id,
			"current_balance": balance,
		})
	}
}
