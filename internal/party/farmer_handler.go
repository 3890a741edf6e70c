package party

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mandi-backend/internal/database"
	"mandi-backend/internal/ledger"
	"mandi-backend/internal/models"
)

var validate = validator.New()

// -------------------------
// Request/Response Types
// -------------------------

type CreateFarmerRequest struct {
	Name           string  `json:"name" validate:"required"`
	Mobile         string  `json:"mobile"`
	AltMobile      string  `json:"alt_mobile"`
	Village        string  `json:"village"`
	District       string  `json:"district"`
	BankName       string  `json:"bank_name"`
	AccountNumber  string  `json:"account_number"`
	IFSC           string  `json:"ifsc"`
	Notes          string  `json:"notes"`
	OpeningBalance float64 `json:"opening_balance"`
}

type UpdateFarmerRequest struct {
	Name           *string  `json:"name"`
	Mobile         *string  `json:"mobile"`
	AltMobile      *string  `json:"alt_mobile"`
	Village        *string  `json:"village"`
	District       *string  `json:"district"`
	BankName       *string  `json:"bank_name"`
	AccountNumber  *string  `json:"account_number"`
	IFSC           *string  `json:"ifsc"`
	Notes          *string  `json:"notes"`
	OpeningBalance *float64 `json:"opening_balance"`
	IsActive       *bool    `json:"is_active"`
}

type FarmerResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Mobile         string  `json:"mobile"`
	AltMobile      string  `json:"alt_mobile"`
	Village        string  `json:"village"`
	District       string  `json:"district"`
	BankName       string  `json:"bank_name"`
	AccountNumber  string  `json:"account_number"`
	IFSC           string  `json:"ifsc"`
	Notes          string  `json:"notes"`
	OpeningBalance float64 `json:"opening_balance"`
	CurrentBalance float64 `json:"current_balance"`
	IsActive       bool    `json:"is_active"`
}

func farmerResponse(f *models.Farmer) FarmerResponse {
	return FarmerResponse{
		ID:             f.ID,
		Name:           f.Name,
		Mobile:         f.Mobile,
		AltMobile:      f.AltMobile,
		Village:        f.Village,
		District:       f.District,
		BankName:       f.BankName,
		AccountNumber:  f.AccountNumber,
		IFSC:           f.IFSC,
		Notes:          f.Notes,
		OpeningBalance: f.OpeningBalance,
		CurrentBalance: f.CurrentBalance,
		IsActive:       f.IsActive,
	}
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

// -------------------------
// Farmer CRUD
// -------------------------

// POST /api/farmers
func CreateFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateFarmerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		farmer := models.Farmer{
			Name:           body.Name,
			Mobile:         strings.TrimSpace(body.Mobile),
			AltMobile:      strings.TrimSpace(body.AltMobile),
			Village:        strings.TrimSpace(body.Village),
			District:       strings.TrimSpace(body.District),
			BankName:       strings.TrimSpace(body.BankName),
			AccountNumber:  strings.TrimSpace(body.AccountNumber),
			IFSC:           strings.TrimSpace(body.IFSC),
			Notes:          strings.TrimSpace(body.Notes),
			OpeningBalance: body.OpeningBalance,
			CurrentBalance: body.OpeningBalance, // no trades or payments yet
			IsActive:       true,
		}

		if err := database.DB.Create(&farmer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not save farmer")
		}

		return c.Status(fiber.StatusCreated).JSON(farmerResponse(&farmer))
	}
}

// GET /api/farmers?q=...&active=true
func ListFarmersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Farmer{})

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("name LIKE ?", "%"+q+"%")
		}
		if active := c.Query("active"); active != "" {
			dbq = dbq.Where("is_active = ?", active == "true")
		}

		var farmers []models.Farmer
		if err := dbq.Order("name asc").Find(&farmers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list farmers")
		}

		resp := make([]FarmerResponse, 0, len(farmers))
		for i := range farmers {
			resp = append(resp, farmerResponse(&farmers[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/farmers/:id
func GetFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var farmer models.Farmer
		if err := database.DB.First(&farmer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "farmer not found")
		}
		return c.JSON(farmerResponse(&farmer))
	}
}

// PUT /api/farmers/:id
func UpdateFarmerHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var farmer models.Farmer
		if err := database.DB.First(&farmer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "farmer not found")
		}

		var body UpdateFarmerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			farmer.Name = name
		}
		if body.Mobile != nil {
			farmer.Mobile = strings.TrimSpace(*body.Mobile)
		}
		if body.AltMobile != nil {
			farmer.AltMobile = strings.TrimSpace(*body.AltMobile)
		}
		if body.Village != nil {
			farmer.Village = strings.TrimSpace(*body.Village)
		}
		if body.District != nil {
			farmer.District = strings.TrimSpace(*body.District)
		}
		if body.BankName != nil {
			farmer.BankName = strings.TrimSpace(*body.BankName)
		}
		if body.AccountNumber != nil {
			farmer.AccountNumber = strings.TrimSpace(*body.AccountNumber)
		}
		if body.IFSC != nil {
			farmer.IFSC = strings.TrimSpace(*body.IFSC)
		}
		if body.Notes != nil {
			farmer.Notes = strings.TrimSpace(*body.Notes)
		}
		if body.IsActive != nil {
			farmer.IsActive = *body.IsActive
		}

		openingChanged := false
		if body.OpeningBalance != nil && *body.OpeningBalance != farmer.OpeningBalance {
			farmer.OpeningBalance = *body.OpeningBalance
			openingChanged = true
		}

		if err := database.DB.Save(&farmer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update farmer")
		}

		// Opening balance feeds the derived balance; recalculate eagerly.
		if openingChanged {
			if _, err := svc.RecalcFarmerBalance(farmer.ID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "farmer saved but balance recalculation failed")
			}
			database.DB.First(&farmer, "id = ?", farmer.ID)
		}

		return c.JSON(farmerResponse(&farmer))
	}
}

// POST /api/farmers/:id/recalc
func RecalcFarmerHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		balance, err := svc.RecalcFarmerBalance(id)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "farmer not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "balance recalculation failed")
		}

		return c.JSON(fiber.Map{
			"id":              id,
			"current_balance": balance,
		})
	}
}
