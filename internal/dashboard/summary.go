package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"mandi-backend/internal/database"
	"mandi-backend/internal/models"
)

type SummaryResponse struct {
	TotalFarmersOwed      float64 `json:"total_farmers_owed"`
	TotalPurchasersOwe    float64 `json:"total_purchasers_owe"`
	NetBalance            float64 `json:"net_balance"`
	TotalCommissionEarned float64 `json:"total_commission_earned"`
	ActiveFarmers         int64   `json:"active_farmers"`
	ActivePurchasers      int64   `json:"active_purchasers"`
	TotalTrades           int64   `json:"total_trades"`
}

// GET /api/dashboard/summary
// Active counts mean parties with an outstanding balance, not the is_active
// flag.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var resp SummaryResponse

		if err := database.DB.Model(&models.Farmer{}).
			Select("COALESCE(SUM(current_balance), 0)").
			Scan(&resp.TotalFarmersOwed).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build summary")
		}
		if err := database.DB.Model(&models.Purchaser{}).
			Select("COALESCE(SUM(current_balance), 0)").
			Scan(&resp.TotalPurchasersOwe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build summary")
		}
		if err := database.DB.Model(&models.TradeEntry{}).
			Select("COALESCE(SUM(total_deductions), 0)").
			Scan(&resp.TotalCommissionEarned).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build summary")
		}

		database.DB.Model(&models.Farmer{}).
			Where("current_balance > 0").
			Count(&resp.ActiveFarmers)
		database.DB.Model(&models.Purchaser{}).
			Where("current_balance > 0").
			Count(&resp.ActivePurchasers)
		database.DB.Model(&models.TradeEntry{}).Count(&resp.TotalTrades)

		resp.NetBalance = resp.TotalPurchasersOwe - resp.TotalFarmersOwed

		return c.JSON(resp)
	}
}
