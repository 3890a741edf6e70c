package reports

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"mandi-backend/internal/ledger"
)

func parseIDParam(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

// parseRange reads from/to query params. The "to" day is included whole, so
// rows timestamped during that day are not cut off at midnight.
func parseRange(c *fiber.Ctx) (ledger.DateRange, error) {
	var r ledger.DateRange

	if v := c.Query("from"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return r, fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		r.From = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return r, fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		end := d.AddDate(0, 0, 1).Add(-time.Second)
		r.To = &end
	}
	return r, nil
}

// GET /api/reports/daily-summary?from=&to=
func DailySummaryHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := parseRange(c)
		if err != nil {
			return err
		}

		rows, err := svc.DailySummary(r)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build daily summary")
		}
		return c.JSON(fiber.Map{"days": rows})
	}
}

// GET /api/reports/farmer-ledger/:id?from=&to=
func FarmerLedgerHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		r, err := parseRange(c)
		if err != nil {
			return err
		}

		result, err := svc.FarmerLedger(id, r)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "farmer not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not build farmer ledger")
		}
		return c.JSON(result)
	}
}

// GET /api/reports/purchaser-ledger/:id?from=&to=
func PurchaserLedgerHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		r, err := parseRange(c)
		if err != nil {
			return err
		}

		result, err := svc.PurchaserLedger(id, r)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "purchaser not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not build purchaser ledger")
		}
		return c.JSON(result)
	}
}

// GET /api/reports/firm-cashflow?from=&to=
func FirmCashFlowHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := parseRange(c)
		if err != nil {
			return err
		}

		result, err := svc.FirmCashFlow(r)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build cash flow report")
		}
		return c.JSON(result)
	}
}
