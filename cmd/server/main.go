package main

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"mandi-backend/internal/auth"
	"mandi-backend/internal/cashflow"
	"mandi-backend/internal/config"
	"mandi-backend/internal/dashboard"
	"mandi-backend/internal/database"
	"mandi-backend/internal/importer"
	"mandi-backend/internal/ledger"
	"mandi-backend/internal/party"
	"mandi-backend/internal/payment"
	"mandi-backend/internal/reports"
	"mandi-backend/internal/trade"
	"mandi-backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Must(logger.New())
	defer log.Sync()

	database.Init(cfg)
	svc := ledger.NewService(database.DB, log.Named("ledger"))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-owner", auth.RegisterOwnerHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Farmers
	protected.Post("/farmers", party.CreateFarmerHandler())
	protected.Get("/farmers", party.ListFarmersHandler())
	protected.Get("/farmers/:id", party.GetFarmerHandler())
	protected.Put("/farmers/:id", party.UpdateFarmerHandler(svc))
	protected.Post("/farmers/:id/recalc", party.RecalcFarmerHandler(svc))

	// Purchasers
	protected.Post("/purchasers", party.CreatePurchaserHandler())
	protected.Get("/purchasers", party.ListPurchasersHandler())
	protected.Get("/purchasers/:id", party.GetPurchaserHandler())
	protected.Put("/purchasers/:id", party.UpdatePurchaserHandler(svc))
	protected.Post("/purchasers/:id/recalc", party.RecalcPurchaserHandler(svc))

	// Trade entries
	protected.Post("/trades", trade.CreateTradeHandler(svc))
	protected.Get("/trades", trade.ListTradesHandler())
	protected.Get("/trades/:id", trade.GetTradeHandler())
	protected.Put("/trades/:id", trade.UpdateTradeHandler(svc))
	protected.Delete("/trades/:id", trade.DeleteTradeHandler(svc))

	// Payments
	protected.Post("/payments/farmer", payment.PayFarmerHandler(svc))
	protected.Get("/payments/farmer", payment.ListFarmerPaymentsHandler())
	protected.Post("/payments/purchaser", payment.ReceiveFromPurchaserHandler(svc))
	protected.Get("/payments/purchaser", payment.ListPurchaserReceiptsHandler())

	// Firm cash flow (manual entries)
	protected.Post("/firm-transactions", cashflow.CreateTransactionHandler())
	protected.Get("/firm-transactions", cashflow.ListTransactionsHandler())

	// Reports
	protected.Get("/reports/daily-summary", reports.DailySummaryHandler(svc))
	protected.Get("/reports/farmer-ledger/:id", reports.FarmerLedgerHandler(svc))
	protected.Get("/reports/purchaser-ledger/:id", reports.PurchaserLedgerHandler(svc))
	protected.Get("/reports/firm-cashflow", reports.FirmCashFlowHandler(svc))

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())

	// Legacy data import
	protected.Post("/import/legacy", importer.LegacyImportHandler(svc))

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
