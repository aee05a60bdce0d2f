package main

import (
	"log"
	"strings"

	"fruitshop-backend/internal/audit"
	"fruitshop-backend/internal/auth"
	"fruitshop-backend/internal/catalog"
	"fruitshop-backend/internal/config"
	"fruitshop-backend/internal/database"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/ledger"
	"fruitshop-backend/internal/models"
	"fruitshop-backend/internal/partner"
	"fruitshop-backend/internal/purchase"
	"fruitshop-backend/internal/response"
	"fruitshop-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/shopspring/decimal"
)

func main() {
	// Miktar ve tutarlar JSON'da sayı olarak gitsin ("12.5", değil 12.5)
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	database.Init(cfg)
	database.Seed(database.DB)

	ids := idgen.New()
	ledgerSvc := ledger.New(database.DB, ids)
	partnerResolver := partner.NewResolver(database.DB, ids)
	purchaseSvc := purchase.New(database.DB, ids, ledgerSvc, partnerResolver)
	salesSvc := sales.New(database.DB, ids, ledgerSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: response.ErrorHandler,
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Mağaza ve ürün kataloğu
	protected.Get("/stores", catalog.ListStoresHandler())
	protected.Get("/products", catalog.ListProductsHandler())

	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/stores", catalog.CreateStoreHandler(ids))
	adminRoutes.Post("/products", catalog.CreateProductHandler(ids))

	// Stok defteri
	protected.Get("/stores/:storeId/inventory", ledger.ListInventoryHandler(ledgerSvc))
	protected.Get("/stores/:storeId/inventory/export", ledger.ExportInventoryHandler(ledgerSvc))
	protected.Patch("/inventory/:id/reorder-level", ledger.UpdateReorderLevelHandler(ledgerSvc))
	protected.Post("/inventory/:id/adjustments", ledger.CreateAdjustmentHandler(ledgerSvc))
	protected.Get("/inventory/:id/adjustments", ledger.ListAdjustmentsHandler(ledgerSvc))

	// Alım siparişleri
	protected.Get("/stores/:storeId/purchases", purchase.ListPurchasesHandler(purchaseSvc))
	protected.Post("/stores/:storeId/purchases", purchase.CreatePurchaseHandler(purchaseSvc))
	protected.Patch("/purchases/:id", purchase.UpdatePurchaseStatusHandler(purchaseSvc))

	// Satış siparişleri
	protected.Get("/stores/:storeId/sales", sales.ListSalesHandler(salesSvc))
	protected.Post("/stores/:storeId/sales", sales.CreateSaleHandler(salesSvc))
	protected.Patch("/sales/:id/settle", sales.SettleSaleHandler(salesSvc))

	// Tedarikçiler
	protected.Get("/partners/suppliers", partner.ListSuppliersHandler(partnerResolver))
	protected.Post("/partners/suppliers", partner.CreateSupplierHandler(partnerResolver))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
