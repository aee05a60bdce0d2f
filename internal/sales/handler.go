package sales

import (
	"fmt"

	"fruitshop-backend/internal/audit"
	"fruitshop-backend/internal/auth"
	"fruitshop-backend/internal/models"
	"fruitshop-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSaleRequest struct {
	Date          string          `json:"date"` // "2025-12-09"
	Customer      string          `json:"customer"`
	CustomerID    string          `json:"customer_id"`
	Channel       string          `json:"channel"`
	ProductID     string          `json:"product_id"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
}

type SalesOrderResponse struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	Date          string          `json:"date"`
	Customer      string          `json:"customer"`
	CustomerID    string          `json:"customer_id"`
	Channel       string          `json:"channel"`
	ProductID     string          `json:"product_id"`
	Fruit         string          `json:"fruit"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
}

func toSalesOrderResponse(order models.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:            order.ID,
		StoreID:       order.StoreID,
		Date:          order.Date.Format("2006-01-02"),
		Customer:      order.Customer,
		CustomerID:    order.CustomerID,
		Channel:       order.Channel,
		ProductID:     order.ProductID,
		Fruit:         order.Fruit,
		QuantityKg:    order.QuantityKg,
		UnitPrice:     order.UnitPrice,
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
	}
}

// -------------------------
// Handlers
// -------------------------

// GET /api/stores/:storeId/sales
func ListSalesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("storeId")

		orders, err := svc.ListByStore(storeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış siparişleri listelenemedi")
		}

		resp := make([]SalesOrderResponse, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, toSalesOrderResponse(order))
		}

		return response.Success(c, resp)
	}
}

// POST /api/stores/:storeId/sales
func CreateSaleHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("storeId")

		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		order, err := svc.Create(storeID, CreateOrderInput{
			Date:          body.Date,
			Customer:      body.Customer,
			CustomerID:    body.CustomerID,
			Channel:       body.Channel,
			ProductID:     body.ProductID,
			QuantityKg:    body.QuantityKg,
			UnitPrice:     body.UnitPrice,
			PaymentMethod: body.PaymentMethod,
			Status:        body.Status,
		})
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			StoreID:     &order.StoreID,
			Actor:       auth.ActorName(c),
			EntityType:  "sales_order",
			EntityID:    order.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Satış: %s - %s kg %s", order.ID, order.QuantityKg.String(), order.Fruit),
			After:       order,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return response.Created(c, toSalesOrderResponse(order), "Satış siparişi oluşturuldu")
	}
}

// PATCH /api/sales/:id/settle
func SettleSaleHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		order, err := svc.Settle(id)
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			StoreID:     &order.StoreID,
			Actor:       auth.ActorName(c),
			EntityType:  "sales_order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Satış kapatıldı: %s", order.ID),
			After:       order,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return response.SuccessMsg(c, toSalesOrderResponse(order), "Satış kapatıldı")
	}
}
