package purchase

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

type PurchaseItemRequest struct {
	ProductID     string          `json:"product_id"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	BatchRequired bool            `json:"batch_required"`
}

type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id"`
	SupplierName  string                `json:"supplier_name"`
	Eta           string                `json:"eta"` // "2025-12-09"
	Status        string                `json:"status"`
	PaymentMethod string                `json:"payment_method"`
	Items         []PurchaseItemRequest `json:"items"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type PurchaseLineResponse struct {
	ProductID     string          `json:"product_id"`
	Fruit         string          `json:"fruit"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	BatchRequired bool            `json:"batch_required"`
}

type PurchaseOrderResponse struct {
	ID              string                 `json:"id"`
	StoreID         string                 `json:"store_id"`
	SupplierID      string                 `json:"supplier_id"`
	Status          string                 `json:"status"`
	ExpectedDate    string                 `json:"expected_date"`
	PaymentTermDays int                    `json:"payment_term_days"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	Lines           []PurchaseLineResponse `json:"lines"`
}

func toPurchaseOrderResponse(order models.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, PurchaseLineResponse{
			ProductID:     line.ProductID,
			Fruit:         line.Fruit,
			QuantityKg:    line.QuantityKg,
			UnitCost:      line.UnitCost,
			BatchRequired: line.BatchRequired,
		})
	}
	return PurchaseOrderResponse{
		ID:              order.ID,
		StoreID:         order.StoreID,
		SupplierID:      order.SupplierID,
		Status:          order.Status,
		ExpectedDate:    order.ExpectedDate.Format("2006-01-02"),
		PaymentTermDays: order.PaymentTermDays,
		TotalAmount:     order.TotalAmount,
		Lines:           lines,
	}
}

// -------------------------
// Handlers
// -------------------------

// GET /api/stores/:storeId/purchases
func ListPurchasesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("storeId")

		orders, err := svc.ListByStore(storeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alım siparişleri listelenemedi")
		}

		resp := make([]PurchaseOrderResponse, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, toPurchaseOrderResponse(order))
		}

		return response.Success(c, resp)
	}
}

// POST /api/stores/:storeId/purchases
func CreatePurchaseHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("storeId")

		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		items := make([]ItemInput, 0, len(body.Items))
		for _, item := range body.Items {
			items = append(items, ItemInput{
				ProductID:     item.ProductID,
				QuantityKg:    item.QuantityKg,
				UnitCost:      item.UnitCost,
				BatchRequired: item.BatchRequired,
			})
		}

		order, err := svc.Create(storeID, CreateOrderInput{
			SupplierID:    body.SupplierID,
			SupplierName:  body.SupplierName,
			ETA:           body.Eta,
			Status:        body.Status,
			PaymentMethod: body.PaymentMethod,
			Items:         items,
		})
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			StoreID:     &order.StoreID,
			Actor:       auth.ActorName(c),
			EntityType:  "purchase_order",
			EntityID:    order.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Alım siparişi: %s (%d kalem, %s TL)", order.ID, len(order.Lines), order.TotalAmount.String()),
			After:       order,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return response.Created(c, toPurchaseOrderResponse(order), "Alım siparişi oluşturuldu")
	}
}

// PATCH /api/purchases/:id
func UpdatePurchaseStatusHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		order, err := svc.UpdateStatus(id, body.Status)
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			StoreID:     &order.StoreID,
			Actor:       auth.ActorName(c),
			EntityType:  "purchase_order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Alım siparişi durumu: %s -> %s", order.ID, order.Status),
			After:       order,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return response.SuccessMsg(c, toPurchaseOrderResponse(order), "Durum güncellendi")
	}
}
