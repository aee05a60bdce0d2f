package ledger

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

type UpdateReorderLevelRequest struct {
	Level decimal.Decimal `json:"level"`
}

type CreateAdjustmentRequest struct {
	DeltaKg   decimal.Decimal `json:"delta_kg"`
	Reason    string          `json:"reason"`
	CreatedBy string          `json:"created_by"`
}

type InventoryResponse struct {
	ID             string          `json:"id"`
	StoreID        string          `json:"store_id"`
	ProductID      string          `json:"product_id"`
	Fruit          string          `json:"fruit"`
	OnHandKg       decimal.Decimal `json:"on_hand_kg"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ReorderLevelKg decimal.Decimal `json:"reorder_level_kg"`
}

type AdjustmentResponse struct {
	ID          string          `json:"id"`
	InventoryID string          `json:"inventory_id"`
	DeltaKg     decimal.Decimal `json:"delta_kg"`
	Reason      string          `json:"reason"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
}

func toInventoryResponse(rec models.InventoryRecord) InventoryResponse {
	return InventoryResponse{
		ID:             rec.ID,
		StoreID:        rec.StoreID,
		ProductID:      rec.ProductID,
		Fruit:          rec.Fruit,
		OnHandKg:       rec.OnHandKg,
		UnitCost:       rec.UnitCost,
		UnitPrice:      rec.UnitPrice,
		ReorderLevelKg: rec.ReorderLevelKg,
	}
}

func toAdjustmentResponse(adj models.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:          adj.ID,
		InventoryID: adj.InventoryID,
		DeltaKg:     adj.DeltaKg,
		Reason:      adj.Reason,
		CreatedBy:   adj.CreatedBy,
		CreatedAt:   adj.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// -------------------------
// Handlers
// -------------------------

// GET /api/stores/:storeId/inventory
func ListInventoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("storeId")

		records, err := svc.ListByStore(storeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kayıtları listelenemedi")
		}

		resp := make([]InventoryResponse, 0, len(records))
		for _, rec := range records {
			resp = append(resp, toInventoryResponse(rec))
		}

		return response.Success(c, resp)
	}
}

// PATCH /api/inventory/:id/reorder-level
func UpdateReorderLevelHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateReorderLevelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		rec, err := svc.UpdateReorderLevel(id, body.Level)
		if err != nil {
			return err
		}

		return response.SuccessMsg(c, toInventoryResponse(rec), "Kritik seviye güncellendi")
	}
}

// POST /api/inventory/:id/adjustments
func CreateAdjustmentHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body CreateAdjustmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		createdBy := body.CreatedBy
		if createdBy == "" {
			createdBy = auth.ActorName(c)
		}

		adj, err := svc.CreateAdjustment(id, body.DeltaKg, body.Reason, createdBy)
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			Actor:       adj.CreatedBy,
			EntityType:  "adjustment",
			EntityID:    adj.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Stok düzeltmesi: %s (%s kg, %s)", adj.InventoryID, adj.DeltaKg.String(), adj.Reason),
			After:       adj,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return response.Created(c, toAdjustmentResponse(adj), "Düzeltme kaydedildi")
	}
}

// GET /api/inventory/:id/adjustments
func ListAdjustmentsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		adjustments, err := svc.ListAdjustments(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Düzeltme kayıtları listelenemedi")
		}

		resp := make([]AdjustmentResponse, 0, len(adjustments))
		for _, adj := range adjustments {
			resp = append(resp, toAdjustmentResponse(adj))
		}

		return response.Success(c, resp)
	}
}
