package partner

import (
	"strings"

	"fruitshop-backend/internal/models"
	"fruitshop-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSupplierRequest struct {
	Name            string `json:"name"`
	Contact         string `json:"contact"`
	Phone           string `json:"phone"`
	PaymentTermDays int    `json:"payment_term_days"`
	PaymentMethod   string `json:"payment_method"`
}

type SupplierResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Contact           string          `json:"contact"`
	Phone             string          `json:"phone"`
	CreditLevel       string          `json:"credit_level"`
	PaymentTermDays   int             `json:"payment_term_days"`
	PaymentMethod     string          `json:"payment_method"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            string          `json:"status"`
}

func toSupplierResponse(p models.Partner) SupplierResponse {
	return SupplierResponse{
		ID:                p.ID,
		Name:              p.Name,
		Contact:           p.Contact,
		Phone:             p.Phone,
		CreditLevel:       p.CreditLevel,
		PaymentTermDays:   p.PaymentTermDays,
		PaymentMethod:     string(p.PaymentMethod),
		OutstandingAmount: p.OutstandingAmount,
		Status:            p.Status,
	}
}

// -------------------------
// Handlers
// -------------------------

// GET /api/partners/suppliers
func ListSuppliersHandler(r *Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		suppliers, err := r.ListSuppliers()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		resp := make([]SupplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			resp = append(resp, toSupplierResponse(s))
		}

		return response.Success(c, resp)
	}
}

// POST /api/partners/suppliers
// Resolver'ın yarat-ya-da-bul yolunu kullanır: aynı isimle ikinci kayıt açılmaz.
func CreateSupplierHandler(r *Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}

		supplier, err := r.ResolveSupplier(
			SupplierRef{Name: body.Name},
			SupplierDefaults{PaymentMethod: models.PaymentMethod(body.PaymentMethod)},
		)
		if err != nil {
			return err
		}

		// İrtibat bilgileri sadece yeni açılan kayıtta boştur, doldur
		updated := false
		if supplier.Contact == "" && body.Contact != "" {
			supplier.Contact = strings.TrimSpace(body.Contact)
			updated = true
		}
		if supplier.Phone == "" && body.Phone != "" {
			supplier.Phone = strings.TrimSpace(body.Phone)
			updated = true
		}
		if body.PaymentTermDays > 0 && supplier.PaymentTermDays != body.PaymentTermDays {
			supplier.PaymentTermDays = body.PaymentTermDays
			updated = true
		}
		if updated {
			if err := r.db.Save(&supplier).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi kaydedilemedi")
			}
		}

		return response.Created(c, toSupplierResponse(supplier), "Tedarikçi kaydedildi")
	}
}
