package catalog

import (
	"strings"

	"fruitshop-backend/internal/database"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/models"
	"fruitshop-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type CreateProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Barcode  string `json:"barcode"`
}

type ProductResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Barcode  string `json:"barcode"`
	Status   string `json:"status"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Unit:     p.Unit,
		Barcode:  p.Barcode,
		Status:   p.Status,
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}

		return response.Success(c, resp)
	}
}

// POST /api/products
func CreateProductHandler(ids idgen.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}

		unit := strings.TrimSpace(body.Unit)
		if unit == "" {
			unit = "kg"
		}

		product := models.Product{
			ID:       ids.NewID("prod"),
			Name:     strings.TrimSpace(body.Name),
			Category: strings.TrimSpace(body.Category),
			Unit:     unit,
			Barcode:  strings.TrimSpace(body.Barcode),
			Status:   "active",
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün kaydedilemedi")
		}

		return response.Created(c, toProductResponse(product), "Ürün oluşturuldu")
	}
}
