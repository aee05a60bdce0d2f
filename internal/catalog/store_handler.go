package catalog

import (
	"strings"

	"fruitshop-backend/internal/database"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/models"
	"fruitshop-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type StoreResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// GET /api/stores
func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stores []models.Store
		if err := database.DB.Order("name asc").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağazalar listelenemedi")
		}

		resp := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			resp = append(resp, StoreResponse{ID: s.ID, Name: s.Name, Address: s.Address, Phone: s.Phone})
		}

		return response.Success(c, resp)
	}
}

// POST /api/stores
func CreateStoreHandler(ids idgen.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}

		store := models.Store{
			ID:      ids.NewID("store"),
			Name:    strings.TrimSpace(body.Name),
			Address: strings.TrimSpace(body.Address),
			Phone:   strings.TrimSpace(body.Phone),
		}

		if err := database.DB.Create(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza kaydedilemedi")
		}

		return response.Created(c, StoreResponse{ID: store.ID, Name: store.Name, Address: store.Address, Phone: store.Phone}, "Mağaza oluşturuldu")
	}
}
