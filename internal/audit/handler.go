package audit

import (
	"fruitshop-backend/internal/database"
	"fruitshop-backend/internal/models"
	"fruitshop-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?store_id=...&entity_type=...
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.AuditLog{}).Order("created_at DESC").Limit(200)

		if storeID := c.Query("store_id"); storeID != "" {
			q = q.Where("store_id = ?", storeID)
		}
		if entityType := c.Query("entity_type"); entityType != "" {
			q = q.Where("entity_type = ?", entityType)
		}

		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit kayıtları listelenemedi")
		}

		return response.Success(c, logs)
	}
}
