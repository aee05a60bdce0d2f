package audit

import (
	"encoding/json"
	"fmt"

	"fruitshop-backend/internal/database"
	"fruitshop-backend/internal/models"
)

type LogOptions struct {
	StoreID     *string
	Actor       string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	afterStr := "null"
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	actor := opts.Actor
	if actor == "" {
		actor = "sistem"
	}

	entry := models.AuditLog{
		StoreID:     opts.StoreID,
		Actor:       actor,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}
