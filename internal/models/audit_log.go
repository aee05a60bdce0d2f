package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi mağaza?
	StoreID *string `gorm:"size:40;index" json:"store_id"`

	// İşlemi yapan (kullanıcı adı veya "sistem")
	Actor string `gorm:"size:100" json:"actor"`

	// Hangi entity? (ör: "purchase_order", "sales_order", "adjustment")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:60;index" json:"entity_id"`

	Action AuditAction `gorm:"size:20" json:"action"`

	// Küçük bir özet
	Description string `gorm:"size:255" json:"description"`

	// İşlem sonrası hal (JSON)
	AfterData string `gorm:"type:jsonb" json:"after_data"`
}
