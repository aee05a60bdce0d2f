package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Adjustment: Stok düzeltme kaydı. Oluşturulduktan sonra asla güncellenmez
// veya silinmez; DeltaKg talep edilen ham değeri tutar, stoğa uygulanan
// (sıfıra kırpılmış) etkiyi değil.
type Adjustment struct {
	ID          string `gorm:"primaryKey;size:40"`
	InventoryID string `gorm:"size:60;index;not null"`
	DeltaKg     decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Reason      string          `gorm:"size:255;not null"`
	CreatedBy   string          `gorm:"size:100;not null"`
	CreatedAt   time.Time
}
