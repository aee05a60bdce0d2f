package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord: (mağaza, ürün) başına stok ve maliyet kaydı.
// OnHandKg asla negatif olmaz; UnitCost sadece alım uygulamasıyla değişir
// (ağırlıklı ortalama), satış ve düzeltmeler maliyete dokunmaz.
type InventoryRecord struct {
	ID             string `gorm:"primaryKey;size:60"`
	StoreID        string `gorm:"size:40;index;not null;uniqueIndex:idx_store_product"`
	ProductID      string `gorm:"size:40;not null;uniqueIndex:idx_store_product"`
	Fruit          string `gorm:"size:100"` // Ürün adı (denormalize, listelerde göstermek için)
	OnHandKg       decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	UnitCost       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ReorderLevelKg decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
