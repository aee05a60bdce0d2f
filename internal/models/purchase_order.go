package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alım siparişi durumları. Serbest string olarak saklanır, geçiş tablosu
// uygulanmaz.
const (
	PurchaseStatusDraft      = "draft"
	PurchaseStatusSubmitted  = "submitted"
	PurchaseStatusReceiving  = "receiving"
	PurchaseStatusReceived   = "received"
	PurchaseStatusReconciled = "reconciled"
	PurchaseStatusPaid       = "paid"
)

type PurchaseOrder struct {
	ID              string `gorm:"primaryKey;size:40"`
	StoreID         string `gorm:"size:40;index;not null"`
	SupplierID      string `gorm:"size:40;index;not null"`
	Status          string `gorm:"size:20;not null;default:draft"`
	ExpectedDate    time.Time `gorm:"index;not null"`
	PaymentTermDays int       `gorm:"not null;default:7"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Lines           []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID"`
	Timeline        []TimelineEvent     `gorm:"foreignKey:PurchaseOrderID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PurchaseOrderLine: sipariş kalemi. Oluşturulduktan sonra değiştirilmez.
type PurchaseOrderLine struct {
	ID              uint   `gorm:"primaryKey"`
	PurchaseOrderID string `gorm:"size:40;index;not null"`
	ProductID       string `gorm:"size:40;not null"`
	Fruit           string `gorm:"size:100"` // Ürün adı (denormalize)
	QuantityKg      decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	UnitCost        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	BatchRequired   bool            `gorm:"not null;default:false"`
}

type TimelineEvent struct {
	ID              uint   `gorm:"primaryKey"`
	PurchaseOrderID string `gorm:"size:40;index;not null"`
	Time            string `gorm:"size:40;not null"`
}
