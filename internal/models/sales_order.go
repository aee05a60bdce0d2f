package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesStatus string

const (
	SalesStatusPending SalesStatus = "pending"
	SalesStatusSettled SalesStatus = "settled"
)

type SalesOrder struct {
	ID            string `gorm:"primaryKey;size:40"`
	StoreID       string `gorm:"size:40;index;not null"`
	Date          time.Time `gorm:"index;not null"`
	Customer      string    `gorm:"size:200"` // Müşteri etiketi (serbest metin)
	CustomerID    string    `gorm:"size:40"`
	Channel       string    `gorm:"size:50"`
	ProductID     string    `gorm:"size:40;index;not null"`
	Fruit         string    `gorm:"size:100"`
	QuantityKg    decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null;default:cash"`
	Status        SalesStatus     `gorm:"size:20;not null;default:pending"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
