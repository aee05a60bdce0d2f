package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PartnerType string

const (
	PartnerTypeSupplier PartnerType = "supplier"
	PartnerTypeCustomer PartnerType = "customer"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodMobile   PaymentMethod = "mobile"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile, PaymentMethodTransfer:
		return true
	}
	return false
}

// ParsePaymentMethod: serbest metni bilinen ödeme yöntemlerine çözer.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

// Partner - Tedarikçi veya müşteri karşı tarafı
type Partner struct {
	ID                string        `gorm:"primaryKey;size:40"`
	Type              PartnerType   `gorm:"size:20;index;not null"`
	Name              string        `gorm:"size:200;not null;index"`
	Contact           string        `gorm:"size:100"` // İrtibat kişisi (opsiyonel)
	Phone             string        `gorm:"size:50"`
	CreditLevel       string        `gorm:"size:10;not null;default:A"` // A / B / C
	PaymentTermDays   int           `gorm:"not null;default:30"`
	PaymentMethod     PaymentMethod `gorm:"size:20;not null;default:transfer"`
	OutstandingAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status            string          `gorm:"size:20;not null;default:active"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
