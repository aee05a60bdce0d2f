package sales

import (
	"errors"
	"strings"
	"time"

	"fruitshop-backend/internal/apperr"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/ledger"
	"fruitshop-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service: satış siparişi akışı. Siparişi kaydeder, sonra defterden düşer.
type Service struct {
	db     *gorm.DB
	ids    idgen.Generator
	ledger *ledger.Service
}

func New(db *gorm.DB, ids idgen.Generator, lg *ledger.Service) *Service {
	return &Service{db: db, ids: ids, ledger: lg}
}

type CreateOrderInput struct {
	Date          string // "2006-01-02", boşsa bugün
	Customer      string
	CustomerID    string
	Channel       string
	ProductID     string
	QuantityKg    decimal.Decimal
	UnitPrice     decimal.Decimal
	PaymentMethod string // boşsa cash
	Status        string // sadece "settled" istenirse settled, yoksa pending
}

func (s *Service) ListByStore(storeID string) ([]models.SalesOrder, error) {
	var orders []models.SalesOrder
	if err := s.db.Where("store_id = ?", storeID).
		Order("date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) Create(storeID string, in CreateOrderInput) (models.SalesOrder, error) {
	if in.ProductID == "" {
		return models.SalesOrder{}, apperr.Validation("product_id zorunlu")
	}
	if in.QuantityKg.LessThanOrEqual(decimal.Zero) {
		return models.SalesOrder{}, apperr.Validation("Satış miktarı 0'dan büyük olmalı")
	}
	if in.UnitPrice.IsNegative() {
		return models.SalesOrder{}, apperr.Validation("Birim fiyat negatif olamaz")
	}

	date := time.Now().Truncate(24 * time.Hour)
	if in.Date != "" {
		d, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return models.SalesOrder{}, apperr.Validation("Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		date = d
	}

	method := models.PaymentMethodCash
	if in.PaymentMethod != "" {
		m, ok := models.ParsePaymentMethod(in.PaymentMethod)
		if !ok {
			return models.SalesOrder{}, apperr.Validation("Geçersiz ödeme yöntemi: %s", in.PaymentMethod)
		}
		method = m
	}

	status := models.SalesStatusPending
	if strings.EqualFold(in.Status, string(models.SalesStatusSettled)) {
		status = models.SalesStatusSettled
	}

	// Ürün adı gösterim için; ürün tanımsızsa id ile devam edilir
	fruit := in.ProductID
	var product models.Product
	if err := s.db.First(&product, "id = ?", in.ProductID).Error; err == nil {
		fruit = product.Name
	}

	order := models.SalesOrder{
		ID:            s.ids.NewID("so"),
		StoreID:       storeID,
		Date:          date,
		Customer:      in.Customer,
		CustomerID:    in.CustomerID,
		Channel:       in.Channel,
		ProductID:     in.ProductID,
		Fruit:         fruit,
		QuantityKg:    in.QuantityKg,
		UnitPrice:     in.UnitPrice,
		PaymentMethod: method,
		Status:        status,
	}

	// Sipariş yazısı ve defter düşümü tek transaction'dır; anahtar kilidi
	// commit'e kadar tutulur.
	unlock := s.ledger.LockKeys(storeID, in.ProductID)
	defer unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		// Stoktan düş. Kayıt yoksa satış yine geçerli kalır (defter değişmez).
		_, err := s.ledger.ApplySaleTx(tx, storeID, in.ProductID, in.QuantityKg)
		return err
	})
	if err != nil {
		return models.SalesOrder{}, err
	}

	return order, nil
}

// Settle: siparişi koşulsuz "settled" yapar. Zaten kapanmış siparişte de
// başarılı döner; tek yönlü geçiştir, geri alınamaz.
func (s *Service) Settle(orderID string) (models.SalesOrder, error) {
	var order models.SalesOrder
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SalesOrder{}, apperr.NotFound("Satış siparişi bulunamadı: %s", orderID)
		}
		return models.SalesOrder{}, err
	}

	order.Status = models.SalesStatusSettled
	if err := s.db.Save(&order).Error; err != nil {
		return models.SalesOrder{}, err
	}

	return order, nil
}
