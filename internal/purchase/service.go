package purchase

import (
	"errors"
	"time"

	"fruitshop-backend/internal/apperr"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/ledger"
	"fruitshop-backend/internal/models"
	"fruitshop-backend/internal/partner"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service: alım siparişi akışı. Siparişi ve kalemlerini tek transaction
// içinde kaydeder, ardından her kalemi sırayla deftere işler. Tüm
// doğrulamalar herhangi bir yazma yapılmadan önce biter.
type Service struct {
	db       *gorm.DB
	ids      idgen.Generator
	ledger   *ledger.Service
	partners *partner.Resolver
}

func New(db *gorm.DB, ids idgen.Generator, lg *ledger.Service, partners *partner.Resolver) *Service {
	return &Service{db: db, ids: ids, ledger: lg, partners: partners}
}

type ItemInput struct {
	ProductID     string
	QuantityKg    decimal.Decimal
	UnitCost      decimal.Decimal
	BatchRequired bool
}

type CreateOrderInput struct {
	SupplierID    string
	SupplierName  string
	ETA           string // "2006-01-02", boşsa bugün
	Status        string // boşsa draft
	PaymentMethod string // tedarikçi yaratılırsa kullanılacak varsayılan
	Items         []ItemInput
}

func (s *Service) ListByStore(storeID string) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	if err := s.db.Preload("Lines").Preload("Timeline").
		Where("store_id = ?", storeID).
		Order("expected_date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) Create(storeID string, in CreateOrderInput) (models.PurchaseOrder, error) {
	if len(in.Items) == 0 {
		return models.PurchaseOrder{}, apperr.Validation("Kalem listesi boş olamaz")
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return models.PurchaseOrder{}, apperr.Validation("product_id zorunlu")
		}
		if item.QuantityKg.LessThanOrEqual(decimal.Zero) {
			return models.PurchaseOrder{}, apperr.Validation("Alım miktarı 0'dan büyük olmalı")
		}
		if item.UnitCost.IsNegative() {
			return models.PurchaseOrder{}, apperr.Validation("Birim maliyet negatif olamaz")
		}
	}

	// Tedarikçiyi transaction açılmadan önce çöz
	supplier, err := s.partners.ResolveSupplier(
		partner.SupplierRef{ID: in.SupplierID, Name: in.SupplierName},
		partner.SupplierDefaults{PaymentMethod: models.PaymentMethod(in.PaymentMethod)},
	)
	if err != nil {
		return models.PurchaseOrder{}, err
	}

	// Tüm ürünler var mı? Bilinmeyen ürün, hiçbir yazma olmadan hata
	products := make(map[string]models.Product, len(in.Items))
	for _, item := range in.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		var p models.Product
		if err := s.db.First(&p, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.PurchaseOrder{}, apperr.NotFound("Ürün bulunamadı: %s", item.ProductID)
			}
			return models.PurchaseOrder{}, err
		}
		products[item.ProductID] = p
	}

	expectedDate := time.Now().Truncate(24 * time.Hour)
	if in.ETA != "" {
		d, err := time.Parse("2006-01-02", in.ETA)
		if err != nil {
			return models.PurchaseOrder{}, apperr.Validation("Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		expectedDate = d
	}

	status := in.Status
	if status == "" {
		status = models.PurchaseStatusDraft
	}

	total := decimal.Zero
	lines := make([]models.PurchaseOrderLine, 0, len(in.Items))
	for _, item := range in.Items {
		total = total.Add(item.QuantityKg.Mul(item.UnitCost))
		lines = append(lines, models.PurchaseOrderLine{
			ProductID:     item.ProductID,
			Fruit:         products[item.ProductID].Name,
			QuantityKg:    item.QuantityKg,
			UnitCost:      item.UnitCost,
			BatchRequired: item.BatchRequired,
		})
	}

	order := models.PurchaseOrder{
		ID:              s.ids.NewID("po"),
		StoreID:         storeID,
		SupplierID:      supplier.ID,
		Status:          status,
		ExpectedDate:    expectedDate,
		PaymentTermDays: 7,
		TotalAmount:     total.Round(2),
		Lines:           lines,
		Timeline: []models.TimelineEvent{
			{Time: time.Now().UTC().Format(time.RFC3339)},
		},
	}

	// Defter kilitleri commit'e kadar tutulur; araya giren bir satış
	// henüz görünmeyen alımı kaçırıp stoğu eksik düşemez.
	productIDs := make([]string, 0, len(products))
	for pid := range products {
		productIDs = append(productIDs, pid)
	}
	unlock := s.ledger.LockKeys(storeID, productIDs...)
	defer unlock()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		// Kalemler sırayla deftere işlenir. Aynı sipariş iki kez
		// gönderilirse stok iki kez artar; tekilleştirme yapılmaz.
		for _, line := range order.Lines {
			if _, err := s.ledger.ApplyPurchaseTx(tx, storeID, line.ProductID, line.Fruit, line.QuantityKg, line.UnitCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.PurchaseOrder{}, err
	}

	return order, nil
}

// UpdateStatus: durumu koşulsuz üzerine yazar. Geçiş tablosu yoktur,
// herhangi bir string kabul edilir.
func (s *Service) UpdateStatus(orderID, status string) (models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := s.db.Preload("Lines").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PurchaseOrder{}, apperr.NotFound("Alım siparişi bulunamadı: %s", orderID)
		}
		return models.PurchaseOrder{}, err
	}

	order.Status = status
	if err := s.db.Model(&models.PurchaseOrder{}).
		Where("id = ?", orderID).
		Update("status", status).Error; err != nil {
		return models.PurchaseOrder{}, err
	}

	return order, nil
}
