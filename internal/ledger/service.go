package ledger

import (
	"errors"

	"fruitshop-backend/internal/apperr"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Yeni açılan kayıtların kritik stok seviyesi (kg)
var defaultReorderLevelKg = decimal.NewFromInt(80)

// İlk alımda satış fiyatı = maliyet x 1.5
var defaultPriceMarkup = decimal.NewFromFloat(1.5)

// Service: (mağaza, ürün) başına stok miktarı ve ağırlıklı ortalama
// maliyeti tutan defter. Tüm stok mutasyonları buradan geçer.
type Service struct {
	db    *gorm.DB
	ids   idgen.Generator
	locks *keyLocks
}

func New(db *gorm.DB, ids idgen.Generator) *Service {
	return &Service{db: db, ids: ids, locks: newKeyLocks()}
}

// LockKeys: verilen ürünlerin defter kilitlerini alır, bırakma
// fonksiyonunu döner. Transaction içinde ApplyPurchaseTx/ApplySaleTx
// çağıran akış kilidi commit'e kadar tutmalıdır; kilit commit'ten önce
// bırakılırsa araya giren bir okuma henüz görünmeyen yazmayı kaçırır.
func (s *Service) LockKeys(storeID string, productIDs ...string) func() {
	keys := make([]string, 0, len(productIDs))
	for _, pid := range productIDs {
		keys = append(keys, recordKey(storeID, pid))
	}
	return s.locks.lockAll(keys)
}

func (s *Service) ListByStore(storeID string) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	if err := s.db.Where("store_id = ?", storeID).Order("fruit asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Get: mevcut kaydı döner; kayıt yoksa persist edilmemiş sıfır kayıt döner.
// Sıfır kayıt ilk mutasyona kadar veritabanına yazılmaz.
func (s *Service) Get(storeID, productID string) (models.InventoryRecord, error) {
	var rec models.InventoryRecord
	err := s.db.Where("store_id = ? AND product_id = ?", storeID, productID).First(&rec).Error
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.InventoryRecord{}, err
	}
	return s.zeroRecord(storeID, productID, ""), nil
}

func (s *Service) zeroRecord(storeID, productID, fruit string) models.InventoryRecord {
	return models.InventoryRecord{
		ID:             s.ids.NewID("inv"),
		StoreID:        storeID,
		ProductID:      productID,
		Fruit:          fruit,
		OnHandKg:       decimal.Zero,
		UnitCost:       decimal.Zero,
		UnitPrice:      decimal.Zero,
		ReorderLevelKg: defaultReorderLevelKg,
	}
}

// ApplyPurchase: alım kalemini stoğa işler. Maliyet, miktar ağırlıklı
// ortalama olarak yeniden hesaplanır ve 2 haneye yarı-yukarı yuvarlanır.
// UnitCost'un değiştiği tek yol budur.
func (s *Service) ApplyPurchase(storeID, productID, fruit string, quantity, unitCost decimal.Decimal) (models.InventoryRecord, error) {
	if err := validatePurchase(quantity, unitCost); err != nil {
		return models.InventoryRecord{}, err
	}

	unlock := s.locks.lock(recordKey(storeID, productID))
	defer unlock()

	return s.applyPurchase(s.db, storeID, productID, fruit, quantity, unitCost)
}

// ApplyPurchaseTx: alım kalemini verilen transaction içinde işler.
// Çağıran, anahtarın kilidini LockKeys ile tutuyor olmalıdır.
func (s *Service) ApplyPurchaseTx(tx *gorm.DB, storeID, productID, fruit string, quantity, unitCost decimal.Decimal) (models.InventoryRecord, error) {
	if err := validatePurchase(quantity, unitCost); err != nil {
		return models.InventoryRecord{}, err
	}
	return s.applyPurchase(tx, storeID, productID, fruit, quantity, unitCost)
}

func validatePurchase(quantity, unitCost decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return apperr.Validation("Alım miktarı 0'dan büyük olmalı")
	}
	if unitCost.IsNegative() {
		return apperr.Validation("Birim maliyet negatif olamaz")
	}
	return nil
}

func (s *Service) applyPurchase(tx *gorm.DB, storeID, productID, fruit string, quantity, unitCost decimal.Decimal) (models.InventoryRecord, error) {
	var rec models.InventoryRecord
	err := tx.Where("store_id = ? AND product_id = ?", storeID, productID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = s.zeroRecord(storeID, productID, fruit)
		rec.UnitPrice = unitCost.Mul(defaultPriceMarkup).Round(2)
	} else if err != nil {
		return models.InventoryRecord{}, err
	}

	newQty := rec.OnHandKg.Add(quantity)
	if newQty.GreaterThan(decimal.Zero) {
		totalCost := rec.OnHandKg.Mul(rec.UnitCost).Add(quantity.Mul(unitCost))
		rec.UnitCost = totalCost.Div(newQty).Round(2)
	}
	rec.OnHandKg = newQty

	if err := tx.Save(&rec).Error; err != nil {
		return models.InventoryRecord{}, err
	}
	return rec, nil
}

// ApplySale: satış miktarını stoktan düşer, sonuç asla negatif olmaz.
// Kayıt yoksa satış yine başarılıdır ve defter değişmez.
func (s *Service) ApplySale(storeID, productID string, quantity decimal.Decimal) (models.InventoryRecord, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return models.InventoryRecord{}, apperr.Validation("Satış miktarı 0'dan büyük olmalı")
	}

	unlock := s.locks.lock(recordKey(storeID, productID))
	defer unlock()

	return s.applySale(s.db, storeID, productID, quantity)
}

// ApplySaleTx: satışı verilen transaction içinde düşer. Çağıran,
// anahtarın kilidini LockKeys ile tutuyor olmalıdır.
func (s *Service) ApplySaleTx(tx *gorm.DB, storeID, productID string, quantity decimal.Decimal) (models.InventoryRecord, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return models.InventoryRecord{}, apperr.Validation("Satış miktarı 0'dan büyük olmalı")
	}
	return s.applySale(tx, storeID, productID, quantity)
}

func (s *Service) applySale(tx *gorm.DB, storeID, productID string, quantity decimal.Decimal) (models.InventoryRecord, error) {
	var rec models.InventoryRecord
	err := tx.Where("store_id = ? AND product_id = ?", storeID, productID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.InventoryRecord{}, nil
	}
	if err != nil {
		return models.InventoryRecord{}, err
	}

	newQty := rec.OnHandKg.Sub(quantity)
	if newQty.IsNegative() {
		newQty = decimal.Zero
	}
	rec.OnHandKg = newQty

	if err := tx.Save(&rec).Error; err != nil {
		return models.InventoryRecord{}, err
	}
	return rec, nil
}

// applyAdjustment: manuel düzeltmeyi uygular. Miktar sıfıra kırpılır,
// maliyet hiç değişmez. Çağıran anahtarın kilidini tutuyor olmalıdır.
func (s *Service) applyAdjustment(tx *gorm.DB, inventoryID string, delta decimal.Decimal) (models.InventoryRecord, error) {
	var rec models.InventoryRecord
	if err := tx.First(&rec, "id = ?", inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InventoryRecord{}, apperr.NotFound("Stok kaydı bulunamadı: %s", inventoryID)
		}
		return models.InventoryRecord{}, err
	}

	newQty := rec.OnHandKg.Add(delta)
	if newQty.IsNegative() {
		newQty = decimal.Zero
	}
	rec.OnHandKg = newQty

	if err := tx.Save(&rec).Error; err != nil {
		return models.InventoryRecord{}, err
	}
	return rec, nil
}

// UpdateReorderLevel: kritik stok seviyesini günceller.
func (s *Service) UpdateReorderLevel(inventoryID string, level decimal.Decimal) (models.InventoryRecord, error) {
	if level.IsNegative() {
		return models.InventoryRecord{}, apperr.Validation("Kritik seviye negatif olamaz")
	}

	var rec models.InventoryRecord
	if err := s.db.First(&rec, "id = ?", inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InventoryRecord{}, apperr.NotFound("Stok kaydı bulunamadı: %s", inventoryID)
		}
		return models.InventoryRecord{}, err
	}

	rec.ReorderLevelKg = level
	if err := s.db.Save(&rec).Error; err != nil {
		return models.InventoryRecord{}, err
	}
	return rec, nil
}

// CreateAdjustment: düzeltmeyi deftere uygular ve değişmez denetim
// kaydını aynı transaction içinde açar. Anahtar kilidi commit'e kadar
// tutulur. Adjustment kaydı talep edilen ham delta'yı saklar, kırpılmış
// etkiyi değil.
func (s *Service) CreateAdjustment(inventoryID string, delta decimal.Decimal, reason, createdBy string) (models.Adjustment, error) {
	if reason == "" {
		reason = "düzeltme"
	}
	if createdBy == "" {
		createdBy = "sistem"
	}

	var rec models.InventoryRecord
	if err := s.db.First(&rec, "id = ?", inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Adjustment{}, apperr.NotFound("Stok kaydı bulunamadı: %s", inventoryID)
		}
		return models.Adjustment{}, err
	}

	unlock := s.LockKeys(rec.StoreID, rec.ProductID)
	defer unlock()

	adj := models.Adjustment{
		ID:          s.ids.NewID("adj"),
		InventoryID: inventoryID,
		DeltaKg:     delta,
		Reason:      reason,
		CreatedBy:   createdBy,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.applyAdjustment(tx, inventoryID, delta); err != nil {
			return err
		}
		return tx.Create(&adj).Error
	})
	if err != nil {
		return models.Adjustment{}, err
	}
	return adj, nil
}

func (s *Service) ListAdjustments(inventoryID string) ([]models.Adjustment, error) {
	var adjustments []models.Adjustment
	if err := s.db.Where("inventory_id = ?", inventoryID).
		Order("created_at DESC").
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}
