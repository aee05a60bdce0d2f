package partner

import (
	"errors"
	"strings"
	"sync"

	"fruitshop-backend/internal/apperr"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SupplierRef: alım akışının tedarikçiyi gösterme biçimi — id veya isim.
type SupplierRef struct {
	ID   string
	Name string
}

// SupplierDefaults: tedarikçi yoktan yaratılırken kullanılacak varsayılanlar.
type SupplierDefaults struct {
	PaymentMethod models.PaymentMethod
}

// Resolver: tedarikçi referansını mevcut bir Partner kaydına çözer;
// eşleşme yoksa varsayılan koşullarla yeni tedarikçi açar. Çözümleme
// asla başarısız olmaz — yaratma her zaman son çare yoldur. Aynı isim
// aynı anda iki kez yaratılmasın diye isim bazında serileşir.
type Resolver struct {
	db  *gorm.DB
	ids idgen.Generator

	mu        sync.Mutex
	nameLocks map[string]*sync.Mutex
}

func NewResolver(db *gorm.DB, ids idgen.Generator) *Resolver {
	return &Resolver{db: db, ids: ids, nameLocks: make(map[string]*sync.Mutex)}
}

func (r *Resolver) ResolveSupplier(ref SupplierRef, defaults SupplierDefaults) (models.Partner, error) {
	// Önce id ile dene
	if ref.ID != "" {
		var p models.Partner
		err := r.db.Where("id = ? AND type = ?", ref.ID, models.PartnerTypeSupplier).First(&p).Error
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Partner{}, err
		}
	}

	name := strings.TrimSpace(ref.Name)
	if name == "" {
		if ref.ID != "" {
			// İsim verilmemiş, id de bulunamadı: geri düşülecek yol yok
			return models.Partner{}, apperr.NotFound("Tedarikçi bulunamadı: %s", ref.ID)
		}
		return models.Partner{}, apperr.Validation("Tedarikçi id veya isim zorunlu")
	}

	unlock := r.lockName(name)
	defer unlock()

	// Tam isim eşleşmesi ara
	var p models.Partner
	err := r.db.Where("type = ? AND name = ?", models.PartnerTypeSupplier, name).First(&p).Error
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Partner{}, err
	}

	// Yoksa yarat
	method := models.PaymentMethodTransfer
	if defaults.PaymentMethod != "" {
		if !defaults.PaymentMethod.Valid() {
			return models.Partner{}, apperr.Validation("Geçersiz ödeme yöntemi: %s", defaults.PaymentMethod)
		}
		method = defaults.PaymentMethod
	}

	p = models.Partner{
		ID:                r.ids.NewID("supp"),
		Type:              models.PartnerTypeSupplier,
		Name:              name,
		CreditLevel:       "A",
		PaymentTermDays:   30,
		PaymentMethod:     method,
		OutstandingAmount: decimal.Zero,
		Status:            "active",
	}

	if err := r.db.Create(&p).Error; err != nil {
		return models.Partner{}, err
	}
	return p, nil
}

func (r *Resolver) lockName(name string) func() {
	r.mu.Lock()
	m, ok := r.nameLocks[name]
	if !ok {
		m = &sync.Mutex{}
		r.nameLocks[name] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (r *Resolver) ListSuppliers() ([]models.Partner, error) {
	var suppliers []models.Partner
	if err := r.db.Where("type = ?", models.PartnerTypeSupplier).
		Order("name asc").
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}
