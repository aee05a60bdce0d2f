package purchase

import (
	"testing"
	"time"

	"fruitshop-backend/internal/apperr"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/ledger"
	"fruitshop-backend/internal/models"
	"fruitshop-backend/internal/partner"
	"fruitshop-backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	ledger *ledger.Service
	svc    *Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	testutil.SeedCatalog(t, db)

	ids := idgen.NewSequence()
	lg := ledger.New(db, ids)
	resolver := partner.NewResolver(db, ids)
	return fixture{db: db, ledger: lg, svc: New(db, ids, lg, resolver)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateAppliesLinesToLedger(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.Create("store-1", CreateOrderInput{
		SupplierName: "Anadolu Meyve",
		ETA:          "2026-09-05",
		Items: []ItemInput{
			{ProductID: "apple", QuantityKg: dec("100"), UnitCost: dec("8.00")},
			{ProductID: "banana", QuantityKg: dec("40"), UnitCost: dec("12.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PurchaseStatusDraft, order.Status)
	assert.Equal(t, 7, order.PaymentTermDays)
	// 100x8.00 + 40x12.50 = 1300.00
	assert.True(t, order.TotalAmount.Equal(dec("1300.00")), "toplam: %s", order.TotalAmount)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "Elma", order.Lines[0].Fruit)
	require.Len(t, order.Timeline, 1)

	apple, err := f.ledger.Get("store-1", "apple")
	require.NoError(t, err)
	assert.True(t, apple.OnHandKg.Equal(dec("100")))
	assert.True(t, apple.UnitCost.Equal(dec("8.00")))

	banana, err := f.ledger.Get("store-1", "banana")
	require.NoError(t, err)
	assert.True(t, banana.OnHandKg.Equal(dec("40")))
}

func TestCreateEmptyItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create("store-1", CreateOrderInput{SupplierName: "Anadolu Meyve"})
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	// Doğrulama hatası hiçbir yan etki bırakmamalı
	var count int64
	require.NoError(t, f.db.Model(&models.Partner{}).Count(&count).Error)
	assert.Zero(t, count, "tedarikçi yaratılmamalı")
}

func TestCreateUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create("store-1", CreateOrderInput{
		SupplierName: "Anadolu Meyve",
		Items: []ItemInput{
			{ProductID: "kavun", QuantityKg: dec("10"), UnitCost: dec("5")},
		},
	})
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)

	var count int64
	require.NoError(t, f.db.Model(&models.PurchaseOrder{}).Count(&count).Error)
	assert.Zero(t, count)

	records, err := f.ledger.ListByStore("store-1")
	require.NoError(t, err)
	assert.Empty(t, records, "bilinmeyen ürün deftere dokunmamalı")
}

func TestCreateInvalidLineQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create("store-1", CreateOrderInput{
		SupplierName: "Anadolu Meyve",
		Items: []ItemInput{
			{ProductID: "apple", QuantityKg: dec("0"), UnitCost: dec("5")},
		},
	})
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCreateResolvesSupplierLazily(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.Create("store-1", CreateOrderInput{
		SupplierName:  "Yeni Tedarikçi",
		PaymentMethod: "cash",
		Items: []ItemInput{
			{ProductID: "apple", QuantityKg: dec("10"), UnitCost: dec("5")},
		},
	})
	require.NoError(t, err)

	var supplier models.Partner
	require.NoError(t, f.db.First(&supplier, "id = ?", order.SupplierID).Error)
	assert.Equal(t, "Yeni Tedarikçi", supplier.Name)
	assert.Equal(t, models.PartnerTypeSupplier, supplier.Type)
	assert.Equal(t, "A", supplier.CreditLevel)
	assert.Equal(t, 30, supplier.PaymentTermDays)
	assert.Equal(t, models.PaymentMethodCash, supplier.PaymentMethod)

	// Aynı isimle ikinci sipariş yeni tedarikçi açmaz
	order2, err := f.svc.Create("store-1", CreateOrderInput{
		SupplierName: "Yeni Tedarikçi",
		Items: []ItemInput{
			{ProductID: "apple", QuantityKg: dec("5"), UnitCost: dec("5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, order.SupplierID, order2.SupplierID)
}

func TestCreateInvalidETA(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create("store-1", CreateOrderInput{
		SupplierName: "Anadolu Meyve",
		ETA:          "05.09.2026",
		Items: []ItemInput{
			{ProductID: "apple", QuantityKg: dec("10"), UnitCost: dec("5")},
		},
	})
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUpdateStatusOverwrites(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.Create("store-1", CreateOrderInput{
		SupplierName: "Anadolu Meyve",
		Items: []ItemInput{
			{ProductID: "apple", QuantityKg: dec("10"), UnitCost: dec("5")},
		},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(order.ID, models.PurchaseStatusReceived)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusReceived, updated.Status)

	// Geçiş tablosu yok: geriye doğru da yazılabilir
	updated, err = f.svc.UpdateStatus(order.ID, models.PurchaseStatusDraft)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusDraft, updated.Status)

	// Durum değişikliği stoğa dokunmaz
	apple, err := f.ledger.Get("store-1", "apple")
	require.NoError(t, err)
	assert.True(t, apple.OnHandKg.Equal(dec("10")))
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus("po-yok", models.PurchaseStatusPaid)
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSaleWaitsForPurchaseCommit(t *testing.T) {
	f := newFixture(t)

	// Alım transaction'ı açıkken anahtar kilidi tutulur; paralel satış
	// commit'ten önce ilerleyememeli, sonrasında alımı görerek düşmeli
	unlock := f.ledger.LockKeys("store-1", "apple")
	tx := f.db.Begin()
	require.NoError(t, tx.Error)
	_, err := f.ledger.ApplyPurchaseTx(tx, "store-1", "apple", "Elma", dec("100"), dec("8.00"))
	require.NoError(t, err)

	type saleResult struct {
		rec models.InventoryRecord
		err error
	}
	done := make(chan saleResult, 1)
	go func() {
		rec, err := f.ledger.ApplySale("store-1", "apple", dec("40"))
		done <- saleResult{rec: rec, err: err}
	}()

	select {
	case <-done:
		t.Fatal("satış, alım commit edilmeden tamamlandı")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, tx.Commit().Error)
	unlock()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.True(t, res.rec.OnHandKg.Equal(dec("60")), "miktar: %s", res.rec.OnHandKg)
	case <-time.After(2 * time.Second):
		t.Fatal("satış kilit bırakıldıktan sonra tamamlanmadı")
	}

	rec, err := f.ledger.Get("store-1", "apple")
	require.NoError(t, err)
	assert.True(t, rec.OnHandKg.Equal(dec("60")), "miktar: %s", rec.OnHandKg)
}

func TestListByStore(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create("store-1", CreateOrderInput{
		SupplierName: "Anadolu Meyve",
		Items: []ItemInput{
			{ProductID: "apple", QuantityKg: dec("10"), UnitCost: dec("5")},
		},
	})
	require.NoError(t, err)

	orders, err := f.svc.ListByStore("store-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Lines, 1)

	other, err := f.svc.ListByStore("store-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
