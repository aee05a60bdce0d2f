package sales

import (
	"testing"
	"time"

	"fruitshop-backend/internal/apperr"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/ledger"
	"fruitshop-backend/internal/models"
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
	return fixture{db: db, ledger: lg, svc: New(db, ids, lg)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateDeductsFromLedger(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.ApplyPurchase("store-1", "apple", "Elma", dec("100"), dec("8.00"))
	require.NoError(t, err)

	order, err := f.svc.Create("store-1", CreateOrderInput{
		Date:       "2026-08-20",
		Customer:   "Migros",
		ProductID:  "apple",
		QuantityKg: dec("30"),
		UnitPrice:  dec("12.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Elma", order.Fruit)
	assert.Equal(t, models.SalesStatusPending, order.Status)
	assert.Equal(t, models.PaymentMethodCash, order.PaymentMethod)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), order.Date)

	rec, err := f.ledger.Get("store-1", "apple")
	require.NoError(t, err)
	assert.True(t, rec.OnHandKg.Equal(dec("70")), "miktar: %s", rec.OnHandKg)
	// Satış maliyete dokunmaz
	assert.True(t, rec.UnitCost.Equal(dec("8.00")))
}

func TestCreateMissingInventoryStillSucceeds(t *testing.T) {
	f := newFixture(t)

	// Defterde hiç kaydı olmayan ürün: sipariş yazılır, defter değişmez
	order, err := f.svc.Create("store-1", CreateOrderInput{
		ProductID:  "banana",
		QuantityKg: dec("10"),
		UnitPrice:  dec("15.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SalesStatusPending, order.Status)

	records, err := f.ledger.ListByStore("store-1")
	require.NoError(t, err)
	assert.Empty(t, records)

	orders, err := f.svc.ListByStore("store-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	var ve *apperr.ValidationError

	_, err := f.svc.Create("store-1", CreateOrderInput{QuantityKg: dec("10"), UnitPrice: dec("5")})
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.Create("store-1", CreateOrderInput{ProductID: "apple", QuantityKg: dec("0"), UnitPrice: dec("5")})
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.Create("store-1", CreateOrderInput{ProductID: "apple", QuantityKg: dec("10"), UnitPrice: dec("-1")})
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.Create("store-1", CreateOrderInput{ProductID: "apple", QuantityKg: dec("10"), UnitPrice: dec("5"), Date: "20.08.2026"})
	assert.ErrorAs(t, err, &ve)
}

func TestCreateExplicitSettled(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.Create("store-1", CreateOrderInput{
		ProductID:     "apple",
		QuantityKg:    dec("5"),
		UnitPrice:     dec("12.00"),
		PaymentMethod: "card",
		Status:        "SETTLED",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SalesStatusSettled, order.Status)
	assert.Equal(t, models.PaymentMethodCard, order.PaymentMethod)

	// "settled" dışındaki her durum pending'e düşer
	order, err = f.svc.Create("store-1", CreateOrderInput{
		ProductID:  "apple",
		QuantityKg: dec("5"),
		UnitPrice:  dec("12.00"),
		Status:     "kapandı",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SalesStatusPending, order.Status)
}

func TestCreateRejectsUnknownPaymentMethod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create("store-1", CreateOrderInput{
		ProductID:     "apple",
		QuantityKg:    dec("5"),
		UnitPrice:     dec("12.00"),
		PaymentMethod: "bitcoin",
	})
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	orders, err := f.svc.ListByStore("store-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateRollsBackOrderWhenLedgerFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.ApplyPurchase("store-1", "apple", "Elma", dec("50"), dec("8.00"))
	require.NoError(t, err)

	// Defter tablosu yokken düşüm başarısız olur; sipariş de kalmamalı
	require.NoError(t, f.db.Migrator().DropTable(&models.InventoryRecord{}))

	_, err = f.svc.Create("store-1", CreateOrderInput{
		ProductID:  "apple",
		QuantityKg: dec("10"),
		UnitPrice:  dec("12.00"),
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, f.db.Model(&models.SalesOrder{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSettleIsIdempotent(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.Create("store-1", CreateOrderInput{
		ProductID:  "apple",
		QuantityKg: dec("5"),
		UnitPrice:  dec("12.00"),
	})
	require.NoError(t, err)

	settled, err := f.svc.Settle(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SalesStatusSettled, settled.Status)

	// İkinci çağrı da başarılı, durum değişmez
	settled, err = f.svc.Settle(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SalesStatusSettled, settled.Status)
}

func TestSettleMissingOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Settle("so-yok")
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
