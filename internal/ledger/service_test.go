package ledger

import (
	"testing"

	"fruitshop-backend/internal/apperr"
	"fruitshop-backend/internal/idgen"
	"fruitshop-backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutil.NewDB(t)
	testutil.SeedCatalog(t, db)
	return New(db, idgen.NewSequence())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertValidation(t *testing.T, err error) {
	t.Helper()
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestApplyPurchaseFirstPurchase(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("100"), dec("8.00"))
	require.NoError(t, err)

	assert.True(t, rec.OnHandKg.Equal(dec("100")), "miktar: %s", rec.OnHandKg)
	assert.True(t, rec.UnitCost.Equal(dec("8.00")), "maliyet: %s", rec.UnitCost)
	// İlk alım: satış fiyatı maliyetin 1.5 katı, kritik seviye 80
	assert.True(t, rec.UnitPrice.Equal(dec("12.00")), "fiyat: %s", rec.UnitPrice)
	assert.True(t, rec.ReorderLevelKg.Equal(dec("80")), "kritik seviye: %s", rec.ReorderLevelKg)
}

func TestApplyPurchaseWeightedAverage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("100"), dec("8.00"))
	require.NoError(t, err)

	rec, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("50"), dec("10.00"))
	require.NoError(t, err)

	// (100x8 + 50x10) / 150 = 8.666... -> 8.67
	assert.True(t, rec.OnHandKg.Equal(dec("150")), "miktar: %s", rec.OnHandKg)
	assert.True(t, rec.UnitCost.Equal(dec("8.67")), "maliyet: %s", rec.UnitCost)
	// Satış fiyatı sadece ilk alımda set edilir, sonraki alımlar dokunmaz
	assert.True(t, rec.UnitPrice.Equal(dec("12.00")), "fiyat: %s", rec.UnitPrice)
}

func TestApplyPurchaseValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("0"), dec("8.00"))
	assertValidation(t, err)

	_, err = svc.ApplyPurchase("store-1", "apple", "Elma", dec("-5"), dec("8.00"))
	assertValidation(t, err)

	_, err = svc.ApplyPurchase("store-1", "apple", "Elma", dec("10"), dec("-1"))
	assertValidation(t, err)
}

func TestApplySaleClampsToZero(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("30"), dec("8.00"))
	require.NoError(t, err)

	rec, err := svc.ApplySale("store-1", "apple", dec("50"))
	require.NoError(t, err)

	assert.True(t, rec.OnHandKg.Equal(decimal.Zero), "miktar: %s", rec.OnHandKg)
	// Satış maliyete dokunmaz
	assert.True(t, rec.UnitCost.Equal(dec("8.00")), "maliyet: %s", rec.UnitCost)
}

func TestApplySaleMissingRecordIsNoop(t *testing.T) {
	svc := newTestService(t)

	// Hiç alım yapılmamış ürün: satış hata vermez, defter değişmez
	rec, err := svc.ApplySale("store-1", "banana", dec("10"))
	require.NoError(t, err)
	assert.Empty(t, rec.ID)

	records, err := svc.ListByStore("store-1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestApplySaleValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ApplySale("store-1", "apple", dec("0"))
	assertValidation(t, err)
}

func TestGetMissingRecordNotPersisted(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.Get("store-1", "apple")
	require.NoError(t, err)
	assert.True(t, rec.OnHandKg.Equal(decimal.Zero))
	assert.True(t, rec.ReorderLevelKg.Equal(dec("80")))

	records, err := svc.ListByStore("store-1")
	require.NoError(t, err)
	assert.Empty(t, records, "Get kalıcı kayıt açmamalı")
}

func TestCreateAdjustmentStoresRawDelta(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("20"), dec("8.00"))
	require.NoError(t, err)

	adj, err := svc.CreateAdjustment(rec.ID, dec("-1000"), "sayım farkı", "ali")
	require.NoError(t, err)

	// Kayıt ham delta'yı tutar, stok ise sıfıra kırpılır
	assert.True(t, adj.DeltaKg.Equal(dec("-1000")), "delta: %s", adj.DeltaKg)
	assert.Equal(t, "sayım farkı", adj.Reason)
	assert.Equal(t, "ali", adj.CreatedBy)

	after, err := svc.Get("store-1", "apple")
	require.NoError(t, err)
	assert.True(t, after.OnHandKg.Equal(decimal.Zero), "miktar: %s", after.OnHandKg)
	assert.True(t, after.UnitCost.Equal(dec("8.00")), "düzeltme maliyete dokunmaz")
}

func TestCreateAdjustmentDefaults(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("20"), dec("8.00"))
	require.NoError(t, err)

	adj, err := svc.CreateAdjustment(rec.ID, dec("5"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "düzeltme", adj.Reason)
	assert.Equal(t, "sistem", adj.CreatedBy)

	after, err := svc.Get("store-1", "apple")
	require.NoError(t, err)
	assert.True(t, after.OnHandKg.Equal(dec("25")), "miktar: %s", after.OnHandKg)
}

func TestCreateAdjustmentMissingRecord(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateAdjustment("inv-yok", dec("5"), "", "")
	assertNotFound(t, err)

	adjustments, err := svc.ListAdjustments("inv-yok")
	require.NoError(t, err)
	assert.Empty(t, adjustments, "başarısız düzeltme kayıt bırakmamalı")
}

func TestListAdjustments(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("100"), dec("8.00"))
	require.NoError(t, err)

	_, err = svc.CreateAdjustment(rec.ID, dec("-3"), "fire", "ali")
	require.NoError(t, err)
	_, err = svc.CreateAdjustment(rec.ID, dec("2"), "sayım farkı", "ayşe")
	require.NoError(t, err)

	adjustments, err := svc.ListAdjustments(rec.ID)
	require.NoError(t, err)
	require.Len(t, adjustments, 2)

	after, err := svc.Get("store-1", "apple")
	require.NoError(t, err)
	assert.True(t, after.OnHandKg.Equal(dec("99")), "miktar: %s", after.OnHandKg)
}

func TestUpdateReorderLevel(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("100"), dec("8.00"))
	require.NoError(t, err)

	updated, err := svc.UpdateReorderLevel(rec.ID, dec("120"))
	require.NoError(t, err)
	assert.True(t, updated.ReorderLevelKg.Equal(dec("120")))

	_, err = svc.UpdateReorderLevel(rec.ID, dec("-1"))
	assertValidation(t, err)

	_, err = svc.UpdateReorderLevel("inv-yok", dec("50"))
	assertNotFound(t, err)
}

func TestStoresAreIsolated(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ApplyPurchase("store-1", "apple", "Elma", dec("100"), dec("8.00"))
	require.NoError(t, err)
	_, err = svc.ApplyPurchase("store-2", "apple", "Elma", dec("40"), dec("9.00"))
	require.NoError(t, err)

	_, err = svc.ApplySale("store-1", "apple", dec("60"))
	require.NoError(t, err)

	rec1, err := svc.Get("store-1", "apple")
	require.NoError(t, err)
	rec2, err := svc.Get("store-2", "apple")
	require.NoError(t, err)

	assert.True(t, rec1.OnHandKg.Equal(dec("40")), "store-1: %s", rec1.OnHandKg)
	assert.True(t, rec2.OnHandKg.Equal(dec("40")), "store-2: %s", rec2.OnHandKg)
	assert.True(t, rec2.UnitCost.Equal(dec("9.00")))
}
