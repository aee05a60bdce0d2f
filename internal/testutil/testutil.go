package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"fruitshop-backend/internal/database"
	"fruitshop-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB: her test için izole in-memory sqlite açar ve migre eder.
// cache=shared + test başına benzersiz isim: aynı veritabanını bağlantı
// havuzundaki tüm bağlantılar görür, testler birbirinden yalıtık kalır.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// SeedCatalog: testlerde kullanılan mağaza ve ürünleri yükler.
func SeedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	stores := []models.Store{
		{ID: "store-1", Name: "Merkez Mağaza"},
		{ID: "store-2", Name: "Kadıköy Şube"},
	}
	require.NoError(t, db.Create(&stores).Error)

	products := []models.Product{
		{ID: "apple", Name: "Elma", Unit: "kg", Status: "active"},
		{ID: "banana", Name: "Muz", Unit: "kg", Status: "active"},
		{ID: "orange", Name: "Portakal", Unit: "kg", Status: "active"},
	}
	require.NoError(t, db.Create(&products).Error)
}
