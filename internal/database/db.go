package database

import (
	"log"

	"fruitshop-backend/internal/config"
	"fruitshop-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: tüm modelleri migrate eder. Testler bunu sqlite üzerinde çağırır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Product{},
		&models.Partner{},
		&models.InventoryRecord{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderLine{},
		&models.TimelineEvent{},
		&models.SalesOrder{},
		&models.Adjustment{},
		&models.AuditLog{},
	)
}
