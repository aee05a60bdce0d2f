package database

import (
	"log"

	"fruitshop-backend/internal/models"

	"gorm.io/gorm"
)

// Seed: boş veritabanına demo mağaza, ürün ve tedarikçi kayıtları açar.
// Ürün tablosu doluysa hiçbir şey yapmaz.
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("Demo veriler yükleniyor...")

	stores := []models.Store{
		{ID: "store-1", Name: "Merkez Mağaza", Address: "Kadıköy", Phone: "0216 000 00 01"},
		{ID: "store-2", Name: "Şube A", Address: "Üsküdar", Phone: "0216 000 00 02"},
		{ID: "store-3", Name: "Şube B", Address: "Maltepe", Phone: "0216 000 00 03"},
	}
	if err := db.Create(&stores).Error; err != nil {
		log.Printf("Mağaza seed hatası: %v", err)
	}

	products := []models.Product{
		{ID: "apple", Name: "Elma", Category: "meyve", Unit: "kg"},
		{ID: "banana", Name: "Muz", Category: "meyve", Unit: "kg"},
		{ID: "orange", Name: "Portakal", Category: "meyve", Unit: "kg"},
		{ID: "grape", Name: "Üzüm", Category: "meyve", Unit: "kg"},
		{ID: "watermelon", Name: "Karpuz", Category: "meyve", Unit: "kg"},
		{ID: "mango", Name: "Mango", Category: "meyve", Unit: "kg"},
		{ID: "pear", Name: "Armut", Category: "meyve", Unit: "kg"},
		{ID: "peach", Name: "Şeftali", Category: "meyve", Unit: "kg"},
	}
	if err := db.Create(&products).Error; err != nil {
		log.Printf("Ürün seed hatası: %v", err)
	}

	suppliers := []models.Partner{
		{
			ID: "supp-1", Type: models.PartnerTypeSupplier, Name: "Ege Meyve Kooperatifi",
			Contact: "Ahmet Bey", Phone: "0232 000 00 01", CreditLevel: "A",
			PaymentTermDays: 30, PaymentMethod: models.PaymentMethodTransfer,
		},
		{
			ID: "supp-2", Type: models.PartnerTypeSupplier, Name: "Akdeniz Narenciye",
			Contact: "Ayşe Hanım", Phone: "0242 000 00 02", CreditLevel: "A",
			PaymentTermDays: 15, PaymentMethod: models.PaymentMethodTransfer,
		},
	}
	if err := db.Create(&suppliers).Error; err != nil {
		log.Printf("Tedarikçi seed hatası: %v", err)
	}

	log.Println("Demo veriler yüklendi.")
}
