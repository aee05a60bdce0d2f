package models

import "time"

type Product struct {
	ID        string `gorm:"primaryKey;size:40"`
	Name      string `gorm:"size:100;not null;unique"`
	Category  string `gorm:"size:50"`
	Unit      string `gorm:"size:20;not null;default:kg"` // kg, adet, koli vs.
	Barcode   string `gorm:"size:50;index"`
	Status    string `gorm:"size:20;not null;default:active"` // active / archived
	CreatedAt time.Time
	UpdatedAt time.Time
}
