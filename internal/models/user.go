package models

import "time"

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleStoreManager UserRole = "store_manager"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	StoreID      *string `gorm:"size:40"`
	Name         string  `gorm:"size:100;not null"`
	Email        string  `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
