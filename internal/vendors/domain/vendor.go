package domain

import (
	"time"

	"gorm.io/gorm"
)

// Vendor represents a field vendor account
type Vendor struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	FullName     string         `json:"full_name"`
	Phone        string         `json:"phone"`
	Zone         string         `json:"zone"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Vendor
func (Vendor) TableName() string {
	return "vendors"
}
