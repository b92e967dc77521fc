package catalog

import (
	"github.com/erp/reporting/internal/domain/shared"
)

// Brand represents a product brand
type Brand struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(100);not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// Quality represents a product quality grade
type Quality struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (Quality) TableName() string {
	return "qualities"
}
