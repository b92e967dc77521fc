package catalog

import (
	"github.com/erp/reporting/internal/domain/shared"
)

// Category represents a product category
type Category struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(100);not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}
