package partner

import (
	"github.com/erp/reporting/internal/domain/shared"
)

// Supplier represents a supplier in the partner read model
type Supplier struct {
	shared.SoftDeletableEntity
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}
