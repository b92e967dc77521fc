package partner

import (
	"github.com/erp/reporting/internal/domain/shared"
)

// Customer represents a customer in the partner read model
type Customer struct {
	shared.SoftDeletableEntity
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}
