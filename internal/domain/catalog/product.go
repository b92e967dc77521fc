package catalog

import (
	"github.com/erp/reporting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product/SKU in the catalog read model
type Product struct {
	shared.SoftDeletableEntity
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Barcode       string          `gorm:"type:varchar(50);index"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	BrandID       *uuid.UUID      `gorm:"type:uuid;index"`
	QualityID     *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Quantity on hand
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Unit cost price
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// StockValue returns the cost value of the quantity on hand
func (p *Product) StockValue() decimal.Decimal {
	return p.Quantity.Mul(p.PurchasePrice)
}
