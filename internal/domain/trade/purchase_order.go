package trade

import (
	"time"

	"github.com/erp/reporting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// Amount returns Quantity * UnitPrice
func (i *PurchaseOrderItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// PurchaseOrder represents a purchase order in the trade read model
type PurchaseOrder struct {
	shared.SoftDeletableEntity
	Number     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;index"`
	OrderDate  time.Time           `gorm:"not null;index"`
	Status     OrderStatus         `gorm:"type:varchar(20);not null"`
	Items      []PurchaseOrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// TotalAmount returns the sum of line amounts
func (o *PurchaseOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Amount())
	}
	return total
}
