package trade

import (
	"time"

	"github.com/erp/reporting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CountsTowardRevenue reports whether orders in this status contribute
// to revenue aggregates. Cancelled orders never do.
func (s OrderStatus) CountsTowardRevenue() bool {
	return s != OrderStatusCancelled
}

// SalesOrderItem represents a line item in a sales order
type SalesOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Sale price per unit
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Cost price per unit at time of sale
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// Amount returns Quantity * UnitPrice
func (i *SalesOrderItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Profit returns (UnitPrice - UnitCost) * Quantity
func (i *SalesOrderItem) Profit() decimal.Decimal {
	return i.UnitPrice.Sub(i.UnitCost).Mul(i.Quantity)
}

// SalesOrder represents a sales order in the trade read model
type SalesOrder struct {
	shared.SoftDeletableEntity
	Number     string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID uuid.UUID        `gorm:"type:uuid;not null;index"`
	OrderDate  time.Time        `gorm:"not null;index"`
	Status     OrderStatus      `gorm:"type:varchar(20);not null"`
	Items      []SalesOrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// TotalAmount returns the sum of line amounts
func (o *SalesOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Amount())
	}
	return total
}

// Profit returns the sum of line profits
func (o *SalesOrder) Profit() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Profit())
	}
	return total
}

// UnitsSold returns the total quantity across line items
func (o *SalesOrder) UnitsSold() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Quantity)
	}
	return total
}
