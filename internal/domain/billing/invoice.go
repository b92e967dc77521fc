package billing

import (
	"time"

	"github.com/erp/reporting/internal/domain/shared"
	"github.com/erp/reporting/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoicePayment represents a payment recorded against an invoice.
// Payments may be recorded in a foreign currency together with the
// conversion rate in effect at payment time.
type InvoicePayment struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key"`
	InvoiceID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null"`
	ConversionRate decimal.Decimal      `gorm:"type:decimal(18,6);not null;default:1"`
	PaidAt         time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoicePayment) TableName() string {
	return "invoice_payments"
}

// BaseAmount returns the payment amount normalized to the base currency
func (p *InvoicePayment) BaseAmount() (decimal.Decimal, error) {
	return valueobject.NormalizeToBase(p.Amount, p.Currency, p.ConversionRate)
}

// InvoiceReturn represents returned goods credited against an invoice
type InvoiceReturn struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Value     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceReturn) TableName() string {
	return "invoice_returns"
}

// Invoice carries the fields shared by both invoice sides
type Invoice struct {
	shared.SoftDeletableEntity
	Number   string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount   decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	DueDate  time.Time        `gorm:"not null;index"`
	Payments []InvoicePayment `gorm:"foreignKey:InvoiceID"`
	Returns  []InvoiceReturn  `gorm:"foreignKey:InvoiceID"`
}

// PaidAmount returns the sum of payments normalized to the base currency
func (inv *Invoice) PaidAmount() (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range inv.Payments {
		base, err := inv.Payments[i].BaseAmount()
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(base)
	}
	return total, nil
}

// ReturnsTotal returns the sum of return values
func (inv *Invoice) ReturnsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range inv.Returns {
		total = total.Add(inv.Returns[i].Value)
	}
	return total
}

// NetAmount returns the invoice amount less returns
func (inv *Invoice) NetAmount() decimal.Decimal {
	return inv.Amount.Sub(inv.ReturnsTotal())
}

// RemainingAmount returns the unpaid portion of the invoice
func (inv *Invoice) RemainingAmount() (decimal.Decimal, error) {
	paid, err := inv.PaidAmount()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return inv.Amount.Sub(paid), nil
}

// IsOutstanding reports whether normalized payments sum to strictly
// less than the invoice amount
func (inv *Invoice) IsOutstanding() (bool, error) {
	paid, err := inv.PaidAmount()
	if err != nil {
		return false, err
	}
	return paid.LessThan(inv.Amount), nil
}

// SalesInvoice is the invoice issued for a sales order
type SalesInvoice struct {
	Invoice
}

// TableName returns the table name for GORM
func (SalesInvoice) TableName() string {
	return "sales_invoices"
}

// PurchaseInvoice is the invoice received for a purchase order
type PurchaseInvoice struct {
	Invoice
}

// TableName returns the table name for GORM
func (PurchaseInvoice) TableName() string {
	return "purchase_invoices"
}
