package report

import (
	"context"
	"time"

	"github.com/erp/reporting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutstandingInvoiceFilter defines the period for the outstanding
// purchase invoice report, matched against invoice due dates
type OutstandingInvoiceFilter struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// OutstandingInvoiceRow is one unpaid purchase invoice. SupplierName is
// resolved through the owning purchase order after the page is fetched.
type OutstandingInvoiceRow struct {
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	OrderID         uuid.UUID       `json:"order_id"`
	SupplierName    string          `json:"supplier_name"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	DueDate         time.Time       `json:"due_date"`
}

// OutstandingInvoiceReport is the outstanding purchase invoice report.
// TotalUnpaid covers the returned page only, matching the upstream
// report the finance team reconciles against.
type OutstandingInvoiceReport struct {
	Items       []OutstandingInvoiceRow `json:"items"`
	Pagination  shared.Pagination       `json:"pagination"`
	TotalUnpaid decimal.Decimal         `json:"total_unpaid"`
}

// InvoiceReportRepository defines the queries behind the outstanding
// invoice report
type InvoiceReportRepository interface {
	// FindOutstanding returns one page of invoices due in the period
	// whose normalized payments fall short of the amount, newest due
	// date first
	FindOutstanding(ctx context.Context, filter OutstandingInvoiceFilter, limit, offset int) ([]OutstandingInvoiceRow, error)

	// CountOutstanding returns the size of the filtered, unpaginated set
	CountOutstanding(ctx context.Context, filter OutstandingInvoiceFilter) (int64, error)

	// SupplierNamesByOrderIDs resolves supplier names for a set of
	// purchase order IDs
	SupplierNamesByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]string, error)
}
