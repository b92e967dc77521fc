package report

import (
	"context"
	"time"

	"github.com/erp/reporting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReportFilter defines filtering options for the sales report
type SalesReportFilter struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

// SalesOrderRow is a single invoiced order in the sales report.
// Profit comes from the store; ProfitAfterExpenses is filled in by the
// service once the period expense allocation is known.
type SalesOrderRow struct {
	OrderID             uuid.UUID       `json:"order_id"`
	OrderNumber         string          `json:"order_number"`
	OrderDate           time.Time       `json:"order_date"`
	CustomerName        string          `json:"customer_name"`
	InvoiceNumber       string          `json:"invoice_number"`
	InvoiceAmount       decimal.Decimal `json:"invoice_amount"`
	ReturnsTotal        decimal.Decimal `json:"returns_total"`
	NetAmount           decimal.Decimal `json:"net_amount"`
	UnitsSold           decimal.Decimal `json:"units_sold"`
	Profit              decimal.Decimal `json:"profit"`
	ProfitAfterExpenses decimal.Decimal `json:"profit_after_expenses"`
}

// SalesTotals holds the aggregates over the full filtered set
type SalesTotals struct {
	TotalSales  decimal.Decimal `json:"total_sales"` // Sum of (invoice amount - returns)
	TotalProfit decimal.Decimal `json:"total_profit"`
	TotalUnits  decimal.Decimal `json:"total_units"`
}

// SalesReport is the sales/invoice report
type SalesReport struct {
	Items                    []SalesOrderRow   `json:"items"`
	Pagination               shared.Pagination `json:"pagination"`
	TotalSales               decimal.Decimal   `json:"total_sales"`
	TotalProfit              decimal.Decimal   `json:"total_profit"`
	TotalProfitAfterExpenses decimal.Decimal   `json:"total_profit_after_expenses"`
	ExpensePerUnit           decimal.Decimal   `json:"expense_per_unit"`
}

// CustomerRanking represents one entry in the top-customers report
type CustomerRanking struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	OrderCount   int64           `json:"order_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SupplierRanking represents one entry in the top-suppliers report
type SupplierRanking struct {
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	OrderCount   int64           `json:"order_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesReportRepository defines the queries behind the sales report and
// the revenue rankings
type SalesReportRepository interface {
	// FindInvoicedOrders returns one page of invoiced orders in the
	// period, newest first
	FindInvoicedOrders(ctx context.Context, filter SalesReportFilter, limit, offset int) ([]SalesOrderRow, error)

	// CountInvoicedOrders returns the size of the filtered, unpaginated set
	CountInvoicedOrders(ctx context.Context, filter SalesReportFilter) (int64, error)

	// SumSalesTotals returns the aggregates over the full filtered set
	SumSalesTotals(ctx context.Context, filter SalesReportFilter) (*SalesTotals, error)

	// SumPeriodExpenses returns the total of expenses dated strictly
	// inside the period
	SumPeriodExpenses(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// TopCustomersByRevenue ranks customers by revenue over
	// non-cancelled orders, descending
	TopCustomersByRevenue(ctx context.Context, limit int) ([]CustomerRanking, error)

	// TopSuppliersByRevenue ranks suppliers by purchase volume over
	// non-cancelled orders, descending
	TopSuppliersByRevenue(ctx context.Context, limit int) ([]SupplierRanking, error)
}
