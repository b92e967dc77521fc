package report

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/reporting/internal/domain/report"
	"github.com/erp/reporting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// topRankLimit caps the revenue rankings
const topRankLimit = 10

// defaultPageSize is used when no page size is configured
const defaultPageSize = 20

// ReportService provides application-level report operations. It is
// stateless per request; the only cross-call state is the previous
// search term echoed through the request/response pair.
type ReportService struct {
	productRepo report.ProductReportRepository
	salesRepo   report.SalesReportRepository
	invoiceRepo report.InvoiceReportRepository
	pageSize    int
}

// NewReportService creates a new ReportService with a fixed page size
func NewReportService(
	productRepo report.ProductReportRepository,
	salesRepo report.SalesReportRepository,
	invoiceRepo report.InvoiceReportRepository,
	pageSize int,
) *ReportService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &ReportService{
		productRepo: productRepo,
		salesRepo:   salesRepo,
		invoiceRepo: invoiceRepo,
		pageSize:    pageSize,
	}
}

// PageSize returns the fixed page size of the service
func (s *ReportService) PageSize() int {
	return s.pageSize
}

// GetProducts returns one page of the inventory listing together with
// the category and brand filter options.
//
// A changed search term resets the page to 1 regardless of the page the
// caller asked for; an unchanged term preserves it.
func (s *ReportService) GetProducts(ctx context.Context, page int, search report.ProductSearch) (*report.ProductReport, error) {
	if search.Mode == "" {
		search.Mode = report.SearchByName
	}
	if !search.Mode.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown search mode %q", search.Mode))
	}
	if page < 1 || search.TermChanged() {
		page = 1
	}

	total, err := s.productRepo.CountProducts(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	items, err := s.productRepo.FindProducts(ctx, search, s.pageSize, s.offset(page))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	categories, err := s.productRepo.ActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	brands, err := s.productRepo.ActiveBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}

	// The response echoes the search with PreviousTerm advanced so the
	// next request can detect a changed term.
	search.PreviousTerm = search.Term

	return &report.ProductReport{
		Items:      items,
		Pagination: shared.NewPagination(page, s.pageSize, total),
		Search:     search,
		Categories: categories,
		Brands:     brands,
	}, nil
}

// GetTopTenCustomers ranks customers by revenue over non-cancelled
// orders, descending. Customers with no orders are excluded.
func (s *ReportService) GetTopTenCustomers(ctx context.Context) ([]report.CustomerRanking, error) {
	rankings, err := s.salesRepo.TopCustomersByRevenue(ctx, topRankLimit)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	return rankings, nil
}

// GetTopTenSuppliers ranks suppliers by purchase volume over
// non-cancelled orders, descending. Suppliers with no orders are excluded.
func (s *ReportService) GetTopTenSuppliers(ctx context.Context) ([]report.SupplierRanking, error) {
	rankings, err := s.salesRepo.TopSuppliersByRevenue(ctx, topRankLimit)
	if err != nil {
		return nil, fmt.Errorf("top suppliers: %w", err)
	}
	return rankings, nil
}

// GetSaleOrders returns one page of the sales report for all customers
func (s *ReportService) GetSaleOrders(ctx context.Context, page int, start, end time.Time) (*report.SalesReport, error) {
	return s.saleOrdersReport(ctx, page, start, end, nil)
}

// GetCustomerSaleOrders returns one page of the sales report narrowed
// to a single customer
func (s *ReportService) GetCustomerSaleOrders(ctx context.Context, page int, start, end time.Time, customerID uuid.UUID) (*report.SalesReport, error) {
	return s.saleOrdersReport(ctx, page, start, end, &customerID)
}

func (s *ReportService) saleOrdersReport(ctx context.Context, page int, start, end time.Time, customerID *uuid.UUID) (*report.SalesReport, error) {
	start, end, err := validatePeriod(start, end)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	filter := report.SalesReportFilter{
		StartDate:  start,
		EndDate:    end,
		CustomerID: customerID,
	}

	total, err := s.salesRepo.CountInvoicedOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count sale orders: %w", err)
	}

	rows, err := s.salesRepo.FindInvoicedOrders(ctx, filter, s.pageSize, s.offset(page))
	if err != nil {
		return nil, fmt.Errorf("find sale orders: %w", err)
	}

	return s.finishSalesReport(ctx, filter, rows, shared.NewPagination(page, s.pageSize, total))
}

// GetSaleOrdersForExport returns the sales report over the full period
// without pagination, for spreadsheet export
func (s *ReportService) GetSaleOrdersForExport(ctx context.Context, start, end time.Time) (*report.SalesReport, error) {
	start, end, err := validatePeriod(start, end)
	if err != nil {
		return nil, err
	}

	filter := report.SalesReportFilter{StartDate: start, EndDate: end}

	total, err := s.salesRepo.CountInvoicedOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count sale orders: %w", err)
	}

	var rows []report.SalesOrderRow
	if total > 0 {
		rows, err = s.salesRepo.FindInvoicedOrders(ctx, filter, int(total), 0)
		if err != nil {
			return nil, fmt.Errorf("find sale orders: %w", err)
		}
	}

	return s.finishSalesReport(ctx, filter, rows, shared.NewPagination(1, s.pageSize, total))
}

// finishSalesReport computes the set-wide aggregates and allocates
// period expenses across the fetched rows
func (s *ReportService) finishSalesReport(ctx context.Context, filter report.SalesReportFilter, rows []report.SalesOrderRow, pagination shared.Pagination) (*report.SalesReport, error) {
	totals, err := s.salesRepo.SumSalesTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("sum sales totals: %w", err)
	}

	expenses, err := s.salesRepo.SumPeriodExpenses(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("sum period expenses: %w", err)
	}

	// Allocate period expenses uniformly across every unit sold in the
	// period. With nothing sold the allocation is zero, not an error.
	expensePerUnit := decimal.Zero
	if totals.TotalUnits.IsPositive() {
		expensePerUnit = expenses.Div(totals.TotalUnits)
	}

	for i := range rows {
		rows[i].ProfitAfterExpenses = rows[i].Profit.Sub(expensePerUnit.Mul(rows[i].UnitsSold))
	}

	return &report.SalesReport{
		Items:                    rows,
		Pagination:               pagination,
		TotalSales:               totals.TotalSales,
		TotalProfit:              totals.TotalProfit,
		TotalProfitAfterExpenses: totals.TotalProfit.Sub(expensePerUnit.Mul(totals.TotalUnits)),
		ExpensePerUnit:           expensePerUnit,
	}, nil
}

// GetOutstandingInvoices returns one page of purchase invoices due in
// the period whose normalized payments fall short of the amount.
func (s *ReportService) GetOutstandingInvoices(ctx context.Context, page int, start, end time.Time) (*report.OutstandingInvoiceReport, error) {
	start, end, err := validatePeriod(start, end)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	filter := report.OutstandingInvoiceFilter{StartDate: start, EndDate: end}

	total, err := s.invoiceRepo.CountOutstanding(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count outstanding invoices: %w", err)
	}

	rows, err := s.invoiceRepo.FindOutstanding(ctx, filter, s.pageSize, s.offset(page))
	if err != nil {
		return nil, fmt.Errorf("find outstanding invoices: %w", err)
	}

	if err := s.resolveSupplierNames(ctx, rows); err != nil {
		return nil, err
	}

	// Totals the current page only; finance reconciles this report
	// page by page against the upstream system.
	totalUnpaid := decimal.Zero
	for i := range rows {
		totalUnpaid = totalUnpaid.Add(rows[i].RemainingAmount)
	}

	return &report.OutstandingInvoiceReport{
		Items:       rows,
		Pagination:  shared.NewPagination(page, s.pageSize, total),
		TotalUnpaid: totalUnpaid,
	}, nil
}

// resolveSupplierNames fills in supplier names through the owning
// purchase orders. A missing order is a data integrity fault and
// surfaces as not found.
func (s *ReportService) resolveSupplierNames(ctx context.Context, rows []report.OutstandingInvoiceRow) error {
	if len(rows) == 0 {
		return nil
	}

	orderIDs := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for i := range rows {
		if _, ok := seen[rows[i].OrderID]; ok {
			continue
		}
		seen[rows[i].OrderID] = struct{}{}
		orderIDs = append(orderIDs, rows[i].OrderID)
	}

	names, err := s.invoiceRepo.SupplierNamesByOrderIDs(ctx, orderIDs)
	if err != nil {
		return fmt.Errorf("resolve supplier names: %w", err)
	}

	for i := range rows {
		name, ok := names[rows[i].OrderID]
		if !ok {
			return fmt.Errorf("purchase order %s for invoice %s: %w", rows[i].OrderID, rows[i].InvoiceNumber, shared.ErrNotFound)
		}
		rows[i].SupplierName = name
	}

	return nil
}

// validatePeriod rejects a missing or future start date before any
// query is issued. A zero end date defaults to now.
func validatePeriod(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		return time.Time{}, time.Time{}, shared.ErrDateRequired
	}
	if start.After(time.Now()) {
		return time.Time{}, time.Time{}, shared.ErrDateInFuture
	}
	if end.IsZero() {
		end = time.Now()
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, shared.ErrInvalidPeriod
	}
	return start, end, nil
}

func (s *ReportService) offset(page int) int {
	return s.pageSize * (page - 1)
}
