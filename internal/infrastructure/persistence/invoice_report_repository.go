package persistence

import (
	"context"

	"github.com/erp/reporting/internal/domain/report"
	"github.com/erp/reporting/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceReportRepository implements report.InvoiceReportRepository using GORM
type GormInvoiceReportRepository struct {
	db           *gorm.DB
	baseCurrency string
}

// NewGormInvoiceReportRepository creates a new GormInvoiceReportRepository.
// Payments recorded in baseCurrency pass through unconverted; an empty
// value falls back to the store default.
func NewGormInvoiceReportRepository(db *gorm.DB, baseCurrency string) *GormInvoiceReportRepository {
	if baseCurrency == "" {
		baseCurrency = string(valueobject.DefaultCurrency)
	}
	return &GormInvoiceReportRepository{db: db, baseCurrency: baseCurrency}
}

// outstandingQuery selects purchase invoices whose payments, normalized
// to the base currency, fall strictly short of the invoice amount.
// Foreign-currency payments divide by the recorded conversion rate;
// NULLIF guards a zero rate from dividing.
func (r *GormInvoiceReportRepository) outstandingQuery(ctx context.Context, filter report.OutstandingInvoiceFilter) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("purchase_invoices pi").
		Joins(`LEFT JOIN (
			SELECT invoice_id,
				COALESCE(SUM(CASE WHEN currency = ? THEN amount ELSE amount / NULLIF(conversion_rate, 0) END), 0) as paid_total
			FROM invoice_payments GROUP BY invoice_id
		) pay ON pay.invoice_id = pi.id`, r.baseCurrency).
		Where("pi.deleted_at IS NULL").
		Where("pi.due_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("COALESCE(pay.paid_total, 0) < pi.amount")
}

// FindOutstanding returns one page of unpaid invoices due in the period, newest due date first
func (r *GormInvoiceReportRepository) FindOutstanding(ctx context.Context, filter report.OutstandingInvoiceFilter, limit, offset int) ([]report.OutstandingInvoiceRow, error) {
	var rows []report.OutstandingInvoiceRow

	err := r.outstandingQuery(ctx, filter).
		Select(`
			pi.id as invoice_id,
			pi.number as invoice_number,
			pi.order_id,
			pi.amount,
			COALESCE(pay.paid_total, 0) as paid_amount,
			pi.amount - COALESCE(pay.paid_total, 0) as remaining_amount,
			pi.due_date
		`).
		Order("pi.due_date DESC, pi.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// CountOutstanding returns the size of the filtered, unpaginated set
func (r *GormInvoiceReportRepository) CountOutstanding(ctx context.Context, filter report.OutstandingInvoiceFilter) (int64, error) {
	var count int64
	if err := r.outstandingQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SupplierNamesByOrderIDs resolves supplier names for a set of purchase
// order IDs. Soft-deleted orders still resolve so historical invoices
// keep their supplier.
func (r *GormInvoiceReportRepository) SupplierNamesByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(orderIDs) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	type orderSupplier struct {
		OrderID      uuid.UUID
		SupplierName string
	}

	var results []orderSupplier
	err := r.db.WithContext(ctx).
		Table("purchase_orders po").
		Select("po.id as order_id, su.name as supplier_name").
		Joins("JOIN suppliers su ON su.id = po.supplier_id").
		Where("po.id IN ?", orderIDs).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(results))
	for _, r := range results {
		names[r.OrderID] = r.SupplierName
	}

	return names, nil
}
