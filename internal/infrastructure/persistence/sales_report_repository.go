package persistence

import (
	"context"
	"time"

	"github.com/erp/reporting/internal/domain/report"
	"github.com/erp/reporting/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements report.SalesReportRepository using GORM
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// invoicedOrdersQuery joins invoices to their orders with per-order
// item totals and per-invoice return totals pre-aggregated, so the
// join never fans out.
func (r *GormSalesReportRepository) invoicedOrdersQuery(ctx context.Context, filter report.SalesReportFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("sales_invoices si").
		Joins("JOIN sales_orders so ON so.id = si.order_id").
		Joins("JOIN customers cu ON cu.id = so.customer_id").
		Joins(`LEFT JOIN (
			SELECT order_id,
				COALESCE(SUM(quantity), 0) as units_sold,
				COALESCE(SUM((unit_price - unit_cost) * quantity), 0) as profit
			FROM sales_order_items GROUP BY order_id
		) itm ON itm.order_id = so.id`).
		Joins(`LEFT JOIN (
			SELECT invoice_id, COALESCE(SUM(value), 0) as returns_total
			FROM invoice_returns GROUP BY invoice_id
		) ret ON ret.invoice_id = si.id`).
		Where("si.deleted_at IS NULL").
		Where("so.deleted_at IS NULL").
		Where("so.status <> ?", trade.OrderStatusCancelled.String()).
		Where("so.order_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)

	if filter.CustomerID != nil {
		query = query.Where("so.customer_id = ?", *filter.CustomerID)
	}

	return query
}

// FindInvoicedOrders returns one page of invoiced orders in the period, newest first
func (r *GormSalesReportRepository) FindInvoicedOrders(ctx context.Context, filter report.SalesReportFilter, limit, offset int) ([]report.SalesOrderRow, error) {
	var rows []report.SalesOrderRow

	err := r.invoicedOrdersQuery(ctx, filter).
		Select(`
			so.id as order_id,
			so.number as order_number,
			so.order_date,
			cu.name as customer_name,
			si.number as invoice_number,
			si.amount as invoice_amount,
			COALESCE(ret.returns_total, 0) as returns_total,
			si.amount - COALESCE(ret.returns_total, 0) as net_amount,
			COALESCE(itm.units_sold, 0) as units_sold,
			COALESCE(itm.profit, 0) as profit
		`).
		Order("so.order_date DESC, so.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// CountInvoicedOrders returns the size of the filtered, unpaginated set
func (r *GormSalesReportRepository) CountInvoicedOrders(ctx context.Context, filter report.SalesReportFilter) (int64, error) {
	var count int64
	if err := r.invoicedOrdersQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumSalesTotals returns the aggregates over the full filtered set
func (r *GormSalesReportRepository) SumSalesTotals(ctx context.Context, filter report.SalesReportFilter) (*report.SalesTotals, error) {
	var totals report.SalesTotals

	err := r.invoicedOrdersQuery(ctx, filter).
		Select(`
			COALESCE(SUM(si.amount - COALESCE(ret.returns_total, 0)), 0) as total_sales,
			COALESCE(SUM(COALESCE(itm.profit, 0)), 0) as total_profit,
			COALESCE(SUM(COALESCE(itm.units_sold, 0)), 0) as total_units
		`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

// SumPeriodExpenses returns the total of expenses dated strictly inside the period
func (r *GormSalesReportRepository) SumPeriodExpenses(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	err := r.db.WithContext(ctx).
		Table("expense_records").
		Select("COALESCE(SUM(amount), 0) as total").
		Where("expense_date > ? AND expense_date < ?", start, end).
		Scan(&result).Error
	if err != nil {
		return decimal.Decimal{}, err
	}

	return result.Total, nil
}

// TopCustomersByRevenue ranks customers by revenue over non-cancelled orders, descending
func (r *GormSalesReportRepository) TopCustomersByRevenue(ctx context.Context, limit int) ([]report.CustomerRanking, error) {
	var rankings []report.CustomerRanking

	err := r.db.WithContext(ctx).
		Table("sales_orders so").
		Select(`
			so.customer_id,
			cu.name as customer_name,
			COUNT(DISTINCT so.id) as order_count,
			COALESCE(SUM(soi.quantity * soi.unit_price), 0) as revenue
		`).
		Joins("JOIN customers cu ON cu.id = so.customer_id").
		Joins("LEFT JOIN sales_order_items soi ON soi.order_id = so.id").
		Where("so.deleted_at IS NULL").
		Where("so.status <> ?", trade.OrderStatusCancelled.String()).
		Group("so.customer_id, cu.name").
		Order("revenue DESC, so.customer_id ASC").
		Limit(limit).
		Scan(&rankings).Error
	if err != nil {
		return nil, err
	}

	return rankings, nil
}

// TopSuppliersByRevenue ranks suppliers by purchase volume over non-cancelled orders, descending
func (r *GormSalesReportRepository) TopSuppliersByRevenue(ctx context.Context, limit int) ([]report.SupplierRanking, error) {
	var rankings []report.SupplierRanking

	err := r.db.WithContext(ctx).
		Table("purchase_orders po").
		Select(`
			po.supplier_id,
			su.name as supplier_name,
			COUNT(DISTINCT po.id) as order_count,
			COALESCE(SUM(poi.quantity * poi.unit_price), 0) as revenue
		`).
		Joins("JOIN suppliers su ON su.id = po.supplier_id").
		Joins("LEFT JOIN purchase_order_items poi ON poi.order_id = po.id").
		Where("po.deleted_at IS NULL").
		Where("po.status <> ?", trade.OrderStatusCancelled.String()).
		Group("po.supplier_id, su.name").
		Order("revenue DESC, po.supplier_id ASC").
		Limit(limit).
		Scan(&rankings).Error
	if err != nil {
		return nil, err
	}

	return rankings, nil
}
