package persistence

import (
	"context"

	"github.com/erp/reporting/internal/domain/report"
	"gorm.io/gorm"
)

// GormProductReportRepository implements report.ProductReportRepository using GORM
type GormProductReportRepository struct {
	db *gorm.DB
}

// NewGormProductReportRepository creates a new GormProductReportRepository
func NewGormProductReportRepository(db *gorm.DB) *GormProductReportRepository {
	return &GormProductReportRepository{db: db}
}

// baseQuery joins the lookup tables the listing and its filters need
func (r *GormProductReportRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products p").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN brands b ON b.id = p.brand_id").
		Joins("LEFT JOIN qualities q ON q.id = p.quality_id").
		Where("p.deleted_at IS NULL")
}

// applyFilter narrows the listing to the search criteria. A barcode
// lookup is exact and takes precedence over the free-text term.
func applyProductFilter(query *gorm.DB, search report.ProductSearch) *gorm.DB {
	if search.Barcode != "" {
		query = query.Where("p.barcode = ?", search.Barcode)
	} else if search.Term != "" {
		pattern := "%" + search.Term + "%"
		switch search.Mode {
		case report.SearchByCategory:
			query = query.Where("c.name ILIKE ?", pattern)
		case report.SearchByBrand:
			query = query.Where("b.name ILIKE ?", pattern)
		default:
			query = query.Where("p.name ILIKE ?", pattern)
		}
	}

	if search.CategoryID != nil {
		query = query.Where("p.category_id = ?", *search.CategoryID)
	}
	if search.BrandID != nil {
		query = query.Where("p.brand_id = ?", *search.BrandID)
	}

	return query
}

// listingOrder returns the ORDER BY clause for the search. A term
// search sorts by the matched field; the plain listing surfaces low
// stock first.
func listingOrder(search report.ProductSearch) string {
	if search.Barcode == "" && search.Term != "" {
		switch search.Mode {
		case report.SearchByCategory:
			return "c.name ASC, p.name ASC, p.id ASC"
		case report.SearchByBrand:
			return "b.name ASC, p.name ASC, p.id ASC"
		default:
			return "p.name ASC, p.id ASC"
		}
	}
	return "p.quantity ASC, p.id ASC"
}

// FindProducts returns one page of the filtered, sorted listing
func (r *GormProductReportRepository) FindProducts(ctx context.Context, search report.ProductSearch, limit, offset int) ([]report.ProductRow, error) {
	var rows []report.ProductRow

	query := applyProductFilter(r.baseQuery(ctx), search).
		Select(`
			p.id,
			p.code,
			p.name,
			p.barcode,
			COALESCE(c.name, '') as category_name,
			COALESCE(b.name, '') as brand_name,
			COALESCE(q.name, '') as quality_name,
			p.quantity,
			p.purchase_price,
			p.selling_price
		`).
		Order(listingOrder(search)).
		Limit(limit).
		Offset(offset)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// CountProducts returns the size of the filtered, unpaginated set
func (r *GormProductReportRepository) CountProducts(ctx context.Context, search report.ProductSearch) (int64, error) {
	var count int64
	if err := applyProductFilter(r.baseQuery(ctx), search).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ActiveCategories returns all active categories for dropdowns
func (r *GormProductReportRepository) ActiveCategories(ctx context.Context) ([]report.FilterOption, error) {
	var options []report.FilterOption
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("id, name").
		Where("is_active = ?", true).
		Order("name ASC").
		Scan(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

// ActiveBrands returns all active brands for dropdowns
func (r *GormProductReportRepository) ActiveBrands(ctx context.Context) ([]report.FilterOption, error) {
	var options []report.FilterOption
	err := r.db.WithContext(ctx).
		Table("brands").
		Select("id, name").
		Where("is_active = ?", true).
		Order("name ASC").
		Scan(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
