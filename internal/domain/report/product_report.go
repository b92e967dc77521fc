package report

import (
	"context"

	"github.com/erp/reporting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SearchMode selects which field a free-text product search matches
// against. Each mode maps to one (filter predicate, sort key) pair.
type SearchMode string

const (
	SearchByName     SearchMode = "name"
	SearchByCategory SearchMode = "category"
	SearchByBrand    SearchMode = "brand"
)

// IsValid checks if the mode is a valid SearchMode
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchByName, SearchByCategory, SearchByBrand:
		return true
	}
	return false
}

// ProductSearch defines the search criteria for the inventory listing.
// PreviousTerm is echoed back by the caller from the prior response; a
// changed term resets pagination to the first page.
type ProductSearch struct {
	Term         string     `json:"term"`
	PreviousTerm string     `json:"previous_term"`
	Barcode      string     `json:"barcode"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	BrandID      *uuid.UUID `json:"brand_id,omitempty"`
	Mode         SearchMode `json:"mode"`
}

// TermChanged reports whether the search term differs from the one the
// caller carried over from the previous request
func (s ProductSearch) TermChanged() bool {
	return s.Term != s.PreviousTerm
}

// ProductRow is a single row in the inventory listing
type ProductRow struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode,omitempty"`
	CategoryName  string          `json:"category_name,omitempty"`
	BrandName     string          `json:"brand_name,omitempty"`
	QualityName   string          `json:"quality_name,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// FilterOption is a (id, name) pair used to populate filter dropdowns
type FilterOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductReport is the inventory listing report
type ProductReport struct {
	Items      []ProductRow      `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
	Search     ProductSearch     `json:"search"`
	Categories []FilterOption    `json:"categories"`
	Brands     []FilterOption    `json:"brands"`
}

// ProductReportRepository defines the queries behind the inventory listing
type ProductReportRepository interface {
	// FindProducts returns one page of the filtered, sorted listing
	FindProducts(ctx context.Context, search ProductSearch, limit, offset int) ([]ProductRow, error)

	// CountProducts returns the size of the filtered, unpaginated set
	CountProducts(ctx context.Context, search ProductSearch) (int64, error)

	// ActiveCategories returns all active categories for dropdowns
	ActiveCategories(ctx context.Context) ([]FilterOption, error)

	// ActiveBrands returns all active brands for dropdowns
	ActiveBrands(ctx context.Context) ([]FilterOption, error)
}
