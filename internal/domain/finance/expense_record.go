package finance

import (
	"time"

	"github.com/erp/reporting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseRecord represents an operating expense booked by the main
// backend. The sales report allocates period expenses uniformly across
// units sold.
type ExpenseRecord struct {
	shared.BaseEntity
	ExpenseDate time.Time       `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseRecord) TableName() string {
	return "expense_records"
}
