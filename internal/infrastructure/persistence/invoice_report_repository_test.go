package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/reporting/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInvoiceReportRepository creates a GormInvoiceReportRepository with a mocked SQL connection
func newMockInvoiceReportRepository(t *testing.T) (*GormInvoiceReportRepository, sqlmock.Sqlmock, *sql.DB) {
	return newMockInvoiceReportRepositoryWithCurrency(t, "")
}

func newMockInvoiceReportRepositoryWithCurrency(t *testing.T, baseCurrency string) (*GormInvoiceReportRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInvoiceReportRepository(gormDB, baseCurrency), mock, mockDB
}

func TestGormInvoiceReportRepository_FindOutstanding(t *testing.T) {
	t.Run("returns unpaid invoices with normalized payments", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceReportRepository(t)
		defer mockDB.Close()

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		invoiceID := uuid.New()
		orderID := uuid.New()
		dueDate := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{
			"invoice_id", "invoice_number", "order_id", "amount", "paid_amount", "remaining_amount", "due_date",
		}).AddRow(invoiceID, "PINV-001", orderID,
			decimal.NewFromInt(500), decimal.NewFromInt(200), decimal.NewFromInt(300), dueDate)

		mock.ExpectQuery(`(?s)SELECT.*FROM purchase_invoices pi.*CASE WHEN currency = \$1 THEN amount ELSE amount / NULLIF\(conversion_rate, 0\) END.*pi\.due_date BETWEEN \$2 AND \$3.*COALESCE\(pay\.paid_total, 0\) < pi\.amount.*ORDER BY pi\.due_date DESC, pi\.id ASC.*`).
			WithArgs("CNY", start, end).
			WillReturnRows(rows)

		result, err := repo.FindOutstanding(context.Background(), report.OutstandingInvoiceFilter{
			StartDate: start,
			EndDate:   end,
		}, 20, 0)

		assert.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "PINV-001", result[0].InvoiceNumber)
		assert.Equal(t, orderID, result[0].OrderID)
		assert.True(t, result[0].RemainingAmount.Equal(decimal.NewFromInt(300)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("normalizes against the configured base currency", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceReportRepositoryWithCurrency(t, "USD")
		defer mockDB.Close()

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`(?s)SELECT.*FROM purchase_invoices pi.*CASE WHEN currency = \$1 THEN amount.*`).
			WithArgs("USD", start, end).
			WillReturnRows(sqlmock.NewRows([]string{
				"invoice_id", "invoice_number", "order_id", "amount", "paid_amount", "remaining_amount", "due_date",
			}))

		_, err := repo.FindOutstanding(context.Background(), report.OutstandingInvoiceFilter{
			StartDate: start,
			EndDate:   end,
		}, 20, 0)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceReportRepository_CountOutstanding(t *testing.T) {
	t.Run("counts the filtered set", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceReportRepository(t)
		defer mockDB.Close()

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`(?s)SELECT count\(\*\) FROM purchase_invoices pi.*`).
			WithArgs("CNY", start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountOutstanding(context.Background(), report.OutstandingInvoiceFilter{
			StartDate: start,
			EndDate:   end,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceReportRepository_SupplierNamesByOrderIDs(t *testing.T) {
	t.Run("resolves supplier names through purchase orders", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceReportRepository(t)
		defer mockDB.Close()

		firstOrder := uuid.New()
		secondOrder := uuid.New()

		rows := sqlmock.NewRows([]string{"order_id", "supplier_name"}).
			AddRow(firstOrder, "Main Supplier").
			AddRow(secondOrder, "Backup Supplier")

		mock.ExpectQuery(`SELECT po\.id as order_id, su\.name as supplier_name FROM purchase_orders po JOIN suppliers su ON su\.id = po\.supplier_id WHERE po\.id IN \(\$1,\$2\)`).
			WithArgs(firstOrder, secondOrder).
			WillReturnRows(rows)

		names, err := repo.SupplierNamesByOrderIDs(context.Background(), []uuid.UUID{firstOrder, secondOrder})

		assert.NoError(t, err)
		require.Len(t, names, 2)
		assert.Equal(t, "Main Supplier", names[firstOrder])
		assert.Equal(t, "Backup Supplier", names[secondOrder])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty map for no IDs without querying", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceReportRepository(t)
		defer mockDB.Close()

		names, err := repo.SupplierNamesByOrderIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, names)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
