package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appreport "github.com/erp/reporting/internal/application/report"
	"github.com/erp/reporting/internal/domain/report"
	httprouter "github.com/erp/reporting/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProductRepo implements report.ProductReportRepository with canned data
type stubProductRepo struct {
	products []report.ProductRow
	total    int64
}

func (s *stubProductRepo) FindProducts(ctx context.Context, search report.ProductSearch, limit, offset int) ([]report.ProductRow, error) {
	return s.products, nil
}

func (s *stubProductRepo) CountProducts(ctx context.Context, search report.ProductSearch) (int64, error) {
	return s.total, nil
}

func (s *stubProductRepo) ActiveCategories(ctx context.Context) ([]report.FilterOption, error) {
	return []report.FilterOption{{ID: uuid.New(), Name: "Widgets"}}, nil
}

func (s *stubProductRepo) ActiveBrands(ctx context.Context) ([]report.FilterOption, error) {
	return []report.FilterOption{{ID: uuid.New(), Name: "Acme"}}, nil
}

// stubSalesRepo implements report.SalesReportRepository with canned data
type stubSalesRepo struct {
	orders    []report.SalesOrderRow
	total     int64
	totals    report.SalesTotals
	expenses  decimal.Decimal
	customers []report.CustomerRanking
	suppliers []report.SupplierRanking
}

func (s *stubSalesRepo) FindInvoicedOrders(ctx context.Context, filter report.SalesReportFilter, limit, offset int) ([]report.SalesOrderRow, error) {
	return s.orders, nil
}

func (s *stubSalesRepo) CountInvoicedOrders(ctx context.Context, filter report.SalesReportFilter) (int64, error) {
	return s.total, nil
}

func (s *stubSalesRepo) SumSalesTotals(ctx context.Context, filter report.SalesReportFilter) (*report.SalesTotals, error) {
	totals := s.totals
	return &totals, nil
}

func (s *stubSalesRepo) SumPeriodExpenses(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	return s.expenses, nil
}

func (s *stubSalesRepo) TopCustomersByRevenue(ctx context.Context, limit int) ([]report.CustomerRanking, error) {
	return s.customers, nil
}

func (s *stubSalesRepo) TopSuppliersByRevenue(ctx context.Context, limit int) ([]report.SupplierRanking, error) {
	return s.suppliers, nil
}

// stubInvoiceRepo implements report.InvoiceReportRepository with canned data
type stubInvoiceRepo struct {
	invoices []report.OutstandingInvoiceRow
	total    int64
	names    map[uuid.UUID]string
}

func (s *stubInvoiceRepo) FindOutstanding(ctx context.Context, filter report.OutstandingInvoiceFilter, limit, offset int) ([]report.OutstandingInvoiceRow, error) {
	return s.invoices, nil
}

func (s *stubInvoiceRepo) CountOutstanding(ctx context.Context, filter report.OutstandingInvoiceFilter) (int64, error) {
	return s.total, nil
}

func (s *stubInvoiceRepo) SupplierNamesByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	return s.names, nil
}

type handlerFixture struct {
	engine  *gin.Engine
	product *stubProductRepo
	sales   *stubSalesRepo
	invoice *stubInvoiceRepo
}

func newHandlerFixture() *handlerFixture {
	gin.SetMode(gin.TestMode)

	f := &handlerFixture{
		product: &stubProductRepo{},
		sales:   &stubSalesRepo{},
		invoice: &stubInvoiceRepo{},
	}

	service := appreport.NewReportService(f.product, f.sales, f.invoice, 20)
	h := NewReportHandler(service, appreport.NewExportService())

	f.engine = gin.New()
	httprouter.NewRouter(f.engine).Register(h.Routes()).Setup()

	return f
}

func (f *handlerFixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestReportHandler_GetProducts(t *testing.T) {
	t.Run("returns the listing with filter options", func(t *testing.T) {
		f := newHandlerFixture()
		f.product.products = []report.ProductRow{{
			ID:       uuid.New(),
			Code:     "P001",
			Name:     "Blue Widget",
			Quantity: decimal.NewFromInt(3),
		}}
		f.product.total = 1

		w := f.get(t, "/api/v1/reports/products?term=widget")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])

		data := body["data"].(map[string]any)
		items := data["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "Blue Widget", items[0].(map[string]any)["name"])

		// The echoed search advances previous_term for the next request
		search := data["search"].(map[string]any)
		assert.Equal(t, "widget", search["previous_term"])
	})

	t.Run("rejects an unknown search mode", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.get(t, "/api/v1/reports/products?mode=color")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ERR_VALIDATION", body["error"].(map[string]any)["code"])
	})

	t.Run("rejects a malformed category filter", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.get(t, "/api/v1/reports/products?category_id=not-a-uuid")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHandler_TopRankings(t *testing.T) {
	t.Run("returns top customers", func(t *testing.T) {
		f := newHandlerFixture()
		f.sales.customers = []report.CustomerRanking{{
			CustomerID:   uuid.New(),
			CustomerName: "ABC Trading",
			OrderCount:   5,
			Revenue:      decimal.NewFromInt(900),
		}}

		w := f.get(t, "/api/v1/reports/customers/top")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		rankings := body["data"].([]any)
		require.Len(t, rankings, 1)
		assert.Equal(t, "ABC Trading", rankings[0].(map[string]any)["customer_name"])
	})

	t.Run("returns top suppliers", func(t *testing.T) {
		f := newHandlerFixture()
		f.sales.suppliers = []report.SupplierRanking{{
			SupplierID:   uuid.New(),
			SupplierName: "Main Supplier",
		}}

		w := f.get(t, "/api/v1/reports/suppliers/top")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		rankings := body["data"].([]any)
		require.Len(t, rankings, 1)
		assert.Equal(t, "Main Supplier", rankings[0].(map[string]any)["supplier_name"])
	})
}

func TestReportHandler_GetSaleOrders(t *testing.T) {
	t.Run("returns the sales report", func(t *testing.T) {
		f := newHandlerFixture()
		f.sales.orders = []report.SalesOrderRow{{
			OrderID:      uuid.New(),
			OrderNumber:  "SO-001",
			CustomerName: "ABC Trading",
			Profit:       decimal.NewFromInt(40),
			UnitsSold:    decimal.NewFromInt(4),
		}}
		f.sales.total = 1
		f.sales.totals = report.SalesTotals{
			TotalSales:  decimal.NewFromInt(80),
			TotalProfit: decimal.NewFromInt(40),
			TotalUnits:  decimal.NewFromInt(4),
		}
		f.sales.expenses = decimal.NewFromInt(20)

		w := f.get(t, "/api/v1/reports/sales?start_date=2024-01-01&end_date=2024-01-31")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data := body["data"].(map[string]any)
		assert.Equal(t, "80", data["total_sales"])
		assert.Equal(t, "5", data["expense_per_unit"])

		items := data["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "20", items[0].(map[string]any)["profit_after_expenses"])
	})

	t.Run("requires a start date", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.get(t, "/api/v1/reports/sales")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ERR_VALIDATION", body["error"].(map[string]any)["code"])
	})

	t.Run("rejects an unparseable date", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.get(t, "/api/v1/reports/sales?start_date=January")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ERR_BAD_REQUEST", body["error"].(map[string]any)["code"])
	})
}

func TestReportHandler_GetCustomerSaleOrders(t *testing.T) {
	t.Run("rejects a malformed customer ID", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.get(t, "/api/v1/reports/sales/customers/nope?start_date=2024-01-01")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns the customer report", func(t *testing.T) {
		f := newHandlerFixture()
		f.sales.totals = report.SalesTotals{}

		w := f.get(t, "/api/v1/reports/sales/customers/"+uuid.NewString()+"?start_date=2024-01-01")

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestReportHandler_GetOutstandingInvoices(t *testing.T) {
	t.Run("returns outstanding invoices with supplier names", func(t *testing.T) {
		f := newHandlerFixture()
		orderID := uuid.New()
		f.invoice.invoices = []report.OutstandingInvoiceRow{{
			InvoiceID:       uuid.New(),
			InvoiceNumber:   "PINV-001",
			OrderID:         orderID,
			Amount:          decimal.NewFromInt(500),
			PaidAmount:      decimal.NewFromInt(200),
			RemainingAmount: decimal.NewFromInt(300),
		}}
		f.invoice.total = 1
		f.invoice.names = map[uuid.UUID]string{orderID: "Main Supplier"}

		w := f.get(t, "/api/v1/reports/invoices/outstanding?start_date=2024-01-01&end_date=2024-03-31")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data := body["data"].(map[string]any)
		assert.Equal(t, "300", data["total_unpaid"])

		items := data["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "Main Supplier", items[0].(map[string]any)["supplier_name"])
	})

	t.Run("surfaces a missing purchase order as not found", func(t *testing.T) {
		f := newHandlerFixture()
		f.invoice.invoices = []report.OutstandingInvoiceRow{{
			InvoiceID:     uuid.New(),
			InvoiceNumber: "PINV-404",
			OrderID:       uuid.New(),
		}}
		f.invoice.total = 1
		f.invoice.names = map[uuid.UUID]string{}

		w := f.get(t, "/api/v1/reports/invoices/outstanding?start_date=2024-01-01")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReportHandler_ExportSaleOrders(t *testing.T) {
	t.Run("streams an XLSX attachment", func(t *testing.T) {
		f := newHandlerFixture()
		f.sales.orders = []report.SalesOrderRow{{
			OrderID:     uuid.New(),
			OrderNumber: "SO-001",
		}}
		f.sales.total = 1

		w := f.get(t, "/api/v1/reports/sales/export?start_date=2024-01-01&end_date=2024-01-31")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "sales-report-2024-01-01.xlsx")
		assert.NotEmpty(t, w.Body.Bytes())
	})

	t.Run("validates the period before exporting", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.get(t, "/api/v1/reports/sales/export")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
