package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	appreport "github.com/erp/reporting/internal/application/report"
	"github.com/erp/reporting/internal/domain/report"
	"github.com/erp/reporting/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// dateLayout is the wire format for report period boundaries
const dateLayout = "2006-01-02"

// ReportHandler serves the read-only report endpoints
type ReportHandler struct {
	BaseHandler
	service *appreport.ReportService
	export  *appreport.ExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *appreport.ReportService, export *appreport.ExportService) *ReportHandler {
	return &ReportHandler{
		service: service,
		export:  export,
	}
}

// Routes returns the route group for the report domain
func (h *ReportHandler) Routes() *router.DomainGroup {
	reports := router.NewDomainGroup("reports", "/reports")
	reports.GET("/products", h.GetProducts)
	reports.GET("/customers/top", h.GetTopCustomers)
	reports.GET("/suppliers/top", h.GetTopSuppliers)
	reports.GET("/sales", h.GetSaleOrders)
	reports.GET("/sales/export", h.ExportSaleOrders)
	reports.GET("/sales/customers/:id", h.GetCustomerSaleOrders)
	reports.GET("/invoices/outstanding", h.GetOutstandingInvoices)
	return reports
}

// GetProducts returns one page of the inventory listing
func (h *ReportHandler) GetProducts(c *gin.Context) {
	search := report.ProductSearch{
		Term:         c.Query("term"),
		PreviousTerm: c.Query("previous_term"),
		Barcode:      c.Query("barcode"),
		Mode:         report.SearchMode(c.Query("mode")),
	}

	categoryID, ok := h.optionalUUID(c, "category_id")
	if !ok {
		return
	}
	search.CategoryID = categoryID

	brandID, ok := h.optionalUUID(c, "brand_id")
	if !ok {
		return
	}
	search.BrandID = brandID

	result, err := h.service.GetProducts(c.Request.Context(), queryPage(c), search)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, result.Pagination.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// GetTopCustomers returns the ten customers with the highest revenue
func (h *ReportHandler) GetTopCustomers(c *gin.Context) {
	rankings, err := h.service.GetTopTenCustomers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rankings)
}

// GetTopSuppliers returns the ten suppliers with the highest purchase volume
func (h *ReportHandler) GetTopSuppliers(c *gin.Context) {
	rankings, err := h.service.GetTopTenSuppliers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rankings)
}

// GetSaleOrders returns one page of the sales report
func (h *ReportHandler) GetSaleOrders(c *gin.Context) {
	start, end, ok := h.queryPeriod(c)
	if !ok {
		return
	}

	result, err := h.service.GetSaleOrders(c.Request.Context(), queryPage(c), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, result.Pagination.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// GetCustomerSaleOrders returns one page of the sales report for a single customer
func (h *ReportHandler) GetCustomerSaleOrders(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid customer ID")
		return
	}

	start, end, ok := h.queryPeriod(c)
	if !ok {
		return
	}

	result, err := h.service.GetCustomerSaleOrders(c.Request.Context(), queryPage(c), start, end, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, result.Pagination.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// GetOutstandingInvoices returns one page of unpaid purchase invoices
func (h *ReportHandler) GetOutstandingInvoices(c *gin.Context) {
	start, end, ok := h.queryPeriod(c)
	if !ok {
		return
	}

	result, err := h.service.GetOutstandingInvoices(c.Request.Context(), queryPage(c), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, result.Pagination.Total, result.Pagination.Page, result.Pagination.PageSize)
}

// ExportSaleOrders streams the full sales report for the period as an
// XLSX workbook
func (h *ReportHandler) ExportSaleOrders(c *gin.Context) {
	start, end, ok := h.queryPeriod(c)
	if !ok {
		return
	}

	result, err := h.service.GetSaleOrdersForExport(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	buf, err := h.export.SalesReportWorkbook(result, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("sales-report-%s.xlsx", start.Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// queryPeriod parses the start_date and end_date query parameters.
// Period validation itself belongs to the service; this only rejects
// unparseable dates.
func (h *ReportHandler) queryPeriod(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := parseDate(c.Query("start_date"))
	if err != nil {
		h.BadRequest(c, "invalid start_date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}

	end, err := parseDate(c.Query("end_date"))
	if err != nil {
		h.BadRequest(c, "invalid end_date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// optionalUUID parses an optional UUID query parameter, responding with
// 400 on malformed input
func (h *ReportHandler) optionalUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}

	id, err := uuid.Parse(value)
	if err != nil {
		h.BadRequest(c, fmt.Sprintf("invalid %s", name))
		return nil, false
	}

	return &id, true
}

// queryPage parses the page query parameter, defaulting to 1
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parseDate parses a report period boundary. An empty value is the
// zero time; the service decides whether that is acceptable.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
