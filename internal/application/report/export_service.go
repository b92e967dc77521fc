package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/erp/reporting/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const salesSheetName = "Sales Report"

var salesSheetHeader = []string{
	"Order Number",
	"Order Date",
	"Customer",
	"Invoice Number",
	"Invoice Amount",
	"Returns",
	"Net Amount",
	"Units Sold",
	"Profit",
	"Profit After Expenses",
}

// ExportService renders report results into downloadable workbooks
type ExportService struct{}

// NewExportService creates a new ExportService
func NewExportService() *ExportService {
	return &ExportService{}
}

// SalesReportWorkbook writes the sales report rows and totals to an
// XLSX workbook
func (s *ExportService) SalesReportWorkbook(rep *report.SalesReport, start, end time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", salesSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, 1, []any{fmt.Sprintf("Sales report %s - %s",
		start.Format("2006-01-02"), end.Format("2006-01-02"))}); err != nil {
		return nil, err
	}

	header := make([]any, len(salesSheetHeader))
	for i, h := range salesSheetHeader {
		header[i] = h
	}
	if err := setRow(f, 2, header); err != nil {
		return nil, err
	}

	rowNum := 3
	for i := range rep.Items {
		item := &rep.Items[i]
		values := []any{
			item.OrderNumber,
			item.OrderDate.Format("2006-01-02"),
			item.CustomerName,
			item.InvoiceNumber,
			item.InvoiceAmount.InexactFloat64(),
			item.ReturnsTotal.InexactFloat64(),
			item.NetAmount.InexactFloat64(),
			item.UnitsSold.InexactFloat64(),
			item.Profit.InexactFloat64(),
			item.ProfitAfterExpenses.InexactFloat64(),
		}
		if err := setRow(f, rowNum, values); err != nil {
			return nil, err
		}
		rowNum++
	}

	totals := []any{
		"Totals", "", "", "",
		rep.TotalSales.InexactFloat64(),
		"", "", "",
		rep.TotalProfit.InexactFloat64(),
		rep.TotalProfitAfterExpenses.InexactFloat64(),
	}
	if err := setRow(f, rowNum+1, totals); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name (%d,%d): %w", col+1, row, err)
		}
		if err := f.SetCellValue(salesSheetName, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
