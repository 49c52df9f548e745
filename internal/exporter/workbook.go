package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"radarcli/internal/analytics"
)

const summarySheet = "Daily Summary"

// WorkbookExporter writes an XLSX workbook with the daily summary and
// one sheet per analyzed product.
type WorkbookExporter struct {
	reportsDir string
}

// NewWorkbookExporter creates a workbook exporter rooted at reportsDir.
func NewWorkbookExporter(reportsDir string) *WorkbookExporter {
	return &WorkbookExporter{reportsDir: reportsDir}
}

// ExportWorkbook writes the session workbook and returns its filename.
// Bar tables map to sheets named by product ID; sheet names built from
// descriptions would exceed Excel's 31-character limit.
func (e *WorkbookExporter) ExportWorkbook(summary *analytics.DailySummary, tables []*analytics.BarTable) (string, error) {
	if err := os.MkdirAll(e.reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(summarySheet); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := e.writeSummarySheet(f, summary); err != nil {
		return "", err
	}

	for _, table := range tables {
		if err := e.writeBarSheet(f, table); err != nil {
			return "", err
		}
	}

	filename := fmt.Sprintf("radar_%s.xlsx", summary.Date.Format("2006_01_02"))
	if err := f.SaveAs(filepath.Join(e.reportsDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return filename, nil
}

func (e *WorkbookExporter) writeSummarySheet(f *excelize.File, summary *analytics.DailySummary) error {
	header := []any{"Product", "Open", "High", "Low", "Close", "Prev Close", "Variation"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for i, row := range summary.Rows {
		cells := []any{
			row.Description,
			row.Open,
			row.High,
			row.Low,
			row.Close,
			optionalCell(row.PrevClose),
			row.VariationPercent(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address summary row %d: %w", i, err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i, err)
		}
	}
	return nil
}

func (e *WorkbookExporter) writeBarSheet(f *excelize.File, table *analytics.BarTable) error {
	sheet := fmt.Sprintf("Product %d", table.ProductID)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet for product %d: %w", table.ProductID, err)
	}

	header := []any{table.Description}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to title sheet for product %d: %w", table.ProductID, err)
	}

	columns := []any{"Date", "Open", "High", "Low", "Close", "MA10", "MA20", "Boll Upper", "Boll Lower"}
	if err := f.SetSheetRow(sheet, "A2", &columns); err != nil {
		return fmt.Errorf("failed to write bar header for product %d: %w", table.ProductID, err)
	}

	for i, bar := range table.Bars {
		cells := []any{
			formatDate(bar.Date),
			bar.Open,
			bar.High,
			bar.Low,
			bar.Close,
			optionalCell(bar.MA10),
			optionalCell(bar.MA20),
			optionalCell(bar.BollingerUpper),
			optionalCell(bar.BollingerLower),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return fmt.Errorf("failed to address bar row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write bar row %d: %w", i, err)
		}
	}
	return nil
}

// optionalCell maps a nullable value to an empty cell.
func optionalCell(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}
