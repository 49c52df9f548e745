package exporter

import (
	"fmt"

	"radarcli/internal/analytics"
)

// ReportExporter writes analysis tables as CSV reports.
type ReportExporter struct {
	csvWriter *CSVWriter
}

// NewReportExporter creates a report exporter rooted at reportsDir.
func NewReportExporter(reportsDir string) *ReportExporter {
	return &ReportExporter{csvWriter: NewCSVWriter(reportsDir)}
}

// ExportSummary writes the daily summary table. Undefined variations
// are written as "N/A", matching the on-screen rendering.
func (e *ReportExporter) ExportSummary(summary *analytics.DailySummary) (string, error) {
	filename := fmt.Sprintf("daily_summary_%s.csv", summary.Date.Format("2006_01_02"))

	headers := []string{"Product", "Open", "High", "Low", "Close", "Prev Close", "Variation"}
	records := make([][]string, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		records = append(records, []string{
			row.Description,
			formatFloat(row.Open),
			formatFloat(row.High),
			formatFloat(row.Low),
			formatFloat(row.Close),
			formatOptional(row.PrevClose),
			row.VariationPercent(),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(filename, headers, records); err != nil {
		return "", fmt.Errorf("failed to export daily summary: %w", err)
	}
	return filename, nil
}

// ExportBars writes one product's OHLC and indicator table.
func (e *ReportExporter) ExportBars(table *analytics.BarTable) (string, error) {
	filename := fmt.Sprintf("bars_%d.csv", table.ProductID)

	headers := []string{
		"Date", "Open", "High", "Low", "Close",
		"MA10", "MA20",
		"Bollinger Upper", "Bollinger Lower",
		"Bollinger Upper 1SD", "Bollinger Lower 1SD",
	}
	records := make([][]string, 0, len(table.Bars))
	for _, bar := range table.Bars {
		records = append(records, []string{
			formatDate(bar.Date),
			formatFloat(bar.Open),
			formatFloat(bar.High),
			formatFloat(bar.Low),
			formatFloat(bar.Close),
			formatOptional(bar.MA10),
			formatOptional(bar.MA20),
			formatOptional(bar.BollingerUpper),
			formatOptional(bar.BollingerLower),
			formatOptional(bar.BollingerUpper1Std),
			formatOptional(bar.BollingerLower1Std),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(filename, headers, records); err != nil {
		return "", fmt.Errorf("failed to export bars for product %d: %w", table.ProductID, err)
	}
	return filename, nil
}

// ExportVolume writes one product's volume table. In totals-only mode
// the decomposed columns stay empty.
func (e *ReportExporter) ExportVolume(table *analytics.VolumeTable) (string, error) {
	filename := fmt.Sprintf("volume_%d.csv", table.ProductID)

	headers := []string{
		"Date", "Total", "Buy", "Sell", "Net",
		"Cumulative Net", "Cum Net MA10", "Cum Net MA20",
	}
	records := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, []string{
			formatDate(row.Date),
			formatFloat(row.Total),
			formatOptional(row.Buy),
			formatOptional(row.Sell),
			formatOptional(row.Net),
			formatOptional(row.CumulativeNet),
			formatOptional(row.CumNetMA10),
			formatOptional(row.CumNetMA20),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(filename, headers, records); err != nil {
		return "", fmt.Errorf("failed to export volume for product %d: %w", table.ProductID, err)
	}
	return filename, nil
}

// ExportSpread writes the filtered spread statistics alongside the raw
// dual-VWAP series, one file each.
func (e *ReportExporter) ExportSpread(table *analytics.SpreadTable) ([]string, error) {
	rawName := fmt.Sprintf("vwap_%d_%d.csv", table.FirstProductID, table.SecondProductID)
	rawHeaders := []string{"Date", table.FirstDescription, table.SecondDescription}
	rawRecords := make([][]string, 0, len(table.Raw))
	for _, row := range table.Raw {
		rawRecords = append(rawRecords, []string{
			formatDate(row.Date),
			formatFloat(row.First),
			formatFloat(row.Second),
		})
	}
	if err := e.csvWriter.WriteSimpleCSV(rawName, rawHeaders, rawRecords); err != nil {
		return nil, fmt.Errorf("failed to export raw VWAP series: %w", err)
	}

	spreadName := fmt.Sprintf("spread_%d_%d.csv", table.FirstProductID, table.SecondProductID)
	spreadHeaders := []string{"Date", "Spread", "SMA10", "Band Upper", "Band Lower"}
	spreadRecords := make([][]string, 0, len(table.Filtered))
	for _, row := range table.Filtered {
		spreadRecords = append(spreadRecords, []string{
			formatDate(row.Date),
			formatFloat(row.Spread),
			formatOptional(row.SMA10),
			formatOptional(row.BandUpper),
			formatOptional(row.BandLower),
		})
	}
	if err := e.csvWriter.WriteSimpleCSV(spreadName, spreadHeaders, spreadRecords); err != nil {
		return nil, fmt.Errorf("failed to export spread statistics: %w", err)
	}

	return []string{rawName, spreadName}, nil
}
