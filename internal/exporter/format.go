package exporter

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatOptional formats a nullable value; unset cells stay empty so
// spreadsheet tools treat them as missing rather than zero.
func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatDate formats a calendar day for CSV output
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
