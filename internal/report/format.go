package report

import (
	"fmt"
)

// NoDataLabel replaces the highest polling candidate when there is no data.
const NoDataLabel = "None"

// formatFloat formats a value with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatPercent formats an average as "49.34%"
func formatPercent(f float64) string {
	return formatFloat(f) + "%"
}

// formatChange formats a change with an explicit sign, as "+1.53%"
func formatChange(f float64) string {
	return fmt.Sprintf("%+.2f%%", f)
}
