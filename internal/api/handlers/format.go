package handlers

import (
	"fmt"
	"math"
)

// FormatDuration renders walking minutes as "45 minutes" or "1h 5m".
// Minutes are rounded to the nearest whole minute first.
func FormatDuration(minutes float64) string {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		minutes = 0
	}

	total := int(math.Round(minutes))
	hours := total / 60
	rest := total % 60

	if hours == 0 {
		return fmt.Sprintf("%d minutes", rest)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}
