package handlers

import (
	"math"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		want    string
	}{
		{"zero", 0, "0 minutes"},
		{"under an hour", 45, "45 minutes"},
		{"rounds down", 13.397, "13 minutes"},
		{"rounds up to an hour", 59.6, "1h 0m"},
		{"hours and minutes", 65, "1h 5m"},
		{"several hours", 185.2, "3h 5m"},
		{"negative", -3, "0 minutes"},
		{"nan", math.NaN(), "0 minutes"},
		{"inf", math.Inf(1), "0 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.minutes); got != tt.want {
				t.Fatalf("FormatDuration(%v) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}
