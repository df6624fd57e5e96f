package tableview

import "testing"

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		header string
		want   string
	}{
		{"nil is empty", nil, "Vendor", ""},
		{"plain string trimmed", "  Acme Corp  ", "Vendor", "Acme Corp"},
		{"plain number", float64(42), "Qty", "42"},
		{"fractional number", 12.5, "Amount", "12.5"},
		{"date serial decoded", float64(45000), "Date", "15/03/2023"},
		{"date serial in mixed-case header", float64(45000), "Delivery Date", "15/03/2023"},
		{"time fraction noon", 0.5, "Time", "12:00"},
		{"time fraction morning", 0.25, "Start Time", "06:00"},
		{"time fraction odd", 0.595138888888889, "Time", "14:17"},
		{"string in date column untouched", "2023-03-15", "Date", "2023-03-15"},
		{"epoch date", float64(25569), "Date", "01/01/1970"},
		{"midnight", float64(0.0), "Time", "00:00"},
		{"minute round carries into hour", 0.49999, "Time", "12:00"},
		{"just before midnight", 0.999, "Time", "23:59"},
		{"minute round wraps midnight", 0.9999, "Time", "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCell(tt.value, tt.header); got != tt.want {
				t.Errorf("FormatCell(%v, %q) = %q, want %q", tt.value, tt.header, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := normalize("  ACME Corp "); got != "acme corp" {
		t.Errorf("normalize = %q, want %q", got, "acme corp")
	}
}
