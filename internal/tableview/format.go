package tableview

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Excel stores dates as whole days since 1899-12-30 and times as a
// fraction of a day. 25569 is the day offset between that epoch and
// 1970-01-01.
const unixEpochSerial = 25569

// FormatCell renders a raw cell value for display. Numeric values in
// columns whose header mentions "date" or "time" are decoded from their
// serial form; everything else is stringified and trimmed. nil renders as
// the empty string.
func FormatCell(value any, header string) string {
	if value == nil {
		return ""
	}
	if n, ok := asNumber(value); ok {
		h := strings.ToLower(header)
		if strings.Contains(h, "date") {
			return formatSerialDate(n)
		}
		if strings.Contains(h, "time") {
			return formatSerialTime(n)
		}
	}
	return strings.TrimSpace(stringify(value))
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// formatSerialDate renders a day serial as DD/MM/YYYY.
func formatSerialDate(serial float64) string {
	t := time.Unix(int64((serial-unixEpochSerial)*86400), 0).UTC()
	return t.Format("02/01/2006")
}

// formatSerialTime renders a fraction-of-day as zero-padded 24-hour HH:MM.
// Minutes are rounded; a round up to a full hour carries, wrapping at
// midnight.
func formatSerialTime(fraction float64) string {
	hours := int(fraction * 24)
	minutes := int(math.Round((fraction*24 - float64(hours)) * 60))
	if minutes == 60 {
		minutes = 0
		hours = (hours + 1) % 24
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// normalize lower-cases and trims a formatted value for comparison.
func normalize(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
