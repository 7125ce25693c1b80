package timeutil

import (
	"time"
)

// WIB is Western Indonesia Time (UTC+7)
var WIB *time.Location

func init() {
	var err error
	WIB, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback: create fixed zone if Asia/Jakarta not available
		WIB = time.FixedZone("WIB", 7*60*60) // UTC+7
	}
}

// Now returns the current time in WIB
func Now() time.Time {
	return time.Now().In(WIB)
}

// ToWIB converts any time to WIB
func ToWIB(t time.Time) time.Time {
	return t.In(WIB)
}

// ParseInWIB parses a time string and returns it in WIB
func ParseInWIB(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, WIB)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatWIB formats a time in WIB using the given layout
func FormatWIB(t time.Time, layout string) string {
	return t.In(WIB).Format(layout)
}

// StartOfDay returns the start of day (00:00:00) in WIB for the given time
func StartOfDay(t time.Time) time.Time {
	wib := t.In(WIB)
	return time.Date(wib.Year(), wib.Month(), wib.Day(), 0, 0, 0, 0, WIB)
}

// Common layouts for WIB formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 15:04"
)
