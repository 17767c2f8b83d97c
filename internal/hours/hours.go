package hours

import (
	"math"
	"strings"
	"time"
)

// clockLayout matches 12-hour wall-clock values like "9:00 AM".
const clockLayout = "3:04 PM"

// Elapsed returns the hours between two wall-clock-of-day values, rounded
// to two decimals. A time-out earlier than the time-in is treated as an
// overnight shift and gets 24 hours added before subtracting. Any parse
// failure returns 0.0 so a malformed report never blocks the save.
func Elapsed(timeIn, timeOut string) float64 {
	in, err := parseClock(timeIn)
	if err != nil {
		return 0.0
	}
	out, err := parseClock(timeOut)
	if err != nil {
		return 0.0
	}

	if out.Before(in) {
		out = out.Add(24 * time.Hour)
	}

	return Round(out.Sub(in).Hours())
}

// Round rounds an hours value to two decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

func parseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(s)))
}
