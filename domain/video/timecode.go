package video

import (
	"fmt"
	"math"
)

// FormatDisplay formats a duration in seconds as "M:SS" for on-screen
// display. Minutes are unbounded; seconds are zero-padded to two digits.
// Negative or non-finite values are treated as zero.
func FormatDisplay(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatTimecode formats a duration in seconds as "HH:MM:SS.mmm", the
// argument format expected by the trim script.
//
// Fractional seconds are truncated to milliseconds rather than rounded:
// rounding 59.9996 up would produce an invalid ":60.000" seconds field,
// while truncation can never overflow a field boundary.
func FormatTimecode(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	totalMillis := int64(seconds * 1000)
	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	secs := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}
