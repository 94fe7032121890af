package video

import (
	"fmt"
	"math"
	"testing"
)

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0:00"},
		{"under a minute", 45, "0:45"},
		{"exact minute", 60, "1:00"},
		{"fraction truncated", 95.7, "1:35"},
		{"unbounded minutes", 6100, "101:40"},
		{"negative treated as zero", -3, "0:00"},
		{"NaN treated as zero", math.NaN(), "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDisplay(tt.seconds); got != tt.want {
				t.Errorf("FormatDisplay(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatTimecode(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00:00.000"},
		{"seconds only", 5, "00:00:05.000"},
		{"with millis", 75.5, "00:01:15.500"},
		{"hours", 3725.25, "01:02:05.250"},
		{"millis truncated not rounded", 59.9996, "00:00:59.999"},
		{"sub-millisecond truncated", 1.0009, "00:00:01.000"},
		{"negative treated as zero", -1, "00:00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimecode(tt.seconds); got != tt.want {
				t.Errorf("FormatTimecode(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

// Reconstructing total seconds from the formatted timecode must reproduce
// the input within a millisecond.
func TestFormatTimecode_RoundTrip(t *testing.T) {
	inputs := []float64{0, 0.001, 1.5, 59.999, 61.25, 3599.5, 3600, 7325.125}

	for _, in := range inputs {
		s := FormatTimecode(in)

		var h, m, sec, ms int
		if _, err := fmt.Sscanf(s, "%02d:%02d:%02d.%03d", &h, &m, &sec, &ms); err != nil {
			t.Fatalf("could not parse %q back: %v", s, err)
		}
		parsed := float64(h)*3600 + float64(m)*60 + float64(sec) + float64(ms)/1000

		if math.Abs(parsed-in) > 0.001 {
			t.Errorf("round trip of %v via %q gave %v", in, s, parsed)
		}
	}
}
