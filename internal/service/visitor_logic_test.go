package service

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cases := []struct {
		name string
		in   time.Time
	}{
		{"midday", time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)},
		{"just after midnight", time.Date(2026, 3, 14, 0, 0, 1, 0, time.UTC)},
		{"just before midnight", time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)},
		{"non-UTC zone", time.Date(2026, 3, 14, 1, 15, 0, 0, loc)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := DayBounds(tc.in)
			if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
				t.Errorf("start %v is not midnight", start)
			}
			if got := end.Sub(start); got != 24*time.Hour {
				t.Errorf("window length = %v, want 24h", got)
			}
			if tc.in.Before(start) || !tc.in.Before(end) {
				t.Errorf("input %v outside [%v, %v)", tc.in, start, end)
			}
			if start.Location() != tc.in.Location() {
				t.Errorf("start location = %v, want %v", start.Location(), tc.in.Location())
			}
		})
	}
}
