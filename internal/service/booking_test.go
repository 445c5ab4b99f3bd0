package service

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical slots", "14:00", "15:00", "14:00", "15:00", true},
		{"partial overlap at end", "14:00", "15:00", "14:30", "15:30", true},
		{"partial overlap at start", "14:30", "15:30", "14:00", "15:00", true},
		{"contained slot", "14:00", "16:00", "14:30", "15:00", true},
		{"containing slot", "14:30", "15:00", "14:00", "16:00", true},
		{"adjacent after", "14:00", "15:00", "15:00", "16:00", false},
		{"adjacent before", "15:00", "16:00", "14:00", "15:00", false},
		{"disjoint", "09:00", "10:00", "15:00", "16:00", false},
		{"one minute overlap", "14:00", "15:01", "15:00", "16:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
		})
	}
}

func TestValidSlotTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "14:00", "23:59"}
	for _, s := range valid {
		if !ValidSlotTime(s) {
			t.Errorf("ValidSlotTime(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "24:00", "9:30", "14:60", "14:5", "14-30", "1400", "14:30:00"}
	for _, s := range invalid {
		if ValidSlotTime(s) {
			t.Errorf("ValidSlotTime(%q) = true, want false", s)
		}
	}
}
