package service

import (
	"testing"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/model"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		status   string
		deadline time.Time
		want     string
	}{
		{"active before deadline", model.PollActive, now.Add(time.Hour), model.PollActive},
		{"active past deadline", model.PollActive, now.Add(-time.Hour), model.PollClosed},
		{"active at deadline", model.PollActive, now, model.PollActive},
		{"already closed", model.PollClosed, now.Add(time.Hour), model.PollClosed},
		{"closed past deadline", model.PollClosed, now.Add(-time.Hour), model.PollClosed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Poll{Status: tc.status, Deadline: tc.deadline}
			if got := EffectiveStatus(p, now); got != tc.want {
				t.Errorf("EffectiveStatus(%s, deadline %v) = %s, want %s",
					tc.status, tc.deadline, got, tc.want)
			}
		})
	}
}
