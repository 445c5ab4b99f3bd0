// Package scheduler runs the recurring background jobs.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/adityasharma9336/society-management-system/internal/service"
)

// StartMonthlyBilling launches a goroutine that triggers maintenance
// bill generation at local midnight on the first of every month. The
// generator is idempotent per (user, period), so a restart inside the
// window or an overlapping manual trigger cannot double-bill anyone.
// The goroutine exits when ctx is cancelled.
func StartMonthlyBilling(ctx context.Context, billing *service.BillingService) {
	go func() {
		for {
			next := nextMonthStart(time.Now())
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			created, skipped, err := billing.GenerateMonthly(runCtx, next)
			cancel()
			if err != nil {
				log.Printf("monthly billing run failed: %v", err)
				continue
			}
			log.Printf("monthly billing run: %d bills created, %d already billed", created, skipped)
		}
	}()
}

// nextMonthStart returns local midnight on the first day of the month
// after t.
func nextMonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}
