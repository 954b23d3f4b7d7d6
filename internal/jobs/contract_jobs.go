package jobs

import (
	"context"
	"time"
)

// MarkOverdueContracts flips contracts past their estimated end date from
// ACTIVE to OVERDUE. Idempotent; a second run in a row is a no-op.
func (jr *JobRunner) MarkOverdueContracts() {
	jr.runWithRecovery("MarkOverdueContracts", func() {
		ctx := context.Background()
		_, _ = jr.lifecycle.SweepOverdue(ctx, time.Now())
	})
}
