package dealer

import (
	"context"
	"time"
)

// runTimerLoop implements §4.3.1. It ticks at tickInterval, draining and
// adjudicating claims and refreshing the table on each tick, until the
// round deadline is reached (countdown mode) or the game is ending.
func (d *Dealer) runTimerLoop(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		d.tbl.Lock()
		d.drainClaimsLocked()

		finishing := d.noLegalSetAnywhereLocked()
		if d.requiresSetOnTable() && !d.tbl.CheckForSets() && !finishing {
			d.cycleTableUntilSetOrGiveUpLocked(ctx, true)
		}

		expired := d.publishTimerLocked()
		d.tbl.Unlock()

		if ctx.Err() != nil || finishing {
			return
		}
		if expired {
			return
		}
	}
}

// drainClaimsLocked fully drains the claim queue in FIFO order, refreshing
// the timer display after each adjudication. Caller must hold the table
// mutex.
func (d *Dealer) drainClaimsLocked() {
	for {
		select {
		case id := <-d.claimQueue:
			d.adjudicateLocked(id)
			d.publishTimerLocked()
		default:
			return
		}
	}
}

// requiresSetOnTable reports whether the configured timer mode is elapsed
// or no-display — the two modes that reshuffle purely in response to the
// table running dry rather than on a countdown deadline.
func (d *Dealer) requiresSetOnTable() bool {
	return d.turnTimeout <= 0
}

// publishTimerLocked publishes the current timer value per the configured
// mode and reports whether the countdown deadline has been reached. Caller
// must hold the table mutex (SetCountdown/SetElapsed are display calls, not
// table mutation, but this keeps the timer snapshot consistent with the
// claim adjudication that may have just run).
func (d *Dealer) publishTimerLocked() bool {
	switch {
	case d.turnTimeout < 0: // no-display mode
		return false
	case d.turnTimeout == 0: // elapsed mode
		d.display.SetElapsed(time.Since(d.roundStart))
		return false
	default: // countdown mode
		remaining := d.turnTimeout - time.Since(d.roundStart)
		warn := remaining <= d.warning
		if remaining < 0 {
			remaining = 0
		}
		d.display.SetCountdown(remaining, warn)
		return remaining <= 0
	}
}
