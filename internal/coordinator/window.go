package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/status"
)

// windowSpan is the length of one collection window: seven calendar days
// inclusive of both bounds.
const windowSpan = 6 * 24 * time.Hour

// Window is one [start, end] date range, both bounds inclusive, normalized to
// UTC midnight.
type Window struct {
	Start time.Time
	End   time.Time
}

// windowFacts are the ledger-derived inputs resumption depends on.
type windowFacts struct {
	last         *db.RunLogEntry // latest successful entry for the operation
	earliest     time.Time       // earliest processed window start
	haveEarliest bool
	quarterStart time.Time
	now          time.Time
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nextWindow computes the next unprocessed window. Forward progress is
// preferred: the window after the last successful one, unless its end would
// reach into the future, in which case the coordinator backfills the week
// before the earliest processed start. ok is false when the quarter is fully
// covered and there is nothing left to process.
func nextWindow(f windowFacts) (Window, bool) {
	quarterStart := dayStart(f.quarterStart)
	today := dayStart(f.now)
	seed := Window{Start: quarterStart, End: quarterStart.Add(windowSpan)}

	if f.last == nil {
		return seed, true
	}
	// A no-content entry for exactly the seed window means the seed search
	// found nothing yet; search it again rather than advancing past it. The
	// full window must match: a quarter-covered marker also starts at the
	// quarter start but spans through today, and reseeding on it would
	// re-walk the whole quarter.
	if f.last.Status == status.NoContent &&
		dayStart(time.Unix(f.last.WindowStart, 0)).Equal(seed.Start) &&
		dayStart(time.Unix(f.last.WindowEnd, 0)).Equal(seed.End) {
		return seed, true
	}

	lastEnd := dayStart(time.Unix(f.last.WindowEnd, 0))
	forward := Window{
		Start: lastEnd.AddDate(0, 0, 1),
		End:   lastEnd.AddDate(0, 0, 1).Add(windowSpan),
	}
	if !forward.End.After(today) {
		return forward, true
	}

	// Forward would reach unprocessed future data; backfill instead.
	if !f.haveEarliest {
		return seed, true
	}
	earliest := dayStart(f.earliest)
	if !earliest.After(quarterStart) {
		return Window{}, false
	}
	backward := Window{
		Start: earliest.AddDate(0, 0, -1).Add(-windowSpan),
		End:   earliest.AddDate(0, 0, -1),
	}
	if backward.Start.Before(quarterStart) {
		backward.Start = quarterStart
	}
	return backward, true
}

// nextWindowFor reads the ledger and computes the next window for an
// operation. ok is false when the quarter is fully covered.
func (c *Coordinator) nextWindowFor(ctx context.Context, op string) (Window, bool, error) {
	last, err := c.store.LatestSuccessfulRunLog(ctx, op)
	if err != nil {
		return Window{}, false, err
	}
	earliestEpoch, haveEarliest, err := c.store.EarliestWindowStart(ctx, op)
	if err != nil {
		return Window{}, false, err
	}
	quarterStart, err := c.cfg.QuarterStartDate()
	if err != nil {
		return Window{}, false, fmt.Errorf("cannot compute window: %w", err)
	}

	win, ok := nextWindow(windowFacts{
		last:         last,
		earliest:     time.Unix(earliestEpoch, 0),
		haveEarliest: haveEarliest,
		quarterStart: quarterStart,
		now:          c.now(),
	})
	return win, ok, nil
}

// coveredWindow is the ledger window recorded when an operation has no date
// window of its own (curation, or a fully-covered quarter).
func (c *Coordinator) coveredWindow() Window {
	quarterStart, err := c.cfg.QuarterStartDate()
	if err != nil {
		quarterStart = dayStart(c.now())
	}
	return Window{Start: dayStart(quarterStart), End: dayStart(c.now())}
}
