package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/status"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(code int, start, end time.Time) *db.RunLogEntry {
	return &db.RunLogEntry{Status: code, WindowStart: start.Unix(), WindowEnd: end.Unix()}
}

func TestNextWindowSeedsFromQuarterStart(t *testing.T) {
	quarterStart := day(2026, 7, 1)

	win, ok := nextWindow(windowFacts{
		quarterStart: quarterStart,
		now:          day(2026, 8, 15),
	})
	require.True(t, ok)
	assert.Equal(t, quarterStart, win.Start)
	assert.Equal(t, day(2026, 7, 7), win.End)
}

func TestNextWindowReseedsAfterEmptySeed(t *testing.T) {
	quarterStart := day(2026, 7, 1)

	win, ok := nextWindow(windowFacts{
		last:         entry(status.NoContent, quarterStart, day(2026, 7, 7)),
		earliest:     quarterStart,
		haveEarliest: true,
		quarterStart: quarterStart,
		now:          day(2026, 8, 15),
	})
	require.True(t, ok)
	assert.Equal(t, quarterStart, win.Start)
	assert.Equal(t, day(2026, 7, 7), win.End)
}

func TestNextWindowAdvancesForward(t *testing.T) {
	quarterStart := day(2026, 7, 1)
	now := day(2026, 8, 15)

	// For every completed window end D within the quarter, the next window
	// starts at exactly D+1 and never re-overlaps processed days.
	for d := 7; d <= 38; d += 7 {
		lastEnd := quarterStart.AddDate(0, 0, d-1)
		win, ok := nextWindow(windowFacts{
			last:         entry(status.OK, quarterStart, lastEnd),
			earliest:     quarterStart,
			haveEarliest: true,
			quarterStart: quarterStart,
			now:          now,
		})
		require.True(t, ok, "day offset %d", d)
		assert.Equal(t, lastEnd.AddDate(0, 0, 1), win.Start, "day offset %d", d)
		assert.Equal(t, lastEnd.AddDate(0, 0, 7), win.End, "day offset %d", d)
		assert.True(t, win.Start.After(lastEnd), "window overlaps processed range")
	}
}

func TestNextWindowBackfillsWhenForwardReachesFuture(t *testing.T) {
	quarterStart := day(2026, 7, 1)

	// The last processed window ends two days ago; the forward window would
	// end in the future, so the coordinator backfills before the earliest
	// processed start instead.
	win, ok := nextWindow(windowFacts{
		last:         entry(status.OK, day(2026, 8, 5), day(2026, 8, 11)),
		earliest:     day(2026, 8, 5),
		haveEarliest: true,
		quarterStart: quarterStart,
		now:          day(2026, 8, 13),
	})
	require.True(t, ok)
	assert.Equal(t, day(2026, 8, 4), win.End)
	assert.Equal(t, day(2026, 7, 29), win.Start)
}

func TestNextWindowBackfillClampsToQuarterStart(t *testing.T) {
	quarterStart := day(2026, 7, 1)

	win, ok := nextWindow(windowFacts{
		last:         entry(status.OK, day(2026, 7, 4), day(2026, 7, 10)),
		earliest:     day(2026, 7, 4),
		haveEarliest: true,
		quarterStart: quarterStart,
		now:          day(2026, 7, 12),
	})
	require.True(t, ok)
	assert.Equal(t, quarterStart, win.Start)
	assert.Equal(t, day(2026, 7, 3), win.End)
}

func TestNextWindowCoveredMarkerDoesNotReseed(t *testing.T) {
	quarterStart := day(2026, 7, 1)
	today := day(2026, 8, 16)

	// Once the quarter is fully covered the operation records a no-content
	// marker spanning quarter start through today. That marker must not be
	// mistaken for an empty seed search: reseeding on it would re-collect
	// already-processed windows and then re-walk the whole quarter.
	_, ok := nextWindow(windowFacts{
		last:         entry(status.NoContent, quarterStart, today),
		earliest:     quarterStart,
		haveEarliest: true,
		quarterStart: quarterStart,
		now:          today,
	})
	assert.False(t, ok)
}

func TestNextWindowNothingLeft(t *testing.T) {
	quarterStart := day(2026, 7, 1)

	// Earliest processed start is the quarter start and forward would reach
	// the future: the quarter is fully covered.
	_, ok := nextWindow(windowFacts{
		last:         entry(status.OK, day(2026, 8, 8), day(2026, 8, 14)),
		earliest:     quarterStart,
		haveEarliest: true,
		quarterStart: quarterStart,
		now:          day(2026, 8, 16),
	})
	assert.False(t, ok)
}
