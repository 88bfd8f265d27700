// Package collector drives a headless browser session against the registry
// portal: date-range searches, result pagination, and incremental snapshot
// flushes so an interrupted run loses at most one page of progress.
package collector

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/chromedp"

	"github.com/kavish/registry-harvester/internal/config"
	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/snapshot"
	"github.com/kavish/registry-harvester/internal/status"
)

// Portal selectors. The portal is a single fixed layout; these are not
// configurable on purpose.
const (
	selDateFrom     = `#incDateFrom`
	selDateTo       = `#incDateTo`
	selSearchButton = `#btnSearch`
	selResultCount  = `#searchResults .result-count`
	selResultsTable = `#resultsGrid`
	selNextPage     = `#resultsGrid_next`
	selOverlay      = `.ui-widget-overlay`
	selSpinner      = `.loading-spinner`
)

// Result is the outcome of one collection cycle.
type Result struct {
	Status int
	Total  int
}

// Session is the one stateful browser resource. It is created on the portal
// landing page and passed explicitly to every navigation step.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	cfg     config.Config
	logger  *log.Logger
	rng     *rand.Rand
}

// NewSession launches a headless browser and navigates to the portal landing
// page. Requires Chrome/Chromium on the system.
func NewSession(ctx context.Context, cfg config.Config, logger *log.Logger) (*Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", cfg.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		cfg:     cfg,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	logger.Debug("opening portal", "url", cfg.PortalURL)
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(cfg.PortalURL),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open portal: %w", err)
	}
	return s, nil
}

// Close tears down the browser session.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// delayFor derives a pacing sleep from the text being entered, jittered by a
// random multiplier so interaction timing does not look mechanical.
func (s *Session) delayFor(text string) time.Duration {
	base := time.Duration(s.cfg.DelayBaseMs) * time.Millisecond
	jitter := 1 + (s.rng.Float64()*2-1)*s.cfg.JitterSpan
	return time.Duration(float64(base) * float64(len(text)) * jitter)
}

func (s *Session) pause(d time.Duration) {
	select {
	case <-s.ctx.Done():
	case <-time.After(d):
	}
}

// hideObstruction force-hides an overlay or spinner element that is
// intercepting clicks. Missing elements are not an error.
func (s *Session) hideObstruction(selector string) {
	script := fmt.Sprintf(
		`document.querySelectorAll(%q).forEach(function(el){ el.style.display = "none"; });`,
		selector,
	)
	_ = chromedp.Run(s.ctx, chromedp.Evaluate(script, nil))
}

// clickThroughObstruction clicks a target, hiding the obstructing element and
// retrying with exponential backoff when the click is intercepted. The retry
// count is bounded by MaxRetries.
func (s *Session) clickThroughObstruction(target, obstruction string) error {
	var err error
	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			s.hideObstruction(obstruction)
			s.pause(time.Duration(1<<attempt) * 250 * time.Millisecond)
		}
		err = chromedp.Run(s.ctx, chromedp.Click(target, chromedp.NodeVisible))
		if err == nil {
			return nil
		}
		s.logger.Warn("click intercepted, retrying",
			"target", target, "attempt", attempt+1, "error", err)
	}
	return fmt.Errorf("click on %s failed after %d attempts: %w", target, s.cfg.MaxRetries, err)
}

// submitSearch enters both date bounds and submits the search form.
func (s *Session) submitSearch(start, end time.Time) error {
	from := start.Format(config.DateLayout)
	to := end.Format(config.DateLayout)

	steps := []struct {
		sel, value string
	}{
		{selDateFrom, from},
		{selDateTo, to},
	}
	for _, step := range steps {
		err := chromedp.Run(s.ctx,
			chromedp.WaitVisible(step.sel),
			chromedp.SetValue(step.sel, ""),
			chromedp.SendKeys(step.sel, step.value),
		)
		if err != nil {
			return fmt.Errorf("failed to enter date %s: %w", step.value, err)
		}
		s.pause(s.delayFor(step.value))
	}

	if err := s.clickThroughObstruction(selSearchButton, selOverlay); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}
	err := chromedp.Run(s.ctx, chromedp.WaitVisible(selResultsTable))
	if err != nil {
		return fmt.Errorf("results table never appeared: %w", err)
	}
	return nil
}

// readTotalCount parses the portal's result-count element.
func (s *Session) readTotalCount() (int, error) {
	var text string
	err := chromedp.Run(s.ctx, chromedp.Text(selResultCount, &text, chromedp.NodeVisible))
	if err != nil {
		return 0, fmt.Errorf("failed to read result count: %w", err)
	}
	total, err := parseResultCount(text)
	if err != nil {
		return 0, fmt.Errorf("unparseable result count %q: %w", text, err)
	}
	return total, nil
}

// scrapePage pulls the current result table and parses its rows.
func (s *Session) scrapePage() ([]db.CompanySummary, error) {
	var html string
	err := chromedp.Run(s.ctx, chromedp.OuterHTML(selResultsTable, &html))
	if err != nil {
		return nil, fmt.Errorf("failed to read results table: %w", err)
	}
	return parseResultRows(html)
}

// nextPage advances pagination, hiding the loading spinner and retrying when
// it blocks the click.
func (s *Session) nextPage() error {
	if err := s.clickThroughObstruction(selNextPage, selSpinner); err != nil {
		return fmt.Errorf("failed to advance page: %w", err)
	}
	s.pause(s.delayFor("pagination"))
	return nil
}

// Collect runs one full search cycle for the window [start, end]: submit the
// search, then walk every result page, deduplicating against the accumulated
// snapshot and flushing a new snapshot file per page. Returns 204 when the
// window has no results.
func (s *Session) Collect(store *snapshot.Store, start, end time.Time) (Result, error) {
	if err := s.submitSearch(start, end); err != nil {
		return Result{}, err
	}
	s.pause(s.delayFor(start.Format(config.DateLayout) + end.Format(config.DateLayout)))

	total, err := s.readTotalCount()
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("search submitted",
		"from", start.Format(config.DateLayout),
		"to", end.Format(config.DateLayout),
		"total", total)
	if total == 0 {
		return Result{Status: status.NoContent, Total: 0}, nil
	}

	pages := (total + s.cfg.PageSize - 1) / s.cfg.PageSize
	for page := 1; page <= pages; page++ {
		// Re-read the cache each page so a concurrently-replaced snapshot
		// (or a resumed run) is never overwritten with stale rows.
		accumulated, err := loadAccumulated(store)
		if err != nil {
			return Result{}, err
		}
		if len(accumulated) >= total {
			break
		}

		rows, err := s.scrapePage()
		if err != nil {
			return Result{}, err
		}
		merged := appendNew(accumulated, rows)
		s.logger.Debug("page scraped",
			"page", page, "rows", len(rows), "accumulated", len(merged))

		_, err = store.Write(&snapshot.Snapshot{
			WindowStart: start.Format(config.DateLayout),
			WindowEnd:   end.Format(config.DateLayout),
			TotalCount:  total,
			Companies:   merged,
		})
		if err != nil {
			return Result{}, err
		}

		if page < pages {
			if err := s.nextPage(); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{Status: status.OK, Total: total}, nil
}

func loadAccumulated(store *snapshot.Store) ([]db.CompanySummary, error) {
	snap, _, err := store.Latest()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}
	return snap.Companies, nil
}

// appendNew appends rows whose name is not already in the accumulated set.
// Company name is the dedup key; a repeated name never grows the snapshot.
func appendNew(accumulated []db.CompanySummary, rows []db.CompanySummary) []db.CompanySummary {
	seen := make(map[string]struct{}, len(accumulated))
	for _, c := range accumulated {
		seen[strings.ToUpper(strings.TrimSpace(c.Name))] = struct{}{}
	}
	out := accumulated
	for _, r := range rows {
		key := strings.ToUpper(strings.TrimSpace(r.Name))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
