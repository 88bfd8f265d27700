package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"

	"github.com/kavish/registry-harvester/internal/db"
)

// ErrNoDocument reports that the portal offered no downloadable report for a
// company. The caller records this as a missing-file outcome, not a failure.
var ErrNoDocument = errors.New("no report available for company")

const (
	selNameSearch   = `#companyName`
	selProfileLink  = `#resultsGrid tbody tr td a`
	selReportButton = `#btnGenerateReport`
	selReportLink   = `#reportDownload a`
)

// DownloadDocument locates a company's profile by name, triggers report
// generation, and fetches the resulting PDF over the session's cookies.
func (s *Session) DownloadDocument(company *db.CompanyDetail) ([]byte, error) {
	err := chromedp.Run(s.ctx,
		chromedp.Navigate(s.cfg.PortalURL),
		chromedp.WaitVisible(selNameSearch),
		chromedp.SetValue(selNameSearch, ""),
		chromedp.SendKeys(selNameSearch, company.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enter company name: %w", err)
	}
	s.pause(s.delayFor(company.Name))

	if err := s.clickThroughObstruction(selSearchButton, selOverlay); err != nil {
		return nil, fmt.Errorf("failed to search company: %w", err)
	}

	var profileFound bool
	err = chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := chromedp.WaitVisible(selProfileLink).Do(waitCtx); err != nil {
			return nil
		}
		profileFound = true
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("failed waiting for profile link: %w", err)
	}
	if !profileFound {
		return nil, ErrNoDocument
	}

	if err := s.clickThroughObstruction(selProfileLink, selOverlay); err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	s.pause(s.delayFor("profile"))

	if err := s.clickThroughObstruction(selReportButton, selSpinner); err != nil {
		return nil, fmt.Errorf("failed to request report: %w", err)
	}

	var href string
	var linkFound bool
	err = chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		var ok bool
		if err := chromedp.AttributeValue(selReportLink, "href", &href, &ok).Do(waitCtx); err != nil {
			return nil
		}
		linkFound = ok && href != ""
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to read report link: %w", err)
	}
	if !linkFound {
		return nil, ErrNoDocument
	}

	target, err := resolveHref(s.cfg.PortalURL, href)
	if err != nil {
		return nil, err
	}

	cookies, err := s.sessionCookies()
	if err != nil {
		return nil, err
	}

	client := resty.New().
		SetTimeout(60 * time.Second).
		SetCookies(cookies)
	resp, err := client.R().SetContext(s.ctx).Get(target)
	if err != nil {
		return nil, fmt.Errorf("failed to download report: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("report download returned %s", resp.Status())
	}
	body := resp.Body()
	if len(body) == 0 {
		return nil, ErrNoDocument
	}
	return body, nil
}

// sessionCookies exports the browser's cookie jar for direct HTTP fetches.
func (s *Session) sessionCookies() ([]*http.Cookie, error) {
	var raw []*network.Cookie
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		raw, err = storage.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to export session cookies: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, &http.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
		})
	}
	return cookies, nil
}

func resolveHref(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid portal URL %q: %w", base, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid report link %q: %w", href, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}
