// Package session drives page objects against one browser: it resolves a page
// by (page type, object name), navigates to it, and confirms the browser shows
// it, capturing a screenshot when a check fails.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kuitang/pmm-pages/internal/artifacts"
	"github.com/kuitang/pmm-pages/internal/browser"
	"github.com/kuitang/pmm-pages/internal/locators"
	"github.com/kuitang/pmm-pages/internal/obs"
	"github.com/kuitang/pmm-pages/internal/pageobjects"
)

// Options configure a Session built over an existing driver.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
	Locators     *locators.Repository
	// Artifacts receives failure screenshots. Nil disables them.
	Artifacts *artifacts.Store
	// RunID correlates logs and artifacts. Empty generates one.
	RunID string
}

// Session is a browser plus the page objects that can be checked against it.
type Session struct {
	runID     string
	registry  *pageobjects.Registry
	env       pageobjects.Env
	artifacts *artifacts.Store
	closers   []func() error
}

// New returns a session over driver resolving pages from registry.
func New(driver browser.Driver, registry *pageobjects.Registry, opts Options) *Session {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	repo := opts.Locators
	if repo == nil {
		repo = locators.PMM
	}
	return &Session{
		runID:    runID,
		registry: registry,
		env: pageobjects.Env{
			Keywords: &browser.Keywords{
				Driver:       driver,
				Timeout:      opts.Timeout,
				PollInterval: opts.PollInterval,
			},
			BaseURL:  opts.BaseURL,
			Timeout:  opts.Timeout,
			Locators: repo,
		},
		artifacts: opts.Artifacts,
	}
}

// RunID identifies this session in logs and artifact keys.
func (s *Session) RunID() string {
	return s.runID
}

// Keywords exposes the session's location keywords.
func (s *Session) Keywords() *browser.Keywords {
	return s.env.Keywords
}

// Page constructs the page object registered under (pageType, objectName).
func (s *Session) Page(pageType pageobjects.PageType, objectName string) (pageobjects.Page, error) {
	return s.registry.New(pageobjects.Key{PageType: pageType, ObjectName: objectName}, s.env)
}

// GoToPage navigates to a page and confirms the browser shows it.
func (s *Session) GoToPage(ctx context.Context, pageType pageobjects.PageType, objectName string, args ...string) (pageobjects.Page, error) {
	ctx = s.pageContext(ctx, pageType, objectName)
	page, err := s.Page(pageType, objectName)
	if err != nil {
		return nil, err
	}
	if err := page.GoTo(ctx, args...); err != nil {
		return nil, fmt.Errorf("go to %s: %w", page.Key(), err)
	}
	if err := s.check(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// CurrentPageShouldBe confirms the browser shows the given page.
func (s *Session) CurrentPageShouldBe(ctx context.Context, pageType pageobjects.PageType, objectName string) (pageobjects.Page, error) {
	ctx = s.pageContext(ctx, pageType, objectName)
	page, err := s.Page(pageType, objectName)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Session) pageContext(ctx context.Context, pageType pageobjects.PageType, objectName string) context.Context {
	ctx = obs.WithRunID(ctx, s.runID)
	return obs.WithPage(ctx, string(pageType), objectName)
}

func (s *Session) check(ctx context.Context, page pageobjects.Page) error {
	start := time.Now()
	err := page.IsCurrentPage(ctx)
	logger := obs.From(ctx).With("pkg", "session", "duration_ms", time.Since(start).Milliseconds())
	if err == nil {
		logger.Info("current page confirmed")
		return nil
	}

	logger.Warn("current page check failed", "error", err.Error())
	s.captureFailure(ctx, page.Key())
	return err
}

// captureFailure uploads a screenshot of the failed check. Its own failures
// are logged and never replace the check's error.
func (s *Session) captureFailure(ctx context.Context, key pageobjects.Key) {
	if s.artifacts == nil || ctx.Err() != nil {
		return
	}
	logger := obs.From(ctx).With("pkg", "session")
	png, err := s.env.Keywords.Screenshot(ctx)
	if err != nil {
		logger.Warn("screenshot failed", "error", err.Error())
		return
	}
	artifactKey, err := s.artifacts.PutScreenshot(ctx, s.runID, key.String(), png)
	if err != nil {
		logger.Warn("screenshot upload failed", "error", err.Error())
		return
	}
	logger.Info("screenshot saved", "artifact", s.artifacts.Location(artifactKey))
}

// Close releases the browser, if the session owns one.
func (s *Session) Close() error {
	var errList []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	s.closers = nil
	return errors.Join(errList...)
}
