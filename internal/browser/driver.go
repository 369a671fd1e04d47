// Package browser is the narrow browser-automation handle page objects use:
// read the current location, navigate, and capture a screenshot. Keywords
// layers the location waits and assertions on top of any Driver.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/pmm-pages/internal/logutil"
)

// Driver is the browser session a page object reads from.
type Driver interface {
	// Location returns the current page URL.
	Location(ctx context.Context) (string, error)
	// Goto navigates the current page to url.
	Goto(ctx context.Context, url string) error
	// Screenshot captures the whole current page as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}

// PlaywrightDriver adapts a playwright.Page to Driver.
type PlaywrightDriver struct {
	page              playwright.Page
	navigationTimeout time.Duration
}

// NewPlaywrightDriver wraps page. navigationTimeout bounds Goto.
func NewPlaywrightDriver(page playwright.Page, navigationTimeout time.Duration) *PlaywrightDriver {
	return &PlaywrightDriver{page: page, navigationTimeout: navigationTimeout}
}

func (d *PlaywrightDriver) Location(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page.URL(), nil
}

func (d *PlaywrightDriver) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(d.navigationTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("browser: navigate to %s: %w", logutil.RedactURLForLog(url), err)
	}
	return nil
}

func (d *PlaywrightDriver) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	png, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot: %w", err)
	}
	return png, nil
}
