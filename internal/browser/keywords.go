package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kuitang/pmm-pages/internal/errs"
	"github.com/kuitang/pmm-pages/internal/logutil"
	"github.com/kuitang/pmm-pages/internal/obs"
	"github.com/kuitang/pmm-pages/internal/urlutil"
)

const (
	// DefaultTimeout bounds location waits when the caller passes zero.
	DefaultTimeout = 60 * time.Second
	// DefaultPollInterval spaces location reads during a wait.
	DefaultPollInterval = 200 * time.Millisecond
)

// Keywords are the location checks page objects are built from.
// The zero Timeout and PollInterval fall back to the defaults.
type Keywords struct {
	Driver       Driver
	Timeout      time.Duration
	PollInterval time.Duration
}

func (k *Keywords) timeout(override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	if k.Timeout > 0 {
		return k.Timeout
	}
	return DefaultTimeout
}

func (k *Keywords) pollInterval() time.Duration {
	if k.PollInterval > 0 {
		return k.PollInterval
	}
	return DefaultPollInterval
}

// Location returns the current location.
func (k *Keywords) Location(ctx context.Context) (string, error) {
	location, err := k.Driver.Location(ctx)
	if err != nil {
		return "", errs.Wrap(errs.Unavailable, "could not read browser location", err)
	}
	return location, nil
}

// GoTo navigates to url.
func (k *Keywords) GoTo(ctx context.Context, url string) error {
	obs.From(ctx).Debug("navigate", "pkg", "browser", "url", logutil.RedactURLForLog(url))
	if err := k.Driver.Goto(ctx, url); err != nil {
		return errs.Wrap(errs.Unavailable, fmt.Sprintf("could not open %s", logutil.RedactURLForLog(url)), err)
	}
	return nil
}

// Screenshot captures the current page.
func (k *Keywords) Screenshot(ctx context.Context) ([]byte, error) {
	return k.Driver.Screenshot(ctx)
}

// WaitUntilLocationContains polls until the location contains expected.
// It returns a NavigationTimeout carrying message when timeout elapses first.
// An empty message gets a default one. A zero timeout uses k.Timeout.
func (k *Keywords) WaitUntilLocationContains(ctx context.Context, expected string, timeout time.Duration, message string) error {
	timeout = k.timeout(timeout)
	if message == "" {
		message = fmt.Sprintf("Location did not contain '%s' in %s.", expected, timeout)
	}

	deadline := time.Now().Add(timeout)
	waitCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(k.pollInterval()), 1)
	limiter.Allow()

	polls := 0
	last := ""
	for {
		location, err := k.Driver.Location(waitCtx)
		if err == nil {
			polls++
			last = location
			if strings.Contains(location, expected) {
				obs.From(ctx).Debug("location matched", "pkg", "browser", "expected", expected, "location", logutil.RedactURLForLog(location), "polls", polls)
				return nil
			}
		} else if waitCtx.Err() == nil {
			return errs.Wrap(errs.Unavailable, "could not read browser location", err)
		}

		if err := limiter.Wait(waitCtx); err != nil {
			break
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("browser: wait for location containing %q: %w", expected, ctx.Err())
	}

	// The limiter gives up once the next tick would land past the deadline,
	// so take one last reading before declaring the timeout.
	if location, err := k.Driver.Location(ctx); err == nil {
		last = location
		if strings.Contains(location, expected) {
			return nil
		}
	}

	// A caller deadline shorter than the bound is the caller's timeout, not a
	// navigation timeout.
	if parent, ok := ctx.Deadline(); ok && parent.Before(deadline) {
		return fmt.Errorf("browser: wait for location containing %q: %w", expected, context.DeadlineExceeded)
	}

	obs.From(ctx).Info("location wait timed out",
		"pkg", "browser",
		"expected", expected,
		"location", logutil.RedactURLForLog(last),
		"timeout", timeout.String(),
		"polls", polls,
	)
	return errs.New(errs.NavigationTimeout, message)
}

// LocationShouldContain reads the location once and returns an AssertionFailure
// carrying message when it does not contain expected.
func (k *Keywords) LocationShouldContain(ctx context.Context, expected, message string) error {
	location, err := k.Location(ctx)
	if err != nil {
		return err
	}
	if strings.Contains(location, expected) {
		return nil
	}
	if message == "" {
		message = fmt.Sprintf("Location should have contained '%s' but it was '%s'.", expected, location)
	}
	attrs := []any{"pkg", "browser", "expected", expected, "location", logutil.RedactURLForLog(location)}
	if route, ok := urlutil.ParseLightningRoute(location); ok {
		attrs = append(attrs, "object", route.Object, "action", route.Action)
	}
	obs.From(ctx).Info("location assertion failed", attrs...)
	return errs.New(errs.AssertionFailure, message)
}

// LocationShouldBe reads the location once and requires an exact match.
func (k *Keywords) LocationShouldBe(ctx context.Context, expected, message string) error {
	location, err := k.Location(ctx)
	if err != nil {
		return err
	}
	if location == expected {
		return nil
	}
	if message == "" {
		message = fmt.Sprintf("Location should have been '%s' but it was '%s'.", expected, location)
	}
	return errs.New(errs.AssertionFailure, message)
}
