package session

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/pmm-pages/internal/artifacts"
	"github.com/kuitang/pmm-pages/internal/browser"
	"github.com/kuitang/pmm-pages/internal/config"
	"github.com/kuitang/pmm-pages/internal/obs"
	"github.com/kuitang/pmm-pages/internal/pmm"
	"github.com/kuitang/pmm-pages/internal/sfauth"
)

const homePath = "/lightning/page/home"

// Open launches a Playwright browser for cfg, logs in through the OAuth
// frontdoor when credentials are configured, and returns a session resolving
// pages from the PMM registry.
func Open(ctx context.Context, cfg *config.Config) (*Session, error) {
	var store *artifacts.Store
	if cfg.ArtifactsEnabled() {
		var err error
		store, err = artifacts.New(ctx, artifacts.Config{
			Endpoint:        cfg.AWSEndpointS3,
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			BucketName:      cfg.ArtifactBucket,
			Prefix:          cfg.ArtifactKeyPrefix,
			UsePathStyle:    cfg.AWSEndpointS3 != "",
		})
		if err != nil {
			return nil, err
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("session: start playwright: %w", err)
	}

	browserType, err := selectBrowserType(pw, cfg.Browser)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}
	b, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("session: launch %s: %w", cfg.Browser, err)
	}
	page, err := b.NewPage()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("session: open page: %w", err)
	}
	page.SetDefaultNavigationTimeout(float64(cfg.NavigationTimeout.Milliseconds()))

	driver := browser.NewPlaywrightDriver(page, cfg.NavigationTimeout)
	s := New(driver, pmm.Registry(), Options{
		BaseURL:      cfg.InstanceURL,
		Timeout:      cfg.NavigationTimeout,
		PollInterval: cfg.PollInterval,
		Artifacts:    store,
	})
	s.closers = append(s.closers, pw.Stop, func() error { return b.Close() })

	ctx = obs.WithRunID(ctx, s.RunID())
	obs.From(ctx).Info("browser session opened", "pkg", "session", "browser", cfg.Browser, "headless", cfg.Headless)

	if cfg.LoginEnabled() {
		if err := login(ctx, s, cfg); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func selectBrowserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "", "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("session: unsupported browser %q", name)
	}
}

func login(ctx context.Context, s *Session, cfg *config.Config) error {
	client, err := sfauth.NewClient(sfauth.Credentials{
		LoginURL:     cfg.LoginURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: cfg.RefreshToken,
	})
	if err != nil {
		return err
	}
	org, err := client.Login(ctx)
	if err != nil {
		return err
	}
	if err := s.Keywords().GoTo(ctx, org.FrontdoorURL(cfg.InstanceURL, homePath)); err != nil {
		return err
	}
	return s.Keywords().WaitUntilLocationContains(ctx, "/lightning/", cfg.NavigationTimeout, "Lightning did not open after login")
}
