package browser

import (
	"bytes"
	"context"
	"image/png"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pagebrowser "github.com/kuitang/pmm-pages/internal/browser"
	"github.com/kuitang/pmm-pages/internal/config"
	"github.com/kuitang/pmm-pages/internal/errs"
	"github.com/kuitang/pmm-pages/internal/pageobjects"
	"github.com/kuitang/pmm-pages/internal/session"
)

func TestProgramEngagement_GoToNewPage(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	page := env.NewPage(t)
	s := env.NewSession(t, page)

	_, err := s.GoToPage(context.Background(), pageobjects.NewPage, "ProgramEngagement__c")
	require.NoError(t, err)
	require.Contains(t, page.URL(), "/lightning/o/ProgramEngagement__c/new")
}

func TestProgramEngagement_DetailPageAfterClientSideRoute(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	page := env.NewPage(t)
	s := env.NewSession(t, page)

	next := "/lightning/r/ProgramEngagement__c/a0B5e000001AbCdEAK/view"
	Navigate(t, page, env.BaseURL, "/lightning/o/ProgramEngagement__c/new?next="+url.QueryEscape(next)+"&delay=300")

	_, err := s.CurrentPageShouldBe(context.Background(), pageobjects.Details, "ProgramEngagement__c")
	require.NoError(t, err)
	require.Contains(t, page.URL(), next)
}

func TestProgramEngagement_DetailPageWrongObject(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	page := env.NewPage(t)
	s := env.NewSession(t, page)

	Navigate(t, page, env.BaseURL, "/lightning/r/Program__c/a0B5e000001AbCdEAK/view")

	_, err := s.CurrentPageShouldBe(context.Background(), pageobjects.Details, "ProgramEngagement__c")
	require.True(t, errs.IsAssertionFailure(err), "got %v", err)
	require.Equal(t, "Current page is not a Program Engagement record detail view", err.Error())
}

func TestProgramEngagement_NewPageNeverOpens(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	page := env.NewPage(t)
	s := env.NewSession(t, page)

	Navigate(t, page, env.BaseURL, "/lightning/o/ProgramEngagement__c/list")

	_, err := s.CurrentPageShouldBe(context.Background(), pageobjects.NewPage, "ProgramEngagement__c")
	require.True(t, errs.IsNavigationTimeout(err), "got %v", err)
	require.Equal(t, "Record view did not open in 1 min", err.Error())
}

func TestOpen_LogsInThroughFrontdoor(t *testing.T) {
	env := SetupBrowserTestEnv(t)

	cfg := &config.Config{
		InstanceURL:       env.BaseURL,
		Browser:           "chromium",
		Headless:          true,
		NavigationTimeout: browserMaxTimeout,
		PollInterval:      50 * time.Millisecond,
		LoginURL:          env.BaseURL,
		ClientID:          testClientID,
		RefreshToken:      testRefreshToken,
	}
	require.NoError(t, cfg.Validate())

	s, err := session.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	location, err := s.Keywords().Location(context.Background())
	require.NoError(t, err)
	require.Contains(t, location, "/lightning/page/home")

	_, err = s.GoToPage(context.Background(), pageobjects.NewPage, "ProgramEngagement__c")
	require.NoError(t, err)
}

func TestPlaywrightDriver_ScreenshotCapturesWholePage(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	page := env.NewPage(t)
	require.NoError(t, page.SetViewportSize(800, 600))
	require.NoError(t, page.SetContent(`<div style="height:2400px">tall record page</div>`))

	driver := pagebrowser.NewPlaywrightDriver(page, browserMaxTimeout)
	shot, err := driver.Screenshot(context.Background())
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(shot))
	require.NoError(t, err)
	require.Greater(t, cfg.Height, 600, "screenshot should extend past the viewport")
}
