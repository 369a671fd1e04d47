package pageobjects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kuitang/pmm-pages/internal/browser"
	"github.com/kuitang/pmm-pages/internal/errs"
	"github.com/kuitang/pmm-pages/internal/locators"
)

const testInstance = "https://pmm-dev.lightning.force.com"

func testEnv(driver browser.Driver) Env {
	return Env{
		Keywords: &browser.Keywords{Driver: driver, Timeout: 100 * time.Millisecond, PollInterval: 5 * time.Millisecond},
		BaseURL:  testInstance,
		Locators: locators.PMM,
	}
}

func TestBasePage_DoesNotNavigate(t *testing.T) {
	page := NewBasePage(Key{PageType: Listing, ObjectName: "Account"}, testEnv(browser.NewFakeDriver()))
	require.Equal(t, errs.InvalidArgument, errs.CodeOf(page.GoTo(context.Background())))
	require.Equal(t, testInstance+"/lightning/page/home", page.URL("/lightning/page/home"))
}

func TestListingPage(t *testing.T) {
	driver := browser.NewFakeDriver(testInstance + "/lightning/o/Program__c/list?filterName=Recent")
	page := NewListingPage(Key{PageType: Listing, ObjectName: "Program__c"}, testEnv(driver))
	ctx := context.Background()

	require.NoError(t, page.IsCurrentPage(ctx))

	driver.SetLocation(testInstance + "/lightning/o/Program__c/new")
	require.True(t, errs.IsAssertionFailure(page.IsCurrentPage(ctx)))

	require.NoError(t, page.GoTo(ctx, "Recent"))
	require.NoError(t, page.GoTo(ctx))
	require.Equal(t, []string{
		testInstance + "/lightning/o/Program__c/list?filterName=Recent",
		testInstance + "/lightning/o/Program__c/list",
	}, driver.Navigations())

	require.Equal(t, errs.InvalidArgument, errs.CodeOf(page.GoTo(ctx, "Recent", "extra")))
}

func TestListingPage_ObjectNameOverride(t *testing.T) {
	driver := browser.NewFakeDriver(testInstance + "/lightning/o/ProgramEngagement__c/list")
	page := NewListingPage(Key{PageType: Listing, ObjectName: "ProgramEngagement__c"}, testEnv(driver))
	page.ObjectName = "Other__c"

	require.True(t, errs.IsAssertionFailure(page.IsCurrentPage(context.Background())))
	require.Equal(t, "ProgramEngagement__c", page.Key().ObjectName)
}

func TestDetailPage(t *testing.T) {
	driver := browser.NewFakeDriver(testInstance + "/lightning/r/Program__c/a0B5e000001AbCdEAK/view")
	page := NewDetailPage(Key{PageType: Details, ObjectName: "Program__c"}, testEnv(driver))
	ctx := context.Background()

	require.NoError(t, page.IsCurrentPage(ctx))

	driver.SetLocation(testInstance + "/lightning/r/Program__c/a0B5e000001AbCdEAK/edit")
	require.True(t, errs.IsAssertionFailure(page.IsCurrentPage(ctx)))

	driver.SetLocation(testInstance + "/lightning/r/Contact/0035e000001AbCdEAK/view")
	require.True(t, errs.IsAssertionFailure(page.IsCurrentPage(ctx)))

	require.NoError(t, page.GoTo(ctx, "a0B5e000001AbCd"))
	require.Equal(t, []string{testInstance + "/lightning/r/Program__c/a0B5e000001AbCd/view"}, driver.Navigations())

	for _, bad := range [][]string{nil, {"short"}, {"a0B5e000001AbC!"}, {"a0B5e000001AbCd", "a0B5e000001AbCe"}} {
		require.Equal(t, errs.InvalidArgument, errs.CodeOf(page.GoTo(ctx, bad...)), "args %v", bad)
	}
}

func TestNewRecordPage(t *testing.T) {
	driver := browser.NewFakeDriver()
	page := NewNewRecordPage(Key{PageType: NewPage, ObjectName: "Program__c"}, testEnv(driver))
	ctx := context.Background()

	require.NoError(t, page.GoTo(ctx))
	require.Equal(t, []string{testInstance + "/lightning/o/Program__c/new"}, driver.Navigations())
	require.Equal(t, errs.InvalidArgument, errs.CodeOf(page.GoTo(ctx, "x")))
}
