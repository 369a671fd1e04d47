// Package browser runs the page objects against a real Playwright browser and a
// local server that imitates Lightning routes. Tests skip when Playwright or its
// browsers are not installed.
package browser

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	pagebrowser "github.com/kuitang/pmm-pages/internal/browser"
	"github.com/kuitang/pmm-pages/internal/pmm"
	"github.com/kuitang/pmm-pages/internal/session"
)

const (
	// Keep page checks short; every fixture transition happens within a second.
	browserMaxTimeoutMS = 5000
	browserMaxTimeout   = 5 * time.Second
)

var browserFixtureMu sync.Mutex
var browserSharedFixture *BrowserTestEnv

// BrowserTestEnv is a fake Lightning server plus a shared Playwright browser.
type BrowserTestEnv struct {
	Server  *httptest.Server
	BaseURL string

	pw      *playwright.Playwright
	browser playwright.Browser
}

// SetupBrowserTestEnv returns the shared environment, launching it on first use.
func SetupBrowserTestEnv(t *testing.T) *BrowserTestEnv {
	t.Helper()

	browserFixtureMu.Lock()
	defer browserFixtureMu.Unlock()

	if browserSharedFixture != nil {
		return browserSharedFixture
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Skip("Playwright not available:", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		t.Skip("Could not launch browser:", err)
	}

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	mux.HandleFunc("/lightning/", lightningHandler)
	mux.HandleFunc("/secur/frontdoor.jsp", frontdoorHandler)
	mux.HandleFunc("/services/oauth2/token", tokenHandler(server.URL))
	browserSharedFixture = &BrowserTestEnv{
		Server:  server,
		BaseURL: server.URL,
		pw:      pw,
		browser: b,
	}
	return browserSharedFixture
}

func cleanupSharedBrowserTestEnv() {
	browserFixtureMu.Lock()
	defer browserFixtureMu.Unlock()

	if browserSharedFixture == nil {
		return
	}
	if browserSharedFixture.browser != nil {
		_ = browserSharedFixture.browser.Close()
	}
	if browserSharedFixture.pw != nil {
		_ = browserSharedFixture.pw.Stop()
	}
	if browserSharedFixture.Server != nil {
		browserSharedFixture.Server.Close()
	}
	browserSharedFixture = nil
}

func TestMain(m *testing.M) {
	code := m.Run()
	cleanupSharedBrowserTestEnv()
	os.Exit(code)
}

// NewPage opens a fresh page with the short test timeouts.
func (env *BrowserTestEnv) NewPage(t *testing.T) playwright.Page {
	t.Helper()

	page, err := env.browser.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	page.SetDefaultTimeout(browserMaxTimeoutMS)
	page.SetDefaultNavigationTimeout(browserMaxTimeoutMS)
	t.Cleanup(func() { _ = page.Close() })
	return page
}

// NewSession returns a page-object session driving page against the fake server.
func (env *BrowserTestEnv) NewSession(t *testing.T, page playwright.Page) *session.Session {
	t.Helper()

	driver := pagebrowser.NewPlaywrightDriver(page, browserMaxTimeout)
	s := session.New(driver, pmm.Registry(), session.Options{
		BaseURL:      env.BaseURL,
		Timeout:      browserMaxTimeout,
		PollInterval: 50 * time.Millisecond,
	})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Navigate opens path on the fake server and waits for DOMContentLoaded.
func Navigate(t *testing.T, page playwright.Page, baseURL, path string) {
	t.Helper()

	_, err := page.Goto(baseURL+path, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(browserMaxTimeoutMS),
	})
	if err != nil {
		t.Fatalf("Failed to navigate to %s: %v", path, err)
	}
}

var lightningPage = template.Must(template.New("lightning").Parse(`<!doctype html>
<html>
<head><title>{{.Title}} | Salesforce</title></head>
<body>
<h1 class="slds-page-header__title">{{.Title}}</h1>
{{if .Next}}<script>
setTimeout(function () { history.pushState({}, "", {{.Next}}); }, {{.DelayMS}});
</script>{{end}}
</body>
</html>`))

const (
	testClientID     = "pmm-browser-tests"
	testRefreshToken = "refresh-browser-tests"
	testAccessToken  = "00Dbrowser!session"
)

// tokenHandler answers the refresh-token grant with instanceURL as the org.
func tokenHandler(instanceURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("client_id") != testClientID || r.PostForm.Get("refresh_token") != testRefreshToken {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": testAccessToken,
			"instance_url": instanceURL,
			"token_type":   "Bearer",
		})
	}
}

// frontdoorHandler accepts the test session id and redirects to retURL.
func frontdoorHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("sid") != testAccessToken {
		http.Error(w, "invalid session", http.StatusUnauthorized)
		return
	}
	ret := r.URL.Query().Get("retURL")
	if !strings.HasPrefix(ret, "/lightning/") {
		ret = "/lightning/page/home"
	}
	http.Redirect(w, r, ret, http.StatusFound)
}

// lightningHandler serves a stub page for every Lightning route. A "next"
// query parameter makes the page change its own URL after "delay" ms, the
// way Lightning swaps routes client side.
func lightningHandler(w http.ResponseWriter, r *http.Request) {
	delay := 200
	if raw := r.URL.Query().Get("delay"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &delay); err != nil {
			http.Error(w, "bad delay", http.StatusBadRequest)
			return
		}
	}
	next := r.URL.Query().Get("next")
	if next != "" && !strings.HasPrefix(next, "/lightning/") {
		http.Error(w, "next must be a lightning route", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = lightningPage.Execute(w, struct {
		Title   string
		Next    string
		DelayMS int
	}{
		Title:   r.URL.Path,
		Next:    next,
		DelayMS: delay,
	})
}
