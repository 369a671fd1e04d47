package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func validTestConfig() Config {
	return Config{
		InstanceURL:       "https://pmm-dev.lightning.force.com",
		Browser:           "chromium",
		Headless:          true,
		NavigationTimeout: 60 * time.Second,
		PollInterval:      200 * time.Millisecond,
		LoginURL:          "https://test.salesforce.com",
	}
}

func TestValidate_MinimalConfigPasses(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
	if cfg.LoginEnabled() {
		t.Fatalf("login should be disabled without credentials")
	}
	if cfg.ArtifactsEnabled() {
		t.Fatalf("artifacts should be disabled without a bucket")
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	cfg.InstanceURL = ""
	cfg.Browser = "netscape"
	cfg.NavigationTimeout = 0
	cfg.RefreshToken = "refresh-only"

	err := cfg.Validate()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	joined := strings.Join(validationErr.Errors, "\n")
	for _, want := range []string{"PMM_INSTANCE_URL", "PMM_BROWSER", "PMM_NAVIGATION_TIMEOUT", "SF_CLIENT_ID"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("validation errors missing %s: %s", want, joined)
		}
	}
}

func TestValidate_RelativeInstanceURLRejected(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	cfg.InstanceURL = "lightning/o/ProgramEngagement__c/list"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected relative instance URL to be rejected")
	}
}

func TestValidate_PollIntervalBounds(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(rt *rapid.T) {
		cfg := validTestConfig()
		cfg.NavigationTimeout = time.Duration(rapid.IntRange(1, 120).Draw(rt, "timeoutSeconds")) * time.Second
		cfg.PollInterval = time.Duration(rapid.IntRange(0, 200_000).Draw(rt, "pollMillis")) * time.Millisecond

		err := cfg.Validate()
		wantOK := cfg.PollInterval >= minPollInterval && cfg.PollInterval <= cfg.NavigationTimeout
		if wantOK && err != nil {
			rt.Fatalf("expected valid config for poll=%s timeout=%s, got %v", cfg.PollInterval, cfg.NavigationTimeout, err)
		}
		if !wantOK && err == nil {
			rt.Fatalf("expected invalid config for poll=%s timeout=%s", cfg.PollInterval, cfg.NavigationTimeout)
		}
	})
}

func TestLoadConfig_DefaultsFromEnv(t *testing.T) {
	t.Setenv("PMM_INSTANCE_URL", "https://pmm-dev.lightning.force.com/")
	t.Setenv("PMM_BROWSER", "")
	t.Setenv("PMM_HEADLESS", "")
	t.Setenv("PMM_NAVIGATION_TIMEOUT", "")
	t.Setenv("PMM_POLL_INTERVAL", "")
	t.Setenv("SF_CLIENT_ID", "")
	t.Setenv("SF_REFRESH_TOKEN", "")
	t.Setenv("SF_LOGIN_URL", "")
	t.Setenv("PMM_ARTIFACT_BUCKET", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.InstanceURL != "https://pmm-dev.lightning.force.com" {
		t.Fatalf("instance URL not normalized: %q", cfg.InstanceURL)
	}
	if cfg.Browser != defaultBrowser || !cfg.Headless {
		t.Fatalf("unexpected browser defaults: %q headless=%v", cfg.Browser, cfg.Headless)
	}
	if cfg.NavigationTimeout != 60*time.Second {
		t.Fatalf("navigation timeout default = %s, want 60s", cfg.NavigationTimeout)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("poll interval default = %s", cfg.PollInterval)
	}
	if cfg.LoginURL != defaultLoginURL {
		t.Fatalf("login URL default = %q", cfg.LoginURL)
	}
}

func TestLoadConfig_InvalidDurationFallsBackToDefault(t *testing.T) {
	t.Setenv("PMM_INSTANCE_URL", "https://pmm-dev.lightning.force.com")
	t.Setenv("PMM_NAVIGATION_TIMEOUT", "one minute")
	t.Setenv("PMM_HEADLESS", "false")
	t.Setenv("PMM_BROWSER", "Firefox")
	t.Setenv("PMM_POLL_INTERVAL", "")
	t.Setenv("SF_CLIENT_ID", "")
	t.Setenv("SF_REFRESH_TOKEN", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.NavigationTimeout != defaultNavigationTimeout {
		t.Fatalf("navigation timeout = %s, want default", cfg.NavigationTimeout)
	}
	if cfg.Headless {
		t.Fatalf("PMM_HEADLESS=false should disable headless")
	}
	if cfg.Browser != "firefox" {
		t.Fatalf("browser should be lowercased, got %q", cfg.Browser)
	}
}

func TestLoadConfig_MissingInstanceURLFails(t *testing.T) {
	t.Setenv("PMM_INSTANCE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected missing PMM_INSTANCE_URL to fail")
	}
}
