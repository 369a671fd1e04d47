// Package config loads page-object session settings from environment variables,
// validates required fields, and provides defaults matching the Lightning UI
// (a 60 second navigation bound).
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBrowser           = "chromium"
	defaultLoginURL          = "https://login.salesforce.com"
	defaultNavigationTimeout = 60 * time.Second
	defaultPollInterval      = 200 * time.Millisecond
	defaultArtifactRegion    = "us-east-1"
	defaultArtifactKeyPrefix = "screenshots"
	minPollInterval          = 10 * time.Millisecond
)

// Config holds all page-object session configuration.
type Config struct {
	// Browser
	InstanceURL       string // PMM_INSTANCE_URL, e.g. https://acme.lightning.force.com
	Browser           string // chromium | firefox | webkit
	Headless          bool
	NavigationTimeout time.Duration // upper bound for location waits
	PollInterval      time.Duration // spacing between location reads while waiting

	// Salesforce OAuth (refresh token flow). Empty ClientID skips login.
	LoginURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string

	// Failure screenshots. Empty ArtifactBucket disables uploads.
	ArtifactBucket     string
	ArtifactKeyPrefix  string
	AWSEndpointS3      string // AWS_ENDPOINT_URL_S3
	AWSRegion          string // AWS_REGION
	AWSAccessKeyID     string // AWS_ACCESS_KEY_ID
	AWSSecretAccessKey string // AWS_SECRET_ACCESS_KEY
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	cfg.InstanceURL = strings.TrimRight(strings.TrimSpace(os.Getenv("PMM_INSTANCE_URL")), "/")
	cfg.Browser = strings.ToLower(getEnvOrDefault("PMM_BROWSER", defaultBrowser))
	cfg.Headless = parseBoolOrDefault("PMM_HEADLESS", true)
	cfg.NavigationTimeout = parseDurationOrDefault("PMM_NAVIGATION_TIMEOUT", defaultNavigationTimeout)
	cfg.PollInterval = parseDurationOrDefault("PMM_POLL_INTERVAL", defaultPollInterval)

	cfg.LoginURL = strings.TrimRight(getEnvOrDefault("SF_LOGIN_URL", defaultLoginURL), "/")
	cfg.ClientID = strings.TrimSpace(os.Getenv("SF_CLIENT_ID"))
	cfg.ClientSecret = strings.TrimSpace(os.Getenv("SF_CLIENT_SECRET"))
	cfg.RefreshToken = strings.TrimSpace(os.Getenv("SF_REFRESH_TOKEN"))

	cfg.ArtifactBucket = strings.TrimSpace(os.Getenv("PMM_ARTIFACT_BUCKET"))
	cfg.ArtifactKeyPrefix = getEnvOrDefault("PMM_ARTIFACT_PREFIX", defaultArtifactKeyPrefix)
	cfg.AWSEndpointS3 = strings.TrimSpace(os.Getenv("AWS_ENDPOINT_URL_S3"))
	cfg.AWSRegion = getEnvOrDefault("AWS_REGION", defaultArtifactRegion)
	cfg.AWSAccessKeyID = strings.TrimSpace(os.Getenv("AWS_ACCESS_KEY_ID"))
	cfg.AWSSecretAccessKey = strings.TrimSpace(os.Getenv("AWS_SECRET_ACCESS_KEY"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []string

	if c.InstanceURL == "" {
		errs = append(errs, "PMM_INSTANCE_URL is required")
	} else if u, err := url.Parse(c.InstanceURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "PMM_INSTANCE_URL must be an absolute URL")
	}

	switch c.Browser {
	case "chromium", "firefox", "webkit":
	default:
		errs = append(errs, fmt.Sprintf("PMM_BROWSER must be chromium, firefox or webkit (got %q)", c.Browser))
	}

	if c.NavigationTimeout <= 0 {
		errs = append(errs, "PMM_NAVIGATION_TIMEOUT must be positive")
	}
	if c.PollInterval < minPollInterval {
		errs = append(errs, fmt.Sprintf("PMM_POLL_INTERVAL must be at least %s", minPollInterval))
	} else if c.NavigationTimeout > 0 && c.PollInterval > c.NavigationTimeout {
		errs = append(errs, "PMM_POLL_INTERVAL must not exceed PMM_NAVIGATION_TIMEOUT")
	}

	// Login is optional, but a partial credential set is a mistake.
	if c.ClientID != "" || c.RefreshToken != "" {
		if c.ClientID == "" {
			errs = append(errs, "SF_CLIENT_ID is required when SF_REFRESH_TOKEN is set")
		}
		if c.RefreshToken == "" {
			errs = append(errs, "SF_REFRESH_TOKEN is required when SF_CLIENT_ID is set")
		}
		if c.LoginURL == "" {
			errs = append(errs, "SF_LOGIN_URL must not be empty")
		}
	}

	if c.ArtifactBucket != "" && c.AWSRegion == "" {
		errs = append(errs, "AWS_REGION is required when PMM_ARTIFACT_BUCKET is set")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// LoginEnabled reports whether sessions should log in through the OAuth frontdoor.
func (c *Config) LoginEnabled() bool {
	return c.ClientID != "" && c.RefreshToken != ""
}

// ArtifactsEnabled reports whether failure screenshots are uploaded.
func (c *Config) ArtifactsEnabled() bool {
	return c.ArtifactBucket != ""
}

// Helper functions for parsing environment variables

func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
