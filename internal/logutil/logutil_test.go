package logutil

import (
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"
)

func TestIsSensitiveLogField(t *testing.T) {
	for _, key := range []string{"sid", "SID", "access_token", "refresh-token", "client_secret", "Authorization", "Cookie"} {
		if !IsSensitiveLogField(key) {
			t.Errorf("%q should be sensitive", key)
		}
	}
	for _, key := range []string{"retURL", "filterName", "count", "side"} {
		if IsSensitiveLogField(key) {
			t.Errorf("%q should not be sensitive", key)
		}
	}
}

func TestRedactURLForLog_FrontdoorSession(t *testing.T) {
	raw := "https://pmm.my.salesforce.com/secur/frontdoor.jsp?retURL=%2Flightning%2Fpage%2Fhome&sid=00Dxx%21AQ4AQ"
	got := RedactURLForLog(raw)
	if strings.Contains(got, "AQ4AQ") {
		t.Fatalf("session id leaked: %s", got)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("redacted URL does not parse: %v", err)
	}
	if u.Query().Get("retURL") != "/lightning/page/home" {
		t.Fatalf("retURL lost: %s", got)
	}
	if u.Query().Get("sid") != "[REDACTED]" {
		t.Fatalf("sid not redacted: %s", got)
	}
}

func TestRedactURLForLog_LeavesPlainURLsAlone(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := "https://" + rapid.StringMatching(`[a-z]{3,10}`).Draw(rt, "host") +
			".lightning.force.com/lightning/o/" + rapid.StringMatching(`[A-Za-z]{3,12}`).Draw(rt, "object") + "/list"
		if rapid.Bool().Draw(rt, "withFilter") {
			raw += "?filterName=" + rapid.StringMatching(`[A-Za-z]{1,10}`).Draw(rt, "filter")
		}
		if got := RedactURLForLog(raw); got != raw {
			rt.Fatalf("RedactURLForLog changed %q to %q", raw, got)
		}
	})
}

func TestTruncateForLog(t *testing.T) {
	if got := TruncateForLog("  a\nb  ", 0); got != `a\nb` {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if got := TruncateForLog(strings.Repeat("x", 20), 5); got != "xxxxx... [truncated]" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateForLog("Programmé d'engagement", 8); got != "Programm... [truncated]" {
		t.Fatalf("unexpected rune truncation: %q", got)
	}
	if got := TruncateForLog("éééé", 2); got != "éé... [truncated]" || !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if got := TruncateForLog("   ", 5); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
