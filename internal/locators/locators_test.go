package locators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kuitang/pmm-pages/internal/errs"
)

func TestLookup_FlattensNestedNames(t *testing.T) {
	repo, err := New(map[string]any{
		"header": map[string]any{
			"title": "//h1[text()='{}']",
		},
		"spinner": "//div[@class='spinner']",
	})
	require.NoError(t, err)

	selector, err := repo.Lookup("header.title", "Program Engagements")
	require.NoError(t, err)
	require.Equal(t, "//h1[text()='Program Engagements']", selector)

	selector, err = repo.Lookup("spinner")
	require.NoError(t, err)
	require.Equal(t, "//div[@class='spinner']", selector)

	require.Equal(t, []string{"header.title", "spinner"}, repo.Names())
}

func TestLookup_UnknownName(t *testing.T) {
	_, err := PMM.Lookup("no.such.locator")
	require.Error(t, err)
	require.Equal(t, errs.NotFound, errs.CodeOf(err))
}

func TestLookup_ArgumentCountMustMatch(t *testing.T) {
	_, err := PMM.Lookup("new_record.label")
	require.Equal(t, errs.InvalidArgument, errs.CodeOf(err))

	_, err = PMM.Lookup("new_record.save", "extra")
	require.Equal(t, errs.InvalidArgument, errs.CodeOf(err))
}

func TestNew_RejectsUnsupportedValues(t *testing.T) {
	_, err := New(map[string]any{"bad": 42})
	require.Equal(t, errs.InvalidArgument, errs.CodeOf(err))
}

func TestLookup_SubstitutesEveryArgument(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.SampledFrom(PMM.Names()).Draw(rt, "name")
		template := PMM.entries[name]
		n := strings.Count(template, "{}")
		args := make([]string, n)
		for i := range args {
			args[i] = rapid.StringMatching(`[A-Za-z ]{1,20}`).Draw(rt, "arg")
		}

		selector, err := PMM.Lookup(name, args...)
		if err != nil {
			rt.Fatalf("Lookup(%q): %v", name, err)
		}
		if strings.Contains(selector, "{}") {
			rt.Fatalf("unfilled placeholder in %q", selector)
		}
		for _, arg := range args {
			if !strings.Contains(selector, arg) {
				rt.Fatalf("argument %q missing from %q", arg, selector)
			}
		}
	})
}
