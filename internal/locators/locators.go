// Package locators holds the shared, read-only mapping from symbolic element
// names to Lightning selectors. Page objects reference a Repository; none of
// them own or modify it.
package locators

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kuitang/pmm-pages/internal/errs"
)

// Repository maps dotted symbolic names (e.g. "new_record.button") to selector
// templates. Templates use {} placeholders filled positionally by Lookup.
type Repository struct {
	entries map[string]string
}

// New builds a repository from a nested map. Nested maps flatten into dotted names.
func New(tree map[string]any) (*Repository, error) {
	entries := make(map[string]string)
	if err := flatten("", tree, entries); err != nil {
		return nil, err
	}
	return &Repository{entries: entries}, nil
}

// MustNew is New for package-level literals.
func MustNew(tree map[string]any) *Repository {
	repo, err := New(tree)
	if err != nil {
		panic(err)
	}
	return repo
}

func flatten(prefix string, tree map[string]any, out map[string]string) error {
	for key, value := range tree {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[name] = v
		case map[string]any:
			if err := flatten(name, v, out); err != nil {
				return err
			}
		default:
			return errs.New(errs.InvalidArgument, fmt.Sprintf("locator %q has unsupported type %T", name, value))
		}
	}
	return nil
}

// Lookup returns the selector for name with args substituted into its {} placeholders.
func (r *Repository) Lookup(name string, args ...string) (string, error) {
	template, ok := r.entries[name]
	if !ok {
		return "", errs.New(errs.NotFound, fmt.Sprintf("locator %q is not defined", name))
	}
	want := strings.Count(template, "{}")
	if want != len(args) {
		return "", errs.New(errs.InvalidArgument, fmt.Sprintf("locator %q takes %d argument(s), got %d", name, want, len(args)))
	}
	selector := template
	for _, arg := range args {
		selector = strings.Replace(selector, "{}", arg, 1)
	}
	return selector, nil
}

// Names returns all defined locator names, sorted.
func (r *Repository) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
