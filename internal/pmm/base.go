// Package pmm holds the Program Management Module page objects.
package pmm

import (
	"github.com/kuitang/pmm-pages/internal/locators"
	"github.com/kuitang/pmm-pages/internal/pageobjects"
)

// Page is the capability shared by every PMM page object: access to the
// PMM locator repository. Object pages embed it next to a generic page kind.
type Page struct {
	locators *locators.Repository
}

func newPage(env pageobjects.Env) Page {
	repo := env.Locators
	if repo == nil {
		repo = locators.PMM
	}
	return Page{locators: repo}
}

// Locator resolves a PMM locator name to a selector.
func (p Page) Locator(name string, args ...string) (string, error) {
	return p.locators.Lookup(name, args...)
}
