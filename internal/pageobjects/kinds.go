package pageobjects

import (
	"context"
	"fmt"

	"github.com/kuitang/pmm-pages/internal/errs"
	"github.com/kuitang/pmm-pages/internal/urlutil"
)

// BasePage carries a page's key and environment. Its IsCurrentPage always
// succeeds; kinds that can tell their page apart override it.
type BasePage struct {
	key Key
	Env Env
}

// NewBasePage returns a BasePage for key.
func NewBasePage(key Key, env Env) *BasePage {
	return &BasePage{key: key, Env: env}
}

func (p *BasePage) Key() Key {
	return p.key
}

func (p *BasePage) IsCurrentPage(ctx context.Context) error {
	return nil
}

func (p *BasePage) GoTo(ctx context.Context, args ...string) error {
	return errs.New(errs.InvalidArgument, fmt.Sprintf("page object %q does not support navigation", p.key))
}

// URL resolves a Lightning path against the instance origin.
func (p *BasePage) URL(path string) string {
	return urlutil.BuildAbsolute(p.Env.BaseURL, path)
}

// ListingPage is the record-list view of an object.
type ListingPage struct {
	*BasePage
	// ObjectName is the API name used in the list URL. It defaults to the key's
	// object name but may be overridden by the composing page.
	ObjectName string
}

// NewListingPage returns a listing page for key.
func NewListingPage(key Key, env Env) *ListingPage {
	return &ListingPage{BasePage: NewBasePage(key, env), ObjectName: key.ObjectName}
}

// IsCurrentPage checks the location is the object's list view.
func (p *ListingPage) IsCurrentPage(ctx context.Context) error {
	return p.Env.Keywords.LocationShouldContain(ctx, urlutil.ObjectHomePath(p.ObjectName), "")
}

// GoTo opens the list view. An optional first argument selects a list filter.
func (p *ListingPage) GoTo(ctx context.Context, args ...string) error {
	if len(args) > 1 {
		return errs.New(errs.InvalidArgument, fmt.Sprintf("listing page %q takes at most a filter name", p.Key()))
	}
	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}
	return p.Env.Keywords.GoTo(ctx, p.URL(urlutil.ObjectListPath(p.ObjectName, filter)))
}

// DetailPage is the single-record view of an object.
type DetailPage struct {
	*BasePage
}

// NewDetailPage returns a detail page for key.
func NewDetailPage(key Key, env Env) *DetailPage {
	return &DetailPage{BasePage: NewBasePage(key, env)}
}

// IsCurrentPage checks the location is a record view of the key's object.
func (p *DetailPage) IsCurrentPage(ctx context.Context) error {
	if err := p.Env.Keywords.LocationShouldContain(ctx, "/lightning/r/"+p.Key().ObjectName+"/", ""); err != nil {
		return err
	}
	return p.Env.Keywords.LocationShouldContain(ctx, "/view", "")
}

// GoTo opens the record view. It takes exactly one argument, the record id.
func (p *DetailPage) GoTo(ctx context.Context, args ...string) error {
	if len(args) != 1 || !validRecordID(args[0]) {
		return errs.New(errs.InvalidArgument, fmt.Sprintf("detail page %q needs one 15 or 18 character record id", p.Key()))
	}
	return p.Env.Keywords.GoTo(ctx, p.URL(urlutil.RecordViewPath(p.Key().ObjectName, args[0])))
}

// NewRecordPage is the new-record modal of an object.
type NewRecordPage struct {
	*BasePage
}

// NewNewRecordPage returns a new-record page for key.
func NewNewRecordPage(key Key, env Env) *NewRecordPage {
	return &NewRecordPage{BasePage: NewBasePage(key, env)}
}

// GoTo opens the new-record modal. It takes no arguments.
func (p *NewRecordPage) GoTo(ctx context.Context, args ...string) error {
	if len(args) != 0 {
		return errs.New(errs.InvalidArgument, fmt.Sprintf("new record page %q takes no arguments", p.Key()))
	}
	return p.Env.Keywords.GoTo(ctx, p.URL(urlutil.NewRecordPath(p.Key().ObjectName)))
}

func validRecordID(id string) bool {
	if len(id) != 15 && len(id) != 18 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
