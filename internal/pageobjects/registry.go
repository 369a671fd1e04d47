// Package pageobjects maps (page type, object name) keys to page constructors
// and provides the generic page kinds (base, listing, detail, new record) that
// object-specific pages compose.
package pageobjects

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kuitang/pmm-pages/internal/browser"
	"github.com/kuitang/pmm-pages/internal/errs"
	"github.com/kuitang/pmm-pages/internal/locators"
	"github.com/kuitang/pmm-pages/internal/obs"
)

// PageType is the generic kind of UI context a page object represents.
type PageType string

const (
	Listing PageType = "Listing"
	NewPage PageType = "New"
	Details PageType = "Details"
)

// Key identifies a registered page object.
type Key struct {
	PageType   PageType
	ObjectName string
}

func (k Key) String() string {
	return string(k.PageType) + " " + k.ObjectName
}

// Page is the capability every registered page object satisfies.
type Page interface {
	Key() Key
	// IsCurrentPage returns nil when the browser shows this page.
	IsCurrentPage(ctx context.Context) error
	// GoTo navigates to this page. Args are page specific (e.g. a record id).
	GoTo(ctx context.Context, args ...string) error
}

// Env is what a page object is constructed with. It is shared by all pages of
// a session and never modified by them.
type Env struct {
	Keywords *browser.Keywords
	// BaseURL is the Lightning instance origin.
	BaseURL string
	// Timeout bounds location waits in IsCurrentPage. Zero means the keywords default.
	Timeout  time.Duration
	Locators *locators.Repository
}

// Constructor builds a page object bound to env.
type Constructor func(env Env) Page

// Registry maps keys to constructors. Registration happens once at startup;
// lookups may run concurrently afterwards.
type Registry struct {
	mu    sync.RWMutex
	ctors map[Key]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[Key]Constructor)}
}

// Register adds ctor under key. A key may be registered only once.
func (r *Registry) Register(key Key, ctor Constructor) error {
	if key.PageType == "" || key.ObjectName == "" {
		return errs.New(errs.InvalidArgument, fmt.Sprintf("page object key %q needs a page type and an object name", key))
	}
	if ctor == nil {
		return errs.New(errs.InvalidArgument, fmt.Sprintf("page object %q has no constructor", key))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[key]; exists {
		return errs.New(errs.AlreadyExists, fmt.Sprintf("page object %q is already registered", key))
	}
	r.ctors[key] = ctor
	obs.Pkg("pageobjects").Debug("registered page object", "page_type", string(key.PageType), "object_name", key.ObjectName)
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(key Key, ctor Constructor) {
	if err := r.Register(key, ctor); err != nil {
		panic(err)
	}
}

// Lookup returns the constructor registered under key.
func (r *Registry) Lookup(key Key) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[key]
	if !ok {
		return nil, errs.New(errs.NotFound, fmt.Sprintf("no page object registered for %q", key))
	}
	return ctor, nil
}

// New constructs the page object registered under key.
func (r *Registry) New(key Key, env Env) (Page, error) {
	ctor, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}
	return ctor(env), nil
}

// Keys returns every registered key sorted by page type then object name.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	keys := make([]Key, 0, len(r.ctors))
	for key := range r.ctors {
		keys = append(keys, key)
	}
	r.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PageType != keys[j].PageType {
			return keys[i].PageType < keys[j].PageType
		}
		return keys[i].ObjectName < keys[j].ObjectName
	})
	return keys
}
