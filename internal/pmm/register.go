package pmm

import (
	"sync"

	"github.com/kuitang/pmm-pages/internal/pageobjects"
)

// Register adds the Program Engagement page objects to reg.
func Register(reg *pageobjects.Registry) error {
	bindings := []struct {
		key  pageobjects.Key
		ctor pageobjects.Constructor
	}{
		{ProgramEngagementListingKey, newProgramEngagementListingPage},
		{NewProgramEngagementKey, newNewProgramEngagementPage},
		{ProgramEngagementDetailKey, newProgramEngagementDetailPage},
	}
	for _, b := range bindings {
		if err := reg.Register(b.key, b.ctor); err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *pageobjects.Registry
)

// Registry returns the process-wide registry with every PMM page object.
func Registry() *pageobjects.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = pageobjects.NewRegistry()
		if err := Register(defaultRegistry); err != nil {
			panic(err)
		}
	})
	return defaultRegistry
}
