package browser

import (
	"context"
	"sync"
)

// FakeDriver is a scripted Driver for tests. Each Location call returns the
// next scripted location; the last one sticks. Goto replaces the script with
// the target URL.
type FakeDriver struct {
	mu          sync.Mutex
	script      []string
	reads       int
	navigations []string
	screenshot  []byte
	locationErr error
	gotoErr     error
}

// NewFakeDriver returns a fake whose location walks through locations.
func NewFakeDriver(locations ...string) *FakeDriver {
	if len(locations) == 0 {
		locations = []string{"about:blank"}
	}
	return &FakeDriver{
		script:     append([]string(nil), locations...),
		screenshot: []byte("\x89PNG\r\n\x1a\nfake"),
	}
}

// SetLocation pins the location to a single value.
func (f *FakeDriver) SetLocation(location string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = []string{location}
}

// FailLocation makes Location return err until cleared with nil.
func (f *FakeDriver) FailLocation(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locationErr = err
}

// FailGoto makes Goto return err until cleared with nil.
func (f *FakeDriver) FailGoto(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotoErr = err
}

// Reads returns how many times Location succeeded.
func (f *FakeDriver) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// Navigations returns every URL passed to Goto, in order.
func (f *FakeDriver) Navigations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.navigations...)
}

func (f *FakeDriver) Location(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locationErr != nil {
		return "", f.locationErr
	}
	location := f.script[0]
	if len(f.script) > 1 {
		f.script = f.script[1:]
	}
	f.reads++
	return location, nil
}

func (f *FakeDriver) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gotoErr != nil {
		return f.gotoErr
	}
	f.navigations = append(f.navigations, url)
	f.script = []string{url}
	return nil
}

func (f *FakeDriver) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.screenshot...), nil
}
