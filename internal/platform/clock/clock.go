// Package clock abstracts time so workflow code stays deterministic in tests
package clock

import "time"

// Clock supplies the current UTC instant
// inject this instead of calling time.Now so tests can pin the clock
type Clock interface {
	Now() time.Time
}

// System reads the wall clock, normalized to UTC
type System struct{}

// Now returns the current UTC time
func (System) Now() time.Time { return time.Now().UTC() }

// Fake is a settable clock for tests
type Fake struct {
	t time.Time
}

// NewFake returns a Fake pinned to t (normalized to UTC)
func NewFake(t time.Time) *Fake { return &Fake{t: t.UTC()} }

// Now returns the pinned instant
func (f *Fake) Now() time.Time { return f.t }

// Advance moves the fake clock forward by d
func (f *Fake) Advance(d time.Duration) { f.t = f.t.Add(d) }

// Set pins the fake clock to t
func (f *Fake) Set(t time.Time) { f.t = t.UTC() }
