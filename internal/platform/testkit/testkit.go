// Package testkit holds helpers shared by package tests
package testkit

import (
	"strings"
	"sync"
	"testing"
)

var seams sync.Mutex

// Swap points *target at replacement until the test ends. Store openers expose
// their driver constructors as package variables for this
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	prev := *target
	t.Cleanup(func() { *target = prev })
	*target = replacement
}

// Serial holds a process wide lock until the test ends, for tests that Swap shared seams
func Serial(t testing.TB) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}

// MustContain fails unless out contains want
func MustContain(t testing.TB, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("want %q in output:\n%s", want, out)
	}
}
