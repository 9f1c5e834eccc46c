// Package leaktest checks that background components stop their goroutines.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const settleTimeout = 2 * time.Second

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check waits for the goroutine count to settle within tolerance of the
// baseline and fails the test with a stack dump if it does not.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(settleTimeout)
	for {
		after := runtime.NumGoroutine()
		if after-g.before <= tolerance {
			return
		}
		if time.Now().After(deadline) {
			buf := make([]byte, 1<<16)
			n := runtime.Stack(buf, true)
			g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d\n%s", g.before, after, tolerance, buf[:n])
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}
