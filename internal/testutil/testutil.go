package testutil

import (
  "context"
  "sync"
  "sync/atomic"
  "testing"
  "time"
)

// TestTimeout is the default timeout for tests
const TestTimeout = 5 * time.Second

// DefaultPollInterval is how often Eventually-style helpers re-check a condition
const DefaultPollInterval = 10 * time.Millisecond

// WithTimeout creates a context with the default test timeout
func WithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
  t.Helper()
  return context.WithTimeout(context.Background(), TestTimeout)
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
  t.Helper()
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
  t.Helper()
  if err == nil {
    t.Fatal("expected error, got nil")
  }
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
  t.Helper()
  if got != want {
    t.Fatalf("got %v, want %v", got, want)
  }
}

// AssertNotEqual fails the test if got == notWant
func AssertNotEqual[T comparable](t *testing.T, got, notWant T) {
  t.Helper()
  if got == notWant {
    t.Fatalf("got %v, want anything else", got)
  }
}

// Eventually polls cond until it returns true or the timeout elapses
func Eventually(t *testing.T, cond func() bool, timeout, interval time.Duration) {
  t.Helper()
  deadline := time.Now().Add(timeout)
  for time.Now().Before(deadline) {
    if cond() {
      return
    }
    time.Sleep(interval)
  }
  t.Fatalf("condition not met within %v", timeout)
}

// AssertEventually polls cond with the default test timeout and interval
func AssertEventually(t *testing.T, cond func() bool) {
  t.Helper()
  Eventually(t, cond, TestTimeout, DefaultPollInterval)
}

// EventuallyWithContext polls cond until it returns true or the context is done
func EventuallyWithContext(t *testing.T, ctx context.Context, cond func() bool, interval time.Duration) {
  t.Helper()
  for {
    if cond() {
      return
    }
    select {
    case <-ctx.Done():
      t.Fatalf("condition not met before context end: %v", ctx.Err())
    case <-time.After(interval):
    }
  }
}

// WaitForInt32 waits until the atomic int32 equals want or the timeout elapses
func WaitForInt32(t *testing.T, value *int32, want int32, timeout time.Duration) {
  t.Helper()
  Eventually(t, func() bool {
    return atomic.LoadInt32(value) == want
  }, timeout, time.Millisecond)
}

// WaitForInt64 waits until the atomic int64 equals want or the timeout elapses
func WaitForInt64(t *testing.T, value *int64, want int64, timeout time.Duration) {
  t.Helper()
  Eventually(t, func() bool {
    return atomic.LoadInt64(value) == want
  }, timeout, time.Millisecond)
}

// CallbackTracker records callback invocations and the last value passed,
// safe for concurrent use
type CallbackTracker struct {
  mu    sync.Mutex
  count int
  value interface{}
}

// NewCallbackTracker creates an empty tracker
func NewCallbackTracker() *CallbackTracker {
  return &CallbackTracker{}
}

// Mark records one invocation, optionally with the value the callback received
func (c *CallbackTracker) Mark(values ...interface{}) {
  c.mu.Lock()
  defer c.mu.Unlock()
  c.count++
  if len(values) > 0 {
    c.value = values[len(values)-1]
  }
}

// Called reports whether Mark was called at least once
func (c *CallbackTracker) Called() bool {
  c.mu.Lock()
  defer c.mu.Unlock()
  return c.count > 0
}

// CallCount returns the number of Mark calls
func (c *CallbackTracker) CallCount() int {
  c.mu.Lock()
  defer c.mu.Unlock()
  return c.count
}

// Value returns the last value passed to Mark, or nil
func (c *CallbackTracker) Value() interface{} {
  c.mu.Lock()
  defer c.mu.Unlock()
  return c.value
}

// Reset clears the call count and last value
func (c *CallbackTracker) Reset() {
  c.mu.Lock()
  defer c.mu.Unlock()
  c.count = 0
  c.value = nil
}

// AssertCalled fails the test if Mark was never called
func (c *CallbackTracker) AssertCalled(t *testing.T) {
  t.Helper()
  if !c.Called() {
    t.Fatal("expected callback to be called")
  }
}

// AssertNotCalled fails the test if Mark was called
func (c *CallbackTracker) AssertNotCalled(t *testing.T) {
  t.Helper()
  if c.Called() {
    t.Fatalf("expected callback not to be called, called %d times", c.CallCount())
  }
}

// AssertCallCount fails the test if the call count differs from want
func (c *CallbackTracker) AssertCallCount(t *testing.T, want int) {
  t.Helper()
  if got := c.CallCount(); got != want {
    t.Fatalf("call count = %d, want %d", got, want)
  }
}
