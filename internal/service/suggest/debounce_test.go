package suggest

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerRunsOnlyLastTrigger(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var mu sync.Mutex
	var ran []string
	done := make(chan struct{})

	record := func(v string) func() {
		return func() {
			mu.Lock()
			ran = append(ran, v)
			mu.Unlock()
			if v == "shawarma" {
				close(done)
			}
		}
	}

	d.Trigger(record("s"))
	d.Trigger(record("sh"))
	d.Trigger(record("shawarma"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected debounced callback")
	}
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(ran) != 1 || ran[0] != "shawarma" {
		t.Fatalf("expected only last callback, got %v", ran)
	}
}

func TestDebouncerWaitsForQuietPeriod(t *testing.T) {
	d := NewDebouncer(80 * time.Millisecond)
	fired := make(chan time.Time, 1)
	start := time.Now()
	d.Trigger(func() { fired <- time.Now() })

	select {
	case at := <-fired:
		if at.Sub(start) < 80*time.Millisecond {
			t.Fatalf("expected callback after settle window, got %v", at.Sub(start))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected callback")
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Cancel()

	select {
	case <-fired:
		t.Fatal("expected cancelled callback to stay silent")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncerFlushRunsPendingOnce(t *testing.T) {
	d := NewDebouncer(time.Hour)
	calls := 0
	d.Trigger(func() { calls++ })
	d.Trigger(func() { calls += 10 })

	d.Flush()
	d.Flush()
	if calls != 10 {
		t.Fatalf("expected only the latest callback once, got %d", calls)
	}
}

func TestNewDebouncerDefaults(t *testing.T) {
	if d := NewDebouncer(0); d.settle != DefaultSettle {
		t.Fatalf("expected default settle, got %v", d.settle)
	}
}
