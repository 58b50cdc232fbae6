package compute

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	return map[string]Backend{
		"host":   NewHostBackend(),
		"device": NewDeviceBackend(),
	}
}

func TestLaunchRunsEveryTask(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var ran int64
			tasks := make([]Task, 8)
			for i := range tasks {
				tasks[i] = func() error {
					atomic.AddInt64(&ran, 1)
					return nil
				}
			}

			if err := b.Launch(tasks); err != nil {
				t.Fatalf("launch: %v", err)
			}
			if ran != 8 {
				t.Errorf("expected 8 tasks run, got %d", ran)
			}
		})
	}
}

func TestLaunchJoinsBeforeReturn(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var mu sync.Mutex
			done := 0
			tasks := make([]Task, 16)
			for i := range tasks {
				tasks[i] = func() error {
					mu.Lock()
					done++
					mu.Unlock()
					return nil
				}
			}

			if err := b.Launch(tasks); err != nil {
				t.Fatalf("launch: %v", err)
			}

			mu.Lock()
			defer mu.Unlock()
			if done != 16 {
				t.Errorf("launch returned before join: %d of 16 done", done)
			}
		})
	}
}

func TestLaunchReportsFirstError(t *testing.T) {
	wantErr := errors.New("kernel failed")
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			tasks := []Task{
				func() error { return nil },
				func() error { return wantErr },
				func() error { return nil },
			}
			if err := b.Launch(tasks); !errors.Is(err, wantErr) {
				t.Errorf("expected task error, got %v", err)
			}
		})
	}
}

func TestParallelForCoversRangeOnce(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			const n = 1000
			counts := make([]int64, n)
			b.ParallelFor(n, 16, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt64(&counts[i], 1)
				}
			})
			for i, c := range counts {
				if c != 1 {
					t.Fatalf("index %d visited %d times", i, c)
				}
			}
		})
	}
}

func TestParallelForSmallRangeInline(t *testing.T) {
	b := NewHostBackend()
	calls := 0
	b.ParallelFor(4, 16, func(start, end int) {
		calls++
		if start != 0 || end != 4 {
			t.Errorf("expected single chunk [0,4), got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected inline execution, got %d chunks", calls)
	}
}

func TestByName(t *testing.T) {
	if got := ByName("host").Name(); got != "host" {
		t.Errorf("expected host, got %q", got)
	}
	if b := ByName("auto"); b == nil {
		t.Error("auto selection returned nil")
	}
}
