package compute

import (
	"runtime"
	"sync"
)

// HostBackend runs kernel tasks on goroutines across the machine's cores.
type HostBackend struct {
	workers int
}

func NewHostBackend() *HostBackend {
	return &HostBackend{
		workers: runtime.NumCPU(),
	}
}

func (h *HostBackend) Name() string    { return "host" }
func (h *HostBackend) Available() bool { return true }
func (h *HostBackend) Cleanup()        {}

// Launch forks one goroutine per task and joins all of them before
// returning. The first task error, in launch order, is reported.
func (h *HostBackend) Launch(tasks []Task) error {
	if len(tasks) == 1 {
		return tasks[0]()
	}

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task Task) {
			defer wg.Done()
			errs[i] = task()
		}(i, task)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ParallelFor splits [0, n) into contiguous chunks across workers. Ranges
// below minChunk run inline.
func (h *HostBackend) ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n <= minChunk || h.workers <= 1 {
		fn(0, n)
		return
	}

	workers := h.workers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			if s < e {
				fn(s, e)
			}
		}(start, end)
	}
	wg.Wait()
}
