//go:build device

package compute

// DeviceBackend models an accelerator-style executor: tasks are enqueued on
// a single in-order command queue and Launch fences on queue drain. Cell
// loops run unchunked inside their task, matching a device where the lanes
// of one kernel launch cover the whole index range.
type DeviceBackend struct {
	queue chan job
	done  chan struct{}
}

type job struct {
	task Task
	err  chan error
}

func NewDeviceBackend() *DeviceBackend {
	d := &DeviceBackend{
		queue: make(chan job, 64),
		done:  make(chan struct{}),
	}
	go d.drain()
	return d
}

func (d *DeviceBackend) drain() {
	for {
		select {
		case j := <-d.queue:
			j.err <- j.task()
		case <-d.done:
			return
		}
	}
}

func (d *DeviceBackend) Name() string    { return "device" }
func (d *DeviceBackend) Available() bool { return true }

func (d *DeviceBackend) Cleanup() {
	select {
	case <-d.done:
	default:
		close(d.done)
	}
}

// Launch enqueues every task and fences: it returns once the queue has
// executed all of them, reporting the first error in submission order.
func (d *DeviceBackend) Launch(tasks []Task) error {
	fences := make([]chan error, len(tasks))
	for i, task := range tasks {
		fences[i] = make(chan error, 1)
		d.queue <- job{task: task, err: fences[i]}
	}

	var first error
	for _, fence := range fences {
		if err := <-fence; err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (d *DeviceBackend) ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n > 0 {
		fn(0, n)
	}
}
