package compute

// Task is one unit of fork-join work, typically the update of a single field.
type Task func() error

// Backend executes the per-field kernel tasks of a time step. Launch is a
// fork-join barrier: it returns only after every task has finished, reporting
// the first error encountered. ParallelFor provides within-task parallelism
// over interior cells.
type Backend interface {
	Name() string
	Available() bool
	Launch(tasks []Task) error
	ParallelFor(n, minChunk int, fn func(start, end int))
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

// SetBackend replaces the process-wide default backend.
func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

// GetBackend returns the process-wide default backend.
func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend picks the device backend when compiled in and available,
// falling back to the host backend.
func AutoSelectBackend() Backend {
	dev := NewDeviceBackend()
	if dev.Available() {
		return dev
	}
	return NewHostBackend()
}

// ByName resolves a backend from its configuration name: "host", "device" or
// "auto".
func ByName(name string) Backend {
	switch name {
	case "host":
		return NewHostBackend()
	case "device":
		return NewDeviceBackend()
	default:
		return AutoSelectBackend()
	}
}
