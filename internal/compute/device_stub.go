//go:build !device

package compute

// DeviceBackend stub for builds without device support. All work falls back
// to the host backend.
type DeviceBackend struct {
	host *HostBackend
}

func NewDeviceBackend() *DeviceBackend {
	return &DeviceBackend{host: NewHostBackend()}
}

func (d *DeviceBackend) Name() string    { return "device (not available)" }
func (d *DeviceBackend) Available() bool { return false }
func (d *DeviceBackend) Cleanup()        {}

func (d *DeviceBackend) Launch(tasks []Task) error {
	return d.host.Launch(tasks)
}

func (d *DeviceBackend) ParallelFor(n, minChunk int, fn func(start, end int)) {
	d.host.ParallelFor(n, minChunk, fn)
}
