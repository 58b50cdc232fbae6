// Package compute provides the execution targets that run time-step kernels.
//
// The package automatically selects the best available backend:
//
//   - Device: accelerator-style in-order command queue (build tag "device")
//   - Host: goroutine fork-join across CPU cores
//
// # Dispatch model
//
// A step's explicit advance launches one task per evolved field and fences
// on completion:
//
//	backend := compute.GetBackend()
//	err := backend.Launch(tasks)
//
// Each task parallelizes over its field's interior cells with
// Backend.ParallelFor. Tasks write disjoint fields, so the only
// synchronization is the Launch join barrier.
package compute
