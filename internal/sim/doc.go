// Package sim advances a finite-volume model forward in time.
//
// The Stepper sequences one model step: tendency computation (closure
// collaborator plus registered forcings), the explicit multistep advance
// dispatched one kernel task per evolved field, pressure projection of the
// provisional velocities, the clock advance, a state refresh, and finally
// the O(1) rotation of the tendency buffer pair.
//
// The update applied at every interior cell is
//
//	U += dt * ((1.5+chi)*Gn - (0.5+chi)*Gprev)
//
// with chi = 0.1 by default. Advance's euler flag substitutes the sentinel
// chi = -0.5 for a single step, collapsing the weights to a forward Euler
// update.
//
// Steps are strictly sequential and atomic: a failure at any stage surfaces
// as a [StepError] and leaves the fields mid-step, unfit for further
// integration.
package sim
