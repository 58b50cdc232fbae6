// Package tendency stores the per-field right-hand-side accumulators of the
// time-stepping scheme. A Pair holds the current and previous accumulator
// sets and rotates them between steps by swapping ownership, never by
// copying.
package tendency

import (
	"fmt"

	"github.com/ssghost/gocean/internal/field"
)

// Set maps every evolved field to a tendency field congruent in shape and
// staggering. The identity list and its order are fixed at construction.
type Set struct {
	fields *field.Bundle
}

// NewSet allocates a zeroed tendency set congruent with the evolved bundle.
func NewSet(evolved *field.Bundle) (*Set, error) {
	if evolved == nil || evolved.Len() == 0 {
		return nil, fmt.Errorf("tendency: empty evolved-field bundle")
	}
	tend, err := field.NewBundle()
	if err != nil {
		return nil, err
	}
	for _, f := range evolved.Fields() {
		if err := tend.Add(field.New(f.Name, f.Loc, f.Grid())); err != nil {
			return nil, err
		}
	}
	return &Set{fields: tend}, nil
}

// Field returns the tendency accumulator for the named evolved field.
func (s *Set) Field(name string) (*field.Field, bool) {
	return s.fields.Get(name)
}

// Fields returns the accumulators in evolved-field order.
func (s *Set) Fields() []*field.Field { return s.fields.Fields() }

// Names returns the field identities in evolved-field order.
func (s *Set) Names() []string { return s.fields.Names() }

// Zero clears every accumulator.
func (s *Set) Zero() {
	for _, f := range s.fields.Fields() {
		f.Zero()
	}
}

// Congruent verifies that the set carries exactly the evolved bundle's
// identities, in order, with matching shape and staggering.
func (s *Set) Congruent(evolved *field.Bundle) error {
	names := s.fields.Names()
	want := evolved.Names()
	if len(names) != len(want) {
		return fmt.Errorf("tendency: %d accumulators for %d evolved fields", len(names), len(want))
	}
	for i, n := range want {
		if names[i] != n {
			return fmt.Errorf("tendency: field %d is %q, evolved list has %q", i, names[i], n)
		}
		ef, _ := evolved.Get(n)
		tf, _ := s.fields.Get(n)
		if !tf.Congruent(ef) {
			return fmt.Errorf("tendency: accumulator for %q does not match field shape", n)
		}
	}
	return nil
}

// Pair holds the current (Gⁿ) and previous (G⁻) tendency sets.
type Pair struct {
	Curr *Set
	Prev *Set
}

// NewPair allocates zeroed current and previous sets for the evolved bundle.
// The previous set starting from zero makes the first multistep update
// degenerate to Δt*(1.5+χ)*Gⁿ.
func NewPair(evolved *field.Bundle) (*Pair, error) {
	curr, err := NewSet(evolved)
	if err != nil {
		return nil, err
	}
	prev, err := NewSet(evolved)
	if err != nil {
		return nil, err
	}
	return &Pair{Curr: curr, Prev: prev}, nil
}

// Rotate makes the current set the previous one, reusing the old previous
// set's storage for the next step's accumulation. O(1) pointer swap.
func (p *Pair) Rotate() {
	p.Curr, p.Prev = p.Prev, p.Curr
}
