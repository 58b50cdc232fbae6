package field

import "fmt"

// Bundle is an ordered, named collection of fields. Insertion order is fixed
// and serves as the canonical evolved-field order for time stepping.
type Bundle struct {
	names  []string
	byName map[string]*Field
}

// NewBundle collects fields into a bundle, preserving argument order. Names
// must be unique and non-empty.
func NewBundle(fields ...*Field) (*Bundle, error) {
	b := &Bundle{byName: make(map[string]*Field, len(fields))}
	for _, f := range fields {
		if err := b.Add(f); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Add appends a field to the bundle.
func (b *Bundle) Add(f *Field) error {
	if f == nil {
		return fmt.Errorf("field: nil field in bundle")
	}
	if f.Name == "" {
		return fmt.Errorf("field: field without a name")
	}
	if _, ok := b.byName[f.Name]; ok {
		return fmt.Errorf("field: duplicate field %q", f.Name)
	}
	b.names = append(b.names, f.Name)
	b.byName[f.Name] = f
	return nil
}

// Get looks a field up by name.
func (b *Bundle) Get(name string) (*Field, bool) {
	f, ok := b.byName[name]
	return f, ok
}

// Names returns the field names in canonical order. The slice is shared;
// callers must not modify it.
func (b *Bundle) Names() []string { return b.names }

// Fields returns the fields in canonical order.
func (b *Bundle) Fields() []*Field {
	out := make([]*Field, len(b.names))
	for i, n := range b.names {
		out[i] = b.byName[n]
	}
	return out
}

// Len reports the number of fields.
func (b *Bundle) Len() int { return len(b.names) }
