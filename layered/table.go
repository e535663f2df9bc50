package layered

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// DefaultMarker is the leading character of an option name.
const DefaultMarker = '-'

// Spec declares one recognized option.
type Spec struct {
	ID        int       // stable numeric identifier
	Name      string    // token text including the marker, e.g. "-verbose"
	ValueName string    // display placeholder for values
	Help      string    // display description
	Type      ValueType // accepted value kinds
	MinValues int       // zero or negative means no values are required
	MaxValues int       // zero or negative means no upper limit
	Required  bool
	// Repeatable allows the option to appear more than once; values of every
	// occurrence accumulate on the same parsed option.
	Repeatable bool
	// Layer lists the mutually exclusive groups the option belongs to.
	// Zero means every layer.
	Layer Layer
}

// Unbounded reports whether the option accepts any number of values.
func (s *Spec) Unbounded() bool { return s.MaxValues <= 0 }

// Optional reports whether the option may be given without values.
func (s *Spec) Optional() bool { return s.MinValues <= 0 }

// entry is a spec plus the fields derived from it when the table is built.
type entry struct {
	Spec
	hash uint64
}

// Table is an immutable, validated set of option specs.
// It is safe to share between any number of parses, concurrent or not.
type Table struct {
	entries []entry
	byHash  map[uint64][]int
	ids     map[int]int
	marker  byte
	layers  Layer // union of every option layer
}

// NewTable validates specs and builds a table using the default marker.
func NewTable(specs ...Spec) (*Table, error) {
	return NewTableBuilder().Specs(specs...).Build()
}

// MustTable is like NewTable but panics on an invalid declaration.
// Intended for package-level tables whose contents are fixed at compile time.
func MustTable(specs ...Spec) *Table {
	t, err := NewTable(specs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Marker returns the option marker character.
func (t *Table) Marker() byte { return t.marker }

// Len returns the number of declared specs, positional placeholders included.
func (t *Table) Len() int { return len(t.entries) }

// Specs returns a copy of the declared specs in declaration order.
func (t *Table) Specs() []Spec {
	out := make([]Spec, len(t.entries))
	for i := range t.entries {
		out[i] = t.entries[i].Spec
	}
	return out
}

// Spec returns the spec with the given id.
func (t *Table) Spec(id int) (Spec, bool) {
	if e := t.byID(id); e != nil {
		return e.Spec, true
	}
	return Spec{}, false
}

// Layers returns the union of every layer used by an option.
func (t *Table) Layers() Layer { return t.layers }

// lookup finds the option whose name is exactly token.
// Positional placeholders are never returned.
func (t *Table) lookup(token string) *entry {
	for _, i := range t.byHash[xxhash.Sum64String(token)] {
		e := &t.entries[i]
		if e.Name == token && e.Type != TypePositional {
			return e
		}
	}
	return nil
}

func (t *Table) byID(id int) *entry {
	if i, ok := t.ids[id]; ok {
		return &t.entries[i]
	}
	return nil
}

func (t *Table) isMarked(token string) bool {
	return len(token) > 0 && token[0] == t.marker
}

// optionNames lists every matchable option name, used for suggestions.
func (t *Table) optionNames() []string {
	names := make([]string, 0, len(t.entries))
	for i := range t.entries {
		if t.entries[i].Type != TypePositional {
			names = append(names, t.entries[i].Name)
		}
	}
	return names
}

// TableBuilder provides a fluent API for declaring a table.
type TableBuilder struct {
	specs  []Spec
	marker byte
}

// NewTableBuilder creates an empty builder using DefaultMarker.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{marker: DefaultMarker}
}

// Marker changes the option marker character (e.g. '/').
func (b *TableBuilder) Marker(marker byte) *TableBuilder {
	b.marker = marker
	return b
}

// Specs appends fully formed specs.
func (b *TableBuilder) Specs(specs ...Spec) *TableBuilder {
	b.specs = append(b.specs, specs...)
	return b
}

// Option starts the declaration of an option. The option defaults to a
// single optional Bool value in every layer; call Back to return here.
func (b *TableBuilder) Option(id int, name string) *OptionBuilder {
	b.specs = append(b.specs, Spec{ID: id, Name: name, Type: TypeBool, MaxValues: 1})
	return &OptionBuilder{parent: b, index: len(b.specs) - 1}
}

// Positional declares a positional placeholder shown in usage for the given layers.
func (b *TableBuilder) Positional(id int, name, help string, layer Layer) *TableBuilder {
	b.specs = append(b.specs, Spec{ID: id, Name: name, ValueName: name, Help: help, Type: TypePositional, Layer: layer})
	return b
}

// Build validates the declarations and computes derived fields once.
func (b *TableBuilder) Build() (*Table, error) {
	t := &Table{
		entries: make([]entry, 0, len(b.specs)),
		byHash:  make(map[uint64][]int, len(b.specs)),
		ids:     make(map[int]int, len(b.specs)),
		marker:  b.marker,
	}
	names := make(map[string]struct{}, len(b.specs))

	for _, s := range b.specs {
		if err := b.validate(&s); err != nil {
			return nil, err
		}
		if _, dup := t.ids[s.ID]; dup {
			return nil, &SpecError{Name: s.Name, ID: s.ID, Reason: "duplicate id " + strconv.Itoa(s.ID)}
		}
		if _, dup := names[s.Name]; dup {
			return nil, &SpecError{Name: s.Name, ID: s.ID, Reason: "duplicate name"}
		}
		if s.Layer == 0 {
			s.Layer = LayerAll
		}

		e := entry{Spec: s, hash: xxhash.Sum64String(s.Name)}
		idx := len(t.entries)
		t.entries = append(t.entries, e)
		t.byHash[e.hash] = append(t.byHash[e.hash], idx)
		t.ids[s.ID] = idx
		names[s.Name] = struct{}{}
		if s.Type != TypePositional {
			t.layers |= s.Layer
		}
	}
	return t, nil
}

func (b *TableBuilder) validate(s *Spec) error {
	switch {
	case s.Name == "":
		return &SpecError{ID: s.ID, Reason: "empty name"}
	case !s.Type.valid():
		return &SpecError{Name: s.Name, ID: s.ID, Reason: "invalid type " + s.Type.String()}
	case s.Type != TypePositional && s.Name[0] != b.marker:
		return &SpecError{Name: s.Name, ID: s.ID, Reason: "name must start with " + strconv.QuoteRune(rune(b.marker))}
	case s.Type != TypePositional && len(s.Name) == 1:
		return &SpecError{Name: s.Name, ID: s.ID, Reason: "name is only the marker"}
	case s.MaxValues > 0 && s.MinValues > s.MaxValues:
		return &SpecError{Name: s.Name, ID: s.ID, Reason: "minimum value count exceeds maximum"}
	}
	return nil
}

// OptionBuilder configures a single option declared with TableBuilder.Option.
type OptionBuilder struct {
	parent *TableBuilder
	index  int
}

func (o *OptionBuilder) spec() *Spec { return &o.parent.specs[o.index] }

// Type sets the accepted value type
func (o *OptionBuilder) Type(t ValueType) *OptionBuilder {
	o.spec().Type = t
	return o
}

// Int accepts a single required integer value
func (o *OptionBuilder) Int() *OptionBuilder { return o.Type(TypeInteger).Values(1, 1) }

// Float accepts a single required float value
func (o *OptionBuilder) Float() *OptionBuilder { return o.Type(TypeFloat).Values(1, 1) }

// Text accepts a single required string value
func (o *OptionBuilder) Text() *OptionBuilder { return o.Type(TypeString).Values(1, 1) }

// Flag makes the option a switch: Bool type with an optional explicit value.
func (o *OptionBuilder) Flag() *OptionBuilder { return o.Type(TypeBool).Values(0, 1) }

// Values sets the value count bounds (see Spec.MinValues / Spec.MaxValues).
func (o *OptionBuilder) Values(minValues, maxValues int) *OptionBuilder {
	s := o.spec()
	s.MinValues = minValues
	s.MaxValues = maxValues
	return o
}

// Required marks the option as required within its layers
func (o *OptionBuilder) Required() *OptionBuilder {
	o.spec().Required = true
	return o
}

// Repeatable allows the option to appear more than once
func (o *OptionBuilder) Repeatable() *OptionBuilder {
	o.spec().Repeatable = true
	return o
}

// Layers sets the layers the option belongs to
func (o *OptionBuilder) Layers(l Layer) *OptionBuilder {
	o.spec().Layer = l
	return o
}

// ValueName sets the usage placeholder
func (o *OptionBuilder) ValueName(name string) *OptionBuilder {
	o.spec().ValueName = name
	return o
}

// Help sets the usage description
func (o *OptionBuilder) Help(help string) *OptionBuilder {
	o.spec().Help = help
	return o
}

// Back returns to the table builder
func (o *OptionBuilder) Back() *TableBuilder {
	return o.parent
}
