package layered

// ParsedOption is an option found on the command line together with its values.
type ParsedOption struct {
	ID    int
	Name  string
	Type  ValueType
	Layer Layer
	// Values holds every value in order of appearance. It is never empty:
	// an option given without values holds one type-appropriate default.
	Values []Value
	// Index is the token index of the first occurrence.
	Index int
}

// Value returns the first value.
func (o *ParsedOption) Value() Value {
	if len(o.Values) == 0 {
		return defaultValue(o.Type)
	}
	return o.Values[0]
}

// Int returns the first value as an integer and whether it is one.
func (o *ParsedOption) Int() (int64, bool) { return o.Value().Int() }

// Float returns the first value as a float. Integer values are widened.
func (o *ParsedOption) Float() (float64, bool) {
	v := o.Value()
	if i, ok := v.Int(); ok {
		return float64(i), true
	}
	return v.Float()
}

// Bool returns the first value as a bool and whether it is one.
func (o *ParsedOption) Bool() (bool, bool) { return o.Value().Bool() }

// String returns the first value formatted as text.
func (o *ParsedOption) String() string { return o.Value().String() }

// Ints collects every Integer value.
func (o *ParsedOption) Ints() []int64 {
	out := make([]int64, 0, len(o.Values))
	for _, v := range o.Values {
		if i, ok := v.Int(); ok {
			out = append(out, i)
		}
	}
	return out
}

// Floats collects every numeric value, widening integers.
func (o *ParsedOption) Floats() []float64 {
	out := make([]float64, 0, len(o.Values))
	for _, v := range o.Values {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		} else if i, ok := v.Int(); ok {
			out = append(out, float64(i))
		}
	}
	return out
}

// Strings formats every value as text.
func (o *ParsedOption) Strings() []string {
	out := make([]string, len(o.Values))
	for i, v := range o.Values {
		out[i] = v.String()
	}
	return out
}

// Result is the outcome of one parse. It is always returned, even when the
// parse failed; check Valid before trusting Options.
type Result struct {
	// Options in order of first occurrence. Partial when Valid is false.
	Options []*ParsedOption
	Valid   bool
	// ReminderIndex is the index of the first positional token in the parsed
	// token slice; NumReminders is how many tokens follow from there.
	ReminderIndex int
	NumReminders  int
	// Layer is the set of layers compatible with every parsed option.
	Layer Layer
	// Err is the failure that invalidated the parse, nil when Valid.
	Err *ParseError
}

// Option finds a parsed option by its declared id.
func (r *Result) Option(id int) *ParsedOption {
	for _, o := range r.Options {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Lookup finds a parsed option by its literal name.
func (r *Result) Lookup(name string) *ParsedOption {
	for _, o := range r.Options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Has reports whether the option with the given id was parsed.
func (r *Result) Has(id int) bool { return r.Option(id) != nil }

// Reminders slices the positional region out of the tokens that were parsed.
// The returned slice shares storage with tokens.
func (r *Result) Reminders(tokens []string) []string {
	if r.NumReminders <= 0 || r.ReminderIndex >= len(tokens) {
		return nil
	}
	end := r.ReminderIndex + r.NumReminders
	if end > len(tokens) {
		end = len(tokens)
	}
	return tokens[r.ReminderIndex:end]
}

// AsError returns the failure as an error value, or nil when the parse is valid.
func (r *Result) AsError() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}
