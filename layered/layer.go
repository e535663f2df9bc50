package layered

import (
	"math/bits"
	"strconv"
	"strings"
)

// Layer is a bitmask of mutually exclusive option groups.
// Two masks are compatible when they share at least one bit.
type Layer uint8

// MaxLayers is the number of distinct layers a table can declare.
const MaxLayers = 8

const (
	Layer0 Layer = 1 << iota
	Layer1
	Layer2
	Layer3
	Layer4
	Layer5
	Layer6
	Layer7

	// LayerAll makes an option usable with every layer. Specs declared with a
	// zero layer are normalized to LayerAll when the table is built.
	LayerAll Layer = 0xFF
)

// LayerOf returns the mask with only bit index set.
func LayerOf(index int) Layer {
	if index < 0 || index >= MaxLayers {
		return 0
	}
	return Layer(1) << index
}

// Has reports whether the layer with the given index is part of l.
func (l Layer) Has(index int) bool {
	return l&LayerOf(index) != 0
}

// Intersects reports whether l and other share a layer.
func (l Layer) Intersects(other Layer) bool {
	return l&other != 0
}

// Indexes lists the layer indexes set in l, lowest first.
func (l Layer) Indexes() []int {
	out := make([]int, 0, bits.OnesCount8(uint8(l)))
	for i := 0; i < MaxLayers; i++ {
		if l.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

func (l Layer) String() string {
	if l == LayerAll {
		return "all"
	}
	if l == 0 {
		return "none"
	}
	idx := l.Indexes()
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// layerResolver accumulates the layers used by the options of one parse.
//
// The accumulator narrows by intersection: after each option it holds only the
// layers every option seen so far belongs to. An option that shares no layer
// with the accumulator conflicts with everything already parsed.
type layerResolver struct {
	used   Layer
	seeded bool
}

// admit folds mask into the accumulator. It returns false, leaving the
// accumulator untouched, when mask cannot coexist with the options seen so far.
func (r *layerResolver) admit(mask Layer) bool {
	if !r.seeded {
		r.used = mask
		r.seeded = true
		return true
	}
	if !r.used.Intersects(mask) {
		return false
	}
	r.used &= mask
	return true
}

// resolveLayers runs the cross-option consistency check over the options in
// first-occurrence order and stores the resolved layer on the result.
func resolveLayers(result *Result) *ParseError {
	var r layerResolver
	for i, opt := range result.Options {
		if r.admit(opt.Layer) {
			continue
		}
		conflicts := make([]string, 0, i)
		for _, prev := range result.Options[:i] {
			if prev.Layer.Intersects(r.used) {
				conflicts = append(conflicts, prev.Name)
			}
		}
		result.Layer = r.used
		return &ParseError{
			Type:      ErrorTypeLayerConflict,
			Message:   "option " + opt.Name + " cannot be combined with " + strings.Join(conflicts, ", "),
			Option:    opt.Name,
			Conflicts: conflicts,
			Index:     opt.Index,
		}
	}
	result.Layer = r.used
	return nil
}

// checkRequired verifies that every required option belonging to the base
// layer was supplied. The base layer is only known once a required option has
// been seen; without one the check is skipped.
func checkRequired(result *Result, t *Table) *ParseError {
	supplied := false
	for _, opt := range result.Options {
		if e := t.byID(opt.ID); e != nil && e.Required {
			supplied = true
			break
		}
	}
	if !supplied {
		return nil
	}

	base := result.Layer
	var missing []string
	for i := range t.entries {
		e := &t.entries[i]
		if !e.Required || e.Type == TypePositional || !e.Layer.Intersects(base) {
			continue
		}
		if result.Option(e.ID) == nil {
			missing = append(missing, e.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ParseError{
		Type:    ErrorTypeMissingRequired,
		Message: "missing required option: " + strings.Join(missing, ", "),
		Option:  missing[0],
		Missing: missing,
		Index:   -1,
	}
}
