// Package specfile declares layered option tables in YAML or TOML files.
//
// A file describes the table only; option values always come from the
// command line. Example (YAML):
//
//	marker: "-"
//	options:
//	  - id: 1
//	    name: -count
//	    type: integer
//	    min: 1
//	    max: 1
//	    required: true
//	    layers: [0]
//	  - id: 2
//	    name: FILE
//	    type: positional
//	    layers: [0]
package specfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-layered/layered"
)

// Format represents the table file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota
	// FormatYAML represents YAML format
	FormatYAML
	// FormatTOML represents TOML format
	FormatTOML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ErrUnsupportedFormat is returned for formats other than YAML and TOML.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Document is the decoded form of a table file.
type Document struct {
	Marker  string   `yaml:"marker" toml:"marker"`
	Options []Option `yaml:"options" toml:"options"`
}

// Option is one declared option or positional placeholder.
type Option struct {
	ID         int    `yaml:"id" toml:"id"`
	Name       string `yaml:"name" toml:"name"`
	ValueName  string `yaml:"value_name" toml:"value_name"`
	Help       string `yaml:"help" toml:"help"`
	Type       string `yaml:"type" toml:"type"` // defaults to bool
	Min        int    `yaml:"min" toml:"min"`
	Max        int    `yaml:"max" toml:"max"` // zero or negative is unbounded
	Required   bool   `yaml:"required" toml:"required"`
	Repeatable bool   `yaml:"repeatable" toml:"repeatable"`
	Layers     []int  `yaml:"layers" toml:"layers"` // empty means every layer
}

// Load reads a table file, detecting its format from the extension.
func Load(path string) (*layered.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table file: %w", err)
	}
	t, err := Parse(data, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes data and builds the table it declares.
// FormatAuto is treated as YAML.
func Parse(data []byte, format Format) (*layered.Table, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return doc.Table()
}

// Decode decodes data without building a table.
func Decode(data []byte, format Format) (*Document, error) {
	if format == FormatAuto {
		format = FormatYAML
	}

	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return &doc, nil
}

// Table converts the document into a validated table.
func (d *Document) Table() (*layered.Table, error) {
	b := layered.NewTableBuilder()
	switch len(d.Marker) {
	case 0:
	case 1:
		b.Marker(d.Marker[0])
	default:
		return nil, fmt.Errorf("marker %q must be a single character", d.Marker)
	}

	for i, o := range d.Options {
		spec, err := o.spec()
		if err != nil {
			return nil, fmt.Errorf("option %d (%s): %w", i, o.Name, err)
		}
		b.Specs(spec)
	}

	t, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	return t, nil
}

func (o *Option) spec() (layered.Spec, error) {
	typ := layered.TypeBool
	if o.Type != "" {
		var err error
		if typ, err = layered.ParseValueType(o.Type); err != nil {
			return layered.Spec{}, err
		}
	}

	var layer layered.Layer
	for _, idx := range o.Layers {
		if idx < 0 || idx >= layered.MaxLayers {
			return layered.Spec{}, fmt.Errorf("layer %d out of range 0-%d", idx, layered.MaxLayers-1)
		}
		layer |= layered.LayerOf(idx)
	}

	return layered.Spec{
		ID:         o.ID,
		Name:       o.Name,
		ValueName:  o.ValueName,
		Help:       o.Help,
		Type:       typ,
		MinValues:  o.Min,
		MaxValues:  o.Max,
		Required:   o.Required,
		Repeatable: o.Repeatable,
		Layer:      layer,
	}, nil
}

// detectFormat determines the table format from file extension
func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML // .yaml, .yml and anything else
	}
}
