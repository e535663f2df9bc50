package layered

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func layeredTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTableBuilder().
		Option(1, "-create").Flag().Required().Layers(Layer0).Help("Create an entry").Back().
		Option(2, "-name").Text().Layers(Layer0).ValueName("NAME").Back().
		Option(3, "-delete").Flag().Required().Layers(Layer1).Back().
		Option(4, "-ids").Int().Values(1, -1).Layers(Layer1).Back().
		Option(5, "-verbose").Flag().Help("Chatty output").Back().
		Positional(6, "FILE", "File to create", Layer0).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return table
}

// TestUsageSynopsisPerLayer tests one synopsis line per used layer
func TestUsageSynopsisPerLayer(t *testing.T) {
	usage := RenderUsage("prog", layeredTable(t))

	want := "Usage:\n" +
		"  prog -create [-name NAME] [-verbose] FILE\n" +
		"  prog -delete [-ids INTEGER...] [-verbose]\n"
	if !strings.HasPrefix(usage, want) {
		t.Errorf("unexpected synopsis:\n%s\nwant prefix:\n%s", usage, want)
	}
}

// TestUsageOptionListing tests the option table below the synopsis
func TestUsageOptionListing(t *testing.T) {
	usage := RenderUsage("prog", layeredTable(t))

	idx := strings.Index(usage, "\nOptions:\n")
	if idx < 0 {
		t.Fatalf("Expected an Options section, got:\n%s", usage)
	}
	listing := usage[idx:]
	for _, s := range []string{"-create", "Create an entry (required)", "-ids INTEGER...", "Chatty output", "all"} {
		if !strings.Contains(listing, s) {
			t.Errorf("Expected listing to contain %q, got:\n%s", s, listing)
		}
	}
	if strings.Contains(listing, "File to create") {
		t.Error("Positional placeholders belong to the synopsis only")
	}
}

// TestUsageSingleLayer tests tables without exclusive groups
func TestUsageSingleLayer(t *testing.T) {
	table := MustTable(
		Spec{ID: 1, Name: "-v", Type: TypeBool, MaxValues: 1},
		Spec{ID: 2, Name: "-n", ValueName: "N", Type: TypeInteger, MinValues: 1, MaxValues: 1, Required: true},
		Spec{ID: 3, Name: "-level", Type: TypeFloat, MaxValues: 1},
		Spec{ID: 4, Name: "-tag", Type: TypeString, MinValues: 1, MaxValues: 3},
		Spec{ID: 5, Name: "ARGS", Type: TypePositional},
	)

	var buf bytes.Buffer
	n, err := WriteUsage(&buf, "tool", table, 0)
	if err != nil {
		t.Fatalf("WriteUsage failed: %v", err)
	}
	out := buf.String()
	if n != len(out) {
		t.Errorf("Expected %d bytes written, got %d", len(out), n)
	}

	want := "Usage:\n  tool [-v] -n N [-level [FLOAT]] [-tag STRING...] ARGS\n"
	if !strings.HasPrefix(out, want) {
		t.Errorf("unexpected synopsis:\n%s\nwant prefix:\n%s", out, want)
	}
	if strings.Contains(out, "Layers") || strings.Contains(out, "LAYERS") {
		t.Errorf("Layer column should be omitted for single-layer tables:\n%s", out)
	}
}

// TestUsagePositionalOnly tests a table without options
func TestUsagePositionalOnly(t *testing.T) {
	table := MustTable(Spec{ID: 1, Name: "SRC", Type: TypePositional})
	if got := RenderUsage("cp", table); got != "Usage:\n  cp SRC\n" {
		t.Errorf("unexpected usage %q", got)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

// TestWriteUsageError tests that writer failures are returned
func TestWriteUsageError(t *testing.T) {
	table := MustTable(Spec{ID: 1, Name: "-v", Type: TypeBool, MaxValues: 1})
	want := errors.New("disk full")
	if _, err := WriteUsage(failingWriter{err: want}, "tool", table, 0); !errors.Is(err, want) {
		t.Errorf("Expected %v, got %v", want, err)
	}
}
