//nolint:testpackage // using package name 'benchmark' to access unexported fields for testing
package benchmark

import (
	"io"
	"testing"

	"github.com/dzonerzy/go-layered/layered"
)

// Category: parser

func buildSimpleTable() *layered.Table {
	return layered.MustTable(
		layered.Spec{ID: 1, Name: "-port", Type: layered.TypeInteger, MinValues: 1, MaxValues: 1},
		layered.Spec{ID: 2, Name: "-verbose", Type: layered.TypeBool, MaxValues: 1},
	)
}

func BenchmarkParserSimple(b *testing.B) {
	parser := layered.NewParser(buildSimpleTable()).Quiet()
	args := []string{"bench", "-port", "8080", "-verbose"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := parser.Parse(args)
		if !result.Valid {
			b.Fatal(result.AsError())
		}
		if v, ok := result.Option(2).Bool(); !ok || !v {
			b.Fatalf("verbose not parsed")
		}
	}
}

func BenchmarkParserUnboundedValues(b *testing.B) {
	table := layered.MustTable(
		layered.Spec{ID: 1, Name: "-n", Type: layered.TypeInteger, MinValues: 1, MaxValues: -1},
		layered.Spec{ID: 2, Name: "-tags", Type: layered.TypeString, MinValues: 1, MaxValues: -1},
	)
	parser := layered.NewParser(table).Quiet()
	args := []string{"bench", "-n", "1", "-2", "3", "-4", "5", "-tags", "cli", "parser", "go"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := parser.Parse(args)
		if !result.Valid || len(result.Option(1).Values) != 5 {
			b.Fatal("values not parsed")
		}
	}
}

func BenchmarkParserLayers(b *testing.B) {
	table, err := layered.NewTableBuilder().
		Option(1, "-create").Flag().Required().Layers(layered.Layer0).Back().
		Option(2, "-name").Text().Required().Layers(layered.Layer0).Back().
		Option(3, "-delete").Flag().Required().Layers(layered.Layer1).Back().
		Option(4, "-id").Int().Required().Layers(layered.Layer1).Back().
		Option(5, "-verbose").Flag().Back().
		Build()
	if err != nil {
		b.Fatal(err)
	}
	parser := layered.NewParser(table).Quiet()
	args := []string{"bench", "-delete", "-id", "42", "-verbose"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := parser.Parse(args)
		if !result.Valid || result.Layer != layered.Layer1 {
			b.Fatal("layer not resolved")
		}
	}
}

func BenchmarkParserReminders(b *testing.B) {
	parser := layered.NewParser(buildSimpleTable()).Quiet()
	args := []string{"bench", "-port", "8080", "a.txt", "b.txt", "c.txt"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := parser.Parse(args)
		if len(result.Reminders(args)) != 3 {
			b.Fatal("reminders not found")
		}
	}
}

func BenchmarkParserErrorSuggestion(b *testing.B) {
	parser := layered.NewParser(buildSimpleTable()).Quiet()
	args := []string{"bench", "-prot", "8080"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if result := parser.Parse(args); result.Valid || result.Err.Suggestion != "-port" {
			b.Fatal("expected suggestion")
		}
	}
}

func BenchmarkCoerce(b *testing.B) {
	tokens := []string{"42", "-3.5", "true", "file.txt"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = layered.Coerce(tokens[i%len(tokens)])
	}
}

func BenchmarkUsage(b *testing.B) {
	table := buildSimpleTable()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = layered.WriteUsage(io.Discard, "bench", table, 80)
	}
}
