package layered

import (
	"errors"
	"fmt"
	"testing"
)

// TestExitCodeResolve tests the default mapping of parse outcomes
func TestExitCodeResolve(t *testing.T) {
	table := MustTable(Spec{ID: 1, Name: "-a", Type: TypeBool})
	m := NewExitCodeManager()

	if code := m.Resolve(quietParse(t, table, "prog", "-a")); code != 0 {
		t.Errorf("Expected 0 for a valid parse, got %d", code)
	}
	if code := m.Resolve(quietParse(t, table, "prog", "-b")); code != 2 {
		t.Errorf("Expected 2 for an unknown option, got %d", code)
	}
	if code := m.Resolve(nil); code != 0 {
		t.Errorf("Expected 0 for nil result, got %d", code)
	}
	if code := m.Resolve(&Result{}); code != 2 {
		t.Errorf("Expected misusage for an invalid result without error, got %d", code)
	}
}

// TestExitCodeOverrides tests per-category overrides and precedence
func TestExitCodeOverrides(t *testing.T) {
	m := NewExitCodeManager().Define(ErrorTypeMissingRequired, 64)

	if code := m.ResolveError(&ParseError{Type: ErrorTypeMissingRequired}); code != 64 {
		t.Errorf("Expected 64, got %d", code)
	}
	if code := m.ResolveError(fmt.Errorf("wrapped: %w", &ParseError{Type: ErrorTypeUnknownOption})); code != 2 {
		t.Errorf("Expected 2 through wrapping, got %d", code)
	}
	if code := m.ResolveError(&ExitError{Code: 5, Err: errors.New("stop")}); code != 5 {
		t.Errorf("Expected requested code 5, got %d", code)
	}
	if code := m.ResolveError(errors.New("boom")); code != 1 {
		t.Errorf("Expected general error 1, got %d", code)
	}
	if code := m.ResolveError(nil); code != 0 {
		t.Errorf("Expected 0 for nil, got %d", code)
	}
}

// TestExitCodeDefaults tests replacing the default codes
func TestExitCodeDefaults(t *testing.T) {
	m := NewExitCodeManager().
		Define(ErrorTypeLayerConflict, 9).
		Default(ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 64})

	if code := m.ResolveError(&ParseError{Type: ErrorTypeTypeMismatch}); code != 64 {
		t.Errorf("Expected new misusage code 64, got %d", code)
	}
	if code := m.ResolveError(&ParseError{Type: ErrorTypeLayerConflict}); code != 9 {
		t.Errorf("Expected explicit override 9 to survive, got %d", code)
	}
	if d := m.Defaults(); d.MisusageError != 64 {
		t.Errorf("Expected Defaults().MisusageError 64, got %d", d.MisusageError)
	}
}
