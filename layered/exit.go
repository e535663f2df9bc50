package layered

import (
	"errors"
	"os"
)

// ExitError requests a specific exit code from code that consumed a Result.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success       int // default: 0
	GeneralError  int // default: 1
	MisusageError int // default: 2
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2}
}

// ExitCodeManager maps parse outcomes to process exit codes.
// Every parse failure is a misusage unless a category is overridden.
type ExitCodeManager struct {
	codesByType map[ErrorType]int
	defaults    ExitCodeDefaults
}

// NewExitCodeManager returns a manager with the default codes.
func NewExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByType: make(map[ErrorType]int, 6),
		defaults:    defaultExitDefaults(),
	}
	for _, t := range []ErrorType{
		ErrorTypeUnknownOption,
		ErrorTypeDuplicateOption,
		ErrorTypeTooFewValues,
		ErrorTypeTypeMismatch,
		ErrorTypeLayerConflict,
		ErrorTypeMissingRequired,
	} {
		m.codesByType[t] = m.defaults.MisusageError
	}
	return m
}

// Define overrides the exit code used for one error category.
func (e *ExitCodeManager) Define(typ ErrorType, code int) *ExitCodeManager {
	e.codesByType[typ] = code
	return e
}

// Default replaces the default codes. Category mappings still set to the
// previous misusage code follow the new one.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	for t, code := range e.codesByType {
		if code == e.defaults.MisusageError {
			e.codesByType[t] = d.MisusageError
		}
	}
	e.defaults = d
	return e
}

// Defaults returns the current default codes.
func (e *ExitCodeManager) Defaults() ExitCodeDefaults { return e.defaults }

// Resolve returns the exit code for a parse result.
func (e *ExitCodeManager) Resolve(r *Result) int {
	if r == nil || r.Valid {
		return e.defaults.Success
	}
	if r.Err == nil {
		return e.defaults.MisusageError
	}
	return e.ResolveError(r.Err)
}

// ResolveError converts an error to an exit code.
// Precedence:
//  1. ExitError (requested code)
//  2. ParseError category mapping (Define)
//  3. Default codes
func (e *ExitCodeManager) ResolveError(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var perr *ParseError
	if errors.As(err, &perr) {
		if code, ok := e.codesByType[perr.Type]; ok {
			return code
		}
		return e.defaults.MisusageError
	}

	return e.defaults.GeneralError
}

// Exit terminates the process with the code for r.
func (e *ExitCodeManager) Exit(r *Result) {
	os.Exit(e.Resolve(r))
}
