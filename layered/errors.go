package layered

import (
	"strconv"
)

// ErrorType represents the category of a parse failure.
// Categories drive exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeUnknownOption   ErrorType = "unknown_option"
	ErrorTypeDuplicateOption ErrorType = "duplicate_option"
	ErrorTypeTooFewValues    ErrorType = "too_few_values"
	ErrorTypeTypeMismatch    ErrorType = "type_mismatch"
	ErrorTypeLayerConflict   ErrorType = "layer_conflict"
	ErrorTypeMissingRequired ErrorType = "missing_required"
)

// ParseError describes why a parse was rejected.
type ParseError struct {
	Type    ErrorType
	Message string
	Option  string // the option the failure is about

	// Type mismatch details
	Expected ValueType
	Actual   ValueType
	Value    string // offending token

	Conflicts  []string // LayerConflict: options already parsed that exclude Option
	Missing    []string // MissingRequired: every absent required option
	Suggestion string   // UnknownOption: closest declared name, if any
	Index      int      // token index the failure was detected at, -1 when not tied to a token
}

func (e *ParseError) Error() string {
	return e.Message
}

func newUnknownOptionError(token string, index int) *ParseError {
	return &ParseError{
		Type:    ErrorTypeUnknownOption,
		Message: "unknown option: " + token,
		Option:  token,
		Index:   index,
	}
}

func newDuplicateOptionError(name string, index int) *ParseError {
	return &ParseError{
		Type:    ErrorTypeDuplicateOption,
		Message: "option " + name + " may only be given once",
		Option:  name,
		Index:   index,
	}
}

func newTooFewValuesError(e *entry, got, index int) *ParseError {
	return &ParseError{
		Type: ErrorTypeTooFewValues,
		Message: "option " + e.Name + " requires at least " + strconv.Itoa(e.MinValues) +
			" " + e.Type.String() + " value(s), got " + strconv.Itoa(got),
		Option:   e.Name,
		Expected: e.Type,
		Index:    index,
	}
}

func newTypeMismatchError(e *entry, token string, actual ValueType, index int) *ParseError {
	return &ParseError{
		Type: ErrorTypeTypeMismatch,
		Message: "option " + e.Name + " expects " + e.Type.String() + " value, got " +
			actual.String() + " " + strconv.Quote(token),
		Option:   e.Name,
		Expected: e.Type,
		Actual:   actual,
		Value:    token,
		Index:    index,
	}
}

// SpecError reports an invalid option declaration found while building a Table.
type SpecError struct {
	Name   string
	ID     int
	Reason string
}

func (e *SpecError) Error() string {
	if e.Name == "" {
		return "invalid option spec (id " + strconv.Itoa(e.ID) + "): " + e.Reason
	}
	return "invalid option spec " + e.Name + ": " + e.Reason
}
