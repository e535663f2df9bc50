package layered

import (
	"os"

	"github.com/dzonerzy/go-layered/internal/fuzzy"
	"github.com/dzonerzy/go-layered/internal/pool"
	layeredio "github.com/dzonerzy/go-layered/io"
)

// DefaultMaxSuggestionDistance is the edit distance used for "did you mean"
// suggestions on unknown options.
const DefaultMaxSuggestionDistance = 2

// scanState is the per-parse scratch space. It is pooled so that a Parser can
// be shared across goroutines without locking.
type scanState struct {
	tokens []string
	pos    int
	result *Result
	seen   map[int]*ParsedOption
}

var scanPool = pool.NewPoolWithReset(
	func() *scanState {
		return &scanState{seen: make(map[int]*ParsedOption, 8)}
	},
	func(s *scanState) {
		s.tokens = nil
		s.pos = 0
		s.result = nil
		pool.ClearMap(s.seen)
	},
)

// Parser parses token lists against one Table.
// Configure it once, then call Parse from any number of goroutines.
type Parser struct {
	table       *Table
	logger      *layeredio.Logger
	suggest     bool
	maxDistance int
	// stopOnMismatch ends optional value consumption at a token of the wrong
	// type instead of failing the parse.
	stopOnMismatch bool
}

// NewParser creates a parser for t that reports failures to stderr.
func NewParser(t *Table) *Parser {
	return &Parser{
		table:       t,
		logger:      layeredio.NewLogger(layeredio.New().WithOut(os.Stderr)),
		suggest:     true,
		maxDistance: DefaultMaxSuggestionDistance,
	}
}

// Logger sets the diagnostics logger. A nil logger discards diagnostics.
func (p *Parser) Logger(l *layeredio.Logger) *Parser {
	if l == nil {
		l = layeredio.Discard()
	}
	p.logger = l
	return p
}

// Quiet discards all diagnostics.
func (p *Parser) Quiet() *Parser {
	return p.Logger(nil)
}

// SuggestOptions enables or disables "did you mean" hints for unknown options.
func (p *Parser) SuggestOptions(enabled bool) *Parser {
	p.suggest = enabled
	return p
}

// MaxSuggestionDistance sets the edit distance allowed for suggestions.
func (p *Parser) MaxSuggestionDistance(d int) *Parser {
	p.maxDistance = d
	return p
}

// StopOnMismatch controls what happens when a value beyond an option's
// minimum does not type-check. By default the parse fails with
// ErrorTypeTypeMismatch. When enabled the token ends the option's values and
// scanning resumes at it, so "-v file.txt" leaves file.txt as a reminder.
func (p *Parser) StopOnMismatch(enabled bool) *Parser {
	p.stopOnMismatch = enabled
	return p
}

// Table returns the table the parser matches against.
func (p *Parser) Table() *Table { return p.table }

// Parse is a convenience for NewParser(t).Parse(tokens).
func Parse(tokens []string, t *Table) *Result {
	return NewParser(t).Parse(tokens)
}

// Parse scans tokens left to right. tokens[0] is the program name and is
// skipped. A Result is always returned; when the parse fails Valid is false,
// Err describes the failure and Options holds what was parsed before it.
func (p *Parser) Parse(tokens []string) *Result {
	s := scanPool.Get()
	defer scanPool.Put(s)

	s.tokens = tokens
	s.pos = 1
	s.result = &Result{
		Options:       make([]*ParsedOption, 0, 4),
		ReminderIndex: len(tokens),
	}
	if s.pos > len(tokens) {
		s.pos = len(tokens)
	}

	if err := p.scan(s); err != nil {
		return p.fail(s.result, err)
	}
	if err := resolveLayers(s.result); err != nil {
		return p.fail(s.result, err)
	}
	if err := checkRequired(s.result, p.table); err != nil {
		return p.fail(s.result, err)
	}

	s.result.Valid = true
	return s.result
}

func (p *Parser) fail(result *Result, err *ParseError) *Result {
	result.Valid = false
	result.Err = err
	if err.Suggestion != "" {
		p.logger.Error("%s (did you mean %s?)", err.Message, err.Suggestion)
	} else {
		p.logger.Error("%s", err.Message)
	}
	return result
}

func (p *Parser) scan(s *scanState) *ParseError {
	for s.pos < len(s.tokens) {
		token := s.tokens[s.pos]

		if e := p.table.lookup(token); e != nil {
			if err := p.parseOption(s, e); err != nil {
				return err
			}
			continue
		}

		if p.table.isMarked(token) {
			return p.unknownOption(token, s.pos)
		}

		// First unmatched bare token: it and everything after are reminders.
		s.result.ReminderIndex = s.pos
		s.result.NumReminders = len(s.tokens) - s.pos
		p.logger.Debug("reminders start at %d (%d tokens)", s.pos, s.result.NumReminders)
		return nil
	}
	return nil
}

func (p *Parser) parseOption(s *scanState, e *entry) *ParseError {
	index := s.pos
	opt, seen := s.seen[e.ID]
	if seen && !e.Repeatable {
		return newDuplicateOptionError(e.Name, index)
	}
	if !seen {
		opt = &ParsedOption{
			ID:     e.ID,
			Name:   e.Name,
			Type:   e.Type,
			Layer:  e.Layer,
			Values: make([]Value, 0, max(e.MinValues, 1)),
			Index:  index,
		}
		s.seen[e.ID] = opt
		s.result.Options = append(s.result.Options, opt)
	}
	s.pos++

	// Counts are per occurrence; a repeated option meets its bounds each time.
	consumed := 0
	for consumed < e.MinValues {
		if s.pos >= len(s.tokens) {
			return newTooFewValuesError(e, consumed, s.pos)
		}
		token := s.tokens[s.pos]
		if p.table.lookup(token) != nil {
			return newTooFewValuesError(e, consumed, s.pos)
		}
		v, ok := conform(e.Type, Coerce(token))
		if !ok {
			return newTooFewValuesError(e, consumed, s.pos)
		}
		opt.Values = append(opt.Values, v)
		p.logger.Debug("%s: consumed %s %q", e.Name, v.Kind(), token)
		consumed++
		s.pos++
	}

	for e.Unbounded() || consumed < e.MaxValues {
		if s.pos >= len(s.tokens) {
			break
		}
		token := s.tokens[s.pos]
		if p.table.lookup(token) != nil {
			break
		}
		// Marked tokens end the run unless the option takes numbers, so that
		// "-5" reads as a value of an Integer or Float option.
		if p.table.isMarked(token) && !e.Type.Numeric() {
			break
		}
		v, ok := conform(e.Type, Coerce(token))
		if !ok {
			if p.stopOnMismatch {
				break
			}
			return newTypeMismatchError(e, token, v.Kind(), s.pos)
		}
		opt.Values = append(opt.Values, v)
		p.logger.Debug("%s: consumed %s %q", e.Name, v.Kind(), token)
		consumed++
		s.pos++
	}

	if consumed == 0 {
		v := defaultValue(e.Type)
		opt.Values = append(opt.Values, v)
		p.logger.Debug("%s: no values, using default %s", e.Name, v)
	}
	return nil
}

func (p *Parser) unknownOption(token string, index int) *ParseError {
	err := newUnknownOptionError(token, index)
	if p.suggest {
		err.Suggestion = fuzzy.FindBestOption(token, p.table.optionNames(), p.maxDistance, p.table.marker)
	}
	return err
}
