// File: checker.go
// Title: Declaration Syntax Checker
// Description: Finite-state checker for object declarations of the form
//              let IDENT = { "key": number, ... }; with Irons-style error
//              recovery: phrase-level insertion of missing tokens and
//              resynchronisation on the next expected token.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-17
//
// Change History:
// - 2026-09-28 v0.1.0: Initial automaton
// - 2026-10-12 v0.2.0: Per-call run state, catalogue diagnostics, trace
//                      option replaces the global debug flag
// - 2026-10-17 v0.2.1: Syntax errors are logged with the state trace

package fsm

import (
	"fmt"
	"strings"

	mdwlog "github.com/msto63/lexan/foundation/core/log"
	"github.com/msto63/lexan/foundation/lexan/messages"
	"github.com/msto63/lexan/foundation/lexan/scanner"
	"github.com/msto63/lexan/foundation/lexan/token"
)

// Options configures the checker
type Options struct {
	// EnableTrace records every state entry and recovery action in
	// Result.Log
	EnableTrace bool
	Logger      *mdwlog.Logger
	// Scanner tokenizes the input; nil selects the default scanner
	Scanner *scanner.Scanner
}

// Checker validates declarations. It holds no per-call state and is safe
// for concurrent use.
type Checker struct {
	scanner *scanner.Scanner
	logger  *mdwlog.Logger
	trace   bool
}

// Result is the outcome of a declaration check
type Result struct {
	Tokens      []token.Token      `json:"tokens"`
	Diagnostics []token.Diagnostic `json:"diagnostics"`
	Log         []string           `json:"log,omitempty"`
	FinalState  State              `json:"final_state"`
}

// OK reports whether the input had no lexical or syntax errors
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// New creates a checker
func New(opts Options) *Checker {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Scanner == nil {
		opts.Scanner = scanner.Default()
	}
	return &Checker{
		scanner: opts.Scanner,
		logger:  opts.Logger.WithField("component", "fsm"),
		trace:   opts.EnableTrace,
	}
}

var defaultChecker = New(Options{EnableTrace: true, Logger: mdwlog.Nop()})

// Parse checks text with tracing enabled and the default scanner
func Parse(text string) *Result {
	return defaultChecker.Parse(text)
}

// Parse tokenizes and checks text
func (c *Checker) Parse(text string) *Result {
	return c.Check(c.scanner.Scan(text))
}

// Check runs the automaton over an existing scan. Lexical errors are
// reported first, then the automaton walks the in-stream tokens.
func (c *Checker) Check(scan *scanner.Result) *Result {
	all := scan.All()
	r := &run{
		toks:  scan.Filtered(),
		state: Start,
		trace: c.trace,
	}

	for _, tok := range all {
		if tok.IsError() {
			r.diags = append(r.diags, messages.Lexical(tok))
		}
	}

	r.walk()

	c.logger.Debug("Declaration check finished", mdwlog.Fields{
		"tokens":      len(all),
		"diagnostics": len(r.diags),
		"final_state": r.state.String(),
	})

	return &Result{
		Tokens:      all,
		Diagnostics: r.diags,
		Log:         r.log,
		FinalState:  r.state,
	}
}

// anchor is a token the checker can resynchronise on
type anchor struct {
	state State
	name  string
	match func(token.Token) bool
}

func is(c token.Category) func(token.Token) bool {
	return func(t token.Token) bool { return t.Category == c }
}

func isLet(t token.Token) bool {
	return t.Is(token.Keyword, "let")
}

var (
	toKeyword = anchor{Keyword, "keyword 'let'", isLet}
	toId      = anchor{Id, "identifier", is(token.Identifier)}
	toAssign  = anchor{Assign, "'='", is(token.Assignment)}
	toLBrace  = anchor{LBraceSt, "'{'", is(token.LBrace)}
	toKey     = anchor{Key, "string key", is(token.String)}
	toColon   = anchor{Colon, "':'", is(token.Colon)}
	toValue   = anchor{Value, "number", is(token.Number)}
	toComma   = anchor{Comma, "','", is(token.Comma)}
	toRBrace  = anchor{RBrace, "'}'", is(token.RBrace)}
)

// run is the state of one check
type run struct {
	toks  []token.Token
	pos   int
	state State
	diags []token.Diagnostic
	log   []string
	trace bool
}

func (r *run) walk() {
	for r.pos < len(r.toks) {
		tok := r.toks[r.pos]
		if r.trace {
			r.log = append(r.log, fmt.Sprintf("State: %s, token: %s '%s' at %d:%d",
				r.state, tok.Category, tok.Text, tok.Line, tok.Column))
		}
		if r.step(tok) {
			r.pos++
		}
	}

	if key, ok := incompleteKeys[r.state]; ok && len(r.toks) > 0 {
		r.add(messages.AtEnd(r.toks[len(r.toks)-1], key))
	}
}

// step processes tok in the current state. It returns false when tok must
// be processed again after a virtual token was inserted.
func (r *run) step(tok token.Token) bool {
	switch r.state {
	case Start:
		switch {
		case isLet(tok):
			r.state = Keyword
		case tok.Category == token.Identifier && strings.HasPrefix(strings.ToLower(tok.Text), "let"):
			r.report(tok, "fsm.not_let_keyword")
			r.recovery("accepted '%s' as the keyword 'let'", tok.Text)
			r.state = Keyword
		default:
			r.report(tok, "fsm.expected_let")
			r.resync(false, toKeyword)
		}

	case Keyword:
		switch {
		case tok.Category == token.Identifier:
			if !startsWithLetter(tok.Text) {
				r.report(tok, "fsm.identifier_letter")
				r.recovery("accepted identifier '%s' although it does not start with a letter", tok.Text)
			}
			r.state = Id
		case tok.IsError() && strings.Contains(tok.Text, "@"):
			r.report(tok, "fsm.at_in_identifier")
			r.recovery("skipped invalid identifier '%s'", tok.Text)
		case tok.Category == token.Assignment:
			r.report(tok, "fsm.missing_identifier")
			r.recovery("inserted a virtual identifier before '='")
			r.state = Id
			return false
		default:
			r.report(tok, "fsm.expected_identifier")
			r.resync(false, toId)
		}

	case Id:
		switch tok.Category {
		case token.Assignment:
			r.state = Assign
		case token.LBrace:
			r.report(tok, "fsm.expected_assign")
			r.recovery("inserted a virtual '='")
			r.state = Assign
			return false
		default:
			r.report(tok, "fsm.expected_assign")
			r.resync(false, toAssign, toLBrace)
		}

	case Assign:
		if tok.Category == token.LBrace {
			r.state = LBraceSt
			break
		}
		r.report(tok, "fsm.expected_lbrace")
		r.resync(false, toLBrace)

	case LBraceSt, Comma:
		switch tok.Category {
		case token.String:
			r.state = Key
		case token.RBrace:
			r.state = RBrace
		default:
			key := "fsm.expected_key_or_rbrace"
			if r.state == Comma {
				key = "fsm.expected_key"
			}
			r.report(tok, key)
			r.resync(true, toKey, toRBrace)
		}

	case Key:
		switch tok.Category {
		case token.Colon:
			r.state = Colon
		case token.Number:
			r.report(tok, "fsm.expected_colon")
			r.recovery("inserted a virtual ':'")
			r.state = Colon
			return false
		default:
			r.report(tok, "fsm.expected_colon")
			r.resync(false, toColon, toValue)
		}

	case Colon:
		switch tok.Category {
		case token.Number:
			r.state = Value
		case token.Comma, token.RBrace:
			r.report(tok, "fsm.expected_value")
			r.recovery("inserted a virtual numeric value before '%s'", tok.Text)
			r.state = Value
			return false
		default:
			r.report(tok, "fsm.expected_value")
			r.resync(false, toValue, toComma, toRBrace)
		}

	case Value:
		switch tok.Category {
		case token.Comma:
			r.state = Comma
		case token.RBrace:
			r.state = RBrace
		default:
			r.report(tok, "fsm.expected_comma_or_rbrace")
			r.resync(true, toComma, toRBrace)
		}

	case RBrace:
		switch {
		case tok.Category == token.Semicolon:
			if r.trace {
				r.log = append(r.log, "State: SEMICOLON, declaration complete")
			}
			r.state = Start
		case isLet(tok):
			r.report(tok, "fsm.expected_semicolon")
			r.recovery("inserted a virtual ';'")
			r.state = Start
			return false
		default:
			r.report(tok, "fsm.expected_semicolon")
			r.recovery("continuing with the next declaration")
			r.state = Error
		}

	case Error:
		switch {
		case tok.Category == token.Semicolon:
			r.recovery("found ';'")
			r.state = Start
		case isLet(tok):
			r.recovery("found a new keyword 'let'")
			r.state = Start
			return false
		case tok.Category == token.RBrace:
			r.recovery("found '}'")
			r.state = RBrace
		}

	default:
		r.state = Error
	}

	return true
}

// resync skips forward from the token after the offending one. With nearest
// set the first token matching any anchor wins; otherwise the anchors are
// tried one after another. The found token is consumed as the expected one.
// When nothing matches the checker enters panic mode.
func (r *run) resync(nearest bool, anchors ...anchor) {
	names := make([]string, len(anchors))
	for i, a := range anchors {
		names[i] = a.name
	}
	r.recovery("searching for %s", strings.Join(names, " or "))

	found, at := r.search(nearest, anchors)
	if at < 0 {
		r.recovery("recovery failed: no expected token found")
		r.state = Error
		return
	}

	tok := r.toks[at]
	r.recovery("resynchronised on %s '%s' at %d:%d", found.name, tok.Text, tok.Line, tok.Column)
	r.pos = at
	r.state = found.state
}

func (r *run) search(nearest bool, anchors []anchor) (anchor, int) {
	if nearest {
		for i := r.pos + 1; i < len(r.toks); i++ {
			for _, a := range anchors {
				if a.match(r.toks[i]) {
					return a, i
				}
			}
		}
		return anchor{}, -1
	}

	for _, a := range anchors {
		for i := r.pos + 1; i < len(r.toks); i++ {
			if a.match(r.toks[i]) {
				return a, i
			}
		}
	}
	return anchor{}, -1
}

func (r *run) report(tok token.Token, key string) {
	r.add(messages.At(tok, key))
}

// add records a syntax diagnostic and logs it inline with the state trace
func (r *run) add(d token.Diagnostic) {
	r.diags = append(r.diags, d)
	if r.trace {
		r.log = append(r.log, fmt.Sprintf("[error] %s at %d:%d", d.Message, d.Line, d.Column))
	}
}

func (r *run) recovery(format string, args ...interface{}) {
	if r.trace {
		r.log = append(r.log, "[recovery] "+fmt.Sprintf(format, args...))
	}
}

func startsWithLetter(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
