// File: descent.go
// Title: Recursive-Descent Expression Validator
// Description: Validates arithmetic expressions over integers by recursive
//              descent and records the procedure call trace. The first
//              syntax error ends the parse and is returned as a value.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-12
//
// Change History:
// - 2026-09-28 v0.1.0: Initial validator
// - 2026-10-12 v0.2.0: Explicit SyntaxError results, per-call parse state

package descent

import (
	"fmt"

	mdwlog "github.com/msto63/lexan/foundation/core/log"
	"github.com/msto63/lexan/foundation/lexan/messages"
	"github.com/msto63/lexan/foundation/lexan/scanner"
	"github.com/msto63/lexan/foundation/lexan/token"
)

// Procedure names recorded in Result.Trace
const (
	ProcExpr    = "expr"
	ProcAddSub  = "addsub"
	ProcTerm    = "term"
	ProcInteger = "integer"
)

// Options configures the validator
type Options struct {
	// EnableTrace writes a log line per procedure call and match
	EnableTrace bool
	Logger      *mdwlog.Logger
	// Scanner tokenizes the input; nil selects the default scanner
	Scanner *scanner.Scanner
}

// SyntaxError is the first error found by the validator
type SyntaxError struct {
	Message string                 `json:"message"`
	Line    int                    `json:"line"`
	Column  int                    `json:"column"`
	Key     string                 `json:"key"`
	Args    map[string]interface{} `json:"args,omitempty"`
	Text    string                 `json:"text,omitempty"`
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return e.Diagnostic().String()
}

// Diagnostic converts the error to a diagnostic
func (e *SyntaxError) Diagnostic() token.Diagnostic {
	return token.Diagnostic{
		Message:   e.Message,
		Line:      e.Line,
		Column:    e.Column,
		Offending: e.Text,
		Key:       e.Key,
		Args:      e.Args,
	}
}

// Result is the outcome of a validation
type Result struct {
	Trace       []string           `json:"trace"`
	Diagnostics []token.Diagnostic `json:"diagnostics"`
	Log         []string           `json:"log,omitempty"`
	Err         *SyntaxError       `json:"error,omitempty"`
}

// OK reports whether the expression is valid
func (r *Result) OK() bool {
	return r.Err == nil
}

// Validator checks expressions. It is safe for concurrent use.
type Validator struct {
	scanner *scanner.Scanner
	logger  *mdwlog.Logger
	trace   bool
}

// New creates a validator
func New(opts Options) *Validator {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Scanner == nil {
		opts.Scanner = scanner.Default()
	}
	return &Validator{
		scanner: opts.Scanner,
		logger:  opts.Logger.WithField("component", "descent"),
		trace:   opts.EnableTrace,
	}
}

var defaultValidator = New(Options{EnableTrace: true, Logger: mdwlog.Nop()})

// Parse validates text with tracing enabled and the default scanner
func Parse(text string) *Result {
	return defaultValidator.Parse(text)
}

// Parse tokenizes and validates text
func (v *Validator) Parse(text string) *Result {
	return v.Validate(v.scanner.Scan(text))
}

// Validate runs the validator over an existing scan. Only in-stream tokens
// take part; brackets left open surface as a missing ')'.
func (v *Validator) Validate(scan *scanner.Result) *Result {
	p := &parser{toks: scan.Filtered(), trace: v.trace}

	p.logf("== parse started ==")
	err := p.expr()
	if err == nil && p.pos < len(p.toks) {
		err = p.failAt(p.toks[p.pos], "descent.trailing_tokens")
	}

	res := &Result{Trace: p.calls, Err: err}
	if err != nil {
		res.Diagnostics = []token.Diagnostic{err.Diagnostic()}
		p.logf("error: %s at line %d, column %d", err.Message, err.Line, err.Column)
	} else {
		p.logf("== parse finished successfully ==")
	}
	res.Log = p.log

	v.logger.Debug("Expression validation finished", mdwlog.Fields{
		"calls": len(res.Trace),
		"valid": res.OK(),
	})
	return res
}

// parser is the state of one validation
type parser struct {
	toks  []token.Token
	pos   int
	calls []string
	log   []string
	trace bool
}

// expr := addsub (("*" | "/" | "%") addsub)*
func (p *parser) expr() *SyntaxError {
	p.enter(ProcExpr)
	if err := p.addsub(); err != nil {
		return err
	}
	for p.matchOperator("*", "/", "%") {
		if err := p.addsub(); err != nil {
			return err
		}
	}
	return nil
}

// addsub := term (("+" | "-") term)*
func (p *parser) addsub() *SyntaxError {
	p.enter(ProcAddSub)
	if err := p.term(); err != nil {
		return err
	}
	for p.matchOperator("+", "-") {
		if err := p.term(); err != nil {
			return err
		}
	}
	return nil
}

// term := "(" expr ")" | integer
func (p *parser) term() *SyntaxError {
	p.enter(ProcTerm)
	if !p.matchCategory(token.LParen) {
		return p.integer()
	}

	if err := p.expr(); err != nil {
		return err
	}
	if !p.matchCategory(token.RParen) {
		return p.failAt(p.toks[p.pos-1], "descent.expected_rparen")
	}
	return nil
}

func (p *parser) integer() *SyntaxError {
	p.enter(ProcInteger)
	if p.pos >= len(p.toks) {
		d := messages.Unknown("descent.expected_integer_eof")
		return &SyntaxError{Message: d.Message, Line: d.Line, Column: d.Column, Key: d.Key}
	}

	tok := p.toks[p.pos]
	if tok.Category != token.Number || !isDigits(tok.Text) {
		return p.failAt(tok, "descent.expected_integer")
	}
	p.logf("integer '%s'", tok.Text)
	p.pos++
	return nil
}

func (p *parser) matchOperator(ops ...string) bool {
	if p.pos >= len(p.toks) || p.toks[p.pos].Category != token.Operator {
		return false
	}
	for _, op := range ops {
		if p.toks[p.pos].Text == op {
			p.logf("match '%s'", op)
			p.pos++
			return true
		}
	}
	return false
}

func (p *parser) matchCategory(c token.Category) bool {
	if p.pos >= len(p.toks) || p.toks[p.pos].Category != c {
		return false
	}
	p.logf("match '%s'", p.toks[p.pos].Text)
	p.pos++
	return true
}

func (p *parser) enter(name string) {
	p.calls = append(p.calls, name)
	p.logf("enter %s", name)
}

func (p *parser) failAt(tok token.Token, key string) *SyntaxError {
	d := messages.At(tok, key)
	return &SyntaxError{
		Message: d.Message,
		Line:    d.Line,
		Column:  d.Column,
		Key:     d.Key,
		Args:    d.Args,
		Text:    d.Offending,
	}
}

func (p *parser) logf(format string, args ...interface{}) {
	if p.trace {
		p.log = append(p.log, fmt.Sprintf(format, args...))
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
