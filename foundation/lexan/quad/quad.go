// File: quad.go
// Title: Expression-to-Quadruple Compiler
// Description: Compiles arithmetic expressions over single-letter
//              identifiers into three-address quadruples by recursive
//              descent with inherited attributes.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-12
//
// Change History:
// - 2026-09-28 v0.1.0: Initial compiler
// - 2026-10-12 v0.2.0: Token pre-check, explicit errors, per-call counter

package quad

import (
	"strconv"
	"unicode/utf8"

	mdwlog "github.com/msto63/lexan/foundation/core/log"
	"github.com/msto63/lexan/foundation/lexan/messages"
	"github.com/msto63/lexan/foundation/lexan/scanner"
	"github.com/msto63/lexan/foundation/lexan/token"
)

// UnaryMinus is the operation emitted for negation
const UnaryMinus = "uminus"

// NoArg fills Arg2 of unary quadruples
const NoArg = "_"

var binaryOps = map[string]bool{"+": true, "-": true, "*": true, "/": true}

// Options configures the compiler
type Options struct {
	Logger *mdwlog.Logger
	// Scanner tokenizes the input; nil selects the default scanner
	Scanner *scanner.Scanner
}

// Result is the outcome of a compilation. Quads is empty whenever
// Diagnostics is not.
type Result struct {
	Quads       []token.Quad       `json:"quads"`
	Diagnostics []token.Diagnostic `json:"diagnostics"`
	// Value names the place holding the expression value
	Value string `json:"value,omitempty"`
}

// OK reports whether the expression compiled
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Compiler compiles expressions. It is safe for concurrent use.
type Compiler struct {
	scanner *scanner.Scanner
	logger  *mdwlog.Logger
}

// New creates a compiler
func New(opts Options) *Compiler {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Scanner == nil {
		opts.Scanner = scanner.Default()
	}
	return &Compiler{
		scanner: opts.Scanner,
		logger:  opts.Logger.WithField("component", "quad"),
	}
}

var defaultCompiler = New(Options{Logger: mdwlog.Nop()})

// Parse compiles text with the default scanner
func Parse(text string) *Result {
	return defaultCompiler.Parse(text)
}

// Parse tokenizes and compiles text
func (c *Compiler) Parse(text string) *Result {
	return c.Compile(c.scanner.Scan(text))
}

// Compile compiles an existing scan. Numeric literals are rejected before
// anything else; then illegal symbols, unsupported operators and long
// identifiers. Either check reports every offending token and stops.
func (c *Compiler) Compile(scan *scanner.Result) *Result {
	res := &Result{}
	toks := scan.Filtered()

	if diags := numericLiterals(toks); len(diags) > 0 {
		res.Diagnostics = diags
		c.finish(res)
		return res
	}

	toks, diags := screen(toks)
	if len(diags) > 0 {
		res.Diagnostics = diags
		c.finish(res)
		return res
	}

	p := &parser{toks: toks}
	value, err := p.e()
	if err == nil && p.pos < len(p.toks) {
		err = p.fail("quad.unexpected_symbol")
	}

	if err != nil {
		res.Diagnostics = []token.Diagnostic{err.diag}
	} else {
		res.Quads = p.quads
		res.Value = value
	}
	c.finish(res)
	return res
}

func (c *Compiler) finish(res *Result) {
	c.logger.Debug("Quadruple compilation finished", mdwlog.Fields{
		"quads":       len(res.Quads),
		"diagnostics": len(res.Diagnostics),
	})
}

func numericLiterals(toks []token.Token) []token.Diagnostic {
	var diags []token.Diagnostic
	for _, tok := range toks {
		if tok.Category == token.Number {
			diags = append(diags, messages.At(tok, "quad.numeric_literal"))
		}
	}
	return diags
}

// screen drops the tokens the grammar cannot contain, reporting each
func screen(toks []token.Token) ([]token.Token, []token.Diagnostic) {
	var diags []token.Diagnostic
	kept := make([]token.Token, 0, len(toks))

	for _, tok := range toks {
		switch {
		case tok.IsError() && tok.Reason == token.InvalidOperator:
			diags = append(diags, messages.At(tok, "quad.invalid_operator"))
		case tok.IsError():
			diags = append(diags, messages.At(tok, "quad.illegal_symbol"))
		case tok.Category == token.Operator && !binaryOps[tok.Text]:
			diags = append(diags, messages.At(tok, "quad.invalid_operator"))
		case tok.Category == token.Identifier && utf8.RuneCountInString(tok.Text) > 1:
			diags = append(diags, messages.At(tok, "quad.identifier_length"))
		default:
			kept = append(kept, tok)
		}
	}
	return kept, diags
}

// fault ends a compilation
type fault struct {
	diag token.Diagnostic
}

func (f *fault) Error() string {
	return f.diag.String()
}

// parser is the state of one compilation
type parser struct {
	toks  []token.Token
	pos   int
	temp  int
	quads []token.Quad
}

// E := T A(T)
func (p *parser) e() (string, *fault) {
	t, err := p.t()
	if err != nil {
		return "", err
	}
	return p.a(t)
}

// A(inh) := ("+" | "-") T A(new) | ε
func (p *parser) a(inh string) (string, *fault) {
	for {
		op, ok := p.matchOperator("+", "-")
		if !ok {
			return inh, nil
		}
		t, err := p.t()
		if err != nil {
			return "", err
		}
		inh = p.emit(op, inh, t)
	}
}

// T := O B(O)
func (p *parser) t() (string, *fault) {
	o, err := p.o()
	if err != nil {
		return "", err
	}
	return p.b(o)
}

// B(inh) := ("*" | "/") O B(new) | ε
func (p *parser) b(inh string) (string, *fault) {
	for {
		op, ok := p.matchOperator("*", "/")
		if !ok {
			return inh, nil
		}
		o, err := p.o()
		if err != nil {
			return "", err
		}
		inh = p.emit(op, inh, o)
	}
}

// O := "-" O | identifier | "(" E ")"
func (p *parser) o() (string, *fault) {
	if _, ok := p.matchOperator("-"); ok {
		o, err := p.o()
		if err != nil {
			return "", err
		}
		return p.emit(UnaryMinus, o, NoArg), nil
	}

	if p.check(token.Identifier) {
		p.pos++
		return p.toks[p.pos-1].Text, nil
	}

	if p.check(token.LParen) {
		p.pos++
		e, err := p.e()
		if err != nil {
			return "", err
		}
		if !p.check(token.RParen) {
			return "", p.fail("quad.expected_rparen")
		}
		p.pos++
		return e, nil
	}

	return "", p.fail("quad.expected_operand")
}

func (p *parser) check(c token.Category) bool {
	return p.pos < len(p.toks) && p.toks[p.pos].Category == c
}

func (p *parser) matchOperator(ops ...string) (string, bool) {
	if !p.check(token.Operator) {
		return "", false
	}
	for _, op := range ops {
		if p.toks[p.pos].Text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) emit(op, arg1, arg2 string) string {
	p.temp++
	result := "t" + strconv.Itoa(p.temp)
	p.quads = append(p.quads, token.Quad{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
	return result
}

// fail reports key at the current token, just past the last token at the
// end of input, or at the unknown position when there are no tokens
func (p *parser) fail(key string) *fault {
	switch {
	case p.pos < len(p.toks):
		return &fault{messages.At(p.toks[p.pos], key)}
	case len(p.toks) > 0:
		return &fault{messages.AtEnd(p.toks[len(p.toks)-1], key)}
	default:
		return &fault{messages.Unknown(key)}
	}
}
