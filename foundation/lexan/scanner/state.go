// File: state.go
// Title: Scan State and Bracket Balance
// Description: Per-call scanning state: position bookkeeping, the open
//              bracket stack and result assembly.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-11
//
// Change History:
// - 2026-09-28 v0.1.0: Initial implementation
// - 2026-10-11 v0.2.0: Mismatch recovery removes the matching opener

package scanner

import (
	"strings"

	"github.com/msto63/lexan/foundation/lexan/token"
)

var closerFor = map[token.Category]token.Category{
	token.LBrace:   token.RBrace,
	token.LParen:   token.RParen,
	token.LBracket: token.RBracket,
}

var openerFor = map[token.Category]token.Category{
	token.RBrace:   token.LBrace,
	token.RParen:   token.LParen,
	token.RBracket: token.LBracket,
}

// position is a point in the input
type position struct {
	offset int
	line   int
	column int
}

func (p position) advance(text string) position {
	p.offset += len(text)
	for _, r := range text {
		if r == '\n' {
			p.line++
			p.column = 1
			continue
		}
		p.column++
	}
	return p
}

type scanState struct {
	text   string
	pos    position
	tokens []token.Token
	open   []token.Token
}

func newScanState(text string) *scanState {
	return &scanState{
		text: text,
		pos:  position{line: 1, column: 1},
	}
}

func (st *scanState) emit(k kind, text string) {
	p := st.pos
	st.pos = p.advance(text)

	if k.category == token.Error {
		st.tokens = append(st.tokens, token.NewError(k.reason, text, p.line, p.column, p.offset))
		return
	}

	tok := token.New(k.category, text, p.line, p.column, p.offset)
	if _, ok := closerFor[tok.Category]; ok {
		st.open = append(st.open, tok)
	} else if opener, ok := openerFor[tok.Category]; ok && !st.close(opener) {
		tok = token.NewError(token.MismatchedBracket, text, p.line, p.column, p.offset)
	}
	st.tokens = append(st.tokens, tok)
}

// close pops the opener matching a closer. It reports false when the top of
// the stack does not match; a matching opener deeper in the stack is then
// discarded.
func (st *scanState) close(opener token.Category) bool {
	n := len(st.open)
	if n > 0 && st.open[n-1].Category == opener {
		st.open = st.open[:n-1]
		return true
	}
	for i := n - 2; i >= 0; i-- {
		if st.open[i].Category == opener {
			st.open = append(st.open[:i], st.open[i+1:]...)
			break
		}
	}
	return false
}

func (st *scanState) emitRest() {
	if st.pos.offset < len(st.text) {
		st.emit(kind{token.Error, token.IllegalCharacter}, st.text[st.pos.offset:])
	}
}

func (st *scanState) finish() *Result {
	unclosed := make([]token.Token, len(st.open))
	for i, o := range st.open {
		unclosed[i] = token.NewError(token.UnclosedBracket, o.Text, o.Line, o.Column, o.Offset)
	}
	return &Result{Tokens: st.tokens, Unclosed: unclosed}
}

// Result is the outcome of a scan
type Result struct {
	// Tokens are the in-stream tokens in input order, whitespace included
	Tokens []token.Token `json:"tokens"`
	// Unclosed holds one error per bracket left open, in opening order
	Unclosed []token.Token `json:"unclosed,omitempty"`
}

// Filtered returns the in-stream tokens without whitespace
func (r *Result) Filtered() []token.Token {
	out := make([]token.Token, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		if t.Category != token.Whitespace {
			out = append(out, t)
		}
	}
	return out
}

// All returns Filtered followed by the unclosed-bracket errors
func (r *Result) All() []token.Token {
	return append(r.Filtered(), r.Unclosed...)
}

// Errors returns the error tokens of All in order
func (r *Result) Errors() []token.Token {
	var out []token.Token
	for _, t := range r.All() {
		if t.IsError() {
			out = append(out, t)
		}
	}
	return out
}

// Text reassembles the input from the in-stream tokens
func (r *Result) Text() string {
	var b strings.Builder
	for _, t := range r.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
