// File: token.go
// Title: Lexical Token Types
// Description: Defines the token categories, error reasons and the Token
//              value shared by the scanner and the three parsers, together
//              with the numeric code table shown to users.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-11
//
// Change History:
// - 2026-09-28 v0.1.0: Initial token model
// - 2026-10-11 v0.2.0: Bracket categories, error reasons, text marshalling

package token

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Category represents the lexical class of a token. The numeric value is
// the token code reported to users.
type Category uint8

const (
	Keyword    Category = 1
	Identifier Category = 2
	Number     Category = 3
	String     Category = 4
	Operator   Category = 5
	LBrace     Category = 6
	RBrace     Category = 7
	Assignment Category = 8
	Colon      Category = 9
	Comma      Category = 10
	Semicolon  Category = 11
	Error      Category = 12
	LParen     Category = 13
	RParen     Category = 14
	LBracket   Category = 15
	RBracket   Category = 16
	Whitespace Category = 17
)

var categoryNames = map[Category]string{
	Keyword:    "Keyword",
	Identifier: "Identifier",
	Number:     "Number",
	String:     "String",
	Operator:   "Operator",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Assignment: "Assignment",
	Colon:      "Colon",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	Error:      "Error",
	LParen:     "LParen",
	RParen:     "RParen",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	Whitespace: "Whitespace",
}

// Categories returns all categories in code order
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for c := Keyword; c <= Whitespace; c++ {
		out = append(out, c)
	}
	return out
}

// String returns the category name
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Code returns the numeric token code
func (c Category) Code() uint8 {
	return uint8(c)
}

// Key returns the message catalogue key naming the category
func (c Category) Key() string {
	return "ui.category." + strings.ToLower(c.String())
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid token category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory parses a category name, ignoring case
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if strings.EqualFold(n, name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown token category %q", name)
}

// ErrorReason explains why a token has the Error category
type ErrorReason uint8

const (
	NoError ErrorReason = iota
	IllegalCharacter
	UnterminatedString
	InvalidIdentifier
	InvalidOperator
	MismatchedBracket
	UnclosedBracket
)

var reasonNames = map[ErrorReason]string{
	NoError:            "",
	IllegalCharacter:   "illegal_character",
	UnterminatedString: "unterminated_string",
	InvalidIdentifier:  "invalid_identifier",
	InvalidOperator:    "invalid_operator",
	MismatchedBracket:  "mismatched_bracket",
	UnclosedBracket:    "unclosed_bracket",
}

// String returns the reason name
func (r ErrorReason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

// Key returns the message catalogue key describing the reason
func (r ErrorReason) Key() string {
	if r == NoError {
		return ""
	}
	return "lex." + r.String()
}

// MarshalText encodes the reason by name
func (r ErrorReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a reason name
func (r *ErrorReason) UnmarshalText(text []byte) error {
	for reason, name := range reasonNames {
		if name == string(text) {
			*r = reason
			return nil
		}
	}
	return fmt.Errorf("unknown error reason %q", string(text))
}

// Token represents a lexical token with position information
type Token struct {
	Category Category    `json:"category"`
	Text     string      `json:"text"`
	Line     int         `json:"line"`   // 1-based
	Column   int         `json:"column"` // 1-based, in runes
	Offset   int         `json:"offset"` // byte offset in the input
	Code     uint8       `json:"code"`
	Reason   ErrorReason `json:"reason,omitempty"`
}

// New creates a token of the given category
func New(category Category, text string, line, column, offset int) Token {
	return Token{
		Category: category,
		Text:     text,
		Line:     line,
		Column:   column,
		Offset:   offset,
		Code:     category.Code(),
	}
}

// NewError creates an Error token carrying reason
func NewError(reason ErrorReason, text string, line, column, offset int) Token {
	tok := New(Error, text, line, column, offset)
	tok.Reason = reason
	return tok
}

// IsError reports whether the token is a lexical error
func (t Token) IsError() bool {
	return t.Category == Error
}

// Is reports whether the token has category c and exactly the given text
func (t Token) Is(c Category, text string) bool {
	return t.Category == c && t.Text == text
}

// String returns a readable representation of the token
func (t Token) String() string {
	if t.IsError() {
		return fmt.Sprintf("Error[%s](%q) at %d:%d", t.Reason, t.Text, t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Category, t.Text, t.Line, t.Column)
}

// End returns the line and column just past the token text
func End(t Token) (line, column int) {
	line, column = t.Line, t.Column
	if idx := strings.LastIndexByte(t.Text, '\n'); idx >= 0 {
		line += strings.Count(t.Text, "\n")
		return line, utf8.RuneCountInString(t.Text[idx+1:]) + 1
	}
	return line, column + utf8.RuneCountInString(t.Text)
}
