// File: diagnostic.go
// Title: Diagnostics and Quadruples
// Description: Position-tagged diagnostics produced by every component and
//              the three-address quadruples emitted by the compiler.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-11
//
// Change History:
// - 2026-09-28 v0.1.0: Initial implementation
// - 2026-10-11 v0.2.0: Catalogue keys and arguments on diagnostics

package token

import "fmt"

// UnknownPosition is the line and column of a diagnostic that has no
// source position, such as running out of input.
const UnknownPosition = -1

// Diagnostic is a message tied to a source position. Key and Args identify
// the catalogue entry Message was rendered from, so callers can render it in
// another locale.
type Diagnostic struct {
	Message   string                 `json:"message"`
	Line      int                    `json:"line"`
	Column    int                    `json:"column"`
	Offending string                 `json:"offending,omitempty"`
	Key       string                 `json:"key,omitempty"`
	Args      map[string]interface{} `json:"args,omitempty"`
}

// Unknown reports whether the diagnostic carries the unknown-position
// sentinel
func (d Diagnostic) Unknown() bool {
	return d.Line == UnknownPosition && d.Column == UnknownPosition
}

// String formats the diagnostic as "line:column: message"
func (d Diagnostic) String() string {
	if d.Unknown() {
		return "?:?: " + d.Message
	}
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Quad is a three-address instruction. Arg2 is "_" for unary operations.
type Quad struct {
	Op     string `json:"op"`
	Arg1   string `json:"arg1"`
	Arg2   string `json:"arg2"`
	Result string `json:"result"`
}

// String formats the quadruple as "(op, arg1, arg2, result)"
func (q Quad) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", q.Op, q.Arg1, q.Arg2, q.Result)
}
