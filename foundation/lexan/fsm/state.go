// File: state.go
// Title: Declaration Checker States
// Description: States of the declaration checking automaton.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-12
//
// Change History:
// - 2026-09-28 v0.1.0: Initial state set
// - 2026-10-12 v0.2.0: Text marshalling for reports

package fsm

import "fmt"

// State is a state of the declaration checker
type State int

const (
	Start State = iota
	Keyword
	IdStart
	Id
	Assign
	LBraceSt
	KeyStart
	Key
	KeyEnd
	Colon
	Value
	Comma
	RBrace
	Semicolon
	End
	Error
)

var stateNames = [...]string{
	Start:     "START",
	Keyword:   "KEYWORD",
	IdStart:   "ID_START",
	Id:        "ID",
	Assign:    "ASSIGN",
	LBraceSt:  "LBRACE",
	KeyStart:  "KEY_START",
	Key:       "KEY",
	KeyEnd:    "KEY_END",
	Colon:     "COLON",
	Value:     "VALUE",
	Comma:     "COMMA",
	RBrace:    "RBRACE",
	Semicolon: "SEMICOLON",
	End:       "END",
	Error:     "ERROR",
}

// String returns the state name
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", string(text))
}

// incompleteKeys names the construct missing when input ends in a state
var incompleteKeys = map[State]string{
	Keyword:  "fsm.incomplete_identifier",
	Id:       "fsm.incomplete_assign",
	Assign:   "fsm.incomplete_lbrace",
	LBraceSt: "fsm.incomplete_object",
	Key:      "fsm.incomplete_colon",
	Colon:    "fsm.incomplete_value",
	Value:    "fsm.incomplete_comma",
	Comma:    "fsm.incomplete_comma",
	RBrace:   "fsm.incomplete_semicolon",
}
