// Package fsm checks object declarations with a finite-state machine.
//
// The accepted form is
//
//	let IDENT = { ( STRING : NUMBER ( , STRING : NUMBER )* ,? )? } ;
//
// and any number of declarations may follow each other. Errors never stop
// the check. A missing identifier, "=", ":", value or ";" is inserted as a
// virtual token and the unexpected token is processed again; otherwise the
// checker skips ahead to the next token it can continue from. When nothing
// fits it switches to panic mode and waits for ";", "}" or the next "let".
//
// Each error event produces exactly one diagnostic. With EnableTrace the
// state entered for every token and each recovery step are recorded in
// Result.Log.
package fsm
