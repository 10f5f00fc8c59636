// Package descent validates integer arithmetic by recursive descent.
//
// Grammar, in which multiplication binds more loosely than addition:
//
//	expr   := addsub (("*" | "/" | "%") addsub)*
//	addsub := term (("+" | "-") term)*
//	term   := "(" expr ")" | integer
//
// Every procedure records its name in Result.Trace when it is entered. The
// first error stops the parse and is returned in Result.Err; errors at the
// end of input carry line and column -1.
package descent
