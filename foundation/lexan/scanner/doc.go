// Package scanner implements the lexan tokenizer.
//
// Rules are tried in priority order at each position and the first that
// matches wins; within a rule the quantifiers are greedy:
//
//	Keyword            \b(?:let|var|const)\b
//	String             "..." or '...' on one line
//	UnterminatedString quote to end of line      (Error)
//	Identifier         [a-zA-Z_][a-zA-Z0-9_]*
//	InvalidIdentifier  digits then letters       (Error)
//	Number             \d+(\.\d*)?
//	InvalidOperator    ++ or --                  (Error)
//	Operator           + - * / %
//	punctuation        = { } ( ) [ ] : , ;
//	Whitespace         \s+
//	Illegal            any other character       (Error)
//
// Lexical errors never stop the scan. Closing brackets that do not match
// the innermost open bracket become MismatchedBracket errors, and brackets
// still open at the end of input are reported after the in-stream tokens as
// UnclosedBracket errors.
package scanner
