// Package token defines the values exchanged between the lexan scanner and
// its parsers: tokens with numeric codes and positions, diagnostics and
// quadruples. All of them are plain values and safe to copy.
package token
