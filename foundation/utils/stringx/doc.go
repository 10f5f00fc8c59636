// Package stringx provides small string helpers shared by the lexan
// packages and front ends.
//
// Package: stringx
// Title: String Utilities
// Description: Blank checks, rune-aware truncation and padding, and
//              single-line rendering of token text for tables and logs.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-10
package stringx
