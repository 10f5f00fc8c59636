// File: scanner.go
// Title: Regex Tokenizer
// Description: Splits source text into tokens with one ordered alternation
//              of rules compiled by the participle stateful lexer. Tracks
//              line and column for every token, including error tokens that
//              span a newline, and checks bracket balance.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-11
//
// Change History:
// - 2026-09-28 v0.1.0: Initial tokenizer
// - 2026-10-11 v0.2.0: participle rule engine, configurable keywords,
//                      round-trip Scan result

package scanner

import (
	"regexp"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/foundation/lexan/token"
	"github.com/msto63/lexan/foundation/utils/stringx"
)

// DefaultKeywords are the reserved words recognised by default
var DefaultKeywords = []string{"let", "var", "const"}

var keywordPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Options configures the scanner
type Options struct {
	// Keywords lists the reserved words. Nil selects DefaultKeywords; an
	// empty, non-nil slice disables keyword recognition.
	Keywords []string
}

// kind is what a lexer rule produces
type kind struct {
	category token.Category
	reason   token.ErrorReason
}

// rule pairs a lexer rule with the token it produces. The order of rules is
// their priority.
type rule struct {
	name    string
	pattern string
	kind    kind
}

var baseRules = []rule{
	{"String", `"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'`, kind{category: token.String}},
	{"UnterminatedString", `"(?:[^"\\\n]|\\.)*\n?|'(?:[^'\\\n]|\\.)*\n?`, kind{token.Error, token.UnterminatedString}},
	{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, kind{category: token.Identifier}},
	{"BadIdent", `\d+[a-zA-Z_][a-zA-Z0-9_]*`, kind{token.Error, token.InvalidIdentifier}},
	{"Number", `\d+(?:\.\d*)?`, kind{category: token.Number}},
	{"BadOperator", `\+\++|--+`, kind{token.Error, token.InvalidOperator}},
	{"Operator", `[+\-*/%]`, kind{category: token.Operator}},
	{"Assign", `=`, kind{category: token.Assignment}},
	{"LBrace", `\{`, kind{category: token.LBrace}},
	{"RBrace", `\}`, kind{category: token.RBrace}},
	{"LParen", `\(`, kind{category: token.LParen}},
	{"RParen", `\)`, kind{category: token.RParen}},
	{"LBracket", `\[`, kind{category: token.LBracket}},
	{"RBracket", `\]`, kind{category: token.RBracket}},
	{"Colon", `:`, kind{category: token.Colon}},
	{"Comma", `,`, kind{category: token.Comma}},
	{"Semicolon", `;`, kind{category: token.Semicolon}},
	{"Whitespace", `\s+`, kind{category: token.Whitespace}},
	{"Illegal", `[\s\S]`, kind{token.Error, token.IllegalCharacter}},
}

// Scanner tokenizes source text. A Scanner is immutable and safe for
// concurrent use.
type Scanner struct {
	def      *lexer.StatefulDefinition
	kinds    map[lexer.TokenType]kind
	keywords []string
}

// New creates a scanner for the given options
func New(opts Options) (*Scanner, error) {
	keywords := opts.Keywords
	if keywords == nil {
		keywords = DefaultKeywords
	}

	for _, kw := range keywords {
		if stringx.IsBlank(kw) || !keywordPattern.MatchString(kw) {
			return nil, mdwerror.New("keyword must be a plain identifier").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("scanner.New").
				WithDetail("keyword", kw)
		}
	}

	rules := make([]rule, 0, len(baseRules)+1)
	if len(keywords) > 0 {
		rules = append(rules, rule{"Keyword", keywordRule(keywords), kind{category: token.Keyword}})
	}
	rules = append(rules, baseRules...)

	root := make([]lexer.Rule, len(rules))
	for i, r := range rules {
		root[i] = lexer.Rule{Name: r.name, Pattern: r.pattern, Action: nil}
	}

	def, err := lexer.New(lexer.Rules{"Root": root})
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to compile lexer rules").
			WithCode(mdwerror.CodeInternal).
			WithOperation("scanner.New")
	}

	symbols := def.Symbols()
	kinds := make(map[lexer.TokenType]kind, len(rules))
	for _, r := range rules {
		kinds[symbols[r.name]] = r.kind
	}

	return &Scanner{
		def:      def,
		kinds:    kinds,
		keywords: append([]string(nil), keywords...),
	}, nil
}

// keywordRule builds `\b(?:kw1|kw2)\b`, longest keywords first
func keywordRule(keywords []string) string {
	sorted := append([]string(nil), keywords...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, kw := range sorted {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return `\b(?:` + strings.Join(quoted, "|") + `)\b`
}

// Keywords returns the reserved words of this scanner
func (s *Scanner) Keywords() []string {
	return append([]string(nil), s.keywords...)
}

// Tokenize returns the non-whitespace tokens followed by unclosed-bracket
// errors
func (s *Scanner) Tokenize(text string) []token.Token {
	return s.Scan(text).All()
}

// Scan tokenizes text. The in-stream tokens, whitespace included, cover the
// input exactly.
func (s *Scanner) Scan(text string) *Result {
	st := newScanState(text)

	lex, err := s.def.LexString("", text)
	if err != nil {
		st.emitRest()
		return st.finish()
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			// Only reachable if a rule stops matching; keep the rest
			// of the input as one illegal token.
			st.emitRest()
			break
		}
		if tok.EOF() {
			break
		}
		k, ok := s.kinds[tok.Type]
		if !ok {
			k = kind{token.Error, token.IllegalCharacter}
		}
		st.emit(k, tok.Value)
	}

	return st.finish()
}

var defaultScanner = mustDefault()

func mustDefault() *Scanner {
	s, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the scanner for DefaultKeywords
func Default() *Scanner {
	return defaultScanner
}

// Tokenize tokenizes text with the default keywords
func Tokenize(text string) []token.Token {
	return defaultScanner.Tokenize(text)
}

// Scan scans text with the default keywords
func Scan(text string) *Result {
	return defaultScanner.Scan(text)
}
