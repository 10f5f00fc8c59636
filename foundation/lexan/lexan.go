// File: lexan.go
// Title: Analysis Engine
// Description: Single entry point over the scanner, declaration checker,
//              expression validator and quadruple compiler. Enforces the
//              input limit, assigns analysis IDs and times every run.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-14
//
// Change History:
// - 2026-09-28 v0.1.0: Initial engine
// - 2026-10-14 v0.2.0: Report union, modes, one scan per analysis

package lexan

import (
	"strings"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	mdwlog "github.com/msto63/lexan/foundation/core/log"
	"github.com/msto63/lexan/foundation/lexan/descent"
	"github.com/msto63/lexan/foundation/lexan/fsm"
	"github.com/msto63/lexan/foundation/lexan/messages"
	"github.com/msto63/lexan/foundation/lexan/quad"
	"github.com/msto63/lexan/foundation/lexan/scanner"
	"github.com/msto63/lexan/foundation/lexan/token"
)

// DefaultMaxInputLength is the input limit in bytes
const DefaultMaxInputLength = 65536

// Mode selects an analysis
type Mode string

const (
	ModeTokens       Mode = "tokens"
	ModeDeclarations Mode = "declarations"
	ModeDescent      Mode = "descent"
	ModeQuads        Mode = "quads"
)

// Modes returns all modes in display order
func Modes() []Mode {
	return []Mode{ModeTokens, ModeDeclarations, ModeDescent, ModeQuads}
}

// IsValid reports whether m is a known mode
func (m Mode) IsValid() bool {
	switch m {
	case ModeTokens, ModeDeclarations, ModeDescent, ModeQuads:
		return true
	}
	return false
}

func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a mode name. "check" and "quad" are accepted as aliases.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case "check":
		return ModeDeclarations, nil
	case "quad":
		return ModeQuads, nil
	default:
		if m.IsValid() {
			return m, nil
		}
		return "", unknownMode(name)
	}
}

func unknownMode(name string) error {
	return mdwerror.New("unknown analysis mode").
		WithCode(mdwerror.CodeUnknownMode).
		WithOperation("lexan.ParseMode").
		WithDetail("mode", name)
}

// Options configures the engine
type Options struct {
	Logger *mdwlog.Logger
	// MaxInputLength limits the input in bytes. Zero selects
	// DefaultMaxInputLength, a negative value disables the limit.
	MaxInputLength int
	// EnableTrace records the descent call log and the fsm state log
	EnableTrace bool
	// Keywords replaces the default keywords when non-nil
	Keywords []string
}

// DefaultOptions returns the options used by the CLI and services
func DefaultOptions() Options {
	return Options{
		MaxInputLength: DefaultMaxInputLength,
		EnableTrace:    true,
	}
}

// TokenizeResult holds the tokens of an input and one diagnostic per
// lexical error
type TokenizeResult struct {
	Tokens      []token.Token      `json:"tokens"`
	Diagnostics []token.Diagnostic `json:"diagnostics"`
}

// Report is the result of any analysis mode
type Report struct {
	ID          string             `json:"id"`
	Mode        Mode               `json:"mode"`
	Tokens      []token.Token      `json:"tokens"`
	Diagnostics []token.Diagnostic `json:"diagnostics"`
	Quads       []token.Quad       `json:"quads,omitempty"`
	Value       string             `json:"value,omitempty"`
	Trace       []string           `json:"trace,omitempty"`
	Log         []string           `json:"log,omitempty"`
	FinalState  string             `json:"final_state,omitempty"`
	Valid       bool               `json:"valid"`
	Duration    time.Duration      `json:"duration_ns"`
}

// Engine runs analyses. It is safe for concurrent use.
type Engine struct {
	scanner   *scanner.Scanner
	checker   *fsm.Checker
	validator *descent.Validator
	compiler  *quad.Compiler
	logger    *mdwlog.Logger
	maxInput  int
}

// New creates an engine
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	logger := opts.Logger.WithField("component", "lexan")

	sc, err := scanner.New(scanner.Options{Keywords: opts.Keywords})
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to initialize scanner").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("lexan.New")
	}

	e := &Engine{
		scanner: sc,
		checker: fsm.New(fsm.Options{
			EnableTrace: opts.EnableTrace,
			Logger:      logger,
			Scanner:     sc,
		}),
		validator: descent.New(descent.Options{
			EnableTrace: opts.EnableTrace,
			Logger:      logger,
			Scanner:     sc,
		}),
		compiler: quad.New(quad.Options{Logger: logger, Scanner: sc}),
		logger:   logger,
		maxInput: opts.MaxInputLength,
	}

	logger.Debug("Analysis engine initialized", mdwlog.Fields{
		"maxInputLength": opts.MaxInputLength,
		"enableTrace":    opts.EnableTrace,
		"keywords":       sc.Keywords(),
	})
	return e, nil
}

// MaxInputLength returns the input limit in bytes, or a negative value
// when there is none
func (e *Engine) MaxInputLength() int {
	return e.maxInput
}

// Keywords returns the reserved words of the engine's scanner
func (e *Engine) Keywords() []string {
	return e.scanner.Keywords()
}

// Tokenize splits input into tokens
func (e *Engine) Tokenize(input string) (*TokenizeResult, error) {
	r, err := e.start(ModeTokens, input)
	if err != nil {
		return nil, err
	}
	res := e.tokenize(e.scanner.Scan(input))
	r.finish(len(res.Diagnostics))
	return res, nil
}

// CheckDeclarations runs the declaration checker
func (e *Engine) CheckDeclarations(input string) (*fsm.Result, error) {
	r, err := e.start(ModeDeclarations, input)
	if err != nil {
		return nil, err
	}
	res := e.checker.Check(e.scanner.Scan(input))
	r.finish(len(res.Diagnostics))
	return res, nil
}

// ValidateExpression runs the recursive-descent validator
func (e *Engine) ValidateExpression(input string) (*descent.Result, error) {
	r, err := e.start(ModeDescent, input)
	if err != nil {
		return nil, err
	}
	res := e.validator.Validate(e.scanner.Scan(input))
	r.finish(len(res.Diagnostics))
	return res, nil
}

// CompileQuads compiles input into quadruples
func (e *Engine) CompileQuads(input string) (*quad.Result, error) {
	r, err := e.start(ModeQuads, input)
	if err != nil {
		return nil, err
	}
	res := e.compiler.Compile(e.scanner.Scan(input))
	r.finish(len(res.Diagnostics))
	return res, nil
}

// Analyze runs one mode and returns its report. Grammar problems are
// reported as diagnostics; the error is only set for an unknown mode or an
// oversized input.
func (e *Engine) Analyze(mode Mode, input string) (*Report, error) {
	if !mode.IsValid() {
		return nil, unknownMode(string(mode))
	}
	r, err := e.start(mode, input)
	if err != nil {
		return nil, err
	}

	scan := e.scanner.Scan(input)
	report := &Report{ID: r.id, Mode: mode, Tokens: scan.All()}

	switch mode {
	case ModeTokens:
		report.Diagnostics = e.tokenize(scan).Diagnostics
	case ModeDeclarations:
		res := e.checker.Check(scan)
		report.Diagnostics = res.Diagnostics
		report.Log = res.Log
		report.FinalState = res.FinalState.String()
	case ModeDescent:
		res := e.validator.Validate(scan)
		report.Diagnostics = res.Diagnostics
		report.Trace = res.Trace
		report.Log = res.Log
	case ModeQuads:
		res := e.compiler.Compile(scan)
		report.Diagnostics = res.Diagnostics
		report.Quads = res.Quads
		report.Value = res.Value
	}

	if report.Diagnostics == nil {
		report.Diagnostics = []token.Diagnostic{}
	}
	report.Valid = len(report.Diagnostics) == 0
	report.Duration = r.finish(len(report.Diagnostics))
	return report, nil
}

func (e *Engine) tokenize(scan *scanner.Result) *TokenizeResult {
	res := &TokenizeResult{Tokens: scan.All(), Diagnostics: []token.Diagnostic{}}
	for _, tok := range scan.Errors() {
		res.Diagnostics = append(res.Diagnostics, messages.Lexical(tok))
	}
	return res
}

// run is one timed analysis
type run struct {
	id    string
	timer *mdwlog.Timer
}

func (e *Engine) start(mode Mode, input string) (*run, error) {
	id := uuid.NewString()
	logger := e.logger.WithAnalysisID(id)
	timer := logger.StartTimer("lexan." + mode.String())

	if e.maxInput > 0 && len(input) > e.maxInput {
		err := mdwerror.New("input exceeds the maximum length").
			WithCode(mdwerror.CodeInputTooLarge).
			WithOperation("lexan." + mode.String()).
			WithAnalysisID(id).
			WithDetail("length", len(input)).
			WithDetail("max", e.maxInput).
			WithMessage("error.input_too_large", map[string]interface{}{
				"length": len(input),
				"max":    e.maxInput,
			})
		timer.StopWithError(err)
		return nil, err
	}

	logger.Debug("Analysis started", mdwlog.Fields{
		"mode":   mode.String(),
		"length": len(input),
	})
	return &run{id: id, timer: timer}, nil
}

func (r *run) finish(diagnostics int) time.Duration {
	return r.timer.WithField("diagnostics", diagnostics).Stop()
}
