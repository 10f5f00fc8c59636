// Package lexan is the analysis engine: a tokenizer, a declaration checker
// with error recovery, a recursive-descent expression validator and an
// expression-to-quadruple compiler behind one Engine.
//
// Usage:
//
//	engine, err := lexan.New(lexan.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	report, err := engine.Analyze(lexan.ModeDeclarations, `let o = {"a": 1};`)
//	if err != nil {
//		return err // input too large or unknown mode
//	}
//	for _, d := range report.Diagnostics {
//		fmt.Println(d)
//	}
//
// The component packages (scanner, fsm, descent, quad) can also be used
// directly; each has a package-level Parse or Scan with default settings.
package lexan
