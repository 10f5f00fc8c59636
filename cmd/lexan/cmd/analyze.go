// ============================================================================
// lexan - Lexical and Syntax Analysis Engine
// ============================================================================
//
// Package:     cmd
// Description: Local analysis commands: tokenize, check, descent and quads
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/foundation/lexan/messages"
	"github.com/msto63/lexan/foundation/lexan/token"
	"github.com/msto63/lexan/internal/analyzer/service"
)

var (
	outputJSON  bool
	outputTrace bool
	localeFlag  string
)

// summaryTokens is how many tokens the tokenize summary lists
const summaryTokens = 5

var modeCommands = []struct {
	use     string
	aliases []string
	mode    lexan.Mode
	short   string
}{
	{"tokenize [file|-]", []string{"tokens", "lex"}, lexan.ModeTokens, "Tokenize text and print the token table"},
	{"check [file|-]", []string{"declarations", "decl"}, lexan.ModeDeclarations, "Check let/var/const declarations"},
	{"descent [file|-]", []string{"expr"}, lexan.ModeDescent, "Validate an arithmetic expression"},
	{"quads [file|-]", []string{"quad", "compile"}, lexan.ModeQuads, "Compile an expression to quadruples"},
}

func init() {
	for _, mc := range modeCommands {
		c := &cobra.Command{
			Use:     mc.use,
			Aliases: mc.aliases,
			Short:   mc.short,
			Long: mc.short + `.

Input is read from the named file, or from stdin when the file is "-" or
missing. The exit status is 1 when the analysis reports diagnostics.`,
			Args: cobra.MaximumNArgs(1),
			RunE: runLocal(mc.mode),
		}
		addOutputFlags(c)
		rootCmd.AddCommand(c)
	}
}

func addOutputFlags(c *cobra.Command) {
	c.Flags().BoolVar(&outputJSON, "json", false, "print the report as JSON")
	c.Flags().BoolVar(&outputTrace, "trace", false, "print the call trace and state log")
	c.Flags().StringVar(&localeFlag, "locale", "", "message locale (en, ru); default from config")
}

func runLocal(mode lexan.Mode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		text, err := readInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		logger := newLogger(cfg, "lexan-cli")
		svc, err := service.NewService(serviceConfig(cfg, logger))
		if err != nil {
			return err
		}

		resp, err := svc.Analyze(context.Background(), service.Request{Mode: mode, Text: text, Locale: localeFlag})
		if err != nil {
			return err
		}
		return printReport(cmd.OutOrStdout(), svc.Catalog(), resp)
	}
}

// readInput reads the file named by args, or stdin for "-" or no argument
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", mdwerror.Wrap(err, "failed to read stdin").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("cmd.readInput")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		code := mdwerror.CodeInvalidInput
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return "", mdwerror.Wrap(err, "failed to read input file").
			WithCode(code).
			WithOperation("cmd.readInput").
			WithDetail("path", args[0])
	}
	return string(data), nil
}

// printReport prints resp as JSON or tables and returns errDiagnostics when
// the analysis failed
func printReport(w io.Writer, catalog *messages.Catalog, resp *service.Response) error {
	if outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else {
		printTables(w, catalog, resp)
	}

	if !resp.Valid {
		return errDiagnostics
	}
	return nil
}

func printTables(w io.Writer, catalog *messages.Catalog, resp *service.Response) {
	locale := resp.Locale
	ui := func(key string) string { return catalog.Text(locale, "ui."+key, nil) }

	if resp.Mode == lexan.ModeTokens {
		fmt.Fprintln(w, tokenTable(catalog, locale, resp.Tokens))
		fmt.Fprintln(w, tokenSummary(catalog, locale, resp.Tokens))
	}

	if resp.Mode == lexan.ModeQuads && len(resp.Quads) > 0 {
		t := newTable(ui("op"), ui("arg1"), ui("arg2"), ui("result"))
		for _, q := range resp.Quads {
			t.Row(q.Op, q.Arg1, q.Arg2, q.Result)
		}
		fmt.Fprintln(w, t.String())
	}
	if resp.Value != "" {
		fmt.Fprintf(w, "%s: %s\n", ui("result"), resp.Value)
	}

	if outputTrace {
		if len(resp.Trace) > 0 {
			fmt.Fprintln(w, ui("trace")+":")
			for _, line := range resp.Trace {
				fmt.Fprintln(w, "  "+line)
			}
		}
		if len(resp.Log) > 0 {
			fmt.Fprintln(w, ui("log")+":")
			for _, line := range resp.Log {
				fmt.Fprintln(w, "  "+line)
			}
		}
		if resp.FinalState != "" {
			fmt.Fprintln(w, catalog.Text(locale, "ui.final_state", map[string]interface{}{"state": resp.FinalState}))
		}
	}

	if len(resp.Diagnostics) == 0 {
		if resp.Mode == lexan.ModeDescent || resp.Mode == lexan.ModeQuads {
			fmt.Fprintln(w, ui("valid"))
		} else {
			fmt.Fprintln(w, ui("no_diagnostics"))
		}
		return
	}

	t := newTable(ui("line"), ui("column"), ui("message"))
	for _, d := range resp.Diagnostics {
		line, column := "?", "?"
		if !d.Unknown() {
			line, column = strconv.Itoa(d.Line), strconv.Itoa(d.Column)
		}
		t.Row(line, column, d.Message)
	}
	fmt.Fprintln(w, t.String())
}

func tokenTable(catalog *messages.Catalog, locale string, tokens []token.Token) string {
	ui := func(key string) string { return catalog.Text(locale, "ui."+key, nil) }

	t := newTable(ui("code"), ui("category_header"), ui("lexeme"), ui("line"), ui("column"))
	for _, tok := range tokens {
		category := catalog.Category(locale, tok.Category)
		if tok.IsError() {
			category += " (" + tok.Reason.String() + ")"
		}
		t.Row(strconv.Itoa(int(tok.Code)), category, strconv.Quote(tok.Text), strconv.Itoa(tok.Line), strconv.Itoa(tok.Column))
	}
	return t.String()
}

// tokenSummary renders the token and error counts plus the first tokens
func tokenSummary(catalog *messages.Catalog, locale string, tokens []token.Token) string {
	errs := 0
	for _, tok := range tokens {
		if tok.IsError() {
			errs++
		}
	}

	summary := catalog.Text(locale, "ui.summary", map[string]interface{}{
		"tokens": catalog.Plural(locale, "ui.tokens", len(tokens)),
		"errors": catalog.Plural(locale, "ui.errors", errs),
	})

	n := len(tokens)
	if n > summaryTokens {
		n = summaryTokens
	}
	if n == 0 {
		return summary
	}
	first := make([]string, n)
	for i, tok := range tokens[:n] {
		first[i] = tok.Text
	}
	return summary + "\n" + catalog.Text(locale, "ui.first_tokens", map[string]interface{}{"list": strings.Join(first, " ")})
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
		Headers(headers...)
}
