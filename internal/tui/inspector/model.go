// ============================================================================
// lexan - Lexical and Syntax Analysis Engine
// ============================================================================
//
// Package:     inspector
// Description: Bubbletea model that re-analyzes the input on every edit and
//              shows tokens, diagnostics, quadruples and the call trace
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package inspector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/foundation/lexan/token"
	"github.com/msto63/lexan/internal/analyzer/service"
	"github.com/msto63/lexan/pkg/core/version"
)

// Analyzer runs one analysis
type Analyzer interface {
	Analyze(ctx context.Context, req service.Request) (*service.Response, error)
}

// AnalyzerFunc adapts a function to Analyzer
type AnalyzerFunc func(ctx context.Context, req service.Request) (*service.Response, error)

// Analyze calls f
func (f AnalyzerFunc) Analyze(ctx context.Context, req service.Request) (*service.Response, error) {
	return f(ctx, req)
}

// Tab is a result view
type Tab int

const (
	TabTokens Tab = iota
	TabDiagnostics
	TabQuads
	TabTrace
	tabCount
)

var tabNames = [...]string{"Tokens", "Diagnostics", "Quads", "Trace"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabNames[t]
}

// Config holds inspector configuration
type Config struct {
	Analyzer Analyzer
	Mode     lexan.Mode
	Locale   string
	// Text is the initial input
	Text string
	// Source names where analyses run, shown in the header
	Source  string
	Timeout time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Mode:    lexan.ModeDeclarations,
		Source:  "local",
		Timeout: 5 * time.Second,
	}
}

// Model is the main Bubbletea model for the inspector
type Model struct {
	width  int
	height int
	ready  bool

	textarea textarea.Model
	viewport viewport.Model

	analyzer Analyzer
	mode     lexan.Mode
	locale   string
	source   string
	timeout  time.Duration
	tab      Tab

	// seq counts edits; results for older edits are dropped
	seq    int
	report *service.Response
	err    error
}

// New creates a new inspector model
func New(cfg Config) Model {
	if !cfg.Mode.IsValid() {
		cfg.Mode = lexan.ModeDeclarations
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	ta := textarea.New()
	ta.Placeholder = "Type source text..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(5)
	ta.ShowLineNumbers = true
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = FocusedInputStyle
	ta.BlurredStyle.Base = InputStyle
	ta.SetValue(cfg.Text)

	return Model{
		textarea: ta,
		viewport: viewport.New(80, 10),
		analyzer: cfg.Analyzer,
		mode:     cfg.Mode,
		locale:   cfg.Locale,
		source:   cfg.Source,
		timeout:  cfg.Timeout,
	}
}

// Mode returns the analysis mode
func (m Model) Mode() lexan.Mode {
	return m.mode
}

// Tab returns the visible result tab
func (m Model) Tab() Tab {
	return m.tab
}

// Report returns the latest analysis, nil before the first one completes
func (m Model) Report() *service.Response {
	return m.report
}

// Err returns the error of the latest analysis
func (m Model) Err() error {
	return m.err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.analyze())
}

// analyze returns a command analyzing the current input
func (m Model) analyze() tea.Cmd {
	if m.analyzer == nil {
		return nil
	}
	seq, analyzer, timeout := m.seq, m.analyzer, m.timeout
	req := service.Request{Mode: m.mode, Text: m.textarea.Value(), Locale: m.locale}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := analyzer.Analyze(ctx, req)
		return analyzedMsg{seq: seq, resp: resp, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.updateViewportContent()
		return m, nil

	case analyzedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.resp
		}
		m.updateViewportContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlT:
		modes := lexan.Modes()
		for i, mode := range modes {
			if mode == m.mode {
				m.mode = modes[(i+1)%len(modes)]
				break
			}
		}
		m.seq++
		return m, m.analyze()

	case tea.KeyTab:
		m.tab = (m.tab + 1) % tabCount
		m.updateViewportContent()
		return m, nil

	case tea.KeyShiftTab:
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.updateViewportContent()
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if m.textarea.Value() == before {
		return m, cmd
	}
	m.seq++
	return m, tea.Batch(cmd, m.analyze())
}

func (m *Model) resize() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	m.textarea.SetWidth(width)

	// header, input, tabs, panel borders and help
	height := m.height - m.textarea.Height() - 9
	if height < 3 {
		height = 3
	}
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m *Model) updateViewportContent() {
	m.viewport.SetContent(m.content())
}

// content renders the visible tab
func (m Model) content() string {
	if m.err != nil {
		return InvalidStyle.Render("Error: " + m.err.Error())
	}
	if m.report == nil {
		return EmptyStyle.Render("No analysis yet")
	}

	switch m.tab {
	case TabTokens:
		return renderTokens(m.report.Tokens)
	case TabDiagnostics:
		return renderDiagnostics(m.report.Diagnostics)
	case TabQuads:
		return renderQuads(m.report)
	default:
		return renderTrace(m.report)
	}
}

func renderTokens(tokens []token.Token) string {
	if len(tokens) == 0 {
		return EmptyStyle.Render("No tokens")
	}
	var b strings.Builder
	for _, t := range tokens {
		pos := PositionStyle.Render(fmt.Sprintf("%4d:%-4d", t.Line, t.Column))
		var cat string
		if t.IsError() {
			cat = ErrorTokenStyle.Render(fmt.Sprintf("%-22s", "error/"+t.Reason.String()))
		} else {
			cat = CategoryStyle.Render(fmt.Sprintf("%-22s", t.Category.String()))
		}
		fmt.Fprintf(&b, "%s %s %3d  %s\n", pos, cat, t.Code, TextStyle.Render(fmt.Sprintf("%q", t.Text)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderDiagnostics(diags []token.Diagnostic) string {
	if len(diags) == 0 {
		return ValidStyle.Render("No diagnostics")
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = ErrorTokenStyle.Render(d.String())
	}
	return strings.Join(lines, "\n")
}

func renderQuads(r *service.Response) string {
	if r.Mode != lexan.ModeQuads {
		return EmptyStyle.Render("Quadruples are produced in quads mode (ctrl+t)")
	}
	if len(r.Quads) == 0 {
		if r.Value != "" {
			return TextStyle.Render("value: " + r.Value)
		}
		return EmptyStyle.Render("No quadruples")
	}
	lines := make([]string, len(r.Quads))
	for i, q := range r.Quads {
		lines[i] = fmt.Sprintf("%3d  %s", i+1, q.String())
	}
	return strings.Join(lines, "\n")
}

func renderTrace(r *service.Response) string {
	var sections []string
	if len(r.Trace) > 0 {
		sections = append(sections, HeaderText("Calls")+"\n"+strings.Join(r.Trace, "\n"))
	}
	if len(r.Log) > 0 {
		sections = append(sections, HeaderText("Log")+"\n"+strings.Join(r.Log, "\n"))
	}
	if r.FinalState != "" {
		sections = append(sections, HeaderText("Final state")+" "+r.FinalState)
	}
	if len(sections) == 0 {
		return EmptyStyle.Render("No trace for this mode")
	}
	return strings.Join(sections, "\n\n")
}

// HeaderText renders a section heading
func HeaderText(s string) string {
	return ModeStyle.Render(s)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading inspector..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(PanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	status := HelpDescStyle.Render("...")
	if m.err != nil {
		status = InvalidStyle.Render("error")
	} else if m.report != nil {
		if m.report.Valid {
			status = ValidStyle.Render("valid")
		} else {
			status = InvalidStyle.Render(fmt.Sprintf("%d diagnostics", len(m.report.Diagnostics)))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render("lexan inspector"),
		HelpDescStyle.Render(" v"+version.Platform+"  "),
		ModeStyle.Render("["+m.mode.String()+"]"),
		HelpDescStyle.Render("  "+m.source+"  "),
		status,
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs[t] = ActiveTabStyle.Render(t.String())
		} else {
			tabs[t] = TabStyle.Render(t.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderHelp() string {
	items := []string{
		RenderHelpItem("ctrl+t", "mode"),
		RenderHelpItem("tab", "view"),
		RenderHelpItem("pgup/pgdn", "scroll"),
		RenderHelpItem("esc", "quit"),
	}
	return strings.Join(items, "  ")
}

// Run starts the inspector in the alternate screen and blocks until it quits
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
