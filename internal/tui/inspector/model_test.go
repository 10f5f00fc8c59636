package inspector

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	mdwlog "github.com/msto63/lexan/foundation/core/log"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/internal/analyzer/service"
	"github.com/msto63/lexan/pkg/core/logging"
)

func newTestModel(t *testing.T, mode lexan.Mode, text string) Model {
	t.Helper()

	cfg := service.DefaultConfig()
	cfg.Logger = logging.Wrap(mdwlog.Nop(), "test")
	svc, err := service.NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	icfg := DefaultConfig()
	icfg.Analyzer = svc
	icfg.Mode = mode
	icfg.Text = text
	m := New(icfg)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

// run executes cmd and feeds an analysis result back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected an analysis command")
	}
	msg, ok := cmd().(analyzedMsg)
	if !ok {
		t.Fatal("command did not produce an analysis")
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestModel_InitialAnalysis(t *testing.T) {
	m := newTestModel(t, lexan.ModeDeclarations, `let p = {"k": 1};`)
	if m.Report() != nil {
		t.Fatal("Report() should be nil before the first analysis")
	}

	m = run(t, m, m.analyze())
	if m.Report() == nil || !m.Report().Valid {
		t.Fatalf("Report() = %+v, want valid", m.Report())
	}
	if !strings.Contains(m.View(), "valid") {
		t.Error("View() should show the valid status")
	}
}

func TestModel_ModeCycle(t *testing.T) {
	m := newTestModel(t, lexan.ModeTokens, "a+b")

	want := []lexan.Mode{lexan.ModeDeclarations, lexan.ModeDescent, lexan.ModeQuads, lexan.ModeTokens}
	for _, mode := range want {
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
		m = updated.(Model)
		if m.Mode() != mode {
			t.Fatalf("Mode() = %v, want %v", m.Mode(), mode)
		}
		m = run(t, m, cmd)
		if m.Report().Mode != mode {
			t.Errorf("report mode = %v, want %v", m.Report().Mode, mode)
		}
	}
}

func TestModel_TabsAndContent(t *testing.T) {
	m := newTestModel(t, lexan.ModeQuads, "a*(b+c)")
	m = run(t, m, m.analyze())

	tests := []struct {
		tab  Tab
		want string
	}{
		{TabDiagnostics, "No diagnostics"},
		{TabQuads, "(*, a, t1, t2)"},
		{TabTrace, "No trace"},
		{TabTokens, "Identifier"},
	}

	for _, tt := range tests {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(Model)
		if m.Tab() != tt.tab {
			t.Fatalf("Tab() = %v, want %v", m.Tab(), tt.tab)
		}
		if got := m.content(); !strings.Contains(got, tt.want) {
			t.Errorf("%v content = %q, want it to contain %q", tt.tab, got, tt.want)
		}
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if updated.(Model).Tab() != TabTrace {
		t.Errorf("shift+tab should go back to Trace")
	}
}

func TestModel_EditTriggersAnalysis(t *testing.T) {
	m := newTestModel(t, lexan.ModeDescent, "1+")
	m = run(t, m, m.analyze())
	if m.Report().Valid {
		t.Fatal("1+ should be invalid")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m = updated.(Model)
	if m.seq != 1 {
		t.Fatalf("seq = %d, want 1 after an edit", m.seq)
	}

	m = run(t, m, m.analyze())
	if !m.Report().Valid {
		t.Errorf("1+2 should be valid, diagnostics %v", m.Report().Diagnostics)
	}
}

func TestModel_StaleResultDropped(t *testing.T) {
	m := newTestModel(t, lexan.ModeDescent, "1+")
	stale := m.analyze()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m = updated.(Model)

	updated, _ = m.Update(stale())
	m = updated.(Model)
	if m.Report() != nil {
		t.Error("result for an older edit should be dropped")
	}
}

func TestModel_AnalyzerError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyzer = AnalyzerFunc(func(ctx context.Context, req service.Request) (*service.Response, error) {
		return nil, errors.New("connection refused")
	})
	m := New(cfg)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = run(t, updated.(Model), m.analyze())

	if m.Err() == nil {
		t.Fatal("Err() should be set")
	}
	if !strings.Contains(m.content(), "connection refused") {
		t.Errorf("content = %q", m.content())
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, lexan.ModeTokens, "")
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v should return a command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v should quit", key)
		}
	}
}
