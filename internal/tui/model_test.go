package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := service.DefaultConfig()
	cfg.Logger = logging.Discard()
	svc, err := service.NewService(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	m := NewModel(svc)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, key tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: key})
	return updated.(Model), cmd
}

func TestIsExitWord(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"exit", true},
		{"QUIT", true},
		{"  keluar ", true},
		{"aku keluar", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExitWord(tt.input))
		})
	}
}

func TestModel_ExitWord(t *testing.T) {
	m := newTestModel(t)
	m.textarea.SetValue("keluar")

	_, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "exit word should quit")
}

func TestModel_Analyze(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"valid", "aku mangan", []string{"> aku mangan", "VALID"}},
		{"self subject misuse", "aku dhahar", []string{"AMBIGUOUS", "aku mangan"}},
		{"respected subject misuse", "bapak mangan", []string{"INVALID", "bapak dhahar"}},
		{"syntax error", "aku mangxn", []string{"ERROR", "mangan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.textarea.SetValue(tt.input)

			m, cmd := press(t, m, tea.KeyEnter)
			require.NotNil(t, cmd)
			assert.True(t, m.loading)
			assert.Empty(t, m.textarea.Value())

			updated, _ := m.Update(m.analyze(tt.input)())
			m = updated.(Model)
			assert.False(t, m.loading)
			assert.Equal(t, 1, m.analyzed)
			for _, s := range tt.contains {
				assert.Contains(t, m.content, s)
			}
		})
	}
}

func TestModel_EmptyInputIgnored(t *testing.T) {
	m := newTestModel(t)
	m.textarea.SetValue("   ")

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
}

func TestModel_ClearTranscript(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(m.analyze("aku mangan")())
	m = updated.(Model)
	require.Len(t, m.transcript, 2)

	m, _ = press(t, m, tea.KeyCtrlL)
	assert.Empty(t, m.transcript)
	assert.Contains(t, m.content, "Examples:")
}

func TestModel_LexiconSearch(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, tea.KeyTab)
	require.Equal(t, ViewLexicon, m.view)

	m.textarea.SetValue("dhahar")
	m, _ = press(t, m, tea.KeyEnter)
	require.NotEmpty(t, m.searchResults)
	assert.Equal(t, "dhahar", m.searchResults[0].Word)
	assert.Contains(t, m.content, "Results for: dhahar")
}

func TestModel_HistoryDisabled(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewHistory

	updated, _ := m.Update(m.loadHistory()())
	m = updated.(Model)
	require.Error(t, m.err)
	assert.Contains(t, m.content, "history is disabled")
}

func TestModel_Status(t *testing.T) {
	m := newTestModel(t)
	for m.view != ViewStatus {
		m, _ = press(t, m, tea.KeyTab)
	}
	assert.Contains(t, m.content, "Checking...")

	updated, _ := m.Update(m.checkHealth()())
	m = updated.(Model)
	assert.Contains(t, m.content, "lexicon")
	assert.Contains(t, m.content, "history")
}
