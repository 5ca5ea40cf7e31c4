// ============================================================================
// krama - Javanese speech-level analyzer
// ============================================================================
//
// Package:     tui
// Description: Interactive terminal session for analyzing sentences,
//              browsing the lexicon, the history and the service health
// Author:      LearnWithSuryaa
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
	"github.com/LearnWithSuryaa/analyzer-app/internal/report"
	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	"github.com/LearnWithSuryaa/analyzer-app/internal/store"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/health"
)

// View represents different views in the TUI
type View int

const (
	ViewAnalyze View = iota
	ViewLexicon
	ViewHistory
	ViewStatus
)

const viewCount = 4

// ExitWords end the session when entered in the analyze view
var ExitWords = []string{"exit", "quit", "keluar"}

// IsExitWord reports whether input ends the session
func IsExitWord(input string) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, w := range ExitWords {
		if input == w {
			return true
		}
	}
	return false
}

const (
	analyzeTimeout = 10 * time.Second
	searchLimit    = 15
	historyLimit   = 20
)

// Model is the main TUI model
type Model struct {
	svc *service.Service

	// State
	view    View
	width   int
	height  int
	ready   bool
	loading bool
	err     error

	// Components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Analyze state
	transcript []string
	analyzed   int

	// Lexicon state
	searchQuery   string
	searchResults []lexicon.SearchResult

	// History state
	entries []*store.Entry

	// Status state
	report *health.Report

	content string
}

// NewModel creates a TUI model backed by svc
func NewModel(svc *service.Service) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a Javanese sentence..."
	ta.Focus()
	ta.CharLimit = 500
	ta.SetWidth(80)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		svc:      svc,
		view:     ViewAnalyze,
		textarea: ta,
		spinner:  sp,
	}
}

// Run starts an interactive session on the terminal
func Run(svc *service.Service) error {
	p := tea.NewProgram(NewModel(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.view = (m.view + 1) % viewCount
			m.textarea.Reset()
			m.updatePlaceholder()
			switch m.view {
			case ViewHistory:
				cmds = append(cmds, m.loadHistory())
			case ViewStatus:
				cmds = append(cmds, m.checkHealth())
			}
			m.updateContent()
			return m, tea.Batch(cmds...)

		case "enter":
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			switch m.view {
			case ViewAnalyze:
				if input == "" {
					return m, nil
				}
				if IsExitWord(input) {
					return m, tea.Quit
				}
				m.loading = true
				return m, tea.Batch(m.analyze(input), m.spinner.Tick)
			case ViewLexicon:
				m.searchQuery = input
				m.searchResults = m.svc.SearchLexicon(input, searchLimit)
				m.updateContent()
				return m, nil
			case ViewHistory:
				return m, m.loadHistory()
			case ViewStatus:
				return m, m.checkHealth()
			}

		case "ctrl+l":
			switch m.view {
			case ViewAnalyze:
				m.transcript = nil
			case ViewLexicon:
				m.searchQuery = ""
				m.searchResults = nil
			}
			m.err = nil
			m.updateContent()
			return m, nil

		case "ctrl+r":
			switch m.view {
			case ViewHistory:
				return m, m.loadHistory()
			case ViewStatus:
				return m, m.checkHealth()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-8))
			m.viewport.YPosition = 3
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-8)
		}
		m.textarea.SetWidth(max(10, msg.Width-4))
		m.updateContent()

	case analyzeResponseMsg:
		m.loading = false
		m.analyzed++
		m.transcript = append(m.transcript, InputEchoStyle.Render("> "+msg.input))
		if msg.err != nil {
			m.transcript = append(m.transcript, renderFailure(msg))
		} else {
			entry := report.Styled(msg.record.Result)
			if msg.record.Cached {
				entry = SystemMessageStyle.Render("(cached)") + "\n" + entry
			}
			m.transcript = append(m.transcript, entry)
		}
		m.updateContent()

	case historyResponseMsg:
		m.loading = false
		m.err = msg.err
		m.entries = msg.entries
		m.updateContent()

	case healthResponseMsg:
		m.loading = false
		m.report = msg.report
		m.updateContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Update components
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func renderFailure(msg analyzeResponseMsg) string {
	if !apperror.HasCode(msg.err, apperror.CodeSyntax) {
		return RenderError(msg.err.Error())
	}
	return report.StyledFailure(report.Failure{Input: msg.input, Tokens: msg.tokens, Err: msg.err})
}

func (m *Model) updatePlaceholder() {
	switch m.view {
	case ViewAnalyze:
		m.textarea.Placeholder = "Type a Javanese sentence..."
	case ViewLexicon:
		m.textarea.Placeholder = "Search the lexicon..."
	case ViewHistory:
		m.textarea.Placeholder = "Enter or Ctrl+R to refresh..."
	case ViewStatus:
		m.textarea.Placeholder = "Enter or Ctrl+R to refresh..."
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	if m.loading {
		s.WriteString(m.spinner.View())
		s.WriteString(" Analyzing...\n")
	}

	s.WriteString(FocusedInputStyle.Render(m.textarea.View()))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderHeader() string {
	tabs := []string{"Analyze", "Lexicon", "History", "Status"}
	var renderedTabs []string

	for i, tab := range tabs {
		if View(i) == m.view {
			renderedTabs = append(renderedTabs, ActiveTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, TabStyle.Render(tab))
		}
	}

	title := TitleStyle.Render("krama")
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabLine)
}

func (m *Model) renderFooter() string {
	help := "Tab: switch • Ctrl+L: clear • Ctrl+C: quit"
	info := fmt.Sprintf("Lexicon: %s (%d words)", m.svc.Lexicon().Source(), m.svc.Lexicon().Size())

	return StatusBarStyle.Width(m.width).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			help,
			strings.Repeat(" ", max(0, m.width-lipgloss.Width(help)-lipgloss.Width(info)-4)),
			info,
		),
	)
}

func (m *Model) updateContent() {
	switch m.view {
	case ViewAnalyze:
		m.content = m.renderAnalyzeView()
	case ViewLexicon:
		m.content = m.renderLexiconView()
	case ViewHistory:
		m.content = m.renderHistoryView()
	case ViewStatus:
		m.content = m.renderStatusView()
	}
	m.viewport.SetContent(m.content)
	if m.view == ViewAnalyze {
		m.viewport.GotoBottom()
	} else {
		m.viewport.GotoTop()
	}
}

func (m *Model) renderAnalyzeView() string {
	if len(m.transcript) == 0 {
		var s strings.Builder
		s.WriteString(SubtitleStyle.Render("Enter a sentence and press Enter."))
		s.WriteString("\n\n")
		s.WriteString("Examples:\n")
		s.WriteString("  - aku mangan sega\n")
		s.WriteString("  - bapak dhahar lan ibu sare\n")
		s.WriteString("  - aku dhahar\n\n")
		s.WriteString(RenderHelp("Type " + strings.Join(ExitWords, ", ") + " to leave."))
		return s.String()
	}
	return strings.Join(m.transcript, "\n")
}

func (m *Model) renderLexiconView() string {
	var s strings.Builder

	s.WriteString(SubtitleStyle.Render("Lexicon search"))
	s.WriteString("\n\n")

	switch {
	case len(m.searchResults) > 0:
		s.WriteString(fmt.Sprintf("Results for: %s\n\n", m.searchQuery))
		for i, r := range m.searchResults {
			s.WriteString(fmt.Sprintf("%2d. %-14s %-12s %s", i+1, r.Word, r.Category, r.Level))
			if r.Replacement != "" {
				s.WriteString("  <-> " + r.Replacement)
			}
			if r.Meaning != "" {
				s.WriteString("  " + SystemMessageStyle.Render(r.Meaning))
			}
			s.WriteString("\n")
		}
	case m.searchQuery != "":
		s.WriteString("No matching words.\n")
	default:
		s.WriteString("Type part of a word and press Enter.\n")
	}

	return s.String()
}

func (m *Model) renderHistoryView() string {
	var s strings.Builder

	s.WriteString(SubtitleStyle.Render("Recent analyses"))
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(RenderError(m.err.Error()))
		s.WriteString("\n")
		return s.String()
	}
	if len(m.entries) == 0 {
		s.WriteString("No analyses recorded yet.\n")
		return s.String()
	}

	for _, e := range m.entries {
		status := StatusOKStyle.Render("[+]")
		switch {
		case e.SyntaxError():
			status = StatusErrorStyle.Render("[!]")
		case !e.Valid:
			status = WarningStyle.Render("[-]")
		}
		s.WriteString(fmt.Sprintf("  %s %s  %s", status, e.CreatedAt.Format("2006-01-02 15:04"), e.Input))
		if e.Correction != "" {
			s.WriteString(SystemMessageStyle.Render("  -> " + e.Correction))
		}
		s.WriteString("\n")
	}

	return s.String()
}

func (m *Model) renderStatusView() string {
	var s strings.Builder

	s.WriteString(SubtitleStyle.Render("Service status"))
	s.WriteString("\n\n")

	if m.report == nil {
		s.WriteString("Checking...\n")
		return s.String()
	}

	for _, c := range m.report.Checks {
		icon := "[+]"
		style := StatusOKStyle
		if c.Status != health.StatusHealthy {
			icon = "[-]"
			style = StatusErrorStyle
		}
		s.WriteString(fmt.Sprintf("  %s %-12s %-10s %s\n", style.Render(icon), c.Name, c.Status, c.Message))
	}
	s.WriteString(fmt.Sprintf("\n  Analyses this session: %d\n", m.analyzed))
	if stats, ok := m.svc.CacheStats(); ok {
		s.WriteString(fmt.Sprintf("  Cache: %d entries, %.1f%% hit rate\n", stats.Size, stats.HitRate))
	}

	return s.String()
}

// Message types for async operations
type analyzeResponseMsg struct {
	input  string
	record *service.Record
	tokens []krama.TokenInfo
	err    error
}

type historyResponseMsg struct {
	entries []*store.Entry
	err     error
}

type healthResponseMsg struct {
	report *health.Report
}

// analyze runs one analysis off the UI goroutine
func (m *Model) analyze(input string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		record, err := svc.Analyze(ctx, input)
		if err != nil {
			return analyzeResponseMsg{input: input, tokens: svc.Tokenize(input), err: err}
		}
		return analyzeResponseMsg{input: input, record: record}
	}
}

// loadHistory fetches the most recent history entries
func (m *Model) loadHistory() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		entries, err := svc.History(ctx, store.Filter{Limit: historyLimit})
		return historyResponseMsg{entries: entries, err: err}
	}
}

// checkHealth runs the service health checks
func (m *Model) checkHealth() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return healthResponseMsg{report: svc.Health().Check(ctx)}
	}
}
