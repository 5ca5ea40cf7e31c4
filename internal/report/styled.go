package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/ast"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/semantic"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorValid   = lipgloss.Color("#10B981")
	colorAmber   = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(13)

	ValidStyle = lipgloss.NewStyle().
			Foreground(colorValid).
			Bold(true)

	AmbiguousStyle = lipgloss.NewStyle().
			Foreground(colorAmber).
			Bold(true)

	InvalidStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	CorrectionStyle = lipgloss.NewStyle().
			Foreground(colorValid).
			Italic(true)

	TreeStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// StatusStyle returns the style for a verdict
func StatusStyle(v semantic.Verdict) lipgloss.Style {
	switch v {
	case semantic.Appropriate:
		return ValidStyle
	case semantic.Ambiguous:
		return AmbiguousStyle
	default:
		return InvalidStyle
	}
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(label))
	b.WriteString(value)
	b.WriteByte('\n')
}

// Styled renders result with terminal colors
func Styled(result *krama.Result) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%q", result.Input)))
	b.WriteString("\n\n")
	row(&b, "Tokens", tokenSummary(result.Tokens))
	row(&b, "Type", string(result.Analysis.SentenceType))
	row(&b, "Status", StatusStyle(result.Analysis.Verdict).Render(StatusLabel(result)))

	if result.Correction != nil {
		row(&b, "Correction", CorrectionStyle.Render(fmt.Sprintf("%q", result.Correction.Sentence)))
		row(&b, "Explanation", result.Correction.Explanation)
	}

	b.WriteString("\n")
	b.WriteString(TreeStyle.Render(strings.TrimRight(ast.Sprint(result.Tree), "\n")))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(DerivationLines(result), "\n"))
	if result.DerivationTruncated {
		b.WriteString("\n" + AmbiguousStyle.Render("... (truncated)"))
	}

	return BoxStyle.Render(b.String()) + "\n"
}

// StyledFailure renders a failed analysis with terminal colors
func StyledFailure(fail Failure) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%q", fail.Input)))
	b.WriteString("\n\n")
	if len(fail.Tokens) > 0 {
		row(&b, "Tokens", tokenSummary(fail.Tokens))
	}
	row(&b, "Status", InvalidStyle.Render("ERROR"))
	if unknown := unknownWords(fail.Tokens); len(unknown) > 0 {
		row(&b, "Unknown", strings.Join(unknown, ", "))
	}
	row(&b, "Explanation", fail.Err.Error())

	return BoxStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}
