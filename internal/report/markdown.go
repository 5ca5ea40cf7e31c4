package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/ast"
)

// Markdown renders result as a Markdown document
func Markdown(result *krama.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis of \"%s\"\n\n", result.Input)
	fmt.Fprintf(&b, "**Status:** %s  \n", StatusLabel(result))
	fmt.Fprintf(&b, "**Type:** %s\n\n", result.Analysis.SentenceType)

	if result.Correction != nil {
		fmt.Fprintf(&b, "**Correction:** *%s*\n\n", result.Correction.Sentence)
		fmt.Fprintf(&b, "> %s\n\n", result.Correction.Explanation)
	}

	b.WriteString("## Tokens\n\n")
	b.WriteString("| # | Word | Category | Note |\n")
	b.WriteString("|---|------|----------|------|\n")
	for i, t := range result.Tokens {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, t.Word, t.Category, escapeCell(t.Note))
	}
	b.WriteString("\n")

	if len(result.Analysis.Violations) > 0 {
		b.WriteString("## Violations\n\n")
		b.WriteString("| Clause | Subject | Word | Problem | Suggestion |\n")
		b.WriteString("|--------|---------|------|---------|------------|\n")
		for _, v := range result.Analysis.Violations {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
				v.Clause, v.Subject, v.Word, escapeCell(v.Problem), v.Suggestion)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Structure\n\n```\n")
	b.WriteString(ast.Sprint(result.Tree))
	b.WriteString("```\n\n")

	b.WriteString("## Derivation\n\n```\n")
	for _, line := range DerivationLines(result) {
		b.WriteString(line + "\n")
	}
	if result.DerivationTruncated {
		b.WriteString("... (truncated)\n")
	}
	b.WriteString("```\n")

	return b.String()
}

// MarkdownFailure renders a failed analysis as Markdown
func MarkdownFailure(fail Failure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis of \"%s\"\n\n", fail.Input)
	b.WriteString("**Status:** ERROR\n\n")
	if unknown := unknownWords(fail.Tokens); len(unknown) > 0 {
		fmt.Fprintf(&b, "**Unknown words:** %s\n\n", strings.Join(unknown, ", "))
	}
	fmt.Fprintf(&b, "> %s\n", fail.Err)

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeMarkdown(w io.Writer, md string, opts Options) error {
	if !opts.Terminal {
		_, err := io.WriteString(w, md)
		return err
	}
	out, err := RenderMarkdown(md, opts.Width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RenderMarkdown renders md for the terminal with glamour
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render(md)
}
