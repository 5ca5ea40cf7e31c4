package report

import (
	"fmt"
	"strings"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/ast"
)

const (
	rule     = "============================================================"
	thinRule = "------------------------------------------------------------"
)

// Text renders result as plain text
func Text(result *krama.Result) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Sentence    : %q\n", result.Input)
	b.WriteString(thinRule + "\n")
	fmt.Fprintf(&b, "Tokens      : %s\n", tokenSummary(result.Tokens))
	fmt.Fprintf(&b, "Type        : %s\n", result.Analysis.SentenceType)
	fmt.Fprintf(&b, "Status      : %s\n", StatusLabel(result))

	if result.Correction == nil {
		b.WriteString("Explanation : syntax and speech level agree\n")
	} else {
		b.WriteString("Problem     : speech-level violation\n")
		fmt.Fprintf(&b, "Correction  : %q\n", result.Correction.Sentence)
		fmt.Fprintf(&b, "Explanation : %s\n", result.Correction.Explanation)
	}

	b.WriteString("Structure   :\n")
	b.WriteString(ast.Sprint(result.Tree))

	b.WriteString("\nDerivation (leftmost):\n")
	for _, line := range DerivationLines(result) {
		b.WriteString(line + "\n")
	}
	if result.DerivationTruncated {
		b.WriteString("... (truncated)\n")
	}
	b.WriteString(rule + "\n")

	return b.String()
}

// TextFailure renders a failed analysis as plain text
func TextFailure(fail Failure) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Sentence    : %q\n", fail.Input)
	b.WriteString(thinRule + "\n")
	if len(fail.Tokens) > 0 {
		fmt.Fprintf(&b, "Tokens      : %s\n", tokenSummary(fail.Tokens))
	}
	b.WriteString("Status      : ERROR\n")
	b.WriteString("Problem     : syntax error\n")
	if unknown := unknownWords(fail.Tokens); len(unknown) > 0 {
		fmt.Fprintf(&b, "Unknown     : %s\n", strings.Join(unknown, ", "))
	}
	fmt.Fprintf(&b, "Explanation : %s\n", fail.Err)
	b.WriteString(rule + "\n")

	return b.String()
}
