// File: derivation.go
// Title: Leftmost Derivation Trace
// Description: Replays a finished parse tree as the sequence of sentential
//              forms of its leftmost derivation, from the root symbol down to
//              the words of the sentence.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-10-01
// Modified: 2026-10-03
//
// Change History:
// - 2026-10-01 v0.1.0: Initial generator
// - 2026-10-03 v0.1.1: Worklist instead of rescanning the sentential form

package derivation

import (
	"strings"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/ast"
)

// MaxSteps is the largest number of rewrites in one trace.
const MaxSteps = 100

// Trace is a leftmost derivation.
type Trace struct {
	// Steps holds the root symbol followed by one sentential form per rewrite.
	Steps []string `json:"steps"`
	// Truncated is set when MaxSteps was reached before every symbol was a word.
	Truncated bool `json:"truncated"`
}

// Rewrites is the number of rewrite steps in the trace.
func (t Trace) Rewrites() int {
	if len(t.Steps) == 0 {
		return 0
	}
	return len(t.Steps) - 1
}

// Final returns the last sentential form.
func (t Trace) Final() string {
	if len(t.Steps) == 0 {
		return ""
	}
	return t.Steps[len(t.Steps)-1]
}

// Generate derives root leftmost-first. A phrase is rewritten to its
// children and a leaf to its word. The tree is not modified.
func Generate(root ast.Node) Trace {
	if root == nil {
		return Trace{Steps: []string{}}
	}

	f := newForm(root)
	trace := Trace{Steps: []string{f.String()}}

	for rewrites := 0; f.expandable(); rewrites++ {
		if rewrites == MaxSteps {
			trace.Truncated = true
			break
		}
		f.rewrite()
		trace.Steps = append(trace.Steps, f.String())
	}
	return trace
}

// form is a sentential form split at the cursor: words holds the terminals
// left of it and pending the remaining symbols, leftmost last.
type form struct {
	words   []string
	pending []ast.Node
}

func newForm(root ast.Node) *form {
	return &form{pending: []ast.Node{root}}
}

func (f *form) expandable() bool {
	return len(f.pending) > 0
}

// rewrite replaces the leftmost pending symbol.
func (f *form) rewrite() {
	last := len(f.pending) - 1
	n := f.pending[last]
	f.pending = f.pending[:last]

	switch n := n.(type) {
	case *ast.NonTerminal:
		for i := len(n.Children) - 1; i >= 0; i-- {
			f.pending = append(f.pending, n.Children[i])
		}
	case *ast.Leaf:
		f.words = append(f.words, n.Text)
	}
}

func (f *form) String() string {
	parts := make([]string, 0, len(f.words)+len(f.pending))
	parts = append(parts, f.words...)
	for i := len(f.pending) - 1; i >= 0; i-- {
		parts = append(parts, f.pending[i].Symbol())
	}
	return strings.Join(parts, " ")
}
