// File: printer.go
// Title: Tree Printer
// Description: Renders a parse tree with box-drawing connectors, one node per line.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-04

package ast

import (
	"io"
	"strings"
)

// Fprint writes the tree rooted at n to w:
//
//	└── S
//	    └── CLAUSE
//	        ├── NP: aku
//	        │   └── SUBJECT: aku
//	        └── VP: mangan
//	            └── V: mangan
func Fprint(w io.Writer, n Node) error {
	var b strings.Builder
	printNode(&b, n, "", true)
	_, err := io.WriteString(w, b.String())
	return err
}

// Sprint returns the Fprint rendering as a string.
func Sprint(n Node) string {
	var b strings.Builder
	printNode(&b, n, "", true)
	return b.String()
}

func printNode(b *strings.Builder, n Node, prefix string, last bool) {
	marker := "├── "
	if last {
		marker = "└── "
	}

	b.WriteString(prefix)
	b.WriteString(marker)
	b.WriteString(n.Symbol())

	switch x := n.(type) {
	case *Leaf:
		b.WriteString(": ")
		b.WriteString(x.Text)
		b.WriteByte('\n')
	case *NonTerminal:
		// Only phrases below the sentence level carry their text.
		if x.Kind != Sentence && x.Kind != Clause {
			if text := x.Text(); text != "" {
				b.WriteString(": ")
				b.WriteString(text)
			}
		}
		b.WriteByte('\n')

		if last {
			prefix += "    "
		} else {
			prefix += "│   "
		}
		for i, c := range x.Children {
			printNode(b, c, prefix, i == len(x.Children)-1)
		}
	}
}
