// File: walk.go
// Title: Tree Traversal and Structural Checks
// Description: Pre-order traversal, leaf collection, surface text folding and a
//              validator for the structural invariants of a finished tree.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-30
// Modified: 2026-10-04

package ast

import (
	"fmt"
	"strings"
)

// Walk visits n and its descendants in pre-order. When fn returns false the
// children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if nt, ok := n.(*NonTerminal); ok {
		for _, c := range nt.Children {
			Walk(c, fn)
		}
	}
}

// Leaves returns the leaves under n from left to right.
func Leaves(n Node) []*Leaf {
	var out []*Leaf
	Walk(n, func(x Node) bool {
		if l, ok := x.(*Leaf); ok {
			out = append(out, l)
		}
		return true
	})
	return out
}

// SurfaceText joins the leaf texts under n with single spaces.
func SurfaceText(n Node) string {
	leaves := Leaves(n)
	words := make([]string, len(leaves))
	for i, l := range leaves {
		words[i] = l.Text
	}
	return strings.Join(words, " ")
}

// Collect returns every phrase of the given kind in pre-order.
func Collect(n Node, kind Kind) []*NonTerminal {
	var out []*NonTerminal
	Walk(n, func(x Node) bool {
		if nt, ok := x.(*NonTerminal); ok && nt.Kind == kind {
			out = append(out, nt)
		}
		return true
	})
	return out
}

// FirstLeaf returns the first direct child leaf of n with the given role.
func FirstLeaf(n *NonTerminal, role Role) (*Leaf, bool) {
	for _, c := range n.Children {
		if l, ok := c.(*Leaf); ok && l.Role == role {
			return l, true
		}
	}
	return nil, false
}

// Validate checks the shape of a finished tree: the root is a sentence whose
// children alternate CLAUSE and CONJ, and every clause is NP followed by VP.
func Validate(root *NonTerminal) error {
	if root == nil {
		return fmt.Errorf("tree is nil")
	}
	if root.Kind != Sentence {
		return fmt.Errorf("root is %s, want S", root.Symbol())
	}
	if len(root.Children) == 0 || len(root.Children)%2 == 0 {
		return fmt.Errorf("sentence has %d children, want CLAUSE (CONJ CLAUSE)*", len(root.Children))
	}

	for i, c := range root.Children {
		if i%2 == 1 {
			if l, ok := c.(*Leaf); !ok || l.Role != RoleConj {
				return fmt.Errorf("sentence child %d is %s, want CONJ", i, c.Symbol())
			}
			continue
		}
		if nt, ok := c.(*NonTerminal); !ok || nt.Kind != Clause {
			return fmt.Errorf("sentence child %d is %s, want CLAUSE", i, c.Symbol())
		}
	}

	for _, clause := range Collect(root, Clause) {
		if len(clause.Children) != 2 {
			return fmt.Errorf("clause %q has %d children, want 2", clause.Text(), len(clause.Children))
		}
		np, ok1 := clause.Children[0].(*NonTerminal)
		vp, ok2 := clause.Children[1].(*NonTerminal)
		if !ok1 || !ok2 || np.Kind != NounPhrase || vp.Kind != VerbPhrase {
			return fmt.Errorf("clause %q is %s %s, want NP VP", clause.Text(),
				clause.Children[0].Symbol(), clause.Children[1].Symbol())
		}
	}
	return nil
}
