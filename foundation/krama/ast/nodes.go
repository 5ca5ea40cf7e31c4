// File: nodes.go
// Title: Parse Tree Nodes
// Description: The two node variants of a parse tree: NonTerminal phrases with
//              ordered children and Leaf words. Phrase surface text is always
//              derived from the leaves, never stored.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-30
// Modified: 2026-09-30

package ast

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
)

// Node is a parse tree node: *NonTerminal or *Leaf.
type Node interface {
	// Symbol is the grammar symbol shown in trees and derivations.
	Symbol() string
	String() string
	node()
}

// Kind is the grammar rule a NonTerminal was built by.
type Kind int

const (
	Sentence Kind = iota
	Clause
	NounPhrase
	VerbPhrase
	PrepPhrase
)

// String returns the grammar symbol of the kind.
func (k Kind) String() string {
	switch k {
	case Sentence:
		return "S"
	case Clause:
		return "CLAUSE"
	case NounPhrase:
		return "NP"
	case VerbPhrase:
		return "VP"
	case PrepPhrase:
		return "PP"
	default:
		return "?"
	}
}

// Name returns the long rule name.
func (k Kind) Name() string {
	switch k {
	case Sentence:
		return "SENTENCE"
	case Clause:
		return "CLAUSE"
	case NounPhrase:
		return "NOUN_PHRASE"
	case VerbPhrase:
		return "VERB_PHRASE"
	case PrepPhrase:
		return "PREP_PHRASE"
	default:
		return "UNKNOWN"
	}
}

// Role is the grammatical role of a word in the tree.
type Role int

const (
	RoleSubject Role = iota
	RoleObjectNoun
	RoleTimeAdverb
	RoleAdjective
	RoleNumeral
	RoleVerb
	RoleAux
	RolePrep
	RoleConj
)

// String returns the leaf symbol.
func (r Role) String() string {
	switch r {
	case RoleSubject:
		return "SUBJECT"
	case RoleObjectNoun:
		return "OBJECT_NOUN"
	case RoleTimeAdverb:
		return "TIME_ADVERB"
	case RoleAdjective:
		return "ADJ"
	case RoleNumeral:
		return "NUM"
	case RoleVerb:
		return "V"
	case RoleAux:
		return "AUX"
	case RolePrep:
		return "P"
	case RoleConj:
		return "CONJ"
	default:
		return "?"
	}
}

// RoleFor maps a token category to the role its leaf takes.
func RoleFor(c lexicon.Category) (Role, bool) {
	switch c {
	case lexicon.Subject:
		return RoleSubject, true
	case lexicon.ObjectNoun:
		return RoleObjectNoun, true
	case lexicon.TimeAdverb:
		return RoleTimeAdverb, true
	case lexicon.Adjective:
		return RoleAdjective, true
	case lexicon.Numeral:
		return RoleNumeral, true
	case lexicon.Predicate:
		return RoleVerb, true
	case lexicon.Auxiliary:
		return RoleAux, true
	case lexicon.Preposition:
		return RolePrep, true
	case lexicon.Conjunction:
		return RoleConj, true
	default:
		return 0, false
	}
}

// NonTerminal is a phrase node.
type NonTerminal struct {
	Kind     Kind
	Children []Node
}

// Leaf is a word of the input.
type Leaf struct {
	Role Role
	Text string
	// Pos is the index of the token this leaf was built from.
	Pos int
}

// NewNonTerminal creates a phrase node.
func NewNonTerminal(kind Kind, children ...Node) *NonTerminal {
	return &NonTerminal{Kind: kind, Children: children}
}

// NewLeaf creates a word node.
func NewLeaf(role Role, text string, pos int) *Leaf {
	return &Leaf{Role: role, Text: text, Pos: pos}
}

func (*NonTerminal) node() {}
func (*Leaf) node()        {}

// Symbol implements Node.
func (n *NonTerminal) Symbol() string { return n.Kind.String() }

// Symbol implements Node.
func (l *Leaf) Symbol() string { return l.Role.String() }

// Add appends children.
func (n *NonTerminal) Add(children ...Node) {
	n.Children = append(n.Children, children...)
}

// Text is the surface text of the phrase: its leaf texts joined by spaces.
func (n *NonTerminal) Text() string {
	return SurfaceText(n)
}

// ChildPhrases returns the direct children of the given kind.
func (n *NonTerminal) ChildPhrases(kind Kind) []*NonTerminal {
	var out []*NonTerminal
	for _, c := range n.Children {
		if nt, ok := c.(*NonTerminal); ok && nt.Kind == kind {
			out = append(out, nt)
		}
	}
	return out
}

// String renders the node as a bracketed expression, e.g. (NP SUBJECT:aku).
func (n *NonTerminal) String() string {
	parts := make([]string, 0, len(n.Children)+1)
	parts = append(parts, n.Symbol())
	for _, c := range n.Children {
		parts = append(parts, c.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// String renders the leaf as ROLE:text.
func (l *Leaf) String() string {
	return fmt.Sprintf("%s:%s", l.Role, l.Text)
}

// MarshalJSON encodes the phrase with its symbol, surface text and children.
func (n *NonTerminal) MarshalJSON() ([]byte, error) {
	children := n.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Type     string `json:"type"`
		Value    string `json:"value"`
		Children []Node `json:"children"`
	}{n.Symbol(), n.Text(), children})
}

// MarshalJSON encodes the leaf with its symbol and word.
func (l *Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{l.Symbol(), l.Text})
}
