// File: nodes_test.go
// Title: Parse Tree Tests
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-30
// Modified: 2026-10-04

package ast

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// aku mangan sega lan bapak ngunjuk
func sampleTree() *NonTerminal {
	return NewNonTerminal(Sentence,
		NewNonTerminal(Clause,
			NewNonTerminal(NounPhrase, NewLeaf(RoleSubject, "aku", 0)),
			NewNonTerminal(VerbPhrase,
				NewLeaf(RoleVerb, "mangan", 1),
				NewNonTerminal(NounPhrase, NewLeaf(RoleObjectNoun, "sega", 2)),
			),
		),
		NewLeaf(RoleConj, "lan", 3),
		NewNonTerminal(Clause,
			NewNonTerminal(NounPhrase, NewLeaf(RoleSubject, "bapak", 4)),
			NewNonTerminal(VerbPhrase, NewLeaf(RoleVerb, "ngunjuk", 5)),
		),
	)
}

func TestSurfaceTextAndLeaves(t *testing.T) {
	root := sampleTree()

	if got := root.Text(); got != "aku mangan sega lan bapak ngunjuk" {
		t.Errorf("Text() = %q", got)
	}

	var positions []int
	for _, l := range Leaves(root) {
		positions = append(positions, l.Pos)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5}, positions); diff != "" {
		t.Errorf("leaf order mismatch (-want +got):\n%s", diff)
	}

	if got := SurfaceText(NewNonTerminal(NounPhrase)); got != "" {
		t.Errorf("empty phrase text = %q", got)
	}
}

func TestCollectPreOrder(t *testing.T) {
	root := sampleTree()

	clauses := Collect(root, Clause)
	if len(clauses) != 2 {
		t.Fatalf("Expected 2 clauses, got %d", len(clauses))
	}
	if clauses[0].Text() != "aku mangan sega" || clauses[1].Text() != "bapak ngunjuk" {
		t.Errorf("unexpected clause order: %q, %q", clauses[0].Text(), clauses[1].Text())
	}

	nps := Collect(root, NounPhrase)
	var texts []string
	for _, np := range nps {
		texts = append(texts, np.Text())
	}
	if diff := cmp.Diff([]string{"aku", "sega", "bapak"}, texts); diff != "" {
		t.Errorf("NP order mismatch (-want +got):\n%s", diff)
	}

	if got := root.ChildPhrases(Clause); len(got) != 2 {
		t.Errorf("ChildPhrases(Clause) = %d, want 2", len(got))
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	root := sampleTree()
	visited := 0
	Walk(root, func(n Node) bool {
		visited++
		nt, ok := n.(*NonTerminal)
		return !ok || nt.Kind != Clause
	})
	// S, CLAUSE, CONJ, CLAUSE
	if visited != 4 {
		t.Errorf("Expected 4 visited nodes, got %d", visited)
	}
}

func TestFirstLeaf(t *testing.T) {
	vp := NewNonTerminal(VerbPhrase, NewLeaf(RoleAux, "arep", 0), NewLeaf(RoleVerb, "tindak", 1))
	l, ok := FirstLeaf(vp, RoleVerb)
	if !ok || l.Text != "tindak" {
		t.Errorf("FirstLeaf(V) = %v, %v", l, ok)
	}
	if _, ok := FirstLeaf(vp, RolePrep); ok {
		t.Error("FirstLeaf(P) should find nothing")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tree    *NonTerminal
		wantErr string
	}{
		{"valid compound", sampleTree(), ""},
		{"nil", nil, "nil"},
		{"wrong root", NewNonTerminal(Clause), "root is CLAUSE"},
		{"empty sentence", NewNonTerminal(Sentence), "0 children"},
		{
			name: "clause missing verb phrase",
			tree: NewNonTerminal(Sentence,
				NewNonTerminal(Clause, NewNonTerminal(NounPhrase, NewLeaf(RoleSubject, "aku", 0)))),
			wantErr: "want 2",
		},
		{
			name: "missing conjunction",
			tree: NewNonTerminal(Sentence,
				sampleTree().Children[0], sampleTree().Children[0], sampleTree().Children[0]),
			wantErr: "want CONJ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tree)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestString(t *testing.T) {
	np := NewNonTerminal(NounPhrase, NewLeaf(RoleSubject, "bapak", 0), NewLeaf(RoleConj, "lan", 1), NewLeaf(RoleSubject, "ibu", 2))
	if got := np.String(); got != "(NP SUBJECT:bapak CONJ:lan SUBJECT:ibu)" {
		t.Errorf("String() = %q", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleTree().Children[2])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"type":"CLAUSE","value":"bapak ngunjuk","children":[` +
		`{"type":"NP","value":"bapak","children":[{"type":"SUBJECT","value":"bapak"}]},` +
		`{"type":"VP","value":"ngunjuk","children":[{"type":"V","value":"ngunjuk"}]}]}`
	if string(data) != want {
		t.Errorf("MarshalJSON() =\n%s\nwant\n%s", data, want)
	}
}

func TestSprint(t *testing.T) {
	root := NewNonTerminal(Sentence,
		NewNonTerminal(Clause,
			NewNonTerminal(NounPhrase, NewLeaf(RoleSubject, "aku", 0)),
			NewNonTerminal(VerbPhrase, NewLeaf(RoleVerb, "mangan", 1)),
		),
	)
	want := strings.Join([]string{
		"└── S",
		"    └── CLAUSE",
		"        ├── NP: aku",
		"        │   └── SUBJECT: aku",
		"        └── VP: mangan",
		"            └── V: mangan",
		"",
	}, "\n")
	if got := Sprint(root); got != want {
		t.Errorf("Sprint() =\n%s\nwant\n%s", got, want)
	}
}
