// File: lexicon.go
// Title: Immutable Lexicon
// Description: The word table used by the tokenizer and the semantic validator.
//              A Lexicon is built once from Data and never mutated, so a single
//              value can be shared between goroutines without locking.
// Author: LearnWithSuryaa
// Version: v0.2.0
// Created: 2026-09-29
// Modified: 2026-10-08

package lexicon

// Entry is everything the lexicon knows about a word.
type Entry struct {
	Word        string   `json:"word"`
	Category    Category `json:"category"`
	Level       Level    `json:"level,omitempty"`
	Replacement string   `json:"replacement,omitempty"`
	Meaning     string   `json:"meaning,omitempty"`
}

// Lexicon maps words to categories, honorific levels, replacement pairings
// and meanings.
//
// A word listed in several groups is categorized by the first group in
// Categories order. Its level, replacement and meaning come from the last
// group that sets them.
type Lexicon struct {
	groups  map[Category][]string
	members map[Category]map[string]struct{}
	entries map[string]Entry
	words   []string
	source  string
}

// New validates data and builds a Lexicon.
func New(data *Data) (*Lexicon, error) {
	if data == nil {
		data = &Data{}
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	lex := &Lexicon{
		groups:  make(map[Category][]string, len(Categories)),
		members: make(map[Category]map[string]struct{}, len(Categories)),
		entries: make(map[string]Entry),
	}

	for _, c := range Categories {
		set := make(map[string]struct{})
		for _, item := range data.Group(c) {
			if _, dup := set[item.Word]; !dup {
				set[item.Word] = struct{}{}
				lex.groups[c] = append(lex.groups[c], item.Word)
			}

			entry, seen := lex.entries[item.Word]
			if !seen {
				entry = Entry{Word: item.Word, Category: c}
				lex.words = append(lex.words, item.Word)
			}
			// Validate has already rejected unknown level names.
			if level, _ := ParseLevel(item.Level); level != LevelNone {
				entry.Level = level
			}
			if item.Pair != "" {
				entry.Replacement = item.Pair
			}
			if item.Meaning != "" {
				entry.Meaning = item.Meaning
			}
			lex.entries[item.Word] = entry
		}
		lex.members[c] = set
	}
	return lex, nil
}

// Match returns the category of word: the first group, in Categories
// order, whose word set contains it. Matching is whole-word and exact;
// callers pass normalized lowercase words.
func (l *Lexicon) Match(word string) Category {
	for _, c := range Categories {
		if _, ok := l.members[c][word]; ok {
			return c
		}
	}
	return Unknown
}

// Lookup returns the entry for word.
func (l *Lexicon) Lookup(word string) (Entry, bool) {
	e, ok := l.entries[word]
	return e, ok
}

// Level returns the honorific level of word, LevelNone when absent.
func (l *Lexicon) Level(word string) Level {
	return l.entries[word].Level
}

// Replacement returns the registered pairing of word.
func (l *Lexicon) Replacement(word string) (string, bool) {
	r := l.entries[word].Replacement
	return r, r != ""
}

// Meaning returns the gloss of word, if any.
func (l *Lexicon) Meaning(word string) string {
	return l.entries[word].Meaning
}

// Group returns a copy of the words of category c in file order.
func (l *Lexicon) Group(c Category) []string {
	out := make([]string, len(l.groups[c]))
	copy(out, l.groups[c])
	return out
}

// Words returns every distinct word in first-seen order.
func (l *Lexicon) Words() []string {
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}

// Size is the number of distinct words.
func (l *Lexicon) Size() int {
	return len(l.words)
}

// Source names where the lexicon was loaded from.
func (l *Lexicon) Source() string {
	if l.source == "" {
		return "memory"
	}
	return l.source
}

// Stats summarizes the lexicon.
type Stats struct {
	Source       string         `json:"source"`
	Words        int            `json:"words"`
	ByCategory   map[string]int `json:"by_category"`
	ByLevel      map[string]int `json:"by_level"`
	Replacements int            `json:"replacements"`
}

// Stats counts words per category and level.
func (l *Lexicon) Stats() Stats {
	s := Stats{
		Source:     l.Source(),
		Words:      len(l.words),
		ByCategory: make(map[string]int, len(Categories)),
		ByLevel:    make(map[string]int, 3),
	}
	for _, c := range Categories {
		s.ByCategory[c.String()] = len(l.groups[c])
	}
	for _, e := range l.entries {
		if e.Level != LevelNone {
			s.ByLevel[e.Level.String()]++
		}
		if e.Replacement != "" {
			s.Replacements++
		}
	}
	return s
}
