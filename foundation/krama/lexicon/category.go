// File: category.go
// Title: Word Categories and Honorific Levels
// Description: Grammatical categories assigned by the tokenizer and the honorific
//              levels carried by lexicon entries.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-29
// Modified: 2026-09-29

package lexicon

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the grammatical category of a word.
type Category int

const (
	Unknown Category = iota
	Subject
	Predicate
	ObjectNoun
	Preposition
	Conjunction
	Auxiliary
	TimeAdverb
	Adjective
	Numeral
)

// Categories lists the matchable categories in tokenizer priority order.
var Categories = []Category{
	Subject, Predicate, ObjectNoun, Preposition, Conjunction,
	Auxiliary, TimeAdverb, Adjective, Numeral,
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Subject:
		return "SUBJECT"
	case Predicate:
		return "PREDICATE"
	case ObjectNoun:
		return "OBJECT_NOUN"
	case Preposition:
		return "PREPOSITION"
	case Conjunction:
		return "CONJUNCTION"
	case Auxiliary:
		return "AUXILIARY"
	case TimeAdverb:
		return "TIME_ADVERB"
	case Adjective:
		return "ADJECTIVE"
	case Numeral:
		return "NUMERAL"
	default:
		return "UNKNOWN"
	}
}

// GroupName returns the key used for the category in lexicon files.
func (c Category) GroupName() string {
	switch c {
	case Subject:
		return "SUBJEK"
	case Predicate:
		return "PREDIKAT"
	case ObjectNoun:
		return "OBJEK_NOUN"
	case Preposition:
		return "PREPOSISI"
	case Conjunction:
		return "KONJUNGTIF"
	case Auxiliary:
		return "AUX"
	case TimeAdverb:
		return "WAKTU"
	case Adjective:
		return "ADJEKTIVA"
	case Numeral:
		return "BILANGAN"
	default:
		return ""
	}
}

// IsNounHead reports whether c can head a noun phrase.
func (c Category) IsNounHead() bool {
	return c == Subject || c == ObjectNoun || c == TimeAdverb
}

// MarshalJSON encodes the category by name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// ParseCategory accepts category names and lexicon group names.
func ParseCategory(s string) (Category, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range append([]Category{Unknown}, Categories...) {
		if name == c.String() || (c != Unknown && name == c.GroupName()) {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("unknown category %q", s)
}

// Level is the honorific register of a word.
type Level int

const (
	// LevelNone marks a word without a registered level.
	LevelNone Level = iota
	// LevelSelf words are used when speaking about oneself.
	LevelSelf
	// LevelOther words honor a respected person.
	LevelOther
	// LevelNeutral words fit any subject.
	LevelNeutral
)

// String returns the level name, empty for LevelNone.
func (l Level) String() string {
	switch l {
	case LevelSelf:
		return "SELF"
	case LevelOther:
		return "OTHER"
	case LevelNeutral:
		return "NEUTRAL"
	default:
		return ""
	}
}

// MarshalJSON encodes the level by name, null for LevelNone.
func (l Level) MarshalJSON() ([]byte, error) {
	if l == LevelNone {
		return []byte("null"), nil
	}
	return json.Marshal(l.String())
}

// ParseLevel parses SELF, OTHER or NEUTRAL. The empty string is LevelNone.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return LevelNone, nil
	case "SELF":
		return LevelSelf, nil
	case "OTHER":
		return LevelOther, nil
	case "NEUTRAL":
		return LevelNeutral, nil
	default:
		return LevelNone, fmt.Errorf("unknown level %q", s)
	}
}
