// File: loader.go
// Title: Lexicon File Loading
// Description: Decodes lexicon files (JSON, YAML, TOML) into Data, validates every
//              entry and builds an immutable Lexicon. The embedded default lexicon
//              is used when no file is configured.
// Author: LearnWithSuryaa
// Version: v0.2.0
// Created: 2026-09-29
// Modified: 2026-10-08
//
// Change History:
// - 2026-09-29 v0.1.0: JSON loading
// - 2026-10-08 v0.2.0: YAML/TOML formats, entry validation

package lexicon

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
)

//go:embed data/default.json
var defaultLexicon []byte

// Format is a lexicon file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported lexicon extension %q", filepath.Ext(path))
	}
}

// EntryData is one word as written in a lexicon file. Unknown keys are ignored.
type EntryData struct {
	Word    string `json:"word" yaml:"word" toml:"word" validate:"required,lexword"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty" toml:"level,omitempty" validate:"omitempty,oneof=SELF OTHER NEUTRAL"`
	Pair    string `json:"pair,omitempty" yaml:"pair,omitempty" toml:"pair,omitempty" validate:"omitempty,lexword"`
	Meaning string `json:"makna,omitempty" yaml:"makna,omitempty" toml:"makna,omitempty"`
}

// Data is the file representation of a lexicon: one list per category.
// Group keys are fixed; their order in the file does not matter.
type Data struct {
	Subject     []EntryData `json:"SUBJEK,omitempty" yaml:"SUBJEK,omitempty" toml:"SUBJEK,omitempty" validate:"dive"`
	Predicate   []EntryData `json:"PREDIKAT,omitempty" yaml:"PREDIKAT,omitempty" toml:"PREDIKAT,omitempty" validate:"dive"`
	ObjectNoun  []EntryData `json:"OBJEK_NOUN,omitempty" yaml:"OBJEK_NOUN,omitempty" toml:"OBJEK_NOUN,omitempty" validate:"dive"`
	Preposition []EntryData `json:"PREPOSISI,omitempty" yaml:"PREPOSISI,omitempty" toml:"PREPOSISI,omitempty" validate:"dive"`
	Conjunction []EntryData `json:"KONJUNGTIF,omitempty" yaml:"KONJUNGTIF,omitempty" toml:"KONJUNGTIF,omitempty" validate:"dive"`
	Auxiliary   []EntryData `json:"AUX,omitempty" yaml:"AUX,omitempty" toml:"AUX,omitempty" validate:"dive"`
	TimeAdverb  []EntryData `json:"WAKTU,omitempty" yaml:"WAKTU,omitempty" toml:"WAKTU,omitempty" validate:"dive"`
	Adjective   []EntryData `json:"ADJEKTIVA,omitempty" yaml:"ADJEKTIVA,omitempty" toml:"ADJEKTIVA,omitempty" validate:"dive"`
	Numeral     []EntryData `json:"BILANGAN,omitempty" yaml:"BILANGAN,omitempty" toml:"BILANGAN,omitempty" validate:"dive"`
}

// Group returns the entries of category c.
func (d *Data) Group(c Category) []EntryData {
	switch c {
	case Subject:
		return d.Subject
	case Predicate:
		return d.Predicate
	case ObjectNoun:
		return d.ObjectNoun
	case Preposition:
		return d.Preposition
	case Conjunction:
		return d.Conjunction
	case Auxiliary:
		return d.Auxiliary
	case TimeAdverb:
		return d.TimeAdverb
	case Adjective:
		return d.Adjective
	case Numeral:
		return d.Numeral
	default:
		return nil
	}
}

// Decode parses raw bytes in the given format.
func Decode(raw []byte, format Format) (*Data, error) {
	var data Data
	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(raw, &data)
	case FormatYAML:
		err = yaml.NewDecoder(bytes.NewReader(raw)).Decode(&data)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		_, err = toml.Decode(string(raw), &data)
	default:
		err = fmt.Errorf("unsupported lexicon format %q", format)
	}
	if err != nil {
		return nil, apperror.Wrap(err, "decode lexicon").
			WithCode(apperror.CodeLexiconInvalid).
			WithDetail("format", string(format))
	}
	return &data, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func entryValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("lexword", func(fl validator.FieldLevel) bool {
			return isLexiconWord(fl.Field().String())
		})
	})
	return validate
}

// isLexiconWord accepts a single lowercase word without commas.
func isLexiconWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' || unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// Validate checks every entry and reports all problems at once.
func (d *Data) Validate() error {
	err := entryValidator().Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(err, "validate lexicon").WithCode(apperror.CodeLexiconInvalid)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s: failed %q (value %q)", fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value())))
	}
	return apperror.New("invalid lexicon entries: "+strings.Join(problems, "; ")).
		WithCode(apperror.CodeLexiconInvalid).
		WithDetail("problems", len(problems))
}

// Parse decodes, validates and builds a Lexicon.
func Parse(raw []byte, format Format) (*Lexicon, error) {
	data, err := Decode(raw, format)
	if err != nil {
		return nil, err
	}
	return New(data)
}

// LoadFile reads a lexicon file; the format follows the extension.
func LoadFile(path string) (*Lexicon, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, apperror.Wrap(err, "load lexicon").
			WithCode(apperror.CodeLexiconInvalid).
			WithDetail("path", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		code := apperror.CodeLexiconInvalid
		if os.IsNotExist(err) {
			code = apperror.CodeLexiconNotFound
		}
		return nil, apperror.Wrap(err, "read lexicon file").WithCode(code).WithDetail("path", path)
	}

	lex, err := Parse(raw, format)
	if err != nil {
		return nil, apperror.Wrap(err, "load lexicon").WithDetail("path", path)
	}
	lex.source = path
	return lex, nil
}

// Default builds the embedded default lexicon.
func Default() (*Lexicon, error) {
	lex, err := Parse(defaultLexicon, FormatJSON)
	if err != nil {
		return nil, err
	}
	lex.source = "embedded"
	return lex, nil
}

// DefaultData returns the raw embedded lexicon file.
func DefaultData() []byte {
	out := make([]byte, len(defaultLexicon))
	copy(out, defaultLexicon)
	return out
}

// Load loads path, or the embedded default when path is empty.
func Load(path string) (*Lexicon, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}
