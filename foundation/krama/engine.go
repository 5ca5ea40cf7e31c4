// File: engine.go
// Title: Analysis Engine
// Description: Runs tokenizer, parser, derivation and semantic validation on a
//              sentence and composes the Result.
// Author: LearnWithSuryaa
// Version: v0.2.0
// Created: 2026-10-04
// Modified: 2026-10-09
//
// Change History:
// - 2026-10-04 v0.1.0: Initial engine
// - 2026-10-09 v0.2.0: Syntax errors as KRAMA_SYNTAX errors with position details

package krama

import (
	"errors"
	"strings"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	applog "github.com/LearnWithSuryaa/analyzer-app/foundation/core/log"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/derivation"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/parser"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/semantic"
)

const defaultExplanation = "Register correction."

// Options configures an Engine.
type Options struct {
	Logger *applog.Logger
	// DisableSuggestions turns off "did you mean" lookups for unknown words.
	DisableSuggestions bool
	// AllowTrailing accepts words left over after a complete sentence.
	AllowTrailing bool
}

// Engine analyzes sentences against one lexicon. It is immutable and safe
// for concurrent use.
type Engine struct {
	lexicon   *lexicon.Lexicon
	tokenizer *parser.Tokenizer
	parser    *parser.Parser
	validator *semantic.Validator
	logger    *applog.Logger
}

// New creates an engine for lex.
func New(lex *lexicon.Lexicon, opts Options) (*Engine, error) {
	if lex == nil {
		return nil, apperror.New("lexicon is required").
			WithCode(apperror.CodeInvalidInput).
			WithOperation("krama.New")
	}
	if opts.Logger == nil {
		opts.Logger = applog.GetDefault()
	}

	return &Engine{
		lexicon:   lex,
		tokenizer: parser.NewTokenizer(lex, !opts.DisableSuggestions),
		parser:    parser.New(parser.Options{Logger: opts.Logger, AllowTrailing: opts.AllowTrailing}),
		validator: semantic.New(lex, semantic.Options{Logger: opts.Logger}),
		logger:    opts.Logger.WithField("component", "krama-engine"),
	}, nil
}

// Lexicon returns the lexicon of the engine.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lexicon
}

// Tokenize returns the annotated tokens of text without parsing it.
func (e *Engine) Tokenize(text string) []TokenInfo {
	return e.annotate(e.tokenizer.Tokenize(text))
}

// Analyze runs the full analysis. A sentence that does not parse returns an
// error with code KRAMA_SYNTAX wrapping the *parser.SyntaxError; semantic
// problems never fail the call.
func (e *Engine) Analyze(text string) (*Result, error) {
	timer := e.logger.StartTimer("analyze")

	tokens := e.tokenizer.Tokenize(text)
	tree, err := e.parser.Parse(tokens)
	if err != nil {
		timer.WithField("outcome", "syntax_error").Stop()
		return nil, syntaxError(err)
	}

	report := e.validator.Validate(tree)
	trace := derivation.Generate(tree)

	result := &Result{
		Input:  strings.Join(wordsOf(tokens), " "),
		Tokens: e.annotate(tokens),
		Analysis: Analysis{
			SentenceType:  semantic.Classify(tree),
			SyntaxValid:   true,
			SemanticValid: report.Valid,
			Verdict:       report.Verdict(),
			Violations:    report.Violations,
			Reasons:       report.Reasons,
			Clauses:       report.Clauses,
		},
		Tree:                tree,
		Derivation:          trace.Steps,
		DerivationTruncated: trace.Truncated,
	}
	if !report.Valid {
		result.Correction = correct(tokens, report)
	}

	if trace.Truncated {
		e.logger.Warn("Derivation truncated", applog.Fields{"steps": len(trace.Steps), "input": result.Input})
	}
	timer.WithField("outcome", string(result.Analysis.Verdict)).Stop()
	return result, nil
}

func (e *Engine) annotate(tokens []parser.Token) []TokenInfo {
	out := make([]TokenInfo, len(tokens))
	for i, t := range tokens {
		out[i] = TokenInfo{
			Word:       t.Text,
			Category:   t.Category,
			Note:       Note(e.lexicon, t.Text, t.Category),
			Suggestion: t.Suggestion,
		}
	}
	return out
}

func correct(tokens []parser.Token, report *semantic.Report) *Correction {
	words := wordsOf(tokens)
	for i, w := range words {
		if s, ok := report.Corrections[w]; ok {
			words[i] = s
		}
	}

	explanation := strings.Join(report.Reasons, "; ")
	if explanation == "" {
		explanation = defaultExplanation
	}
	return &Correction{Sentence: strings.Join(words, " "), Explanation: explanation}
}

func wordsOf(tokens []parser.Token) []string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Text
	}
	return words
}

func syntaxError(err error) error {
	wrapped := apperror.Wrap(err, "sentence does not fit the grammar").
		WithCode(apperror.CodeSyntax).
		WithOperation("krama.Analyze")

	var syn *parser.SyntaxError
	if errors.As(err, &syn) {
		wrapped = wrapped.WithDetails(map[string]interface{}{
			"rule":     syn.Rule,
			"expected": syn.ExpectedName(),
			"found":    syn.FoundName(),
			"position": syn.Pos,
		})
	}
	return wrapped
}

// SyntaxErrorOf returns the *parser.SyntaxError inside err, if any.
func SyntaxErrorOf(err error) (*parser.SyntaxError, bool) {
	var syn *parser.SyntaxError
	ok := errors.As(err, &syn)
	return syn, ok
}
