// File: parser.go
// Title: Recursive Descent Parser
// Description: Builds a parse tree from categorized tokens. One method per
//              grammar rule, one token of lookahead, plus a two-token lookahead
//              that ends a non-subject noun phrase at a clause boundary.
// Author: LearnWithSuryaa
// Version: v0.2.0
// Created: 2026-09-30
// Modified: 2026-10-06
//
// Grammar:
//
//	SENTENCE    -> CLAUSE { CONJUNCTION CLAUSE }
//	CLAUSE      -> NOUN_PHRASE VERB_PHRASE
//	NOUN_PHRASE -> HEAD { CONJUNCTION HEAD | OBJECT_NOUN | TIME_ADVERB | ADJECTIVE | NUMERAL }
//	HEAD        -> SUBJECT | OBJECT_NOUN | TIME_ADVERB
//	VERB_PHRASE -> [AUXILIARY] PREDICATE [NOUN_PHRASE] { PREP_PHRASE | NOUN_PHRASE(TIME_ADVERB) }
//	PREP_PHRASE -> PREPOSITION NOUN_PHRASE
//
// Change History:
// - 2026-09-30 v0.1.0: Initial parser
// - 2026-10-06 v0.2.0: Reject tokens left over after the sentence

package parser

import (
	"fmt"

	applog "github.com/LearnWithSuryaa/analyzer-app/foundation/core/log"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/ast"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
)

var nounHeads = []lexicon.Category{lexicon.Subject, lexicon.ObjectNoun, lexicon.TimeAdverb}

// Parser parses token sequences. It holds no per-call state and may be used
// from several goroutines.
type Parser struct {
	logger  *applog.Logger
	options Options
}

// Options configures a Parser.
type Options struct {
	Logger *applog.Logger
	// AllowTrailing accepts tokens left after the sentence rule instead of
	// failing; they are then not part of the tree.
	AllowTrailing bool
}

// New creates a parser.
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = applog.GetDefault()
	}
	return &Parser{
		logger:  opts.Logger.WithField("component", "krama-parser"),
		options: opts,
	}
}

// Parse builds the tree for tokens. The first grammar mismatch is returned
// as a *SyntaxError (possibly wrapped with clause context).
func (p *Parser) Parse(tokens []Token) (*ast.NonTerminal, error) {
	s := &state{tokens: tokens, logger: p.logger}

	p.logger.Debug("Starting sentence parsing", applog.Fields{"tokens": len(tokens)})

	root, err := s.parseSentence()
	if err != nil {
		p.logger.Debug("Sentence parsing failed", applog.Fields{"error": err.Error()})
		return nil, err
	}

	if !s.atEnd() && !p.options.AllowTrailing {
		err := s.errorf("SENTENCE")
		p.logger.Debug("Sentence parsing failed", applog.Fields{"error": err.Error()})
		return nil, err
	}

	p.logger.Debug("Sentence parsing completed", applog.Fields{
		"clauses": len(root.ChildPhrases(ast.Clause)),
	})
	return root, nil
}

// state is the cursor of a single Parse call.
type state struct {
	tokens []Token
	pos    int
	clause int
	logger *applog.Logger
}

func (s *state) atEnd() bool {
	return s.pos >= len(s.tokens)
}

func (s *state) current() (Token, bool) {
	return s.peek(0)
}

func (s *state) peek(n int) (Token, bool) {
	i := s.pos + n
	if i < 0 || i >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[i], true
}

func (s *state) is(categories ...lexicon.Category) bool {
	tok, ok := s.current()
	if !ok {
		return false
	}
	for _, c := range categories {
		if tok.Category == c {
			return true
		}
	}
	return false
}

// leaf consumes the current token as a leaf with the role of its category.
func (s *state) leaf() *ast.Leaf {
	tok := s.tokens[s.pos]
	role, _ := ast.RoleFor(tok.Category)
	s.pos++
	return ast.NewLeaf(role, tok.Text, tok.Pos)
}

func (s *state) trace(rule, production string) {
	s.logger.Trace("apply rule", applog.Fields{"rule": rule, "production": production, "position": s.pos})
}

// errorf builds a SyntaxError at the current position.
func (s *state) errorf(rule string, expected ...lexicon.Category) *SyntaxError {
	e := &SyntaxError{Rule: rule, Expected: expected, Pos: s.pos}
	if tok, ok := s.current(); ok {
		e.Found = &tok
	}
	return e
}

// SENTENCE -> CLAUSE { CONJUNCTION CLAUSE }
func (s *state) parseSentence() (*ast.NonTerminal, error) {
	s.trace("SENTENCE", "CLAUSE")
	root := ast.NewNonTerminal(ast.Sentence)

	clause, err := s.parseClause()
	if err != nil {
		return nil, err
	}
	root.Add(clause)

	for s.is(lexicon.Conjunction) {
		s.trace("SENTENCE", "CLAUSE CONJUNCTION CLAUSE")
		root.Add(s.leaf())

		clause, err := s.parseClause()
		if err != nil {
			return nil, err
		}
		root.Add(clause)
	}
	return root, nil
}

// CLAUSE -> NOUN_PHRASE VERB_PHRASE
func (s *state) parseClause() (*ast.NonTerminal, error) {
	s.clause++
	s.trace("CLAUSE", "NOUN_PHRASE VERB_PHRASE")

	subject, err := s.parseNounPhrase(true)
	if err != nil {
		return nil, fmt.Errorf("clause %d: subject: %w", s.clause, err)
	}
	predicate, err := s.parseVerbPhrase()
	if err != nil {
		return nil, fmt.Errorf("clause %d: predicate: %w", s.clause, err)
	}
	return ast.NewNonTerminal(ast.Clause, subject, predicate), nil
}

// NOUN_PHRASE -> HEAD { CONJUNCTION HEAD | NOUN_MOD | ADJ_MOD | NUM_MOD }
//
// The clause-boundary lookahead is only applied outside subject position, so
// "bapak lan ibu sare" keeps a compound subject.
func (s *state) parseNounPhrase(subject bool) (*ast.NonTerminal, error) {
	if !s.is(nounHeads...) {
		return nil, s.errorf("NOUN_PHRASE", nounHeads...)
	}
	s.trace("NOUN_PHRASE", "HEAD")
	np := ast.NewNonTerminal(ast.NounPhrase, s.leaf())

	for !s.atEnd() {
		tok, _ := s.current()

		switch tok.Category {
		case lexicon.Conjunction:
			if !subject && s.clauseBoundaryAhead() {
				return np, nil
			}
			s.trace("NOUN_PHRASE", "NOUN_PHRASE CONJUNCTION HEAD")
			np.Add(s.leaf())
			if !s.is(nounHeads...) {
				return nil, s.errorf("NOUN_PHRASE", nounHeads...)
			}
			np.Add(s.leaf())

		case lexicon.ObjectNoun, lexicon.TimeAdverb:
			s.trace("NOUN_PHRASE", "NOUN_PHRASE NOUN_MOD")
			np.Add(s.leaf())

		case lexicon.Adjective:
			s.trace("NOUN_PHRASE", "NOUN_PHRASE ADJ_MOD")
			np.Add(s.leaf())

		case lexicon.Numeral:
			s.trace("NOUN_PHRASE", "NOUN_PHRASE NUM_MOD")
			np.Add(s.leaf())

		default:
			return np, nil
		}
	}
	return np, nil
}

// clauseBoundaryAhead reports whether the conjunction at the cursor starts a
// new clause: it is followed by a noun head and then a predicate.
func (s *state) clauseBoundaryAhead() bool {
	next, ok1 := s.peek(1)
	after, ok2 := s.peek(2)
	if !ok1 || !ok2 {
		return false
	}
	return next.Category.IsNounHead() && after.Category == lexicon.Predicate
}

// VERB_PHRASE -> [AUXILIARY] PREDICATE [NOUN_PHRASE] { PREP_PHRASE | NOUN_PHRASE(TIME_ADVERB) }
func (s *state) parseVerbPhrase() (*ast.NonTerminal, error) {
	vp := ast.NewNonTerminal(ast.VerbPhrase)

	if s.is(lexicon.Auxiliary) {
		s.trace("VERB_PHRASE", "AUXILIARY PREDICATE")
		vp.Add(s.leaf())
	}

	if !s.is(lexicon.Predicate) {
		return nil, s.errorf("VERB_PHRASE", lexicon.Predicate)
	}
	s.trace("VERB_PHRASE", "PREDICATE")
	vp.Add(s.leaf())

	if s.is(lexicon.ObjectNoun, lexicon.Subject) {
		s.trace("VERB_PHRASE", "PREDICATE NOUN_PHRASE")
		object, err := s.parseNounPhrase(false)
		if err != nil {
			return nil, fmt.Errorf("object: %w", err)
		}
		vp.Add(object)
	}

	for s.is(lexicon.Preposition, lexicon.TimeAdverb) {
		if s.is(lexicon.Preposition) {
			s.trace("VERB_PHRASE", "VERB_PHRASE PREP_PHRASE")
			pp, err := s.parsePrepPhrase()
			if err != nil {
				return nil, err
			}
			vp.Add(pp)
			continue
		}

		s.trace("VERB_PHRASE", "VERB_PHRASE NOUN_PHRASE(TIME_ADVERB)")
		adverbial, err := s.parseNounPhrase(false)
		if err != nil {
			return nil, fmt.Errorf("time adverbial: %w", err)
		}
		vp.Add(adverbial)
	}
	return vp, nil
}

// PREP_PHRASE -> PREPOSITION NOUN_PHRASE
func (s *state) parsePrepPhrase() (*ast.NonTerminal, error) {
	if !s.is(lexicon.Preposition) {
		return nil, s.errorf("PREP_PHRASE", lexicon.Preposition)
	}
	s.trace("PREP_PHRASE", "PREPOSITION NOUN_PHRASE")
	pp := ast.NewNonTerminal(ast.PrepPhrase, s.leaf())

	np, err := s.parseNounPhrase(false)
	if err != nil {
		return nil, fmt.Errorf("prepositional phrase: %w", err)
	}
	pp.Add(np)
	return pp, nil
}
