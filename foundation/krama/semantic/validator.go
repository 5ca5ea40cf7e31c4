// File: validator.go
// Title: Semantic Validator
// Description: Walks a parse tree clause by clause and checks that the
//              honorific level of each predicate agrees with its subject.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-10-01
// Modified: 2026-10-04

package semantic

import (
	"strings"

	applog "github.com/LearnWithSuryaa/analyzer-app/foundation/core/log"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/ast"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/utils/stringx"
)

// Check is the outcome for one clause.
type Check struct {
	Index          int           `json:"index"`
	Text           string        `json:"text"`
	Subject        string        `json:"subject"`
	SubjectLevel   lexicon.Level `json:"subject_level"`
	Predicate      string        `json:"predicate"`
	PredicateLevel lexicon.Level `json:"predicate_level"`
	Object         string        `json:"object,omitempty"`
	Valid          bool          `json:"valid"`
}

// Report is the outcome for a sentence.
type Report struct {
	Valid bool `json:"valid"`
	// Reasons has one message per violation, in clause order.
	Reasons []string `json:"reasons"`
	// Corrections maps offending words to suggestions. A word seen twice
	// keeps the last suggestion.
	Corrections map[string]string `json:"corrections"`
	Violations  []Violation       `json:"violations"`
	Clauses     []Check           `json:"clauses"`
}

// Verdict summarizes the report: appropriate when valid, ambiguous when a
// self-referring subject was misused, inappropriate otherwise.
func (r *Report) Verdict() Verdict {
	if r.Valid {
		return Appropriate
	}
	for _, v := range r.Violations {
		if v.Rule == RuleSelfSubject {
			return Ambiguous
		}
	}
	return Inappropriate
}

// Options configures a Validator.
type Options struct {
	Logger *applog.Logger
}

// Validator checks honorific agreement against a lexicon. It is safe for
// concurrent use.
type Validator struct {
	lexicon *lexicon.Lexicon
	logger  *applog.Logger
}

// New creates a validator.
func New(lex *lexicon.Lexicon, opts Options) *Validator {
	if opts.Logger == nil {
		opts.Logger = applog.GetDefault()
	}
	return &Validator{
		lexicon: lex,
		logger:  opts.Logger.WithField("component", "krama-semantic"),
	}
}

// Validate checks every clause of root in pre-order.
func (v *Validator) Validate(root *ast.NonTerminal) *Report {
	report := &Report{
		Valid:       true,
		Reasons:     []string{},
		Corrections: map[string]string{},
		Violations:  []Violation{},
		Clauses:     []Check{},
	}
	if root == nil {
		return report
	}

	for i, clause := range ast.Collect(root, ast.Clause) {
		check, violation := v.checkClause(i+1, clause)
		report.Clauses = append(report.Clauses, check)
		if violation == nil {
			continue
		}

		report.Valid = false
		report.Reasons = append(report.Reasons, violation.Rule.reason(violation.Subject, violation.Word))
		report.Corrections[violation.Word] = violation.Suggestion
		report.Violations = append(report.Violations, *violation)
	}

	v.logger.Debug("Semantic validation completed", applog.Fields{
		"clauses":    len(report.Clauses),
		"violations": len(report.Violations),
	})
	return report
}

func (v *Validator) checkClause(index int, clause *ast.NonTerminal) (Check, *Violation) {
	check := Check{Index: index, Text: clause.Text(), Valid: true}

	np, vp := phrase(clause, ast.NounPhrase), phrase(clause, ast.VerbPhrase)
	if np == nil || vp == nil {
		return check, nil
	}

	check.Subject = headWord(np)
	if verb, ok := ast.FirstLeaf(vp, ast.RoleVerb); ok {
		check.Predicate = stringx.Lower(verb.Text)
	}
	check.Object = objectHead(vp)

	check.SubjectLevel = v.lexicon.Level(check.Subject)
	check.PredicateLevel = v.lexicon.Level(check.Predicate)

	var rule Rule
	switch {
	case check.SubjectLevel == lexicon.LevelSelf && check.PredicateLevel == lexicon.LevelOther:
		rule = RuleSelfSubject
	case check.SubjectLevel == lexicon.LevelOther && check.PredicateLevel == lexicon.LevelSelf:
		rule = RuleRespectedSubject
	default:
		return check, nil
	}

	check.Valid = false
	violation := &Violation{
		Word:       check.Predicate,
		Problem:    rule.Problem(),
		Subject:    check.Subject,
		Rule:       rule,
		Suggestion: UnresolvedSuggestion(check.Predicate),
		Clause:     index,
	}
	if r, ok := v.lexicon.Replacement(check.Predicate); ok {
		violation.Suggestion = r
		violation.Resolved = true
	}

	v.logger.Debug("Agreement violation", applog.Fields{
		"clause":    index,
		"subject":   check.Subject,
		"predicate": check.Predicate,
		"rule":      rule.Code(),
	})
	return check, violation
}

// Classify returns Compound when root has more than one direct clause.
func Classify(root *ast.NonTerminal) SentenceType {
	if root != nil && len(root.ChildPhrases(ast.Clause)) > 1 {
		return Compound
	}
	return Simple
}

func phrase(n *ast.NonTerminal, kind ast.Kind) *ast.NonTerminal {
	for _, c := range n.Children {
		if nt, ok := c.(*ast.NonTerminal); ok && nt.Kind == kind {
			return nt
		}
	}
	return nil
}

// headWord is the first word of the phrase text, lowercased.
func headWord(np *ast.NonTerminal) string {
	words := strings.Fields(np.Text())
	if len(words) == 0 {
		return ""
	}
	return stringx.Lower(words[0])
}

// objectHead is the head of the noun phrase right after the verb, if any.
func objectHead(vp *ast.NonTerminal) string {
	for i, c := range vp.Children {
		l, ok := c.(*ast.Leaf)
		if !ok || l.Role != ast.RoleVerb {
			continue
		}
		if i+1 < len(vp.Children) {
			if np, ok := vp.Children[i+1].(*ast.NonTerminal); ok && np.Kind == ast.NounPhrase {
				return headWord(np)
			}
		}
		break
	}
	return ""
}
