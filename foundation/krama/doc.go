// Package krama analyzes Javanese sentences for speech-level (unggah-ungguh)
// agreement.
//
// An Engine runs the full pipeline on one sentence:
//
//	text -> parser.Tokenizer -> parser.Parser -> tree
//	tree -> derivation.Generate (leftmost derivation trace)
//	tree -> semantic.Validator  (subject/predicate honorific agreement)
//
// and composes the outcome into a Result: categorized tokens with notes,
// sentence type, validity, verdict, violations, a corrected sentence when
// the register is wrong, the parse tree and the derivation.
//
// The lexicon is built once and shared read-only, so one Engine serves any
// number of goroutines:
//
//	lex, err := lexicon.Load(path)
//	engine, err := krama.New(lex, krama.Options{})
//	result, err := engine.Analyze("aku dhahar")
//	// result.Correction.Sentence == "aku mangan"
//
// A sentence that does not fit the grammar yields an *error.Error with code
// KRAMA_SYNTAX wrapping a *parser.SyntaxError.
package krama
