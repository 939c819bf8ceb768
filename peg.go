// Package peg implements a parser and evaluator for Parsing Expression
// Grammars in the style of Bryan Ford's original formulation: given PEG
// source text it builds an in-memory grammar, and given that grammar, an
// input string, and a starting rule name, it recognizes a prefix of the
// input and reports either the consumed span or a mismatch.
package peg

import "github.com/sirupsen/logrus"

// MatchResult is the outcome of a Grammar.Parse call: either a
// successful match's [Start, End) span, or — when Ok is false — a
// mismatch, with Furthest recording the furthest position the
// recognizer reached while attempting the match. Furthest is populated
// in both cases, since it is useful for diagnosing partial matches too.
type MatchResult struct {
	Ok       bool
	Start    int
	End      int
	Furthest int
}

// IsMismatch reports whether r represents a failed match.
func IsMismatch(r MatchResult) bool {
	return !r.Ok
}

// Option configures a Grammar at construction time.
type Option func(*Grammar)

// WithLogger attaches a logger that traces rule entry/exit during every
// subsequent Parse call. Without this option a Grammar logs nothing.
func WithLogger(log *logrus.Logger) Option {
	return func(g *Grammar) {
		g.SetLogger(log)
	}
}

// ParseGrammarWithOptions parses text as PEG grammar source, per
// ParseGrammar, then applies opts to the resulting Grammar.
func ParseGrammarWithOptions(text string, opts ...Option) (*Grammar, error) {
	g, err := ParseGrammar(text)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MustParseGrammar is like ParseGrammar but panics on error. Intended for
// package-level grammars built from a source string fixed at compile
// time, where a parse failure is a programming error.
func MustParseGrammar(text string) *Grammar {
	g, err := ParseGrammar(text)
	if err != nil {
		panic(err)
	}
	return g
}
