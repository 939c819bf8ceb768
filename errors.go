package peg

import "fmt"

// GrammarSyntaxError reports that grammar source text is not a valid PEG,
// either because it failed to parse or because it violated a structural
// rule (such as redefining a rule name) once parsed. Pos is the furthest
// input position the recognizer reached before giving up, or, for a
// backwards character range, the start of that range. Rule-name errors
// reported by NewGrammar (invalid, duplicate, or no rules at all) leave
// Pos at 0: a Rule carries no source position. Modeled on tef-ez's
// grammarError.
type GrammarSyntaxError struct {
	Pos     int
	Message string
}

func (e *GrammarSyntaxError) Error() string {
	return fmt.Sprintf("grammar syntax error at position %d: %s", e.Pos, e.Message)
}

// UnknownRuleError reports that a rule name has no definition: either the
// starting rule name passed to Parse, or a Reference encountered while
// evaluating a grammar. Per spec, reference resolution is checked lazily,
// only when a Reference is actually evaluated.
type UnknownRuleError struct {
	Name string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q", e.Name)
}
