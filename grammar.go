package peg

import (
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Rule is one named definition inside a Grammar.
type Rule struct {
	Name string
	Expr *Expr
}

// Grammar is a built, ready-to-use PEG: an ordered set of uniquely named
// rules plus a default start rule. Grounded on tef-ez's Grammar type,
// generalized from its fixed method-chain builder API to the data model
// spec.md §4.2 builds from parsed grammar source.
type Grammar struct {
	order []string
	rules map[string]*Expr
	start string
	log   *logrus.Logger
}

// NewGrammar builds a Grammar from an ordered list of rules. The first
// rule becomes the default start rule. Every rule name must be a valid
// PEG identifier and appear exactly once; violations return a
// *GrammarSyntaxError. This is the only place rule identity is validated
// — reference targets are resolved lazily, at Parse time (spec.md §4.1).
func NewGrammar(rules []Rule) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, &GrammarSyntaxError{Message: "grammar must define at least one rule"}
	}
	g := &Grammar{
		order: make([]string, 0, len(rules)),
		rules: make(map[string]*Expr, len(rules)),
		start: rules[0].Name,
	}
	for _, r := range rules {
		if !identifierPattern.MatchString(r.Name) {
			return nil, &GrammarSyntaxError{Message: fmt.Sprintf("invalid rule name %q", r.Name)}
		}
		if _, dup := g.rules[r.Name]; dup {
			return nil, &GrammarSyntaxError{Message: fmt.Sprintf("rule %q defined more than once", r.Name)}
		}
		g.rules[r.Name] = r.Expr
		g.order = append(g.order, r.Name)
	}
	return g, nil
}

// Rules returns the grammar's rule names in definition order.
func (g *Grammar) Rules() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// StartRule returns the grammar's default start rule: the first rule
// given to NewGrammar, or the first Definition in parsed grammar source.
func (g *Grammar) StartRule() string {
	return g.start
}

// SetLogger attaches a logger used to trace rule entry/exit during Parse.
// A nil logger (the default) disables tracing entirely.
func (g *Grammar) SetLogger(log *logrus.Logger) {
	g.log = log
}

// Parse recognizes input against the named rule (or the grammar's
// default start rule, if name is ""). It returns a MatchResult describing
// either a successful match's span or the furthest position reached
// before failing, or an error if name — or any rule transitively
// referenced while parsing — has no definition.
func (g *Grammar) Parse(input string, name string) (MatchResult, error) {
	if name == "" {
		name = g.start
	}
	runes := []rune(input)
	state := newEvalState(runes, g.rules, g.log)

	node, ok := state.evalRule(name, 0)
	if state.unknownRule != "" {
		return MatchResult{}, &UnknownRuleError{Name: state.unknownRule}
	}
	if !ok {
		return MatchResult{Ok: false, Furthest: state.furthest}, nil
	}
	return MatchResult{Ok: true, Start: node.start, End: node.end, Furthest: state.furthest}, nil
}
