package peg

import "fmt"

// Kind tags the variant a *Expr holds. Expressions are represented as a
// single tagged struct rather than an interface per case, following the
// teacher's grammarNode shape: one struct, dispatched on a kind field.
type Kind int

const (
	KindLiteral Kind = iota
	KindClass
	KindDot
	KindRef
	KindSequence
	KindChoice
	KindOptional
	KindStar
	KindPlus
	KindAnd
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindClass:
		return "Class"
	case KindDot:
		return "Dot"
	case KindRef:
		return "Ref"
	case KindSequence:
		return "Sequence"
	case KindChoice:
		return "Choice"
	case KindOptional:
		return "Optional"
	case KindStar:
		return "Star"
	case KindPlus:
		return "Plus"
	case KindAnd:
		return "And"
	case KindNot:
		return "Not"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Expr is a single PEG expression node. Only the fields relevant to Kind
// are populated; the rest stay zero.
type Expr struct {
	Kind    Kind
	Literal string     // KindLiteral
	Class   *CharClass // KindClass
	Name    string     // KindRef
	Sub     *Expr      // KindOptional, KindStar, KindPlus, KindAnd, KindNot
	Subexprs []*Expr   // KindSequence (n>=1), KindChoice (n>=2)

	literalRunes []rune // cached decoding of Literal, filled by NewLiteral
}

// NewLiteral builds a Literal expression matching s exactly.
func NewLiteral(s string) *Expr {
	return &Expr{Kind: KindLiteral, Literal: s, literalRunes: []rune(s)}
}

// NewClass builds a Class expression matching any code point in c.
func NewClass(c *CharClass) *Expr {
	return &Expr{Kind: KindClass, Class: c}
}

// NewDot builds an expression matching any single code point.
func NewDot() *Expr {
	return &Expr{Kind: KindDot}
}

// NewRef builds a Reference expression to the rule named name.
func NewRef(name string) *Expr {
	return &Expr{Kind: KindRef, Name: name}
}

// NewSequence builds a Sequence of exprs, which must be non-empty.
func NewSequence(exprs ...*Expr) *Expr {
	if len(exprs) == 0 {
		panic("peg: Sequence requires at least one sub-expression")
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &Expr{Kind: KindSequence, Subexprs: exprs}
}

// NewChoice builds an ordered Choice of exprs, which must have at least
// two alternatives.
func NewChoice(exprs ...*Expr) *Expr {
	if len(exprs) < 2 {
		panic("peg: Choice requires at least two alternatives")
	}
	return &Expr{Kind: KindChoice, Subexprs: exprs}
}

// NewOptional builds an Optional(e) expression: always succeeds.
func NewOptional(e *Expr) *Expr {
	return &Expr{Kind: KindOptional, Sub: e}
}

// NewStar builds a Star(e) expression: zero or more, greedy.
func NewStar(e *Expr) *Expr {
	return &Expr{Kind: KindStar, Sub: e}
}

// NewPlus builds a Plus(e) expression: one or more, greedy.
func NewPlus(e *Expr) *Expr {
	return &Expr{Kind: KindPlus, Sub: e}
}

// NewAnd builds an AndPredicate(e) expression: succeeds without consuming.
func NewAnd(e *Expr) *Expr {
	return &Expr{Kind: KindAnd, Sub: e}
}

// NewNot builds a NotPredicate(e) expression: succeeds without consuming.
func NewNot(e *Expr) *Expr {
	return &Expr{Kind: KindNot, Sub: e}
}

func (e *Expr) String() string {
	switch e.Kind {
	case KindLiteral:
		return fmt.Sprintf("%q", e.Literal)
	case KindClass:
		return e.Class.String()
	case KindDot:
		return "."
	case KindRef:
		return e.Name
	case KindSequence:
		return joinExprs(e.Subexprs, " ")
	case KindChoice:
		return joinExprs(e.Subexprs, " / ")
	case KindOptional:
		return e.Sub.String() + "?"
	case KindStar:
		return e.Sub.String() + "*"
	case KindPlus:
		return e.Sub.String() + "+"
	case KindAnd:
		return "&" + e.Sub.String()
	case KindNot:
		return "!" + e.Sub.String()
	default:
		return "<invalid>"
	}
}

func joinExprs(exprs []*Expr, sep string) string {
	s := ""
	for i, e := range exprs {
		if i > 0 {
			s += sep
		}
		s += e.String()
	}
	return s
}
