package peg

// metaRules returns the hard-coded grammar that describes PEG grammar
// source text itself: Ford's canonical self-describing PEG grammar, minus
// the Action node (semantic actions are out of scope). Grounded on the
// rule list named in spec.md §4.2 and pagen's PARSER_GRAMMAR_BUILDER
// (parsing.py), which builds the identical shape from the identical
// published grammar, just with different rule names in a couple of
// places (its FILLER is this grammar's Spacing).
//
// ParseGrammar (builder.go) runs the ordinary recognizer against this
// rule table to produce a matchNode tree over the grammar source text,
// then walks that tree to build a *Grammar.
func metaRules() map[string]*Expr {
	cc := func(ranges ...CharRange) *CharClass { return NewCharClass(ranges) }

	// Spacing <- (Space / Comment)*
	// Space <- ' ' / '\t' / EndOfLine
	// EndOfLine <- '\r\n' / '\n' / '\r'
	// Comment <- '#' (!EndOfLine .)* EndOfLine
	endOfLine := NewChoice(NewLiteral("\r\n"), NewLiteral("\n"), NewLiteral("\r"))
	space := NewChoice(NewLiteral(" "), NewLiteral("\t"), NewRef("EndOfLine"))
	comment := NewSequence(
		NewLiteral("#"),
		NewStar(NewSequence(NewNot(NewRef("EndOfLine")), NewDot())),
		NewRef("EndOfLine"),
	)
	spacing := NewStar(NewChoice(NewRef("Space"), NewRef("Comment")))

	// IdentStart <- [a-zA-Z_]
	// IdentCont  <- IdentStart / [0-9]
	// Identifier <- IdentStart IdentCont* Spacing
	identStart := NewClass(cc(CharRange{'a', 'z'}, CharRange{'A', 'Z'}, CharRange{'_', '_'}))
	identCont := NewChoice(NewRef("IdentStart"), NewClass(cc(CharRange{'0', '9'})))
	identifier := NewSequence(NewRef("IdentStart"), NewStar(NewRef("IdentCont")), NewRef("Spacing"))

	// Char <- '\\' [nrt'"\[\]\\]
	//       / '\\' [0-2][0-7][0-7]
	//       / '\\' [0-7][0-7]?
	//       / !'\\' .
	char := NewChoice(
		NewSequence(NewLiteral(`\`), NewClass(cc(
			CharRange{'n', 'n'}, CharRange{'r', 'r'}, CharRange{'t', 't'},
			CharRange{'\'', '\''}, CharRange{'"', '"'},
			CharRange{'[', '['}, CharRange{']', ']'}, CharRange{'\\', '\\'},
		))),
		NewSequence(
			NewLiteral(`\`),
			NewClass(cc(CharRange{'0', '2'})),
			NewClass(cc(CharRange{'0', '7'})),
			NewClass(cc(CharRange{'0', '7'})),
		),
		NewSequence(
			NewLiteral(`\`),
			NewClass(cc(CharRange{'0', '7'})),
			NewOptional(NewClass(cc(CharRange{'0', '7'}))),
		),
		NewSequence(NewNot(NewLiteral(`\`)), NewDot()),
	)

	// Range <- Char '-' Char / Char
	// Class <- '[' (!']' Range)* ']' Spacing
	//
	// Ford's canonical grammar also accepts a leading '^' to negate a
	// class; this engine's character class model (spec.md §3) has no
	// complement operation, so '^' is deliberately left unrecognized
	// here rather than accepted and silently ignored.
	rangeExpr := NewChoice(
		NewSequence(NewRef("Char"), NewLiteral("-"), NewRef("Char")),
		NewRef("Char"),
	)
	class := NewSequence(
		NewLiteral("["),
		NewStar(NewSequence(NewNot(NewLiteral("]")), NewRef("Range"))),
		NewLiteral("]"),
		NewRef("Spacing"),
	)

	// Literal <- ['] (!['] Char)* ['] Spacing
	//          / ["] (!["] Char)* ["] Spacing
	literal := NewChoice(
		NewSequence(NewLiteral("'"), NewStar(NewSequence(NewNot(NewLiteral("'")), NewRef("Char"))), NewLiteral("'"), NewRef("Spacing")),
		NewSequence(NewLiteral(`"`), NewStar(NewSequence(NewNot(NewLiteral(`"`)), NewRef("Char"))), NewLiteral(`"`), NewRef("Spacing")),
	)

	// token rules
	leftArrow := NewSequence(NewLiteral("<-"), NewRef("Spacing"))
	slash := NewSequence(NewLiteral("/"), NewRef("Spacing"))
	and := NewSequence(NewLiteral("&"), NewRef("Spacing"))
	not := NewSequence(NewLiteral("!"), NewRef("Spacing"))
	question := NewSequence(NewLiteral("?"), NewRef("Spacing"))
	star := NewSequence(NewLiteral("*"), NewRef("Spacing"))
	plus := NewSequence(NewLiteral("+"), NewRef("Spacing"))
	open := NewSequence(NewLiteral("("), NewRef("Spacing"))
	close := NewSequence(NewLiteral(")"), NewRef("Spacing"))
	dot := NewSequence(NewLiteral("."), NewRef("Spacing"))

	// Primary <- Identifier !LEFTARROW
	//          / OPEN Expression CLOSE
	//          / Literal / Class / DOT
	primary := NewChoice(
		NewSequence(NewRef("Identifier"), NewNot(NewRef("LEFTARROW"))),
		NewSequence(NewRef("OPEN"), NewRef("Expression"), NewRef("CLOSE")),
		NewRef("Literal"),
		NewRef("Class"),
		NewRef("DOT"),
	)

	// Suffix <- Primary (QUESTION / STAR / PLUS)?
	suffix := NewSequence(NewRef("Primary"), NewOptional(NewChoice(NewRef("QUESTION"), NewRef("STAR"), NewRef("PLUS"))))

	// Prefix <- (AND / NOT)? Suffix
	prefix := NewSequence(NewOptional(NewChoice(NewRef("AND"), NewRef("NOT"))), NewRef("Suffix"))

	// Sequence <- Prefix*
	sequence := NewStar(NewRef("Prefix"))

	// Expression <- Sequence (SLASH Sequence)*
	expression := NewSequence(NewRef("Sequence"), NewStar(NewSequence(NewRef("SLASH"), NewRef("Sequence"))))

	// Definition <- Identifier LEFTARROW Expression
	definition := NewSequence(NewRef("Identifier"), NewRef("LEFTARROW"), NewRef("Expression"))

	// Grammar <- Spacing Definition+ EndOfFile
	grammar := NewSequence(NewRef("Spacing"), NewPlus(NewRef("Definition")), NewRef("EndOfFile"))

	// EndOfFile <- !.
	endOfFile := NewNot(NewDot())

	return map[string]*Expr{
		"Grammar":    grammar,
		"Definition": definition,
		"Expression": expression,
		"Sequence":   sequence,
		"Prefix":     prefix,
		"Suffix":     suffix,
		"Primary":    primary,

		"Identifier": identifier,
		"IdentStart": identStart,
		"IdentCont":  identCont,

		"Literal": literal,
		"Class":   class,
		"Range":   rangeExpr,
		"Char":    char,

		"LEFTARROW": leftArrow,
		"SLASH":     slash,
		"AND":       and,
		"NOT":       not,
		"QUESTION":  question,
		"STAR":      star,
		"PLUS":      plus,
		"OPEN":      open,
		"CLOSE":     close,
		"DOT":       dot,

		"Spacing":   spacing,
		"Comment":   comment,
		"Space":     space,
		"EndOfLine": endOfLine,
		"EndOfFile": endOfFile,
	}
}
