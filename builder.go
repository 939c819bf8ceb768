package peg

import "fmt"

// ParseGrammar parses PEG grammar source text into a Grammar. It runs the
// recognizer against the hard-coded meta-grammar (metagrammar.go) under
// starting rule "Grammar", then walks the resulting rule-boundary tree to
// build Expr/Grammar values. Grounded on pagen's TreeToGrammarVisitor
// (_pagen/parsing.py), which performs the identical two-step "parse then
// translate the concrete tree" process over the identical grammar shape.
func ParseGrammar(text string) (*Grammar, error) {
	input := []rune(text)
	state := newEvalState(input, metaRules(), nil)

	node, ok := state.evalRule("Grammar", 0)
	if state.unknownRule != "" {
		// Cannot happen: metaRules() is a closed, internally consistent
		// rule set. A stray unknown-rule would be a bug in metaRules.
		return nil, &GrammarSyntaxError{Pos: state.furthest, Message: fmt.Sprintf("internal meta-grammar error: unknown rule %q", state.unknownRule)}
	}
	if !ok || node.end != len(input) {
		return nil, &GrammarSyntaxError{Pos: state.furthest, Message: "input is not a valid PEG grammar"}
	}

	b := &builder{input: input}
	rules := b.buildGrammar(node)
	if b.err != nil {
		return nil, b.err
	}
	return NewGrammar(rules)
}

type builder struct {
	input []rune
	err   error
}

func (b *builder) fail(pos int, format string, args ...any) {
	if b.err == nil {
		b.err = &GrammarSyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
	}
}

// buildGrammar walks a "Grammar" node's children: a Spacing node followed
// by one or more "Definition" nodes and a trailing EndOfFile node.
func (b *builder) buildGrammar(grammarNode *matchNode) []Rule {
	var rules []Rule
	for _, child := range grammarNode.children {
		if child.rule != "Definition" {
			continue
		}
		rules = append(rules, b.buildDefinition(child))
		if b.err != nil {
			return nil
		}
	}
	return rules
}

// buildDefinition walks a "Definition" node: [Identifier, LEFTARROW,
// Expression] children.
func (b *builder) buildDefinition(n *matchNode) Rule {
	identNode := n.children[0]
	exprNode := n.children[2]
	name := b.identifierName(identNode)
	expr := b.buildExpression(exprNode)
	return Rule{Name: name, Expr: expr}
}

// identifierName extracts an identifier's text, excluding the trailing
// Spacing its rule captures. Identifier's last child is always the
// Spacing node (possibly empty), since Identifier <- IdentStart
// IdentCont* Spacing and Spacing always matches.
func (b *builder) identifierName(n *matchNode) string {
	end := n.end
	if len(n.children) > 0 {
		last := n.children[len(n.children)-1]
		if last.rule == "Spacing" {
			end = last.start
		}
	}
	return string(b.input[n.start:end])
}

// buildExpression walks an "Expression" node: a Sequence node followed by
// zero or more (SLASH, Sequence) pairs, i.e. every "Sequence"-ruled child
// is one ordered alternative.
func (b *builder) buildExpression(n *matchNode) *Expr {
	var alts []*Expr
	for _, child := range n.children {
		if child.rule != "Sequence" {
			continue
		}
		alts = append(alts, b.buildSequence(child))
		if b.err != nil {
			return nil
		}
	}
	if len(alts) == 0 {
		b.fail(n.start, "expression has no alternatives")
		return nil
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return NewChoice(alts...)
}

// buildSequence walks a "Sequence" node: zero or more "Prefix" children.
// Per spec.md §4.2, a Sequence of zero prefixes matches the empty string
// (the PEG idiom for "always succeeds"); a Sequence of exactly one
// prefix simplifies to that prefix, both handled by NewSequence/NewLiteral.
func (b *builder) buildSequence(n *matchNode) *Expr {
	var prefixes []*Expr
	for _, child := range n.children {
		if child.rule != "Prefix" {
			continue
		}
		prefixes = append(prefixes, b.buildPrefix(child))
		if b.err != nil {
			return nil
		}
	}
	if len(prefixes) == 0 {
		return NewLiteral("")
	}
	return NewSequence(prefixes...)
}

// buildPrefix walks a "Prefix" node: an optional AND/NOT token node
// followed by a "Suffix" node.
func (b *builder) buildPrefix(n *matchNode) *Expr {
	var op string
	var suffixNode *matchNode
	for _, child := range n.children {
		switch child.rule {
		case "AND":
			op = "&"
		case "NOT":
			op = "!"
		case "Suffix":
			suffixNode = child
		}
	}
	suffix := b.buildSuffix(suffixNode)
	switch op {
	case "&":
		return NewAnd(suffix)
	case "!":
		return NewNot(suffix)
	default:
		return suffix
	}
}

// buildSuffix walks a "Suffix" node: a "Primary" node followed by an
// optional QUESTION/STAR/PLUS token node.
func (b *builder) buildSuffix(n *matchNode) *Expr {
	var primaryNode *matchNode
	var op string
	for _, child := range n.children {
		switch child.rule {
		case "Primary":
			primaryNode = child
		case "QUESTION":
			op = "?"
		case "STAR":
			op = "*"
		case "PLUS":
			op = "+"
		}
	}
	primary := b.buildPrimary(primaryNode)
	switch op {
	case "?":
		return NewOptional(primary)
	case "*":
		return NewStar(primary)
	case "+":
		return NewPlus(primary)
	default:
		return primary
	}
}

// buildPrimary walks a "Primary" node. Its shape tells us which
// alternative matched: an Identifier child means a bare rule reference;
// an Expression child means a parenthesized group; a Literal/Class child
// means that literal value; otherwise (only an OPEN/CLOSE/DOT token
// child, none of which this loop matches) it matched the bare DOT token.
func (b *builder) buildPrimary(n *matchNode) *Expr {
	for _, child := range n.children {
		switch child.rule {
		case "Identifier":
			return NewRef(b.identifierName(child))
		case "Expression":
			return b.buildExpression(child)
		case "Literal":
			return b.buildLiteral(child)
		case "Class":
			return b.buildClass(child)
		}
	}
	return NewDot()
}

// buildLiteral walks a "Literal" node: zero or more "Char" children
// followed by a trailing "Spacing" child.
func (b *builder) buildLiteral(n *matchNode) *Expr {
	var sb []rune
	for _, child := range n.children {
		if child.rule != "Char" {
			continue
		}
		sb = append(sb, b.decodeChar(child))
	}
	return NewLiteral(string(sb))
}

// buildClass walks a "Class" node: zero or more "Range" children followed
// by a trailing "Spacing" child. Each Range is either a single "Char"
// (single-point range) or two "Char"s (an inclusive range).
func (b *builder) buildClass(n *matchNode) *Expr {
	var ranges []CharRange
	for _, child := range n.children {
		if child.rule != "Range" {
			continue
		}
		ranges = append(ranges, b.buildRange(child))
	}
	return NewClass(NewCharClass(ranges))
}

func (b *builder) buildRange(n *matchNode) CharRange {
	var chars []*matchNode
	for _, child := range n.children {
		if child.rule == "Char" {
			chars = append(chars, child)
		}
	}
	switch len(chars) {
	case 1:
		r := b.decodeChar(chars[0])
		return CharRange{Lo: r, Hi: r}
	case 2:
		lo := b.decodeChar(chars[0])
		hi := b.decodeChar(chars[1])
		if hi < lo {
			b.fail(n.start, "character range %c-%c is backwards", lo, hi)
		}
		return CharRange{Lo: lo, Hi: hi}
	default:
		b.fail(n.start, "malformed character range")
		return CharRange{}
	}
}

// decodeChar decodes one "Char" node's span per spec.md §4.2's escape
// table: \n \r \t \' \" \[ \] \\, 2- or 3-digit octal, or (absent a
// leading backslash) the literal code point itself. Char's own span
// brackets the escape exactly, so no lookahead beyond it is needed.
func (b *builder) decodeChar(n *matchNode) rune {
	s := b.input[n.start:n.end]
	if s[0] != '\\' {
		return s[0]
	}
	if len(s) == 2 {
		switch s[1] {
		case 'n':
			return '\n'
		case 'r':
			return '\r'
		case 't':
			return '\t'
		case '\'':
			return '\''
		case '"':
			return '"'
		case '[':
			return '['
		case ']':
			return ']'
		case '\\':
			return '\\'
		default:
			return octalValue(s[1:])
		}
	}
	// 3 or 4 runes: '\' followed by 2 or 3 octal digits.
	return octalValue(s[1:])
}

func octalValue(digits []rune) rune {
	var v rune
	for _, d := range digits {
		v = v*8 + (d - '0')
	}
	return v
}
