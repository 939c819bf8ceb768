package peg

import "github.com/sirupsen/logrus"

// matchNode records that a named rule matched a span of the input. Nodes
// are created only at rule boundaries (Reference entries), never for
// intermediate sub-expressions, mirroring spec.md's packrat memoization
// granularity and pagen's MatchTree/rule_name tagging. The public façade
// only ever surfaces a node's (start, end) span; the tree itself is an
// internal tool the grammar builder uses to walk a parsed grammar's
// source text (see builder.go) and is never returned from Parse.
type matchNode struct {
	rule     string
	start    int
	end      int
	children []*matchNode
}

type cacheKey struct {
	rule string
	pos  int
}

type cacheEntry struct {
	node *matchNode
	ok   bool
}

// evalState is the scratch space for one top-level recognition: the
// packrat cache, the furthest-position counter, and (if set) the name of
// the first unresolved rule reference encountered. It is discarded when
// the top-level call returns, per spec.md §5's resource model.
type evalState struct {
	input        []rune
	rules        map[string]*Expr
	cache        map[cacheKey]*cacheEntry
	furthest     int
	unknownRule  string
	log          *logrus.Logger
}

func newEvalState(input []rune, rules map[string]*Expr, log *logrus.Logger) *evalState {
	return &evalState{
		input: input,
		rules: rules,
		cache: make(map[cacheKey]*cacheEntry),
		log:   log,
	}
}

func (s *evalState) touch(pos int) {
	if pos > s.furthest {
		s.furthest = pos
	}
}

// testAt touches the furthest counter for idx and reports the rune there,
// or ok=false if idx is out of bounds. Every literal/class/dot comparison
// goes through this so furthest tracking stays centralized.
func (s *evalState) testAt(idx int) (r rune, ok bool) {
	s.touch(idx)
	if idx < 0 || idx >= len(s.input) {
		return 0, false
	}
	return s.input[idx], true
}

// evalRule evaluates the named rule at pos, applying packrat memoization
// and the left-recursion guard: the cache entry for (name, pos) is seeded
// with failure before the rule's expression is evaluated, so a rule that
// re-enters itself at the same position sees Mismatch and fails that
// branch instead of recursing forever.
func (s *evalState) evalRule(name string, pos int) (*matchNode, bool) {
	if s.unknownRule != "" {
		return nil, false
	}
	s.touch(pos)
	key := cacheKey{name, pos}
	if entry, found := s.cache[key]; found {
		return entry.node, entry.ok
	}

	expr, exists := s.rules[name]
	if !exists {
		s.unknownRule = name
		s.cache[key] = &cacheEntry{ok: false}
		return nil, false
	}

	s.cache[key] = &cacheEntry{ok: false}
	if s.log != nil {
		s.log.WithFields(logrus.Fields{"rule": name, "pos": pos}).Trace("rule enter")
	}

	children, end, ok := s.evalExpr(expr, pos)

	if s.log != nil {
		s.log.WithFields(logrus.Fields{"rule": name, "pos": pos, "ok": ok}).Trace("rule exit")
	}

	if !ok {
		return nil, false
	}
	node := &matchNode{rule: name, start: pos, end: end, children: children}
	s.cache[key] = &cacheEntry{node: node, ok: true}
	return node, true
}

// evalExpr evaluates expr at pos. It returns the rule-boundary child
// nodes produced while matching (for propagation up to the nearest
// enclosing Reference), the position reached, and whether it matched.
// Implements the semantics table in spec.md §4.1 exactly.
func (s *evalState) evalExpr(expr *Expr, pos int) ([]*matchNode, int, bool) {
	if s.unknownRule != "" {
		return nil, pos, false
	}

	switch expr.Kind {
	case KindLiteral:
		return s.evalLiteral(expr, pos)
	case KindClass:
		r, ok := s.testAt(pos)
		if !ok || !expr.Class.Contains(r) {
			return nil, pos, false
		}
		return nil, pos + 1, true
	case KindDot:
		_, ok := s.testAt(pos)
		if !ok {
			return nil, pos, false
		}
		return nil, pos + 1, true
	case KindRef:
		node, ok := s.evalRule(expr.Name, pos)
		if !ok {
			return nil, pos, false
		}
		return []*matchNode{node}, node.end, true
	case KindSequence:
		return s.evalSequence(expr, pos)
	case KindChoice:
		return s.evalChoice(expr, pos)
	case KindOptional:
		if children, end, ok := s.evalExpr(expr.Sub, pos); ok {
			return children, end, true
		}
		return nil, pos, true
	case KindStar:
		return s.evalRepeat(expr.Sub, pos, 0)
	case KindPlus:
		return s.evalRepeat(expr.Sub, pos, 1)
	case KindAnd:
		_, _, ok := s.evalExpr(expr.Sub, pos)
		return nil, pos, ok
	case KindNot:
		_, _, ok := s.evalExpr(expr.Sub, pos)
		return nil, pos, !ok
	default:
		panic("peg: unhandled expression kind")
	}
}

func (s *evalState) evalLiteral(expr *Expr, pos int) ([]*matchNode, int, bool) {
	lit := expr.literalRunes
	for i, want := range lit {
		got, ok := s.testAt(pos + i)
		if !ok || got != want {
			return nil, pos, false
		}
	}
	return nil, pos + len(lit), true
}

func (s *evalState) evalSequence(expr *Expr, pos int) ([]*matchNode, int, bool) {
	var all []*matchNode
	cur := pos
	for _, sub := range expr.Subexprs {
		children, end, ok := s.evalExpr(sub, cur)
		if !ok {
			return nil, pos, false
		}
		all = append(all, children...)
		cur = end
	}
	return all, cur, true
}

func (s *evalState) evalChoice(expr *Expr, pos int) ([]*matchNode, int, bool) {
	for _, sub := range expr.Subexprs {
		if children, end, ok := s.evalExpr(sub, pos); ok {
			return children, end, true
		}
	}
	return nil, pos, false
}

// evalRepeat matches sub greedily, zero-or-more (minCount=0, Star) or
// one-or-more (minCount=1, Plus) times. Per spec.md's loop guard: once an
// iteration matches without advancing the position, the repetition stops
// rather than looping forever on an empty match.
func (s *evalState) evalRepeat(sub *Expr, pos, minCount int) ([]*matchNode, int, bool) {
	var all []*matchNode
	cur := pos
	count := 0
	for {
		children, end, ok := s.evalExpr(sub, cur)
		if !ok {
			break
		}
		all = append(all, children...)
		count++
		if end == cur {
			break
		}
		cur = end
	}
	if count < minCount {
		return nil, pos, false
	}
	return all, cur, true
}
