package jsonpath

import (
	"errors"
	"unicode/utf8"

	"github.com/jacoelho/jpq/internal/document"
	"github.com/jacoelho/jpq/internal/stack"
)

var errNilQuery = errors.New("jsonpath: nil query")

type node struct {
	value any
	loc   *location
	depth int
}

type regexKey struct {
	pattern  string
	anchored bool
}

type compiledRegex struct {
	matcher Matcher
	err     error
}

type evaluator struct {
	opts        Options
	root        node
	engine      RegexEngine
	guard       regexGuard
	regexes     map[regexKey]compiledRegex
	visited     int
	filterDepth int
	halted      bool
	limit       *LimitError
}

// Evaluate runs q against doc. A tripped cap yields a truncated Result,
// or a *LimitError when opts.ThrowOnError is set.
func Evaluate(q *Query, doc any, opts Options) (*Result, error) {
	if q == nil {
		return nil, errNilQuery
	}

	ev := newEvaluator(doc, opts)
	nodes := ev.query(q, ev.root)

	res := &Result{Visited: ev.visited}
	if ev.limit != nil {
		if opts.Logger != nil {
			opts.Logger.Debug("jsonpath evaluation cut short",
				"limit", ev.limit.Limit.Error(),
				"max", ev.limit.Max,
				"path", ev.limit.Path,
				"visited", ev.visited,
			)
		}
		if opts.ThrowOnError {
			return nil, ev.limit
		}
		res.Truncated = true
		res.Limit = ev.limit
	}

	res.Nodes = make(NodeList, len(nodes))
	for i, n := range nodes {
		res.Nodes[i] = Node{Value: n.value, Path: n.loc.path()}
	}
	return res, nil
}

func newEvaluator(doc any, opts Options) *evaluator {
	engine := opts.Regex
	if engine == nil {
		engine = RE2{}
	}
	return &evaluator{
		opts:   opts,
		root:   node{value: doc},
		engine: engine,
		guard: regexGuard{
			maxPattern: opts.MaxRegexPatternLength,
			maxInput:   opts.MaxRegexInputLength,
			enabled:    opts.RejectUnsafeRegex,
		},
	}
}

// trip records the first cap that cut evaluation short. In throw mode any
// trip stops evaluation.
func (ev *evaluator) trip(limit error, capped int, loc *location) {
	if ev.limit == nil {
		ev.limit = &LimitError{Limit: limit, Max: capped, Path: loc.path()}
	}
	if ev.opts.ThrowOnError {
		ev.halted = true
	}
}

// visit admits a child of parent into the traversal, enforcing the node and
// depth caps.
func (ev *evaluator) visit(parent node, value any, loc *location) (node, bool) {
	if ev.halted {
		return node{}, false
	}
	if capped := ev.opts.MaxNodesVisited; capped > 0 && ev.visited >= capped {
		ev.trip(ErrNodeLimit, capped, loc)
		ev.halted = true
		return node{}, false
	}
	depth := parent.depth + 1
	if capped := ev.opts.MaxDepth; capped > 0 && depth+ev.filterDepth > capped {
		ev.trip(ErrDepthLimit, capped, loc)
		return node{}, false
	}
	ev.visited++
	return node{value: value, loc: loc, depth: depth}, true
}

// start binds a query root: $ to the document, @ to the current node.
func (ev *evaluator) start(root RootKind, current node) node {
	if root == RootCurrent {
		return node{value: current.value, loc: current.loc}
	}
	return ev.root
}

func (ev *evaluator) query(q *Query, from node) []node {
	working := []node{ev.start(q.Root, from)}
	for i, seg := range q.Segments {
		if len(working) == 0 {
			return nil
		}
		if seg.Kind == DescendantSegment {
			working = ev.descendants(seg.Selectors, working)
		} else {
			working = ev.children(seg.Selectors, working)
		}
		// only nodes of the final segment form a partial result
		if ev.halted && i < len(q.Segments)-1 {
			return nil
		}
	}
	return working
}

func (ev *evaluator) children(sels []Selector, input []node) []node {
	var out []node
	for _, n := range input {
		for _, sel := range sels {
			out = ev.selectFrom(sel, n, out)
		}
	}
	return out
}

// descendants applies sels to every node of each input subtree, in pre-order.
func (ev *evaluator) descendants(sels []Selector, input []node) []node {
	var out []node
	pending := stack.New[node]()
	for _, n := range input {
		pending.Push(n)
		for !pending.IsEmpty() && !ev.halted {
			cur, _ := pending.Pop()
			for _, sel := range sels {
				out = ev.selectFrom(sel, cur, out)
			}
			pending.PushReverse(ev.allChildren(cur, nil)...)
		}
	}
	return out
}

// allChildren visits every element or member of n in order.
func (ev *evaluator) allChildren(n node, out []node) []node {
	switch v := n.value.(type) {
	case []any:
		for i, item := range v {
			child, ok := ev.visit(n, item, n.loc.element(i))
			if ev.halted {
				return out
			}
			if ok {
				out = append(out, child)
			}
		}
	default:
		members, _ := document.Members(v)
		for _, m := range members {
			child, ok := ev.visit(n, m.Value, n.loc.member(m.Key))
			if ev.halted {
				return out
			}
			if ok {
				out = append(out, child)
			}
		}
	}
	return out
}

func (ev *evaluator) selectFrom(sel Selector, n node, out []node) []node {
	switch s := sel.(type) {
	case NameSelector:
		if v, ok := document.Lookup(n.value, s.Name); ok {
			if child, ok := ev.visit(n, v, n.loc.member(s.Name)); ok {
				out = append(out, child)
			}
		}
	case WildcardSelector:
		out = ev.allChildren(n, out)
	case IndexSelector:
		arr, ok := n.value.([]any)
		if !ok {
			break
		}
		i := s.Index
		if i < 0 {
			i += int64(len(arr))
		}
		if i >= 0 && i < int64(len(arr)) {
			if child, ok := ev.visit(n, arr[i], n.loc.element(int(i))); ok {
				out = append(out, child)
			}
		}
	case SliceSelector:
		arr, ok := n.value.([]any)
		if !ok {
			break
		}
		for _, i := range sliceIndices(s, len(arr)) {
			child, ok := ev.visit(n, arr[i], n.loc.element(i))
			if ev.halted {
				break
			}
			if ok {
				out = append(out, child)
			}
		}
	case FilterSelector:
		// candidates sit at the filter's own level; only its sub-queries nest
		candidates := ev.allChildren(n, nil)
		ev.filterDepth++
		for _, candidate := range candidates {
			if ev.halted {
				break
			}
			if ev.logical(s.Expr, candidate) {
				out = append(out, candidate)
			}
		}
		ev.filterDepth--
	}
	return out
}

// sliceIndices returns the indices selected by s on an array of length n.
func sliceIndices(s SliceSelector, n int) []int {
	step := int64(1)
	if s.HasStep {
		step = s.Step
	}
	if step == 0 || n == 0 {
		return nil
	}

	length := int64(n)
	normalize := func(i int64) int64 {
		if i < 0 {
			return length + i
		}
		return i
	}

	var indices []int
	if step > 0 {
		start, end := int64(0), length
		if s.HasStart {
			start = normalize(s.Start)
		}
		if s.HasEnd {
			end = normalize(s.End)
		}
		lower := min(max(start, 0), length)
		upper := min(max(end, 0), length)
		for i := lower; i < upper; i += step {
			indices = append(indices, int(i))
		}
		return indices
	}

	start, end := length-1, -length-1
	if s.HasStart {
		start = normalize(s.Start)
	}
	if s.HasEnd {
		end = normalize(s.End)
	}
	upper := min(max(start, -1), length-1)
	lower := min(max(end, -1), length-1)
	for i := upper; lower < i; i += step {
		indices = append(indices, int(i))
	}
	return indices
}

func (ev *evaluator) logical(expr LogicalExpr, current node) bool {
	switch e := expr.(type) {
	case OrExpr:
		for _, op := range e.Operands {
			if ev.logical(op, current) {
				return true
			}
		}
		return false
	case AndExpr:
		for _, op := range e.Operands {
			if !ev.logical(op, current) {
				return false
			}
		}
		return true
	case NotExpr:
		return !ev.logical(e.Operand, current)
	case ComparisonExpr:
		return compare(e.Op, ev.comparable(e.Left, current), ev.comparable(e.Right, current))
	case TestExpr:
		return len(ev.query(e.Query, current)) > 0
	case FunctionExpr:
		switch r := ev.call(e, current).(type) {
		case bool:
			return r
		case []node:
			return len(r) > 0
		default:
			return false
		}
	default:
		return false
	}
}

func (ev *evaluator) comparable(c Comparable, current node) any {
	switch e := c.(type) {
	case Literal:
		return e.Value
	case SingularQuery:
		return ev.singular(e, current)
	case FunctionExpr:
		return ev.call(e, current)
	default:
		return nothing
	}
}

// singular resolves sq to its value, or nothing when a step is absent.
func (ev *evaluator) singular(sq SingularQuery, current node) any {
	n, ok := ev.singularNode(sq, current)
	if !ok {
		return nothing
	}
	return n.value
}

func (ev *evaluator) singularNode(sq SingularQuery, current node) (node, bool) {
	n := ev.start(sq.Root, current)
	for _, step := range sq.Steps {
		var (
			value any
			loc   *location
			found bool
		)
		if step.IsIndex {
			if arr, ok := n.value.([]any); ok {
				i := step.Index
				if i < 0 {
					i += int64(len(arr))
				}
				if i >= 0 && i < int64(len(arr)) {
					value, loc, found = arr[i], n.loc.element(int(i)), true
				}
			}
		} else {
			value, found = document.Lookup(n.value, step.Name)
			loc = n.loc.member(step.Name)
		}
		if !found {
			return node{}, false
		}

		var ok bool
		if n, ok = ev.visit(n, value, loc); !ok {
			return node{}, false
		}
	}
	return n, true
}

// call evaluates a function. Value results are document values or nothing,
// logical results are bool.
func (ev *evaluator) call(fn FunctionExpr, current node) any {
	switch fn.Func {
	case FuncLength:
		switch v := ev.argValue(fn.Args[0], current).(type) {
		case string:
			return int64(utf8.RuneCountInString(v))
		case nothingType:
			return nothing
		default:
			if _, isArray := v.([]any); isArray || document.IsObject(v) {
				n, _ := document.Len(v)
				return int64(n)
			}
			return nothing
		}
	case FuncCount:
		return int64(len(ev.argNodes(fn.Args[0], current)))
	case FuncMatch, FuncSearch:
		input := ev.argValue(fn.Args[0], current)
		pattern := ev.argValue(fn.Args[1], current)
		return ev.regexMatch(fn.Func == FuncMatch, input, pattern, current)
	case FuncValue:
		nodes := ev.argNodes(fn.Args[0], current)
		if len(nodes) != 1 {
			return nothing
		}
		return nodes[0].value
	default:
		return nothing
	}
}

func (ev *evaluator) argValue(arg FunctionArg, current node) any {
	switch a := arg.(type) {
	case Literal:
		return a.Value
	case SingularQuery:
		return ev.singular(a, current)
	case FunctionExpr:
		return ev.call(a, current)
	case *Query:
		nodes := ev.query(a, current)
		if len(nodes) != 1 {
			return nothing
		}
		return nodes[0].value
	default:
		return nothing
	}
}

func (ev *evaluator) argNodes(arg FunctionArg, current node) []node {
	switch a := arg.(type) {
	case *Query:
		return ev.query(a, current)
	case SingularQuery:
		if n, ok := ev.singularNode(a, current); ok {
			return []node{n}
		}
		return nil
	case FunctionExpr:
		nodes, _ := ev.call(a, current).([]node)
		return nodes
	default:
		return nil
	}
}

// regexMatch implements match (anchored) and search. Non-string operands,
// invalid patterns and refused patterns or inputs are false.
func (ev *evaluator) regexMatch(anchored bool, input, pattern any, current node) bool {
	s, ok := input.(string)
	if !ok {
		return false
	}
	p, ok := pattern.(string)
	if !ok {
		return false
	}

	if err := ev.guard.checkInput(s); err != nil {
		ev.trip(ErrUnsafeRegex, ev.guard.maxInput, current.loc)
		return false
	}

	m, err := ev.compile(p, anchored)
	if err != nil {
		if errors.Is(err, ErrUnsafeRegex) {
			ev.trip(ErrUnsafeRegex, ev.guard.maxPattern, current.loc)
		}
		return false
	}
	return m.MatchString(s)
}

func (ev *evaluator) compile(pattern string, anchored bool) (Matcher, error) {
	key := regexKey{pattern: pattern, anchored: anchored}
	if c, ok := ev.regexes[key]; ok {
		return c.matcher, c.err
	}

	var c compiledRegex
	if c.err = ev.guard.checkPattern(pattern); c.err == nil {
		c.matcher, c.err = ev.engine.Compile(pattern, anchored)
	}

	if ev.regexes == nil {
		ev.regexes = make(map[regexKey]compiledRegex)
	}
	ev.regexes[key] = c
	return c.matcher, c.err
}
