package jsonpath

import (
	"math"
	"strconv"
	"strings"
)

// RootKind identifies the node a query starts from.
type RootKind int

const (
	RootDocument RootKind = iota // $
	RootCurrent                  // @
)

func (k RootKind) String() string {
	if k == RootCurrent {
		return "@"
	}
	return "$"
}

// Query is a parsed JSONPath query. It is never modified after Parse and may be
// evaluated concurrently.
type Query struct {
	Root     RootKind
	Segments []Segment
}

// SegmentKind distinguishes child from descendant segments.
type SegmentKind int

const (
	ChildSegment SegmentKind = iota
	DescendantSegment
)

// Segment is one step of a query. Selectors is never empty.
type Segment struct {
	Kind      SegmentKind
	Selectors []Selector
}

// Selector is one of NameSelector, WildcardSelector, IndexSelector,
// SliceSelector or FilterSelector.
type Selector interface {
	String() string
	selector()
}

type NameSelector struct {
	Name string
}

type WildcardSelector struct{}

type IndexSelector struct {
	Index int64
}

// SliceSelector is start:end:step; the Has fields record which bounds were written.
type SliceSelector struct {
	Start, End, Step          int64
	HasStart, HasEnd, HasStep bool
}

type FilterSelector struct {
	Expr LogicalExpr
}

func (NameSelector) selector()     {}
func (WildcardSelector) selector() {}
func (IndexSelector) selector()    {}
func (SliceSelector) selector()    {}
func (FilterSelector) selector()   {}

// LogicalExpr is a filter expression: OrExpr, AndExpr, NotExpr, ComparisonExpr,
// TestExpr or a FunctionExpr with a logical result.
type LogicalExpr interface {
	String() string
	logicalExpr()
}

type OrExpr struct {
	Operands []LogicalExpr
}

type AndExpr struct {
	Operands []LogicalExpr
}

type NotExpr struct {
	Operand LogicalExpr
}

type ComparisonExpr struct {
	Op          CompareOp
	Left, Right Comparable
}

// TestExpr is true when Query selects at least one node.
type TestExpr struct {
	Query *Query
}

func (OrExpr) logicalExpr()         {}
func (AndExpr) logicalExpr()        {}
func (NotExpr) logicalExpr()        {}
func (ComparisonExpr) logicalExpr() {}
func (TestExpr) logicalExpr()       {}
func (FunctionExpr) logicalExpr()   {}

// Comparable is a comparison operand: Literal, SingularQuery or a FunctionExpr
// with a value result.
type Comparable interface {
	String() string
	comparand()
}

// Literal holds nil, bool, string, int64 or float64.
type Literal struct {
	Value any
}

// SingularQuery selects at most one node.
type SingularQuery struct {
	Root  RootKind
	Steps []SingularStep
}

// SingularStep is a member name or, when IsIndex is set, an array index.
type SingularStep struct {
	Name    string
	Index   int64
	IsIndex bool
}

func (Literal) comparand()       {}
func (SingularQuery) comparand() {}
func (FunctionExpr) comparand()  {}

// FunctionArg is Literal, *Query, SingularQuery or FunctionExpr.
type FunctionArg interface {
	String() string
	functionArg()
}

func (Literal) functionArg()       {}
func (*Query) functionArg()        {}
func (SingularQuery) functionArg() {}
func (FunctionExpr) functionArg()  {}

// FunctionExpr calls a builtin function. Arguments have been checked against
// the function's declared parameter types.
type FunctionExpr struct {
	Func Function
	Args []FunctionArg
}

// CompareOp is a comparison operator.
type CompareOp int

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

func (op CompareOp) String() string {
	switch op {
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	default:
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
}

// IsSingular reports whether every segment is a child segment holding one
// name or index selector.
func (q *Query) IsSingular() bool {
	for _, seg := range q.Segments {
		if seg.Kind != ChildSegment || len(seg.Selectors) != 1 {
			return false
		}
		switch seg.Selectors[0].(type) {
		case NameSelector, IndexSelector:
		default:
			return false
		}
	}
	return true
}

// Singular converts q into its singular form.
func (q *Query) Singular() (SingularQuery, bool) {
	if !q.IsSingular() {
		return SingularQuery{}, false
	}
	sq := SingularQuery{Root: q.Root, Steps: make([]SingularStep, 0, len(q.Segments))}
	for _, seg := range q.Segments {
		switch sel := seg.Selectors[0].(type) {
		case NameSelector:
			sq.Steps = append(sq.Steps, SingularStep{Name: sel.Name})
		case IndexSelector:
			sq.Steps = append(sq.Steps, SingularStep{Index: sel.Index, IsIndex: true})
		}
	}
	return sq, true
}

// String renders q in bracket notation. Parsing the result yields an equal Query.
func (q *Query) String() string {
	var b strings.Builder
	b.WriteString(q.Root.String())
	for _, seg := range q.Segments {
		b.WriteString(seg.String())
	}
	return b.String()
}

func (s Segment) String() string {
	var b strings.Builder
	if s.Kind == DescendantSegment {
		b.WriteString("..")
	}
	b.WriteByte('[')
	for i, sel := range s.Selectors {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(sel.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (s NameSelector) String() string   { return quoteName(s.Name) }
func (WildcardSelector) String() string { return "*" }
func (s IndexSelector) String() string  { return strconv.FormatInt(s.Index, 10) }

func (s SliceSelector) String() string {
	var b strings.Builder
	if s.HasStart {
		b.WriteString(strconv.FormatInt(s.Start, 10))
	}
	b.WriteByte(':')
	if s.HasEnd {
		b.WriteString(strconv.FormatInt(s.End, 10))
	}
	if s.HasStep {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(s.Step, 10))
	}
	return b.String()
}

func (s FilterSelector) String() string { return "?" + s.Expr.String() }

func (e OrExpr) String() string {
	parts := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		if _, ok := op.(OrExpr); ok {
			parts[i] = "(" + op.String() + ")"
		} else {
			parts[i] = op.String()
		}
	}
	return strings.Join(parts, " || ")
}

func (e AndExpr) String() string {
	parts := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		switch op.(type) {
		case OrExpr, AndExpr:
			parts[i] = "(" + op.String() + ")"
		default:
			parts[i] = op.String()
		}
	}
	return strings.Join(parts, " && ")
}

func (e NotExpr) String() string {
	switch e.Operand.(type) {
	case TestExpr, FunctionExpr:
		return "!" + e.Operand.String()
	default:
		return "!(" + e.Operand.String() + ")"
	}
}

func (e ComparisonExpr) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

func (e TestExpr) String() string { return e.Query.String() }

func (e FunctionExpr) String() string {
	var b strings.Builder
	b.WriteString(e.Func.String())
	b.WriteByte('(')
	for i, arg := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (l Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return quoteName(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	default:
		return "null"
	}
}

func (q SingularQuery) String() string {
	var b strings.Builder
	b.WriteString(q.Root.String())
	for _, step := range q.Steps {
		b.WriteByte('[')
		if step.IsIndex {
			b.WriteString(strconv.FormatInt(step.Index, 10))
		} else {
			b.WriteString(quoteName(step.Name))
		}
		b.WriteByte(']')
	}
	return b.String()
}

// formatFloat keeps a fraction or exponent so the text lexes back as a decimal.
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "null"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
