package jsonpath

// Node is a selected value and its normalized path.
type Node struct {
	Value any
	Path  string
}

// NodeList is the ordered output of a query. Duplicates are kept.
type NodeList []Node

// Values returns the selected values in order.
func (l NodeList) Values() []any {
	values := make([]any, len(l))
	for i, n := range l {
		values[i] = n.Value
	}
	return values
}

// Paths returns the normalized paths in order.
func (l NodeList) Paths() []string {
	paths := make([]string, len(l))
	for i, n := range l {
		paths[i] = n.Path
	}
	return paths
}

// Result is the outcome of Evaluate.
type Result struct {
	Nodes NodeList

	// Truncated is set when a cap cut evaluation short; Limit is then the
	// *LimitError describing it. A complete, empty result has neither.
	Truncated bool
	Limit     error

	// Visited counts the nodes touched during evaluation.
	Visited int
}

// Valid reports whether text parses.
func Valid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// MustParse is like Parse but panics on error. Intended for constant queries.
func MustParse(text string) *Query {
	q, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return q
}

// Select evaluates q against doc with DefaultOptions, returning whatever was
// selected before any cap tripped.
func (q *Query) Select(doc any) NodeList {
	res, err := Evaluate(q, doc, DefaultOptions())
	if err != nil {
		return nil
	}
	return res.Nodes
}
