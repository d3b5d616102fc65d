package jsonpath

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/jpq/internal/document"
)

const bookstore = `{
  "store": {
    "book": [
      {"category": "reference", "author": "Nigel Rees", "title": "Sayings of the Century", "price": 8.95},
      {"category": "fiction", "author": "Evelyn Waugh", "title": "Sword of Honour", "price": 12.99},
      {"category": "fiction", "author": "Herman Melville", "title": "Moby Dick", "isbn": "0-553-21311-3", "price": 8.99},
      {"category": "fiction", "author": "J. R. R. Tolkien", "title": "The Lord of the Rings", "isbn": "0-395-19395-8", "price": 22.99}
    ],
    "bicycle": {"color": "red", "price": 399}
  }
}`

func mustDecode(t *testing.T, input string) any {
	t.Helper()

	doc, err := document.DecodeJSON([]byte(input))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	return doc
}

// normalize converts decoded values to plain Go values for comparison.
func normalize(v any) any {
	switch current := v.(type) {
	case *document.Object:
		out := make(map[string]any, current.Len())
		for k, item := range current.All() {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = normalize(item)
		}
		return out
	default:
		if f, ok := toFloat(current); ok {
			return f
		}
		return current
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func normalizeAll(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = normalize(v)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		document  string
		query     string
		want      []any
		wantPaths []string
	}{
		{
			name:      "basic_child_access",
			document:  `{"store":{"book":[{"title":"A"},{"title":"B"}]}}`,
			query:     "$.store.book[0].title",
			want:      []any{"A"},
			wantPaths: []string{"$['store']['book'][0]['title']"},
		},
		{
			name:      "filter_comparison",
			document:  `{"a":[{"x":1},{"x":2},{"x":3}]}`,
			query:     "$.a[?@.x>1].x",
			want:      []any{2.0, 3.0},
			wantPaths: []string{"$['a'][1]['x']", "$['a'][2]['x']"},
		},
		{
			name:      "descendant_pre_order",
			document:  `{"a":1,"b":{"a":2,"c":{"a":3}},"d":[{"a":4}]}`,
			query:     "$..a",
			want:      []any{1.0, 2.0, 3.0, 4.0},
			wantPaths: []string{"$['a']", "$['b']['a']", "$['b']['c']['a']", "$['d'][0]['a']"},
		},
		{
			name:     "nothing_equals_nothing",
			document: `[{}]`,
			query:    "$[?@.missing==@.alsomissing]",
			want:     []any{map[string]any{}},
		},
		{
			name:      "slice_with_step",
			document:  `[0,1,2,3,4]`,
			query:     "$[1:4:2]",
			want:      []any{1.0, 3.0},
			wantPaths: []string{"$[1]", "$[3]"},
		},
		{
			name:     "slice_negative_step",
			document: `[0,1,2,3,4]`,
			query:    "$[::-2]",
			want:     []any{4.0, 2.0, 0.0},
		},
		{
			name:     "slice_negative_bounds",
			document: `[0,1,2,3,4]`,
			query:    "$[-2:]",
			want:     []any{3.0, 4.0},
		},
		{
			name:     "slice_zero_step",
			document: `[0,1,2]`,
			query:    "$[0:3:0]",
			want:     []any{},
		},
		{
			name:     "slice_clamped",
			document: `[0,1,2]`,
			query:    "$[-10:10]",
			want:     []any{0.0, 1.0, 2.0},
		},
		{
			name:     "union_keeps_duplicates",
			document: `[10,20]`,
			query:    "$[0,0,-1]",
			want:     []any{10.0, 10.0, 20.0},
		},
		{
			name:     "union_per_node_then_selector",
			document: `[[1,2],[3,4]]`,
			query:    "$[*][1,0]",
			want:     []any{2.0, 1.0, 4.0, 3.0},
		},
		{
			name:     "wildcard_object_order",
			document: `{"z":1,"a":2,"m":3}`,
			query:    "$.*",
			want:     []any{1.0, 2.0, 3.0},
		},
		{
			name:     "index_out_of_range",
			document: `[1]`,
			query:    "$[5]",
			want:     []any{},
		},
		{
			name:     "name_on_array",
			document: `[1]`,
			query:    "$.a",
			want:     []any{},
		},
		{
			name:      "quoted_name_escaping",
			document:  `{"it's":{"a\nb":1}}`,
			query:     `$["it's"]["a\nb"]`,
			want:      []any{1.0},
			wantPaths: []string{`$['it\'s']['a\nb']`},
		},
		{
			name:     "root_inside_filter",
			document: `{"limit":2,"items":[1,2,3]}`,
			query:    "$.items[?@ >= $.limit]",
			want:     []any{2.0, 3.0},
		},
		{
			name:     "existence_test",
			document: bookstore,
			query:    "$.store.book[?@.isbn].title",
			want:     []any{"Moby Dick", "The Lord of the Rings"},
		},
		{
			name:     "negated_existence",
			document: bookstore,
			query:    "$.store.book[?!@.isbn].title",
			want:     []any{"Sayings of the Century", "Sword of Honour"},
		},
		{
			name:     "and_or",
			document: bookstore,
			query:    "$.store.book[?@.price < 10 && @.category == 'fiction' || @.price > 20].title",
			want:     []any{"Moby Dick", "The Lord of the Rings"},
		},
		{
			name:     "string_ordering",
			document: `["apple","banana","cherry"]`,
			query:    "$[?@ > 'b']",
			want:     []any{"banana", "cherry"},
		},
		{
			name:     "mixed_type_ordering_is_false",
			document: `[1,"1",true,null]`,
			query:    "$[?@ <= 1]",
			want:     []any{1.0},
		},
		{
			name:     "not_equal_includes_nothing",
			document: `[{"a":1},{}]`,
			query:    "$[?@.a != 1]",
			want:     []any{map[string]any{}},
		},
		{
			name:     "null_comparison",
			document: `[{"a":null},{}]`,
			query:    "$[?@.a == null]",
			want:     []any{map[string]any{"a": nil}},
		},
		{
			name:     "structural_equality",
			document: `[{"a":[1,{"b":2}]},{"a":[1,{"b":3}]}]`,
			query:    "$[?@.a == $[0].a]",
			want:     []any{map[string]any{"a": []any{1.0, map[string]any{"b": 2.0}}}},
		},
		{
			name:     "integer_float_equality",
			document: `[1, 1.0, 2]`,
			query:    "$[?@ == 1]",
			want:     []any{1.0, 1.0},
		},
		{
			name:     "length_function",
			document: `["ab","☺☺☺",[1,2,3],{"a":1},5]`,
			query:    "$[?length(@) == 3]",
			want:     []any{"☺☺☺", []any{1.0, 2.0, 3.0}},
		},
		{
			name:     "length_of_nothing_is_not_zero",
			document: `[{}]`,
			query:    "$[?length(@.a) == 0]",
			want:     []any{},
		},
		{
			name:     "count_function",
			document: `[{"a":[1,2]},{"a":[1]}]`,
			query:    "$[?count(@.a[*]) == 2]",
			want:     []any{map[string]any{"a": []any{1.0, 2.0}}},
		},
		{
			name:     "match_is_anchored",
			document: `["abc","xabc","ab"]`,
			query:    "$[?match(@, 'ab.')]",
			want:     []any{"abc"},
		},
		{
			name:     "search_is_unanchored",
			document: `["abc","xabc","ab"]`,
			query:    "$[?search(@, 'ab.')]",
			want:     []any{"abc", "xabc"},
		},
		{
			name:     "dot_excludes_newline",
			document: `["a\nb","axb"]`,
			query:    "$[?match(@, 'a.b')]",
			want:     []any{"axb"},
		},
		{
			name:     "dollar_and_caret_are_literal",
			document: `["a$b","ab","x^y","xy"]`,
			query:    "$[?search(@, 'a$b') || match(@, 'x^y')]",
			want:     []any{"a$b", "x^y"},
		},
		{
			name:     "bracket_first_in_class",
			document: `["]$","a$","b$"]`,
			query:    "$[?match(@, '[]a]$')]",
			want:     []any{"]$", "a$"},
		},
		{
			name:     "match_non_string_is_false",
			document: `[1,"1"]`,
			query:    "$[?match(@, '1')]",
			want:     []any{"1"},
		},
		{
			name:     "invalid_pattern_is_false",
			document: `["a"]`,
			query:    "$[?match(@, '(')]",
			want:     []any{},
		},
		{
			name:     "value_function",
			document: `[{"a":{"b":1}},{"a":{"b":1,"c":1}}]`,
			query:    "$[?value(@.a.*) == 1]",
			want:     []any{map[string]any{"a": map[string]any{"b": 1.0}}},
		},
		{
			name:     "nested_filter",
			document: `[{"xs":[1,5]},{"xs":[1,2]}]`,
			query:    "$[?@.xs[?@ > 4]]",
			want:     []any{map[string]any{"xs": []any{1.0, 5.0}}},
		},
		{
			name:     "descendant_filter",
			document: `{"a":{"v":1},"b":[{"v":2},{"w":3}]}`,
			query:    "$..[?@.v]",
			want:     []any{map[string]any{"v": 1.0}, map[string]any{"v": 2.0}},
		},
		{
			name:     "descendant_wildcard",
			document: `{"a":[1,{"b":2}]}`,
			query:    "$..*",
			want:     []any{[]any{1.0, map[string]any{"b": 2.0}}, 1.0, map[string]any{"b": 2.0}, 2.0},
		},
		{
			name:      "root_itself",
			document:  `{"a":1}`,
			query:     "$",
			want:      []any{map[string]any{"a": 1.0}},
			wantPaths: []string{"$"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustDecode(t, tt.document)
			res, err := Evaluate(MustParse(tt.query), doc, DefaultOptions())
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.query, err)
			}
			if res.Truncated || res.Limit != nil {
				t.Fatalf("Evaluate(%q) truncated: %v", tt.query, res.Limit)
			}

			if diff := cmp.Diff(tt.want, normalizeAll(res.Nodes.Values())); diff != "" {
				t.Errorf("Evaluate(%q) values mismatch (-want +got):\n%s", tt.query, diff)
			}
			if tt.wantPaths != nil {
				if diff := cmp.Diff(tt.wantPaths, res.Nodes.Paths()); diff != "" {
					t.Errorf("Evaluate(%q) paths mismatch (-want +got):\n%s", tt.query, diff)
				}
			}
		})
	}
}

func TestEvaluatePlainValues(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"b": []any{int64(1), 2.5, "x"},
		"a": map[string]any{"n": 3},
	}

	got := MustParse("$..*").Select(doc)
	want := []string{"$['a']", "$['b']", "$['a']['n']", "$['b'][0]", "$['b'][1]", "$['b'][2]"}
	if diff := cmp.Diff(want, got.Paths()); diff != "" {
		t.Errorf("Select() paths mismatch (-want +got):\n%s", diff)
	}

	got = MustParse("$.b[?@ > 2]").Select(doc)
	if diff := cmp.Diff([]any{2.5}, got.Values()); diff != "" {
		t.Errorf("Select() values mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"k": map[string]any{"x": 1, "y": 2, "z": []any{3, map[string]any{"x": 4}}}}
	q := MustParse("$..*")

	first := q.Select(doc)
	for range 20 {
		if diff := cmp.Diff(first, q.Select(doc)); diff != "" {
			t.Fatalf("Select() not deterministic (-first +got):\n%s", diff)
		}
	}
}

func deepDocument(depth int) any {
	var doc any = "leaf"
	for range depth {
		doc = map[string]any{"x": doc}
	}
	return doc
}

func TestEvaluateDepthLimit(t *testing.T) {
	t.Parallel()

	doc := deepDocument(50)
	q := MustParse("$..x")
	opts := Options{MaxDepth: 10, ThrowOnError: true}

	res, err := Evaluate(q, doc, opts)
	if res != nil {
		t.Errorf("Evaluate() result = %v, want nil", res)
	}
	if !errors.Is(err, ErrDepthLimit) {
		t.Fatalf("Evaluate() error = %v, want ErrDepthLimit", err)
	}

	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Evaluate() error = %T, want *LimitError", err)
	}
	if limitErr.Max != 10 {
		t.Errorf("LimitError.Max = %d, want 10", limitErr.Max)
	}
	if want := "$" + strings.Repeat("['x']", 11); limitErr.Path != want {
		t.Errorf("LimitError.Path = %s, want %s", limitErr.Path, want)
	}

	opts.ThrowOnError = false
	res, err = Evaluate(q, doc, opts)
	if err != nil {
		t.Fatalf("Evaluate() truncated mode error = %v", err)
	}
	if !res.Truncated || !errors.Is(res.Limit, ErrDepthLimit) {
		t.Errorf("Evaluate() Truncated = %v, Limit = %v; want depth limit", res.Truncated, res.Limit)
	}
	if len(res.Nodes) != 10 {
		t.Errorf("Evaluate() returned %d nodes, want 10", len(res.Nodes))
	}

	opts.MaxDepth = 0
	res, err = Evaluate(q, doc, opts)
	if err != nil {
		t.Fatalf("Evaluate() unlimited error = %v", err)
	}
	if res.Truncated || len(res.Nodes) != 50 {
		t.Errorf("Evaluate() unlimited = %d nodes, truncated %v; want 50 complete", len(res.Nodes), res.Truncated)
	}
}

func TestEvaluateDepthLimitFilterCandidates(t *testing.T) {
	t.Parallel()

	doc := []any{int64(1), int64(2)}
	opts := Options{MaxDepth: 1}

	for _, query := range []string{"$[*]", "$[?true == true]", "$[?@ > 0]"} {
		res, err := Evaluate(MustParse(query), doc, opts)
		if err != nil {
			t.Fatalf("Evaluate(%s) error = %v", query, err)
		}
		if res.Truncated {
			t.Errorf("Evaluate(%s) truncated by %v", query, res.Limit)
		}
		if diff := cmp.Diff([]any{int64(1), int64(2)}, res.Nodes.Values()); diff != "" {
			t.Errorf("Evaluate(%s) mismatch (-want +got):\n%s", query, diff)
		}
	}

	// the sub-query @.a runs one level inside the filter
	res, err := Evaluate(MustParse("$[?@.a]"), []any{map[string]any{"a": int64(1)}}, opts)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !res.Truncated || !errors.Is(res.Limit, ErrDepthLimit) || len(res.Nodes) != 0 {
		t.Errorf("Evaluate($[?@.a]) = %v, truncated %v; want empty depth-limited result", res.Nodes.Values(), res.Truncated)
	}
	res, err = Evaluate(MustParse("$[?@.a]"), []any{map[string]any{"a": int64(1)}}, Options{MaxDepth: 2})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.Truncated || len(res.Nodes) != 1 {
		t.Errorf("Evaluate($[?@.a]) at depth 2 = %d nodes, truncated %v; want 1 complete", len(res.Nodes), res.Truncated)
	}
}

func TestEvaluateDescendantVisitCount(t *testing.T) {
	t.Parallel()

	// each descendant is touched once by the wildcard and once by expansion
	res, err := Evaluate(MustParse("$..*"), mustDecode(t, `{"a":[1,2]}`), Options{})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(res.Nodes) != 3 || res.Visited != 6 {
		t.Errorf("Evaluate() = %d nodes, %d visited; want 3 and 6", len(res.Nodes), res.Visited)
	}
}

func TestEvaluateNodeLimit(t *testing.T) {
	t.Parallel()

	items := make([]any, 100)
	for i := range items {
		items[i] = i
	}
	doc := map[string]any{"items": items}
	q := MustParse("$.items[*]")

	res, err := Evaluate(q, doc, Options{MaxNodesVisited: 11})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !res.Truncated || !errors.Is(res.Limit, ErrNodeLimit) {
		t.Fatalf("Evaluate() Truncated = %v, Limit = %v; want node limit", res.Truncated, res.Limit)
	}
	if len(res.Nodes) != 10 || res.Visited != 11 {
		t.Errorf("Evaluate() = %d nodes, %d visited; want 10 and 11", len(res.Nodes), res.Visited)
	}

	_, err = Evaluate(q, doc, Options{MaxNodesVisited: 11, ThrowOnError: true})
	if !errors.Is(err, ErrNodeLimit) {
		t.Errorf("Evaluate() throw mode error = %v, want ErrNodeLimit", err)
	}

	res, err = Evaluate(q, doc, Options{MaxNodesVisited: 101})
	if err != nil {
		t.Fatalf("Evaluate() under the cap error = %v", err)
	}
	if res.Truncated || len(res.Nodes) != 100 {
		t.Errorf("Evaluate() under the cap = %d nodes, truncated %v", len(res.Nodes), res.Truncated)
	}
}

func TestEvaluateNodeLimitCountsFilterWork(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `[{"a":1},{"a":2},{"a":3}]`)

	// three candidates plus one lookup of 'a' per candidate
	q := MustParse("$[?@.a > 0]")
	res, err := Evaluate(q, doc, Options{MaxNodesVisited: 5})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !res.Truncated {
		t.Errorf("Evaluate() Truncated = false with Visited = %d", res.Visited)
	}

	res, err = Evaluate(q, doc, Options{MaxNodesVisited: 6})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.Truncated || len(res.Nodes) != 3 || res.Visited != 6 {
		t.Errorf("Evaluate() = %d nodes, %d visited, truncated %v; want 3 nodes and 6 visits", len(res.Nodes), res.Visited, res.Truncated)
	}
}

func TestEvaluateUnsafeRegex(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, `["aaaa", "`+strings.Repeat("a", 64)+`"]`)

	tests := []struct {
		name      string
		query     string
		opts      Options
		want      int
		truncated bool
	}{
		{
			name:  "nested_repetition_allowed_without_guard",
			query: "$[?match(@, '(a+)+')]",
			opts:  Options{},
			want:  2,
		},
		{
			name:      "nested_repetition_refused",
			query:     "$[?match(@, '(a+)+')]",
			opts:      Options{RejectUnsafeRegex: true},
			want:      0,
			truncated: true,
		},
		{
			name:      "pattern_too_long",
			query:     "$[?search(@, 'aaaaaa')]",
			opts:      Options{RejectUnsafeRegex: true, MaxRegexPatternLength: 5},
			want:      0,
			truncated: true,
		},
		{
			name:      "input_too_long",
			query:     "$[?search(@, 'a')]",
			opts:      Options{RejectUnsafeRegex: true, MaxRegexInputLength: 10},
			want:      1,
			truncated: true,
		},
		{
			name:  "caps_ignored_without_guard",
			query: "$[?search(@, 'aaaaaa')]",
			opts:  Options{MaxRegexPatternLength: 5, MaxRegexInputLength: 10},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Evaluate(MustParse(tt.query), doc, tt.opts)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if len(res.Nodes) != tt.want {
				t.Errorf("Evaluate() = %d nodes, want %d", len(res.Nodes), tt.want)
			}
			if res.Truncated != tt.truncated {
				t.Errorf("Evaluate() Truncated = %v, want %v", res.Truncated, tt.truncated)
			}
			if tt.truncated && !errors.Is(res.Limit, ErrUnsafeRegex) {
				t.Errorf("Evaluate() Limit = %v, want ErrUnsafeRegex", res.Limit)
			}

			tt.opts.ThrowOnError = true
			_, err = Evaluate(MustParse(tt.query), doc, tt.opts)
			if tt.truncated != errors.Is(err, ErrUnsafeRegex) {
				t.Errorf("Evaluate() throw mode error = %v, want unsafe regex %v", err, tt.truncated)
			}
		})
	}
}

type countingEngine struct {
	compiled int
}

func (e *countingEngine) Compile(pattern string, anchored bool) (Matcher, error) {
	e.compiled++
	return RE2{}.Compile(pattern, anchored)
}

func TestEvaluateCustomRegexEngineCompilesOnce(t *testing.T) {
	t.Parallel()

	engine := &countingEngine{}
	doc := mustDecode(t, `["a","b","a","c"]`)

	res, err := Evaluate(MustParse("$[?match(@, 'a')]"), doc, Options{Regex: engine})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(res.Nodes) != 2 {
		t.Errorf("Evaluate() = %d nodes, want 2", len(res.Nodes))
	}
	if engine.compiled != 1 {
		t.Errorf("engine compiled %d times, want 1", engine.compiled)
	}
}

func TestEvaluateLogsLimit(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Evaluate(MustParse("$..x"), deepDocument(5), Options{MaxDepth: 2, Logger: logger})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !strings.Contains(buf.String(), "depth limit exceeded") {
		t.Errorf("log output = %q, want depth limit record", buf.String())
	}
}

func TestEvaluateNilQuery(t *testing.T) {
	t.Parallel()

	if _, err := Evaluate(nil, nil, Options{}); err == nil {
		t.Error("Evaluate(nil) error = nil")
	}
}

func TestSliceIndices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slice string
		n     int
		want  []int
	}{
		{slice: "$[:]", n: 3, want: []int{0, 1, 2}},
		{slice: "$[1:]", n: 3, want: []int{1, 2}},
		{slice: "$[:-1]", n: 3, want: []int{0, 1}},
		{slice: "$[::-1]", n: 3, want: []int{2, 1, 0}},
		{slice: "$[2:0:-1]", n: 3, want: []int{2, 1}},
		{slice: "$[-1:-4:-1]", n: 3, want: []int{2, 1, 0}},
		{slice: "$[0:10:4]", n: 10, want: []int{0, 4, 8}},
		{slice: "$[:]", n: 0, want: nil},
		{slice: "$[3:1]", n: 5, want: nil},
		{slice: "$[::0]", n: 5, want: nil},
	}

	for _, tt := range tests {
		sel := MustParse(tt.slice).Segments[0].Selectors[0].(SliceSelector)
		if diff := cmp.Diff(tt.want, sliceIndices(sel, tt.n)); diff != "" {
			t.Errorf("sliceIndices(%s, %d) mismatch (-want +got):\n%s", tt.slice, tt.n, diff)
		}
	}
}

func TestNodeListPathsMatchQueries(t *testing.T) {
	t.Parallel()

	doc := mustDecode(t, bookstore)
	for _, n := range MustParse("$..*").Select(doc) {
		got := MustParse(n.Path).Select(doc)
		if len(got) != 1 || got[0].Path != n.Path {
			t.Errorf("normalized path %s selects %v", n.Path, got.Paths())
		}
	}
}
