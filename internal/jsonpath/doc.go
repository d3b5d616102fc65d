// Package jsonpath implements RFC 9535 JSONPath queries over decoded documents.
//
// A query is parsed once into an immutable AST and evaluated any number of
// times, concurrently if needed:
//
//	q, err := jsonpath.Parse(`$.store.book[?@.price < 10].title`)
//	if err != nil {
//		return err // *SyntaxError, matches ErrSyntax
//	}
//	res, err := jsonpath.Evaluate(q, doc, jsonpath.DefaultOptions())
//
// Documents are the values produced by package document: nil, bool, numbers,
// string, []any, *document.Object and map[string]any. Results carry normalized
// paths such as $['store']['book'][0]['title'].
//
// Supported: child and descendant segments; name, wildcard, index, slice and
// filter selectors; comparisons, existence tests, && || ! and the functions
// length, count, match, search and value.
//
// Evaluation is bounded by Options. A tripped cap either truncates the result
// (Result.Truncated) or, with ThrowOnError, fails with a *LimitError.
package jsonpath
