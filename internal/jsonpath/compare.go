package jsonpath

import (
	"github.com/jacoelho/jpq/internal/document"
	"github.com/jacoelho/jpq/internal/number"
)

// nothingType marks the absence of a value: an empty singular query or a
// function result with no value.
type nothingType struct{}

var nothing any = nothingType{}

func isNothing(v any) bool {
	_, ok := v.(nothingType)
	return ok
}

// compare evaluates a comparison. Type mismatches and Nothing never error;
// they make every operator but != false.
func compare(op CompareOp, left, right any) bool {
	switch op {
	case OpEqual:
		return equal(left, right)
	case OpNotEqual:
		return !equal(left, right)
	case OpLess:
		return less(left, right)
	case OpLessEqual:
		return less(left, right) || equal(left, right)
	case OpGreater:
		return less(right, left)
	case OpGreaterEqual:
		return less(right, left) || equal(left, right)
	default:
		return false
	}
}

func equal(a, b any) bool {
	aNothing, bNothing := isNothing(a), isNothing(b)
	if aNothing || bNothing {
		return aNothing && bNothing
	}

	if number.IsNumber(a) || number.IsNumber(b) {
		c, ok := number.Compare(a, b)
		return ok && c == 0
	}

	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}

	return equalObjects(a, b)
}

func equalObjects(a, b any) bool {
	am, ok := document.Members(a)
	if !ok {
		return false
	}
	bl, ok := document.Len(b)
	if !ok || !document.IsObject(b) || bl != len(am) {
		return false
	}
	for _, m := range am {
		bv, found := document.Lookup(b, m.Key)
		if !found || !equal(m.Value, bv) {
			return false
		}
	}
	return true
}

// less is defined between two numbers or two strings only.
func less(a, b any) bool {
	if c, ok := number.Compare(a, b); ok {
		return c < 0
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	return aok && bok && as < bs
}
