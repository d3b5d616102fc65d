package jsonpath

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// RegexEngine compiles patterns for match and search.
type RegexEngine interface {
	// Compile returns a matcher for pattern. When anchored is set the matcher
	// must match the whole input, otherwise any substring.
	Compile(pattern string, anchored bool) (Matcher, error)
}

// Matcher is a compiled pattern.
type Matcher interface {
	MatchString(s string) bool
}

// RE2 is the default RegexEngine. It translates I-Regexp (RFC 9485) to Go
// regexp syntax, which runs in linear time.
type RE2 struct{}

func (RE2) Compile(pattern string, anchored bool) (Matcher, error) {
	translated := translateIRegexp(pattern)
	if anchored {
		translated = `\A(?:` + translated + `)\z`
	}
	re, err := regexp.Compile(translated)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// translateIRegexp rewrites I-Regexp into Go syntax outside character
// classes: '.' excludes line terminators, '^' and '$' are literal characters.
// A ']' opening a class (after an optional '^') is literal.
func translateIRegexp(pattern string) string {
	if !strings.ContainsAny(pattern, ".^$") {
		return pattern
	}

	var b strings.Builder
	inClass := false
	classStart := false
	escaped := false
	for i, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
			classStart = false
		case inClass:
			switch {
			case r == '^' && classStart && pattern[i-1] == '[':
				// negation keeps classStart for a following ']'
				b.WriteRune(r)
				continue
			case r == ']' && !classStart:
				inClass = false
			}
			classStart = false
		case r == '[':
			inClass = true
			classStart = true
		case r == '.':
			b.WriteString(`[^\n\r]`)
			continue
		case r == '^' || r == '$':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// regexGuard applies the pattern and input caps.
type regexGuard struct {
	maxPattern int
	maxInput   int
	enabled    bool
}

func (g regexGuard) checkPattern(pattern string) error {
	if !g.enabled {
		return nil
	}
	if g.maxPattern > 0 && len(pattern) > g.maxPattern {
		return fmt.Errorf("%w: pattern length %d exceeds %d", ErrUnsafeRegex, len(pattern), g.maxPattern)
	}
	if hasNestedRepetition(pattern) {
		return fmt.Errorf("%w: nested unbounded repetition", ErrUnsafeRegex)
	}
	return nil
}

func (g regexGuard) checkInput(input string) error {
	if g.enabled && g.maxInput > 0 && len(input) > g.maxInput {
		return fmt.Errorf("%w: input length %d exceeds %d", ErrUnsafeRegex, len(input), g.maxInput)
	}
	return nil
}

// hasNestedRepetition reports patterns like (a+)+ that backtracking engines
// take exponential time on. Unparsable patterns are left to the engine.
func hasNestedRepetition(pattern string) bool {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return false
	}
	return nestedRepeat(re, false)
}

func nestedRepeat(re *syntax.Regexp, inside bool) bool {
	unbounded := re.Op == syntax.OpStar || re.Op == syntax.OpPlus ||
		(re.Op == syntax.OpRepeat && re.Max == -1)
	if unbounded && inside {
		return true
	}
	for _, sub := range re.Sub {
		if nestedRepeat(sub, inside || unbounded) {
			return true
		}
	}
	return false
}
