package jsonpath

import (
	"strconv"
	"strings"
)

// location is a node's position, linked to its parent so paths cost nothing
// until rendered.
type location struct {
	parent  *location
	name    string
	index   int
	isIndex bool
}

func (l *location) member(name string) *location {
	return &location{parent: l, name: name}
}

func (l *location) element(index int) *location {
	return &location{parent: l, index: index, isIndex: true}
}

// path renders the normalized path of l, e.g. $['store']['book'][0].
func (l *location) path() string {
	var steps []*location
	for cur := l; cur != nil; cur = cur.parent {
		steps = append(steps, cur)
	}

	var b strings.Builder
	b.WriteByte('$')
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		b.WriteByte('[')
		if step.isIndex {
			b.WriteString(strconv.Itoa(step.index))
		} else {
			writeQuoted(&b, step.name)
		}
		b.WriteByte(']')
	}
	return b.String()
}

func quoteName(s string) string {
	var b strings.Builder
	writeQuoted(&b, s)
	return b.String()
}

// writeQuoted writes s as a single-quoted name with normalized-path escaping.
func writeQuoted(b *strings.Builder, s string) {
	const hex = "0123456789abcdef"

	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hex[r>>4])
				b.WriteByte(hex[r&0xf])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
}
