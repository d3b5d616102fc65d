package jsonpath

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jacoelho/jpq/internal/number"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenRoot
	tokenCurrent
	tokenDot
	tokenDotDot
	tokenLBracket
	tokenRBracket
	tokenLParen
	tokenRParen
	tokenColon
	tokenComma
	tokenWildcard
	tokenQuestion
	tokenNot
	tokenAnd
	tokenOr
	tokenEqual
	tokenNotEqual
	tokenLess
	tokenLessEqual
	tokenGreater
	tokenGreaterEqual
	tokenString
	tokenNumber
	tokenTrue
	tokenFalse
	tokenNull
	tokenName
)

var tokenNames = [...]string{
	tokenEOF:          "end of input",
	tokenRoot:         "'$'",
	tokenCurrent:      "'@'",
	tokenDot:          "'.'",
	tokenDotDot:       "'..'",
	tokenLBracket:     "'['",
	tokenRBracket:     "']'",
	tokenLParen:       "'('",
	tokenRParen:       "')'",
	tokenColon:        "':'",
	tokenComma:        "','",
	tokenWildcard:     "'*'",
	tokenQuestion:     "'?'",
	tokenNot:          "'!'",
	tokenAnd:          "'&&'",
	tokenOr:           "'||'",
	tokenEqual:        "'=='",
	tokenNotEqual:     "'!='",
	tokenLess:         "'<'",
	tokenLessEqual:    "'<='",
	tokenGreater:      "'>'",
	tokenGreaterEqual: "'>='",
	tokenString:       "string",
	tokenNumber:       "number",
	tokenTrue:         "true",
	tokenFalse:        "false",
	tokenNull:         "null",
	tokenName:         "name",
}

func (t tokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

// token is a lexical unit. literal holds the decoded text of strings and the
// raw text of numbers, names and keywords; pos and end are byte offsets.
type token struct {
	typ     tokenType
	literal string
	pos     int
	end     int
}

func lex(input string) ([]token, error) {
	tokens := make([]token, 0, len(input)/2+1)
	pos := 0

	emit := func(typ tokenType, width int) {
		tokens = append(tokens, token{typ: typ, pos: pos, end: pos + width})
		pos += width
	}

	for pos < len(input) {
		ch := input[pos]
		if isBlank(ch) {
			pos++
			continue
		}

		switch ch {
		case '$':
			emit(tokenRoot, 1)
			continue
		case '@':
			emit(tokenCurrent, 1)
			continue
		case '.':
			if pos+1 < len(input) && input[pos+1] == '.' {
				emit(tokenDotDot, 2)
			} else {
				emit(tokenDot, 1)
			}
			continue
		case '[':
			emit(tokenLBracket, 1)
			continue
		case ']':
			emit(tokenRBracket, 1)
			continue
		case '(':
			emit(tokenLParen, 1)
			continue
		case ')':
			emit(tokenRParen, 1)
			continue
		case ':':
			emit(tokenColon, 1)
			continue
		case ',':
			emit(tokenComma, 1)
			continue
		case '*':
			emit(tokenWildcard, 1)
			continue
		case '?':
			emit(tokenQuestion, 1)
			continue
		case '!':
			if pos+1 < len(input) && input[pos+1] == '=' {
				emit(tokenNotEqual, 2)
			} else {
				emit(tokenNot, 1)
			}
			continue
		case '=':
			if pos+1 < len(input) && input[pos+1] == '=' {
				emit(tokenEqual, 2)
				continue
			}
			return nil, syntaxError(pos, "unexpected '=', did you mean '=='")
		case '&':
			if pos+1 < len(input) && input[pos+1] == '&' {
				emit(tokenAnd, 2)
				continue
			}
			return nil, syntaxError(pos, "unexpected '&', did you mean '&&'")
		case '|':
			if pos+1 < len(input) && input[pos+1] == '|' {
				emit(tokenOr, 2)
				continue
			}
			return nil, syntaxError(pos, "unexpected '|', did you mean '||'")
		case '<':
			if pos+1 < len(input) && input[pos+1] == '=' {
				emit(tokenLessEqual, 2)
			} else {
				emit(tokenLess, 1)
			}
			continue
		case '>':
			if pos+1 < len(input) && input[pos+1] == '=' {
				emit(tokenGreaterEqual, 2)
			} else {
				emit(tokenGreater, 1)
			}
			continue
		case '\'', '"':
			literal, next, err := lexString(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{typ: tokenString, literal: literal, pos: pos, end: next})
			pos = next
			continue
		}

		if ch == '-' || isDigit(ch) {
			tok, err := lexNumber(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos = tok.end
			continue
		}

		r, width := utf8.DecodeRuneInString(input[pos:])
		if r == utf8.RuneError && width <= 1 {
			return nil, syntaxError(pos, "invalid UTF-8 encoding")
		}
		if !isNameFirst(r) {
			return nil, syntaxError(pos, "unexpected character %q", r)
		}

		start := pos
		pos += width
		for pos < len(input) {
			r, width = utf8.DecodeRuneInString(input[pos:])
			if !isNameChar(r) || (r == utf8.RuneError && width <= 1) {
				break
			}
			pos += width
		}

		literal := input[start:pos]
		typ := tokenName
		switch literal {
		case "true":
			typ = tokenTrue
		case "false":
			typ = tokenFalse
		case "null":
			typ = tokenNull
		}
		tokens = append(tokens, token{typ: typ, literal: literal, pos: start, end: pos})
	}

	tokens = append(tokens, token{typ: tokenEOF, pos: len(input), end: len(input)})
	return tokens, nil
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNameFirst(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x80
}

func isNameChar(r rune) bool {
	return isNameFirst(r) || (r >= '0' && r <= '9')
}

// lexNumber reads int [frac] [exp]. Integers must fit the IEEE-754 safe range.
func lexNumber(input string, start int) (token, error) {
	pos := start
	if input[pos] == '-' {
		pos++
	}

	digitStart := pos
	for pos < len(input) && isDigit(input[pos]) {
		pos++
	}
	switch {
	case pos == digitStart:
		return token{}, syntaxError(start, "invalid number")
	case input[digitStart] == '0' && pos-digitStart > 1:
		return token{}, syntaxError(start, "leading zeros are not allowed")
	}

	integer := true
	if pos < len(input) && input[pos] == '.' {
		integer = false
		pos++
		fracStart := pos
		for pos < len(input) && isDigit(input[pos]) {
			pos++
		}
		if pos == fracStart {
			return token{}, syntaxError(start, "invalid decimal number")
		}
	}

	if pos < len(input) && (input[pos] == 'e' || input[pos] == 'E') {
		integer = false
		pos++
		if pos < len(input) && (input[pos] == '+' || input[pos] == '-') {
			pos++
		}
		expStart := pos
		for pos < len(input) && isDigit(input[pos]) {
			pos++
		}
		if pos == expStart {
			return token{}, syntaxError(start, "invalid exponent")
		}
	}

	literal := input[start:pos]
	if integer {
		v, err := strconv.ParseInt(literal, 10, 64)
		if err != nil || v > number.MaxSafeInteger || v < -number.MaxSafeInteger {
			return token{}, syntaxError(start, "integer %s is outside the safe range", literal)
		}
	} else if _, err := strconv.ParseFloat(literal, 64); err != nil {
		return token{}, syntaxError(start, "number %s is out of range", literal)
	}

	return token{typ: tokenNumber, literal: literal, pos: start, end: pos}, nil
}

// lexString decodes a quoted string starting at input[start] and returns the
// offset just past the closing quote.
func lexString(input string, start int) (string, int, error) {
	quote := input[start]
	var b strings.Builder

	pos := start + 1
	for pos < len(input) {
		ch := input[pos]
		if ch == quote {
			return b.String(), pos + 1, nil
		}

		if ch == '\\' {
			pos++
			if pos >= len(input) {
				return "", 0, syntaxError(start, "unterminated escape sequence")
			}
			switch esc := input[pos]; esc {
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '/', '\\':
				b.WriteByte(esc)
			case '\'', '"':
				if esc != quote {
					return "", 0, syntaxError(pos-1, "invalid escape \\%c", esc)
				}
				b.WriteByte(esc)
			case 'u':
				r, next, err := lexUnicodeEscape(input, pos-1)
				if err != nil {
					return "", 0, err
				}
				b.WriteRune(r)
				pos = next
				continue
			default:
				return "", 0, syntaxError(pos-1, "invalid escape \\%c", esc)
			}
			pos++
			continue
		}

		if ch < 0x20 {
			return "", 0, syntaxError(pos, "control character in string")
		}

		r, width := utf8.DecodeRuneInString(input[pos:])
		if r == utf8.RuneError && width <= 1 {
			return "", 0, syntaxError(pos, "invalid UTF-8 encoding")
		}
		b.WriteString(input[pos : pos+width])
		pos += width
	}

	return "", 0, syntaxError(start, "unterminated string")
}

// lexUnicodeEscape decodes \uXXXX at input[pos], joining surrogate pairs.
func lexUnicodeEscape(input string, pos int) (rune, int, error) {
	hi, ok := hex4(input, pos+2)
	if !ok {
		return 0, 0, syntaxError(pos, "invalid unicode escape")
	}
	next := pos + 6

	switch {
	case hi >= 0xDC00 && hi <= 0xDFFF:
		return 0, 0, syntaxError(pos, "unpaired low surrogate")
	case hi >= 0xD800 && hi <= 0xDBFF:
		if next+1 >= len(input) || input[next] != '\\' || input[next+1] != 'u' {
			return 0, 0, syntaxError(pos, "unpaired high surrogate")
		}
		lo, ok := hex4(input, next+2)
		if !ok || lo < 0xDC00 || lo > 0xDFFF {
			return 0, 0, syntaxError(pos, "invalid surrogate pair")
		}
		return utf16.DecodeRune(hi, lo), next + 6, nil
	default:
		return hi, next, nil
	}
}

func hex4(input string, pos int) (rune, bool) {
	if pos+4 > len(input) {
		return 0, false
	}
	v, err := strconv.ParseUint(input[pos:pos+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
