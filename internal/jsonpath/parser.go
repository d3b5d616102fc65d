package jsonpath

import (
	"strconv"
	"strings"
)

// maxParseDepth bounds nesting of parentheses, filters and function calls.
const maxParseDepth = 128

type parserState struct {
	tokens []token
	pos    int
	depth  int
}

// Parse parses a JSONPath query. Every failure is a *SyntaxError.
func Parse(text string) (*Query, error) {
	if text != "" && (isBlank(text[0]) || isBlank(text[len(text)-1])) {
		return nil, syntaxError(0, "leading or trailing whitespace")
	}

	tokens, err := lex(text)
	if err != nil {
		return nil, err
	}

	p := parserState{tokens: tokens}
	if tok := p.current(); tok.typ != tokenRoot {
		return nil, syntaxError(tok.pos, "query must start with '$'")
	}

	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.typ != tokenEOF {
		return nil, syntaxError(tok.pos, "unexpected %v", tok.typ)
	}
	return q, nil
}

func (p *parserState) parseQuery() (*Query, error) {
	q := &Query{Root: RootDocument}
	if p.advance().typ == tokenCurrent {
		q.Root = RootCurrent
	}

	for {
		seg, ok, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		if !ok {
			return q, nil
		}
		q.Segments = append(q.Segments, seg)
	}
}

func (p *parserState) parseSegment() (Segment, bool, error) {
	switch tok := p.current(); tok.typ {
	case tokenDotDot:
		p.advance()
		sels, err := p.parseDotted(tok, true)
		if err != nil {
			return Segment{}, false, err
		}
		return Segment{Kind: DescendantSegment, Selectors: sels}, true, nil
	case tokenDot:
		p.advance()
		sels, err := p.parseDotted(tok, false)
		if err != nil {
			return Segment{}, false, err
		}
		return Segment{Kind: ChildSegment, Selectors: sels}, true, nil
	case tokenLBracket:
		sels, err := p.parseBracketed()
		if err != nil {
			return Segment{}, false, err
		}
		return Segment{Kind: ChildSegment, Selectors: sels}, true, nil
	default:
		return Segment{}, false, nil
	}
}

// parseDotted reads what follows '.' or '..': a wildcard, a member name or a
// bracketed selection.
func (p *parserState) parseDotted(dot token, descendant bool) ([]Selector, error) {
	tok := p.current()
	if tok.typ == tokenLBracket {
		if descendant && tok.pos != dot.end {
			return nil, syntaxError(tok.pos, "whitespace after %v", dot.typ)
		}
		return p.parseBracketed()
	}

	if tok.pos != dot.end {
		return nil, syntaxError(tok.pos, "whitespace after %v", dot.typ)
	}

	switch tok.typ {
	case tokenWildcard:
		p.advance()
		return []Selector{WildcardSelector{}}, nil
	case tokenName, tokenTrue, tokenFalse, tokenNull:
		p.advance()
		return []Selector{NameSelector{Name: tok.literal}}, nil
	default:
		return nil, syntaxError(tok.pos, "expected member name, '*' or '[' after %v, got %v", dot.typ, tok.typ)
	}
}

func (p *parserState) parseBracketed() ([]Selector, error) {
	open := p.advance()

	var sels []Selector
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)

		switch tok := p.advance(); tok.typ {
		case tokenComma:
		case tokenRBracket:
			return sels, nil
		case tokenEOF:
			return nil, syntaxError(open.pos, "unterminated '['")
		default:
			return nil, syntaxError(tok.pos, "expected ',' or ']', got %v", tok.typ)
		}
	}
}

func (p *parserState) parseSelector() (Selector, error) {
	switch tok := p.current(); tok.typ {
	case tokenString:
		p.advance()
		return NameSelector{Name: tok.literal}, nil
	case tokenWildcard:
		p.advance()
		return WildcardSelector{}, nil
	case tokenQuestion:
		p.advance()
		expr, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		return FilterSelector{Expr: expr}, nil
	case tokenNumber, tokenColon:
		return p.parseIndexOrSlice()
	default:
		return nil, syntaxError(tok.pos, "expected selector, got %v", tok.typ)
	}
}

func (p *parserState) parseIndexOrSlice() (Selector, error) {
	var s SliceSelector

	if p.current().typ == tokenNumber {
		start, err := p.parseInteger()
		if err != nil {
			return nil, err
		}
		if p.current().typ != tokenColon {
			return IndexSelector{Index: start}, nil
		}
		s.Start, s.HasStart = start, true
	}

	p.advance() // ':'
	if p.current().typ == tokenNumber {
		end, err := p.parseInteger()
		if err != nil {
			return nil, err
		}
		s.End, s.HasEnd = end, true
	}

	if p.current().typ == tokenColon {
		p.advance()
		if p.current().typ == tokenNumber {
			step, err := p.parseInteger()
			if err != nil {
				return nil, err
			}
			s.Step, s.HasStep = step, true
		}
	}
	return s, nil
}

func (p *parserState) parseInteger() (int64, error) {
	tok := p.advance()
	if strings.ContainsAny(tok.literal, ".eE") {
		return 0, syntaxError(tok.pos, "expected integer, got %s", tok.literal)
	}
	if tok.literal == "-0" {
		return 0, syntaxError(tok.pos, "negative zero is not a valid index")
	}
	v, err := strconv.ParseInt(tok.literal, 10, 64)
	if err != nil {
		return 0, syntaxError(tok.pos, "invalid integer %s", tok.literal)
	}
	return v, nil
}

func (p *parserState) parseLogicalOr() (LogicalExpr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	first, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	if p.current().typ != tokenOr {
		return first, nil
	}

	operands := []LogicalExpr{first}
	for p.current().typ == tokenOr {
		p.advance()
		next, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return OrExpr{Operands: operands}, nil
}

func (p *parserState) parseLogicalAnd() (LogicalExpr, error) {
	first, err := p.parseBasic()
	if err != nil {
		return nil, err
	}
	if p.current().typ != tokenAnd {
		return first, nil
	}

	operands := []LogicalExpr{first}
	for p.current().typ == tokenAnd {
		p.advance()
		next, err := p.parseBasic()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return AndExpr{Operands: operands}, nil
}

func (p *parserState) parseBasic() (LogicalExpr, error) {
	tok := p.current()
	switch tok.typ {
	case tokenNot:
		p.advance()
		operand, err := p.parseNegated()
		if err != nil {
			return nil, err
		}
		return NotExpr{Operand: operand}, nil
	case tokenLParen:
		return p.parseParen()
	case tokenRoot, tokenCurrent:
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if !isComparison(p.current().typ) {
			return TestExpr{Query: q}, nil
		}
		left, ok := q.Singular()
		if !ok {
			return nil, syntaxError(tok.pos, "comparison operand must be a singular query")
		}
		return p.parseComparison(left)
	case tokenName:
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		if !isComparison(p.current().typ) {
			return asTest(fn, tok.pos)
		}
		if fn.Func.ResultType() != ValueType {
			return nil, syntaxError(tok.pos, "%s() result cannot be compared", fn.Func)
		}
		return p.parseComparison(fn)
	case tokenString, tokenNumber, tokenTrue, tokenFalse, tokenNull:
		left, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if !isComparison(p.current().typ) {
			return nil, syntaxError(tok.pos, "literal must be compared")
		}
		return p.parseComparison(left)
	default:
		return nil, syntaxError(tok.pos, "expected filter expression, got %v", tok.typ)
	}
}

// parseNegated reads the operand of '!': a parenthesized expression, a query
// or a function used as a test.
func (p *parserState) parseNegated() (LogicalExpr, error) {
	switch tok := p.current(); tok.typ {
	case tokenLParen:
		return p.parseParen()
	case tokenRoot, tokenCurrent:
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		return TestExpr{Query: q}, nil
	case tokenName:
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		return asTest(fn, tok.pos)
	default:
		return nil, syntaxError(tok.pos, "expected '(', query or function after '!', got %v", tok.typ)
	}
}

func (p *parserState) parseParen() (LogicalExpr, error) {
	open := p.advance()
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.typ != tokenRParen {
		if tok.typ == tokenEOF {
			return nil, syntaxError(open.pos, "unterminated '('")
		}
		return nil, syntaxError(tok.pos, "expected ')', got %v", tok.typ)
	}
	p.advance()
	return expr, nil
}

func (p *parserState) parseComparison(left Comparable) (LogicalExpr, error) {
	op := compareOps[p.advance().typ]
	right, err := p.parseComparable()
	if err != nil {
		return nil, err
	}
	return ComparisonExpr{Op: op, Left: left, Right: right}, nil
}

func (p *parserState) parseComparable() (Comparable, error) {
	tok := p.current()
	switch tok.typ {
	case tokenRoot, tokenCurrent:
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		sq, ok := q.Singular()
		if !ok {
			return nil, syntaxError(tok.pos, "comparison operand must be a singular query")
		}
		return sq, nil
	case tokenName:
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		if fn.Func.ResultType() != ValueType {
			return nil, syntaxError(tok.pos, "%s() result cannot be compared", fn.Func)
		}
		return fn, nil
	case tokenString, tokenNumber, tokenTrue, tokenFalse, tokenNull:
		return p.parseLiteral()
	default:
		return nil, syntaxError(tok.pos, "expected comparison operand, got %v", tok.typ)
	}
}

func (p *parserState) parseLiteral() (Literal, error) {
	tok := p.advance()
	switch tok.typ {
	case tokenString:
		return Literal{Value: tok.literal}, nil
	case tokenTrue:
		return Literal{Value: true}, nil
	case tokenFalse:
		return Literal{Value: false}, nil
	case tokenNull:
		return Literal{Value: nil}, nil
	case tokenNumber:
		if !strings.ContainsAny(tok.literal, ".eE") {
			if v, err := strconv.ParseInt(tok.literal, 10, 64); err == nil {
				return Literal{Value: v}, nil
			}
		}
		v, err := strconv.ParseFloat(tok.literal, 64)
		if err != nil {
			return Literal{}, syntaxError(tok.pos, "invalid number %s", tok.literal)
		}
		return Literal{Value: v}, nil
	default:
		return Literal{}, syntaxError(tok.pos, "expected literal, got %v", tok.typ)
	}
}

func (p *parserState) parseFunction() (FunctionExpr, error) {
	name := p.advance()
	f, ok := lookupFunction(name.literal)
	if !ok {
		return FunctionExpr{}, syntaxError(name.pos, "unknown function %q", name.literal)
	}
	if open := p.current(); open.typ != tokenLParen || open.pos != name.end {
		return FunctionExpr{}, syntaxError(name.end, "expected '(' directly after %s", name.literal)
	}
	p.advance()

	if err := p.enter(); err != nil {
		return FunctionExpr{}, err
	}
	defer p.leave()

	var args []FunctionArg
	if p.current().typ == tokenRParen {
		p.advance()
	} else {
		for {
			arg, err := p.parseFunctionArg()
			if err != nil {
				return FunctionExpr{}, err
			}
			args = append(args, arg)

			tok := p.advance()
			if tok.typ == tokenRParen {
				break
			}
			if tok.typ != tokenComma {
				return FunctionExpr{}, syntaxError(tok.pos, "expected ',' or ')' in %s() arguments, got %v", name.literal, tok.typ)
			}
		}
	}

	checked, err := checkArgs(f, args, name.pos)
	if err != nil {
		return FunctionExpr{}, err
	}
	return FunctionExpr{Func: f, Args: checked}, nil
}

func (p *parserState) parseFunctionArg() (FunctionArg, error) {
	switch tok := p.current(); tok.typ {
	case tokenRoot, tokenCurrent:
		return p.parseQuery()
	case tokenName:
		return p.parseFunction()
	case tokenString, tokenNumber, tokenTrue, tokenFalse, tokenNull:
		return p.parseLiteral()
	default:
		return nil, syntaxError(tok.pos, "expected function argument, got %v", tok.typ)
	}
}

// asTest accepts fn as a standalone filter test.
func asTest(fn FunctionExpr, pos int) (LogicalExpr, error) {
	switch fn.Func.ResultType() {
	case LogicalType, NodesType:
		return fn, nil
	default:
		return nil, syntaxError(pos, "%s() result must be compared", fn.Func)
	}
}

var compareOps = map[tokenType]CompareOp{
	tokenEqual:        OpEqual,
	tokenNotEqual:     OpNotEqual,
	tokenLess:         OpLess,
	tokenLessEqual:    OpLessEqual,
	tokenGreater:      OpGreater,
	tokenGreaterEqual: OpGreaterEqual,
}

func isComparison(typ tokenType) bool {
	_, ok := compareOps[typ]
	return ok
}

func (p *parserState) enter() error {
	p.depth++
	if p.depth > maxParseDepth {
		return syntaxError(p.current().pos, "expression nested deeper than %d", maxParseDepth)
	}
	return nil
}

func (p *parserState) leave() {
	p.depth--
}

func (p *parserState) current() token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parserState) advance() token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}
