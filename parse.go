package calc

import (
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Expr = num | name | Group | Vector | Apply | Neg | Plus | Binary | Define | Lambda
// Group = '(' [ Expr { (',' | ';') Expr } ] ')' | '{' [ Expr { (',' | ';') Expr } ] '}'
// Vector = '[' [ Expr { (',' | ';') Expr } ] ']'
// Apply = Expr Expr
// Neg = '-' Expr
// Plus = '+' Expr
// Binary = Expr ('+' | '-' | '*' | '×' | '/' | '÷' | '^') Expr
// Define = Expr ':=' Expr
// Lambda = Expr '->' Expr

// Parse parses an expression. The given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (Expr, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if tok.kind != tokenEOF && (tok.kind != tokenSep || !stops(&p, tok)) {
		return nil, unexpectedEnd(tok)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
	return n, nil
}

// ParseString parses an expression from a string.
func ParseString(src string, opts ...ParseOption) (Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseterm parses operands and operators binding more tightly than until.
// On success it leaves the token that ended the term pushed, EOF included. An
// empty term gives a nil Expr and a nil error, and the caller decides whether
// that is an error.
func parseterm(scan *lexer, p *parsectx, until operator) (Expr, error) {
	n, err := parselhs(scan, p, until)
	if n == nil || err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		var next operator
		switch tok.kind {
		case tokenClose, tokenSep, tokenEOF:
			scan.push(tok)
			return n, nil
		case tokenNum, tokenIdent, tokenOpen:
			// Juxtaposition: the token starts the right operand.
			scan.push(tok)
			next = termprec
		case tokenOp:
			next = binop(tok.text)
			if next.op == "" {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
			}
		default:
			panic("calc: unknown token: " + tok.String())
		}
		if !next.moreBinding(until) {
			if tok.kind == tokenOp {
				scan.push(tok)
			}
			return n, nil
		}
		rhs, err := parseterm(scan, p, next)
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp {
			n = &Apply{Callee: n, Arg: rhs}
			continue
		}
		if rhs == nil {
			return nil, empty(scan)
		}
		n = next.build(n, rhs)
	}
}

// parselhs parses the operand that begins a term. Stop spaces are ignored
// here, since no expression can end before its first operand.
func parselhs(scan *lexer, p *parsectx, until operator) (Expr, error) {
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := number(tok)
		if err != nil {
			return nil, err
		}
		return &Literal{Value: v}, nil
	case tokenIdent:
		return &SymbolRef{Name: tok.text}, nil
	case tokenOp:
		return prefix(scan, p, tok, until)
	case tokenOpen:
		return parsegroup(scan, tok)
	case tokenClose:
		// Possibly the end of an empty group.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		if stops(p, tok) {
			scan.push(tok)
			return nil, nil
		}
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// prefix parses the operand of a unary operator.
func prefix(scan *lexer, p *parsectx, tok lexToken, until operator) (Expr, error) {
	op := unop(tok.text)
	if op.op == "" {
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
	}
	if !op.moreBinding(until) {
		// A sign after a tighter operator, as in x^-y, takes that
		// operator's precedence so that it applies to y alone.
		op.prec, op.right = until.prec, until.right
	}
	x, err := parseterm(scan, p, op)
	if err != nil {
		return nil, err
	}
	if x == nil {
		return nil, empty(scan)
	}
	if op.op == "+" {
		return x, nil
	}
	return &UnaryOp{Template: "-{x}", Operand: x, Op: Neg}, nil
}

// stops reports whether a separator token ends the expression under p.
func stops(p *parsectx, tok lexToken) bool {
	switch tok.text {
	case ",":
		return p.ceof
	case ";":
		return p.seof
	default:
		panic("calc: invalid separator " + strconv.Quote(tok.text))
	}
}

// parsegroup parses the bracketed group opened by open. Round and curly
// brackets around a single expression only group it; with separators, or with
// nothing inside, they form a list. Square brackets always form a vector.
func parsegroup(scan *lexer, open lexToken) (Expr, error) {
	want := closer(open.text)
	// Stop characters never end an expression inside brackets.
	var inner parsectx
	var elems []Expr
	sep := false
	for {
		n, err := parseterm(scan, &inner, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.text}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if end.text != want {
				return nil, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
			}
			if n == nil {
				// (a,) is not allowed, but () is.
				if sep {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
			} else {
				elems = append(elems, n)
			}
			switch {
			case open.text == "[":
				return &ListAccumulate{Elems: elems, Vector: true}, nil
			case len(elems) == 1 && !sep:
				return elems[0], nil
			default:
				return &ListAccumulate{Elems: elems}, nil
			}
		case tokenSep:
			if n == nil {
				return nil, &SeparatorError{Col: end.pos, Sep: end.text}
			}
			elems = append(elems, n)
			sep = true
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: open.text, Right: ""}
		default:
			panic("calc: parsegroup ended on non-end token " + end.String())
		}
	}
}

// number converts a number token to a value. Decimal numbers are exact.
func number(tok lexToken) (Value, error) {
	switch tok.text {
	case "inf", "Inf", "∞":
		return &Real{f: new(big.Float).SetInf(false), exact: true}, nil
	}
	r, ok := new(big.Rat).SetString(tok.text)
	if !ok {
		return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	return &Rational{r: r}, nil
}

// empty creates the error for a missing operand, using the pushed token that
// ended it.
func empty(scan *lexer) error {
	end := scan.must()
	scan.push(end)
	return &EmptyExpressionError{Col: end.pos, End: end.text}
}

// closer returns the close bracket matching an open bracket.
func closer(open string) string {
	k := strings.Index(OpenBrackets, open)
	if k < 0 || len(open) != 1 {
		panic("calc: invalid bracket " + strconv.Quote(open))
	}
	return CloseBrackets[k : k+1]
}

// unexpectedEnd returns the error for a token that ends a top-level
// expression without being a valid end.
func unexpectedEnd(tok lexToken) error {
	switch tok.kind {
	case tokenClose:
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calc: unexpected end token " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the canonical operator text, or empty if there is no operator.
	op string
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// build creates the node for a binary operator.
func (p operator) build(l, r Expr) Expr {
	switch p.op {
	case "+":
		return &BinaryOp{Template: "{l} + {r}", Left: l, Right: r, Op: Add}
	case "-":
		return &BinaryOp{Template: "{l} - {r}", Left: l, Right: r, Op: Sub}
	case "*":
		return &BinaryOp{Template: "{l} * {r}", Left: l, Right: r, Op: Mul}
	case "/":
		return &BinaryOp{Template: "{l} / {r}", Left: l, Right: r, Op: Div}
	case "^":
		return &BinaryOp{Template: "{l}^{r}", Left: l, Right: r, Op: Pow}
	case ":=":
		return definition(l, r)
	case "->":
		return &Lambda{Params: l, Body: r}
	default:
		panic("calc: no node for operator " + strconv.Quote(p.op))
	}
}

// definition creates a definition node. A target like f(x, y) defines a
// function; anything else is a value definition, which fails during
// evaluation unless the target is a name.
func definition(target, body Expr) Expr {
	if a, ok := target.(*Apply); ok {
		if s, ok := a.Callee.(*SymbolRef); ok {
			return &DefineFunction{Name: s.Name, Params: a.Arg, Body: body}
		}
	}
	return &Define{Target: target, Body: body}
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an empty op.
func binop(text string) operator {
	switch text {
	case ":=":
		return operator{-10, true, ":="}
	case "->":
		return operator{-5, true, "->"}
	case "+":
		return operator{1, false, "+"}
	case "-":
		return operator{1, false, "-"}
	case "*", "×":
		return operator{5, false, "*"}
	case "/", "÷":
		return operator{5, false, "/"}
	case "^":
		return operator{15, true, "^"}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an empty op.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, "+"}
	case "-":
		return operator{10, true, "-"}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence of juxtaposition. Its prec matches that of
	// multiplication, and it is left-associative so that f(x)(y) applies the
	// result of f(x) to y.
	termprec = operator{5, false, "*"}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, ""}
)
