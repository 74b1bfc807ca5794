package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// lexToken is one token of input. pos is the 1-based rune position of its
// first rune.
type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF ends the input, either at its real end or at a stop rune.
	tokenEOF
	// tokenNum is a decimal number or infinity.
	tokenNum
	// tokenIdent is a name.
	tokenIdent
	// tokenOp is an operator, including := and ->.
	tokenOp
	// tokenOpen is one of OpenBrackets.
	tokenOpen
	// tokenClose is one of CloseBrackets.
	tokenClose
	// tokenSep is a comma or semicolon.
	tokenSep
)

//go:generate stringer -type=tokenKind -trimprefix=token

// Operators contains the single-rune operators. The lexer also recognizes
// := for definitions and -> for lambdas.
const Operators = "+-*/^×÷"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The bracket at index k of OpenBrackets is closed by the one at index k of
// CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

// punct maps runes that are complete tokens by themselves to their kinds.
var punct = func() map[rune]tokenKind {
	m := map[rune]tokenKind{',': tokenSep, ';': tokenSep, '∞': tokenNum}
	for _, r := range Operators {
		m[r] = tokenOp
	}
	for _, r := range OpenBrackets {
		m[r] = tokenOpen
	}
	for _, r := range CloseBrackets {
		m[r] = tokenClose
	}
	return m
}()

// numEnd contains runes other than space and letters that end a number.
const numEnd = Operators + OpenBrackets + CloseBrackets + ",;:∞_"

type lexer struct {
	src     io.RuneScanner
	text    strings.Builder
	col     int
	pending lexToken
	done    bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src, col: 1}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.pending.kind != tokenNone {
		panic("calc: double push")
	}
	l.pending = tok
}

// must takes the pushed token. Panics if there is none.
func (l *lexer) must() lexToken {
	tok := l.pending
	if tok.kind == tokenNone {
		panic("calc: no pushed token")
	}
	l.pending = lexToken{}
	return tok
}

func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune puts back the last rune read. Panics if the source refuses.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// follows consumes the next rune if it is r and reports whether it did.
func (l *lexer) follows(r rune) bool {
	c, err := l.readRune()
	if err != nil {
		return false
	}
	if c != r {
		l.unreadRune()
		return false
	}
	l.text.WriteRune(c)
	return true
}

// next scans the next token. A space rune in stop ends the input as if it
// were EOF. The first end of input gives an EOF token and a nil error; after
// that, unless the EOF token is pushed back, next returns io.EOF.
func (l *lexer) next(stop string) (lexToken, error) {
	if tok := l.pending; tok.kind != tokenNone {
		l.pending = lexToken{}
		return tok, nil
	}
	if l.done {
		return lexToken{}, io.EOF
	}
	l.text.Reset()
	for {
		pos := l.col
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.done = true
				return lexToken{kind: tokenEOF, pos: pos}, nil
			}
			return lexToken{pos: pos}, err
		}
		if !unicode.IsSpace(r) {
			return l.token(r, pos)
		}
		if strings.ContainsRune(stop, r) {
			l.done = true
			return lexToken{kind: tokenEOF, pos: pos}, nil
		}
	}
}

// token scans the token beginning with r.
func (l *lexer) token(r rune, pos int) (lexToken, error) {
	var kind tokenKind
	switch {
	case '0' <= r && r <= '9', r == '.':
		l.unreadRune()
		if err := l.scanNum(); err != nil {
			return lexToken{pos: pos}, err
		}
		kind = tokenNum
	case r == '_', unicode.IsLetter(r):
		l.unreadRune()
		if err := l.scanIdent(); err != nil {
			return lexToken{pos: pos}, err
		}
		kind = tokenIdent
		if s := l.text.String(); s == "inf" || s == "Inf" {
			kind = tokenNum
		}
	case r == ':':
		l.text.WriteRune(r)
		if !l.follows('=') {
			return lexToken{pos: pos}, l.error("operator")
		}
		kind = tokenOp
	case r == '-':
		l.text.WriteRune(r)
		l.follows('>')
		kind = tokenOp
	default:
		l.text.WriteRune(r)
		k, ok := punct[r]
		if !ok {
			return lexToken{pos: pos}, l.error("")
		}
		kind = k
	}
	return lexToken{text: l.text.String(), kind: kind, pos: pos}, nil
}

// scanNum scans digits with an optional decimal point and an optional
// exponent, which may be signed.
func (l *lexer) scanNum() error {
	var mant, dot, exp, expdig bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if unicode.IsSpace(r) || strings.ContainsRune(numEnd, r) || (unicode.IsLetter(r) && r != 'e' && r != 'E') {
			l.unreadRune()
			break
		}
		l.text.WriteRune(r)
		switch {
		case '0' <= r && r <= '9':
			if exp {
				expdig = true
			} else {
				mant = true
			}
		case r == '.':
			if dot || exp {
				return l.error("number")
			}
			dot = true
		case r == 'e', r == 'E':
			if !mant || exp {
				return l.error("number")
			}
			exp = true
			if !l.follows('+') {
				l.follows('-')
			}
		default:
			return l.error("number")
		}
	}
	if !mant || exp && !expdig {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r != '_' && r != '.' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune()
			return nil
		}
		l.text.WriteRune(r)
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{Text: l.text.String(), Kind: kind, Col: l.col}
}
