package calc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
		kind Expr
	}{
		{"num", "1", "1", (*Literal)(nil)},
		{"decimal", "1.5", "3/2", (*Literal)(nil)},
		{"exponent", "1e3", "1000", (*Literal)(nil)},
		{"inf", "inf", "+Inf", (*Literal)(nil)},
		{"name", "x", "x", (*SymbolRef)(nil)},
		{"neg", "-x", "-x", (*UnaryOp)(nil)},
		{"plus", "+x", "x", (*SymbolRef)(nil)},
		{"add-mul", "1+2*3", "1 + (2 * 3)", (*BinaryOp)(nil)},
		{"sub-left", "1-2-3", "(1 - 2) - 3", (*BinaryOp)(nil)},
		{"div-left", "1/2/3", "(1 / 2) / 3", (*BinaryOp)(nil)},
		{"alt-ops", "1×2÷3", "(1 * 2) / 3", (*BinaryOp)(nil)},
		{"pow-right", "2^3^4", "2^(3^4)", (*BinaryOp)(nil)},
		{"neg-pow", "-2^2", "-(2^2)", (*UnaryOp)(nil)},
		{"pow-neg", "x^-y", "x^(-y)", (*BinaryOp)(nil)},
		{"mul-neg", "2 * -3", "2 * (-3)", (*BinaryOp)(nil)},
		{"juxt", "2 x", "2(x)", (*Apply)(nil)},
		{"juxt-left", "a b c", "a(b)(c)", (*Apply)(nil)},
		{"juxt-pow", "2 x^2", "2(x^2)", (*Apply)(nil)},
		{"juxt-add", "2 x + 1", "2(x) + 1", (*BinaryOp)(nil)},
		{"call", "f(x)", "f(x)", (*Apply)(nil)},
		{"call-list", "f(x, y)", "f(x, y)", (*Apply)(nil)},
		{"call-semi", "f(x; y)", "f(x, y)", (*Apply)(nil)},
		{"call-call", "f(x)(y)", "f(x)(y)", (*Apply)(nil)},
		{"call-bare", "sin x^2", "sin(x^2)", (*Apply)(nil)},
		{"call-group", "2(3 + 4)", "2(3 + 4)", (*Apply)(nil)},
		{"call-vector", "f[1, 2]", "f[1, 2]", (*Apply)(nil)},
		{"group", "(1)", "1", (*Literal)(nil)},
		{"group-curly", "{x}", "x", (*SymbolRef)(nil)},
		{"list", "(1, 2)", "(1, 2)", (*ListAccumulate)(nil)},
		{"list-curly", "{1, 2}", "(1, 2)", (*ListAccumulate)(nil)},
		{"list-empty", "()", "()", (*ListAccumulate)(nil)},
		{"vector", "[1, 2, 3]", "[1, 2, 3]", (*ListAccumulate)(nil)},
		{"vector-one", "[1]", "[1]", (*ListAccumulate)(nil)},
		{"vector-empty", "[]", "[]", (*ListAccumulate)(nil)},
		{"vector-newline", "[1,\n2]", "[1, 2]", (*ListAccumulate)(nil)},
		{"define", "x := 3", "x := 3", (*Define)(nil)},
		{"define-expr", "x := 1 + 2", "x := 1 + 2", (*Define)(nil)},
		{"define-func", "f(x) := x + 1", "f(x) := x + 1", (*DefineFunction)(nil)},
		{"define-func2", "f(x, y) := x*y", "f(x, y) := x * y", (*DefineFunction)(nil)},
		{"define-func0", "f() := 1", "f() := 1", (*DefineFunction)(nil)},
		{"define-bad", "2 x := 3", "2(x) := 3", (*Define)(nil)},
		{"define-lambda", "f := x -> x + 1", "f := x -> x + 1", (*Define)(nil)},
		{"lambda", "x -> x^2", "x -> x^2", (*Lambda)(nil)},
		{"lambda2", "(x, y) -> x + y", "(x, y) -> x + y", (*Lambda)(nil)},
		{"lambda-right", "x -> y -> x", "x -> y -> x", (*Lambda)(nil)},
		{"lambda-arg", "sum(1, 5, x -> x*x)", "sum(1, 5, x -> x * x)", (*Apply)(nil)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if reflect.TypeOf(a) != reflect.TypeOf(c.kind) {
				t.Errorf("%q parsed to %T, want %T", c.src, a, c.kind)
			}
			if got := a.String(); got != c.want {
				t.Errorf("%q has wrong string: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"1 + (2 * 3)",
		"f(x, y) := x * y",
		"(x, y) -> x + y",
		"[1, 2](3)",
		"2^(3^4)",
		"sum(1, 5, x -> x * x)",
		"-(2^2)",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			a, err := ParseString(src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", src, err)
			}
			s := a.String()
			b, err := ParseString(s)
			if err != nil {
				t.Fatalf("%q from %q failed to parse: %v", s, src, err)
			}
			if b.String() != s {
				t.Errorf("round trip through %q gave %q", s, b.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"empty", "", new(EmptyExpressionError)},
		{"space", "  ", new(EmptyExpressionError)},
		{"missing-rhs", "1 +", new(EmptyExpressionError)},
		{"missing-rhs-close", "(1 + )", new(EmptyExpressionError)},
		{"trailing-sep", "(1,)", new(EmptyExpressionError)},
		{"unclosed", "(1", new(BracketError)},
		{"unclosed-empty", "(", new(BracketError)},
		{"unopened", "1)", new(BracketError)},
		{"mismatched", "(1]", new(BracketError)},
		{"sep", "1, 2", new(SeparatorError)},
		{"leading-sep", "(,1)", new(SeparatorError)},
		{"unary", "*1", new(OperatorError)},
		{"unary-define", ":= 1", new(OperatorError)},
		{"lex", "1 $", new(LexError)},
		{"colon", "x : 1", new(LexError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed without error to %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("%q gave wrong error: want %T, got %#v", c.src, c.err, err)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Errorf("%#v is not an InputError", err)
			} else if ie.Pos() < 1 {
				t.Errorf("%#v has invalid position %d", err, ie.Pos())
			}
		})
	}
}

func TestParseStop(t *testing.T) {
	cases := []struct {
		name string
		src  string
		stop string
		want []string
	}{
		{"semi", "1; 2; x", ";", []string{"1", "2", "x"}},
		{"comma", "1, 2", ",", []string{"1", "2"}},
		{"newline", "1 + 2\nx\n", "\n", []string{"1 + 2", "x"}},
		{"newline-operator", "1 +\n2", "\n", []string{"1 + 2"}},
		{"newline-brackets", "f(1,\n2)\n3", "\n", []string{"f(1, 2)", "3"}},
		{"inner-sep", "f(1; 2); 3", ";", []string{"f(1, 2)", "3"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			for i, want := range c.want {
				a, err := Parse(src, StopOn([]rune(c.stop)...))
				if err != nil {
					t.Fatalf("%q iter %d didn't parse: %v", c.src, i, err)
				}
				if got := a.String(); got != want {
					t.Errorf("%q iter %d: want %q, got %q", c.src, i, want, got)
				}
			}
			if a, err := Parse(src, StopOn([]rune(c.stop)...)); err == nil {
				t.Errorf("%q after %d iters parsed to %v", c.src, len(c.want), a)
			}
		})
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1+2+3", nil},
		{"one", "1+2+x", []string{"x"}},
		{"sort", "z+y+x+w+v+u+t+s+r+q+p+o+n+m+l+k+j+i+h+g+f+e+d+c+b+a", strings.Fields("a b c d e f g h i j k l m n o p q r s t u v w x y z")},
		{"reuse", "a+b+c+b+a", []string{"a", "b", "c"}},
		{"call", "f(x, y)", []string{"f", "x", "y"}},
		{"lambda", "x -> x + k", []string{"k", "x"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			vars := Vars(a)
			if !reflect.DeepEqual(vars, c.vars) {
				t.Errorf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "w^x*y+z+a*b^c"},
		{"descasc-parens", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c"},
		{"descasc-nums", "1^1.1*1.1e1+1.1e-1+.1*inf^∞"},
		{"call", "f(a, b, c, d, e)"},
		{"define", "f(x, y) := x^2 + y^2"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				Parse(&src)
			}
		})
	}
}
