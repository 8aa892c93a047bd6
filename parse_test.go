package calc

import (
	"reflect"
	"regexp"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil
// if the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil || m == nil {
		if n != m {
			return n, m
		}
		return nil, nil
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind || n.name != m.name || len(n.kids) != len(m.kids) {
		return n, m
	}
	for i := range n.kids {
		if d, e := n.kids[i].diff(m.kids[i]); d != nil || e != nil {
			return d, e
		}
	}
	return nil, nil
}

func TestParseTrees(t *testing.T) {
	// Each case parses two spellings of the same expression and requires
	// identical ASTs. The second spelling makes the grouping explicit.
	cases := []struct {
		name string
		a, b string
	}{
		{"add-left", "1+2+3", "(1+2)+3"},
		{"sub-left", "1-2-3", "(1-2)-3"},
		{"mixed-sum", "1-2+3", "(1-2)+3"},
		{"mul-left", "2*3*4", "(2*3)*4"},
		{"div-left", "8/4/2", "(8/4)/2"},
		{"divmod-left", "7//2%3", "(7//2)%3"},
		{"mul-before-add", "2+3*4", "2+(3*4)"},
		{"add-after-mul", "2*3+4", "(2*3)+4"},
		{"pow-before-mul", "2*3^4", "2*(3^4)"},
		{"pow-right", "2^3^2", "2^(3^2)"},
		{"pow-right4", "a^b^c^d", "a^(b^(c^d))"},
		{"neg-pow", "-2^2", "-(2^2)"},
		{"neg-mul", "-2*3", "(-2)*3"},
		{"neg-rhs", "2*-3", "2*(-3)"},
		{"neg-in-sum", "1--2", "1-(-2)"},
		{"neg-fact", "-2!", "-(2!)"},
		{"fact-stack", "3!!", "(3!)!"},
		{"fact-pow", "3!^2", "(3!)^2"},
		{"pow-fact", "2^3!", "2^(3!)"},
		{"abs-body", "|4-10|", "|(4-10)|"},
		{"abs-in-sum", "2*|x|+1", "(2*|x|)+1"},
		{"neg-abs", "-|x|", "-(|x|)"},
		{"nested-abs", "||x||", "|(|x|)|"},
		{"call-in-product", "max(1,2)*3", "(max(1,2))*3"},
		{"args-are-sums", "max(1+2, 3*4)", "max((1+2), (3*4))"},
		{"spaces", " 1 + 2 ", "1+2"},
		{"parens-noop", "((x))", "x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, err := Parse(c.a)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.a, err)
			}
			r, err := Parse(c.b)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.b, err)
			}
			d, e := l.n.diff(r.n)
			if d != nil || e != nil {
				t.Errorf("mismatched ASTs:\n\t%q parses %v which has %v\n\t%q parses %v which has %v", c.a, l.n, d, c.b, r.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "int",
			src:  "42",
			n:    &node{kind: nodeNum, name: "42"},
		},
		{
			name: "real",
			src:  "12.5",
			n:    &node{kind: nodeNum, name: "12.5"},
		},
		{
			name: "name",
			src:  "spam",
			n:    &node{kind: nodeName, name: "spam"},
		},
		{
			name: "builtin-bare",
			src:  "sin",
			n:    &node{kind: nodeName, name: "sin"},
		},
		{
			name: "neg",
			src:  "-x",
			n: &node{
				kind: nodeNeg,
				kids: []*node{{kind: nodeName, name: "x"}},
			},
		},
		{
			name: "add",
			src:  "1+2",
			n: &node{
				kind: nodeAdd,
				kids: []*node{
					{kind: nodeNum, name: "1"},
					{kind: nodeNum, name: "2"},
				},
			},
		},
		{
			name: "floordiv",
			src:  "7//2",
			n: &node{
				kind: nodeFloorDiv,
				kids: []*node{
					{kind: nodeNum, name: "7"},
					{kind: nodeNum, name: "2"},
				},
			},
		},
		{
			name: "fact",
			src:  "5!",
			n: &node{
				kind: nodeFact,
				kids: []*node{{kind: nodeNum, name: "5"}},
			},
		},
		{
			name: "abs",
			src:  "|x|",
			n: &node{
				kind: nodeAbs,
				kids: []*node{{kind: nodeName, name: "x"}},
			},
		},
		{
			name: "call1",
			src:  "sin(x)",
			n: &node{
				kind: nodeCall,
				name: "sin",
				kids: []*node{{kind: nodeName, name: "x"}},
			},
		},
		{
			name: "call2",
			src:  "max(x, y)",
			n: &node{
				kind: nodeCall,
				name: "max",
				kids: []*node{
					{kind: nodeName, name: "x"},
					{kind: nodeName, name: "y"},
				},
			},
		},
		{
			name: "call-arg-expr",
			src:  "log(x+1)",
			n: &node{
				kind: nodeCall,
				name: "log",
				kids: []*node{
					{
						kind: nodeAdd,
						kids: []*node{
							{kind: nodeName, name: "x"},
							{kind: nodeNum, name: "1"},
						},
					},
				},
			},
		},
		{
			// Any identifier parses as a call; resolution happens later.
			name: "call-unknown",
			src:  "bogus(1)",
			n: &node{
				kind: nodeCall,
				name: "bogus",
				kids: []*node{{kind: nodeNum, name: "1"}},
			},
		},
		{
			name: "pow-neg-exp",
			src:  "2^(-1)",
			n: &node{
				kind: nodePow,
				kids: []*node{
					{kind: nodeNum, name: "2"},
					{
						kind: nodeNeg,
						kids: []*node{{kind: nodeNum, name: "1"}},
					},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestExprLisp(t *testing.T) {
	cases := []struct {
		name string
		src  string
		lisp string
	}{
		{"num", "42", "42"},
		{"real", "12.5", "12.5"},
		{"name", "x", "x"},
		{"sum", "2+3*4", "(+ 2 (* 3 4))"},
		{"sub-left", "10-2-3", "(- (- 10 2) 3)"},
		{"div", "1/2", "(/ 1 2)"},
		{"floordiv-mod", "7//2%3", "(% (// 7 2) 3)"},
		{"pow-right", "2^3^2", "(^ 2 (^ 3 2))"},
		{"neg", "-x", "(- x)"},
		{"neg-pow", "-2^2", "(- (^ 2 2))"},
		{"sub-vs-neg", "1--2", "(- 1 (- 2))"},
		{"fact-stack", "3!!", "(! (! 3))"},
		{"abs", "|a-b|", "(abs (- a b))"},
		{"call", "max(2*3, x)", "(max (* 2 3) x)"},
		{"nested-call", "sin(cos(x))", "(sin (cos x))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := a.Lisp(); got != c.lisp {
				t.Errorf("%q renders %q, want %q", c.src, got, c.lisp)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		pos  int
		res  []string
	}{
		{"empty", "", new(ParseError), 0, []string{`(?i)end of input`}},
		{"spaces", "  ", new(ParseError), 2, []string{`(?i)end of input`}},
		{"extra-rparen", "1)", new(ParseError), 1, []string{`"\)"`, `byte 1`}},
		{"trailing-term", "1 2", new(ParseError), 2, []string{`"2"`}},
		{"open-paren", "(1", new(ParseError), 2, []string{`(?i)end of input`}},
		{"open-abs", "|1", new(ParseError), 2, []string{`(?i)end of input`}},
		{"double-neg", "--2", new(ParseError), 1, []string{`"-"`, `byte 1`}},
		{"pow-neg", "2^-1", new(ParseError), 2, []string{`"-"`}},
		{"neg-alone", "-", new(ParseError), 1, []string{`(?i)end of input`}},
		{"op-first", "*2", new(ParseError), 0, []string{`"\*"`}},
		{"dangling-op", "1+", new(ParseError), 2, []string{`(?i)end of input`}},
		{"empty-args", "f()", new(ParseError), 2, []string{`"\)"`}},
		{"trailing-comma", "max(1,)", new(ParseError), 6, []string{`"\)"`}},
		{"open-call", "max(1,", new(ParseError), 6, []string{`(?i)end of input`}},
		{"comma-outside", "1,2", new(ParseError), 1, []string{`","`}},
		// Characters outside the grammar lex as ordinary tokens and fail
		// here, with the parser naming the exact text and offset.
		{"bad-char", "2+$", new(ParseError), 2, []string{`"\$"`, `byte 2`}},
		{"bad-rune", "2+π", new(ParseError), 2, []string{`π`, `byte 2`}},
		{"stray-dot", "1 . 2", new(ParseError), 2, []string{`"\."`, `byte 2`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			ie := err.(InputError)
			if ie.Pos() != c.pos {
				t.Errorf("wrong position from %q: want %d, got %d", c.src, c.pos, ie.Pos())
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	src := "max(2*x, |y-3|)^2 // 7 + sin(w) - 10!"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}
