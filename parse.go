package calc

// The parser is a hand-written recursive descent over the following LL(1)
// grammar, one method per nonterminal, lowest binding first. The tail
// nonterminals (E1', E2', ...) are the fold loops inside each method.
//
//	P    -> E1 end
//	E1   -> E2 E1'        E1' -> '+' E2 E1' | '-' E2 E1' | e
//	E2   -> E3 E2'        E2' -> '*' E3 E2' | '/' E3 E2' | '//' E3 E2' | '%' E3 E2' | e
//	E3   -> '-' E4 | E4
//	E4   -> E5 E4'        E4' -> '^' E5 E4' | e
//	E5   -> E6 E5'        E5' -> '!' E5' | e
//	E6   -> num | id A | '(' E1 ')' | '|' E1 '|'
//	A    -> '(' L ')' | e
//	L    -> E1 L'         L' -> ',' E1 L' | e
//
// terminals:
//
//	id   = [a-zA-Z][a-zA-Z0-9]*
//	num  = (0|[1-9][0-9]*)(\.[0-9]+)?
//	end  = the lexer's end-of-input sentinel ($ below)
//
// FIRST sets:
//
//	Fi(E6)  = num id ( |
//	Fi(E5)  = Fi(E4) = Fi(E6)
//	Fi(E3)  = Fi(E2) = Fi(E1) = num id ( | -
//	Fi(E5') = ! e      Fi(E4') = ^ e
//	Fi(E2') = * / // % e
//	Fi(E1') = + - e    Fi(L')  = , e
//	Fi(A)   = ( e
//
// FOLLOW sets:
//
//	Fo(E1)  = Fo(E1') = ) | , $
//	Fo(E2)  = Fo(E2') = + - ) | , $
//	Fo(E3)  = Fo(E4)  = Fo(E4') = * / // % + - ) | , $
//	Fo(E5)  = Fo(E5') = ^ * / // % + - ) | , $
//	Fo(E6)  = Fo(A)   = ! ^ * / // % + - ) | , $
//	Fo(L)   = Fo(L')  = )
//
// Every lookahead outside the expected FIRST and FOLLOW sets surfaces as a
// ParseError at that token, either where an atom was required (E6) or where
// a specific closing token was required (')', '|', end).
//
// '+ - * / // %' fold left; '^' folds right; '!' stacks; unary '-' takes an
// E4, so "-2^2" is "-(2^2)" and a second '-' needs parentheses.

// Expr is a parsed expression. Compile turns it into an evaluatable Code.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Lisp returns the fully parenthesized prefix form of the expression, e.g.
// "(- (^ 2 2))" for "-2^2". Literals keep their source spelling.
func (e *Expr) Lisp() string {
	return e.n.String()
}

func (e *Expr) String() string {
	return e.Lisp()
}

// Parse parses an expression. The input must be a single complete
// expression; anything after it is a ParseError at the first extra token.
func Parse(src string) (*Expr, error) {
	p := parser{scan: lex(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseE1()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokenEnd {
		return nil, perr(p.cur)
	}
	return &Expr{n: n}, nil
}

// parser holds the lexer and the single lookahead token.
type parser struct {
	scan *lexer
	cur  token
}

// advance replaces the lookahead with the next token.
func (p *parser) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// expect consumes the lookahead if it is the given operator and fails with a
// ParseError at it otherwise.
func (p *parser) expect(text string) error {
	if p.cur.kind != tokenOp || p.cur.text != text {
		return perr(p.cur)
	}
	return p.advance()
}

// op reports whether the lookahead is the given operator.
func (p *parser) op(text string) bool {
	return p.cur.kind == tokenOp && p.cur.text == text
}

// parseE1 parses a sum: E1 -> E2 (('+'|'-') E2)*, folded left.
func (p *parser) parseE1() (*node, error) {
	n, err := p.parseE2()
	if err != nil {
		return nil, err
	}
	for p.op("+") || p.op("-") {
		kind := nodeAdd
		if p.cur.text == "-" {
			kind = nodeSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseE2()
		if err != nil {
			return nil, err
		}
		n = &node{kind: kind, kids: []*node{n, rhs}}
	}
	return n, nil
}

// parseE2 parses a product: E2 -> E3 (('*'|'/'|'//'|'%') E3)*, folded left.
func (p *parser) parseE2() (*node, error) {
	n, err := p.parseE3()
	if err != nil {
		return nil, err
	}
	for {
		var kind nodeKind
		switch {
		case p.op("*"):
			kind = nodeMul
		case p.op("/"):
			kind = nodeDiv
		case p.op("//"):
			kind = nodeFloorDiv
		case p.op("%"):
			kind = nodeMod
		default:
			return n, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseE3()
		if err != nil {
			return nil, err
		}
		n = &node{kind: kind, kids: []*node{n, rhs}}
	}
}

// parseE3 parses an optionally negated power: E3 -> '-' E4 | E4. The operand
// of '-' is an E4, so the sign covers the whole power but cannot repeat.
func (p *parser) parseE3() (*node, error) {
	if p.op("-") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseE4()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNeg, kids: []*node{rhs}}, nil
	}
	return p.parseE4()
}

// parseE4 parses a power: E4 -> E5 ('^' E5)*. The run of operands is
// collected flat and folded from the right, so 2^3^2 is 2^(3^2).
func (p *parser) parseE4() (*node, error) {
	lhs, err := p.parseE5()
	if err != nil {
		return nil, err
	}
	run := []*node{lhs}
	for p.op("^") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseE5()
		if err != nil {
			return nil, err
		}
		run = append(run, rhs)
	}
	n := run[len(run)-1]
	for i := len(run) - 2; i >= 0; i-- {
		n = &node{kind: nodePow, kids: []*node{run[i], n}}
	}
	return n, nil
}

// parseE5 parses factorials: E5 -> E6 '!'*. Postfix and stackable, so 3!!
// is (3!)!.
func (p *parser) parseE5() (*node, error) {
	n, err := p.parseE6()
	if err != nil {
		return nil, err
	}
	for p.op("!") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n = &node{kind: nodeFact, kids: []*node{n}}
	}
	return n, nil
}

// parseE6 parses an atom: a literal, a variable or function call, a
// parenthesized expression, or an absolute value.
func (p *parser) parseE6() (*node, error) {
	switch {
	case p.cur.kind == tokenNum:
		n := &node{kind: nodeNum, name: p.cur.text}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	case p.cur.kind == tokenIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.op("(") {
			return &node{kind: nodeName, name: name}, nil
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: name, kids: args}, nil
	case p.op("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseE1()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return n, nil
	case p.op("|"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseE1()
		if err != nil {
			return nil, err
		}
		if err := p.expect("|"); err != nil {
			return nil, err
		}
		return &node{kind: nodeAbs, kids: []*node{n}}, nil
	}
	return nil, perr(p.cur)
}

// parseArgs parses a call's argument list, the A and L productions:
// '(' E1 (',' E1)* ')'. The lookahead is the opening paren. The list is
// never empty; "f()" is a ParseError at the ')'.
func (p *parser) parseArgs() ([]*node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []*node
	for {
		a, err := p.parseE1()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if !p.op(",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}
