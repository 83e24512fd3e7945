package calc

import (
	"io"
	"strings"
)

// Expr = Prefix { Infix }
// Prefix = num [ '(' Expr ')' | name ] | '(' Expr ')' | '-' Neg | name | Call | Assign | '|' Expr '|' [ num ]
// Neg = num | '(' Expr ')' | name
// Call = func '(' Expr { ',' Expr } ')' | func '_' Expr '(' Expr ')'
// Assign = name '=' Expr
// Infix = ('+' | '-' | '*' | '/' | '^' | '=') Expr | '!' { '!' } | '%' | '(' Expr ')'

// Expr is a parsed expression. Variables in it were resolved when it was
// parsed, so evaluating it again always gives the same result.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// parser is a cursor over a token list. Subexpressions are parsed by parsers
// sharing the same list with a narrower bound.
type parser struct {
	toks []lexToken
	// pos is the index of the next token. end is the index of the token that
	// bounds this parser's range; the parser never consumes it.
	pos, end int
	env      *Env
	// staged holds assignments made during the parse. They are committed to
	// env only if the whole expression parses.
	staged *[]binding
	rebind bool
}

const (
	wantTerm = "a number, '(' or unary operator"
	wantNeg  = "a number, '(' or name"
)

// Parse parses an expression. Names in the expression are resolved in env,
// and assignments in it are added to env if the parse succeeds. If env is
// nil, a new Env with only the constants is used.
func Parse(src io.RuneScanner, env *Env) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if env == nil {
		env = NewEnv()
	}
	var staged []binding
	p := parser{
		toks:   toks,
		end:    len(toks) - 1,
		env:    env,
		staged: &staged,
		rebind: env.rebinds(),
	}
	n, err := p.whole()
	if err != nil {
		return nil, err
	}
	env.commit(staged)
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, env *Env) (*Expr, error) {
	return Parse(strings.NewReader(src), env)
}

// sub creates a parser over toks[start:end] sharing p's state.
func (p *parser) sub(start, end int) *parser {
	return &parser{
		toks:   p.toks,
		pos:    start,
		end:    end,
		env:    p.env,
		staged: p.staged,
		rebind: p.rebind,
	}
}

// peek returns the next token without consuming it. If the parser is at the
// end of its range, the result is the bounding token and false.
func (p *parser) peek() (lexToken, bool) {
	if p.pos >= p.end {
		return p.toks[p.end], false
	}
	return p.toks[p.pos], true
}

// next consumes and returns the next token. If the parser is at the end of its
// range, the result is the bounding token and false, and nothing is consumed.
func (p *parser) next() (lexToken, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// whole parses the parser's entire range as one expression.
func (p *parser) whole() (*node, error) {
	if p.pos >= p.end {
		tok := p.toks[p.end]
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.describe()}
	}
	// Every token either has a binding power of at least zero or is an error
	// in infix position, so this consumes the whole range.
	return p.primary(0)
}

// primary parses a prefix term followed by any infix operators that bind at
// least as tightly as min.
func (p *parser) primary(min int) (*node, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind.prec() < min {
			return left, nil
		}
		left, err = p.infix(left)
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) prefix() (*node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &TokenError{Col: tok.pos, Want: wantTerm}
	}
	switch tok.kind {
	case tokenNum:
		return p.number(tok)
	case tokenOpen:
		return p.paren(tok)
	case tokenMinus:
		return p.neg(tok)
	case tokenIdent:
		return p.ident(tok)
	case tokenBar:
		return p.absolute(tok)
	default:
		return nil, &TokenError{Col: tok.pos, Found: tok.text, Want: wantTerm}
	}
}

// neg parses the operand of a unary minus. Only a number, a parenthesized
// group, or a name may follow.
func (p *parser) neg(minus lexToken) (*node, error) {
	neg := Operator{Kind: OpSub}
	tok, ok := p.next()
	if !ok {
		return nil, &TokenError{Col: tok.pos, After: "unary '-'", Want: wantNeg}
	}
	var n *node
	var err error
	switch tok.kind {
	case tokenNum:
		n, err = p.number(tok)
	case tokenOpen:
		n, err = p.paren(tok)
	case tokenIdent:
		n, err = p.ident(tok)
	default:
		return nil, &TokenError{Col: tok.pos, Found: tok.text, After: "unary '-'", Want: wantNeg}
	}
	if err != nil {
		return nil, err
	}
	return unary(neg, n), nil
}

// number parses a numeric literal. A literal followed immediately by a
// parenthesized group or a name multiplies it: 2(x) -> (2) * (x), 2pi -> (2) * (pi).
func (p *parser) number(tok lexToken) (*node, error) {
	n := num(tok.num)
	t, ok := p.peek()
	if !ok {
		return n, nil
	}
	var rhs *node
	var err error
	switch t.kind {
	case tokenOpen:
		p.pos++
		rhs, err = p.paren(t)
	case tokenIdent:
		p.pos++
		rhs, err = p.ident(t)
	default:
		return n, nil
	}
	if err != nil {
		return nil, err
	}
	return binary(n, OpMul, rhs), nil
}

// closing finds the index of the close parenthesis matching open, whose
// contents begin at p.pos.
func (p *parser) closing(open lexToken) (int, error) {
	depth := 1
	for i := p.pos; i < p.end; i++ {
		switch p.toks[i].kind {
		case tokenOpen:
			depth++
		case tokenClose:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &BracketError{Col: open.pos, Left: open.text, Unmatched: depth}
}

// paren parses a parenthesized group whose open parenthesis has already been
// consumed.
func (p *parser) paren(open lexToken) (*node, error) {
	end, err := p.closing(open)
	if err != nil {
		return nil, err
	}
	n, err := p.sub(p.pos, end).whole()
	if err != nil {
		return nil, err
	}
	p.pos = end + 1
	return n, nil
}

// absolute parses the contents of |expr|. The group ends at the next bar, so
// bars do not nest. A number directly after the closing bar multiplies the
// group.
func (p *parser) absolute(bar lexToken) (*node, error) {
	end := -1
	for i := p.pos; i < p.end; i++ {
		if p.toks[i].kind == tokenBar {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, &BracketError{Col: bar.pos, Left: bar.text, Unmatched: 1}
	}
	inner, err := p.sub(p.pos, end).whole()
	if err != nil {
		return nil, err
	}
	p.pos = end + 1
	n := unary(Operator{Kind: OpAbs}, inner)
	if tok, ok := p.peek(); ok && tok.kind == tokenNum {
		p.pos++
		n = binary(n, OpMul, num(tok.num))
	}
	return n, nil
}

func (p *parser) ident(tok lexToken) (*node, error) {
	if fn := builtins[tok.text]; fn != nil {
		return p.call(tok, fn)
	}
	return p.variable(tok)
}

// call parses the arguments of a builtin function.
func (p *parser) call(name lexToken, fn Func) (*node, error) {
	after := quote(name.text)
	tok, ok := p.next()
	if !ok {
		return nil, &TokenError{Col: tok.pos, After: after, Want: "'('"}
	}
	var args []*node
	switch tok.kind {
	case tokenOpen:
		var err error
		args, err = p.arglist(tok)
		if err != nil {
			return nil, err
		}
		if name.text == "log" && len(args) == 1 {
			// log(x) is the common logarithm.
			args = append([]*node{num(10)}, args...)
		}
		if !fn.CanCall(len(args)) {
			return nil, &CallError{Col: tok.pos, Func: name.text, Len: len(args)}
		}
	case tokenUnder:
		sub, err := p.subscript(name)
		if err != nil {
			return nil, err
		}
		args = sub
	default:
		return nil, &TokenError{Col: tok.pos, Found: tok.text, After: after, Want: "'('"}
	}
	return &node{kind: nodeCall, name: name.text, args: args}, nil
}

// subscript parses log_b(x) or root_n(x) after the underscore. The base is
// every token up to the next open parenthesis.
func (p *parser) subscript(name lexToken) ([]*node, error) {
	if name.text != "log" && name.text != "root" {
		return nil, &TokenError{Col: p.toks[p.pos-1].pos, Found: "_", After: quote(name.text), Want: "'('"}
	}
	open := -1
	for i := p.pos; i < p.end; i++ {
		if p.toks[i].kind == tokenOpen {
			open = i
			break
		}
	}
	if open < 0 {
		return nil, &TokenError{Col: p.toks[p.end].pos, After: "subscript of " + quote(name.text), Want: "'('"}
	}
	base, err := p.sub(p.pos, open).whole()
	if err != nil {
		return nil, err
	}
	p.pos = open + 1
	arg, err := p.paren(p.toks[open])
	if err != nil {
		return nil, err
	}
	if name.text == "root" {
		// root takes the radicand first.
		return []*node{arg, base}, nil
	}
	return []*node{base, arg}, nil
}

// arglist parses a parenthesized, comma-separated list of one or more
// arguments whose open parenthesis has already been consumed.
func (p *parser) arglist(open lexToken) ([]*node, error) {
	end, err := p.closing(open)
	if err != nil {
		return nil, err
	}
	var args []*node
	start, depth := p.pos, 0
	for i := p.pos; i < end; i++ {
		switch p.toks[i].kind {
		case tokenOpen:
			depth++
		case tokenClose:
			depth--
		case tokenComma:
			if depth != 0 {
				continue
			}
			arg, err := p.sub(start, i).whole()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			start = i + 1
		}
	}
	arg, err := p.sub(start, end).whole()
	if err != nil {
		return nil, err
	}
	p.pos = end + 1
	return append(args, arg), nil
}

// variable parses a reference to or an assignment of a variable.
func (p *parser) variable(tok lexToken) (*node, error) {
	v, constant := p.lookup(tok.text)
	t, ok := p.peek()
	assign := ok && t.kind == tokenEqual
	if v != nil && !(assign && p.rebind) {
		// Without rebinding, x = y on a defined x is a comparison, which the
		// caller parses as an infix operator.
		return &node{kind: nodeVar, name: tok.text, left: v}, nil
	}
	if !assign {
		return nil, &NameError{Col: tok.pos, Name: tok.text}
	}
	if constant {
		return nil, &AssignError{Col: tok.pos, Name: tok.text}
	}
	p.pos++
	rhs, err := p.primary(tokenEqual.prec() + 1)
	if err != nil {
		return nil, err
	}
	*p.staged = append(*p.staged, binding{name: tok.text, value: rhs})
	// An assignment's own value signals success.
	return num(1), nil
}

// lookup resolves a name against the environment and the assignments staged
// in this parse, in the order the environment would see them once committed.
func (p *parser) lookup(name string) (*node, bool) {
	staged := *p.staged
	if p.rebind {
		for i := len(staged) - 1; i >= 0; i-- {
			if staged[i].name == name {
				return staged[i].value.clone(), false
			}
		}
		return p.env.resolve(name)
	}
	if v, c := p.env.resolve(name); v != nil {
		return v, c
	}
	for _, b := range staged {
		if b.name == name {
			return b.value.clone(), false
		}
	}
	return nil, false
}

// infix parses the operator following left and whatever operand it takes.
func (p *parser) infix(left *node) (*node, error) {
	tok, _ := p.next()
	switch tok.kind {
	case tokenPlus, tokenMinus, tokenStar, tokenSlash:
		right, err := p.primary(tok.kind.prec() + 1)
		if err != nil {
			return nil, err
		}
		return binary(left, binops[tok.kind], right), nil
	case tokenCaret:
		// Right-associative: 2^3^2 -> 2^(3^2).
		right, err := p.primary(tok.kind.prec())
		if err != nil {
			return nil, err
		}
		return binary(left, OpPow, right), nil
	case tokenBang:
		depth := 1
		for {
			t, ok := p.peek()
			if !ok || t.kind != tokenBang {
				break
			}
			p.pos++
			depth++
		}
		return unary(Operator{Kind: OpFactorial, Depth: depth}, left), nil
	case tokenOpen:
		// (expr)(expr) -> (expr) * (expr)
		right, err := p.paren(tok)
		if err != nil {
			return nil, err
		}
		return binary(left, OpMul, right), nil
	case tokenPercent:
		return percent(left), nil
	case tokenEqual:
		// The right side takes everything up to the end, so a = b% is
		// a = (b%) rather than (a = b)%.
		right, err := p.primary(0)
		if err != nil {
			return nil, err
		}
		return binary(left, OpEqual, right), nil
	default:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
	}
}

var binops = map[tokenKind]OpKind{
	tokenPlus:  OpAdd,
	tokenMinus: OpSub,
	tokenStar:  OpMul,
	tokenSlash: OpDiv,
}

// percent rewrites an expression followed by %. The percentage applies to
// the trailing value relative to what precedes it, so a+b% is a plus b
// percent of a.
func percent(n *node) *node {
	switch n.kind {
	case nodeNum:
		// n% -> 1 % n
		return binary(num(1), OpPercent, n)
	case nodeBinary:
		// a op b% -> a op (a % b)
		return &node{
			kind:  nodeBinary,
			op:    n.op,
			left:  n.left.clone(),
			right: binary(n.left, OpPercent, n.right),
		}
	case nodeUnary:
		// op(a)% -> op(a % a)
		return unary(n.op, binary(n.left.clone(), OpPercent, n.left))
	case nodeCall:
		// f(x)% -> f(x) % f(x)
		return binary(n.clone(), OpPercent, n)
	case nodeVar:
		// x% -> 1 % value(x)
		return binary(num(1), OpPercent, n.left)
	default:
		panic("calc: percent of invalid node " + n.kind.String())
	}
}

// Vars returns the names of the variables the expression refers to, sorted
// and without duplicates.
func (e *Expr) Vars() []string {
	seen := make(map[string]bool)
	e.n.names(seen)
	r := make([]string, 0, len(seen))
	for k := range seen {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

func (n *node) names(seen map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == nodeVar {
		seen[n.name] = true
		return
	}
	n.left.names(seen)
	n.right.names(seen)
	for _, a := range n.args {
		a.names(seen)
	}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}
