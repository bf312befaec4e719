package safexpr

import (
	"errors"
	"strconv"
	"strings"
)

// Expr = Term { ('+' | '-') Term }
// Term = Unary { ('*' | '/' | '%') Unary }
// Unary = '-' Unary | Power
// Power = Primary [ '**' Unary ]
// Primary = num | name | name '(' [ Expr { ',' Expr } [ ',' ] ] ')' | '(' Expr ')'

// MaxLength is the longest source, in bytes, that Parse accepts.
const MaxLength = 10000

// Expr is a parsed expression that can be evaluated with a binding for x.
// An Expr is immutable and safe for concurrent use.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// src is the normalized source text.
	src string
	// names is the list of variable names used in the expression.
	names []string
}

// Normalize prepares user text for parsing: surrounding whitespace is
// trimmed, letters are lowered, and ^ becomes **.
func Normalize(src string) string {
	src = strings.ToLower(strings.TrimSpace(src))
	return strings.ReplaceAll(src, "^", PowOperator)
}

// Parse parses an expression so it can be evaluated. src is normalized
// first, and error positions refer to the normalized text.
func Parse(src string) (*Expr, error) {
	if len(src) > MaxLength {
		return nil, &LengthError{Len: len(src), Max: MaxLength}
	}
	src = Normalize(src)
	scan := lex(strings.NewReader(src))
	n, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	names := make(map[string]bool)
	n.collect(names)
	ex := Expr{
		n:     n,
		src:   src,
		names: make([]string, 0, len(names)),
	}
	for k := range names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic("safexpr: " + strconv.Quote(src) + ": " + err.Error())
	}
	return e
}

// collect adds the names of n and its descendants to names.
func (n *node) collect(names map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == nodeName {
		names[n.name] = true
	}
	n.left.collect(names)
	n.right.collect(names)
	for _, a := range n.args {
		a.collect(names)
	}
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, until operator) (*node, error) {
	n, err := parselhs(scan, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen:
			// Juxtaposition is not multiplication.
			return nil, &TokenError{Col: tok.pos, Text: tok.text}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("safexpr: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// The lexer only produces valid float syntax.
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		// Out of range literals are infinity or zero, like IEEE arithmetic.
		n = &node{kind: nodeNum, name: tok.text, num: v}
	case tokenIdent:
		next, err := scan.next()
		if err != nil {
			return nil, err
		}
		if next.kind != tokenOpen {
			scan.push(next)
			n = &node{kind: nodeName, name: tok.text}
			break
		}
		args, err := parsearglist(scan)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, name: tok.text, args: args}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// This might be part of a niladic f(), so just let the caller decide
		// what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("safexpr: unknown token: " + tok.String())
	}
	return n, nil
}

// parsearglist parses a parenthesized list of zero or more args after the
// open parenthesis has been scanned. It consumes the close parenthesis.
func parsearglist(scan *lexer) ([]*node, error) {
	var args []*node
	for {
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: "("}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if rhs == nil {
				// f() and f(a,) are allowed, but a lone f(,) never gets here.
				return args, nil
			}
			return append(args, rhs), nil
		case tokenSep:
			if rhs == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			args = append(args, rhs)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "(", Right: ""}
		default:
			panic("safexpr: parseterm ended on non-end token " + end.String())
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. paren is whether the subexpression was
// opened by a parenthesis.
func itShouldNotHaveEndedThisWay(tok lexToken, paren bool) error {
	left := ""
	if paren {
		left = "("
	}
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left, Right: ""}
	case tokenClose:
		// A close bracket at the end of an input has no partner.
		return &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("safexpr: it really should not have ended this way: " + tok.String())
	}
}

// Vars returns the names, other than functions, that the expression uses.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Source returns the normalized text the expression was parsed from.
func (e *Expr) Source() string {
	return e.src
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case PowOperator:
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
