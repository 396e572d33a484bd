// file parser.go is a small Pratt-style recursive-descent parser over the
// token stream produced by the lexer in token.go. It accepts a broad,
// Python-flavored expression grammar rich enough for spec.md's examples:
// arithmetic, comparisons, bitwise ops, list literals with spread, list
// comprehensions, slicing/indexing, function application, and lambda.
package lang

import (
	"fmt"

	"github.com/dekarrin/pbe/internal/synerr"
)

type parser struct {
	lex  *lexer
	cur  token
	peek token
}

func newParser(src string) *parser {
	p := &parser{lex: newLexer(src)}
	p.cur = p.lex.next()
	p.peek = p.lex.next()
	return p
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.next()
}

func (p *parser) expect(k tokKind, what string) error {
	if p.cur.kind != k {
		return synerr.New(fmt.Sprintf("expected %s", what), synerr.ErrEval)
	}
	p.advance()
	return nil
}

// parse compiles src into an Expr. It is the sole entry point used by
// Compile in lang.go.
func parse(src string) (Expr, error) {
	p := newParser(src)
	expr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, synerr.New("unexpected trailing input", synerr.ErrEval)
	}
	return expr, nil
}

// parseTernary wraps parseExpr with the lowest-precedence "THEN if COND
// else ELSE" form. It is the entry point anywhere a full expression is
// expected (a top-level program, a lambda body, a parenthesized
// sub-expression, a list element, a call argument); parseExpr's own
// recursive calls for binary operands stay at their own precedence level
// and never see a bare ternary, matching Python's own precedence: a
// ternary tighter than a binary operator needs explicit parens.
func (p *parser) parseTernary() (Expr, error) {
	then, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokIdent || p.cur.text != "if" {
		return then, nil
	}
	p.advance()

	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	if p.cur.kind != tokIdent || p.cur.text != "else" {
		return nil, synerr.New("expected 'else' in conditional expression", synerr.ErrEval)
	}
	p.advance()

	elseExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	return ConditionalExpr{Cond: cond, Then: then, Else: elseExpr}, nil
}

// precedence levels, lowest to highest.
const (
	precNone = iota
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precAdd
	precMul
)

func binPrec(k tokKind) int {
	switch k {
	case tokEq, tokNe, tokLt, tokLe, tokGt, tokGe:
		return precCompare
	case tokPipe:
		return precBitOr
	case tokCaret:
		return precBitXor
	case tokAmp:
		return precBitAnd
	case tokPlus, tokMinus:
		return precAdd
	case tokStar, tokSlash, tokPercent:
		return precMul
	default:
		return precNone
	}
}

func (p *parser) parseExpr(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec := binPrec(p.cur.kind)
		if prec == precNone || prec < minPrec {
			return left, nil
		}
		op := p.cur.text
		p.advance()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = BinaryExpr{Op: op, L: left, R: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.cur.kind {
	case tokMinus:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return UnaryExpr{Op: "-", X: x}, nil
	case tokTilde:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return UnaryExpr{Op: "~", X: x}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur.kind {
		case tokLParen:
			p.advance()
			var args []Expr
			for p.cur.kind != tokRParen {
				if len(args) > 0 {
					if err := p.expect(tokComma, "','"); err != nil {
						return nil, err
					}
				}
				a, err := p.parseTernary()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
			}
			if err := p.expect(tokRParen, "')'"); err != nil {
				return nil, err
			}
			x = CallExpr{Fn: x, Args: args}

		case tokLBrack:
			p.advance()
			var lo, hi Expr
			isSlice := false
			if p.cur.kind != tokColon && p.cur.kind != tokRBrack {
				lo, err = p.parseExpr(0)
				if err != nil {
					return nil, err
				}
			}
			if p.cur.kind == tokColon {
				isSlice = true
				p.advance()
				if p.cur.kind != tokRBrack {
					hi, err = p.parseExpr(0)
					if err != nil {
						return nil, err
					}
				}
			}
			if err := p.expect(tokRBrack, "']'"); err != nil {
				return nil, err
			}
			if isSlice {
				x = SliceExpr{X: x, Lo: lo, Hi: hi}
			} else {
				x = IndexExpr{X: x, Index: lo}
			}

		default:
			return x, nil
		}
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.cur.kind {
	case tokNum:
		var n int64
		for _, c := range p.cur.text {
			n = n*10 + int64(c-'0')
		}
		p.advance()
		return IntLit{Value: n}, nil

	case tokString:
		s := p.cur.text
		p.advance()
		return StringLit{Value: s}, nil

	case tokIdent:
		if p.cur.text == "lambda" {
			return p.parseLambda()
		}
		name := p.cur.text
		p.advance()
		return Ident{Name: name}, nil

	case tokLParen:
		p.advance()
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case tokLBrack:
		return p.parseListOrComp()

	default:
		return nil, synerr.New("unexpected token in expression", synerr.ErrEval)
	}
}

func (p *parser) parseLambda() (Expr, error) {
	p.advance() // consume "lambda"

	var params []string
	for p.cur.kind == tokIdent {
		params = append(params, p.cur.text)
		p.advance()
		if p.cur.kind == tokComma {
			p.advance()
			continue
		}
		break
	}

	if err := p.expect(tokColon, "':'"); err != nil {
		return nil, err
	}

	body, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	return LambdaExpr{Params: params, Body: body}, nil
}

func (p *parser) parseListOrComp() (Expr, error) {
	p.advance() // consume '['

	if p.cur.kind == tokRBrack {
		p.advance()
		return ListExpr{}, nil
	}

	first, firstSpread, err := p.parseListElement()
	if err != nil {
		return nil, err
	}

	if p.cur.kind == tokIdent && p.cur.text == "for" && !firstSpread {
		p.advance()
		if p.cur.kind != tokIdent {
			return nil, synerr.New("expected loop variable in comprehension", synerr.ErrEval)
		}
		loopVar := p.cur.text
		p.advance()

		if p.cur.kind != tokIdent || p.cur.text != "in" {
			return nil, synerr.New("expected 'in' in comprehension", synerr.ErrEval)
		}
		p.advance()

		iter, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}

		var cond Expr
		if p.cur.kind == tokIdent && p.cur.text == "if" {
			p.advance()
			cond, err = p.parseExpr(0)
			if err != nil {
				return nil, err
			}
		}

		if err := p.expect(tokRBrack, "']'"); err != nil {
			return nil, err
		}
		return ListCompExpr{Elem: first, Var: loopVar, Iter: iter, Cond: cond}, nil
	}

	elems := []ListElem{{X: first, Spread: firstSpread}}
	for p.cur.kind == tokComma {
		p.advance()
		if p.cur.kind == tokRBrack {
			break
		}
		e, spread, err := p.parseListElement()
		if err != nil {
			return nil, err
		}
		elems = append(elems, ListElem{X: e, Spread: spread})
	}

	if err := p.expect(tokRBrack, "']'"); err != nil {
		return nil, err
	}
	return ListExpr{Elems: elems}, nil
}

func (p *parser) parseListElement() (Expr, bool, error) {
	if p.cur.kind == tokStar {
		p.advance()
		x, err := p.parseExpr(precAdd)
		if err != nil {
			return nil, false, err
		}
		return x, true, nil
	}
	x, err := p.parseTernary()
	if err != nil {
		return nil, false, err
	}
	return x, false, nil
}
