package ratcalc

import (
	"errors"
	"io"
)

// statement = name '=' bitwise | bitwise
// bitwise   = term { ('&' | '|' | '^') term }
// term      = product { ('+' | '-') product }
// product   = prefix { ('*' | '/' | '%') prefix }
// prefix    = ('+' | '-' | '~') literal | literal
// literal   = num | name | '(' bitwise ')'
//
// Bitwise operators bind more loosely than addition, so 1 + 2 & 3 is
// (1 + 2) & 3. Each rule evaluates as it parses; there is no syntax tree.

// parser is the state of evaluating one line.
type parser struct {
	toks []Token
	k    int
	vars Vars
	// end is the column just past the last token, for errors at the end of
	// the input.
	end int
}

// peek returns the kind of the next token, or tokenNone at the end.
func (p *parser) peek() TokenKind {
	if p.k >= len(p.toks) {
		return tokenNone
	}
	return p.toks[p.k].Kind
}

// next consumes the next token. At the end, the result has kind tokenNone and
// the position of the end of the input.
func (p *parser) next() Token {
	if p.k >= len(p.toks) {
		return Token{Pos: p.end}
	}
	tok := p.toks[p.k]
	p.k++
	return tok
}

// Eval evaluates the statement in toks. If vars is an *Env and the statement
// is an assignment, the result is bound in vars once the right-hand side
// evaluates without error. Evaluation stops at the first error, and vars is
// unchanged. Tokens after a complete expression are ignored. A nil vars is the
// same as Stateless.
func Eval(toks []Token, vars Vars) (*Number, error) {
	if vars == nil {
		vars = Stateless
	}
	p := parser{toks: toks, vars: vars}
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		p.end = last.Pos + len(last.Text)
	} else {
		p.end = 1
	}
	if _, ok := vars.(*Env); ok && len(toks) >= 2 && toks[0].Kind == TokenIdent && toks[1].Kind == TokenAssign {
		p.k = 2
		r, err := p.bitwise()
		if err != nil {
			return nil, err
		}
		if err := vars.assign(toks[0].Text, r); err != nil {
			return nil, &EvalError{Col: toks[0].Pos, Err: err}
		}
		// The environment owns r now.
		return r.Clone(), nil
	}
	// Without variables, the target of an assignment is just an identifier
	// that fails to resolve.
	return p.bitwise()
}

func (p *parser) bitwise() (*Number, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var f func(*Number, *Number) error
		switch p.peek() {
		case TokenAnd:
			f = (*Number).And
		case TokenOr:
			f = (*Number).Or
		case TokenXor:
			f = (*Number).Xor
		default:
			return lhs, nil
		}
		op := p.next()
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		if err := f(lhs, rhs); err != nil {
			return nil, &EvalError{Col: op.Pos, Err: err}
		}
	}
}

func (p *parser) term() (*Number, error) {
	lhs, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		k := p.peek()
		if k != TokenAdd && k != TokenSub {
			return lhs, nil
		}
		p.next()
		rhs, err := p.product()
		if err != nil {
			return nil, err
		}
		if k == TokenAdd {
			lhs.Add(rhs)
		} else {
			lhs.Sub(rhs)
		}
	}
}

func (p *parser) product() (*Number, error) {
	lhs, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		k := p.peek()
		if k != TokenMul && k != TokenQuo && k != TokenRem {
			return lhs, nil
		}
		op := p.next()
		rhs, err := p.prefix()
		if err != nil {
			return nil, err
		}
		switch k {
		case TokenMul:
			lhs.Mul(rhs)
		case TokenQuo:
			err = lhs.Quo(rhs)
		case TokenRem:
			err = lhs.Rem(rhs)
		}
		if err != nil {
			return nil, &EvalError{Col: op.Pos, Err: err}
		}
	}
}

func (p *parser) prefix() (*Number, error) {
	switch p.peek() {
	case TokenAdd:
		p.next()
		return p.literal()
	case TokenSub:
		p.next()
		r, err := p.literal()
		if err != nil {
			return nil, err
		}
		return r.Neg(), nil
	case TokenNot:
		op := p.next()
		r, err := p.literal()
		if err != nil {
			return nil, err
		}
		if err := r.Not(); err != nil {
			return nil, &EvalError{Col: op.Pos, Err: err}
		}
		return r, nil
	default:
		return p.literal()
	}
}

// literal evaluates a number, a variable, or a parenthesized expression. The
// result is always a fresh Number that the caller may modify.
func (p *parser) literal() (*Number, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenNum:
		return NewUint(tok.Val), nil
	case TokenIdent:
		v, err := p.vars.lookup(tok.Text)
		if err != nil {
			if errors.Is(err, errUndefined) {
				return nil, &NameError{Name: tok.Text, Col: tok.Pos}
			}
			return nil, &EvalError{Col: tok.Pos, Err: err}
		}
		return v.Clone(), nil
	case TokenOpen:
		r, err := p.bitwise()
		if err != nil {
			return nil, err
		}
		end := p.next()
		if end.Kind != TokenClose {
			return nil, &SyntaxError{Col: end.Pos, Want: "')'", Got: end.Text}
		}
		return r, nil
	default:
		return nil, &SyntaxError{Col: tok.Pos, Want: "an integer, identifier or '('", Got: tok.Text}
	}
}

// EvalLine is a shortcut to scan and evaluate one line of input. It reads src
// through the next newline, so successive calls evaluate successive lines.
func EvalLine(src io.RuneScanner, vars Vars) (*Number, error) {
	toks, err := LexLine(src)
	if err != nil {
		return nil, err
	}
	return Eval(toks, vars)
}

// EvalString is a shortcut to scan and evaluate a string. Newlines in src are
// whitespace.
func EvalString(src string, vars Vars) (*Number, error) {
	toks, err := LexString(src)
	if err != nil {
		return nil, err
	}
	return Eval(toks, vars)
}
