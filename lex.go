package ratcalc

import (
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Token is a lexical token of an input line.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Text is the source text of the token.
	Text string
	// Val is the value of a TokenNum. It is nil for other kinds.
	Val *big.Int
	// Pos is the 1-based rune column where the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenIdent is a variable name.
	TokenIdent
	// TokenNum is a non-negative integer literal.
	TokenNum
	// TokenOpen and TokenClose are parentheses.
	TokenOpen
	TokenClose

	TokenAdd    // +
	TokenSub    // -
	TokenMul    // *
	TokenQuo    // /
	TokenRem    // %
	TokenAnd    // &
	TokenOr     // |
	TokenXor    // ^
	TokenNot    // ~
	TokenAssign // =
)

var tokenNames = [...]string{
	tokenNone:   "None",
	TokenIdent:  "Ident",
	TokenNum:    "Num",
	TokenOpen:   "Open",
	TokenClose:  "Close",
	TokenAdd:    "Add",
	TokenSub:    "Sub",
	TokenMul:    "Mul",
	TokenQuo:    "Quo",
	TokenRem:    "Rem",
	TokenAnd:    "And",
	TokenOr:     "Or",
	TokenXor:    "Xor",
	TokenNot:    "Not",
	TokenAssign: "Assign",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Operators contains the runes which lex as single-rune tokens, in the same
// order as their kinds starting at TokenOpen.
const Operators = "()+-*/%&|^~="

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	// line causes a newline to end the input.
	line bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// result is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		tok := Token{Pos: l.rune}
		r, err := l.readRune()
		if err != nil {
			return tok, err
		}
		switch {
		case r == '\n' && l.line:
			return tok, io.EOF
		case r == ' ', r == '\t', r == '\n', r == '\r':
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
			tok.Val, _ = new(big.Int).SetString(tok.Text, 10)
			return tok, nil
		case isLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenIdent
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Text = Operators[k : k+1]
				tok.Kind = TokenOpen + TokenKind(k)
				return tok, nil
			}
			return tok, &LexError{Char: r, Col: tok.Pos}
		}
	}
}

// scanNum scans a run of decimal digits.
func (l *lexer) scanNum() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !isDigit(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// scanIdent scans a letter followed by any letters and digits.
func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if !isLetter(r) && !isDigit(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Lex scans all tokens from src. If any token is invalid, the result is nil
// and a *LexError describing the first invalid rune.
func Lex(src io.RuneScanner) ([]Token, error) {
	return lexAll(lex(src))
}

// LexLine scans tokens from src through the next newline, which is consumed.
// Errors are as for Lex. After an invalid token, the rest of the line is
// discarded.
func LexLine(src io.RuneScanner) ([]Token, error) {
	scan := lex(src)
	scan.line = true
	toks, err := lexAll(scan)
	if err != nil {
		for {
			r, _, rerr := src.ReadRune()
			if rerr != nil || r == '\n' {
				break
			}
		}
	}
	return toks, err
}

func lexAll(scan *lexer) ([]Token, error) {
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// LexString is a shortcut to scan all tokens in a string.
func LexString(src string) ([]Token, error) {
	return Lex(strings.NewReader(src))
}
