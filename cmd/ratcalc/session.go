package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"fortio.org/log"
	"github.com/cznic/mathutil"
	"github.com/fatih/color"

	"github.com/zephyrtronium/ratcalc"
)

// session evaluates lines against one set of variables and prints the
// results.
type session struct {
	vars ratcalc.Vars
	out  io.Writer
	errc *color.Color
	// indent is the width of the prompt preceding each line, for drawing the
	// caret. Negative disables the caret.
	indent int
	// failed records whether any line has failed.
	failed bool
}

func newSession(vars ratcalc.Vars, out io.Writer, colored bool) *session {
	errc := color.New(color.FgRed, color.Bold)
	if !colored {
		errc.DisableColor()
	}
	return &session{vars: vars, out: out, errc: errc, indent: -1}
}

// eval evaluates one line and prints its result or error. The result is false
// if the line failed.
func (s *session) eval(text string) bool {
	log.Debugf("eval %q", text)
	toks, err := ratcalc.LexString(text)
	if err == nil {
		log.LogVf("tokens %v", tokenKinds(toks))
		var r *ratcalc.Number
		r, err = ratcalc.Eval(toks, s.vars)
		if err == nil {
			if name := assignTarget(toks, s.vars); name != "" {
				log.LogVf("bound %s = %v", name, r)
			}
			fmt.Fprintln(s.out, r)
			return true
		}
	}
	s.failed = true
	s.report(text, err)
	return false
}

func tokenKinds(toks []ratcalc.Token) []string {
	r := make([]string, len(toks))
	for i, tok := range toks {
		r[i] = tok.Kind.String() + "(" + tok.Text + ")"
	}
	return r
}

// assignTarget returns the name a statement binds in vars, or "" if it binds
// nothing.
func assignTarget(toks []ratcalc.Token, vars ratcalc.Vars) string {
	if _, ok := vars.(*ratcalc.Env); !ok || len(toks) < 2 {
		return ""
	}
	if toks[0].Kind != ratcalc.TokenIdent || toks[1].Kind != ratcalc.TokenAssign {
		return ""
	}
	return toks[0].Text
}

// report prints an evaluation error in the form "lex error: msg!" or
// "parse error: msg!".
func (s *session) report(text string, err error) {
	var ie ratcalc.InputError
	if s.indent >= 0 && errors.As(err, &ie) {
		col := mathutil.Clamp(ie.Pos(), 1, len([]rune(text))+1)
		fmt.Fprintf(s.out, "%s^\n", strings.Repeat(" ", s.indent+col-1))
	}
	kind := "parse"
	var le *ratcalc.LexError
	if errors.As(err, &le) {
		kind = "lex"
	}
	s.errc.Fprintf(s.out, "%s error: %v!", kind, err)
	fmt.Fprintln(s.out)
}

// run evaluates each non-blank line of in. If quit is true, a line that is
// exactly "exit", "quit", or "q" ends the input.
func (s *session) run(in io.Reader, quit bool) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64<<10), math.MaxInt)
	n := 0
	for sc.Scan() {
		n++
		text := sc.Text()
		if quit && isQuit(text) {
			break
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if !s.eval(text) {
			log.Debugf("line %d failed", n)
		}
	}
	return sc.Err()
}

func isQuit(text string) bool {
	switch strings.TrimSpace(text) {
	case "exit", "quit", "q":
		return true
	default:
		return false
	}
}
