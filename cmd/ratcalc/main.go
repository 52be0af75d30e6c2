package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"git.sr.ht/~sircmpwn/getopt"

	"github.com/zephyrtronium/ratcalc"
)

const usage = `usage: ratcalc [-hnv] [-c config] [file | expression...]

With no arguments, ratcalc reads expressions interactively. With a single
argument that does not start with a digit, it evaluates each line of that
file ("-" for stdin). Otherwise, the arguments are joined into one expression
evaluated without variables.

  -c config  read settings from config
  -h         print this help
  -n         disable colored output
  -v         log debugging information
`

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout))
}

// run executes the command line args and returns the exit status.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	opts, optind, err := getopt.Getopts(args, "c:hnv")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	cfgpath, must := defaultConfigPath(), false
	nocolor := false
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			cfgpath, must = opt.Value, true
		case 'h':
			fmt.Fprint(stdout, usage)
			return 0
		case 'n':
			nocolor = true
		case 'v':
			log.SetLogLevel(log.Debug)
		}
	}
	args = args[optind:]

	cfg, err := loadConfig(cfgpath, must)
	if err != nil {
		log.Errf("couldn't load config: %v", err)
		return 2
	}
	if nocolor {
		cfg.Color = false
	}
	log.Debugf("config %+v", cfg)

	switch {
	case len(args) == 0:
		s := newSession(ratcalc.NewEnv(), stdout, cfg.Color)
		if err := interactive(s, stdin, cfg); err != nil {
			log.Errf("%v", err)
			return 2
		}
		return 0
	case len(args) == 1 && !startsWithDigit(args[0]):
		return script(args[0], stdin, stdout, cfg)
	default:
		s := newSession(ratcalc.Stateless, stdout, cfg.Color)
		if !s.eval(strings.Join(args, " ")) {
			return 1
		}
		return 0
	}
}

// script evaluates each line of a file with one shared environment. The exit
// status is 1 if any line fails.
func script(name string, stdin io.Reader, stdout io.Writer, cfg config) int {
	in := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			log.Errf("could not open file: %v", err)
			return 2
		}
		defer f.Close()
		in = f
	}
	s := newSession(ratcalc.NewEnv(), stdout, cfg.Color)
	if err := s.run(in, false); err != nil {
		log.Errf("could not read %s: %v", name, err)
		return 2
	}
	if s.failed {
		return 1
	}
	return 0
}

func startsWithDigit(s string) bool {
	return s != "" && '0' <= s[0] && s[0] <= '9'
}
