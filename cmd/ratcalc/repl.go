package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// interactive runs a session on the terminal with line editing and history.
// If stdin is not a terminal, it reads lines plainly instead.
func interactive(s *session, stdin io.Reader, cfg config) error {
	if f, ok := stdin.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return s.run(stdin, true)
	}
	if cfg.Caret {
		s.indent = len([]rune(cfg.Prompt))
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	loadHistory(line, cfg.History)
	defer saveHistory(line, cfg.History)

	for {
		text, err := line.Prompt(cfg.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
		if isQuit(text) {
			return nil
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		line.AppendHistory(text)
		s.eval(text)
	}
}

func loadHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warnf("couldn't read history: %v", err)
		}
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		log.Warnf("couldn't read history from %s: %v", path, err)
	}
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Warnf("couldn't save history: %v", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		log.Warnf("couldn't save history to %s: %v", path, err)
	}
}
