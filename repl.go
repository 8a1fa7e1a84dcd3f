// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/lib"
	"matfree.dev/matfree/parse"
	"matfree.dev/matfree/run"
)

// isTTY is replaced on systems that can tell.
var isTTY = func(uintptr) bool { return false }

const (
	historyFile   = ".matfree_history"
	defaultPrompt = ">> "
	continuation  = "... "
)

// repl reads units from the terminal and runs them until EOF or quit.
// A unit whose parse is incomplete, such as an if without its end, is
// continued on the following lines.
func repl(context *exec.Context) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return completions(context, line)
	})

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		f, err := os.Create(histPath)
		if err != nil {
			log.LogVf("history: %v", err)
			return
		}
		ln.WriteHistory(f)
		f.Close()
	}()

	for {
		prompt := conf.Prompt()
		if prompt == "" {
			prompt = defaultPrompt
		}
		src, ok := readUnit(ln, prompt)
		if !ok {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		switch {
		case line == "quit" || line == "exit":
			return
		case line == "clc":
			fmt.Print("\033[H\033[2J")
		case line == "help" || strings.HasPrefix(line, "help "):
			run.Special(context, ")"+line)
		case run.IsSpecial(line):
			run.Special(context, line)
		default:
			run.Source(context, "<stdin>", src+"\n")
		}
	}
}

// readUnit reads lines until they parse or fail to parse for a reason other
// than running out of input. It reports false at EOF.
func readUnit(ln *liner.State, prompt string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = continuation
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Control-C discards the unit.
			return "", true
		}
		if err != nil {
			log.Errf("%v", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if run.IsSpecial(src) {
			return src, true
		}
		if _, err := parse.Parse("<stdin>", src+"\n"); err != nil && parse.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// completions returns the lines formed by completing the identifier at the
// end of line with the names of variables and functions.
func completions(context *exec.Context, line string) []string {
	i := len(line)
	for i > 0 && isIdentByte(line[i-1]) {
		i--
	}
	prefix := line[i:]
	if prefix == "" {
		return nil
	}
	names := append(context.Root().Names(), context.BuiltinNames()...)
	names = append(names, context.FunctionNames()...)
	for _, l := range lib.Directory {
		names = append(names, l.Name)
	}
	seen := map[string]bool{}
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, line[:i]+name)
		}
	}
	sort.Strings(out)
	return out
}

func isIdentByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
