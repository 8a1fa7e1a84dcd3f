// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fortio.org/log"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"matfree.dev/matfree/config"
	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/lib"
	"matfree.dev/matfree/value"
)

// IsSpecial reports whether line is a session command, which begins with ')'.
func IsSpecial(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ")")
}

// Special executes a session command such as ")debug trace" or
// ")save file". A bad command is reported on the error output and returned.
func Special(c *exec.Context, line string) error {
	return protect(c, func() { special(c, line) })
}

func special(c *exec.Context, line string) {
	line = strings.TrimPrefix(strings.TrimSpace(line), ")")
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)
	conf := c.Config()
	out := conf.Output()
	switch cmd {
	case "":
		value.Errorf(value.InvalidArgument, "missing command after )")
	case "help":
		if len(args) == 0 {
			fmt.Fprint(out, specialHelp)
			break
		}
		helpName(c, args[0])
	case "about":
		if len(args) != 1 {
			value.Errorf(value.InvalidArgument, "usage: )about word")
		}
		about(c, args[0])
	case "clear":
		c.Env().ClearAll()
		c.ClearFunctions()
	case "debug":
		if len(args) == 0 {
			for _, f := range config.DebugFlags {
				fmt.Fprintf(out, "%s\t%d\n", f, truth(conf.Debug(f)))
			}
			break
		}
		if !knownDebug(args[0]) {
			value.Errorf(value.InvalidArgument, "no such debug flag: %s", args[0])
		}
		state := !conf.Debug(args[0])
		if len(args) > 1 {
			state = positive(args[1]) != 0
		}
		conf.SetDebug(args[0], state)
		fmt.Fprintf(out, "%s\t%d\n", args[0], truth(state))
	case "format":
		if len(args) == 0 {
			fmt.Fprintf(out, "%s\n", conf.Format())
			break
		}
		f, ok := config.ParseFormat(args[0])
		if !ok {
			value.Errorf(value.InvalidArgument, "format must be short or long, not %q", args[0])
		}
		conf.SetFormat(f)
	case "get":
		if len(args) != 1 {
			value.Errorf(value.InvalidArgument, "usage: )get file")
		}
		get(c, args[0])
	case "path":
		for _, dir := range args {
			conf.AppendPath(dir)
		}
		if len(args) > 0 {
			c.PathChanged()
			break
		}
		for _, dir := range conf.Path() {
			fmt.Fprintln(out, dir)
		}
	case "prompt":
		if rest == "" {
			fmt.Fprintf(out, "%q\n", conf.Prompt())
			break
		}
		p, err := strconv.Unquote(rest)
		if err != nil {
			value.Errorf(value.InvalidArgument, "prompt must be a quoted string: %s", rest)
		}
		conf.SetPrompt(p)
	case "save":
		if len(args) != 1 {
			value.Errorf(value.InvalidArgument, "usage: )save file")
		}
		save(c, args[0])
	case "seed":
		if len(args) == 0 {
			fmt.Fprintf(out, "%d\n", conf.RandomSeed())
			break
		}
		conf.SetRandomSeed(int64(positive(args[0])))
	default:
		value.Errorf(value.InvalidArgument, "unknown command )%s", cmd)
	}
}

const specialHelp = `)about word         list functions whose names resemble word
)clear              clear all variables and functions
)debug [flag [n]]   show or set debug flags
)format [short|long]
)get file           run the commands and statements in file
)help [name]        this list, or describe name
)path [dir...]      show or extend the function search path
)prompt "text"      set the interactive prompt
)save file          write the variables and settings to file
)seed [n]           show or set the random seed
`

// helpName reports what name refers to in the current session.
func helpName(c *exec.Context, name string) {
	out := c.Config().Output()
	_, isVar := c.Lookup(name)
	switch {
	case isVar:
		fmt.Fprintf(out, "%s is a variable\n", name)
	case c.Builtin(name) != nil:
		fmt.Fprintf(out, "%s is a builtin function\n", name)
	case c.Defined(name):
		fmt.Fprintf(out, "%s is a user-defined function\n", name)
	case inLibrary(name):
		l, _ := lib.Lookup(name)
		fmt.Fprintf(out, "%s is a library function: %s\n", name, l.Doc)
	default:
		msg := fmt.Sprintf("%s is not defined", name)
		if s := c.Suggest(name); s != "" {
			msg += fmt.Sprintf("; did you mean %s?", s)
		}
		fmt.Fprintln(out, msg)
	}
}

// about lists the function names that contain word as a subsequence,
// ignoring case.
func about(c *exec.Context, word string) {
	names := append(c.BuiltinNames(), c.FunctionNames()...)
	for _, l := range lib.Directory {
		names = append(names, l.Name)
	}
	found := fuzzy.FindFold(word, names)
	if len(found) == 0 {
		fmt.Fprintf(c.Config().Output(), "nothing about %s\n", word)
		return
	}
	fmt.Fprintln(c.Config().Output(), strings.Join(found, "  "))
}

// get executes a file of session commands and source text.
func get(c *exec.Context, file string) {
	fd, err := os.Open(file)
	if err != nil {
		value.Errorf(value.InvalidArgument, "%s", err)
	}
	defer fd.Close()
	if err := Reader(c, file, fd); err != nil {
		log.LogVf("run: %s: %v", file, err)
	}
}

// Reader executes the session commands and source text read from r.
// Consecutive source lines run as one unit, so they may hold multi-line
// constructs. Execution stops at the first unit or command that fails
// and its error, which has already been reported, is returned.
func Reader(c *exec.Context, name string, r io.Reader) error {
	var unit []string
	flush := func() error {
		if len(unit) == 0 {
			return nil
		}
		src := strings.Join(unit, "\n") + "\n"
		unit = unit[:0]
		return Source(c, name, src)
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !IsSpecial(line) {
			unit = append(unit, line)
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		if err := Special(c, line); err != nil {
			return err
		}
	}
	if err := flush(); err != nil {
		return err
	}
	return scanner.Err()
}

func inLibrary(name string) bool {
	_, ok := lib.Lookup(name)
	return ok
}

func knownDebug(name string) bool {
	for _, f := range config.DebugFlags {
		if f == name {
			return true
		}
	}
	return false
}

// positive parses a non-negative decimal number.
func positive(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		value.Errorf(value.InvalidArgument, "value must be a non-negative integer: %s", s)
	}
	return n
}

func truth(x bool) int {
	if x {
		return 1
	}
	return 0
}
