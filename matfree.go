// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"

	"matfree.dev/matfree/config"
	"matfree.dev/matfree/demo"
	"matfree.dev/matfree/exec"
	"matfree.dev/matfree/run"
)

var (
	execute    = flag.Bool("e", false, "execute arguments as independent units of source")
	demoFlag   = flag.Bool("demo", false, "run the demo")
	format     = flag.String("format", "", "number display `format`: short or long")
	prompt     = flag.String("prompt", "", "interactive `prompt`")
	debugFlag  = flag.String("debug", "", "comma-separated `names` of debug settings to enable")
	seed       = flag.Int64("seed", 0, "random number `seed`")
	logLevel   = flag.String("loglevel", "", "log `level`: debug, verbose, info, warning, error")
	configFile = flag.String("config", "", "configuration `file`; default $"+config.EnvVar+" or ~/.matfree.yaml")
	pathFlag   multiFlag
)

func init() {
	flag.Var(&pathFlag, "p", "add `dir` to the function search path; can be set multiple times")
}

var conf config.Config

func main() {
	flag.Usage = usage
	flag.Parse()

	if err := setup(); err != nil {
		fmt.Fprintf(os.Stderr, "matfree: %s\n", err)
		os.Exit(2)
	}
	context := exec.NewContext(&conf)

	switch {
	case *demoFlag:
		runDemo(context)
	case *execute:
		for _, arg := range flag.Args() {
			if run.Source(context, "<args>", arg) != nil {
				os.Exit(1)
			}
		}
	case flag.NArg() > 0:
		for _, name := range flag.Args() {
			if run.File(context, name) != nil {
				os.Exit(1)
			}
		}
	case isTTY(os.Stdin.Fd()):
		repl(context)
	default:
		if run.Reader(context, "<stdin>", os.Stdin) != nil {
			os.Exit(1)
		}
	}
}

// setup builds the configuration: the config file first, then the flags,
// which take precedence.
func setup() error {
	file := *configFile
	if file == "" {
		file = config.DefaultPath()
	}
	if file != "" {
		f, err := config.Load(file)
		if err != nil {
			return err
		}
		f.Apply(&conf, filepath.Dir(file))
		if f.LogLevel != "" {
			if err := setLogLevel(f.LogLevel); err != nil {
				return err
			}
		}
		log.LogVf("loaded config %s", file)
	}
	if *logLevel != "" {
		if err := setLogLevel(*logLevel); err != nil {
			return err
		}
	}
	if *format != "" {
		f, ok := config.ParseFormat(*format)
		if !ok {
			return fmt.Errorf("format must be short or long, not %q", *format)
		}
		conf.SetFormat(f)
	}
	if *prompt != "" {
		conf.SetPrompt(*prompt)
	}
	if *debugFlag != "" {
		for _, name := range strings.Split(*debugFlag, ",") {
			conf.SetDebug(strings.TrimSpace(name), true)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			conf.SetRandomSeed(*seed)
		}
	})
	for _, dir := range pathFlag {
		conf.AppendPath(dir)
	}
	return nil
}

func setLogLevel(name string) error {
	level, err := log.ValidateLevel(name)
	if err != nil {
		return err
	}
	log.SetLogLevel(level)
	return nil
}

func runDemo(context *exec.Context) {
	step := func(line string) {
		if run.IsSpecial(line) {
			run.Special(context, line)
			return
		}
		run.Source(context, "demo", line)
	}
	var input io.Reader
	if isTTY(os.Stdin.Fd()) {
		input = os.Stdin
	}
	if err := demo.Run(input, step, conf.Output()); err != nil {
		log.Errf("demo: %v", err)
		os.Exit(1)
	}
}

// multiFlag allows setting a value multiple times to collect a list, as in -p=dir1 -p=dir2.
type multiFlag []string

func (m *multiFlag) String() string {
	return fmt.Sprint(*m)
}

func (m *multiFlag) Set(val string) error {
	(*m) = append(*m, val)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: matfree [options] [file.m ...]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	os.Exit(2)
}
