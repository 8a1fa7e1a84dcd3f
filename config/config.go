// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings shared by the scanner, parser and
// interpreter of a session.
package config // import "matfree.dev/matfree/config"

import (
	"io"
	"math/rand"
	"os"
	"sync"
	"time"
)

// DefaultMaxDepth is the recursion limit used when none is set.
const DefaultMaxDepth = 256

// Format selects how non-integer numbers are displayed.
type Format int

const (
	Short Format = iota // 4 decimals
	Long                // 15 decimals
)

func (f Format) String() string {
	if f == Long {
		return "long"
	}
	return "short"
}

// Decimals returns the number of digits printed after the decimal point.
func (f Format) Decimals() int {
	if f == Long {
		return 15
	}
	return 4
}

// ParseFormat returns the Format named by s, which must be "short" or "long".
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "", "short":
		return Short, true
	case "long":
		return Long, true
	}
	return Short, false
}

type Config struct {
	once      sync.Once
	prompt    string
	format    Format
	path      []string
	debug     map[string]bool
	maxDepth  int
	output    io.Writer
	errOutput io.Writer
	seed      int64
	random    *rand.Rand
	tic       time.Time
}

func (c *Config) init() {
	c.once.Do(func() {
		if c.output == nil {
			c.output = os.Stdout
		}
		if c.errOutput == nil {
			c.errOutput = os.Stderr
		}
		if c.maxDepth == 0 {
			c.maxDepth = DefaultMaxDepth
		}
		c.random = rand.New(rand.NewSource(c.seed))
	})
}

// Output returns the writer to be used for program output.
func (c *Config) Output() io.Writer {
	c.init()
	return c.output
}

// SetOutput sets the writer to which program output is printed; default is os.Stdout.
func (c *Config) SetOutput(output io.Writer) {
	c.init()
	c.output = output
}

// ErrOutput returns the writer to be used for error output.
func (c *Config) ErrOutput() io.Writer {
	c.init()
	return c.errOutput
}

// SetErrOutput sets the writer to which error output is printed; default is os.Stderr.
func (c *Config) SetErrOutput(output io.Writer) {
	c.init()
	c.errOutput = output
}

func (c *Config) Format() Format {
	return c.format
}

func (c *Config) SetFormat(f Format) {
	c.format = f
}

// DebugFlags lists the names accepted by SetDebug.
var DebugFlags = []string{
	"cpu",   // Print elapsed and CPU time after each unit.
	"panic", // Do not recover from errors; show the Go stack.
	"parse", // Print each statement as parsed.
	"trace", // Trace function calls and returns.
}

// Debug reports whether the named debug flag is set.
func (c *Config) Debug(s string) bool {
	return c.debug[s]
}

func (c *Config) SetDebug(s string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[s] = state
}

func (c *Config) Prompt() string {
	return c.prompt
}

func (c *Config) SetPrompt(prompt string) {
	c.prompt = prompt
}

// Path returns the directories searched for function and script files, in order.
func (c *Config) Path() []string {
	return c.path
}

// AddPath puts dir at the front of the search path, removing any earlier entry for it.
func (c *Config) AddPath(dir string) {
	c.RemovePath(dir)
	c.path = append([]string{dir}, c.path...)
}

// AppendPath puts dir at the end of the search path.
func (c *Config) AppendPath(dir string) {
	c.RemovePath(dir)
	c.path = append(c.path, dir)
}

// RemovePath deletes dir from the search path. It reports whether dir was present.
func (c *Config) RemovePath(dir string) bool {
	for i, p := range c.path {
		if p == dir {
			c.path = append(c.path[:i:i], c.path[i+1:]...)
			return true
		}
	}
	return false
}

// MaxDepth returns the maximum depth of nested user function calls.
func (c *Config) MaxDepth() int {
	c.init()
	return c.maxDepth
}

func (c *Config) SetMaxDepth(depth int) {
	c.init()
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	c.maxDepth = depth
}

// Random returns the generator used by rand and randn.
func (c *Config) Random() *rand.Rand {
	c.init()
	return c.random
}

// RandomSeed returns the seed of the random number generator.
func (c *Config) RandomSeed() int64 {
	return c.seed
}

// SetRandomSeed resets the random number generator to the given seed.
func (c *Config) SetRandomSeed(seed int64) {
	c.init()
	c.seed = seed
	c.random = rand.New(rand.NewSource(seed))
}

// Tic returns the time recorded by the most recent tic, or the zero time.
func (c *Config) Tic() time.Time {
	return c.tic
}

func (c *Config) SetTic(t time.Time) {
	c.tic = t
}
