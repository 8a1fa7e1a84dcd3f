// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that may hold the path of a config file.
const EnvVar = "MATFREE_CONFIG"

// File is the on-disk form of a configuration.
type File struct {
	Prompt   string          `yaml:"prompt"`
	Format   string          `yaml:"format"`
	Path     []string        `yaml:"path"`
	Debug    map[string]bool `yaml:"debug"`
	MaxDepth int             `yaml:"max_depth"`
	Seed     *int64          `yaml:"seed"`
	LogLevel string          `yaml:"log_level"`
}

// Decode reads a YAML configuration. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, err
	}
	if _, ok := ParseFormat(f.Format); !ok {
		return nil, fmt.Errorf("format must be short or long, not %q", f.Format)
	}
	if f.MaxDepth < 0 {
		return nil, fmt.Errorf("max_depth must not be negative: %d", f.MaxDepth)
	}
	return &f, nil
}

// Load reads the YAML configuration at path.
func Load(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	f, err := Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// DefaultPath returns the config file to use when none is named explicitly:
// $MATFREE_CONFIG if set, else ~/.matfree.yaml. The empty string means none.
func DefaultPath() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".matfree.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// Apply copies the settings in f into c. Relative path entries are
// resolved against base, normally the directory holding the file.
func (f *File) Apply(c *Config, base string) {
	if f.Prompt != "" {
		c.SetPrompt(f.Prompt)
	}
	format, _ := ParseFormat(f.Format)
	c.SetFormat(format)
	for _, dir := range f.Path {
		if !filepath.IsAbs(dir) && base != "" {
			dir = filepath.Join(base, dir)
		}
		c.AppendPath(dir)
	}
	for k, v := range f.Debug {
		c.SetDebug(k, v)
	}
	if f.MaxDepth > 0 {
		c.SetMaxDepth(f.MaxDepth)
	}
	if f.Seed != nil {
		c.SetRandomSeed(*f.Seed)
	}
}
