// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lib holds the library: functions written in the language
// itself, one per .m file in the src directory. A library function is found
// when a name is not a builtin, a user-defined function or a file on the
// search path.
package lib // import "matfree.dev/matfree/lib"

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed src/*.m
var files embed.FS

// Library holds the relevant information for a library entry.
type Library struct {
	Name   string
	Doc    string // The first comment line after the function line.
	Source string
}

// Directory lists the library entries sorted by name.
var Directory = load()

func load() []*Library {
	entries, err := files.ReadDir("src")
	if err != nil {
		panic(err)
	}
	var dir []*Library
	for _, e := range entries {
		data, err := files.ReadFile(path.Join("src", e.Name()))
		if err != nil {
			panic(err)
		}
		src := string(data)
		dir = append(dir, &Library{
			Name:   strings.TrimSuffix(e.Name(), path.Ext(e.Name())),
			Doc:    doc(src),
			Source: src,
		})
	}
	sort.Slice(dir, func(i, j int) bool { return dir[i].Name < dir[j].Name })
	return dir
}

// doc returns the help line of a function file.
func doc(src string) string {
	for _, line := range strings.Split(src, "\n")[1:] {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "%") {
			break
		}
		return strings.TrimSpace(strings.TrimLeft(line, "%"))
	}
	return ""
}

// Lookup returns the library entry for name.
func Lookup(name string) (*Library, bool) {
	i := sort.Search(len(Directory), func(i int) bool { return Directory[i].Name >= name })
	if i < len(Directory) && Directory[i].Name == name {
		return Directory[i], true
	}
	return nil, false
}
