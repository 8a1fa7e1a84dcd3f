// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"testing"

	"matfree.dev/matfree/parse"
)

func TestDirectory(t *testing.T) {
	if len(Directory) == 0 {
		t.Fatal("empty library")
	}
	for i, l := range Directory {
		if i > 0 && Directory[i-1].Name >= l.Name {
			t.Errorf("directory not sorted at %s", l.Name)
		}
		prog, err := parse.Parse(l.Name+".m", l.Source)
		if err != nil {
			t.Errorf("%s: %v", l.Name, err)
			continue
		}
		if len(prog.Stmts) != 0 || len(prog.Funcs) != 1 {
			t.Errorf("%s: %d statements and %d functions; want one function", l.Name, len(prog.Stmts), len(prog.Funcs))
			continue
		}
		if prog.Funcs[0].Name != l.Name {
			t.Errorf("%s.m defines %s", l.Name, prog.Funcs[0].Name)
		}
		if l.Doc == "" {
			t.Errorf("%s has no help line", l.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	l, ok := Lookup("primes")
	if !ok {
		t.Fatal("primes not found")
	}
	if want := "PRIMES  Prime numbers less than or equal to n, as a row vector."; l.Doc != want {
		t.Errorf("doc %q; want %q", l.Doc, want)
	}
	if _, ok := Lookup("nosuchfunction"); ok {
		t.Error("found nosuchfunction")
	}
}
