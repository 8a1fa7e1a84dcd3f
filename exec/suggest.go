// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"matfree.dev/matfree/value"
)

// maxDistance is the largest edit distance at which a name is suggested.
const maxDistance = 2

// undefined raises the error for a name that is neither a variable nor a
// function, suggesting a known name that is spelled similarly.
func (c *Context) undefined(name string) {
	if s := c.Suggest(name); s != "" {
		value.Errorf(value.UndefinedName, "Undefined function or variable '%s'. Did you mean '%s'?", name, s)
	}
	value.Errorf(value.UndefinedName, "Undefined function or variable '%s'.", name)
}

// Suggest returns the known variable or function name closest to name,
// or the empty string if none is close.
func (c *Context) Suggest(name string) string {
	candidates := c.env.Names()
	for n := range c.builtins {
		candidates = append(candidates, n)
	}
	candidates = append(candidates, c.FunctionNames()...)

	// A name containing the misspelling as a subsequence, such as
	// "numel" for "nmel", ranks first.
	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		if ranks[0].Distance <= maxDistance {
			return ranks[0].Target
		}
	}
	best, bestDist := "", maxDistance+1
	sort.Strings(candidates)
	for _, cand := range candidates {
		if d := fuzzy.LevenshteinDistance(name, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}
