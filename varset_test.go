// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import "testing"

type varsetTestVar string

func (v varsetTestVar) Less(other Variable) bool { return v < other.(varsetTestVar) }

func vs(u *Universe, names ...string) VarSet {
	vars := make([]Variable, len(names))
	for i, n := range names {
		vars[i] = varsetTestVar(n)
	}
	return u.fromSlice(vars)
}

func TestVarSetUnionDifferenceEqual(t *testing.T) {
	u := newUniverse()

	a := vs(u, "x", "y")
	b := vs(u, "y", "z")

	union := a.Union(b)
	if got := union.Len(); got != 3 {
		t.Fatalf("Union length = %d, want 3", got)
	}

	diff := a.Difference(b)
	if diff.Len() != 1 || !diff.Contains(varsetTestVar("x")) {
		t.Fatalf("Difference = %v, want {x}", diff.Slice())
	}

	if a.Equal(b) {
		t.Fatalf("a and b should not be equal")
	}
	c := vs(u, "y", "x")
	if !a.Equal(c) {
		t.Fatalf("a and c should be equal regardless of construction order")
	}
}

func TestVarSetSliceIsSortedByLess(t *testing.T) {
	u := newUniverse()
	s := vs(u, "c", "a", "b")

	slice := s.Slice()
	if len(slice) != 3 {
		t.Fatalf("Slice length = %d, want 3", len(slice))
	}
	for i := 1; i < len(slice); i++ {
		if !slice[i-1].Less(slice[i]) {
			t.Fatalf("Slice() not sorted: %v", slice)
		}
	}
}

func TestVarSetZeroValueIsEmpty(t *testing.T) {
	var zero VarSet
	if !zero.Empty() {
		t.Fatalf("zero VarSet should be empty")
	}
	if zero.Len() != 0 {
		t.Fatalf("zero VarSet length = %d, want 0", zero.Len())
	}
	if zero.Contains(varsetTestVar("x")) {
		t.Fatalf("zero VarSet should not contain anything")
	}
}

func TestUniverseInternNilVariableSetsErr(t *testing.T) {
	u := newUniverse()
	u.intern(nil)
	if u.err == nil {
		t.Fatalf("expected interning a nil Variable to record an error")
	}
}
