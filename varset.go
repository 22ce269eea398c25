// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Universe interns Variable values to dense bitset indices for one Analyze
// call. It is built incrementally while the transfer builder walks every
// block's instructions (see transfer.go), then frozen: intern is only ever
// called with variables observed during that walk, and VarSet.Slice relies
// on the universe's variables being in their final, canonical (sorted)
// order by the time any query runs.
//
// This generalizes the index-interning map (varIndices) historically kept
// ad hoc inside a single liveness build in this package's predecessor; here
// it is a standalone type shared by every VarSet produced during one
// Analyze call, which is what lets VarSet.Equal reduce to a word-level
// bitset comparison instead of a structural walk.
type Universe struct {
	indexOf map[Variable]uint
	vars    []Variable
	sorted  bool

	// err records the first InterfaceContract violation observed while
	// interning (a nil Variable surfacing from Uses/Defines). Analyze
	// checks it once, after building every block's transfer, and fails
	// fast rather than propagating a corrupt universe into the fixpoint.
	err error
}

func newUniverse() *Universe {
	return &Universe{indexOf: make(map[Variable]uint)}
}

// intern returns v's dense index, assigning a fresh one if v has not been
// seen before. A nil v cannot satisfy Variable's value-equality contract;
// intern records the violation in u.err and returns a placeholder index
// rather than panicking, so the remainder of a block's fold can complete
// before Analyze surfaces the error.
func (u *Universe) intern(v Variable) uint {
	if v == nil {
		if u.err == nil {
			u.err = ErrInterfaceContract
		}
		return 0
	}
	if idx, ok := u.indexOf[v]; ok {
		return idx
	}
	idx := uint(len(u.vars))
	u.indexOf[v] = idx
	u.vars = append(u.vars, v)
	u.sorted = false
	return idx
}

// sortedVars returns every interned Variable, resorting the backing
// slice by canonical (Less) order first if new variables were interned
// since the last sort. Re-sorting does not change any index: interning
// never reassigns an existing Variable's bit position (VarSet bits are
// keyed by interning order, not by sorted position), so a slice sort here
// is purely cosmetic for Slice()'s output order.
func (u *Universe) sortedVars() []Variable {
	if !u.sorted {
		sort.Slice(u.vars, func(i, j int) bool { return u.vars[i].Less(u.vars[j]) })
		u.sorted = true
	}
	return u.vars
}

func (u *Universe) empty() VarSet {
	return VarSet{universe: u, bits: new(bitset.BitSet)}
}

func (u *Universe) fromSlice(vs []Variable) VarSet {
	s := u.empty()
	for _, v := range vs {
		s.bits.Set(u.intern(v))
	}
	return s
}

// VarSet is an immutable-by-convention ordered set of Variable, backed by a
// bitset over a shared Universe. Two VarSets built from different universes
// must never be combined; doing so would silently compare unrelated bit
// positions. Every VarSet returned by this package shares the Universe of
// the Analyze call that produced it.
type VarSet struct {
	universe *Universe
	bits     *bitset.BitSet
}

// isZero reports whether s is the unconfigured zero value (as opposed to an
// explicitly constructed empty set tied to a universe).
func (s VarSet) isZero() bool {
	return s.universe == nil
}

// Union returns the set union of s and other. Both must share a Universe
// (or either/both may be the zero VarSet, treated as empty).
func (s VarSet) Union(other VarSet) VarSet {
	u := s.pickUniverse(other)
	if u == nil {
		return VarSet{}
	}
	return VarSet{universe: u, bits: s.bitsOrEmpty().Union(other.bitsOrEmpty())}
}

// Difference returns the elements of s not present in other.
func (s VarSet) Difference(other VarSet) VarSet {
	u := s.pickUniverse(other)
	if u == nil {
		return VarSet{}
	}
	return VarSet{universe: u, bits: s.bitsOrEmpty().Difference(other.bitsOrEmpty())}
}

// Equal reports structural equality: same elements, regardless of the
// variables' discovery order.
func (s VarSet) Equal(other VarSet) bool {
	// bitset.Equal also compares bit lengths, which differ between sets
	// with the same elements; compare the elements only.
	return s.bitsOrEmpty().SymmetricDifferenceCardinality(other.bitsOrEmpty()) == 0
}

// Empty reports whether s has no elements.
func (s VarSet) Empty() bool {
	return s.bitsOrEmpty().None()
}

// Len returns the number of elements in s.
func (s VarSet) Len() int {
	return int(s.bitsOrEmpty().Count())
}

// Contains reports whether v is an element of s.
func (s VarSet) Contains(v Variable) bool {
	if s.isZero() {
		return false
	}
	idx, ok := s.universe.indexOf[v]
	if !ok {
		return false
	}
	return s.bits.Test(idx)
}

// Slice returns the elements of s as a slice in the universe's canonical
// (Less) order. The result must not be mutated.
func (s VarSet) Slice() []Variable {
	if s.isZero() || s.bits.None() {
		return nil
	}
	out := make([]Variable, 0, s.Len())
	for _, v := range s.universe.sortedVars() {
		if s.bits.Test(s.universe.indexOf[v]) {
			out = append(out, v)
		}
	}
	return out
}

func (s VarSet) pickUniverse(other VarSet) *Universe {
	switch {
	case s.universe != nil:
		return s.universe
	case other.universe != nil:
		return other.universe
	default:
		return nil
	}
}

func (s VarSet) bitsOrEmpty() *bitset.BitSet {
	if s.isZero() {
		return new(bitset.BitSet)
	}
	return s.bits
}
