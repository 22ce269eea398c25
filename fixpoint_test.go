// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import (
	"context"
	"testing"
)

type fpTestVar string

func (v fpTestVar) Less(other Variable) bool { return v < other.(fpTestVar) }

type fpTestLabel string

func (l fpTestLabel) String() string { return string(l) }

type fpTestInstr struct {
	use, def []Variable
}

func (i fpTestInstr) Uses() []Variable    { return i.use }
func (i fpTestInstr) Defines() []Variable { return i.def }

type fpTestCFG struct {
	order []Label
	succs map[Label][]Label
	code  map[Label][]Instruction
}

func (c *fpTestCFG) Postorder() []Label             { return c.order }
func (c *fpTestCFG) Successors(l Label) []Label     { return c.succs[l] }
func (c *fpTestCFG) BlockCode(l Label) []Instruction { return c.code[l] }

// selfLoopCFG builds a single block that branches to itself and to an exit
// block, directly against the internal types, so this test can reach into
// *Result.store after Analyze to drive one further manual sweep and check
// idempotence.
func selfLoopCFG() *fpTestCFG {
	i := fpTestVar("i")
	l0, l1 := fpTestLabel("L0"), fpTestLabel("L1")
	return &fpTestCFG{
		order: []Label{l1, l0},
		succs: map[Label][]Label{l0: {l0, l1}, l1: {}},
		code: map[Label][]Instruction{
			l0: {
				fpTestInstr{use: []Variable{i}, def: []Variable{i}},
				fpTestInstr{use: []Variable{i}},
			},
			l1: {},
		},
	}
}

func TestFixpointIdempotent(t *testing.T) {
	cfg := selfLoopCFG()
	result, err := Analyze(context.Background(), cfg, Config{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// One further manual sweep over the already-converged store must
	// make no changes.
	stats, err := runFixpoint(context.Background(), result.store, result.order, result.exitLive, false)
	if err != nil {
		t.Fatalf("runFixpoint: %v", err)
	}
	if stats.Sweeps != 1 {
		t.Fatalf("expected exactly one no-op sweep, got %d sweeps", stats.Sweeps)
	}
}

func TestFixpointMonotonicity(t *testing.T) {
	// A hand-instrumented two-block chain where we can observe live-in
	// at L0 only grow across manual sweeps, by resetting the store to its
	// pre-fixpoint state and single-stepping.
	a, b := fpTestVar("a"), fpTestVar("b")
	l0, l1 := fpTestLabel("L0"), fpTestLabel("L1")
	cfg := &fpTestCFG{
		order: []Label{l1, l0},
		succs: map[Label][]Label{l0: {l1}, l1: {}},
		code: map[Label][]Instruction{
			l0: {},
			l1: {fpTestInstr{use: []Variable{a, b}}},
		},
	}

	universe := newUniverse()
	transfers := map[Label]Transfer{}
	for _, l := range cfg.order {
		gen, kill := buildTransfer(cfg.BlockCode(l), universe)
		transfers[l] = Transfer{Gen: gen, Kill: kill}
	}

	st := newStore()
	entries := []labelEntry{
		{label: l1, entry: &BlockEntry{Transfer: transfers[l1], LiveIn: universe.empty(), Successors: nil}},
		{label: l0, entry: &BlockEntry{Transfer: transfers[l0], LiveIn: universe.empty(), Successors: []Label{l1}}},
	}
	if err := st.init(entries); err != nil {
		t.Fatalf("init: %v", err)
	}

	prev := universe.empty()
	for i := 0; i < 3; i++ {
		stats, err := runFixpointOneSweep(st, cfg.order, universe.empty())
		_ = stats
		if err != nil {
			t.Fatalf("sweep %d: %v", i, err)
		}
		l0Entry, _ := st.lookup(l0)
		if !isSuperset(l0Entry.LiveIn, prev) {
			t.Fatalf("sweep %d: live-in(L0) did not grow monotonically", i)
		}
		prev = l0Entry.LiveIn
	}
}

// runFixpointOneSweep runs exactly one sweep for the monotonicity test
// above, using a copy of runFixpoint's single-sweep body (runFixpoint
// itself loops to a fixpoint, which would hide intermediate states).
func runFixpointOneSweep(s *store, order []Label, exitLive VarSet) (Stats, error) {
	var stats Stats
	stats.Sweeps = 1
	for _, l := range order {
		entry, err := s.lookup(l)
		if err != nil {
			return stats, err
		}
		liveOut := exitLive
		if len(entry.Successors) > 0 {
			liveOut = VarSet{}
			for _, succ := range entry.Successors {
				succEntry, err := s.lookup(succ)
				if err != nil {
					return stats, err
				}
				liveOut = liveOut.Union(succEntry.LiveIn)
			}
		}
		newLiveIn := entry.Transfer.Gen.Union(liveOut.Difference(entry.Transfer.Kill))
		if err := s.update(l, newLiveIn); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func isSuperset(s, sub VarSet) bool {
	for _, v := range sub.Slice() {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}
