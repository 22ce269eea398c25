// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package liveness implements a backward dataflow liveness analysis over an
// abstract control flow graph of basic blocks containing instructions that
// read and write named variables.
//
// The package has no knowledge of any particular instruction set, CFG
// representation, or source language. A host compiler supplies a CFG value
// (see the CFG, Instruction, Variable and Label interfaces below); Analyze
// computes, for every reachable block, the set of variables live on entry
// and (derived) on exit.
//
// This is the classical iterative algorithm for computing live variables
// (Aho, Sethi & Ullman, Compilers: Principles, Techniques and Tools),
// generalized from a particular instruction representation to the abstract
// contract below.
package liveness

import "context"

// Variable is an opaque program variable. Implementations must have value
// equality (safe to use as a Go map key or compare with ==) and must
// implement Less to provide a total order; the order has no semantic
// meaning to the analysis but is used to build a deterministic dense index
// for VarSet (see Universe) and to produce stable debug output.
type Variable interface {
	// Less reports whether this variable sorts before other in the
	// analysis's canonical variable order.
	Less(other Variable) bool
}

// Label is an opaque identifier for a basic block, unique within one CFG.
// Implementations must have value equality (safe to use as a Go map key).
type Label interface {
	String() string
}

// Instruction is a single operation within a basic block.
type Instruction interface {
	// Uses returns the variables read by this instruction before any of
	// its own writes take effect.
	Uses() []Variable

	// Defines returns the variables written by this instruction.
	Defines() []Variable
}

// CFG is the read-only view a host compiler exposes to Analyze. All methods
// must be pure and side-effect free from the analysis's perspective.
type CFG interface {
	// Postorder returns a depth-first postorder traversal of reachable
	// labels, starting from the CFG's entry block. Each reachable label
	// appears exactly once. Analyze sweeps until nothing changes, so any
	// order listing every reachable label once reaches the same result; a
	// genuine DFS postorder (blocks appear after their successors within
	// one DFS tree) is what lets updates propagate within a single sweep.
	Postorder() []Label

	// Successors returns the labels of L's immediate successors. The
	// slice may be empty (L has no successors) and may contain
	// duplicates; Analyze deduplicates through set union.
	Successors(L Label) []Label

	// BlockCode returns the instructions of block L, in execution order.
	BlockCode(L Label) []Instruction
}

// Config holds the options recognized by Analyze. The zero value is valid
// and selects the default (empty exit-live set, no instrumentation, and
// PrettyPrint/Annotate disabled for the resulting Result).
type Config struct {
	// ExitLive lists the variables considered live past a block that has
	// no successors (e.g. callee-saved or return-value registers live at
	// procedure exit). Defaults to empty. Supplied as a plain slice,
	// rather than a VarSet, because a VarSet is only meaningful relative
	// to the Universe Analyze builds internally for this call; Analyze
	// interns ExitLive into that same Universe so it can be unioned with
	// every other VarSet the analysis produces.
	ExitLive []Variable

	// CollectMaxLiveSet enables peak live-in-set-size instrumentation,
	// retrievable from Result.Stats after Analyze returns. It never
	// changes the computed liveness result.
	CollectMaxLiveSet bool

	// DebugAnnotate, when true, enables PrettyPrint/Annotate (see
	// debug.go) for the resulting Result. Both return
	// errDebugAnnotateDisabled if called against a Result from an Analyze
	// call that left this false.
	DebugAnnotate bool
}

// Analyze computes the liveness fixpoint for cfg and returns the frozen
// result. The returned *Result is safe for concurrent read-only use by
// multiple goroutines once Analyze has returned.
//
// ctx is checked once per outer worklist sweep (never mid-block); a
// compilation driver embedding this pass in a larger pipeline may use it to
// bound wall-clock time. Cancellation does not alter the semantics of any
// sweep that has already completed, but an Analyze call that observes a
// cancelled context returns ctx.Err() with a partially converged (and
// therefore unreliable) result discarded.
func Analyze(ctx context.Context, cfg CFG, cfgConfig Config) (*Result, error) {
	order := cfg.Postorder()

	universe := newUniverse()
	transfers := make(map[Label]Transfer, len(order))
	for _, l := range order {
		gen, kill := buildTransfer(cfg.BlockCode(l), universe)
		transfers[l] = Transfer{Gen: gen, Kill: kill}
	}
	if universe.err != nil {
		return nil, universe.err
	}

	successors := make(map[Label][]Label, len(order))
	for _, l := range order {
		successors[l] = dedupLabels(cfg.Successors(l))
	}

	st := newStore()
	entries := make([]labelEntry, 0, len(order))
	for _, l := range order {
		entries = append(entries, labelEntry{
			label: l,
			entry: &BlockEntry{
				Transfer:   transfers[l],
				LiveIn:     universe.empty(),
				Successors: successors[l],
			},
		})
	}
	if err := st.init(entries); err != nil {
		return nil, err
	}

	exitLive := universe.fromSlice(cfgConfig.ExitLive)
	if universe.err != nil {
		return nil, universe.err
	}

	stats, err := runFixpoint(ctx, st, order, exitLive, cfgConfig.CollectMaxLiveSet)
	if err != nil {
		return nil, err
	}
	if !cfgConfig.CollectMaxLiveSet {
		stats = Stats{}
	}

	// Sort the universe now so that VarSet.Slice on the returned Result
	// only reads it.
	universe.sortedVars()

	return &Result{
		store:         st,
		order:         order,
		exitLive:      exitLive,
		stats:         stats,
		universe:      universe,
		debugAnnotate: cfgConfig.DebugAnnotate,
	}, nil
}

func dedupLabels(ls []Label) []Label {
	if len(ls) < 2 {
		return ls
	}
	seen := make(map[Label]struct{}, len(ls))
	out := make([]Label, 0, len(ls))
	for _, l := range ls {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

type labelEntry struct {
	label Label
	entry *BlockEntry
}
