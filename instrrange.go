// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

// TransferOverInstructions computes the live-in set at the first
// instruction of code, given the live-out set at the end of code, by
// applying the same gen/kill recurrence transfer.go uses one instruction at
// a time instead of once for the whole block.
//
// This is not part of the core block-granularity contract (Analyze never
// calls it), but is exposed for downstream consumers (a register allocator
// building per-instruction live ranges, for instance) that need finer
// granularity than LiveIn/LiveOut provide. universe must be the same
// Universe that produced liveOut (ordinarily obtained from a prior call to
// Analyze over the same CFG); mixing universes across VarSets silently
// compares unrelated bit positions.
func TransferOverInstructions(code []Instruction, liveOut VarSet, universe *Universe) VarSet {
	live := liveOut
	for i := len(code) - 1; i >= 0; i-- {
		instr := code[i]
		use := universe.fromSlice(instr.Uses())
		def := universe.fromSlice(instr.Defines())
		live = live.Difference(def).Union(use)
	}
	return live
}
