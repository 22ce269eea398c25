// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

// Transfer is a block's backward dataflow transfer function, expressed as
// the pair (gen, kill):
//
//   gen(B)  = variables used in B before being redefined in B
//             (upward-exposed uses)
//   kill(B) = variables definitely defined in B whose prior value is not
//             upward-exposed past the definition
type Transfer struct {
	Gen  VarSet
	Kill VarSet
}

// buildTransfer computes (gen, kill) for a block by folding its
// instructions from last to first:
//
//   gen   = (gen'  \ def) ∪ use
//   kill  = (kill' ∪ def) \ use
//
// starting from (∅, ∅) for the empty suffix. Folding backward means an
// instruction's uses make their variables upward-exposed and shadow any
// kill recorded for them by a later instruction in the same block; an
// instruction's defs hide any later use of the same variable from gen and
// add the variable to kill, unless the same instruction also uses it. This
// guarantees gen(B) ∩ kill(B) = ∅.
func buildTransfer(code []Instruction, universe *Universe) (gen, kill VarSet) {
	gen = universe.empty()
	kill = universe.empty()

	for i := len(code) - 1; i >= 0; i-- {
		instr := code[i]
		use := universe.fromSlice(instr.Uses())
		def := universe.fromSlice(instr.Defines())

		gen = gen.Difference(def).Union(use)
		kill = kill.Union(def).Difference(use)
	}

	return gen, kill
}
