// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness_test

import "github.com/godoctor/liveness"

// testVar, testLabel and testInstr are the smallest possible Variable,
// Label and Instruction implementations: plain strings/slices, with no
// connection to any real instruction set. They exist purely to exercise
// the abstract core end to end, the way analysis/dataflow's own tests
// build tiny literal ASTs rather than loading real files for most cases.

type testVar string

func (v testVar) Less(other liveness.Variable) bool { return v < other.(testVar) }

type testLabel string

func (l testLabel) String() string { return string(l) }

type testInstr struct {
	use []liveness.Variable
	def []liveness.Variable
}

func (i testInstr) Uses() []liveness.Variable    { return i.use }
func (i testInstr) Defines() []liveness.Variable { return i.def }

func vars(names ...string) []liveness.Variable {
	out := make([]liveness.Variable, len(names))
	for i, n := range names {
		out[i] = testVar(n)
	}
	return out
}

func use(names ...string) testInstr { return testInstr{use: vars(names...)} }
func def(names ...string) testInstr { return testInstr{def: vars(names...)} }

// useDef builds an instruction with both a use and a def list, e.g. for
// "a := t" (use t, def a): useDef([]string{"t"}, []string{"a"}).
func useDef(uses, defs []string) testInstr {
	return testInstr{use: vars(uses...), def: vars(defs...)}
}

// testBlock is one block's worth of fixture data: its code and its
// immediate successor labels.
type testBlock struct {
	label liveness.Label
	code  []liveness.Instruction
	succs []liveness.Label
}

// testCFG is a fixed, hand-built CFG: a map of blocks plus an explicit
// postorder (computed by hand for each fixture, since these graphs are
// small enough to reason about directly, and the postorder contract is
// exactly what is under test elsewhere).
type testCFG struct {
	blocks  map[liveness.Label]*testBlock
	postord []liveness.Label
	mutated map[liveness.Label][]liveness.Instruction
}

func newTestCFG(postorder []liveness.Label, blocks ...*testBlock) *testCFG {
	m := make(map[liveness.Label]*testBlock, len(blocks))
	for _, b := range blocks {
		m[b.label] = b
	}
	return &testCFG{blocks: m, postord: postorder}
}

func (c *testCFG) Postorder() []liveness.Label { return c.postord }

func (c *testCFG) Successors(l liveness.Label) []liveness.Label {
	return c.blocks[l].succs
}

func (c *testCFG) BlockCode(l liveness.Label) []liveness.Instruction {
	if c.mutated != nil {
		if code, ok := c.mutated[l]; ok {
			return code
		}
	}
	return c.blocks[l].code
}

func (c *testCFG) SetBlockCode(l liveness.Label, code []liveness.Instruction) {
	if c.mutated == nil {
		c.mutated = make(map[liveness.Label][]liveness.Instruction)
	}
	c.mutated[l] = code
}

type testCommentMaker struct{}

func (testCommentMaker) MakeComment(text string) liveness.Instruction {
	return testInstr{}
}

func block(label string, code []liveness.Instruction, succs ...string) *testBlock {
	succLabels := make([]liveness.Label, len(succs))
	for i, s := range succs {
		succLabels[i] = testLabel(s)
	}
	return &testBlock{label: testLabel(label), code: code, succs: succLabels}
}

func lbls(names ...string) []liveness.Label {
	out := make([]liveness.Label, len(names))
	for i, n := range names {
		out[i] = testLabel(n)
	}
	return out
}

func varNames(s liveness.VarSet) []string {
	slice := s.Slice()
	out := make([]string, len(slice))
	for i, v := range slice {
		out[i] = string(v.(testVar))
	}
	return out
}
