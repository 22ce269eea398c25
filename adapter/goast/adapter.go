// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goast

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/godoctor/liveness"
)

// FuncCFG adapts one type-checked function body into a liveness.CFG (and,
// via SetBlockCode, a liveness.MutableCFG). It owns a statement-level
// stmtGraph plus each statement's precomputed use/def instruction, mirroring
// how this project's original ExampleLiveVars wired cfg.FromFunc's block
// graph straight into dataflow.LiveVars.
type FuncCFG struct {
	graph *stmtGraph
	fset  *token.FileSet
	info  *types.Info

	order []liveness.Label
	code  map[ast.Stmt][]liveness.Instruction
}

var _ liveness.CFG = (*FuncCFG)(nil)
var _ liveness.MutableCFG = (*FuncCFG)(nil)

// NewFuncCFG builds a FuncCFG over decl's body. fset and info must come from
// the same load.Package decl was found in (see Package.FuncBody), since
// Label.String and the use/def extraction both dereference them.
func NewFuncCFG(decl *ast.FuncDecl, fset *token.FileSet, info *types.Info) *FuncCFG {
	graph := buildStmtGraph(decl.Body)

	code := make(map[ast.Stmt][]liveness.Instruction, len(graph.succs))
	stmts := graph.postorder()
	order := make([]liveness.Label, 0, len(stmts))
	for _, s := range stmts {
		order = append(order, Label{stmt: s, fset: fset})
		code[s] = instructionsFor(s, graph, info)
	}

	return &FuncCFG{
		graph: graph,
		fset:  fset,
		info:  info,
		order: order,
		code:  code,
	}
}

// instructionsFor returns the single-instruction block contents for s. The
// entry and exit sentinels, and any statement with no uses or defines of
// its own, get no instruction at all. Structured statements keep the uses
// of their header expression (an if/for condition, a switch tag, a range
// operand) and a range statement defines its key and value; their init
// statements are separate statements in the graph.
func instructionsFor(s ast.Stmt, g *stmtGraph, info *types.Info) []liveness.Instruction {
	if s == g.entry || s == g.exit {
		return nil
	}
	uses, defs := usesOf(s, info), defsOf(s, info)
	if len(uses) == 0 && len(defs) == 0 {
		return nil
	}
	return []liveness.Instruction{instruction{uses: uses, defs: defs}}
}

func (c *FuncCFG) Postorder() []liveness.Label { return c.order }

func (c *FuncCFG) Successors(l liveness.Label) []liveness.Label {
	stmt := l.(Label).stmt
	succs := c.graph.Successors(stmt)
	out := make([]liveness.Label, len(succs))
	for i, s := range succs {
		out[i] = Label{stmt: s, fset: c.fset}
	}
	return out
}

func (c *FuncCFG) BlockCode(l liveness.Label) []liveness.Instruction {
	return c.code[l.(Label).stmt]
}

// SetBlockCode lets Annotate splice synthetic comment instructions into a
// block. Real statement-derived instructions are never replaced by callers
// other than Annotate, so this module does not attempt to reconcile an
// edited instruction list back into Go source.
func (c *FuncCFG) SetBlockCode(l liveness.Label, code []liveness.Instruction) {
	c.code[l.(Label).stmt] = code
}
