// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goast adapts real, type-checked Go source into the abstract
// liveness.CFG/liveness.Instruction/liveness.Variable/liveness.Label
// contract, so github.com/godoctor/liveness can be driven end to end
// without a toy instruction set.
//
// stmtGraph below builds a statement-level control flow graph from a
// function body by walking its statements in DFS order and threading
// successor/predecessor edges by hand, the same construction strategy as
// this project's original per-statement CFG builder, generalized here to
// also compute a DFS postorder (which the original never needed, since it
// only ever answered point queries).
package goast

import (
	"go/ast"
	"go/token"
)

// stmtGraph is a control flow graph over the ast.Stmt values of one
// function body, plus synthetic entry/exit sentinels. Entry and exit are
// ordinary *ast.BadStmt nodes used only as map keys; they carry no real
// code (their instruction list is always empty).
type stmtGraph struct {
	succs map[ast.Stmt][]ast.Stmt
	entry ast.Stmt
	exit  ast.Stmt
}

// buildStmtGraph constructs a stmtGraph over the statements of a function
// body, threading return/defer/branch control flow the way a real Go
// compiler's front end would.
func buildStmtGraph(body *ast.BlockStmt) *stmtGraph {
	b := &cfgBuilder{
		succs: make(map[ast.Stmt][]ast.Stmt),
		entry: &ast.BadStmt{},
		exit:  &ast.BadStmt{},
	}
	b.buildBlock(b.entry, body.List)
	if b.deferHead != nil {
		b.flowTo(b.deferTail, b.exit)
		b.buildEdges(b.deferHead)
	} else {
		b.buildEdges(b.exit)
	}
	return &stmtGraph{succs: b.succs, entry: b.entry, exit: b.exit}
}

func (g *stmtGraph) Successors(s ast.Stmt) []ast.Stmt {
	return g.succs[s]
}

// postorder returns a DFS postorder over every statement reachable from
// entry, entry and exit included. The liveness engine requires exactly
// this traversal order (see liveness.CFG.Postorder): a block is emitted
// after every block reachable from it, except blocks reached only through a
// back edge (a loop header still on the DFS stack), which come later.
func (g *stmtGraph) postorder() []ast.Stmt {
	visited := make(map[ast.Stmt]bool)
	var order []ast.Stmt

	var visit func(s ast.Stmt)
	visit = func(s ast.Stmt) {
		if visited[s] {
			return
		}
		visited[s] = true
		for _, succ := range g.succs[s] {
			visit(succ)
		}
		order = append(order, s)
	}
	visit(g.entry)
	return order
}

// cfgBuilder is the mutable construction state for one stmtGraph. It
// mirrors the original builder's two pieces of bookkeeping: edges (the
// leaf statements of whatever was just built, still to be hooked up to
// "what comes next") and branches (break/continue/goto statements waiting
// for an enclosing loop or switch to claim them).
type cfgBuilder struct {
	succs               map[ast.Stmt][]ast.Stmt
	edges               []ast.Stmt
	branches            []ast.Stmt
	entry, exit         ast.Stmt
	deferHead, deferTail *ast.DeferStmt
}

func (b *cfgBuilder) flowTo(from, to ast.Stmt) {
	if to == nil {
		b.edges = append(b.edges, from)
		return
	}
	b.succs[from] = append(b.succs[from], to)
}

// buildEdges wires every currently pending edge to next. It deliberately
// does not clear b.edges afterward: the caller (buildBlock, or a
// structured statement builder calling into it last) relies on reading
// b.edges once more after this returns, to learn "what are this block's
// still-open edges", which it then reports to its own caller in turn.
// A nil next leaves the pending edges as they are.
func (b *cfgBuilder) buildEdges(next ast.Stmt) {
	if next == nil {
		return
	}
	for _, e := range b.edges {
		b.flowTo(e, next)
	}
}

func (b *cfgBuilder) pushDefer(d *ast.DeferStmt) {
	if b.deferHead == nil {
		b.deferHead, b.deferTail = d, d
		b.flowTo(d, b.exit)
		return
	}
	b.flowTo(d, b.deferHead)
	b.deferHead = d
}

// buildBlock threads owner -> first-real-statement(s) -> ... and leaves
// b.edges holding the leaf statements of the block, for the caller to wire
// to whatever follows.
func (b *cfgBuilder) buildBlock(owner ast.Stmt, stmts []ast.Stmt) {
	if len(stmts) == 0 {
		b.edges = append(b.edges, owner)
		return
	}

	cur, i := b.nextInBlock(stmts, -1)
	b.flowTo(owner, cur)

	for i < len(stmts) {
		cur = stmts[i]
		var next ast.Stmt
		next, i = b.nextInBlock(stmts, i)
		b.buildStmt(cur, next)
	}
}

// nextInBlock returns the next non-defer statement at or after i+1,
// pushing any defers it skips over onto the defer stack.
func (b *cfgBuilder) nextInBlock(stmts []ast.Stmt, i int) (ast.Stmt, int) {
	i++
	if i >= len(stmts) {
		return nil, i
	}
	if d, ok := stmts[i].(*ast.DeferStmt); ok {
		b.pushDefer(d)
		return b.nextInBlock(stmts, i)
	}
	return stmts[i], i
}

func (b *cfgBuilder) buildStmt(cur, next ast.Stmt) {
	b.edges = nil
	switch s := cur.(type) {
	case *ast.IfStmt:
		b.buildIf(s, next)
	case *ast.ForStmt, *ast.RangeStmt:
		b.buildFor(s, next)
	case *ast.SwitchStmt, *ast.SelectStmt, *ast.TypeSwitchStmt:
		b.buildSwitch(s, next)
	case *ast.BranchStmt:
		b.buildBranch(s)
	case *ast.LabeledStmt:
		b.flowTo(cur, s.Stmt)
		b.buildStmt(s.Stmt, next)
		return
	case *ast.ReturnStmt:
		b.buildReturn(s)
	case *ast.DeferStmt, nil:
		// handled by nextInBlock / pushDefer
	default:
		b.flowTo(cur, next)
	}
	b.buildEdges(next)
}

func (b *cfgBuilder) buildReturn(s ast.Stmt) {
	if b.deferHead != nil {
		b.flowTo(s, b.deferHead)
	} else {
		b.flowTo(s, b.exit)
	}
}

func (b *cfgBuilder) buildBranch(br *ast.BranchStmt) {
	switch br.Tok {
	case token.GOTO:
		if br.Label != nil && br.Label.Obj != nil {
			if lbl, ok := br.Label.Obj.Decl.(*ast.LabeledStmt); ok {
				b.flowTo(br, lbl.Stmt)
				return
			}
		}
	case token.FALLTHROUGH:
		// handled inline by buildSwitch
		return
	default: // break, continue
		b.branches = append(b.branches, br)
		return
	}
}

func (b *cfgBuilder) buildIf(f *ast.IfStmt, next ast.Stmt) {
	var cur ast.Stmt = f
	if f.Init != nil {
		b.flowTo(f, f.Init)
		cur = f.Init
	}

	var edges []ast.Stmt
	b.buildBlock(cur, f.Body.List)
	edges = append(edges, b.edges...)

	switch e := f.Else.(type) {
	case *ast.BlockStmt:
		b.buildBlock(cur, e.List)
		edges = append(edges, b.edges...)
	case *ast.IfStmt:
		b.flowTo(cur, e)
		b.buildIf(e, next)
		edges = append(edges, b.edges...)
	default:
		b.flowTo(f, next)
		edges = append(edges, f)
	}
	b.edges = edges
}

func (b *cfgBuilder) buildFor(stmt ast.Stmt, next ast.Stmt) {
	var post ast.Stmt

	switch s := stmt.(type) {
	case *ast.ForStmt:
		if s.Init != nil {
			b.flowTo(s.Init, stmt)
		}
		b.buildBlock(stmt, s.Body.List)
		if s.Post != nil {
			post = s.Post
			b.buildEdges(s.Post)
			b.flowTo(s.Post, stmt)
		} else {
			b.buildEdges(stmt)
		}
	case *ast.RangeStmt:
		// Body's trailing edges must loop back to the range header,
		// same as a ForStmt with no post statement.
		b.buildBlock(s, s.Body.List)
		b.buildEdges(stmt)
	}

	b.edges = []ast.Stmt{stmt}

	for j := 0; j < len(b.branches); {
		br := b.branches[j].(*ast.BranchStmt)
		if targetsStmt(br, stmt) {
			switch br.Tok {
			case token.CONTINUE:
				if post != nil {
					b.flowTo(br, post)
				} else {
					b.flowTo(br, stmt)
				}
			case token.BREAK:
				b.flowTo(br, next)
			}
			b.branches = append(b.branches[:j], b.branches[j+1:]...)
		} else {
			j++
		}
	}
}

// targetsStmt reports whether an unlabeled branch, or a branch labeled for
// stmt specifically, should be handled by the loop/switch currently being
// built at stmt.
func targetsStmt(br *ast.BranchStmt, stmt ast.Stmt) bool {
	if br.Label == nil {
		return true
	}
	if br.Label.Obj == nil {
		return false
	}
	lbl, ok := br.Label.Obj.Decl.(*ast.LabeledStmt)
	return ok && lbl.Stmt == stmt
}

func (b *cfgBuilder) buildSwitch(sw, next ast.Stmt) {
	var cur ast.Stmt = sw
	var cases []ast.Stmt

	switch s := sw.(type) {
	case *ast.SwitchStmt:
		if s.Init != nil {
			b.flowTo(sw, s.Init)
			cur = s.Init
		}
		cases = s.Body.List
	case *ast.TypeSwitchStmt:
		if s.Init != nil {
			b.flowTo(sw, s.Init)
			cur = s.Init
		}
		b.flowTo(cur, s.Assign)
		cur = s.Assign
		cases = s.Body.List
	case *ast.SelectStmt:
		cases = s.Body.List
	}

	defaultCase := false
	for i, clause := range cases {
		b.flowTo(cur, clause)

		var body []ast.Stmt
		switch cl := clause.(type) {
		case *ast.CaseClause:
			if cl.List == nil {
				defaultCase = true
			}
			body = cl.Body
		case *ast.CommClause:
			if cl.Comm == nil {
				defaultCase = true
			} else {
				b.flowTo(cl, cl.Comm)
			}
			body = cl.Body
		}

		if n := len(body); n > 0 {
			last := body[n-1]
			if lbl, ok := last.(*ast.LabeledStmt); ok {
				last = lbl.Stmt
			}
			if br, ok := last.(*ast.BranchStmt); ok && br.Tok == token.FALLTHROUGH && i+1 < len(cases) {
				b.flowTo(last, cases[i+1])
			}
		}

		b.buildBlock(clause, body)
		b.buildEdges(next)
	}

	if !defaultCase {
		b.flowTo(cur, next)
	}

	for j := 0; j < len(b.branches); {
		br := b.branches[j].(*ast.BranchStmt)
		if br.Tok == token.BREAK && targetsStmt(br, cur) {
			b.flowTo(br, next)
			b.branches = append(b.branches[:j], b.branches[j+1:]...)
		} else {
			j++
		}
	}
}
