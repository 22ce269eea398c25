// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goast

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/godoctor/liveness"
)

// Variable wraps a *types.Var so it satisfies liveness.Variable. Two
// Variables compare equal (and hash equal, as Go map keys) iff they wrap
// the same *types.Var, which go/types guarantees is unique per declaration.
type Variable struct {
	obj *types.Var
}

var _ liveness.Variable = Variable{}

// Less orders variables by source position, falling back to name for
// variables sharing a position (which should not occur for distinct
// *types.Var values, but keeps Less a total order regardless).
func (v Variable) Less(other liveness.Variable) bool {
	o := other.(Variable)
	if v.obj.Pos() != o.obj.Pos() {
		return v.obj.Pos() < o.obj.Pos()
	}
	return v.obj.Name() < o.obj.Name()
}

func (v Variable) String() string { return v.obj.Name() }

// Object returns the underlying *types.Var, for callers that need to go
// beyond the abstract liveness.Variable contract (e.g. to report the
// variable's type or declaring file/line).
func (v Variable) Object() *types.Var { return v.obj }

// Label wraps an ast.Stmt (including the two synthetic entry/exit
// sentinels stmtGraph introduces) so it satisfies liveness.Label.
// Equality of two Labels is pointer equality of the underlying ast.Stmt,
// which is exactly what stmtGraph's map keys use.
type Label struct {
	stmt ast.Stmt
	fset *token.FileSet
}

var _ liveness.Label = Label{}

func (l Label) String() string {
	if l.fset == nil || l.stmt.Pos() == token.NoPos {
		return fmt.Sprintf("%T", l.stmt)
	}
	return l.fset.Position(l.stmt.Pos()).String()
}

// Stmt returns the underlying ast.Stmt. For the synthetic entry/exit
// sentinels this is the placeholder *ast.BadStmt that stands for them.
func (l Label) Stmt() ast.Stmt { return l.stmt }

// instruction wraps one ast.Stmt's use/def sets, computed once when the
// adapter was built (see usesdefs.go). godoctor's original statement-level
// CFG treats an entire statement as the unit of control flow, so each
// block here contains at most one instruction (none when the statement
// has no uses or defines).
type instruction struct {
	uses, defs []liveness.Variable
}

func (i instruction) Uses() []liveness.Variable    { return i.uses }
func (i instruction) Defines() []liveness.Variable { return i.defs }
