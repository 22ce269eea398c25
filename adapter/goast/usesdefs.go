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

// defsOf and usesOf extract the local variables a single statement defines
// and uses, ported from this project's original syntax-driven def/use
// extraction (which targeted the retired golang.org/x/tools/go/loader
// PackageInfo API) onto the current go/types.Info API, and returning this
// package's Variable wrapper instead of a bare *types.Var.

// defsOf extracts the local variables whose values are assigned by stmt.
func defsOf(stmt ast.Stmt, info *types.Info) []liveness.Variable {
	idents := make(map[*ast.Ident]struct{})

	switch s := stmt.(type) {
	case *ast.DeclStmt:
		ast.Inspect(s, func(n ast.Node) bool {
			if v, ok := n.(*ast.ValueSpec); ok {
				addIdents(idents, v)
			}
			return true
		})
	case *ast.IncDecStmt: // i++, i--
		addIdents(idents, s.X)
	case *ast.AssignStmt: // :=, =, &=, ... except x[i] on the LHS
		for _, lhs := range s.Lhs {
			if !isIndexExpr(lhs) {
				addIdents(idents, lhs)
			}
		}
	case *ast.RangeStmt: // only the [key, value] on the LHS
		addIdents(idents, s.Key)
		addIdents(idents, s.Value)
	case *ast.TypeSwitchStmt:
		return typeSwitchCaseVars(s, info)
	}

	return varsOf(idents, info)
}

// usesOf extracts the local variables whose values are read by stmt.
func usesOf(stmt ast.Stmt, info *types.Info) []liveness.Variable {
	idents := make(map[*ast.Ident]struct{})

	ast.Inspect(stmt, func(n ast.Node) bool {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			for _, lhs := range s.Lhs {
				// x[i] = ...: x and i are both uses; so is any
				// compound-assignment LHS (+=, &=, ...).
				if isIndexExpr(lhs) || (s.Tok != token.ASSIGN && s.Tok != token.DEFINE) {
					addIdents(idents, lhs)
				}
			}
			for _, rhs := range s.Rhs {
				addIdents(idents, rhs)
			}
		case *ast.BlockStmt, *ast.BranchStmt, *ast.CommClause,
			*ast.LabeledStmt, *ast.SelectStmt, *ast.TypeSwitchStmt:
			// no uses of their own; their nested statements are
			// separate statements of the graph with their own uses
		case *ast.CaseClause:
			for _, e := range s.List {
				addIdents(idents, e)
			}
		case *ast.DeclStmt:
			// uses on the right-hand side of var declarations
			ast.Inspect(s, func(n ast.Node) bool {
				if v, ok := n.(*ast.ValueSpec); ok {
					for _, val := range v.Values {
						addIdents(idents, val)
					}
				}
				return true
			})
		case *ast.DeferStmt:
			addIdents(idents, s.Call)
		case *ast.ForStmt:
			addIdents(idents, s.Cond)
		case *ast.IfStmt:
			addIdents(idents, s.Cond)
		case *ast.RangeStmt:
			addIdents(idents, s.X)
		case *ast.SwitchStmt:
			addIdents(idents, s.Tag)
		case ast.Stmt:
			addIdents(idents, s)
		}
		return true
	})

	return varsOf(idents, info)
}

// typeSwitchCaseVars returns the implicit per-case variable a type switch
// introduces (`switch v := x.(type) { case int: ... }` binds a distinct
// *types.Var to v inside each case, recorded in info.Implicits).
func typeSwitchCaseVars(sw *ast.TypeSwitchStmt, info *types.Info) []liveness.Variable {
	var out []liveness.Variable
	ast.Inspect(sw.Body, func(n ast.Node) bool {
		cc, ok := n.(*ast.CaseClause)
		if !ok {
			return true
		}
		if obj, ok := info.Implicits[cc].(*types.Var); ok {
			out = append(out, Variable{obj: obj})
		}
		return false
	})
	return out
}

func isIndexExpr(e ast.Expr) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if _, ok := n.(*ast.IndexExpr); ok {
			found = true
			return false
		}
		return true
	})
	return found
}

func addIdents(into map[*ast.Ident]struct{}, node ast.Node) {
	if node == nil {
		return
	}
	ast.Inspect(node, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			into[id] = struct{}{}
		}
		return true
	})
}

// varsOf resolves each identifier to the *types.Var it refers to (an
// identifier that resolves to anything else, a package name, a type, a
// function, is not a variable and is silently dropped) and wraps it as a
// liveness.Variable.
func varsOf(idents map[*ast.Ident]struct{}, info *types.Info) []liveness.Variable {
	var out []liveness.Variable
	for id := range idents {
		if obj, ok := objectOf(info, id).(*types.Var); ok {
			out = append(out, Variable{obj: obj})
		}
	}
	return out
}

// objectOf resolves an identifier to the object it declares or refers to.
// go/types.Info splits this across two maps (Defs for declaring
// occurrences, Uses for referring occurrences); golang.org/x/tools/go/types
// used to expose this as a single PackageInfo.ObjectOf method, which this
// project's original def/use extraction relied on.
func objectOf(info *types.Info, id *ast.Ident) types.Object {
	if obj := info.Defs[id]; obj != nil {
		return obj
	}
	return info.Uses[id]
}
