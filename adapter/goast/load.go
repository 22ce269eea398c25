// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goast

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// loadMode is the narrow subset of packages.Load's output this package
// needs: syntax trees, positions, and the type-checking results that
// usesdefs.go resolves identifiers against. This project's original loader
// wrapped golang.org/x/tools/go/loader's whole-program Program/AllPackages
// API; packages.Load supersedes that API, and this module only ever needs
// one loaded package at a time, so there is no AllPackages-style registry
// to carry over.
const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo

// Package holds one type-checked Go package, positioned and ready for
// FuncBody to carve function bodies out of.
type Package struct {
	Fset  *token.FileSet
	Info  *types.Info
	Files []*ast.File
}

// Load type-checks the package found at pattern (a Go build pattern, e.g.
// "./..." or an import path) relative to dir.
func Load(dir, pattern string) (*Package, error) {
	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("goast: loading %q: %w", pattern, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("goast: %q has type errors", pattern)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("goast: no packages matched %q", pattern)
	}

	pkg := pkgs[0]
	return &Package{
		Fset:  pkg.Fset,
		Info:  pkg.TypesInfo,
		Files: pkg.Syntax,
	}, nil
}

// FuncBody locates the body of the first function or method literally
// named name among the package's files. Returns an error if no such
// function exists or it has no body (e.g. it is only declared, as for an
// assembly stub).
func (p *Package) FuncBody(name string) (*ast.FuncDecl, error) {
	for _, f := range p.Files {
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if ok && fn.Name.Name == name && fn.Body != nil {
				return fn, nil
			}
		}
	}
	return nil, fmt.Errorf("goast: no function named %q with a body", name)
}
