// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package testsource provides utilities for parsing and type-checking Go source code in tests.
//
// It handles the boilerplate of type-checking source files against in-memory
// dependencies, such as the reactive libraries in [Reactor].
package testsource

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/ast/inspector"
)

const testpkg = "test"

// Package is a type-checked single file package.
type Package struct {
	Fset      *token.FileSet
	File      *ast.File
	Src       []byte
	Pkg       *types.Package
	Info      *types.Info
	Inspector *inspector.Inspector
}

// Root returns the cursor of the file.
func (p *Package) Root() inspector.Cursor {
	for c := range p.Inspector.Root().Children() {
		return c
	}

	return p.Inspector.Root()
}

// Load parses and type-checks a complete source file of package "test".
//
// Imports of deps are type-checked from source, everything else is imported with
// the default importer.
func Load(tb testing.TB, src string, deps map[string]string) *Package {
	tb.Helper()

	const filename = "test.go"

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	imp := &sourceImporter{
		fset:     fset,
		sources:  deps,
		pkgs:     make(map[string]*types.Package),
		fallback: importer.Default(),
	}

	conf := types.Config{Importer: imp}

	pkg, err := conf.Check(testpkg, fset, []*ast.File{f}, info)
	if err != nil {
		tb.Fatalf("Failed to type check source: %v", err)
	}

	return &Package{
		Fset:      fset,
		File:      f,
		Src:       []byte(src),
		Pkg:       pkg,
		Info:      info,
		Inspector: inspector.New([]*ast.File{f}),
	}
}

// sourceImporter type-checks known packages from source.
type sourceImporter struct {
	fset     *token.FileSet
	sources  map[string]string
	pkgs     map[string]*types.Package
	fallback types.Importer
}

// Import implements [types.Importer].
func (i *sourceImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := i.pkgs[path]; ok {
		return pkg, nil
	}

	src, ok := i.sources[path]
	if !ok {
		return i.fallback.Import(path)
	}

	f, err := parser.ParseFile(i.fset, path+"/source.go", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	conf := types.Config{Importer: i}

	pkg, err := conf.Check(path, i.fset, []*ast.File{f}, nil)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	i.pkgs[path] = pkg

	return pkg, nil
}
