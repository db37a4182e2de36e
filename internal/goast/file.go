// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

// Package goast adapts type-checked Go syntax trees to the host-neutral pipeline.
//
// Publishers are matched by type identity, the helper library is probed over the
// transitive import closure, and suppression uses //nolint directives on top-level declarations.
package goast

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"iter"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/implicitblocking/internal/astutil"
	"fillmore-labs.com/implicitblocking/internal/match"
	"fillmore-labs.com/implicitblocking/internal/source"
)

// ErrSourceMismatch is returned when the source text does not belong to the syntax tree.
var ErrSourceMismatch = errors.New("source does not match file")

// File is one type-checked Go source file. It implements the engine's document interface.
type File struct {
	current astutil.CurrentFile
	file    *ast.File
	info    *types.Info
	closure *Closure
	src     []byte
	check   string

	decls []*decl
	calls []*call
	index map[*ast.CallExpr]*call

	publishers map[string]*types.TypeName
}

// New prepares the file under the cursor root for matching.
//
// Declarations with a //nolint directive for check and calls followed by one on the same line are skipped.
func New(current astutil.CurrentFile, root inspector.Cursor, info *types.Info, closure *Closure, src []byte, check string) (*File, error) {
	file, ok := root.Node().(*ast.File)
	if !ok {
		return nil, fmt.Errorf("cursor at %T, expected *ast.File", root.Node())
	}

	if !current.Valid() || current.Size() != len(src) {
		return nil, fmt.Errorf("%w: %s", ErrSourceMismatch, file.Name.Name)
	}

	f := &File{
		current:    current,
		file:       file,
		info:       info,
		closure:    closure,
		src:        src,
		check:      check,
		index:      make(map[*ast.CallExpr]*call),
		publishers: make(map[string]*types.TypeName),
	}

	for c := range root.Children() {
		if kind, _ := c.ParentEdge(); kind != edge.File_Decls {
			continue
		}

		d := f.newDecl(c.Node().(ast.Decl))
		if d == nil {
			continue
		}

		f.decls = append(f.decls, d)

		if astutil.DocHasNoLint(d.doc, check) {
			continue
		}

		for cc := range c.Preorder((*ast.CallExpr)(nil)) {
			expr := cc.Node().(*ast.CallExpr)
			if current.NoLintComment(expr.Pos(), check) {
				continue
			}

			ca := &call{f: f, cursor: cc, expr: expr, span: current.Span(expr), decl: d}
			f.calls = append(f.calls, ca)
			f.index[expr] = ca
		}
	}

	return f, nil
}

// Source returns the file contents.
func (f *File) Source() []byte { return f.src }

// Name returns the file name.
func (f *File) Name() string { return f.current.Name() }

// Calls implements [match.Tree].
func (f *File) Calls() iter.Seq[match.Call] {
	return func(yield func(match.Call) bool) {
		for _, c := range f.calls {
			if !yield(c) {
				return
			}
		}
	}
}

// AssignableTo implements [match.Tree].
//
// Named publisher types match by identity of their generic origin, through pointers and aliases.
// A non-generic interface publisher matches every implementing type.
func (f *File) AssignableTo(e match.Node, qualified string) bool {
	n, ok := e.(*node)
	if !ok {
		return false
	}

	t := f.info.TypeOf(n.expr)
	if t == nil {
		return false
	}

	obj := f.publisher(qualified)
	if obj == nil {
		return false
	}

	return assignable(t, obj)
}

func (f *File) publisher(qualified string) *types.TypeName {
	if obj, ok := f.publishers[qualified]; ok {
		return obj
	}

	obj, _ := f.closure.Lookup(qualified).(*types.TypeName)
	f.publishers[qualified] = obj

	return obj
}

func assignable(t types.Type, obj *types.TypeName) bool {
	base := types.Unalias(t)
	if ptr, ok := base.(*types.Pointer); ok {
		base = types.Unalias(ptr.Elem())
	}

	if named, ok := base.(*types.Named); ok && named.Origin().Obj() == obj {
		return true
	}

	named, ok := obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return false
	}

	iface, ok := named.Underlying().(*types.Interface)

	return ok && types.Implements(t, iface)
}

// Commented implements [match.Tree].
func (f *File) Commented(s source.Span) bool {
	return f.current.HasComment(f.current.Pos(s.Start), f.current.Pos(s.End))
}

// Enclosing implements [match.Tree].
func (f *File) Enclosing(n match.Node) (match.Decl, bool) {
	if c, ok := n.(*call); ok {
		return c.decl, true
	}

	span := n.Span()
	for _, d := range f.decls {
		if d.span.Contains(span) {
			return d, true
		}
	}

	return nil, false
}

// Qualify implements [synth.Host].
//
// Existing imports of path are reused; otherwise a new import is requested,
// aliased when its package name is already taken in this file.
func (f *File) Qualify(path, name string) (string, source.Import) {
	taken := make(map[string]struct{})

	for _, spec := range f.file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		local := f.packageName(p)
		if spec.Name != nil {
			local = spec.Name.Name
		}

		switch {
		case local == "_":
			continue

		case p != path:
			taken[local] = struct{}{}

		case local == ".":
			return name, source.Import{}

		default:
			return local + "." + name, source.Import{}
		}
	}

	local, imp := f.packageName(path), source.Import{Path: path}
	if _, ok := taken[local]; ok {
		base := local
		for i := 2; ok; i++ {
			local = base + strconv.Itoa(i)
			_, ok = taken[local]
		}

		imp.Name = local
	}

	return local + "." + name, imp
}

// packageName returns the name of the package with the given import path.
func (f *File) packageName(path string) string {
	if p := f.closure.Package(path); p != nil {
		return p.Name()
	}

	return assumedName(path)
}

// Suppress implements [synth.Host]. An existing //nolint directive of the declaration is extended.
//
// A new directive after a line comment doc text is separated by an empty comment line, as gofmt formats it.
func (f *File) Suppress(md match.Decl, check string) source.Edit {
	d := md.(*decl)

	if d.doc == nil {
		at := f.current.Offset(d.node.Pos())

		return source.Edit{Span: source.Span{Start: at, End: at}, NewText: "//nolint:" + check + "\n"}
	}

	last := d.doc.List[len(d.doc.List)-1]
	if linters, end, ok := astutil.ParseNoLint(last.Text); ok {
		if len(linters) == 0 {
			// a bare //nolint already suppresses every linter
			return source.Edit{}
		}

		at := f.current.Offset(last.Slash) + end

		return source.Edit{Span: source.Span{Start: at, End: at}, NewText: "," + check}
	}

	at := f.current.LineStart(d.node.Pos())

	text := "//nolint:" + check + "\n"
	if prose := strings.HasPrefix(last.Text, "//") && last.Text != "//"; prose && !directive(last.Text) {
		text = "//\n" + text
	}

	return source.Edit{Span: source.Span{Start: at, End: at}, NewText: text}
}

// directive reports whether a line comment is a tool directive like //go:generate, which gofmt keeps
// apart from the doc text.
func directive(text string) bool {
	c, ok := strings.CutPrefix(text, "//")
	if !ok {
		return false
	}

	for _, prefix := range [...]string{"line ", "extern ", "export "} {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}

	colon := strings.IndexByte(c, ':')
	if colon <= 0 || colon+1 >= len(c) {
		return false
	}

	for i := range colon + 2 {
		if i == colon {
			continue
		}

		if b := c[i]; !('a' <= b && b <= 'z' || '0' <= b && b <= '9') {
			return false
		}
	}

	return true
}

// Pos returns the [token.Pos] of a byte offset in the file.
func (f *File) Pos(offset int) token.Pos { return f.current.Pos(offset) }

// decl is a top-level declaration.
type decl struct {
	node ast.Decl
	doc  *ast.CommentGroup
	span source.Span
	name string
}

func (f *File) newDecl(d ast.Decl) *decl {
	switch d := d.(type) {
	case *ast.FuncDecl:
		name := d.Name.Name
		if d.Recv != nil && len(d.Recv.List) > 0 {
			if recv := receiverName(d.Recv.List[0].Type); recv != "" {
				name = recv + "." + name
			}
		}

		return &decl{node: d, doc: d.Doc, span: f.current.Span(d), name: name}

	case *ast.GenDecl:
		if d.Tok == token.IMPORT {
			return nil
		}

		return &decl{node: d, doc: d.Doc, span: f.current.Span(d), name: genDeclName(d)}

	default:
		return nil
	}
}

func (d *decl) Span() source.Span { return d.span }

func (d *decl) Name() string { return d.name }

func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X

		case *ast.ParenExpr:
			expr = e.X

		case *ast.IndexExpr:
			expr = e.X

		case *ast.IndexListExpr:
			expr = e.X

		case *ast.Ident:
			return e.Name

		default:
			return ""
		}
	}
}

func genDeclName(d *ast.GenDecl) string {
	if len(d.Specs) > 0 {
		switch s := d.Specs[0].(type) {
		case *ast.ValueSpec:
			if len(s.Names) > 0 {
				return s.Names[0].Name
			}

		case *ast.TypeSpec:
			return s.Name.Name
		}
	}

	return d.Tok.String()
}

// call is a call expression.
type call struct {
	f      *File
	cursor inspector.Cursor
	expr   *ast.CallExpr
	span   source.Span
	decl   *decl
}

func (c *call) Span() source.Span { return c.span }

func (c *call) Method() string {
	if sel, ok := c.expr.Fun.(*ast.SelectorExpr); ok {
		return sel.Sel.Name
	}

	return ""
}

func (c *call) NumArgs() int { return len(c.expr.Args) }

// Receiver returns the operand of a method call. Package-qualified function calls have none.
func (c *call) Receiver() (match.Node, bool) {
	sel, ok := c.expr.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil, false
	}

	if s, ok := c.f.info.Selections[sel]; !ok || s.Kind() != types.MethodVal {
		return nil, false
	}

	return &node{expr: sel.X, span: c.f.current.Span(sel.X)}, true
}

// Chained returns the method call directly invoked on this call's result.
func (c *call) Chained() (match.Call, bool) {
	if kind, _ := c.cursor.ParentEdge(); kind != edge.SelectorExpr_X {
		return nil, false
	}

	sel := c.cursor.Parent()
	if kind, _ := sel.ParentEdge(); kind != edge.CallExpr_Fun {
		return nil, false
	}

	next := sel.Parent()
	expr := next.Node().(*ast.CallExpr)

	if chained, ok := c.f.index[expr]; ok {
		return chained, true
	}

	return &call{f: c.f, cursor: next, expr: expr, span: c.f.current.Span(expr), decl: c.decl}, true
}

// node is an expression operand.
type node struct {
	expr ast.Expr
	span source.Span
}

func (n *node) Span() source.Span { return n.span }
