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

package goast

import (
	"bytes"
	"cmp"
	"go/ast"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"fillmore-labs.com/implicitblocking/internal/source"
)

// ImportEdits implements [apply.Importer].
//
// Imports are added to the first parenthesized import declaration, sorted into the group
// of standard library or third-party imports. Without a matching group, a new group is appended.
func (f *File) ImportEdits(imports []source.Import) []source.Edit {
	if len(imports) == 0 {
		return nil
	}

	block := f.importBlock()

	if block == nil {
		return []source.Edit{f.importDecl(imports)}
	}

	type insertion struct {
		lines, group []string
	}

	inserts := make(map[int]*insertion)

	for _, imp := range imports {
		at, group := f.insertionPoint(block, imp.Path)

		ins, ok := inserts[at]
		if !ok {
			ins = &insertion{}
			inserts[at] = ins
		}

		line := "\t" + importSpec(imp) + "\n"
		if group {
			ins.group = append(ins.group, line)
		} else {
			ins.lines = append(ins.lines, line)
		}
	}

	edits := make([]source.Edit, 0, len(inserts))
	for at, ins := range inserts {
		slices.Sort(ins.lines)
		slices.Sort(ins.group)

		text := strings.Join(ins.lines, "")
		if len(ins.group) > 0 {
			text += "\n" + strings.Join(ins.group, "")
		}

		edits = append(edits, source.Edit{Span: source.Span{Start: at, End: at}, NewText: text})
	}

	slices.SortFunc(edits, func(a, b source.Edit) int { return cmp.Compare(a.Span.Start, b.Span.Start) })

	return edits
}

func (f *File) importBlock() *ast.GenDecl {
	for _, d := range f.file.Decls {
		g, ok := d.(*ast.GenDecl)
		if !ok || g.Tok != token.IMPORT {
			break
		}

		if g.Lparen.IsValid() && len(g.Specs) > 0 {
			return g
		}
	}

	return nil
}

// importDecl adds import declarations after the last existing one, or after the package clause.
func (f *File) importDecl(imports []source.Import) source.Edit {
	var (
		at     = f.lineEnd(f.current.Offset(f.file.Name.End()))
		prefix = "\n"
	)

	for _, d := range f.file.Decls {
		g, ok := d.(*ast.GenDecl)
		if !ok || g.Tok != token.IMPORT {
			break
		}

		at, prefix = f.lineEnd(f.current.Offset(g.End())), ""
	}

	specs := make([]string, 0, len(imports))
	for _, imp := range imports {
		specs = append(specs, importSpec(imp))
	}

	slices.Sort(specs)

	var text string
	if len(specs) == 1 {
		text = prefix + "import " + specs[0] + "\n"
	} else {
		text = prefix + "import (\n\t" + strings.Join(specs, "\n\t") + "\n)\n"
	}

	return source.Edit{Span: source.Span{Start: at, End: at}, NewText: text}
}

// insertionPoint returns where path goes in block and whether it starts a new group.
func (f *File) insertionPoint(block *ast.GenDecl, path string) (int, bool) {
	std := isStd(path)

	var group []*ast.ImportSpec

	for _, g := range f.groups(block) {
		if first, _ := strconv.Unquote(g[0].Path.Value); isStd(first) == std {
			group = g
		}
	}

	if group == nil {
		return f.current.LineStart(block.Rparen), true
	}

	for _, spec := range group {
		if p, _ := strconv.Unquote(spec.Path.Value); p > path {
			start := spec.Pos()
			if spec.Doc != nil {
				start = spec.Doc.Pos()
			}

			return f.current.LineStart(start), false
		}
	}

	return f.lineEnd(f.current.Offset(group[len(group)-1].End())), false
}

// groups splits the specs of block at empty lines.
func (f *File) groups(block *ast.GenDecl) [][]*ast.ImportSpec {
	var (
		groups [][]*ast.ImportSpec
		last   int
	)

	for _, s := range block.Specs {
		spec := s.(*ast.ImportSpec)

		start := spec.Pos()
		if spec.Doc != nil {
			start = spec.Doc.Pos()
		}

		if line := f.current.Line(start); len(groups) == 0 || line > last+1 {
			groups = append(groups, nil)
		}

		groups[len(groups)-1] = append(groups[len(groups)-1], spec)
		last = f.current.Line(spec.End())
	}

	return groups
}

// lineEnd returns the offset after the line containing offset.
func (f *File) lineEnd(offset int) int {
	if i := bytes.IndexByte(f.src[offset:], '\n'); i >= 0 {
		return offset + i + 1
	}

	return len(f.src)
}

func importSpec(imp source.Import) string {
	if imp.Name != "" {
		return imp.Name + " " + strconv.Quote(imp.Path)
	}

	return strconv.Quote(imp.Path)
}

// isStd reports whether path looks like a standard library import path.
func isStd(path string) bool {
	first, _, _ := strings.Cut(path, "/")

	return !strings.Contains(first, ".")
}

// assumedName returns the package name usually declared by the package with import path,
// following the goimports convention.
func assumedName(path string) string {
	elems := strings.Split(path, "/")

	name := elems[len(elems)-1]
	if len(elems) > 1 && isVersion(name) {
		name = elems[len(elems)-2]
	}

	name = strings.TrimPrefix(name, "go-")
	if i := strings.IndexAny(name, ".-"); i > 0 {
		name = name[:i]
	}

	return name
}

func isVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}

	_, err := strconv.Atoi(elem[1:])

	return err == nil
}
