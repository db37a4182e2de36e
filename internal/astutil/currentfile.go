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

package astutil

import (
	"go/ast"
	"go/token"
	"regexp"
	"slices"
	"strings"

	"fillmore-labs.com/implicitblocking/internal/source"
)

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	file      *ast.File
	handle    *token.File
	generated bool
}

// NewCurrentFile creates a new [CurrentFile] from a [token.FileSet] and an *[ast.File].
func NewCurrentFile(fset *token.FileSet, file *ast.File) CurrentFile {
	if file == nil {
		return CurrentFile{}
	}

	handle := fset.File(file.FileStart)
	if handle == nil {
		return CurrentFile{}
	}

	generated := ast.IsGenerated(file)

	return CurrentFile{file, handle, generated}
}

// Valid returns true if the [CurrentFile] was successfully created
// from a valid file handle.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// Generated returns true if the file is a generated file.
func (c CurrentFile) Generated() bool {
	return c.generated
}

// Name returns the file name.
func (c CurrentFile) Name() string {
	return c.handle.Name()
}

// Size returns the file size in bytes.
func (c CurrentFile) Size() int {
	return c.handle.Size()
}

// Offset returns the byte offset of pos in the file.
func (c CurrentFile) Offset(pos token.Pos) int {
	return c.handle.Offset(pos)
}

// Pos returns the [token.Pos] of a byte offset in the file.
func (c CurrentFile) Pos(offset int) token.Pos {
	return c.handle.Pos(offset)
}

// Span returns the byte range covered by node.
func (c CurrentFile) Span(node ast.Node) source.Span {
	return source.Span{Start: c.Offset(node.Pos()), End: c.Offset(node.End())}
}

// LineStart returns the byte offset of the line containing pos.
func (c CurrentFile) LineStart(pos token.Pos) int {
	return c.Offset(c.handle.LineStart(c.Line(pos)))
}

// Line returns the line number of pos, ignoring line directives.
func (c CurrentFile) Line(pos token.Pos) int {
	return c.handle.PositionFor(pos, false).Line
}

// NoLintComment checks if a line is followed by a //nolint comment for linter.
func (c CurrentFile) NoLintComment(pos token.Pos, linter string) bool {
	if c.file == nil {
		return false
	}

	// find the first comment starting after the position
	i, _ := slices.BinarySearchFunc(c.file.Comments, pos,
		func(c *ast.CommentGroup, p token.Pos) int { return int(c.Pos() - p) })
	if i >= len(c.file.Comments) {
		return false
	}

	comment := c.file.Comments[i].List[0]

	if c.Line(comment.Pos()) != c.Line(pos) {
		return false // not on this line
	}

	return CommentHasNoLint(comment, linter)
}

// HasComment reports whether a comment group starts within [start, end).
func (c CurrentFile) HasComment(start, end token.Pos) bool {
	if c.file == nil {
		return false
	}

	i, _ := slices.BinarySearchFunc(c.file.Comments, start,
		func(c *ast.CommentGroup, p token.Pos) int { return int(c.Pos() - p) })

	return i < len(c.file.Comments) && c.file.Comments[i].Pos() < end
}

// DocHasNoLint checks if the last line of a doc comment is a //nolint directive for linter.
func DocHasNoLint(doc *ast.CommentGroup, linter string) bool {
	return doc != nil && CommentHasNoLint(doc.List[len(doc.List)-1], linter)
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint(?::([a-zA-Z0-9,_-]+))?(?:\s|$)`)

// CommentHasNoLint checks if the provided comment contains a `//nolint` directive for linter.
// A bare `//nolint` applies to all linters.
func CommentHasNoLint(comment *ast.Comment, linter string) bool {
	linters, _, ok := ParseNoLint(comment.Text)
	if !ok {
		return false
	}

	if len(linters) == 0 {
		return true
	}

	for _, l := range linters {
		if l == linter || l == "all" {
			return true
		}
	}

	return false
}

// ParseNoLint extracts the linter names of a nolint directive and the offset
// in text just past the linter list. A bare directive has no linters.
func ParseNoLint(text string) (linters []string, end int, ok bool) {
	loc := nolintPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, 0, false
	}

	if loc[2] < 0 {
		return nil, strings.Index(text, "nolint") + len("nolint"), true
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(text[loc[2]:loc[3]], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l != "" {
			linters = append(linters, l)
		}
	}

	return linters, loc[3], true
}
