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

// Package apply selects one fix candidate per site and merges the selection into a rewritten document.
package apply

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"

	"fillmore-labs.com/implicitblocking/internal/source"
	"fillmore-labs.com/implicitblocking/internal/synth"
)

// Selection is the set of document edits chosen by a [Strategy].
type Selection struct {
	Edits   []source.Edit
	Imports []source.Import

	// Skipped counts sites without a candidate of the requested rank. They stay unedited.
	Skipped int
}

// Empty reports whether the selection would leave the document unchanged.
func (s Selection) Empty() bool { return len(s.Edits) == 0 && len(s.Imports) == 0 }

// Select picks the candidate of the strategy's rank for every site.
//
// candidates holds the ranked candidate lists, one per site. Suppression markers are
// added once per enclosing declaration, imports are deduplicated and sorted.
func Select(candidates [][]synth.Candidate, s Strategy) Selection {
	var (
		sel        Selection
		rank       = s.Rank()
		suppressed = make(map[source.Span]struct{})
		imports    = make(map[source.Import]struct{})
	)

	for _, site := range candidates {
		i := slices.IndexFunc(site, func(c synth.Candidate) bool { return c.Rank == rank })
		if i < 0 {
			sel.Skipped++

			continue
		}

		c := site[i]

		if c.Rank == synth.RankSuppress {
			decl := c.Decl.Span()
			if _, ok := suppressed[decl]; ok {
				continue
			}

			suppressed[decl] = struct{}{}
		}

		sel.Edits = append(sel.Edits, c.Edit)

		for _, imp := range c.Imports {
			if _, ok := imports[imp]; ok {
				continue
			}

			imports[imp] = struct{}{}
			sel.Imports = append(sel.Imports, imp)
		}
	}

	slices.SortFunc(sel.Imports, func(a, b source.Import) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Name, b.Name))
	})

	return sel
}

// Importer turns import requests into document edits.
type Importer interface {
	// ImportEdits returns non-overlapping edits adding the missing imports.
	ImportEdits(imports []source.Import) []source.Edit
}

// ErrOverlap indicates edits that would interfere with each other.
// Sites are disjoint by construction, so this is an internal consistency failure.
var ErrOverlap = errors.New("overlapping edits")

// ErrOutOfRange indicates an edit outside the document.
var ErrOutOfRange = errors.New("edit out of range")

// OverlapError reports the first pair of overlapping edits.
type OverlapError struct {
	A, B source.Edit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%v: %v and %v", ErrOverlap, e.A, e.B)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

// Apply rewrites src with all edits of sel in a single pass.
//
// Untouched regions are copied byte for byte; an empty selection returns src itself.
func Apply(src []byte, sel Selection, imp Importer) ([]byte, error) {
	if sel.Empty() {
		return src, nil
	}

	edits := slices.Clone(sel.Edits)
	if len(sel.Imports) > 0 && imp != nil {
		edits = append(edits, imp.ImportEdits(sel.Imports)...)
	}

	if err := Check(edits, len(src)); err != nil {
		return nil, err
	}

	var (
		out    bytes.Buffer
		cursor int
	)

	out.Grow(len(src) + growth(edits))

	for _, e := range edits {
		out.Write(src[cursor:e.Span.Start]) // ignore error
		out.WriteString(e.NewText)          // ignore error
		cursor = e.Span.End
	}

	out.Write(src[cursor:]) // ignore error

	return out.Bytes(), nil
}

// Check sorts edits by position and verifies they are pairwise disjoint and inside a document of length size.
func Check(edits []source.Edit, size int) error {
	slices.SortStableFunc(edits, func(a, b source.Edit) int {
		return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
	})

	for i, e := range edits {
		if e.Span.Start < 0 || e.Span.End < e.Span.Start || e.Span.End > size {
			return fmt.Errorf("%w: %v in document of size %d", ErrOutOfRange, e, size)
		}

		if i == 0 {
			continue
		}

		// After sorting, an edit can only interfere with its predecessor, since spans are disjoint up to here.
		if prev := edits[i-1]; prev.Span.Overlaps(e.Span) {
			return &OverlapError{A: prev, B: e}
		}
	}

	return nil
}

func growth(edits []source.Edit) int {
	n := 0
	for _, e := range edits {
		n += len(e.NewText) - e.Span.Len()
	}

	return max(n, 0)
}
