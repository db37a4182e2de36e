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

// Package synth generates the ranked fix candidates for a matched site.
package synth

import (
	"fmt"
	"strings"

	"fillmore-labs.com/implicitblocking/internal/capability"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/match"
	"fillmore-labs.com/implicitblocking/internal/source"
)

// Host provides the document-specific parts of a fix.
type Host interface {
	// Qualify returns an expression referring to function name of package path,
	// and the import needed for it to resolve. The import is zero when none is needed.
	Qualify(path, name string) (expr string, imp source.Import)

	// Suppress returns the edit attaching a suppression marker for check to decl.
	Suppress(decl match.Decl, check string) source.Edit
}

// Candidate is one proposed fix for a [match.Site].
type Candidate struct {
	Rank    Rank
	Message string
	Edit    source.Edit
	Imports []source.Import
	Decl    match.Decl // The declaration a suppression marker is attached to
}

// Expression returns the matched expression as rewritten by this candidate.
// For suppression, the expression is unchanged.
func (c Candidate) Expression(src []byte, site match.Site) string {
	if c.Rank == RankSuppress {
		return site.Span.Text(src)
	}

	var b strings.Builder
	b.WriteString(string(src[site.Span.Start:c.Edit.Span.Start])) // ignore error
	b.WriteString(c.Edit.NewText)                                 // ignore error
	b.WriteString(string(src[c.Edit.Span.End:site.Span.End]))     // ignore error

	return b.String()
}

// Synthesize returns the fix candidates for site, ordered by [Rank].
//
// The suppression candidate is always present. The preferred candidate is only produced
// when its helper type is available, so every returned import is resolvable.
// Sites with comments inside the terminal are only suppressed.
func Synthesize(site match.Site, caps capability.Set, t config.Target, h Host) []Candidate {
	candidates := make([]Candidate, 0, 3)

	candidates = append(candidates, Candidate{
		Rank:    RankSuppress,
		Message: fmt.Sprintf("Suppress %s in %s", t.Check, site.Decl.Name()),
		Edit:    h.Suppress(site.Decl, t.Check),
		Decl:    site.Decl,
	})

	if site.Commented {
		return candidates
	}

	if caps.Has(capability.ImmutableCollections) {
		candidates = append(candidates, accumulate(RankPreferred, site, t, t.Preferred, h))
	}

	candidates = append(candidates, accumulate(RankBaseline, site, t, t.Baseline, h))

	return candidates
}

// accumulate rewrites the terminal to collect into an unmodifiable collection and block for it.
// The continuation is kept in place; after a stream terminal the collection is streamed again.
func accumulate(rank Rank, site match.Site, t config.Target, a config.Accumulator, h Host) Candidate {
	expr, imp := h.Qualify(a.Path, a.Name)
	if a.Call {
		expr += "()"
	}

	var b strings.Builder
	fmt.Fprintf(&b, ".%s(%s).%s()", t.Collect, expr, t.Block) // ignore error

	if site.Terminal.Streams() {
		fmt.Fprintf(&b, ".%s()", t.Stream) // ignore error
	}

	c := Candidate{
		Rank:    rank,
		Message: fmt.Sprintf("Collect with %s and block explicitly", expr),
		Edit:    source.Edit{Span: site.TerminalSpan, NewText: b.String()},
	}

	if !imp.IsZero() {
		c.Imports = []source.Import{imp}
	}

	return c
}
