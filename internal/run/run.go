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

// Package run implements the implicitblocking analysis pass.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/implicitblocking/internal/astutil"
	"fillmore-labs.com/implicitblocking/internal/engine"
	"fillmore-labs.com/implicitblocking/internal/goast"
	"fillmore-labs.com/implicitblocking/internal/source"
	"fillmore-labs.com/implicitblocking/internal/synth"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the implicitblocking analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("%s: %s %w", r.Target.Check, inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "ImplicitBlocking")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	u := Unit{
		Fset:     p.Fset,
		Root:     in.Root(),
		Pkg:      p.Pkg,
		Info:     p.TypesInfo,
		ReadFile: p.ReadFile,
	}

	fail := func(file *ast.File, err error) { astutil.InternalError(p, file, err) }

	for _, res := range r.Analyze(ctx, engine.New(r.Target), u, fail) {
		r.report(ctx, p, res.Doc, res.Findings)
	}

	return nil, nil
}

// report emits one diagnostic per finding with the selected suggested fixes.
func (r *Options) report(ctx context.Context, p *analysis.Pass, doc *goast.File, findings []engine.Finding) {
	defer trace.StartRegion(ctx, "Report").End()

	rank := r.Strategy.Rank()

	for _, f := range findings {
		d := analysis.Diagnostic{
			Pos:     doc.Pos(f.Diagnostic.Span.Start),
			End:     doc.Pos(f.Diagnostic.Span.End),
			Message: f.Diagnostic.Message,
		}

		for _, c := range f.Candidates {
			if !r.AllFixes && c.Rank != rank {
				continue
			}

			d.SuggestedFixes = append(d.SuggestedFixes, suggestedFix(doc, c))
		}

		p.Report(d)
	}
}

// suggestedFix converts a candidate into a self-contained [analysis.SuggestedFix], including its imports.
func suggestedFix(doc *goast.File, c synth.Candidate) analysis.SuggestedFix {
	edits := append([]source.Edit{c.Edit}, doc.ImportEdits(c.Imports)...)

	textEdits := make([]analysis.TextEdit, 0, len(edits))
	for _, e := range edits {
		textEdits = append(textEdits, analysis.TextEdit{
			Pos:     doc.Pos(e.Span.Start),
			End:     doc.Pos(e.Span.End),
			NewText: []byte(e.NewText),
		})
	}

	return analysis.SuggestedFix{Message: c.Message, TextEdits: textEdits}
}
