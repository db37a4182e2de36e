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

// Package engine runs the per-unit pipeline: probe, match, synthesize, then report or rewrite.
//
// The pipeline is host-agnostic. Hosts provide a [Document] for each source file and a
// [capability.Resolver] for each compilation unit. All state is private to one unit,
// so units can be processed in parallel without locking.
package engine

import (
	"context"
	"runtime/trace"

	"fillmore-labs.com/implicitblocking/internal/apply"
	"fillmore-labs.com/implicitblocking/internal/capability"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/match"
	"fillmore-labs.com/implicitblocking/internal/report"
	"fillmore-labs.com/implicitblocking/internal/synth"
)

// Document is one source file as seen by the pipeline.
type Document interface {
	match.Tree
	synth.Host
	apply.Importer

	// Source returns the original document text.
	Source() []byte
}

// Finding is a matched site with its diagnostic and ranked fix candidates.
type Finding struct {
	Site       match.Site
	Diagnostic report.Diagnostic
	Candidates []synth.Candidate
}

// Engine checks documents against one [config.Target].
type Engine struct {
	target  config.Target
	matcher *match.Matcher
}

// New creates an [Engine] for the target.
func New(t config.Target) *Engine {
	return &Engine{target: t, matcher: match.New(t)}
}

// Target returns the checked [config.Target].
func (e *Engine) Target() config.Target { return e.target }

// Probe computes the capabilities of a compilation unit. Call it once per unit.
func (e *Engine) Probe(r capability.Resolver) capability.Set {
	return capability.Probe(r, e.target)
}

// Analyze matches all sites of doc and synthesizes their diagnostics and candidates.
func (e *Engine) Analyze(ctx context.Context, doc Document, caps capability.Set) []Finding {
	defer trace.StartRegion(ctx, "Analyze").End()

	sites := e.matcher.All(doc)
	if len(sites) == 0 {
		return nil
	}

	findings := make([]Finding, 0, len(sites))
	for _, site := range sites {
		findings = append(findings, Finding{
			Site:       site,
			Diagnostic: report.New(site, caps, e.target),
			Candidates: synth.Synthesize(site, caps, e.target, doc),
		})
	}

	return findings
}

// Rewrite applies the candidate selected by s at every finding of doc and returns the new document text.
//
// Findings without a candidate of the selected rank are left unedited. Without findings,
// the original text is returned unchanged.
func Rewrite(ctx context.Context, doc Document, findings []Finding, s apply.Strategy) ([]byte, apply.Selection, error) {
	defer trace.StartRegion(ctx, "Rewrite").End()

	candidates := make([][]synth.Candidate, 0, len(findings))
	for _, f := range findings {
		candidates = append(candidates, f.Candidates)
	}

	sel := apply.Select(candidates, s)

	out, err := apply.Apply(doc.Source(), sel, doc)
	if err != nil {
		return nil, sel, err
	}

	return out, sel, nil
}
