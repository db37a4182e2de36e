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

// Package memtree is an in-memory document host for Java-like sources.
//
// It models just enough of the language to exercise the pipeline without a compiler:
// imports (including static imports), class members with @SuppressWarnings annotations,
// and call chains whose static types come from a [Types] table.
// It is intended for tests.
package memtree

import (
	"cmp"
	"iter"
	"slices"
	"strconv"
	"strings"

	"fillmore-labs.com/implicitblocking/internal/capability"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/match"
	"fillmore-labs.com/implicitblocking/internal/source"
)

// Reactor returns the [config.Target] for Reactor's Flux in Java-like sources.
func Reactor() config.Target {
	return config.Target{
		Check:      "ImplicitBlockingFluxOperation",
		Publisher:  "reactor.core.publisher.Flux",
		ToIterable: "toIterable",
		ToStream:   "toStream",
		Collect:    "collect",
		Block:      "block",
		Stream:     "stream",
		Preferred: config.Accumulator{
			Path:   "com.google.common.collect.ImmutableList",
			Name:   "toImmutableList",
			Call:   true,
			Helper: "com.google.common.collect.ImmutableList",
		},
		Baseline: config.Accumulator{
			Path: "java.util.stream.Collectors",
			Name: "toUnmodifiableList",
			Call: true,
		},
	}
}

// Types is the static type table of a document.
type Types struct {
	// Returns maps "Owner.method" to the result type, with Owner and result fully qualified.
	Returns map[string]string

	// Supertypes maps a qualified type to its direct supertypes.
	Supertypes map[string][]string
}

// ReactorTypes returns a [Types] table for Reactor's Flux and a same-named method lookalike.
func ReactorTypes() Types {
	const flux = "reactor.core.publisher.Flux"

	return Types{
		Returns: map[string]string{
			flux + ".just":       flux,
			flux + ".range":      flux,
			flux + ".map":        flux,
			flux + ".filter":     flux,
			flux + ".take":       flux,
			flux + ".collect":    "reactor.core.publisher.Mono",
			flux + ".toStream":   "java.util.stream.Stream",
			flux + ".toIterable": "java.lang.Iterable",
		},
		Supertypes: map[string][]string{
			flux:                          {"reactor.core.CorePublisher"},
			"reactor.core.CorePublisher":  {"org.reactivestreams.Publisher"},
			"reactor.core.publisher.Mono": {"reactor.core.CorePublisher"},
		},
	}
}

// Classpath returns a [capability.Resolver] for the given qualified type names.
func Classpath(types ...string) capability.Resolver {
	return capability.ResolverFunc(func(qualified string) bool { return slices.Contains(types, qualified) })
}

// Doc is a parsed in-memory document. It implements the engine's document interface.
type Doc struct {
	src     []byte
	check   string
	types   Types
	calls   []*expr
	members []*member
	imports []importDecl
	header  int // Offset after the package declaration, 0 without one

	comments []source.Span
}

// Source returns the document text.
func (d *Doc) Source() []byte { return d.src }

// Calls implements [match.Tree]. Calls in members suppressing the check are skipped.
func (d *Doc) Calls() iter.Seq[match.Call] {
	return func(yield func(match.Call) bool) {
		for _, c := range d.calls {
			if d.suppressed(c.span) {
				continue
			}

			if !yield(c) {
				return
			}
		}
	}
}

// AssignableTo implements [match.Tree].
func (d *Doc) AssignableTo(e match.Node, qualified string) bool {
	x, ok := e.(*expr)
	if !ok || x.static || x.typ == "" {
		return false
	}

	seen := make(map[string]struct{})

	for queue := []string{x.typ}; len(queue) > 0; queue = queue[1:] {
		t := queue[0]
		if t == qualified {
			return true
		}

		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		queue = append(queue, d.types.Supertypes[t]...)
	}

	return false
}

// Commented implements [match.Tree].
func (d *Doc) Commented(s source.Span) bool {
	i, _ := slices.BinarySearchFunc(d.comments, s.Start,
		func(c source.Span, off int) int { return c.Start - off })

	return i < len(d.comments) && d.comments[i].Start < s.End
}

// Enclosing implements [match.Tree].
func (d *Doc) Enclosing(n match.Node) (match.Decl, bool) {
	m, ok := d.enclosing(n.Span())
	if !ok {
		return nil, false
	}

	return m, true
}

// enclosing returns the smallest member containing s.
func (d *Doc) enclosing(s source.Span) (*member, bool) {
	var found *member

	for _, m := range d.members {
		if m.span.Contains(s) && (found == nil || m.span.Len() < found.span.Len()) {
			found = m
		}
	}

	return found, found != nil
}

// suppressed reports whether any member containing s suppresses the check.
func (d *Doc) suppressed(s source.Span) bool {
	for _, m := range d.members {
		if m.span.Contains(s) && m.suppresses(d.check) {
			return true
		}
	}

	return false
}

// Qualify implements [synth.Host] with static imports.
func (d *Doc) Qualify(path, name string) (string, source.Import) {
	imp := source.Import{Path: path, Name: name}

	for _, i := range d.imports {
		if i.static && (i.name == imp.Qualified() || i.name == path+".*") {
			return name, source.Import{}
		}
	}

	return name, imp
}

// Suppress implements [synth.Host] by annotating the member.
// An existing @SuppressWarnings annotation is extended instead.
func (d *Doc) Suppress(decl match.Decl, check string) source.Edit {
	m := decl.(*member)
	quoted := strconv.Quote(check)

	switch {
	case m.annotation.Empty():

	case !m.array:
		return source.Edit{
			Span:    m.annotation,
			NewText: "{" + m.annotation.Text(d.src) + ", " + quoted + "}",
		}

	case len(m.suppressed) == 0:
		at := m.annotation.End - 1

		return source.Edit{Span: source.Span{Start: at, End: at}, NewText: quoted}

	default:
		at := m.annotation.End - 1

		return source.Edit{Span: source.Span{Start: at, End: at}, NewText: ", " + quoted}
	}

	return source.Edit{
		Span:    source.Span{Start: m.span.Start, End: m.span.Start},
		NewText: "@SuppressWarnings(" + quoted + ")\n" + m.indent,
	}
}

// ImportEdits implements [apply.Importer].
//
// New static imports go after the existing static imports, or before all other imports
// separated by an empty line.
func (d *Doc) ImportEdits(imports []source.Import) []source.Edit {
	var lines []string
	for _, imp := range imports {
		lines = append(lines, "import static "+imp.Qualified()+";\n")
	}

	slices.Sort(lines)
	text := strings.Join(lines, "")

	lastStatic := -1
	for i, imp := range d.imports {
		if imp.static {
			lastStatic = i
		}
	}

	var at int

	switch {
	case lastStatic >= 0:
		at = d.imports[lastStatic].lineEnd

	case len(d.imports) > 0:
		at = d.imports[0].start
		text += "\n"

	default:
		at = d.header
		text = "\n" + text
	}

	return []source.Edit{{Span: source.Span{Start: at, End: at}, NewText: text}}
}

type importDecl struct {
	start, lineEnd int
	static         bool
	name           string
}

// member is a class member declaration.
type member struct {
	span       source.Span
	name       string
	indent     string
	suppressed []string
	annotation source.Span // Value of an existing @SuppressWarnings, empty without one
	array      bool        // annotation is an array initializer
}

func (m *member) Span() source.Span { return m.span }

func (m *member) Name() string { return m.name }

func (m *member) suppresses(check string) bool {
	return slices.Contains(m.suppressed, check) || slices.Contains(m.suppressed, "all")
}

// expr is an expression of a call chain.
type expr struct {
	span    source.Span
	typ     string // Qualified static type, empty when unknown
	static  bool   // A class reference, as Flux in Flux.just()
	call    bool
	method  string
	nargs   int
	recv    *expr
	chained *expr
}

func (e *expr) Span() source.Span { return e.span }

func (e *expr) Method() string { return e.method }

func (e *expr) NumArgs() int { return e.nargs }

func (e *expr) Receiver() (match.Node, bool) {
	if e.recv == nil {
		return nil, false
	}

	return e.recv, true
}

func (e *expr) Chained() (match.Call, bool) {
	if e.chained == nil {
		return nil, false
	}

	return e.chained, true
}

func sortCalls(calls []*expr) {
	slices.SortStableFunc(calls, func(a, b *expr) int {
		return cmp.Or(cmp.Compare(a.span.Start, b.span.Start), cmp.Compare(a.span.End, b.span.End))
	})
}
