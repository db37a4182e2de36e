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

package memtree_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"fillmore-labs.com/implicitblocking/internal/match"
	. "fillmore-labs.com/implicitblocking/internal/memtree"
	"fillmore-labs.com/implicitblocking/internal/source"
)

func lines(l ...string) string { return strings.Join(l, "\n") + "\n" }

func parse(t *testing.T, src string) *Doc {
	t.Helper()

	doc, err := Parse(src, Reactor(), ReactorTypes())
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	return doc
}

func methods(doc *Doc) []string {
	var names []string
	for c := range doc.Calls() {
		names = append(names, c.Method())
	}

	return names
}

func TestCalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "chain",
			src: lines(
				"import reactor.core.publisher.Flux;",
				"class A {",
				"  void m() { Flux.just(1).toStream().count(); }",
				"}",
			),
			want: []string{"just", "toStream", "count"},
		},
		{
			name: "member suppressed",
			src: lines(
				"import reactor.core.publisher.Flux;",
				"class A {",
				"  @SuppressWarnings(\"ImplicitBlockingFluxOperation\")",
				"  void m() { Flux.just(1).toStream(); }",
				"  void n() { Flux.just(2).toIterable(); }",
				"}",
			),
			want: []string{"just", "toIterable"},
		},
		{
			name: "type suppressed",
			src: lines(
				"import reactor.core.publisher.Flux;",
				"@SuppressWarnings({\"unchecked\", \"ImplicitBlockingFluxOperation\"})",
				"class A {",
				"  void m() { Flux.just(1).toStream(); }",
				"}",
			),
			want: nil,
		},
		{
			name: "all suppressed",
			src: lines(
				"class A {",
				"  @SuppressWarnings(value = \"all\")",
				"  void m() { foo(); }",
				"}",
			),
			want: nil,
		},
		{
			name: "comments and strings",
			src: lines(
				"class A {",
				"  // a.toStream();",
				"  /* b.toStream(); */",
				"  String s = \"c.toStream()\";",
				"}",
			),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := methods(parse(t, tt.src)); !slices.Equal(got, tt.want) {
				t.Errorf("Calls() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignableTo(t *testing.T) {
	t.Parallel()

	src := lines(
		"import reactor.core.publisher.Flux;",
		"class A {",
		"  Flux<Integer> field = Flux.range(1, 3);",
		"  void m(Flux<String> param) {",
		"    Flux<Long> local = Flux.just(1L);",
		"    field.toStream();",
		"    param.toStream();",
		"    local.toStream();",
		"    (Flux.just(1)).toStream();",
		"    unknown.toStream();",
		"    Flux.toStream();",
		"  }",
		"}",
	)

	doc := parse(t, src)

	var got []bool

	for c := range doc.Calls() {
		if c.Method() != "toStream" {
			continue
		}

		recv, ok := c.Receiver()
		got = append(got, ok && doc.AssignableTo(recv, "org.reactivestreams.Publisher"))
	}

	want := []bool{true, true, true, true, false, false}
	if !slices.Equal(got, want) {
		t.Errorf("AssignableTo() = %v, want %v", got, want)
	}
}

func TestNumArgs(t *testing.T) {
	t.Parallel()

	src := lines(
		"class A {",
		"  void m() { f(); f(1); f(g(1, 2), 3); f(x -> { return 1; }); f(new int[] {1, 2}); }",
		"}",
	)

	doc := parse(t, src)

	var got []int

	for c := range doc.Calls() {
		if c.Method() == "f" {
			got = append(got, c.NumArgs())
		}
	}

	if want := []int{0, 1, 2, 1, 1}; !slices.Equal(got, want) {
		t.Errorf("NumArgs() = %v, want %v", got, want)
	}
}

func TestSuppress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		annotation string
		want       string
	}{
		{
			name: "none",
			want: "  @SuppressWarnings(\"ImplicitBlockingFluxOperation\")\n  void m() { f(); }",
		},
		{
			name:       "single",
			annotation: "  @SuppressWarnings(\"unchecked\")\n",
			want:       "  @SuppressWarnings({\"unchecked\", \"ImplicitBlockingFluxOperation\"})\n  void m() { f(); }",
		},
		{
			name:       "array",
			annotation: "  @SuppressWarnings({\"unchecked\", \"rawtypes\"})\n",
			want:       "  @SuppressWarnings({\"unchecked\", \"rawtypes\", \"ImplicitBlockingFluxOperation\"})\n  void m() { f(); }",
		},
		{
			name:       "empty array",
			annotation: "  @SuppressWarnings({})\n",
			want:       "  @SuppressWarnings({\"ImplicitBlockingFluxOperation\"})\n  void m() { f(); }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := "class A {\n" + tt.annotation + "  void m() { f(); }\n}\n"
			doc := parse(t, src)

			var call match.Call
			for c := range doc.Calls() {
				call = c
			}

			decl, ok := doc.Enclosing(call)
			if !ok || decl.Name() != "m" {
				t.Fatalf("Enclosing() = %v, %t, want m", decl, ok)
			}

			e := doc.Suppress(decl, "ImplicitBlockingFluxOperation")
			out := src[:e.Span.Start] + e.NewText + src[e.Span.End:]

			if !strings.Contains(out, tt.want) {
				t.Errorf("Suppress() produced\n%s\nwant it to contain\n%s", out, tt.want)
			}
		})
	}
}

func TestImportEdits(t *testing.T) {
	t.Parallel()

	imports := []source.Import{
		{Path: "java.util.stream.Collectors", Name: "toUnmodifiableList"},
		{Path: "com.google.common.collect.ImmutableList", Name: "toImmutableList"},
	}

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "after static imports",
			src:  "package p;\n\nimport static a.B.c;\n\nimport d.E;\n",
			want: "package p;\n\nimport static a.B.c;\n" +
				"import static com.google.common.collect.ImmutableList.toImmutableList;\n" +
				"import static java.util.stream.Collectors.toUnmodifiableList;\n" +
				"\nimport d.E;\n",
		},
		{
			name: "before imports",
			src:  "package p;\n\nimport d.E;\n",
			want: "package p;\n\n" +
				"import static com.google.common.collect.ImmutableList.toImmutableList;\n" +
				"import static java.util.stream.Collectors.toUnmodifiableList;\n" +
				"\nimport d.E;\n",
		},
		{
			name: "after package",
			src:  "package p;\n\nclass A {}\n",
			want: "package p;\n\n" +
				"import static com.google.common.collect.ImmutableList.toImmutableList;\n" +
				"import static java.util.stream.Collectors.toUnmodifiableList;\n" +
				"\nclass A {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parse(t, tt.src)

			edits := doc.ImportEdits(imports)
			if len(edits) != 1 {
				t.Fatalf("Got %d edits, want 1", len(edits))
			}

			e := edits[0]
			if got := tt.src[:e.Span.Start] + e.NewText + tt.src[e.Span.End:]; got != tt.want {
				t.Errorf("ImportEdits() produced\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestQualify(t *testing.T) {
	t.Parallel()

	doc := parse(t, "import static java.util.stream.Collectors.*;\nclass A {}\n")

	if expr, imp := doc.Qualify("java.util.stream.Collectors", "toUnmodifiableList"); expr != "toUnmodifiableList" || !imp.IsZero() {
		t.Errorf("Qualify() = %q, %v, want no import", expr, imp)
	}

	if _, imp := doc.Qualify("com.google.common.collect.ImmutableList", "toImmutableList"); imp.IsZero() {
		t.Error("Qualify() should request an import")
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"class A {\n  void m() { f(; }\n",
		"class A { String s = \"unterminated; }",
		"class A { /* unterminated }",
	} {
		if _, err := Parse(src, Reactor(), ReactorTypes()); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want %v", src, err, ErrSyntax)
		}
	}
}
