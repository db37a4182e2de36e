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

// Package match finds blocking conversion terminals invoked on reactive publishers.
package match

import (
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/source"
)

// Site is one occurrence of an implicitly blocking call chain.
type Site struct {
	// Span covers the receiver through the last continuation call.
	Span source.Span

	// Receiver covers the publisher expression before the blocking call.
	Receiver source.Span

	// Terminal is the matched blocking conversion.
	Terminal Terminal

	// TerminalSpan covers the terminal selection and invocation, from the end of the
	// receiver through the closing parenthesis, e.g. ".toStream()".
	TerminalSpan source.Span

	// Commented is set when TerminalSpan contains a comment, which rewriting the terminal would drop.
	Commented bool

	// Continuation lists the calls chained onto the blocking result, in order.
	Continuation []Invocation

	// Decl is the smallest member declaration enclosing the site.
	Decl Decl
}

// Invocation is a method call of a continuation chain.
type Invocation struct {
	Method string
	Span   source.Span // From the end of the previous call through this invocation, e.g. ".count()"
}

// Matcher recognizes [Site]s for one [config.Target].
type Matcher struct {
	publisher string
	terminals map[string]Terminal
}

// New creates a [Matcher] for the target's publisher type and terminal methods.
func New(t config.Target) *Matcher {
	return &Matcher{
		publisher: t.Publisher,
		terminals: map[string]Terminal{
			t.ToIterable: ToIterable,
			t.ToStream:   ToStream,
		},
	}
}

// Match reports whether call is a blocking terminal on a publisher and returns the [Site] if so.
//
// Only the zero-argument forms match; overloads taking a buffer size express intentionally bounded
// behavior.
func (m *Matcher) Match(tree Tree, call Call) (Site, bool) {
	terminal, ok := m.terminals[call.Method()]
	if !ok || call.NumArgs() != 0 {
		return Site{}, false
	}

	recv, ok := call.Receiver()
	if !ok || !tree.AssignableTo(recv, m.publisher) {
		return Site{}, false
	}

	decl, ok := tree.Enclosing(call)
	if !ok {
		return Site{}, false
	}

	receiver, end := recv.Span(), call.Span().End

	site := Site{
		Receiver:     receiver,
		Terminal:     terminal,
		TerminalSpan: source.Span{Start: receiver.End, End: end},
		Decl:         decl,
	}
	site.Commented = tree.Commented(site.TerminalSpan)

	for next, ok := call.Chained(); ok; next, ok = next.Chained() {
		nextEnd := next.Span().End
		site.Continuation = append(site.Continuation, Invocation{
			Method: next.Method(),
			Span:   source.Span{Start: end, End: nextEnd},
		})
		end = nextEnd
	}

	site.Span = source.Span{Start: receiver.Start, End: end}

	return site, true
}

// All returns the [Site]s of a document in source order.
func (m *Matcher) All(tree Tree) []Site {
	var sites []Site

	for call := range tree.Calls() {
		if site, ok := m.Match(tree, call); ok {
			sites = append(sites, site)
		}
	}

	return sites
}
