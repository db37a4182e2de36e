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

// Package report builds the diagnostics for matched sites.
package report

import (
	"fmt"
	"strings"

	"fillmore-labs.com/implicitblocking/internal/capability"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/match"
	"fillmore-labs.com/implicitblocking/internal/source"
)

// Diagnostic is a reported occurrence of an implicitly blocking call.
type Diagnostic struct {
	Span    source.Span `json:"span"`
	Message string      `json:"message"`
	Check   string      `json:"check"`
}

// New creates the [Diagnostic] for site.
//
// The preferred accumulator is only mentioned when its helper type is available.
func New(site match.Site, caps capability.Set, t config.Target) Diagnostic {
	return Diagnostic{
		Span:    site.Span,
		Message: createMessage(site.Terminal, caps, t),
		Check:   t.Check,
	}
}

// createMessage constructs the diagnostic message from the target's vocabulary.
func createMessage(terminal match.Terminal, caps capability.Set, t config.Target) string {
	var alternatives []string
	if caps.Has(capability.ImmutableCollections) {
		alternatives = append(alternatives, alternative(t, t.Preferred))
	}

	alternatives = append(alternatives, alternative(t, t.Baseline))

	method := t.ToIterable
	if terminal == match.ToStream {
		method = t.ToStream
	}

	_, publisher, _ := config.SplitQualified(t.Publisher)

	return fmt.Sprintf("%s.%s() blocks implicitly; use %s to make the blocking explicit",
		publisher, method, concatAlternatives(alternatives))
}

func alternative(t config.Target, a config.Accumulator) string {
	name := simpleName(a.Path) + "." + a.Name
	if a.Call {
		name += "()"
	}

	return fmt.Sprintf("%s(%s).%s()", t.Collect, name, t.Block)
}

// simpleName returns the last element of an import path or dotted name.
func simpleName(path string) string {
	return path[strings.LastIndexAny(path, "/.")+1:]
}

// concatAlternatives formats a list of alternatives into a human-readable string (e.g., "a, b or c").
func concatAlternatives(alternatives []string) string {
	var all strings.Builder

	for i, alt := range alternatives {
		if i > 0 {
			var separator string
			if i == len(alternatives)-1 {
				separator = " or "
			} else {
				separator = ", "
			}

			all.WriteString(separator) // ignore error
		}

		all.WriteString(alt) // ignore error
	}

	return all.String()
}
