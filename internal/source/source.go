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

// Package source holds the host-neutral text model shared by all pipeline stages:
// byte spans into a document, replacement edits and import requests.
package source

import "fmt"

// Span is a half-open byte range [Start, End) in a document.
type Span struct {
	Start, End int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers no bytes, as is the case for insertions.
func (s Span) Empty() bool { return s.Start == s.End }

// Contains reports whether o lies completely within s.
func (s Span) Contains(o Span) bool { return s.Start <= o.Start && o.End <= s.End }

// Overlaps reports whether two edits on s and o would interfere.
//
// Two insertions at the same offset interfere, since their relative order is undefined.
// An insertion at the boundary of a replacement does not.
func (s Span) Overlaps(o Span) bool {
	if s.Empty() && o.Empty() {
		return s.Start == o.Start
	}

	return s.Start < o.End && o.Start < s.End
}

// Text returns the bytes of src covered by the span.
func (s Span) Text(src []byte) string { return string(src[s.Start:s.End]) }

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

// Edit replaces the bytes of Span with NewText.
type Edit struct {
	Span    Span
	NewText string
}

func (e Edit) String() string { return fmt.Sprintf("%s%q", e.Span, e.NewText) }

// Import is a request to make the symbol Name of the package (or type) Path resolvable.
//
// How the request maps to an import statement is up to the host: Go imports the package Path,
// while a language with static imports may import the member Path.Name.
type Import struct {
	Path string
	Name string
}

// Qualified returns the fully qualified symbol name.
func (i Import) Qualified() string { return i.Path + "." + i.Name }

// IsZero reports whether no import is requested.
func (i Import) IsZero() bool { return i.Path == "" }
