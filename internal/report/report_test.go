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

package report_test

import (
	"testing"

	"fillmore-labs.com/implicitblocking/internal/capability"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/match"
	. "fillmore-labs.com/implicitblocking/internal/report"
	"fillmore-labs.com/implicitblocking/internal/source"
)

func TestNew(t *testing.T) {
	t.Parallel()

	target := config.DefaultTarget()
	span := source.Span{Start: 3, End: 17}

	tests := []struct {
		name     string
		terminal match.Terminal
		caps     capability.Set
		want     string
	}{
		{
			name:     "iterable",
			terminal: match.ToIterable,
			want:     "Flux.ToIterable() blocks implicitly; use Collect(flux.ToList).Block() to make the blocking explicit",
		},
		{
			name:     "stream with helper",
			terminal: match.ToStream,
			caps:     capability.Of(capability.ImmutableCollections),
			want: "Flux.ToStream() blocks implicitly; " +
				"use Collect(immutable.ToList).Block() or Collect(flux.ToList).Block() to make the blocking explicit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := New(match.Site{Span: span, Terminal: tt.terminal}, tt.caps, target)

			if d.Message != tt.want {
				t.Errorf("Message = %q, want %q", d.Message, tt.want)
			}

			if d.Span != span || d.Check != "implicitblocking" {
				t.Errorf("Diagnostic = %v, %q, want %v, %q", d.Span, d.Check, span, "implicitblocking")
			}
		})
	}
}
