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

package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	. "fillmore-labs.com/implicitblocking/analyzer"
	"fillmore-labs.com/implicitblocking/internal/apply"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/run"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial bool
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: false,
			args:    []string{"-generated"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: true,
			args:    []string{"-generated=off"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var flags config.Behavior
			flags.Set(config.IncludeGenerated, tt.initial)

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			fv := NewBehaviorValue(&flags, config.IncludeGenerated)
			fs.Var(fv, "generated", "check generated files")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Flag get = %v, want %v", fv.Get(), tt.want)
			}

			if flags.Enabled(config.IncludeGenerated) != tt.want {
				t.Errorf("IncludeGenerated enabled = %v, want %v", flags.Enabled(config.IncludeGenerated), tt.want)
			}
		})
	}
}

func TestFlagValueInvalid(t *testing.T) {
	t.Parallel()

	var flags config.Behavior

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	fs.Var(NewBehaviorValue(&flags, config.IncludeGenerated), "generated", "check generated files")

	if err := fs.Parse([]string{"-generated=maybe"}); err == nil {
		t.Error("Expected parse error")
	}
}

func TestStrategyValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		all      bool
		strategy apply.Strategy
		want     string
	}{
		{
			name:     "Default",
			all:      true,
			strategy: apply.First,
			want:     "all",
		},
		{
			name:     "Ordinal",
			args:     []string{"-strategy=third"},
			strategy: apply.Third,
			want:     "third",
		},
		{
			name:     "Number",
			args:     []string{"-strategy", "2"},
			strategy: apply.Second,
			want:     "second",
		},
		{
			name:     "Suppress",
			args:     []string{"-strategy=suppress"},
			strategy: apply.Suppress,
			want:     "suppress",
		},
		{
			name:     "All",
			args:     []string{"-strategy=second", "-strategy=ALL"},
			all:      true,
			strategy: apply.Second,
			want:     "all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := run.DefaultOptions()

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			fv := NewStrategyValue(o)
			fs.Var(fv, "strategy", "suggested fixes")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if o.AllFixes != tt.all || o.Strategy != tt.strategy {
				t.Errorf("Options = %t, %v, want %t, %v", o.AllFixes, o.Strategy, tt.all, tt.strategy)
			}

			if got := fv.Get(); got != tt.want {
				t.Errorf("Flag get = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	var flags config.Behavior
	flags.Set(config.IncludeGenerated, true)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewBehaviorValue(&flags, config.IncludeGenerated)
	fs.Var(fv, "generated", "check generated files")

	const expectedUsage = `
  -generated
    	check generated files (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}

func TestFlagsAvoidDriver(t *testing.T) {
	t.Parallel()

	// flags registered by the analysis drivers next to the analyzer's own
	driver := []string{"V", "flags", "fix", "diff", "json", "c", "test", "debug", "cpuprofile", "memprofile", "trace"}

	New().Flags.VisitAll(func(f *flag.Flag) {
		for _, name := range driver {
			if f.Name == name {
				t.Errorf("Flag -%s collides with the driver", f.Name)
			}
		}
	})

	if New().Flags.Lookup("strategy") == nil {
		t.Error("Expected -strategy flag")
	}
}
