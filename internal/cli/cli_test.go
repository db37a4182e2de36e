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

package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/implicitblocking/internal/cli"
	"fillmore-labs.com/implicitblocking/internal/testsource"
)

const appSource = `package app

import "reactor.dev/flux"

func Count() int {
	return flux.Just(1, 2, 3).ToStream().Count()
}
`

const appFixed = `package app

import "reactor.dev/flux"

func Count() int {
	return flux.Just(1, 2, 3).Collect(flux.ToList).Block().Stream().Count()
}
`

// module writes a module with the reactive libraries and the given package sources to a temporary directory.
func module(t *testing.T, pkgs map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	files := map[string]string{
		"go.mod":                 "module reactor.dev\n\ngo 1.24\n",
		"flux/flux.go":           testsource.FluxSource,
		"immutable/immutable.go": testsource.ImmutableSource,
	}

	for name, src := range pkgs {
		files[name] = src
	}

	for name, src := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}

	return dir
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Execute(t.Context(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		code int
		want string
	}{
		{
			name: "findings",
			src:  appSource,
			code: ExitFindings,
			want: "app.go:6:9: Flux.ToStream() blocks implicitly; " +
				"use Collect(flux.ToList).Block() to make the blocking explicit (implicitblocking)\n",
		},
		{
			name: "clean",
			src:  appFixed,
			code: ExitOK,
		},
		{
			name: "broken",
			src:  "package app\n\nfunc Count() int { return undefined }\n",
			code: ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := module(t, map[string]string{"app/app.go": tt.src})

			code, stdout, _ := execute(t, "check", "--color=never", "-C", dir, "./app")

			assert.Equal(t, tt.code, code)

			if tt.want != "" {
				assert.Contains(t, stdout, tt.want)
			} else {
				assert.Empty(t, stdout)
			}
		})
	}
}

func TestFix(t *testing.T) {
	t.Parallel()

	t.Run("diff", func(t *testing.T) {
		t.Parallel()

		dir := module(t, map[string]string{"app/app.go": appSource})

		code, stdout, _ := execute(t, "fix", "-C", dir, "--strategy=third", "./app")

		assert.Equal(t, ExitFindings, code)
		assert.Contains(t, stdout, "-\treturn flux.Just(1, 2, 3).ToStream().Count()\n")
		assert.Contains(t, stdout, "+\treturn flux.Just(1, 2, 3).Collect(flux.ToList).Block().Stream().Count()\n")
	})

	t.Run("write", func(t *testing.T) {
		t.Parallel()

		dir := module(t, map[string]string{"app/app.go": appSource})

		code, stdout, _ := execute(t, "fix", "-C", dir, "--strategy=3", "--write", "./app")

		require.Equal(t, ExitOK, code)
		assert.Empty(t, stdout)

		got, err := os.ReadFile(filepath.Join(dir, "app", "app.go"))
		require.NoError(t, err)
		assert.Equal(t, appFixed, string(got))
	})

	t.Run("unsatisfiable", func(t *testing.T) {
		t.Parallel()

		dir := module(t, map[string]string{"app/app.go": appSource})

		code, stdout, stderr := execute(t, "fix", "-C", dir, "--strategy=second", "--write", "./app")

		assert.Equal(t, ExitOK, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "Sites without a fix for the selected strategy")

		got, err := os.ReadFile(filepath.Join(dir, "app", "app.go"))
		require.NoError(t, err)
		assert.Equal(t, appSource, string(got))
	})

	t.Run("suppress", func(t *testing.T) {
		t.Parallel()

		dir := module(t, map[string]string{"app/app.go": appSource})

		code, _, _ := execute(t, "fix", "-C", dir, "--strategy=suppress", "-w", "./app")
		require.Equal(t, ExitOK, code)

		code, stdout, _ := execute(t, "check", "-C", dir, "./app")
		assert.Equal(t, ExitOK, code)
		assert.Empty(t, stdout)
	})
}

func TestConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(file, []byte("target:\n  check: blocking\njobs: 3\n"), 0o644))

	code, stdout, stderr := execute(t, "--config", file, "config")

	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "check: blocking\n")
	assert.Contains(t, stdout, "publisher: reactor.dev/flux.Flux\n")
	assert.Contains(t, stdout, "jobs: 3\n")
	assert.Contains(t, stdout, "strategy: second\n")
}

func TestConfigEnvironment(t *testing.T) {
	t.Setenv("IMPLICITBLOCKING_STRATEGY", "third")
	t.Setenv("IMPLICITBLOCKING_TARGET_PUBLISHER", "example.com/rx.Observable")

	code, stdout, stderr := execute(t, "-C", t.TempDir(), "config")

	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "strategy: third\n")
	assert.Contains(t, stdout, "publisher: example.com/rx.Observable\n")
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"color", []string{"check", "--color=sometimes", "-C", dir}, "color mode"},
		{"strategy", []string{"fix", "--strategy=fourth", "-C", dir}, "unknown strategy"},
		{"config", []string{"--config", filepath.Join(dir, "missing.yaml"), "config"}, "can't read configuration"},
		{"command", []string{"lint"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, _, stderr := execute(t, tt.args...)

			assert.Equal(t, ExitError, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}
