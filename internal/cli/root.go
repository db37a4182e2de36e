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

package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	stdout, stderr io.Writer

	v        *viper.Viper
	cfgFile  string
	color    string
	verbose  bool
	dir      string
	log      *slog.Logger
	settings Settings
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, v: newViper()}

	cmd := &cobra.Command{
		Use:   "implicitblocking",
		Short: "Make blocking publisher conversions explicit",
		Long: `implicitblocking finds calls that silently block on a reactive publisher,
like flux.ToIterable() and flux.ToStream(), and rewrites them to collect the
publisher into an unmodifiable collection and block for it explicitly.

Configuration is read from .implicitblocking.yaml in the working directory or
the home directory, and from IMPLICITBLOCKING_* environment variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .implicitblocking.yaml)")
	flags.StringVar(&a.color, "color", "auto", `Control colored output: "auto", "always", or "never".`)
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	flags.StringVarP(&a.dir, "dir", "C", "", "Run as if started in `directory`")
	flags.Bool("generated", false, "Check generated files")
	flags.Bool("tests", false, "Include test files")
	flags.IntP("jobs", "j", 0, "Number of packages processed in parallel (default GOMAXPROCS)")

	for _, name := range [...]string{"generated", "tests", "jobs"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(
		newCheckCommand(a),
		newFixCommand(a),
		newConfigCommand(a),
	)

	return cmd
}

// setup configures logging and reads the effective settings.
func (a *app) setup(*cobra.Command, []string) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}

	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	if err := readConfig(a.v, a.cfgFile, a.dir, a.log); err != nil {
		return err
	}

	s, err := settings(a.v)
	if err != nil {
		return err
	}

	a.settings = s
	a.log.Debug("Settings", slog.Any("settings", s))

	return nil
}
