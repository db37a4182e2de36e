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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"fillmore-labs.com/implicitblocking/internal/apply"
	"fillmore-labs.com/implicitblocking/internal/config"
	"fillmore-labs.com/implicitblocking/internal/run"
)

// Settings is the effective configuration of a command line run.
type Settings struct {
	// Target describes the checked publisher type and the rewrite vocabulary.
	Target config.Target `mapstructure:"target" yaml:"target"`

	// Generated enables diagnostics in generated files.
	Generated bool `mapstructure:"generated" yaml:"generated"`

	// Tests includes test files of the loaded packages.
	Tests bool `mapstructure:"tests" yaml:"tests"`

	// Jobs limits the number of packages processed in parallel.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// Strategy selects the fix applied by the fix command.
	Strategy string `mapstructure:"strategy" yaml:"strategy"`
}

const (
	configName = ".implicitblocking"
	envPrefix  = "IMPLICITBLOCKING"
)

// newViper returns a configuration registry with defaults for every setting,
// so that each one can be overridden from the environment.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	t := config.DefaultTarget()
	for key, value := range map[string]any{
		"target.check":            t.Check,
		"target.publisher":        t.Publisher,
		"target.to-iterable":      t.ToIterable,
		"target.to-stream":        t.ToStream,
		"target.collect":          t.Collect,
		"target.block":            t.Block,
		"target.stream":           t.Stream,
		"target.preferred.path":   t.Preferred.Path,
		"target.preferred.name":   t.Preferred.Name,
		"target.preferred.call":   t.Preferred.Call,
		"target.preferred.helper": t.Preferred.Helper,
		"target.baseline.path":    t.Baseline.Path,
		"target.baseline.name":    t.Baseline.Name,
		"target.baseline.call":    t.Baseline.Call,
		"target.baseline.helper":  t.Baseline.Helper,
		"generated":               false,
		"tests":                   false,
		"jobs":                    runtime.GOMAXPROCS(0),
		"strategy":                apply.Second.String(),
	} {
		v.SetDefault(key, value)
	}

	return v
}

// readConfig reads the configuration file, when present.
//
// An explicitly named file must exist; otherwise .implicitblocking.{yaml,toml,json}
// is searched in dir and the home directory.
func readConfig(v *viper.Viper, file, dir string, log *slog.Logger) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)

		if dir == "" {
			dir = "."
		}

		v.AddConfigPath(dir)

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("can't read configuration: %w", err)
	}

	log.Debug("Using config file", slog.String("file", v.ConfigFileUsed()))

	return nil
}

// settings returns the effective, validated [Settings].
func settings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("can't decode configuration: %w", err)
	}

	if err := s.Target.Validate(); err != nil {
		return Settings{}, err
	}

	if s.Jobs <= 0 {
		s.Jobs = runtime.GOMAXPROCS(0)
	}

	if _, err := s.strategy(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

func (s Settings) strategy() (apply.Strategy, error) {
	var strategy apply.Strategy
	if err := strategy.UnmarshalText([]byte(s.Strategy)); err != nil {
		return 0, err
	}

	return strategy, nil
}

// options converts [Settings] to analyzer options.
func (s Settings) options() *run.Options {
	o := run.DefaultOptions()

	o.Target = s.Target
	o.Behavior.Set(config.IncludeGenerated, s.Generated)

	return o
}

// LogValue implements [slog.LogValuer].
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("check", s.Target.Check),
		slog.String("publisher", s.Target.Publisher),
		slog.Bool("generated", s.Generated),
		slog.Bool("tests", s.Tests),
		slog.Int("jobs", s.Jobs),
		slog.String("strategy", s.Strategy),
	)
}
