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

package apply

import (
	"fmt"
	"strconv"
	"strings"

	"fillmore-labs.com/implicitblocking/internal/synth"
)

// Strategy selects one candidate rank for all sites of a run.
type Strategy int

// Suppress only attaches suppression markers, one per enclosing declaration.
const Suppress Strategy = -1

const (
	// First selects the first candidate, which is the suppression marker.
	First Strategy = iota

	// Second selects the preferred helper library fix.
	Second

	// Third selects the baseline fix.
	Third
)

const maxStrategy = 1 << 8

var ordinals = [...]string{"first", "second", "third"}

// Rank returns the candidate rank selected by the strategy.
func (s Strategy) Rank() synth.Rank {
	if s == Suppress {
		return synth.RankSuppress
	}

	return synth.Rank(s)
}

// String returns the textual strategy name.
func (s Strategy) String() string {
	text, err := s.MarshalText()
	if err != nil {
		return "Strategy(" + strconv.Itoa(int(s)) + ")"
	}

	return string(text)
}

// MarshalText implements [encoding.TextMarshaler].
func (s Strategy) MarshalText() ([]byte, error) {
	switch {
	case s == Suppress:
		return []byte("suppress"), nil

	case s >= First && int(s) < len(ordinals):
		return []byte(ordinals[s]), nil

	case s >= First && s < maxStrategy:
		return strconv.AppendInt(nil, int64(s)+1, 10), nil

	default:
		return nil, fmt.Errorf("unknown strategy %d", s)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
//
// Accepted are "suppress", the ordinals "first", "second", "third" and 1-based numbers.
func (s *Strategy) UnmarshalText(text []byte) error {
	str := strings.ToLower(strings.TrimSpace(string(text)))

	if str == "suppress" {
		*s = Suppress

		return nil
	}

	for i, o := range ordinals {
		if str == o {
			*s = Strategy(i)

			return nil
		}
	}

	n, err := strconv.ParseUint(str, 10, 16)
	if err != nil || n == 0 || n > maxStrategy {
		return fmt.Errorf("unknown strategy %q", string(text))
	}

	*s = Strategy(n - 1)

	return nil
}
