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

package synth

// Rank is the stable preference order of a [Candidate]; lower is more conservative.
//
// Ranks are identifiers, not positions: when a candidate is unavailable,
// the remaining ones keep their rank.
type Rank uint8

//go:generate go tool stringer -type Rank -linecomment
const (
	// RankSuppress leaves the expression unmodified and suppresses the check for the enclosing declaration.
	RankSuppress Rank = iota // suppress

	// RankPreferred accumulates into the helper library's immutable collection.
	RankPreferred // preferred

	// RankBaseline accumulates with the always available accumulator.
	RankBaseline // baseline
)
