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

package baseline

import "reactor.dev/flux"

func count() int {
	return flux.Just(1, 2, 3).ToStream().Count() // want `Flux\.ToStream\(\) blocks implicitly; use Collect\(flux\.ToList\)\.Block\(\) to make the blocking explicit`
}

func values() flux.Iterable[int] {
	return flux.Range(1, 3).ToIterable() // want `Flux\.ToIterable\(\) blocks implicitly`
}

func both(f *flux.Flux[string]) (flux.Iterable[string], int) {
	return f.ToIterable(), f.ToStream().Count() // want `Flux\.ToIterable\(\) blocks implicitly` `Flux\.ToStream\(\) blocks implicitly`
}
