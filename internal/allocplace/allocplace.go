// Copyright 2024 The cppbind Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package allocplace resolves the per-class movable/heap-only hint
// consumed by ffi.LowerFunction. Movability is configured; this
// package only validates and normalises that configuration against the
// database's known classes.
package allocplace

import "github.com/cppbind/cppbind/internal/cpppath"

// Resolve cross-checks the configured movable-class path strings
// against the set of known class paths, returning the subset that
// actually resolved to a declared class.
func Resolve(configured []string, knownClasses []cpppath.Path) (movable []cpppath.Path, unresolved []string) {
	known := make(map[string]bool, len(knownClasses))
	for _, p := range knownClasses {
		known[p.String()] = true
	}
	for _, c := range configured {
		if known[c] {
			movable = append(movable, cpppath.FromName(c))
		} else {
			unresolved = append(unresolved, c)
		}
	}
	return movable, unresolved
}
