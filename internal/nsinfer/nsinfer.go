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

// Package nsinfer implements the add_namespaces pipeline step:
// synthetic namespace items for every non-leaf path prefix. Grounded
// on kati's depgraph.go node-walking style (a pure function over a set
// of paths, appending synthesized results without mutating inputs).
package nsinfer

import "github.com/cppbind/cppbind/internal/cpppath"

// Infer returns one synthetic Namespace path per non-leaf prefix of
// every path in paths, deduplicated and without the full paths
// themselves (those are already items of their own kind).
func Infer(paths []cpppath.Path) []cpppath.Path {
	seen := map[string]bool{}
	var out []cpppath.Path
	for _, p := range paths {
		items := p.Items()
		for n := 1; n < len(items); n++ {
			prefix := cpppath.New(items[:n]...)
			key := prefix.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, prefix)
		}
	}
	return out
}
