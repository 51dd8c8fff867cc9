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

package nameresolve

import (
	"strings"

	"github.com/cppbind/cppbind/internal/cppitem"
)

// GroomedVariant is one post-grooming enum constant.
type GroomedVariant struct {
	Name string
	Value int64
	Doc string
}

// GroomEnumVariants applies enum-variant grooming: dedup by first-seen
// value, ensure at least two variants remain
// (synthesizing _Invalid otherwise), then strip the longest common
// word-prefix/suffix unless that would leave a variant starting with a
// digit.
func GroomEnumVariants(values []cppitem.EnumValue) []GroomedVariant {
	var kept []GroomedVariant
	seenValues := map[int64]bool{}
	for _, v := range values {
		if seenValues[v.Value] {
			continue
		}
		seenValues[v.Value] = true
		kept = append(kept, GroomedVariant{Name: v.P.Last().Name, Value: v.Value, Doc: v.Doc})
	}

	if len(kept) < 2 {
		invalidValue := int64(0)
		if seenValues[0] {
			invalidValue = 1
		}
		kept = append(kept, GroomedVariant{Name: "_Invalid", Value: invalidValue})
	}

	prefix, suffix := commonWordAffixes(kept)
	if len(prefix) != 0 || len(suffix) != 0 {
		stripped := make([]GroomedVariant, len(kept))
		ok := true
		for i, v := range kept {
			name := stripAffixWords(v.Name, prefix, suffix)
			if name == "" || isDigit(name[0]) {
				ok = false
				break
			}
			stripped[i] = GroomedVariant{Name: name, Value: v.Value, Doc: v.Doc}
		}
		if ok {
			kept = stripped
		}
	}
	return kept
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// commonWordAffixes finds the longest common leading and trailing
// sequence of "words" shared by every variant name. A new word starts
// at an uppercase letter that follows a lowercase letter, and each
// underscore is a word of its own.
func commonWordAffixes(variants []GroomedVariant) (prefix, suffix []string) {
	if len(variants) == 0 {
		return nil, nil
	}
	wordLists := make([][]string, len(variants))
	for i, v := range variants {
		wordLists[i] = splitCamelWords(v.Name)
	}
	prefix = longestCommonPrefix(wordLists)
	suffix = longestCommonSuffix(wordLists, len(prefix))
	return prefix, suffix
}

func splitCamelWords(s string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == '_' {
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
			words = append(words, "_")
			continue
		}
		if i > 0 && r >= 'A' && r <= 'Z' && (runes[i-1] >= 'a' && runes[i-1] <= 'z') {
			words = append(words, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

func longestCommonPrefix(lists [][]string) []string {
	if len(lists) == 0 {
		return nil
	}
	var out []string
	for i := 0; ; i++ {
		var candidate string
		for li, l := range lists {
			if i >= len(l) {
				return out
			}
			if li == 0 {
				candidate = l[i]
			} else if l[i] != candidate {
				return out
			}
		}
		out = append(out, candidate)
	}
}

func longestCommonSuffix(lists [][]string, reservedPrefixLen int) []string {
	rev := make([][]string, len(lists))
	for i, l := range lists {
		avail := l[reservedPrefixLen:]
		r := make([]string, len(avail))
		for j, w := range avail {
			r[len(avail)-1-j] = w
		}
		rev[i] = r
	}
	revSuffix := longestCommonPrefix(rev)
	out := make([]string, len(revSuffix))
	for i, w := range revSuffix {
		out[len(revSuffix)-1-i] = w
	}
	return out
}

func stripAffixWords(name string, prefix, suffix []string) string {
	words := splitCamelWords(name)
	if len(words) >= len(prefix)+len(suffix) {
		words = words[len(prefix): len(words)-len(suffix)]
	}
	return strings.Join(words, "")
}
