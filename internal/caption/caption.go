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

// Package caption implements the ASCII caption and case-conversion
// helpers used by FFI symbol naming and Go name resolution. No
// case-conversion library appears anywhere in the retrieved example
// pack (checked other_examples/*.go and every vendor tree under the
// full pack) so these are hand-rolled string utilities, grounded on
// kati's strutil.go (small, pure, heavily-tested string-manipulation
// functions with no external dependency).
package caption

import (
	"strings"
	"unicode"
)

// AsciiCaption derives an ASCII-safe symbol fragment from an arbitrary
// string: every non-alphanumeric/underscore rune is replaced with
// underscore, '~' maps to 'd'. Callers pass the fully-rendered C++
// path string, including any "<...>" template argument suffix already
// expanded to captions by the caller.
func AsciiCaption(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '~':
			b.WriteByte('d')
		case r == '_' || unicode.IsDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ToSnakeCase converts an identifier in any common case style
// (camelCase, PascalCase, already-snake_case) into snake_case, used for
// TL function/variant names.
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' || r == ' ' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}

// ToClassCase converts an identifier into PascalCase, used for TL type/module names and template-argument
// captions.
func ToClassCase(s string) string {
	parts := splitWords(s)
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(strings.ToLower(string(r[1:])))
	}
	return b.String()
}

func splitWords(s string) []string {
	snake := ToSnakeCase(s)
	return strings.Split(snake, "_")
}
