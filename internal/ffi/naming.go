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

package ffi

import (
	"strings"

	"github.com/cppbind/cppbind/internal/caption"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// NameRegistry reserves unique FFI symbol names, backed by the
// database's monotonic counter.
type NameRegistry interface {
	// Reserve returns candidate if it is unused, otherwise
	// candidate + "_" + n for the smallest n >= 2 that is unused, and
	// marks whichever name it returns as used.
	Reserve(candidate string) string
}

// PathCaption renders path as an ascii caption: each non-alphanumeric,
// non-underscore character becomes an underscore, '~' maps to 'd', and
// template arguments join by underscore.
func PathCaption(path cpppath.Path) string {
	parts := make([]string, 0, len(path.Items()))
	for _, it := range path.Items() {
		parts = append(parts, itemCaption(it))
	}
	return caption.AsciiCaption(strings.Join(parts, "_"))
}

func itemCaption(it cpppath.Item) string {
	if len(it.Template) == 0 {
		return it.Name
	}
	args := make([]string, len(it.Template))
	for i, a := range it.Template {
		if t, ok := a.(cpptype.Type); ok {
			args[i] = caption.AsciiCaption(t.String())
		} else {
			args[i] = caption.AsciiCaption(a.String())
		}
	}
	return it.Name + "_" + strings.Join(args, "_")
}

// AssignPath builds the fresh unique path for an FFI function:
// "<ffi_prefix>_<ascii_caption>[_<n>]".
func AssignPath(registry NameRegistry, ffiPrefix string, cppPath cpppath.Path) string {
	candidate := ffiPrefix + "_" + PathCaption(cppPath)
	return registry.Reserve(candidate)
}
