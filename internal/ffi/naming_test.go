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
	"testing"

	"github.com/cppbind/cppbind/internal/cpppath"
)

func TestPathCaption(t *testing.T) {
	if got, want := PathCaption(cpppath.FromName("Foo::bar")), "Foo_bar"; got != want {
		t.Errorf("PathCaption()=%q, want %q", got, want)
	}
}

func TestAssignPathDeduplicates(t *testing.T) {
	reg := newSequentialRegistry()
	first := AssignPath(reg, FfiPrefix, cpppath.FromName("Foo::bar"))
	second := AssignPath(reg, FfiPrefix, cpppath.FromName("Foo::bar"))
	if first == second {
		t.Errorf("assigning the same path twice should yield distinct FFI names, got %q twice", first)
	}
	if first != "ffi_Foo_bar" {
		t.Errorf("AssignPath()=%q, want %q", first, "ffi_Foo_bar")
	}
}
