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

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

func TestLowerFunctionIneligibleIsSoftFailure(t *testing.T) {
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("Foo::secret"),
		Member: &cppitem.MemberData{Visibility: cppitem.Private},
	}
	fns, reason, err := LowerFunction(fakeCatalogue{}, newSequentialRegistry(), fn)
	if err != nil {
		t.Fatalf("LowerFunction() should not return a hard error for an ineligible function, got %v", err)
	}
	if fns != nil {
		t.Errorf("ineligible function should yield no lowered functions")
	}
	if reason == "" {
		t.Errorf("ineligible function should carry a reason")
	}
}

func TestLowerFunctionDefaultArgumentOmission(t *testing.T) {
	fn := cppitem.CppFunction{
		P: cpppath.FromName("Foo::resize"),
		Arguments: []cppitem.Argument{
			{Name: "width", Type: cpptype.NewBuiltIn(cpptype.Int)},
			{Name: "height", Type: cpptype.NewBuiltIn(cpptype.Int), HasDefault: true},
		},
		Return: cpptype.Void,
	}
	fns, reason, err := LowerFunction(fakeCatalogue{}, newSequentialRegistry(), fn)
	if err != nil || reason != "" {
		t.Fatalf("LowerFunction() error = %v, reason = %q", err, reason)
	}
	if len(fns) != 2 {
		t.Fatalf("expected one full-argument variant plus one omitted-default variant, got %d", len(fns))
	}
	if len(fns[0].Arguments) != 2 {
		t.Errorf("first variant should keep both arguments, got %d", len(fns[0].Arguments))
	}
	if len(fns[1].Arguments) != 1 {
		t.Errorf("second variant should omit the defaulted trailing argument, got %d", len(fns[1].Arguments))
	}
}

func TestLowerFunctionConstructorReturnsClassByPointer(t *testing.T) {
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("Foo::Foo"),
		Member: &cppitem.MemberData{Kind: cppitem.Constructor, Visibility: cppitem.Public},
	}
	fns, reason, err := LowerFunction(fakeCatalogue{}, newSequentialRegistry(), fn)
	if err != nil || reason != "" {
		t.Fatalf("LowerFunction() error = %v, reason = %q", err, reason)
	}
	if len(fns) != 1 {
		t.Fatalf("expected exactly one lowered constructor, got %d", len(fns))
	}
	if fns[0].AllocationPlace != Heap {
		t.Errorf("a non-movable class constructor should allocate on the heap, got %v", fns[0].AllocationPlace)
	}
}

func TestLowerFunctionMovableClassUsesOutputParameter(t *testing.T) {
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("Point::Point"),
		Member: &cppitem.MemberData{Kind: cppitem.Constructor, Visibility: cppitem.Public},
	}
	cat := fakeCatalogue{movable: map[string]bool{"Point": true}}
	fns, reason, err := LowerFunction(cat, newSequentialRegistry(), fn)
	if err != nil || reason != "" {
		t.Fatalf("LowerFunction() error = %v, reason = %q", err, reason)
	}
	last := fns[0].Arguments[len(fns[0].Arguments)-1]
	if last.Meaning != MeaningReturnValue {
		t.Errorf("movable-class constructor should append an output argument")
	}
	if fns[0].AllocationPlace != Stack {
		t.Errorf("movable-class constructor should allocate on the stack, got %v", fns[0].AllocationPlace)
	}
}

func TestLowerFunctionRejectsVariadic(t *testing.T) {
	fn := cppitem.CppFunction{
		P:        cpppath.FromName("Foo::log"),
		Return:   cpptype.Void,
		Variadic: true,
	}
	fns, reason, err := LowerFunction(fakeCatalogue{}, newSequentialRegistry(), fn)
	if err != nil {
		t.Fatalf("LowerFunction() error = %v", err)
	}
	if fns != nil || reason == "" {
		t.Errorf("variadic functions should be a soft failure with no lowered functions")
	}
}
