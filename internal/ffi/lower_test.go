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

type fakeCatalogue struct {
	movable       map[string]bool
	instantiated  map[string]bool
}

func (c fakeCatalogue) IsMovable(p cpppath.Path) bool {
	return c.movable[p.String()]
}

func (c fakeCatalogue) HasConcreteInstantiation(p cpppath.Path) bool {
	return c.instantiated[p.String()]
}

func TestLowerBuiltinPassesThrough(t *testing.T) {
	cat := fakeCatalogue{}
	got, err := Lower(cat, cpptype.NewBuiltIn(cpptype.Int), NotReturnType)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if got.Conversion != NoChange {
		t.Errorf("Conversion = %v, want NoChange", got.Conversion)
	}
}

func TestLowerClassByValue(t *testing.T) {
	cat := fakeCatalogue{}
	classType := cpptype.NewClass(cpppath.FromName("Foo"))

	got, err := Lower(cat, classType, NotReturnType)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if got.Conversion != ValueToPointer {
		t.Errorf("Conversion = %v, want ValueToPointer", got.Conversion)
	}
	if !got.FfiConst {
		t.Errorf("non-return-position class argument should lower to a const pointer")
	}

	retGot, err := Lower(cat, classType, ReturnType)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if retGot.FfiConst {
		t.Errorf("return-position class should lower to a non-const pointer")
	}
}

func TestLowerQFlags(t *testing.T) {
	cat := fakeCatalogue{}
	item := cpppath.Item{Name: "QFlags", Template: []cpppath.TemplateArg{cpptype.NewEnum(cpppath.FromName("Alignment"))}}
	flagsType := cpptype.NewClass(cpppath.New(item))

	got, err := Lower(cat, flagsType, NotReturnType)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if got.Conversion != QFlagsToInt {
		t.Errorf("Conversion = %v, want QFlagsToInt", got.Conversion)
	}
	if got.Lowered.Kind != cpptype.KindBuiltInNumeric {
		t.Errorf("QFlags should lower to a builtin numeric")
	}
}

func TestLowerRejectsTemplateParameter(t *testing.T) {
	cat := fakeCatalogue{}
	_, err := Lower(cat, cpptype.NewTemplateParameter(0, 0, "T"), NotReturnType)
	if err == nil {
		t.Errorf("Lower() of a bare template parameter should error")
	}
}

func TestLowerRejectsRValueReference(t *testing.T) {
	cat := fakeCatalogue{}
	rref := cpptype.NewPointerLike(cpptype.RValueReference, false, cpptype.NewBuiltIn(cpptype.Int))
	_, err := Lower(cat, rref, NotReturnType)
	if err == nil {
		t.Errorf("Lower() of an rvalue reference should error")
	}
}

func TestLowerReference(t *testing.T) {
	cat := fakeCatalogue{}
	ref := cpptype.NewPointerLike(cpptype.Reference, true, cpptype.NewClass(cpppath.FromName("Foo")))
	got, err := Lower(cat, ref, NotReturnType)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if got.Conversion != ReferenceToPointer {
		t.Errorf("Conversion = %v, want ReferenceToPointer", got.Conversion)
	}
}

func TestEligibleRejectsPrivateMember(t *testing.T) {
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("Foo::bar"),
		Member: &cppitem.MemberData{Visibility: cppitem.Private},
	}
	if ok, _ := Eligible(fakeCatalogue{}, fn); ok {
		t.Errorf("a private member function should not be eligible")
	}
}

func TestEligibleRejectsSignal(t *testing.T) {
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("Foo::changed"),
		Member: &cppitem.MemberData{Visibility: cppitem.Public, Signal: true},
	}
	if ok, _ := Eligible(fakeCatalogue{}, fn); ok {
		t.Errorf("a signal should not be eligible as a plain FFI function")
	}
}

func TestEligibleRejectsMissingInstantiation(t *testing.T) {
	tmplItem := cpppath.Item{Name: "Vector", Template: []cpppath.TemplateArg{cpptype.NewBuiltIn(cpptype.Int)}}
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("Foo::make"),
		Return: cpptype.NewClass(cpppath.New(tmplItem)),
	}
	if ok, _ := Eligible(fakeCatalogue{}, fn); ok {
		t.Errorf("a return type referring to an uninstantiated template should not be eligible")
	}

	cat := fakeCatalogue{instantiated: map[string]bool{"Vector<int>": true}}
	if ok, reason := Eligible(cat, fn); !ok {
		t.Errorf("expected eligible once the instantiation is known, got reason %q", reason)
	}
}

func TestEligibleAcceptsPlainFunction(t *testing.T) {
	fn := cppitem.CppFunction{
		P:         cpppath.FromName("Foo::bar"),
		Arguments: []cppitem.Argument{{Name: "x", Type: cpptype.NewBuiltIn(cpptype.Int)}},
		Return:    cpptype.Void,
	}
	if ok, reason := Eligible(fakeCatalogue{}, fn); !ok {
		t.Errorf("plain free function should be eligible, got reason %q", reason)
	}
}
