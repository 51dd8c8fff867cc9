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

package cpptype

import (
	"testing"

	"github.com/cppbind/cppbind/internal/cpppath"
)

func TestTypeString(t *testing.T) {
	intPtr := NewPointerLike(Pointer, true, NewBuiltIn(Int))
	for _, tc := range []struct {
		name string
		in   Type
		want string
	}{
		{name: "void", in: Void, want: "void"},
		{name: "builtin", in: NewBuiltIn(Double), want: "double"},
		{name: "class", in: NewClass(cpppath.FromName("Foo::Bar")), want: "Foo::Bar"},
		{name: "const pointer", in: intPtr, want: "const int*"},
		{
			name: "function pointer",
			in:   NewFunctionPointer(Void, []Type{NewBuiltIn(Int)}, false),
			want: "void (*)(int)",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Errorf("String()=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestTypeEqual(t *testing.T) {
	a := NewPointerLike(Pointer, false, NewClass(cpppath.FromName("Foo")))
	b := NewPointerLike(Pointer, false, NewClass(cpppath.FromName("Foo")))
	c := NewPointerLike(Pointer, true, NewClass(cpppath.FromName("Foo")))
	if !a.Equal(b) {
		t.Errorf("expected equal types to compare equal")
	}
	if a.Equal(c) {
		t.Errorf("expected const-mismatched types to compare unequal")
	}
}

func TestContainsTemplateParameter(t *testing.T) {
	param := NewTemplateParameter(0, 0, "T")
	plain := NewBuiltIn(Int)

	if !param.ContainsTemplateParameter() {
		t.Errorf("bare template parameter should report true")
	}
	if plain.ContainsTemplateParameter() {
		t.Errorf("plain builtin should report false")
	}

	ptrToParam := NewPointerLike(Pointer, false, param)
	if !ptrToParam.ContainsTemplateParameter() {
		t.Errorf("pointer to template parameter should report true")
	}

	classArg := cpppath.Item{Name: "Vector", Template: []cpppath.TemplateArg{param}}
	classType := NewClass(cpppath.New(classArg))
	if !classType.ContainsTemplateParameter() {
		t.Errorf("class with a template-parameter argument should report true")
	}
}

func TestInstantiate(t *testing.T) {
	param := NewTemplateParameter(0, 0, "T")
	classArg := cpppath.Item{Name: "Vector", Template: []cpppath.TemplateArg{param}}
	generic := NewClass(cpppath.New(classArg))

	got, changed := generic.Instantiate(0, []Type{NewBuiltIn(Int)})
	if !changed {
		t.Fatalf("Instantiate should report a substitution occurred")
	}
	if !got.IsConcreteInstantiation() {
		t.Errorf("instantiated type should report IsConcreteInstantiation")
	}
	if got.ContainsTemplateParameter() {
		t.Errorf("fully instantiated type should not contain a template parameter")
	}
	if want := "Vector<int>"; got.String() != want {
		t.Errorf("Instantiate() rendered %q, want %q", got.String(), want)
	}

	// Instantiating at a different nesting level is a no-op.
	_, changedOther := generic.Instantiate(1, []Type{NewBuiltIn(Int)})
	if changedOther {
		t.Errorf("Instantiate at a non-matching nesting level should not change anything")
	}
}

func TestIsConcreteInstantiationRequiresTemplateArgs(t *testing.T) {
	plainClass := NewClass(cpppath.FromName("Foo"))
	if plainClass.IsConcreteInstantiation() {
		t.Errorf("a class with no template arguments is not an instantiation")
	}
}
