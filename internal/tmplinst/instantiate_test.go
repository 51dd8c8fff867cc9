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

package tmplinst

import (
	"testing"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

func templateParam(level, index int) cpptype.Type {
	return cpptype.Type{Kind: cpptype.KindTemplateParameter, NestedLevel: level, Index: index}
}

func TestInstantiateFunctionSubstitutesArgumentType(t *testing.T) {
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("equals"),
		Return: cpptype.NewBuiltIn(cpptype.Bool),
		Arguments: []cppitem.Argument{
			{Name: "other", Type: vectorOf(templateParam(0, 0))},
		},
	}
	instantiation := vectorOf(cpptype.NewBuiltIn(cpptype.Int))

	got, ok := InstantiateFunction(fn, instantiation)
	if !ok {
		t.Fatalf("expected successful instantiation")
	}
	want := vectorOf(cpptype.NewBuiltIn(cpptype.Int))
	if got.Arguments[0].Type.String() != want.String() {
		t.Errorf("argument type=%v, want %v", got.Arguments[0].Type, want)
	}
}

func TestInstantiateFunctionFailsWhenTemplateNotReferenced(t *testing.T) {
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("log"),
		Return: cpptype.Void,
	}
	_, ok := InstantiateFunction(fn, vectorOf(cpptype.NewBuiltIn(cpptype.Int)))
	if ok {
		t.Errorf("a function that never mentions the template should not instantiate")
	}
}

func TestInstantiateFunctionRewritesConversionOperator(t *testing.T) {
	fn := cppitem.CppFunction{
		P:      cpppath.FromName("operator T0"),
		Member: &cppitem.MemberData{},
		Operator: &cppitem.Operator{
			Kind:      cppitem.OpConversion,
			ConvertTo: templateParam(0, 0),
		},
		Return: vectorOf(templateParam(0, 0)),
	}
	got, ok := InstantiateFunction(fn, vectorOf(cpptype.NewBuiltIn(cpptype.Int)))
	if !ok {
		t.Fatalf("expected successful instantiation")
	}
	if got.Operator.ConvertTo.String() != "int" {
		t.Errorf("ConvertTo=%v, want int", got.Operator.ConvertTo)
	}
	if got.P.Last().Name != "operator int" {
		t.Errorf("path last item=%q, want %q", got.P.Last().Name, "operator int")
	}
}
