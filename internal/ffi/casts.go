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
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// PolymorphicLookup answers whether a class (by path) is polymorphic —
// declares or inherits at least one virtual function — so cast
// synthesis can skip DynamicCast against a non-polymorphic base.
type PolymorphicLookup interface {
	IsPolymorphic(path cpppath.Path) bool
}

func castArgThis(path cpppath.Path, isConst bool) Argument {
	t := cpptype.NewPointerLike(cpptype.Pointer, isConst, cpptype.NewClass(path))
	return Argument{Name: "ptr", Type: Type{Original: t, Lowered: t, Conversion: NoChange}, Meaning: MeaningArgument, Index: 0}
}

func castReturn(path cpppath.Path) Type {
	t := cpptype.NewPointerLike(cpptype.Pointer, false, cpptype.NewClass(path))
	return Type{Original: t, Lowered: t, Conversion: NoChange}
}

// LowerCasts synthesizes the static up/down casts for one ClassBase
// edge, plus a dynamic cast when the base is polymorphic. transitive
// marks a cast recursed through an intermediate base, in which case
// the base_index recorded on the descriptor is -1 rather than the
// direct index.
func LowerCasts(reg NameRegistry, poly PolymorphicLookup, base cppitem.ClassBase, transitive bool) []Function {
	baseIdx := base.BaseIndex
	if transitive {
		baseIdx = -1
	}

	castName := func(kind string) string {
		candidate := FfiPrefix + "_" + kind + "_" + PathCaption(base.Base) + "_" + PathCaption(base.Derived)
		return reg.Reserve(candidate)
	}

	downcast := Function{
		Path: cpppath.FromName(castName("static_cast_down")),
		Arguments: []Argument{castArgThis(base.Base, true)},
		Return: castReturn(base.Derived),
		Kind: KindPlainFunction,
		Plain: &PlainFunctionData{
			Cast: &CastDescriptor{Kind: CastStatic, Unsafe: true, BaseIndex: baseIdx},
		},
	}
	upcast := Function{
		Path: cpppath.FromName(castName("static_cast_up")),
		Arguments: []Argument{castArgThis(base.Derived, true)},
		Return: castReturn(base.Base),
		Kind: KindPlainFunction,
		Plain: &PlainFunctionData{
			Cast: &CastDescriptor{Kind: CastStatic, Unsafe: false, BaseIndex: baseIdx},
		},
	}

	out := []Function{downcast, upcast}

	if poly == nil || poly.IsPolymorphic(base.Base) {
		dyn := Function{
			Path: cpppath.FromName(castName("dynamic_cast")),
			Arguments: []Argument{castArgThis(base.Base, true)},
			Return: castReturn(base.Derived),
			Kind: KindPlainFunction,
			Plain: &PlainFunctionData{
				Cast: &CastDescriptor{Kind: CastDynamic, BaseIndex: baseIdx},
			},
		}
		out = append(out, dyn)
	}
	return out
}
