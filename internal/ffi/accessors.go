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
	"github.com/pkg/errors"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// LowerFieldAccessors synthesizes the FFI accessors for a public
// field of type F: a copy getter for a non-class F, or both a
// const-ref and mutable-ref getter for a class F, plus always a
// setter. Non-public fields are not accessed (the eligibility filter
// for plain functions has no field analogue, but accessors mirror it:
// only Public fields are exposed through FFI).
func LowerFieldAccessors(cat Catalogue, registry NameRegistry, field cppitem.ClassField) ([]Function, error) {
	if field.Visibility != cppitem.Public {
		return nil, nil
	}
	classPath := field.P.Parent()
	thisType := func(constThis bool) Argument {
		t := cpptype.NewPointerLike(cpptype.Pointer, constThis, cpptype.NewClass(classPath))
		return Argument{Name: "this_ptr", Type: Type{Original: t, Lowered: t, Conversion: NoChange}, Meaning: MeaningThis}
	}

	var out []Function

	mk := func(flavour AccessorFlavour, constThis bool, ret Type, extraArgs ...Argument) (Function, error) {
		path := cpppath.FromName(AssignPath(registry, FfiPrefix, field.P))
		args := append([]Argument{thisType(constThis)}, extraArgs...)
		return Function{
			Path: path,
			Arguments: args,
			Return: ret,
			Kind: KindFieldAccessor,
			Accessor: &FieldAccessorData{Field: field, Flavour: flavour},
		}, nil
	}

	if field.FieldType.Kind != cpptype.KindClass {
		lt, err := Lower(cat, field.FieldType, ReturnType)
		if err != nil {
			return nil, errors.Wrap(err, "while lowering field getter return type")
		}
		fn, err := mk(AccessorGetterCopy, true, lt)
		if err != nil {
			return nil, err
		}
		out = append(out, fn)
	} else {
		constRefType := cpptype.NewPointerLike(cpptype.Pointer, true, field.FieldType)
		fn, err := mk(AccessorGetterConstRef, true, Type{Original: field.FieldType, Lowered: constRefType, Conversion: ValueToPointer, FfiConst: true})
		if err != nil {
			return nil, err
		}
		out = append(out, fn)

		mutRefType := cpptype.NewPointerLike(cpptype.Pointer, false, field.FieldType)
		fn2, err := mk(AccessorGetterMutableRef, false, Type{Original: field.FieldType, Lowered: mutRefType, Conversion: ValueToPointer})
		if err != nil {
			return nil, err
		}
		out = append(out, fn2)
	}

	setLowered, err := Lower(cat, field.FieldType, NotReturnType)
	if err != nil {
		return nil, errors.Wrap(err, "while lowering field setter argument type")
	}
	setter, err := mk(AccessorSetter, false,
		Type{Original: cpptype.Void, Lowered: cpptype.Void, Conversion: NoChange},
		Argument{Name: "value", Type: setLowered, Meaning: MeaningArgument, Index: 0})
	if err != nil {
		return nil, err
	}
	out = append(out, setter)

	return out, nil
}
