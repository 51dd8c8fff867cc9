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

// FfiPrefix is the fixed prefix every synthesised FFI symbol carries.
const FfiPrefix = "ffi"

// LowerFunction lowers fn into FFI functions, including default-value
// omission: it returns one Function for the full argument list, plus
// one per eligible omitted-trailing-defaults prefix. An ineligible
// function yields (nil, reason, nil) — a soft failure, not a Go error.
func LowerFunction(cat Catalogue, registry NameRegistry, fn cppitem.CppFunction) ([]Function, string, error) {
	if ok, reason := Eligible(cat, fn); !ok {
		return nil, reason, nil
	}
	if fn.Variadic {
		return nil, "variadic arguments are not supported", nil
	}

	full, err := lowerOne(cat, registry, fn, len(fn.Arguments))
	if err != nil {
		return nil, err.Error(), nil
	}
	out := []Function{full}

	// Default-value omission: one FFI function per prefix obtained by
	// popping trailing defaulted arguments, down to but not including
	// the first non-defaulted trailing argument. Skipped for
	// pure-virtual functions.
	if fn.IsMember() && fn.Member.PureVirtual {
		return out, "", nil
	}
	n := len(fn.Arguments)
	for n > 0 && fn.Arguments[n-1].HasDefault {
		n--
		variant, err := lowerOne(cat, registry, fn, n)
		if err != nil {
			break
		}
		out = append(out, variant)
	}
	return out, "", nil
}

func lowerOne(cat Catalogue, registry NameRegistry, fn cppitem.CppFunction, argCount int) (Function, error) {
	ffiPath := cpppath.FromName(AssignPath(registry, FfiPrefix, fn.P))

	var args []Argument

	isConstructor := fn.IsMember() && fn.Member.Kind == cppitem.Constructor
	isDestructor := fn.IsMember() && fn.Member.Kind == cppitem.Destructor
	isNonStaticMember := fn.IsMember() && !fn.Member.Static && !isConstructor

	if isNonStaticMember {
		thisConst := fn.Member.Const
		thisType := cpptype.NewPointerLike(cpptype.Pointer, thisConst, cpptype.NewClass(fn.ClassPath()))
		args = append(args, Argument{
			Name: "this_ptr",
			Type: Type{Original: thisType, Lowered: thisType, Conversion: NoChange},
			Meaning: MeaningThis,
		})
	}

	for i := 0; i < argCount; i++ {
		a := fn.Arguments[i]
		lt, err := Lower(cat, a.Type, NotReturnType)
		if err != nil {
			return Function{}, errors.Wrapf(err, "while lowering argument %q", a.Name)
		}
		args = append(args, Argument{Name: a.Name, Type: lt, Meaning: MeaningArgument, Index: i})
	}

	var retType cpptype.Type
	switch {
	case isConstructor:
		retType = cpptype.NewClass(fn.ClassPath())
	case isDestructor:
		retType = cpptype.Void
	default:
		retType = fn.Return
	}

	var ffiReturn Type
	allocationPlace := NotApplicable
	if retType.Kind == cpptype.KindClass {
		if cat.IsMovable(retType.Path) {
			outputType := cpptype.NewPointerLike(cpptype.Pointer, false, retType)
			args = append(args, Argument{
				Name: "output",
				Type: Type{Original: retType, Lowered: outputType, Conversion: ValueToPointer},
				Meaning: MeaningReturnValue,
			})
			ffiReturn = Type{Original: cpptype.Void, Lowered: cpptype.Void, Conversion: NoChange}
			allocationPlace = Stack
		} else {
			lt, err := Lower(cat, retType, ReturnType)
			if err != nil {
				return Function{}, errors.Wrap(err, "while lowering return type")
			}
			ffiReturn = lt
			allocationPlace = Heap
		}
	} else {
		lt, err := Lower(cat, retType, ReturnType)
		if err != nil {
			return Function{}, errors.Wrap(err, "while lowering return type")
		}
		ffiReturn = lt
	}

	omitted := len(fn.Arguments) - argCount
	return Function{
		Path: ffiPath,
		Arguments: args,
		Return: ffiReturn,
		AllocationPlace: allocationPlace,
		Kind: KindPlainFunction,
		Plain: &PlainFunctionData{
			Origin: fn,
			OmittedArgumentCount: omitted,
		},
	}, nil
}
