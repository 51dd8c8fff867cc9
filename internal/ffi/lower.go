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

	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// Role discriminates how a type is used, since lowering differs for a
// function's return type vs. any other position.
type Role int

const (
	NotReturnType Role = iota
	ReturnType
)

// Catalogue is the read-only view of the database the lowering engine
// needs. Kept as a narrow interface (rather than importing package
// database directly) to avoid a dependency cycle, since database stores
// ffi.Item values.
type Catalogue interface {
	// IsMovable reports whether path was declared movable by
	// configuration, meaning it should be passed and returned by value
	// rather than only by pointer.
	IsMovable(path cpppath.Path) bool
	// HasConcreteInstantiation reports whether a concrete instantiation
	// of the templated class at path has been observed.
	HasConcreteInstantiation(path cpppath.Path) bool
}

func isQFlags(path cpppath.Path) (elem cpptype.Type, ok bool) {
	last := path.Last()
	if last.Name != "QFlags" || len(last.Template) != 1 {
		return cpptype.Type{}, false
	}
	t, ok := last.Template[0].(cpptype.Type)
	return t, ok
}

// Lower rewrites a C++ type into its FFI-flat form by applying the
// rules below in order.
func Lower(cat Catalogue, t cpptype.Type, role Role) (Type, error) {
	// Rule 1.
	if t.ContainsTemplateParameter() {
		return Type{}, errors.New("template parameters cannot be expressed in FFI")
	}

	// Rule 2: function pointers lower to themselves, provided no
	// sub-type is a function pointer, reference, or by-value class.
	if t.Kind == cpptype.KindFunctionPointer {
		if t.Variadic {
			return Type{}, errors.New("variadic function pointers are not supported")
		}
		bad := func(sub cpptype.Type) bool {
			return sub.Kind == cpptype.KindFunctionPointer ||
				(sub.Kind == cpptype.KindPointerLike && sub.PointerKind != cpptype.Pointer) ||
				sub.Kind == cpptype.KindClass
		}
		if bad(*t.Return) {
			return Type{}, errors.New("function pointer return type cannot be a function pointer, reference, or class")
		}
		for _, a := range t.Args {
			if bad(a) {
				return Type{}, errors.New("function pointer argument cannot be a function pointer, reference, or class")
			}
		}
		return Type{Original: t, Lowered: t, Conversion: NoChange}, nil
	}

	// Rule 3: Class(path).
	if t.Kind == cpptype.KindClass {
		if _, ok := isQFlags(t.Path); ok {
			return Type{Original: t, Lowered: cpptype.NewBuiltIn(cpptype.Int), Conversion: QFlagsToInt}, nil
		}
		isConst := role == NotReturnType
		lowered := cpptype.NewPointerLike(cpptype.Pointer, isConst, t)
		return Type{Original: t, Lowered: lowered, Conversion: ValueToPointer, FfiConst: isConst}, nil
	}

	// Rule 4 & 5: PointerLike.
	if t.Kind == cpptype.KindPointerLike {
		switch t.PointerKind {
		case cpptype.Pointer:
			return Type{Original: t, Lowered: t, Conversion: NoChange}, nil
		case cpptype.Reference:
			if t.Target.Kind == cpptype.KindClass {
				if elem, ok := isQFlags(t.Target.Path); ok && t.IsConst {
					_ = elem
					return Type{Original: t, Lowered: cpptype.NewBuiltIn(cpptype.Int), Conversion: QFlagsToInt}, nil
				}
			}
			lowered := cpptype.NewPointerLike(cpptype.Pointer, t.IsConst, *t.Target)
			return Type{Original: t, Lowered: lowered, Conversion: ReferenceToPointer}, nil
		case cpptype.RValueReference:
			return Type{}, errors.New("rvalue references are not supported")
		}
	}

	// Rule 7: everything else passes through unchanged.
	return Type{Original: t, Lowered: t, Conversion: NoChange}, nil
}
