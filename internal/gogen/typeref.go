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

package gogen

import (
	"fmt"

	"github.com/cppbind/cppbind/internal/cpptype"
	"github.com/cppbind/cppbind/internal/ffi"
)

// classNamer resolves a C++ class or enum path to its already-assigned
// Go type name; the module-tree build order guarantees every class a
// wrapper method depends on has already been named by the time methods
// are generated.
type classNamer func(path string) (goName string, isEnum bool, ok bool)

// goTypeFor renders the Go-facing type a wrapped argument or return
// value presents to callers, reversing the FFI conversion tag applied
// during lowering: the TL side always undoes whatever the FFI side did
// to cross the boundary.
func goTypeFor(t ffi.Type, namer classNamer) string {
	switch t.Conversion {
	case ffi.ValueToPointer:
		return pointerElemName(t.Original, namer)
	case ffi.ReferenceToPointer:
		return "*" + pointerElemName(t.Original, namer)
	case ffi.QFlagsToInt:
		name, _, ok := namer(t.Original.Path.String())
		if !ok {
			return "int32"
		}
		return "Flags[" + name + "]"
	default:
		return goBuiltinType(t.Lowered)
	}
}

// pointerElemName resolves the pointed-to class/enum's Go name. The
// go_name_resolver step excludes any entry referencing a class that
// isn't in the database yet, so the fallback below is a last-resort
// guard against a dangling reference slipping past that gate rather
// than the normal path.
func pointerElemName(original cpptype.Type, namer classNamer) string {
	base := original
	for base.Kind == cpptype.KindPointerLike {
		base = *base.Target
	}
	if name, _, ok := namer(base.Path.String()); ok {
		return name
	}
	return "struct{}"
}

// goBuiltinType renders a lowered built-in or numeric type as its Go
// equivalent. Pointer-sized integers and enums both collapse to a
// fixed-width Go integer at the ABI boundary.
func goBuiltinType(t cpptype.Type) string {
	switch t.Kind {
	case cpptype.KindVoid:
		return ""
	case cpptype.KindBuiltInNumeric:
		return goNumericName(t.BuiltIn)
	case cpptype.KindSpecificNumeric, cpptype.KindPointerSizedInteger, cpptype.KindEnum:
		return "int64"
	case cpptype.KindPointerLike:
		return "unsafe.Pointer"
	case cpptype.KindFunctionPointer:
		return "unsafe.Pointer"
	default:
		return "unsafe.Pointer"
	}
}

func goNumericName(b cpptype.BuiltIn) string {
	switch b {
	case cpptype.Bool:
		return "bool"
	case cpptype.SChar, cpptype.Short:
		return "int16"
	case cpptype.UChar, cpptype.UShort:
		return "uint16"
	case cpptype.WChar, cpptype.Char16:
		return "uint16"
	case cpptype.Char32:
		return "uint32"
	case cpptype.Int:
		return "int32"
	case cpptype.UInt:
		return "uint32"
	case cpptype.Long, cpptype.LongLong:
		return "int64"
	case cpptype.ULong, cpptype.ULongLong:
		return "uint64"
	case cpptype.Int128, cpptype.UInt128:
		return "[16]byte"
	case cpptype.Float:
		return "float32"
	case cpptype.Double, cpptype.LongDouble:
		return "float64"
	default:
		return "int32"
	}
}

func ffiArgIdent(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("arg%d", index)
	}
	return name
}
