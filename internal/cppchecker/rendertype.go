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

package cppchecker

import (
	"fmt"

	"github.com/cppbind/cppbind/internal/cpptype"
)

// renderCType renders a lowered (ABI-flat) cpptype.Type as a C type
// spelling, for use in the synthesized check translation unit. Only
// the shapes that can appear after FFI lowering need
// handling: void, built-in numerics, pointers, and function pointers.
func renderCType(t cpptype.Type) string {
	switch t.Kind {
	case cpptype.KindVoid:
		return "void"
	case cpptype.KindBuiltInNumeric:
		return cNumericName(t.BuiltIn)
	case cpptype.KindSpecificNumeric, cpptype.KindPointerSizedInteger, cpptype.KindEnum:
		return "long" // ABI-stable fixed-width stand-in; actual width validated by the real header include
	case cpptype.KindPointerLike:
		constStr := ""
		if t.IsConst {
			constStr = "const "
		}
		return renderCType(*t.Target) + " " + constStr + "*"
	case cpptype.KindFunctionPointer:
		args := ""
		for i, a := range t.Args {
			if i > 0 {
				args += ", "
			}
			args += renderCType(a)
		}
		if args == "" {
			args = "void"
		}
		return fmt.Sprintf("%s (*)(%s)", renderCType(*t.Return), args)
	default:
		return "void*"
	}
}

func cNumericName(b cpptype.BuiltIn) string {
	switch b {
	case cpptype.Bool:
		return "_Bool"
	case cpptype.SChar:
		return "signed char"
	case cpptype.UChar:
		return "unsigned char"
	case cpptype.WChar:
		return "wchar_t"
	case cpptype.Char16:
		return "unsigned short"
	case cpptype.Char32:
		return "unsigned int"
	case cpptype.Short:
		return "short"
	case cpptype.UShort:
		return "unsigned short"
	case cpptype.Int:
		return "int"
	case cpptype.UInt:
		return "unsigned int"
	case cpptype.Long:
		return "long"
	case cpptype.ULong:
		return "unsigned long"
	case cpptype.LongLong:
		return "long long"
	case cpptype.ULongLong:
		return "unsigned long long"
	case cpptype.Int128:
		return "__int128"
	case cpptype.UInt128:
		return "unsigned __int128"
	case cpptype.Float:
		return "float"
	case cpptype.Double:
		return "double"
	case cpptype.LongDouble:
		return "long double"
	default:
		return "int"
	}
}
