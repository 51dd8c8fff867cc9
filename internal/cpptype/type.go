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

// Package cpptype implements CppType, the tagged union of C++ types
// and the operations the rest of the pipeline needs
// over it: structural equality, template-parameter substitution, and
// rendering.
package cpptype

import (
	"fmt"
	"strings"

	"github.com/cppbind/cppbind/internal/cpppath"
)

// Kind discriminates the CppType tagged union.
type Kind int

const (
	KindVoid Kind = iota
	KindBuiltInNumeric
	KindSpecificNumeric
	KindPointerSizedInteger
	KindEnum
	KindClass
	KindTemplateParameter
	KindFunctionPointer
	KindPointerLike
)

// BuiltIn enumerates the fixed C++ built-in numeric types.
type BuiltIn int

const (
	Bool BuiltIn = iota
	SChar
	UChar
	WChar
	Char16
	Char32
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong
	Int128
	UInt128
	Float
	Double
	LongDouble
)

var builtInNames = map[BuiltIn]string{
	Bool: "bool", SChar: "signed char", UChar: "unsigned char", WChar: "wchar_t",
	Char16: "char16_t", Char32: "char32_t", Short: "short", UShort: "unsigned short",
	Int: "int", UInt: "unsigned int", Long: "long", ULong: "unsigned long",
	LongLong: "long long", ULongLong: "unsigned long long",
	Int128: "__int128", UInt128: "unsigned __int128",
	Float: "float", Double: "double", LongDouble: "long double",
}

func (b BuiltIn) String() string {
	if s, ok := builtInNames[b]; ok {
		return s
	}
	return fmt.Sprintf("builtin(%d)", int(b))
}

// PointerKind discriminates PointerLike.
type PointerKind int

const (
	Pointer PointerKind = iota
	Reference
	RValueReference
)

// Type is the tagged union. Exactly one field group is meaningful per
// Kind; callers must switch on Kind.
type Type struct {
	Kind Kind

	// KindBuiltInNumeric
	BuiltIn BuiltIn

	// KindSpecificNumeric, KindPointerSizedInteger, KindEnum, KindClass
	Path cpppath.Path

	// KindSpecificNumeric
	BitWidth int
	Floating bool

	// KindSpecificNumeric, KindPointerSizedInteger
	Signed bool

	// KindTemplateParameter
	NestedLevel int
	Index int
	ParamName string

	// KindFunctionPointer
	Return *Type
	Args []Type
	Variadic bool

	// KindPointerLike
	PointerKind PointerKind
	IsConst bool
	Target *Type
}

// Void is the singleton void type.
var Void = Type{Kind: KindVoid}

// NewBuiltIn constructs a BuiltInNumeric type.
func NewBuiltIn(b BuiltIn) Type { return Type{Kind: KindBuiltInNumeric, BuiltIn: b} }

// NewSpecificNumeric constructs a platform-fixed-width typedef type,
// e.g. int32_t.
func NewSpecificNumeric(path cpppath.Path, bitWidth int, signed, floating bool) Type {
	return Type{Kind: KindSpecificNumeric, Path: path, BitWidth: bitWidth, Signed: signed, Floating: floating}
}

// NewPointerSizedInteger constructs e.g. size_t/ptrdiff_t.
func NewPointerSizedInteger(path cpppath.Path, signed bool) Type {
	return Type{Kind: KindPointerSizedInteger, Path: path, Signed: signed}
}

// NewEnum constructs an Enum type referencing the enum's path.
func NewEnum(path cpppath.Path) Type { return Type{Kind: KindEnum, Path: path} }

// NewClass constructs a Class type; template arguments, if any, live
// inside path.Last().Template.
func NewClass(path cpppath.Path) Type { return Type{Kind: KindClass, Path: path} }

// NewTemplateParameter constructs a TemplateParameter occurrence.
func NewTemplateParameter(nestedLevel, index int, name string) Type {
	return Type{Kind: KindTemplateParameter, NestedLevel: nestedLevel, Index: index, ParamName: name}
}

// NewFunctionPointer constructs a FunctionPointer type.
func NewFunctionPointer(ret Type, args []Type, variadic bool) Type {
	return Type{Kind: KindFunctionPointer, Return: &ret, Args: append([]Type(nil), args...), Variadic: variadic}
}

// NewPointerLike constructs a Pointer/Reference/RValueReference wrapper.
// Per invariant (a), callers must not construct a PointerLike
// whose target is a same-kind PointerLike unless the source C++ actually
// declared that (this package does not enforce it; cppparser does, since
// only it knows what was actually declared).
func NewPointerLike(kind PointerKind, isConst bool, target Type) Type {
	return Type{Kind: KindPointerLike, PointerKind: kind, IsConst: isConst, Target: &target}
}

// Equal reports structural equality, recursing into pointer-like,
// function-pointer and class-path (including template argument) structure.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindVoid:
		return true
	case KindBuiltInNumeric:
		return t.BuiltIn == other.BuiltIn
	case KindSpecificNumeric:
		return t.Path.Equal(other.Path) && t.BitWidth == other.BitWidth &&
			t.Signed == other.Signed && t.Floating == other.Floating
	case KindPointerSizedInteger:
		return t.Path.Equal(other.Path) && t.Signed == other.Signed
	case KindEnum, KindClass:
		return t.Path.Equal(other.Path)
	case KindTemplateParameter:
		return t.NestedLevel == other.NestedLevel && t.Index == other.Index
	case KindFunctionPointer:
		if t.Variadic != other.Variadic || len(t.Args) != len(other.Args) {
			return false
		}
		if !t.Return.Equal(*other.Return) {
			return false
		}
		for i := range t.Args {
			if !t.Args[i].Equal(other.Args[i]) {
				return false
			}
		}
		return true
	case KindPointerLike:
		return t.PointerKind == other.PointerKind && t.IsConst == other.IsConst &&
			t.Target.Equal(*other.Target)
	default:
		panic(fmt.Sprintf("cpptype: unexhaustive Equal for kind %d", t.Kind))
	}
}

// String renders the type for diagnostics and as a cpppath.TemplateArg.
func (t Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindBuiltInNumeric:
		return t.BuiltIn.String()
	case KindSpecificNumeric, KindPointerSizedInteger, KindEnum, KindClass:
		return t.Path.String()
	case KindTemplateParameter:
		return fmt.Sprintf("%s#%d.%d", t.ParamName, t.NestedLevel, t.Index)
	case KindFunctionPointer:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		variadic := ""
		if t.Variadic {
			variadic = ",..."
		}
		return fmt.Sprintf("%s (*)(%s%s)", t.Return.String(), strings.Join(args, ", "), variadic)
	case KindPointerLike:
		suffix := map[PointerKind]string{Pointer: "*", Reference: "&", RValueReference: "&&"}[t.PointerKind]
		constStr := ""
		if t.IsConst {
			constStr = "const "
		}
		return constStr + t.Target.String() + suffix
	default:
		return "<invalid cpptype>"
	}
}

// ContainsTemplateParameter reports whether t mentions a TemplateParameter
// anywhere in its structure, used by the FFI eligibility filter and by
// the template-instantiation collector.
func (t Type) ContainsTemplateParameter() bool {
	switch t.Kind {
	case KindTemplateParameter:
		return true
	case KindFunctionPointer:
		if t.Return.ContainsTemplateParameter() {
			return true
		}
		for _, a := range t.Args {
			if a.ContainsTemplateParameter() {
				return true
			}
		}
		return false
	case KindPointerLike:
		return t.Target.ContainsTemplateParameter()
	case KindClass:
		for _, arg := range t.Path.Last().Template {
			if ty, ok := arg.(Type); ok && ty.ContainsTemplateParameter() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsConcreteInstantiation reports whether t is Class(path) with a
// non-nil template argument list none of whose arguments contain a
// template parameter.
func (t Type) IsConcreteInstantiation() bool {
	if t.Kind != KindClass {
		return false
	}
	last := t.Path.Last()
	if !last.HasTemplateArgs() {
		return false
	}
	for _, arg := range last.Template {
		ty, ok := arg.(Type)
		if !ok {
			return false
		}
		if ty.ContainsTemplateParameter() {
			return false
		}
	}
	return true
}

// Instantiate replaces every TemplateParameter occurrence at the given
// nesting level with the corresponding element of args, descending
// through PointerLike, FunctionPointer, and Class template-argument
// lists. It returns the substituted type and whether any substitution
// occurred.
func (t Type) Instantiate(level int, args []Type) (Type, bool) {
	switch t.Kind {
	case KindTemplateParameter:
		if t.NestedLevel == level {
			if t.Index < 0 || t.Index >= len(args) {
				panic("cpptype: template parameter index out of range during instantiation")
			}
			return args[t.Index], true
		}
		return t, false
	case KindFunctionPointer:
		changed := false
		ret, rc := t.Return.Instantiate(level, args)
		changed = changed || rc
		newArgs := make([]Type, len(t.Args))
		for i, a := range t.Args {
			na, c := a.Instantiate(level, args)
			newArgs[i] = na
			changed = changed || c
		}
		if !changed {
			return t, false
		}
		return NewFunctionPointer(ret, newArgs, t.Variadic), true
	case KindPointerLike:
		target, c := t.Target.Instantiate(level, args)
		if !c {
			return t, false
		}
		return NewPointerLike(t.PointerKind, t.IsConst, target), true
	case KindClass:
		last := t.Path.Last()
		if !last.HasTemplateArgs() {
			return t, false
		}
		changed := false
		newTemplate := make([]cpppath.TemplateArg, len(last.Template))
		for i, arg := range last.Template {
			ty, ok := arg.(Type)
			if !ok {
				newTemplate[i] = arg
				continue
			}
			nt, c := ty.Instantiate(level, args)
			newTemplate[i] = nt
			changed = changed || c
		}
		if !changed {
			return t, false
		}
		items := append([]cpppath.Item(nil), t.Path.Items()...)
		items[len(items)-1] = cpppath.Item{Name: last.Name, Template: newTemplate}
		return NewClass(cpppath.New(items...)), true
	default:
		return t, false
	}
}
