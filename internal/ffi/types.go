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

// Package ffi implements the FFI lowering engine: type and
// function lowering, default-argument omission, field accessors, cast
// synthesis, and Qt signal/slot wrapper synthesis. Grounded on kati's
// dep.go / eval.go style: small value types plus a builder that walks
// the database and appends synthesized results.
package ffi

import (
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// ConversionTag names how a value crosses the FFI boundary.
type ConversionTag int

const (
	NoChange ConversionTag = iota
	ValueToPointer
	ReferenceToPointer
	QFlagsToInt
)

// Type bundles the original C++ type, its lowered ABI type, and the
// conversion tag.
type Type struct {
	Original cpptype.Type
	Lowered cpptype.Type
	Conversion ConversionTag
	// FfiConst is meaningful only when Conversion == ValueToPointer; it
	// records whether the synthesized pointer parameter is const.
	FfiConst bool
}

// ArgumentMeaning tags each FFI argument.
type ArgumentMeaning int

const (
	MeaningThis ArgumentMeaning = iota
	MeaningArgument
	MeaningReturnValue
)

// Argument is one FFI function parameter.
type Argument struct {
	Name string
	Type Type
	Meaning ArgumentMeaning
	// Index is meaningful only when Meaning == MeaningArgument: the
	// original C++ argument's position.
	Index int
}

// AllocationPlace records where a lowered function's by-value class
// return value is allocated.
type AllocationPlace int

const (
	NotApplicable AllocationPlace = iota
	Stack
	Heap
)

// FunctionKind discriminates CppFfiFunction.Kind.
type FunctionKind int

const (
	KindPlainFunction FunctionKind = iota
	KindFieldAccessor
)

// AccessorFlavour distinguishes field-accessor shapes.
type AccessorFlavour int

const (
	AccessorGetterCopy AccessorFlavour = iota
	AccessorGetterConstRef
	AccessorGetterMutableRef
	AccessorSetter
)

// CastKind distinguishes the cast shapes this package synthesises.
type CastKind int

const (
	CastStatic CastKind = iota
	CastDynamic
)

// CastDescriptor records unsafe/base_index for a Static cast, or marks a
// Dynamic cast.
type CastDescriptor struct {
	Kind CastKind
	Unsafe bool
	BaseIndex int // only meaningful for a direct base; -1 for transitive casts
}

// PlainFunctionData is the payload of FunctionKind == KindPlainFunction.
type PlainFunctionData struct {
	Origin cppitem.CppFunction
	OmittedArgumentCount int // 0 unless this is a default-value-omission variant
	Cast *CastDescriptor
}

// FieldAccessorData is the payload of FunctionKind == KindFieldAccessor.
type FieldAccessorData struct {
	Field cppitem.ClassField
	Flavour AccessorFlavour
}

// Function is one lowered FFI function: a plain function, a default-
// argument variant, a synthesized cast, or a field accessor.
type Function struct {
	Path cpppath.Path
	Arguments []Argument
	Return Type
	AllocationPlace AllocationPlace
	Kind FunctionKind
	Plain *PlainFunctionData // set iff Kind == KindPlainFunction
	Accessor *FieldAccessorData // set iff Kind == KindFieldAccessor
}

// SlotWrapper is a synthesized QObject-derived class that forwards a
// Qt signal connection through a plain C function pointer.
type SlotWrapper struct {
	ClassPath cpppath.Path
	SignalArgTypes []cpptype.Type
	FfiArgTypes []Type
	FunctionPointerType cpptype.Type
}

// Item is the two-variant FFI item union.
type Item struct {
	Function *Function
	Slot *SlotWrapper
}
