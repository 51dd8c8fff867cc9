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
	"strconv"
	"strings"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// ReceiverID renders the exact textual encoding Qt's SIGNAL()/SLOT()
// macros produce, so a connection set up through this wrapper matches
// one set up directly against the real Qt meta-object system.
func ReceiverID(fn cppitem.CppFunction) string {
	prefix := "2"
	if fn.IsMember() && fn.Member.Slot {
		prefix = "1"
	}
	return prefix + fn.P.Last().Name + "(" + joinArgTypes(fn.Arguments) + ")"
}

func joinArgTypes(args []cppitem.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type.String()
	}
	return strings.Join(parts, ",")
}

// SlotWrapperClassName mints a name for the synthesised slot-wrapper
// class. Naming by an incrementing counter in parse order makes the
// name depend on discovery order; instead this derives a content hash
// of the argument type list so the name stays stable across re-runs
// regardless of discovery order.
func SlotWrapperClassName(argTypes []cpptype.Type) string {
	h := fnvHash(argTypes)
	return "SlotWrapper_" + h
}

func fnvHash(argTypes []cpptype.Type) string {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	var hash uint64 = offset64
	for _, t := range argTypes {
		for _, b := range []byte(t.String()) {
			hash ^= uint64(b)
			hash *= prime64
		}
		hash ^= ','
		hash *= prime64
	}
	return hexUint64(hash)
}

func hexUint64(v uint64) string {
	const digits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	return string(buf)
}

// SlotWrapperSpec describes the synthesised slot-wrapper class before
// its methods are individually lowered.
type SlotWrapperSpec struct {
	ClassPath cpppath.Path
	ArgTypes []cpptype.Type
	Constructor cppitem.CppFunction
	Destructor cppitem.CppFunction
	Set cppitem.CppFunction
	CustomSlot cppitem.CppFunction
	QObjectBase cppitem.ClassBase
}

// BuildSlotWrapperSpec constructs the class and its four members
// (constructor, destructor, set(callback,user_data), virtual
// custom_slot(args...) marked a slot) with a QObject base.
func BuildSlotWrapperSpec(argTypes []cpptype.Type) SlotWrapperSpec {
	className := SlotWrapperClassName(argTypes)
	classPath := cpppath.FromName(className)
	qobjectPath := cpppath.FromName("QObject")

	funcPtrType := cpptype.NewFunctionPointer(cpptype.Void, append([]cpptype.Type{
		cpptype.NewPointerLike(cpptype.Pointer, false, cpptype.Void),
	}, argTypes...), false)

	ctorPath := classPath.Join(cpppath.Item{Name: className})
	ctor := cppitem.CppFunction{
		P: ctorPath,
		Member: &cppitem.MemberData{Kind: cppitem.Constructor, Visibility: cppitem.Public},
		Return: cpptype.NewClass(classPath),
	}

	dtorPath := classPath.Join(cpppath.Item{Name: "~" + className})
	dtor := cppitem.CppFunction{
		P: dtorPath,
		Member: &cppitem.MemberData{Kind: cppitem.Destructor, Visibility: cppitem.Public, Virtual: true},
		Return: cpptype.Void,
	}

	setPath := classPath.Join(cpppath.Item{Name: "set"})
	set := cppitem.CppFunction{
		P: setPath,
		Member: &cppitem.MemberData{Kind: cppitem.Regular, Visibility: cppitem.Public},
		Return: cpptype.Void,
		Arguments: []cppitem.Argument{
			{Name: "callback", Type: funcPtrType},
			{Name: "user_data", Type: cpptype.NewPointerLike(cpptype.Pointer, false, cpptype.Void)},
		},
	}

	slotArgs := make([]cppitem.Argument, len(argTypes))
	for i, t := range argTypes {
		slotArgs[i] = cppitem.Argument{Name: argName(i), Type: t}
	}
	slotPath := classPath.Join(cpppath.Item{Name: "custom_slot"})
	slot := cppitem.CppFunction{
		P: slotPath,
		Member: &cppitem.MemberData{Kind: cppitem.Regular, Visibility: cppitem.Public, Virtual: true, Slot: true},
		Return: cpptype.Void,
		Arguments: slotArgs,
	}

	return SlotWrapperSpec{
		ClassPath: classPath,
		ArgTypes: argTypes,
		Constructor: ctor,
		Destructor: dtor,
		Set: set,
		CustomSlot: slot,
		QObjectBase: cppitem.ClassBase{Derived: classPath, Base: qobjectPath, BaseIndex: 0, Visibility: cppitem.Public},
	}
}

func argName(i int) string {
	return "arg" + strconv.Itoa(i)
}

// BuildSlotWrapperItem assembles the QtSlotWrapper FFI item: the class
// path, the C++ argument types, the arguments' lowered types, and the
// function-pointer type void(*)(void*, args...). The item does not store
// the receiver-id string; ReceiverID computes it separately.
func BuildSlotWrapperItem(cat Catalogue, spec SlotWrapperSpec) (SlotWrapper, error) {
	lowered := make([]Type, len(spec.ArgTypes))
	for i, t := range spec.ArgTypes {
		lt, err := Lower(cat, t, NotReturnType)
		if err != nil {
			return SlotWrapper{}, err
		}
		lowered[i] = lt
	}
	fnPtr := cpptype.NewFunctionPointer(cpptype.Void, append([]cpptype.Type{
		cpptype.NewPointerLike(cpptype.Pointer, false, cpptype.Void),
	}, spec.ArgTypes...), false)
	return SlotWrapper{
		ClassPath: spec.ClassPath,
		SignalArgTypes: spec.ArgTypes,
		FfiArgTypes: lowered,
		FunctionPointerType: fnPtr,
	}, nil
}
