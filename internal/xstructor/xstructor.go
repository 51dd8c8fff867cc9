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

// Package xstructor implements the add_explicit_destructors pipeline
// step plus an added implicit-copy-constructor pass for movable
// classes, grounded on original_source/ritual/src/
// cpp_explicit_xstructors.rs. Named "xstructor" (not
// "add_explicit_destructors") because it now synthesises both
// destructors and copy constructors.
package xstructor

import (
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// hasDestructor reports whether any function in existing already
// serves as a destructor for classPath.
func hasDestructor(existing []cppitem.CppFunction, classPath cpppath.Path) bool {
	for _, f := range existing {
		if f.IsMember() && f.Member.Kind == cppitem.Destructor && f.ClassPath().Equal(classPath) {
			return true
		}
	}
	return false
}

func hasCopyConstructor(existing []cppitem.CppFunction, classPath cpppath.Path) bool {
	for _, f := range existing {
		if !f.IsMember() || f.Member.Kind != cppitem.Constructor || !f.ClassPath().Equal(classPath) {
			continue
		}
		if len(f.Arguments) != 1 {
			continue
		}
		arg := f.Arguments[0].Type
		if arg.Kind == cpptype.KindPointerLike && arg.PointerKind == cpptype.Reference && arg.IsConst &&
			arg.Target.Kind == cpptype.KindClass && arg.Target.Path.Equal(classPath) {
			return true
		}
	}
	return false
}

// AddImplicitDestructor returns the synthesized destructor item for
// classPath, sourced ImplicitXstructor.
func AddImplicitDestructor(classPath cpppath.Path, existing []cppitem.CppFunction) (cppitem.CppFunction, bool) {
	if hasDestructor(existing, classPath) {
		return cppitem.CppFunction{}, false
	}
	dtorPath := classPath.Join(cpppath.Item{Name: "~" + classPath.Last().Name})
	return cppitem.CppFunction{
		P: dtorPath,
		Member: &cppitem.MemberData{Kind: cppitem.Destructor, Visibility: cppitem.Public},
		Return: cpptype.Void,
	}, true
}

// AddImplicitCopyConstructor synthesises a copy constructor for movable
// classes that declare none.
func AddImplicitCopyConstructor(classPath cpppath.Path, existing []cppitem.CppFunction, isMovable bool) (cppitem.CppFunction, bool) {
	if !isMovable || hasCopyConstructor(existing, classPath) {
		return cppitem.CppFunction{}, false
	}
	ctorPath := classPath.Join(cpppath.Item{Name: classPath.Last().Name})
	argType := cpptype.NewPointerLike(cpptype.Reference, true, cpptype.NewClass(classPath))
	return cppitem.CppFunction{
		P: ctorPath,
		Member: &cppitem.MemberData{Kind: cppitem.Constructor, Visibility: cppitem.Public},
		Return: cpptype.NewClass(classPath),
		Arguments: []cppitem.Argument{{Name: "other", Type: argType}},
	}, true
}
