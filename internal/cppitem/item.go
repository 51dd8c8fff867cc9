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

// Package cppitem implements the C++ item tagged union and
// CppFunction, modeled on kati's AST tagged-interface pattern
// (ast.go: a small interface plus one struct per variant).
package cppitem

import (
	"fmt"

	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// Visibility mirrors C++ member access.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

// TypeKind distinguishes the two kinds of Type item.
type TypeKind int

const (
	TypeEnum TypeKind = iota
	TypeClass
)

// Item is implemented by every C++ item variant. Path returns the
// item's CppPath; ItemKind names the concrete variant for exhaustive
// switches.
type Item interface {
	Path() cpppath.Path
	ItemKind() string
}

// Namespace is a (possibly synthesised, see nsinfer) namespace item.
type Namespace struct {
	P cpppath.Path
}

func (n Namespace) Path() cpppath.Path { return n.P }
func (Namespace) ItemKind() string { return "Namespace" }

// Type is an Enum or Class item.
type Type struct {
	P cpppath.Path
	Kind TypeKind
	// Polymorphic records whether this class declares or inherits any
	// virtual function; used by cast synthesis to skip DynamicCast against a
	// non-polymorphic base. Unused for Kind == TypeEnum.
	Polymorphic bool
}

func (t Type) Path() cpppath.Path { return t.P }
func (Type) ItemKind() string { return "Type" }

// EnumValue is one named constant of an enum; its path's parent is the
// enum.
type EnumValue struct {
	P cpppath.Path
	Value int64
	Doc string
}

func (e EnumValue) Path() cpppath.Path { return e.P }
func (EnumValue) ItemKind() string { return "EnumValue" }

// ClassField is a non-static or static data member.
type ClassField struct {
	P cpppath.Path
	FieldType cpptype.Type
	Visibility Visibility
	IsStatic bool
}

func (f ClassField) Path() cpppath.Path { return f.P }
func (ClassField) ItemKind() string { return "ClassField" }

// ClassBase is one base-class relationship in an inheritance DAG, keyed
// on CppPath rather than a pointer so the DAG is acyclic-by-construction
// at the data-model level.
type ClassBase struct {
	Derived cpppath.Path
	Base cpppath.Path
	BaseIndex int
	IsVirtual bool
	Visibility Visibility
}

func (b ClassBase) Path() cpppath.Path { return b.Derived }
func (ClassBase) ItemKind() string { return "ClassBase" }

// MemberKind distinguishes a CppFunction's role within its class.
type MemberKind int

const (
	Regular MemberKind = iota
	Constructor
	Destructor
)

// MemberData holds the member-only facets of a CppFunction; nil on a
// free function.
type MemberData struct {
	Kind MemberKind
	Virtual bool
	PureVirtual bool
	Const bool
	Static bool
	Visibility Visibility
	Signal bool
	Slot bool
}

// Argument is one formal parameter.
type Argument struct {
	Name string
	Type cpptype.Type
	HasDefault bool
}

// CppFunction is a free function, member function, constructor,
// destructor, or operator.
type CppFunction struct {
	P cpppath.Path
	Member *MemberData // nil => free function
	Operator *Operator // nil => not an operator
	Return cpptype.Type
	Arguments []Argument
	Variadic bool
	Decl string // verbatim declaration text, optional
	Doc string // optional documentation
}

func (f CppFunction) Path() cpppath.Path { return f.P }
func (CppFunction) ItemKind() string { return "Function" }

// IsMember reports whether f belongs to a class.
func (f CppFunction) IsMember() bool { return f.Member != nil }

// ClassPath returns f's owning class path; only valid when IsMember().
func (f CppFunction) ClassPath() cpppath.Path {
	if !f.IsMember() {
		panic("cppitem: ClassPath called on a free function")
	}
	return f.P.Parent()
}

// ExplicitArgCount returns the number of C++-visible arguments.
func (f CppFunction) ExplicitArgCount() int { return len(f.Arguments) }

// Equal compares two functions by path, membership, operator, return
// type, argument types, and variadic flag.
func (f CppFunction) Equal(other CppFunction) bool {
	if !f.P.Equal(other.P) {
		return false
	}
	if f.IsMember() != other.IsMember() {
		return false
	}
	if (f.Operator == nil) != (other.Operator == nil) {
		return false
	}
	if f.Operator != nil && f.Operator.Kind != other.Operator.Kind {
		return false
	}
	if !f.Return.Equal(other.Return) {
		return false
	}
	if f.Variadic != other.Variadic {
		return false
	}
	if len(f.Arguments) != len(other.Arguments) {
		return false
	}
	for i := range f.Arguments {
		if !f.Arguments[i].Type.Equal(other.Arguments[i].Type) {
			return false
		}
	}
	return true
}

// Source tags how a C++ item entered the database.
type Source int

const (
	SourceParser Source = iota
	SourceImplicitXstructor
	SourceTemplateInstantiation
	SourceNamespaceInferring
)

func (s Source) String() string {
	switch s {
	case SourceParser:
		return "parser"
	case SourceImplicitXstructor:
		return "implicit-xstructor"
	case SourceTemplateInstantiation:
		return "template-instantiation"
	case SourceNamespaceInferring:
		return "namespace-inferring"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Priority orders sources for the add_cpp_item merge rule. Lower is
// higher priority.
func (s Source) Priority() int {
	if s == SourceParser {
		return 0
	}
	return 1
}
