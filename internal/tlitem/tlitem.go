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

// Package tlitem defines the Go-native item types emitted by the
// gogen code generation stage. Kept as its own package (rather than
// living inside gogen) so both gogen (producer) and database
// (storage) can depend on it without a cycle.
package tlitem

// PathKind distinguishes how a TL function is reached: a method on a
// wrapper type, a free function in a module, or a synthesized
// base-class cast.
type PathKind int

const (
	Inherent PathKind = iota
	Free
	BaseCast
)

// Path is a resolved TL path: a sequence of Go identifiers rooted at
// the module root, plus the PathKind disambiguation for functions.
type Path struct {
	Segments []string
	Kind PathKind
}

func (p Path) String() string {
	s := ""
	for i, seg := range p.Segments {
		if i > 0 {
			s += "."
		}
		s += seg
	}
	return s
}

// Kind discriminates the emitted item union.
type Kind int

const (
	KindModule Kind = iota
	KindStruct
	KindEnum
	KindFunction
)

// EnumVariant is one groomed enum constant.
type EnumVariant struct {
	Name string
	Value int64
	Doc string
}

// SizedBody holds a struct's opaque-body size metadata; TL structs carry
// no public fields. The gogen step never populates it, and no
// sized-types submodule is emitted.
type SizedBody struct {
	SizeBytes int
	// PerEnvironment maps an environment key (see internal/database)
	// to the concrete byte size observed by the checker collaborator.
	PerEnvironment map[string]int
}

// Item is a single emitted Go-native item.
type Item struct {
	Path Kind
	Doc string

	Module *Module
	Struct *Struct
	Enum *Enum
	Function *Function
}

// Module is a TL module node.
type Module struct {
	Path Path
	SeparateFile bool // module root and namespace modules are separate files
	Children []string
}

// Struct is a C++ class's Go-side wrapper.
type Struct struct {
	Path Path
	Deletable bool // has a public destructor
	Movable bool // in the movable set; exposes value-by-value semantics
	SizedBody *SizedBody
}

// Enum is a C++ enum's Go-side wrapper.
type Enum struct {
	Path Path
	Variants []EnumVariant
	Flaggable bool // sole template argument of some QFlags<E> instantiation
	FlagsAlias string
}

// SelfKind distinguishes a method's receiver shape.
type SelfKind int

const (
	SelfNone SelfKind = iota
	SelfShared
	SelfExclusive
	SelfOwned
)

// FunctionArg is one Go-side argument.
type FunctionArg struct {
	Name string
	Type string // rendered Go type, e.g. "*Widget", "int32", "Flags[Alignment]"
}

// Function is an emitted Go function or method.
type Function struct {
	Path Path
	Self SelfKind
	Args []FunctionArg
	Return string
	FfiPath string // the underlying FFI symbol this wraps
	Doc string
}
