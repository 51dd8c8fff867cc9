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
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// missingInstantiation walks t looking for a Class reference that
// carries template arguments but is neither a bare template-parameter
// reference (caught separately) nor backed by a concrete instantiation
// already present in the database.
func missingInstantiation(cat Catalogue, t cpptype.Type) bool {
	switch t.Kind {
	case cpptype.KindClass:
		last := t.Path.Last()
		if last.HasTemplateArgs() && !t.ContainsTemplateParameter() {
			if !cat.HasConcreteInstantiation(t.Path) {
				return true
			}
		}
		return false
	case cpptype.KindPointerLike:
		return missingInstantiation(cat, *t.Target)
	case cpptype.KindFunctionPointer:
		if missingInstantiation(cat, *t.Return) {
			return true
		}
		for _, a := range t.Args {
			if missingInstantiation(cat, a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Eligible reports whether fn should be lowered at all: a function is
// skipped iff any of the listed conditions holds. The second return
// value is a human-readable reason, logged at the soft-error level by
// callers.
func Eligible(cat Catalogue, fn cppitem.CppFunction) (bool, string) {
	if fn.IsMember() {
		switch fn.Member.Visibility {
		case cppitem.Private:
			return false, "private member function"
		case cppitem.Protected:
			return false, "protected member function"
		}
		if fn.Member.Signal {
			return false, "signals are re-exposed through a separate wrapper path, not as plain FFI functions"
		}
	}
	if fn.P.Last().HasTemplateArgs() {
		return false, "function name carries template arguments; handled through instantiation"
	}
	if fn.Return.ContainsTemplateParameter() {
		return false, "return type contains a template parameter"
	}
	if missingInstantiation(cat, fn.Return) {
		return false, "return type refers to a template class with no concrete instantiation"
	}
	for _, a := range fn.Arguments {
		if a.Type.ContainsTemplateParameter() {
			return false, "argument contains a template parameter"
		}
		if missingInstantiation(cat, a.Type) {
			return false, "argument refers to a template class with no concrete instantiation"
		}
	}
	return true, ""
}

// EligibleType reports whether a class-template item itself (not an
// instantiation of it) should be skipped: "it is a class template
// itself (instantiations are handled, the template is not)".
func EligibleType(isTemplate bool) (bool, string) {
	if isTemplate {
		return false, "class template itself; only instantiations are lowered"
	}
	return true, ""
}
