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

// Package tmplinst implements the find_template_instantiations and
// instantiate_templates pipeline steps. Grounded on kati's func.go, which
// walks an expression tree
// collecting sub-values (funcMap-driven recursive Value walking) the
// same shape as walking a CppType tree collecting concrete Class
// instantiations here.
package tmplinst

import (
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// Collect walks every type appearing anywhere in item's signature
// (including transitively through pointer-like wrappers) and returns
// every concrete instantiation found,
// deduplicated within this single call (cross-item/cross-database
// dedup against items already present is the caller's job, since only
// the caller has database visibility).
func Collect(item cppitem.Item) []cpptype.Type {
	var found []cpptype.Type
	seen := map[string]bool{}
	add := func(t cpptype.Type) {
		if !t.IsConcreteInstantiation() {
			return
		}
		key := t.String()
		if seen[key] {
			return
		}
		seen[key] = true
		found = append(found, t)
	}
	var walk func(t cpptype.Type)
	walk = func(t cpptype.Type) {
		switch t.Kind {
		case cpptype.KindClass:
			add(t)
			for _, arg := range t.Path.Last().Template {
				if ty, ok := arg.(cpptype.Type); ok {
					walk(ty)
				}
			}
		case cpptype.KindPointerLike:
			walk(*t.Target)
		case cpptype.KindFunctionPointer:
			walk(*t.Return)
			for _, a := range t.Args {
				walk(a)
			}
		}
	}

	switch v := item.(type) {
	case cppitem.ClassField:
		walk(v.FieldType)
	case cppitem.CppFunction:
		walk(v.Return)
		for _, a := range v.Arguments {
			walk(a.Type)
		}
		for _, tmplArg := range v.P.Last().Template {
			if ty, ok := tmplArg.(cpptype.Type); ok {
				walk(ty)
			}
		}
	case cppitem.Type:
		for _, tmplArg := range v.P.Last().Template {
			if ty, ok := tmplArg.(cpptype.Type); ok {
				walk(ty)
			}
		}
	}
	return found
}

// SyntheticTypeItem builds the synthetic Type{Class} item for a newly
// observed concrete instantiation.
func SyntheticTypeItem(instantiation cpptype.Type) cppitem.Type {
	return cppitem.Type{P: instantiation.Path, Kind: cppitem.TypeClass}
}

// TemplateClassPath returns the un-instantiated path of a class
// reference (its path minus the final item's template arguments),
// used to find the primary template's members to copy during
// instantiation.
func TemplateClassPath(instantiation cpptype.Type) cpppath.Path {
	last := instantiation.Path.Last()
	items := append([]cpppath.Item(nil), instantiation.Path.Items()...)
	items[len(items)-1] = cpppath.Item{Name: last.Name}
	return cpppath.New(items...)
}
