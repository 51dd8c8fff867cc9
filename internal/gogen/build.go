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

// Package gogen walks a database
// whose entries already carry FFI items and turns each into a Go-native
// tlitem, then renders the result as Go source. Grounded on the
// teacher's NinjaGenerator (ninja.go): a struct holding the database and
// an io.Writer, one method per emitted construct, building the output
// incrementally with fmt.Fprintf rather than a templating library —
// kati carries no templating dependency anywhere in its tree.
package gogen

import (
	"github.com/golang/glog"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/database"
	"github.com/cppbind/cppbind/internal/ffi"
	"github.com/cppbind/cppbind/internal/nameresolve"
	"github.com/cppbind/cppbind/internal/tlitem"
)

// Builder turns resolved database entries into tlitem values and
// attaches them back to their entries.
type Builder struct {
	db *database.Database
	resolver *nameresolve.Resolver
	rootMod string

	classGoName map[string]string // cpp class/enum path string -> Go type name
	classIsEnum map[string]bool
	moduleOf map[string]string // cpp namespace path string -> module path string
}

// NewBuilder creates a Builder that resolves names against resolver and
// roots the module tree at rootModuleName.
func NewBuilder(db *database.Database, resolver *nameresolve.Resolver, rootModuleName string) *Builder {
	return &Builder{
		db: db,
		resolver: resolver,
		rootMod: rootModuleName,
		classGoName: map[string]string{},
		classIsEnum: map[string]bool{},
		moduleOf: map[string]string{},
	}
}

// Run attaches a tlitem.Item to every entry whose C++ item is eligible
// and whose checks pass. Per-item failures (an entry this pass cannot
// yet name, most often because a dependency hasn't been resolved) are
// logged and skipped rather than aborting the whole run — generation is
// a soft-failure band.
func (b *Builder) Run() {
	b.assignModules()
	b.assignTypes()
	b.assignFunctions()
	b.assignCasts()
}

func (b *Builder) moduleScope(nsPath cpppath.Path) []string {
	if nsPath.IsEmpty() {
		return []string{b.rootMod}
	}
	if mod, ok := b.moduleOf[nsPath.String()]; ok {
		return []string{mod}
	}
	return []string{b.rootMod}
}

func (b *Builder) assignModules() {
	for _, e := range b.db.Entries() {
		ns, ok := e.Item.(cppitem.Namespace)
		if !ok {
			continue
		}
		parentScope := b.moduleScope(ns.P.Parent())
		path := b.resolver.ResolvePath(parentScope, ns.P, nameresolve.CategoryFunction, "", nil)
		b.moduleOf[ns.P.String()] = path.String()
		e.SetTLItem(tlitem.Item{
			Path: tlitem.KindModule,
			Module: &tlitem.Module{Path: path, SeparateFile: true},
		})
	}
}

func (b *Builder) assignTypes() {
	for _, e := range b.db.Entries() {
		t, ok := e.Item.(cppitem.Type)
		if !ok || e.Excluded {
			continue
		}
		scope := b.moduleScope(t.P.Parent())
		var capts []string
		for _, arg := range t.P.Last().Template {
			capts = append(capts, nameresolve.TemplateArgCaption(arg.String()))
		}
		path := b.resolver.ResolvePath(scope, t.P, nameresolve.CategoryType, "", capts)
		b.classGoName[t.P.String()] = path.Segments[len(path.Segments)-1]
		b.classIsEnum[t.P.String()] = t.Kind == cppitem.TypeEnum

		if t.Kind == cppitem.TypeEnum {
			values := b.enumValuesOf(t.P)
			groomed := nameresolve.GroomEnumVariants(values)
			variants := make([]tlitem.EnumVariant, len(groomed))
			for i, g := range groomed {
				variants[i] = tlitem.EnumVariant{Name: g.Name, Value: g.Value, Doc: g.Doc}
			}
			e.SetTLItem(tlitem.Item{
				Path: tlitem.KindEnum,
				Doc: "",
				Enum: &tlitem.Enum{Path: path, Variants: variants},
			})
			continue
		}

		e.SetTLItem(tlitem.Item{
			Path: tlitem.KindStruct,
			Struct: &tlitem.Struct{
				Path: path,
				Deletable: b.hasPublicDestructor(t.P),
				Movable: b.db.IsMovable(t.P),
			},
		})
	}
}

func (b *Builder) enumValuesOf(enumPath cpppath.Path) []cppitem.EnumValue {
	var out []cppitem.EnumValue
	for _, e := range b.db.Entries() {
		v, ok := e.Item.(cppitem.EnumValue)
		if ok && v.P.Parent().Equal(enumPath) {
			out = append(out, v)
		}
	}
	return out
}

func (b *Builder) hasPublicDestructor(classPath cpppath.Path) bool {
	for _, e := range b.db.Entries() {
		fn, ok := e.Item.(cppitem.CppFunction)
		if !ok || !fn.IsMember() || fn.Member.Kind != cppitem.Destructor {
			continue
		}
		if fn.ClassPath().Equal(classPath) {
			return fn.Member.Visibility == cppitem.Public
		}
	}
	return true // implicit destructors synthesized by xstructor are always public
}

func (b *Builder) namer(path string) (string, bool, bool) {
	name, ok := b.classGoName[path]
	return name, b.classIsEnum[path], ok
}

// overloadGroup keys methods sharing a class and self-kind, the unit
// resolves collisions within.
type overloadGroup struct {
	classPath string
	self tlitem.SelfKind
}

func (b *Builder) assignFunctions() {
	groups := map[overloadGroup][]*database.Entry{}
	var freeFns []*database.Entry

	for _, e := range b.db.Entries() {
		fn, ok := e.Item.(cppitem.CppFunction)
		if !ok || !e.HasFFIItems() || !e.Passes() || e.Excluded {
			continue
		}
		if !fn.IsMember() {
			freeFns = append(freeFns, e)
			continue
		}
		key := overloadGroup{classPath: fn.ClassPath().String(), self: selfKindOf(fn)}
		groups[key] = append(groups[key], e)
	}

	for key, entries := range groups {
		b.emitMethodGroup(key, entries)
	}
	for _, e := range freeFns {
		b.emitFreeFunction(e)
	}
}

func selfKindOf(fn cppitem.CppFunction) tlitem.SelfKind {
	switch {
	case fn.Member.Static || fn.Member.Kind == cppitem.Constructor:
		return tlitem.SelfNone
	case fn.Member.Const:
		return tlitem.SelfShared
	default:
		return tlitem.SelfExclusive
	}
}

// emitMethodGroup names every overload sharing one class and self-kind.
// A single non-overloaded member keeps its base name; a collision within
// the group is broken with a numeric suffix via the resolver's own
// per-scope dedup, mirroring the "_2", "_3",... rule used everywhere
// else identifiers collide.
func (b *Builder) emitMethodGroup(key overloadGroup, entries []*database.Entry) {
	className, _, ok := b.namer(key.classPath)
	if !ok {
		glog.Warningf("gogen: skipping methods of unresolved class %s", key.classPath)
		return
	}
	scope := []string{b.rootMod, className}

	for _, e := range entries {
		fn := e.Item.(cppitem.CppFunction)
		plain := firstPlainFunction(e.FFIItems)
		if plain == nil {
			continue
		}
		operatorName := ""
		if fn.Operator != nil {
			operatorName = nameresolve.ResolveOperator(*fn.Operator)
		}
		path := b.resolver.ResolvePath(scope, fn.P, nameresolve.CategoryFunction, operatorName, nil)
		tlFn := b.renderFunction(path, tlitem.Inherent, key.self, fn, plain)
		e.SetTLItem(tlitem.Item{Path: tlitem.KindFunction, Doc: fn.Doc, Function: &tlFn})
	}
}

func (b *Builder) emitFreeFunction(e *database.Entry) {
	fn := e.Item.(cppitem.CppFunction)
	plain := firstPlainFunction(e.FFIItems)
	if plain == nil {
		return
	}
	scope := b.moduleScope(fn.P.Parent())
	path := b.resolver.ResolvePath(scope, fn.P, nameresolve.CategoryFunction, "", nil)
	tlFn := b.renderFunction(path, tlitem.Free, tlitem.SelfNone, fn, plain)
	e.SetTLItem(tlitem.Item{Path: tlitem.KindFunction, Doc: fn.Doc, Function: &tlFn})
}

// assignCasts renders the upcast synthesized for every ClassBase edge
// as an "As<Base>" method on the derived wrapper type, so a derived
// struct can be passed anywhere the base type is expected. The
// downcast and dynamic-cast siblings produced by ffi.LowerCasts stay
// internal to the FFI layer: only the always-safe upcast is exposed as
// a Go-facing convenience, matching gogen's other narrow selection of
// one representative overload out of several FFI items per entry.
func (b *Builder) assignCasts() {
	for _, e := range b.db.Entries() {
		base, ok := e.Item.(cppitem.ClassBase)
		if !ok || e.Excluded {
			continue
		}
		up := firstUpcast(e.FFIItems)
		if up == nil {
			continue
		}
		derivedName, _, ok := b.namer(base.Derived.String())
		if !ok {
			continue
		}
		baseName, _, ok := b.namer(base.Base.String())
		if !ok {
			continue
		}
		path := tlitem.Path{Segments: []string{b.rootMod, derivedName, "As" + baseName}, Kind: tlitem.BaseCast}
		e.SetTLItem(tlitem.Item{
			Path: tlitem.KindFunction,
			Function: &tlitem.Function{
				Path: path,
				Self: tlitem.SelfShared,
				Return: "*" + baseName,
				FfiPath: up.Path.String(),
			},
		})
	}
}

func firstUpcast(items []ffi.Item) *ffi.Function {
	for _, it := range items {
		fn := it.Function
		if fn == nil || fn.Plain == nil || fn.Plain.Cast == nil {
			continue
		}
		if fn.Plain.Cast.Kind == ffi.CastStatic && !fn.Plain.Cast.Unsafe {
			return fn
		}
	}
	return nil
}

func firstPlainFunction(items []ffi.Item) *ffi.Function {
	for _, it := range items {
		if it.Function != nil && it.Function.Kind == ffi.KindPlainFunction && it.Function.Plain.OmittedArgumentCount == 0 {
			return it.Function
		}
	}
	return nil
}

func (b *Builder) renderFunction(path tlitem.Path, kind tlitem.PathKind, self tlitem.SelfKind, origin cppitem.CppFunction, plain *ffi.Function) tlitem.Function {
	path.Kind = kind
	var args []tlitem.FunctionArg
	for _, a := range plain.Arguments {
		if a.Meaning != ffi.MeaningArgument {
			continue
		}
		args = append(args, tlitem.FunctionArg{
			Name: ffiArgIdent(a.Name, a.Index),
			Type: goTypeFor(a.Type, b.namer),
		})
	}
	return tlitem.Function{
		Path: path,
		Self: self,
		Args: args,
		Return: goTypeFor(plain.Return, b.namer),
		FfiPath: plain.Path.String(),
		Doc: origin.Doc,
	}
}
