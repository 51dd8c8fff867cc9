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

// Package nameresolve assigns each exposed database item a unique Go
// path. Grounded on kati's symtab.go (a flat name -> entity table with
// collision handling), generalised from make variable names to the
// richer per-scope path algorithm this package implements.
package nameresolve

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cppbind/cppbind/internal/caption"
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
	"github.com/cppbind/cppbind/internal/tlitem"
)

// Config is the slice of configuration name resolution cares about:
// whether to strip a leading Qt-style prefix.
type Config struct {
	StripQtPrefix bool
}

// Resolver assigns unique TL paths. Collisions are resolved within a
// scope (the joined parent-path string) by appending _2, _3, and so on.
type Resolver struct {
	cfg Config
	used map[string]bool // scope+"\x00"+name -> taken
}

// New creates a Resolver.
func New(cfg Config) *Resolver {
	return &Resolver{cfg: cfg, used: map[string]bool{}}
}

// Resolvable reports whether every C++ class or enum named anywhere in
// item exists as a type in the database (reported by the typeExists
// callback) and no template parameter remains.
func Resolvable(item cppitem.Item, typeExists func(cpppath.Path) bool) bool {
	switch v := item.(type) {
	case cppitem.CppFunction:
		if v.Return.ContainsTemplateParameter() {
			return false
		}
		for _, a := range v.Arguments {
			if a.Type.ContainsTemplateParameter() {
				return false
			}
		}
		return classesResolvable(v.Return, typeExists) && argsResolvable(v.Arguments, typeExists)
	case cppitem.ClassField:
		return !v.FieldType.ContainsTemplateParameter() && classesResolvable(v.FieldType, typeExists)
	default:
		return true
	}
}

func argsResolvable(args []cppitem.Argument, typeExists func(cpppath.Path) bool) bool {
	for _, a := range args {
		if !classesResolvable(a.Type, typeExists) {
			return false
		}
	}
	return true
}

// classesResolvable walks t the same way ContainsTemplateParameter does,
// requiring that every KindClass/KindEnum node it passes through names a
// type already present in the database.
func classesResolvable(t cpptype.Type, typeExists func(cpppath.Path) bool) bool {
	switch t.Kind {
	case cpptype.KindClass:
		if !typeExists(t.Path) {
			return false
		}
		for _, arg := range t.Path.Last().Template {
			if ty, ok := arg.(cpptype.Type); ok && !classesResolvable(ty, typeExists) {
				return false
			}
		}
		return true
	case cpptype.KindEnum:
		return typeExists(t.Path)
	case cpptype.KindPointerLike:
		return classesResolvable(*t.Target, typeExists)
	case cpptype.KindFunctionPointer:
		if !classesResolvable(*t.Return, typeExists) {
			return false
		}
		for _, a := range t.Args {
			if !classesResolvable(a, typeExists) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ModuleNameFromHeader derives a module name from the originating
// header's basename: strip the extension, strip a leading Q/Qt prefix,
// then snake-case what remains.
func ModuleNameFromHeader(headerPath string) string {
	base := filepath.Base(headerPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = stripQtPrefix(base, true)
	return caption.ToSnakeCase(base)
}

func stripQtPrefix(name string, enabled bool) string {
	if !enabled {
		return name
	}
	if strings.HasPrefix(name, "Qt") && len(name) > 2 {
		return name[2:]
	}
	if strings.HasPrefix(name, "Q") && len(name) > 1 && name[1] >= 'A' && name[1] <= 'Z' {
		return name[1:]
	}
	return name
}

// ItemCategory tells ResolvePath how to case the final identifier.
type ItemCategory int

const (
	CategoryType ItemCategory = iota // class, enum
	CategoryFunction
	CategoryEnumVariant
)

// ResolveOperator applies the operator-naming rule: operators become
// op_<suffix>, except conversion operators, which become
// as_<target_type_caption>.
func ResolveOperator(op cppitem.Operator) string {
	if op.Kind == cppitem.OpConversion {
		return "as_" + caption.ToSnakeCase(op.ConvertTo.String())
	}
	return "op_" + op.Suffix()
}

// ResolvePath derives the final Go path for one item, given its scope
// (the already-resolved parent path segments, used as the collision
// domain) and a last-identifier override for operators (pass "" to use
// the plain path-derived name).
func (r *Resolver) ResolvePath(scope []string, cppPath cpppath.Path, category ItemCategory, operatorName string, templateArgCaptions []string) tlitem.Path {
	lastItem := cppPath.Last()
	last := lastItem.Name
	if operatorName != "" {
		last = operatorName
	} else {
		last = stripQtPrefix(last, r.cfg.StripQtPrefix && len(cppPath.Items()) > 1)
		switch category {
		case CategoryType:
			last = caption.ToClassCase(last)
		default:
			last = caption.ToSnakeCase(last)
		}
	}
	last = EscapeReserved(last)

	if len(templateArgCaptions) > 0 {
		last += strings.Join(templateArgCaptions, "")
	}

	scopeKey := strings.Join(scope, "\x00")
	final := r.dedup(scopeKey, last)

	segments := append(append([]string(nil), scope...), final)
	return tlitem.Path{Segments: segments}
}

func (r *Resolver) dedup(scopeKey, name string) string {
	key := scopeKey + "\x00" + name
	if !r.used[key] {
		r.used[key] = true
		return name
	}
	for n := 2; ; n++ {
		candidate := name
		if len(candidate) > 0 && candidate[len(candidate)-1] >= '0' && candidate[len(candidate)-1] <= '9' {
			candidate += "_"
		}
		candidate += suffixFor(n, candidate != name)
		k := scopeKey + "\x00" + candidate
		if !r.used[k] {
			r.used[k] = true
			return candidate
		}
	}
}

func suffixFor(n int, alreadyUnderscored bool) string {
	if alreadyUnderscored {
		return strconv.Itoa(n)
	}
	return "_" + strconv.Itoa(n)
}

// TemplateArgCaption renders one template argument's class-cased
// caption.
func TemplateArgCaption(rendered string) string {
	return caption.ToClassCase(caption.AsciiCaption(rendered))
}
