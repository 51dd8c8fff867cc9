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

package tmplinst

import (
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// findPurelyTemplateLevel looks for a Class reference inside t whose
// path equals templatePath and whose template arguments are all bare
// TemplateParameter occurrences sharing one nesting level —
// "a function that mentions a class with purely-template arguments
// Class<T0,T1,…> at nesting level L". Returns (level, true) on the
// first such match.
func findPurelyTemplateLevel(t cpptype.Type, templatePath cpppath.Path) (int, bool) {
	switch t.Kind {
	case cpptype.KindClass:
		if samePrimaryTemplate(t.Path, templatePath) {
			if level, ok := allBareParamsAtOneLevel(t.Path.Last()); ok {
				return level, true
			}
		}
		for _, arg := range t.Path.Last().Template {
			if ty, ok := arg.(cpptype.Type); ok {
				if lvl, ok := findPurelyTemplateLevel(ty, templatePath); ok {
					return lvl, true
				}
			}
		}
		return 0, false
	case cpptype.KindPointerLike:
		return findPurelyTemplateLevel(*t.Target, templatePath)
	case cpptype.KindFunctionPointer:
		if lvl, ok := findPurelyTemplateLevel(*t.Return, templatePath); ok {
			return lvl, true
		}
		for _, a := range t.Args {
			if lvl, ok := findPurelyTemplateLevel(a, templatePath); ok {
				return lvl, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func samePrimaryTemplate(path, templatePath cpppath.Path) bool {
	return TemplateClassPath(cpptype.NewClass(path)).Equal(templatePath)
}

func allBareParamsAtOneLevel(it cpppath.Item) (int, bool) {
	if len(it.Template) == 0 {
		return 0, false
	}
	level := -1
	for _, arg := range it.Template {
		ty, ok := arg.(cpptype.Type)
		if !ok || ty.Kind != cpptype.KindTemplateParameter {
			return 0, false
		}
		if level == -1 {
			level = ty.NestedLevel
		} else if ty.NestedLevel != level {
			return 0, false
		}
	}
	return level, true
}

// InstantiateFunction substitutes every TemplateParameter at nesting
// level L with the concrete instantiation's argument list, descending through
// PointerLike, FunctionPointer, Class template-argument lists, and the
// function's own path template arguments. If the result still contains
// any template parameter, the caller must discard it (ok == false).
func InstantiateFunction(fn cppitem.CppFunction, instantiation cpptype.Type) (cppitem.CppFunction, bool) {
	templatePath := TemplateClassPath(instantiation)
	args := make([]cpptype.Type, 0, len(instantiation.Path.Last().Template))
	for _, a := range instantiation.Path.Last().Template {
		if ty, ok := a.(cpptype.Type); ok {
			args = append(args, ty)
		}
	}

	level, ok := findPurelyTemplateLevel(fn.Return, templatePath)
	if !ok {
		for _, a := range fn.Arguments {
			if l, ok2 := findPurelyTemplateLevel(a.Type, templatePath); ok2 {
				level, ok = l, true
				break
			}
		}
	}
	if !ok {
		for _, tmplArg := range fn.P.Last().Template {
			if ty, tok := tmplArg.(cpptype.Type); tok {
				if l, ok2 := findPurelyTemplateLevel(ty, templatePath); ok2 {
					level, ok = l, true
					break
				}
			}
		}
	}
	if !ok {
		return cppitem.CppFunction{}, false
	}

	out := fn
	out.Return, _ = fn.Return.Instantiate(level, args)
	if out.Return.ContainsTemplateParameter() {
		return cppitem.CppFunction{}, false
	}
	out.Arguments = make([]cppitem.Argument, len(fn.Arguments))
	for i, a := range fn.Arguments {
		nt, _ := a.Type.Instantiate(level, args)
		if nt.ContainsTemplateParameter() {
			return cppitem.CppFunction{}, false
		}
		out.Arguments[i] = cppitem.Argument{Name: a.Name, Type: nt, HasDefault: a.HasDefault}
	}

	newPathItems := append([]cpppath.Item(nil), fn.P.Items()...)
	last := newPathItems[len(newPathItems)-1]
	if len(last.Template) > 0 {
		newTemplate := make([]cpppath.TemplateArg, len(last.Template))
		for i, tmplArg := range last.Template {
			if ty, tok := tmplArg.(cpptype.Type); tok {
				nt, _ := ty.Instantiate(level, args)
				newTemplate[i] = nt
			} else {
				newTemplate[i] = tmplArg
			}
		}
		last = cpppath.Item{Name: last.Name, Template: newTemplate}
	}

	// Conversion operators: update the function's last path item to
	// "operator <rendered-converted-type>".
	if fn.Operator != nil && fn.Operator.Kind == cppitem.OpConversion {
		convertedTo, _ := fn.Operator.ConvertTo.Instantiate(level, args)
		last = cpppath.Item{Name: "operator " + convertedTo.String()}
		out.Operator = &cppitem.Operator{Kind: cppitem.OpConversion, ConvertTo: convertedTo}
	}
	newPathItems[len(newPathItems)-1] = last
	out.P = cpppath.New(newPathItems...)

	if out.Return.ContainsTemplateParameter() {
		return cppitem.CppFunction{}, false
	}
	return out, true
}
