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

// Package pipeline drives the ten-step generation pipeline over a
// database: parsing, implicit-destructor/copy-constructor synthesis,
// template instantiation, namespace inferring, allocation-place
// resolution, FFI lowering, C++ checking, name resolution, and Go
// generation. Grounded on kati's depgraph.go: a builder that
// walks accumulated state once per phase, logging soft failures via
// glog and returning a hard error only when a phase itself cannot
// proceed.
package pipeline

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/cppbind/cppbind/internal/allocplace"
	"github.com/cppbind/cppbind/internal/config"
	"github.com/cppbind/cppbind/internal/cppchecker"
	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cppparser"
	"github.com/cppbind/cppbind/internal/cpptype"
	"github.com/cppbind/cppbind/internal/database"
	"github.com/cppbind/cppbind/internal/ffi"
	"github.com/cppbind/cppbind/internal/gogen"
	"github.com/cppbind/cppbind/internal/nameresolve"
	"github.com/cppbind/cppbind/internal/nsinfer"
	"github.com/cppbind/cppbind/internal/tmplinst"
	"github.com/cppbind/cppbind/internal/xstructor"
)

// Step names the ten pipeline phases, in run order.
type Step string

const (
	StepParse Step = "cpp_parser"
	StepExplicitXstructors Step = "add_explicit_destructors"
	StepFindTemplateInstances Step = "find_template_instantiations"
	StepInstantiateTemplates Step = "instantiate_templates"
	StepAddNamespaces Step = "add_namespaces"
	StepChooseAllocationPlaces Step = "choose_allocation_places"
	StepFfiGenerator Step = "cpp_ffi_generator"
	StepChecker Step = "cpp_checker"
	StepNameResolver Step = "go_name_resolver"
	StepGenerator Step = "go_generator"
)

// Steps lists every phase in execution order.
var Steps = []Step{
	StepParse, StepExplicitXstructors, StepFindTemplateInstances,
	StepInstantiateTemplates, StepAddNamespaces, StepChooseAllocationPlaces,
	StepFfiGenerator, StepChecker, StepNameResolver, StepGenerator,
}

// Pipeline holds the cross-step context: the database under
// construction, the loaded configuration, and the collaborators each
// step needs.
type Pipeline struct {
	Config *config.Config
	DB *database.Database
	Parser cppparser.Parser
	Checker cppchecker.Checker
}

// Run executes every step in order, stopping at the first hard error.
// A step's own per-item soft failures are logged and do not abort the
// run (spec's error-band split between per-item and per-step errors).
func (p *Pipeline) Run(ctx context.Context) error {
	for _, step := range Steps {
		glog.Infof("pipeline: running step %s", step)
		var err error
		switch step {
		case StepParse:
			err = p.runParse(ctx)
		case StepExplicitXstructors:
			err = p.runXstructors()
		case StepFindTemplateInstances, StepInstantiateTemplates:
			err = p.runTemplateInstantiation()
		case StepAddNamespaces:
			err = p.runAddNamespaces()
		case StepChooseAllocationPlaces:
			err = p.runAllocationPlaces()
		case StepFfiGenerator:
			err = p.runFfiGenerator()
		case StepChecker:
			err = p.runChecker(ctx)
		case StepNameResolver:
			err = p.runNameResolver()
		case StepGenerator:
			err = p.runGenerator()
		}
		if err != nil {
			return errors.Wrapf(err, "pipeline step %s", step)
		}
	}
	return nil
}

func (p *Pipeline) runParse(ctx context.Context) error {
	for _, header := range p.Config.Headers {
		res, err := p.Parser.Parse(ctx, cppparser.Request{
			TranslationUnitPath: header,
			IncludePaths: p.Config.IncludePaths,
			TargetIncludePaths: p.Config.TargetIncludePaths,
		})
		if err != nil {
			return errors.Wrapf(err, "parsing %s", header)
		}
		for _, item := range res.Items {
			p.DB.AddCppItem(item, cppitem.SourceParser)
		}
	}
	return nil
}

func (p *Pipeline) runXstructors() error {
	classesByPath := map[string][]cppitem.CppFunction{}
	for _, e := range p.DB.Entries() {
		fn, ok := e.Item.(cppitem.CppFunction)
		if ok && fn.IsMember() {
			key := fn.ClassPath().String()
			classesByPath[key] = append(classesByPath[key], fn)
		}
	}
	for _, e := range p.DB.Entries() {
		t, ok := e.Item.(cppitem.Type)
		if !ok || t.Kind != cppitem.TypeClass {
			continue
		}
		existing := classesByPath[t.P.String()]
		if dtor, added := xstructor.AddImplicitDestructor(t.P, existing); added {
			p.DB.AddCppItem(dtor, cppitem.SourceImplicitXstructor)
		}
		if ctor, added := xstructor.AddImplicitCopyConstructor(t.P, existing, p.DB.IsMovable(t.P)); added {
			p.DB.AddCppItem(ctor, cppitem.SourceImplicitXstructor)
		}
	}
	return nil
}

func (p *Pipeline) runTemplateInstantiation() error {
	seen := map[string]bool{}
	var found []cpptype.Type

	for _, e := range p.DB.Entries() {
		for _, inst := range tmplinst.Collect(e.Item) {
			key := inst.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, inst)
		}
	}

	for _, inst := range found {
		typeItem := tmplinst.SyntheticTypeItem(inst)
		p.DB.AddCppItem(typeItem, cppitem.SourceTemplateInstantiation)
		templatePath := tmplinst.TemplateClassPath(inst)

		for _, e := range p.DB.Entries() {
			fn, ok := e.Item.(cppitem.CppFunction)
			if !ok || !fn.IsMember() || !fn.ClassPath().Equal(templatePath) {
				continue
			}
			if instFn, ok := tmplinst.InstantiateFunction(fn, inst); ok {
				p.DB.AddCppItem(instFn, cppitem.SourceTemplateInstantiation)
			}
		}
	}
	return nil
}

func (p *Pipeline) runAddNamespaces() error {
	var allPaths []cpppath.Path
	for _, e := range p.DB.Entries() {
		allPaths = append(allPaths, e.Item.Path())
	}
	for _, ns := range nsinfer.Infer(allPaths) {
		p.DB.AddCppItem(cppitem.Namespace{P: ns}, cppitem.SourceNamespaceInferring)
	}
	return nil
}

func (p *Pipeline) runAllocationPlaces() error {
	var classes []cpppath.Path
	for _, e := range p.DB.Entries() {
		if t, ok := e.Item.(cppitem.Type); ok && t.Kind == cppitem.TypeClass {
			classes = append(classes, t.P)
		}
	}
	_, unresolved := allocplace.Resolve(p.Config.MovableClasses, classes)
	for _, u := range unresolved {
		glog.Warningf("pipeline: movable class %q does not match any known class", u)
	}
	return nil
}

func (p *Pipeline) runFfiGenerator() error {
	registry := p.DB
	for _, e := range p.DB.Entries() {
		if e.HasFFIItems() {
			continue
		}
		switch item := e.Item.(type) {
		case cppitem.CppFunction:
			fns, failReason, err := ffi.LowerFunction(p.DB, registry, item)
			if err != nil {
				return errors.Wrapf(err, "lowering function %s", item.P.String())
			}
			if failReason != "" {
				glog.Infof("pipeline: skipping %s: %s", item.P.String(), failReason)
				continue
			}
			var items []ffi.Item
			for i := range fns {
				items = append(items, ffi.Item{Function: &fns[i]})
			}
			e.SetFFIItems(items)
		case cppitem.ClassField:
			if item.Visibility != cppitem.Public {
				continue
			}
			fns, err := ffi.LowerFieldAccessors(p.DB, registry, item)
			if err != nil {
				glog.Warningf("pipeline: skipping field %s: %v", item.P.String(), err)
				continue
			}
			var items []ffi.Item
			for i := range fns {
				items = append(items, ffi.Item{Function: &fns[i]})
			}
			e.SetFFIItems(items)
		case cppitem.ClassBase:
			fns := ffi.LowerCasts(registry, p.DB, item, item.BaseIndex > 0)
			var items []ffi.Item
			for i := range fns {
				items = append(items, ffi.Item{Function: &fns[i]})
			}
			e.SetFFIItems(items)
		}
	}
	return nil
}

func (p *Pipeline) runChecker(ctx context.Context) error {
	for _, env := range p.Config.Environments {
		dbEnv := database.Environment{Arch: env.Arch, OS: env.OS, Family: env.Family}
		for _, e := range p.DB.Entries() {
			// One result per entry per environment: the first failing
			// FFI item's error, or "" when every FFI item passed.
			checked := false
			firstErr := ""
			for _, item := range e.FFIItems {
				if item.Function == nil {
					continue
				}
				ok, checkErr, err := p.Checker.Check(ctx, *item.Function, dbEnv)
				if err != nil {
					return errors.Wrapf(err, "checking %s", item.Function.Path.String())
				}
				checked = true
				if !ok && firstErr == "" {
					firstErr = checkErr
				}
			}
			if checked {
				e.AddCheckResult(p.DB, dbEnv, firstErr)
			}
		}
	}
	return nil
}

func (p *Pipeline) runNameResolver() error {
	// Name resolution itself happens lazily inside gogen.Builder, which
	// needs the fully-populated database to assign overload-aware
	// names; this step only gates which entries are eligible to be
	// named at all, excluding the rest from runGenerator.
	typeExists := func(path cpppath.Path) bool {
		_, ok := p.DB.FindType(path)
		return ok
	}
	for _, e := range p.DB.Entries() {
		if !nameresolve.Resolvable(e.Item, typeExists) {
			glog.Infof("pipeline: %s is not resolvable yet, dropping from output", e.Item.Path().String())
			e.Exclude()
		}
	}
	return nil
}

func (p *Pipeline) runGenerator() error {
	resolver := nameresolve.New(nameresolve.Config{StripQtPrefix: p.Config.StripQtPrefix})
	rootModule := p.Config.ModuleName
	builder := gogen.NewBuilder(p.DB, resolver, rootModule)
	builder.Run()
	return nil
}
