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

// Package cppparser implements the cpp_parser pipeline step: walking a
// translation unit and depositing C++ items into the database. The
// core only needs the narrow Parser interface; TreeSitterParser is one
// concrete implementation, grounded on other_examples' go-context-query
// "pkg/extractor/cpp.go", which walks a C++ translation unit with
// github.com/smacker/go-tree-sitter and its cpp grammar binding the
// same way this package does.
package cppparser

import (
	"context"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/pkg/errors"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
)

// Request bundles what the parser needs: the configured include
// directives and paths and a generated single-translation-unit.cpp
// file.
type Request struct {
	TranslationUnitPath string
	Source []byte
	IncludeDirectives []string
	IncludePaths []string
	TargetIncludePaths []string // carried with the request; Parse does not filter by it
}

// Result is everything the parser deposits for one translation unit.
type Result struct {
	Items []cppitem.Item
}

// Parser is the narrow interface the rest of the pipeline depends on,
// so a tree-sitter-backed implementation can be swapped for a
// libclang-backed one without touching any later step.
type Parser interface {
	Parse(ctx context.Context, req Request) (Result, error)
}

// TreeSitterParser implements Parser using go-tree-sitter's C++
// grammar. It only extracts syntax (tree-sitter does not type-check,
// so semantic guarantees like "every type reported in canonical form"
// are enforced by the walker below, not by the grammar).
type TreeSitterParser struct {
	// TargetRoots lists target include roots. Parse does not read it:
	// every declaration in the translation unit is reported, whatever
	// its source file.
	TargetRoots []string
}

// Parse implements Parser.
func (p *TreeSitterParser) Parse(ctx context.Context, req Request) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, req.Source)
	if err != nil {
		return Result{}, errors.Wrapf(err, "while parsing %s", req.TranslationUnitPath)
	}
	if tree == nil {
		return Result{}, errors.Errorf("tree-sitter returned no tree for %s", req.TranslationUnitPath)
	}
	defer tree.Close()

	w := &walker{source: req.Source, file: req.TranslationUnitPath}
	w.walk(tree.RootNode(), nil)
	return Result{Items: w.items}, nil
}

// walker descends the tree-sitter parse tree accumulating C++ items.
// It is deliberately small: full semantic analysis (template argument
// resolution, overload disambiguation, access checking beyond the
// syntactic public:/private:/protected: labels) lives in later pipeline
// steps that operate on the already-deposited cppitem values — the
// parser's only job is faithful syntactic extraction. Declarations the
// walker cannot express in cppitem's model (free variables, arrays,
// anonymous unions, bitfields) are silently skipped rather than
// reported half-built.
type walker struct {
	source []byte
	file string
	items []cppitem.Item

	namespace []string
	classPath []string
	visibility cppitem.Visibility

	// enumPaths records every enum path seen so far (by rendered
	// string), so a later reference to that name can be classified as
	// KindEnum instead of the KindClass default.
	enumPaths map[string]bool
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.source)
}

func (w *walker) walk(n *sitter.Node, _ *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "namespace_definition":
		name := w.text(n.ChildByFieldName("name"))
		w.namespace = append(w.namespace, name)
		w.walkChildren(n)
		w.namespace = w.namespace[:len(w.namespace)-1]
		return
	case "class_specifier", "struct_specifier":
		w.enterClass(n)
		return
	case "access_specifier":
		w.visibility = parseVisibility(w.text(n))
		return
	case "enum_specifier":
		w.addEnum(n)
		return
	case "base_class_clause":
		w.addBases(n)
		return
	case "function_definition":
		w.addFunction(n)
		return
	case "field_declaration":
		w.addField(n)
		return
	case "declaration":
		w.addFreeDeclaration(n)
		return
	}
	w.walkChildren(n)
}

func (w *walker) walkChildren(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		w.walk(n.Child(i), n)
	}
}

func parseVisibility(s string) cppitem.Visibility {
	switch s {
	case "private:":
		return cppitem.Private
	case "protected:":
		return cppitem.Protected
	default:
		return cppitem.Public
	}
}

func (w *walker) enterClass(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	if name == "" {
		return // anonymous: guarantee (i) only covers non-anonymous declarations
	}
	w.classPath = append(w.classPath, name)
	savedVis := w.visibility
	w.visibility = cppitem.Private
	if n.Type() == "struct_specifier" {
		w.visibility = cppitem.Public
	}

	classPath, _ := w.currentClassPath()
	typeIdx := len(w.items)
	w.items = append(w.items, cppitem.Type{P: classPath, Kind: cppitem.TypeClass})

	w.walkChildren(n)

	// A class is polymorphic if it declares at least one virtual member;
	// inherited virtuals are resolved later once the whole database is
	// populated (cast synthesis consults ffi.PolymorphicLookup, not this
	// flag directly, for transitively-inherited virtuality).
	for _, it := range w.items[typeIdx+1:] {
		fn, ok := it.(cppitem.CppFunction)
		if ok && fn.IsMember() && fn.Member.Virtual && fn.ClassPath().Equal(classPath) {
			w.items[typeIdx] = cppitem.Type{P: classPath, Kind: cppitem.TypeClass, Polymorphic: true}
			break
		}
	}

	w.visibility = savedVis
	w.classPath = w.classPath[:len(w.classPath)-1]
}

func (w *walker) addEnum(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	if name == "" {
		return // anonymous enum: no stable path to report it under
	}
	enumPath := w.pathFor(name)
	w.items = append(w.items, cppitem.Type{P: enumPath, Kind: cppitem.TypeEnum})
	if w.enumPaths == nil {
		w.enumPaths = map[string]bool{}
	}
	w.enumPaths[enumPath.String()] = true

	body := n.ChildByFieldName("body")
	if body == nil {
		return // forward declaration or a use of a previously-declared enum
	}
	next := int64(0)
	for i := 0; i < int(body.ChildCount()); i++ {
		c := body.Child(i)
		if c == nil || c.Type() != "enumerator" {
			continue
		}
		valueName := w.text(c.ChildByFieldName("name"))
		if valueName == "" {
			continue
		}
		value := next
		if valNode := c.ChildByFieldName("value"); valNode != nil {
			if v, err := strconv.ParseInt(strings.TrimSpace(w.text(valNode)), 0, 64); err == nil {
				value = v
			}
		}
		w.items = append(w.items, cppitem.EnumValue{P: enumPath.Join(cpppath.Item{Name: valueName}), Value: value})
		next = value + 1
	}
}

// addBases reports one ClassBase per base specifier in a
// "class Derived : public Base1, private Base2" clause, in declared
// order (BaseIndex), picking up each base's own access specifier or
// falling back to the class's default (private for class, public for
// struct).
func (w *walker) addBases(n *sitter.Node) {
	derived, ok := w.currentClassPath()
	if !ok {
		return
	}
	defaultVis := w.visibility
	vis := defaultVis
	virtual := false
	index := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "public":
			vis = cppitem.Public
		case "private":
			vis = cppitem.Private
		case "protected":
			vis = cppitem.Protected
		case "virtual":
			virtual = true
		case "type_identifier", "qualified_identifier", "scoped_type_identifier", "template_type":
			base := w.qualifyName(w.text(c))
			w.items = append(w.items, cppitem.ClassBase{
				Derived: derived, Base: base, BaseIndex: index,
				IsVirtual: virtual, Visibility: vis,
			})
			index++
			vis = defaultVis
			virtual = false
		}
	}
}

// addFunction handles a function_definition node: a free function or
// an inline-bodied method. Out-of-line method definitions
// ("Ret Class::method(...) {}") are recognised through the
// qualified_identifier declarator and attributed to that class even
// though classPath is empty at this point in the walk.
func (w *walker) addFunction(n *sitter.Node) {
	base := w.typeFromNode(n.ChildByFieldName("type"))
	virtual, static, _ := w.scanModifiers(n)
	r := w.resolveDeclarator(n.ChildByFieldName("declarator"), base)
	if r.name == "" || !r.isFunc {
		return
	}

	ownerSegs, inClass := w.classScopeFor(r.qualifier)
	segs := append(append([]string(nil), w.namespace...), ownerSegs...)
	segs = append(segs, r.name)

	fn := cppitem.CppFunction{P: segsToPath(segs), Return: r.typ, Decl: w.text(n)}
	fn.Arguments, fn.Variadic = w.parseParams(r.params)

	if inClass {
		kind := cppitem.Regular
		switch {
		case r.isDestructor:
			kind = cppitem.Destructor
		case r.name == ownerSegs[len(ownerSegs)-1]:
			kind = cppitem.Constructor
		}
		fn.Member = &cppitem.MemberData{
			Kind: kind, Virtual: virtual, Const: r.constMethod,
			Static: static, Visibility: w.visibility,
		}
	}
	w.items = append(w.items, fn)
}

// addField handles a field_declaration node: either a data member, or
// (when the declarator is itself a function_declarator) a
// body-less method prototype, including pure-virtual declarations
// ("virtual void f() = 0;").
func (w *walker) addField(n *sitter.Node) {
	classPath, inClass := w.currentClassPath()
	if !inClass {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.Type() == "bitfield_clause" {
			return // bitfields are not modeled
		}
	}
	base := w.typeFromNode(n.ChildByFieldName("type"))
	virtual, static, _ := w.scanModifiers(n)
	r := w.resolveDeclarator(n.ChildByFieldName("declarator"), base)
	if r.name == "" {
		return
	}

	if r.isFunc {
		kind := cppitem.Regular
		switch {
		case r.isDestructor:
			kind = cppitem.Destructor
		case r.name == w.classPath[len(w.classPath)-1]:
			kind = cppitem.Constructor
		}
		args, variadic := w.parseParams(r.params)
		w.items = append(w.items, cppitem.CppFunction{
			P: classPath.Join(cpppath.Item{Name: r.name}),
			Return: r.typ, Arguments: args, Variadic: variadic, Decl: w.text(n),
			Member: &cppitem.MemberData{
				Kind: kind, Virtual: virtual, Const: r.constMethod,
				PureVirtual: virtual && w.hasPureVirtualMarker(n),
				Static: static, Visibility: w.visibility,
			},
		})
		return
	}

	w.items = append(w.items, cppitem.ClassField{
		P: classPath.Join(cpppath.Item{Name: r.name}),
		FieldType: r.typ, Visibility: w.visibility, IsStatic: static,
	})
}

// addFreeDeclaration handles a top-level "declaration" node: a free
// function prototype ("int add(int a, int b);") with no body. Member
// prototypes use field_declaration instead (see addField), so this
// only fires at namespace/global scope; a plain variable declaration
// resolves with isFunc false and is silently skipped, same as a class
// data member's unsupported forms.
func (w *walker) addFreeDeclaration(n *sitter.Node) {
	if len(w.classPath) > 0 {
		return
	}
	base := w.typeFromNode(n.ChildByFieldName("type"))
	r := w.resolveDeclarator(n.ChildByFieldName("declarator"), base)
	if r.name == "" || !r.isFunc {
		return
	}
	args, variadic := w.parseParams(r.params)
	w.items = append(w.items, cppitem.CppFunction{
		P: w.pathFor(r.name),
		Return: r.typ, Arguments: args, Variadic: variadic, Decl: w.text(n),
	})
}

func (w *walker) hasPureVirtualMarker(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.Type() == "number_literal" {
			return true
		}
	}
	return false
}

func (w *walker) scanModifiers(n *sitter.Node) (virtual, static, explicit bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "virtual":
			virtual = true
		case "static":
			static = true
		case "explicit":
			explicit = true
		}
	}
	return
}

// qualifyName resolves a raw type reference (a base-class name, a
// field/parameter/return type) to the path it is reported under
// elsewhere. An already-qualified name ("::Foo", "ns::Foo") is taken
// as written; a bare name is assumed to name a sibling declared in the
// innermost enclosing namespace, since that is how it is almost always
// spelled from inside that namespace. This does not replicate C++
// lookup through enclosing namespaces or using-directives.
func (w *walker) qualifyName(raw string) cpppath.Path {
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.TrimPrefix(raw, "::")
	if strings.Contains(raw, "::") || len(w.namespace) == 0 {
		return cpppath.FromName(raw)
	}
	return segsToPath(append(append([]string(nil), w.namespace...), raw))
}

func (w *walker) pathFor(name string) cpppath.Path {
	segs := append(append([]string(nil), w.namespace...), w.classPath...)
	segs = append(segs, name)
	return segsToPath(segs)
}

func (w *walker) currentClassPath() (cpppath.Path, bool) {
	if len(w.classPath) == 0 {
		return cpppath.Path{}, false
	}
	segs := append(append([]string(nil), w.namespace...), w.classPath...)
	return segsToPath(segs), true
}

// classScopeFor resolves which class, if any, a declarator belongs to:
// the class currently being walked, or (for an out-of-line definition)
// the qualifier prefix of its qualified_identifier declarator.
func (w *walker) classScopeFor(qualifier []string) (segs []string, inClass bool) {
	if len(w.classPath) > 0 {
		return append([]string(nil), w.classPath...), true
	}
	if len(qualifier) > 0 {
		return qualifier, true
	}
	return nil, false
}

func segsToPath(segs []string) cpppath.Path {
	items := make([]cpppath.Item, len(segs))
	for i, s := range segs {
		items[i] = cpppath.Item{Name: s}
	}
	return cpppath.New(items...)
}

// declResult is what resolveDeclarator peels off a (possibly
// pointer/reference/function-wrapped) declarator: the ultimate name,
// the fully-built type around the base type it was given, and —
// for a function declarator — its parameter list node and shape.
type declResult struct {
	name string
	typ cpptype.Type
	qualifier []string // non-nil for a qualified_identifier ("Class::method") declarator
	params *sitter.Node
	isFunc bool
	isDestructor bool
	constMethod bool
}

func (w *walker) resolveDeclarator(n *sitter.Node, base cpptype.Type) declResult {
	if n == nil {
		return declResult{typ: base}
	}
	switch n.Type() {
	case "identifier", "field_identifier", "type_identifier", "operator_name":
		return declResult{name: w.text(n), typ: base}
	case "destructor_name":
		name := w.text(n)
		if name != "" && name[0] != '~' {
			name = "~" + name
		}
		return declResult{name: name, typ: base, isDestructor: true}
	case "qualified_identifier":
		parts := strings.Split(w.text(n), "::")
		return declResult{name: parts[len(parts)-1], typ: base, qualifier: parts[:len(parts)-1]}
	case "pointer_declarator":
		r := w.resolveDeclarator(w.firstNonPunct(n, "*"), base)
		r.typ = cpptype.NewPointerLike(cpptype.Pointer, w.childTextEquals(n, "const"), r.typ)
		return r
	case "reference_declarator":
		r := w.resolveDeclarator(w.firstNonPunct(n, "&", "&&"), base)
		r.typ = cpptype.NewPointerLike(cpptype.Reference, false, r.typ)
		return r
	case "parenthesized_declarator":
		return w.resolveDeclarator(w.firstNonPunct(n, "(", ")"), base)
	case "array_declarator":
		// Arrays are not modeled: an empty name makes the caller skip it.
		return declResult{typ: base}
	case "function_declarator":
		r := w.resolveDeclarator(n.ChildByFieldName("declarator"), base)
		r.isFunc = true
		r.params = n.ChildByFieldName("parameters")
		r.constMethod = w.childTextEquals(n, "const")
		return r
	default:
		return declResult{name: w.text(n), typ: base}
	}
}

func (w *walker) firstNonPunct(n *sitter.Node, skip ...string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		text := w.text(c)
		matched := false
		for _, s := range skip {
			if text == s || c.Type() == s {
				matched = true
				break
			}
		}
		if !matched {
			return c
		}
	}
	return nil
}

func (w *walker) childTextEquals(n *sitter.Node, text string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && w.text(c) == text {
			return true
		}
	}
	return false
}

func (w *walker) parseParams(params *sitter.Node) ([]cppitem.Argument, bool) {
	if params == nil {
		return nil, false
	}
	var args []cppitem.Argument
	variadic := false
	for i := 0; i < int(params.ChildCount()); i++ {
		c := params.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "parameter_declaration", "optional_parameter_declaration":
			base := w.typeFromNode(c.ChildByFieldName("type"))
			r := w.resolveDeclarator(c.ChildByFieldName("declarator"), base)
			args = append(args, cppitem.Argument{
				Name: r.name, Type: r.typ,
				HasDefault: c.ChildByFieldName("default_value") != nil,
			})
		case "variadic_parameter":
			variadic = true
		}
	}
	return args, variadic
}

func (w *walker) typeFromNode(n *sitter.Node) cpptype.Type {
	if n == nil {
		return cpptype.Void
	}
	switch n.Type() {
	case "primitive_type", "sized_type_specifier":
		return builtinFromText(w.text(n))
	case "type_identifier", "qualified_identifier", "scoped_type_identifier", "dependent_type_identifier", "template_type":
		path := w.qualifyName(w.text(n))
		if w.enumPaths[path.String()] {
			return cpptype.NewEnum(path)
		}
		return cpptype.NewClass(path)
	case "struct_specifier", "class_specifier":
		return cpptype.NewClass(cpppath.FromName(w.text(n.ChildByFieldName("name"))))
	default:
		return cpptype.Void
	}
}

var builtinByText = map[string]cpptype.BuiltIn{
	"bool": cpptype.Bool,
	"char": cpptype.SChar, "signed char": cpptype.SChar,
	"unsigned char": cpptype.UChar,
	"wchar_t": cpptype.WChar, "char16_t": cpptype.Char16, "char32_t": cpptype.Char32,
	"short": cpptype.Short, "short int": cpptype.Short,
	"unsigned short": cpptype.UShort, "unsigned short int": cpptype.UShort,
	"int": cpptype.Int,
	"unsigned": cpptype.UInt, "unsigned int": cpptype.UInt,
	"long": cpptype.Long, "long int": cpptype.Long,
	"unsigned long": cpptype.ULong, "unsigned long int": cpptype.ULong,
	"long long": cpptype.LongLong, "long long int": cpptype.LongLong,
	"unsigned long long": cpptype.ULongLong, "unsigned long long int": cpptype.ULongLong,
	"float": cpptype.Float,
	"double": cpptype.Double,
	"long double": cpptype.LongDouble,
}

func builtinFromText(s string) cpptype.Type {
	s = strings.Join(strings.Fields(s), " ")
	if s == "void" {
		return cpptype.Void
	}
	if b, ok := builtinByText[s]; ok {
		return cpptype.NewBuiltIn(b)
	}
	return cpptype.Void
}
