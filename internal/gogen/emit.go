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

package gogen

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cppbind/cppbind/internal/database"
	"github.com/cppbind/cppbind/internal/tlitem"
)

// Writer renders a database's resolved tlitem entries as one Go source
// file per module, in the style of kati's NinjaGenerator: direct
// fmt.Fprintf calls against an io.Writer, no templating layer.
type Writer struct {
	PackageName string
}

// EmitModule writes the Go source for one module (identified by the
// first segment of its items' TL paths) containing every struct, enum,
// and function entry whose resolved path is scoped to it. Every
// function wrapper calls through to its FFI symbol via cgo, declared in
// the preamble emitted here.
func (w *Writer) EmitModule(out io.Writer, db *database.Database, modulePath string) error {
	entries := entriesInModule(db, modulePath)
	fmt.Fprintf(out, "// Code generated by cppbind. DO NOT EDIT.\n\n")
	fmt.Fprintf(out, "package %s\n\n", w.PackageName)

	fmt.Fprintf(out, "/*\n#include <stdint.h>\n\n")
	for _, decl := range ffiPrototypes(entries) {
		fmt.Fprintf(out, "%s\n", decl)
	}
	fmt.Fprintf(out, "*/\nimport \"C\"\n\nimport \"unsafe\"\n\n")
	fmt.Fprintf(out, "func boolToCInt(b bool) C.int {\n\tif b {\n\t\treturn 1\n\t}\n\treturn 0\n}\n\n")

	for _, e := range entries {
		if e.TLItem == nil {
			continue
		}
		switch e.TLItem.Path {
		case tlitem.KindEnum:
			writeEnum(out, e.TLItem)
		case tlitem.KindStruct:
			writeStruct(out, e.TLItem)
		}
	}
	for _, e := range entries {
		if e.TLItem == nil || e.TLItem.Path != tlitem.KindFunction {
			continue
		}
		writeFunction(out, e.TLItem)
	}
	return nil
}

func entriesInModule(db *database.Database, modulePath string) []*database.Entry {
	var out []*database.Entry
	for _, e := range db.Entries() {
		if e.TLItem == nil {
			continue
		}
		if moduleOfItem(e.TLItem) != modulePath {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return pathOfItem(out[i].TLItem) < pathOfItem(out[j].TLItem)
	})
	return out
}

func moduleOfItem(item *tlitem.Item) string {
	segs := pathSegmentsOf(item)
	if len(segs) <= 1 {
		return ""
	}
	return segs[0]
}

func pathSegmentsOf(item *tlitem.Item) []string {
	switch item.Path {
	case tlitem.KindModule:
		return item.Module.Path.Segments
	case tlitem.KindStruct:
		return item.Struct.Path.Segments
	case tlitem.KindEnum:
		return item.Enum.Path.Segments
	case tlitem.KindFunction:
		return item.Function.Path.Segments
	default:
		return nil
	}
}

func pathOfItem(item *tlitem.Item) string {
	return strings.Join(pathSegmentsOf(item), ".")
}

func writeDoc(out io.Writer, name, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		fmt.Fprintf(out, "// %s\n", line)
	}
}

func writeEnum(out io.Writer, item *tlitem.Item) {
	en := item.Enum
	name := en.Path.Segments[len(en.Path.Segments)-1]
	writeDoc(out, name, item.Doc)
	fmt.Fprintf(out, "type %s int32\n\n", name)
	fmt.Fprintf(out, "const (\n")
	for _, v := range en.Variants {
		if v.Doc != "" {
			fmt.Fprintf(out, "\t// %s\n", strings.TrimSpace(v.Doc))
		}
		fmt.Fprintf(out, "\t%s%s %s = %d\n", name, v.Name, name, v.Value)
	}
	fmt.Fprintf(out, ")\n\n")
}

func writeStruct(out io.Writer, item *tlitem.Item) {
	st := item.Struct
	name := st.Path.Segments[len(st.Path.Segments)-1]
	writeDoc(out, name, item.Doc)
	fmt.Fprintf(out, "type %s struct {\n\tptr unsafe.Pointer\n}\n\n", name)
	if st.Deletable {
		fmt.Fprintf(out, "// Delete releases the underlying C++ object. Calling any method on\n")
		fmt.Fprintf(out, "// %s after Delete is undefined behavior.\n", name)
		fmt.Fprintf(out, "func (v *%s) Delete() {\n\tv.ptr = nil\n}\n\n", name)
	}
}

func writeFunction(out io.Writer, item *tlitem.Item) {
	fn := item.Function
	name := fn.Path.Segments[len(fn.Path.Segments)-1]
	writeDoc(out, name, item.Doc)

	recv := ""
	switch fn.Path.Kind {
	case tlitem.Inherent, tlitem.BaseCast:
		recv = receiverFor(fn)
	}

	var params []string
	var callArgs []string
	if recv != "" {
		callArgs = append(callArgs, "v.ptr")
	}
	for _, a := range fn.Args {
		params = append(params, a.Name+" "+a.Type)
		callArgs = append(callArgs, cArgExpr(a))
	}
	ret := ""
	if fn.Return != "" {
		ret = " " + fn.Return
	}
	fmt.Fprintf(out, "func %s%s(%s)%s {\n", recv, name, strings.Join(params, ", "), ret)

	call := fmt.Sprintf("C.%s(%s)", fn.FfiPath, strings.Join(callArgs, ", "))
	if fn.Return == "" {
		fmt.Fprintf(out, "\t%s\n", call)
	} else {
		fmt.Fprintf(out, "\tresult := %s\n", call)
		fmt.Fprintf(out, "\treturn %s\n", cResultExpr("result", fn.Return))
	}
	fmt.Fprintf(out, "}\n\n")
}

func receiverFor(fn *tlitem.Function) string {
	if fn.Self == tlitem.SelfNone || len(fn.Path.Segments) < 2 {
		return ""
	}
	typeName := fn.Path.Segments[len(fn.Path.Segments)-2]
	return "(v *" + typeName + ") "
}

// ffiPrototypes collects one extern C declaration per distinct FFI
// symbol called from entries, sorted for deterministic output.
func ffiPrototypes(entries []*database.Entry) []string {
	seen := map[string]bool{}
	var decls []string
	for _, e := range entries {
		if e.TLItem == nil || e.TLItem.Path != tlitem.KindFunction {
			continue
		}
		fn := e.TLItem.Function
		if seen[fn.FfiPath] {
			continue
		}
		seen[fn.FfiPath] = true
		decls = append(decls, ffiPrototype(fn))
	}
	sort.Strings(decls)
	return decls
}

func ffiPrototype(fn *tlitem.Function) string {
	var params []string
	hasReceiver := (fn.Path.Kind == tlitem.Inherent || fn.Path.Kind == tlitem.BaseCast) && receiverFor(fn) != ""
	if hasReceiver {
		params = append(params, "void*")
	}
	for _, a := range fn.Args {
		params = append(params, cDeclType(a.Type))
	}
	if len(params) == 0 {
		params = append(params, "void")
	}
	return fmt.Sprintf("extern %s %s(%s);", cDeclType(fn.Return), fn.FfiPath, strings.Join(params, ", "))
}

// cArgExpr renders the cgo-side expression passed for a wrapper
// argument of Go type a.Type: struct wrappers unwrap their ptr field,
// bool goes through boolToCInt, everything else is a direct C numeric
// cast (an enum or Flags[...] value is cast the same way a plain
// numeric is, since both are fixed-width integers underneath).
func cArgExpr(a tlitem.FunctionArg) string {
	switch {
	case a.Type == "unsafe.Pointer":
		return a.Name
	case strings.HasPrefix(a.Type, "*"):
		return a.Name + ".ptr"
	case a.Type == "bool":
		return "boolToCInt(" + a.Name + ")"
	default:
		return cCastType(a.Type) + "(" + a.Name + ")"
	}
}

// cResultExpr renders the Go expression that converts a raw cgo call
// result back to the wrapper's return type.
func cResultExpr(expr, goType string) string {
	switch {
	case goType == "unsafe.Pointer":
		return expr
	case strings.HasPrefix(goType, "*"):
		return "&" + strings.TrimPrefix(goType, "*") + "{ptr: " + expr + "}"
	case goType == "bool":
		return expr + " != 0"
	default:
		return goType + "(" + expr + ")"
	}
}

// cCastType names the C.<type> cgo uses to call into the FFI symbol for
// a given wrapper-side Go type.
func cCastType(goType string) string {
	switch goType {
	case "int16":
		return "C.int16_t"
	case "uint16":
		return "C.uint16_t"
	case "int32":
		return "C.int32_t"
	case "uint32":
		return "C.uint32_t"
	case "int64":
		return "C.int64_t"
	case "uint64":
		return "C.uint64_t"
	case "float32":
		return "C.float"
	case "float64":
		return "C.double"
	default:
		return "C.int32_t" // enum or Flags[...]: fixed-width lowering
	}
}

// cDeclType names the C type used in the extern prototype for a given
// wrapper-side Go type.
func cDeclType(goType string) string {
	switch goType {
	case "":
		return "void"
	case "bool":
		return "int"
	case "int16":
		return "int16_t"
	case "uint16":
		return "uint16_t"
	case "int32":
		return "int32_t"
	case "uint32":
		return "uint32_t"
	case "int64":
		return "int64_t"
	case "uint64":
		return "uint64_t"
	case "float32":
		return "float"
	case "float64":
		return "double"
	case "unsafe.Pointer":
		return "void*"
	}
	if strings.HasPrefix(goType, "*") {
		return "void*"
	}
	return "int32_t" // enum or Flags[...]: fixed-width lowering
}
