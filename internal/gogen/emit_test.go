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
	"bytes"
	"strings"
	"testing"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/database"
	"github.com/cppbind/cppbind/internal/tlitem"
)

func TestEmitModuleWritesStruct(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	e := db.AddCppItem(cppitem.Type{P: cpppath.FromName("Widget"), Kind: cppitem.TypeClass}, cppitem.SourceParser)
	e.SetTLItem(tlitem.Item{
		Path: tlitem.KindStruct,
		Struct: &tlitem.Struct{
			Path:      tlitem.Path{Segments: []string{"root", "Widget"}},
			Deletable: true,
		},
	})

	var buf bytes.Buffer
	w := &Writer{PackageName: "acme"}
	if err := w.EmitModule(&buf, db, "root"); err != nil {
		t.Fatalf("EmitModule() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "type Widget struct") {
		t.Errorf("expected the struct definition, got:\n%s", out)
	}
	if !strings.Contains(out, "func (v *Widget) Delete()") {
		t.Errorf("a deletable struct should get a Delete method, got:\n%s", out)
	}
}

func TestEmitModuleWritesEnum(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	e := db.AddCppItem(cppitem.Type{P: cpppath.FromName("Color"), Kind: cppitem.TypeEnum}, cppitem.SourceParser)
	e.SetTLItem(tlitem.Item{
		Path: tlitem.KindEnum,
		Enum: &tlitem.Enum{
			Path:     tlitem.Path{Segments: []string{"root", "Color"}},
			Variants: []tlitem.EnumVariant{{Name: "Red", Value: 0}, {Name: "Blue", Value: 1}},
		},
	})

	var buf bytes.Buffer
	w := &Writer{PackageName: "acme"}
	if err := w.EmitModule(&buf, db, "root"); err != nil {
		t.Fatalf("EmitModule() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "type Color int32") {
		t.Errorf("expected the enum type definition, got:\n%s", out)
	}
	if !strings.Contains(out, "ColorRed Color = 0") || !strings.Contains(out, "ColorBlue Color = 1") {
		t.Errorf("expected both prefixed variant constants, got:\n%s", out)
	}
}

func TestEmitModuleWritesMethodWithReceiver(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	e := db.AddCppItem(cppitem.CppFunction{P: cpppath.FromName("Widget::resize"), Member: &cppitem.MemberData{}}, cppitem.SourceParser)
	e.SetTLItem(tlitem.Item{
		Path: tlitem.KindFunction,
		Function: &tlitem.Function{
			Path:    tlitem.Path{Segments: []string{"root", "Widget", "Resize"}, Kind: tlitem.Inherent},
			Self:    tlitem.SelfExclusive,
			FfiPath: "ffi_Widget_resize",
		},
	})

	var buf bytes.Buffer
	w := &Writer{PackageName: "acme"}
	if err := w.EmitModule(&buf, db, "root"); err != nil {
		t.Fatalf("EmitModule() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "func (v *Widget) Resize()") {
		t.Errorf("expected a method with a Widget receiver, got:\n%s", out)
	}
	if !strings.Contains(out, "C.ffi_Widget_resize(v.ptr)") {
		t.Errorf("expected a real call through to the FFI symbol, got:\n%s", out)
	}
	if !strings.Contains(out, "extern void ffi_Widget_resize(void*);") {
		t.Errorf("expected an extern C declaration for the FFI symbol, got:\n%s", out)
	}
}

func TestEmitModuleFiltersByModulePath(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	e := db.AddCppItem(cppitem.Type{P: cpppath.FromName("Widget"), Kind: cppitem.TypeClass}, cppitem.SourceParser)
	e.SetTLItem(tlitem.Item{
		Path:   tlitem.KindStruct,
		Struct: &tlitem.Struct{Path: tlitem.Path{Segments: []string{"other", "Widget"}}},
	})

	var buf bytes.Buffer
	w := &Writer{PackageName: "acme"}
	if err := w.EmitModule(&buf, db, "root"); err != nil {
		t.Fatalf("EmitModule() error = %v", err)
	}
	if strings.Contains(buf.String(), "Widget") {
		t.Errorf("an entry scoped to a different module should not be emitted, got:\n%s", buf.String())
	}
}

func TestEmitModuleWritesUpcastMethod(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	e := db.AddCppItem(cppitem.ClassBase{
		Derived: cpppath.FromName("Derived"),
		Base:    cpppath.FromName("Base"),
	}, cppitem.SourceParser)
	e.SetTLItem(tlitem.Item{
		Path: tlitem.KindFunction,
		Function: &tlitem.Function{
			Path:    tlitem.Path{Segments: []string{"root", "Derived", "AsBase"}, Kind: tlitem.BaseCast},
			Self:    tlitem.SelfShared,
			Return:  "*Base",
			FfiPath: "ffi_static_cast_up_Base_Derived",
		},
	})

	var buf bytes.Buffer
	w := &Writer{PackageName: "acme"}
	if err := w.EmitModule(&buf, db, "root"); err != nil {
		t.Fatalf("EmitModule() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "func (v *Derived) AsBase() *Base {") {
		t.Errorf("expected an upcast method with a Derived receiver, got:\n%s", out)
	}
	if !strings.Contains(out, "result := C.ffi_static_cast_up_Base_Derived(v.ptr)") {
		t.Errorf("expected a real call through to the FFI symbol, got:\n%s", out)
	}
	if !strings.Contains(out, "return &Base{ptr: result}") {
		t.Errorf("expected the result wrapped back into a *Base, got:\n%s", out)
	}
}

func TestReceiverForOmitsForFreeFunction(t *testing.T) {
	fn := &tlitem.Function{Path: tlitem.Path{Segments: []string{"root", "DoThing"}}, Self: tlitem.SelfNone}
	if got := receiverFor(fn); got != "" {
		t.Errorf("receiverFor()=%q, want empty for a free function", got)
	}
}
