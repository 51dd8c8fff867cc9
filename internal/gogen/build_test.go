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
	"testing"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/cpptype"
	"github.com/cppbind/cppbind/internal/database"
	"github.com/cppbind/cppbind/internal/ffi"
	"github.com/cppbind/cppbind/internal/nameresolve"
	"github.com/cppbind/cppbind/internal/tlitem"
)

func TestBuilderRunAssignsModuleAndStruct(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	db.AddCppItem(cppitem.Namespace{P: cpppath.FromName("Acme")}, cppitem.SourceParser)
	db.AddCppItem(cppitem.Type{P: cpppath.FromName("Acme::Widget"), Kind: cppitem.TypeClass}, cppitem.SourceParser)

	resolver := nameresolve.New(nameresolve.Config{})
	b := NewBuilder(db, resolver, "root")
	b.Run()

	var sawModule, sawStruct bool
	for _, e := range db.Entries() {
		if e.TLItem == nil {
			continue
		}
		switch e.TLItem.Path {
		case tlitem.KindModule:
			sawModule = true
		case tlitem.KindStruct:
			sawStruct = true
		}
	}
	if !sawModule {
		t.Errorf("expected a module TL item to be assigned to the namespace entry")
	}
	if !sawStruct {
		t.Errorf("expected a struct TL item to be assigned to the class entry")
	}
}

func TestBuilderRunRendersFreeFunction(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	fnEntry := db.AddCppItem(cppitem.CppFunction{
		P:      cpppath.FromName("doThing"),
		Return: cpptype.Void,
	}, cppitem.SourceParser)
	fnEntry.AddCheckResult(db, database.Environment{OS: "linux"}, "")
	fnEntry.SetFFIItems([]ffi.Item{{
		Function: &ffi.Function{
			Path:   cpppath.FromName("ffi_doThing"),
			Return: ffi.Type{Original: cpptype.Void, Lowered: cpptype.Void},
			Kind:   ffi.KindPlainFunction,
			Plain:  &ffi.PlainFunctionData{Origin: cppitem.CppFunction{P: cpppath.FromName("doThing")}},
		},
	}})

	resolver := nameresolve.New(nameresolve.Config{})
	b := NewBuilder(db, resolver, "root")
	b.Run()

	if fnEntry.TLItem == nil {
		t.Fatalf("expected the free function entry to get a TL item")
	}
	if fnEntry.TLItem.Function == nil {
		t.Fatalf("expected the TL item to carry a rendered Function")
	}
	if fnEntry.TLItem.Function.FfiPath != "ffi_doThing" {
		t.Errorf("FfiPath=%q, want %q", fnEntry.TLItem.Function.FfiPath, "ffi_doThing")
	}
}

func TestBuilderRunSkipsFunctionsThatHaveNotPassedChecks(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	fnEntry := db.AddCppItem(cppitem.CppFunction{
		P:      cpppath.FromName("doThing"),
		Return: cpptype.Void,
	}, cppitem.SourceParser)
	fnEntry.SetFFIItems([]ffi.Item{{
		Function: &ffi.Function{
			Path:  cpppath.FromName("ffi_doThing"),
			Kind:  ffi.KindPlainFunction,
			Plain: &ffi.PlainFunctionData{Origin: cppitem.CppFunction{P: cpppath.FromName("doThing")}},
		},
	}})

	resolver := nameresolve.New(nameresolve.Config{})
	b := NewBuilder(db, resolver, "root")
	b.Run()

	if fnEntry.TLItem != nil {
		t.Errorf("a function with no passing check result should not be rendered")
	}
}

func TestBuilderRunRendersUpcastAsMethod(t *testing.T) {
	db := database.New("acme", "1.0", nil)
	db.AddCppItem(cppitem.Type{P: cpppath.FromName("Base"), Kind: cppitem.TypeClass}, cppitem.SourceParser)
	db.AddCppItem(cppitem.Type{P: cpppath.FromName("Derived"), Kind: cppitem.TypeClass}, cppitem.SourceParser)
	baseEntry := db.AddCppItem(cppitem.ClassBase{
		Derived: cpppath.FromName("Derived"),
		Base:    cpppath.FromName("Base"),
	}, cppitem.SourceParser)
	baseEntry.SetFFIItems([]ffi.Item{
		{Function: &ffi.Function{
			Path:  cpppath.FromName("ffi_static_cast_down_Base_Derived"),
			Kind:  ffi.KindPlainFunction,
			Plain: &ffi.PlainFunctionData{Cast: &ffi.CastDescriptor{Kind: ffi.CastStatic, Unsafe: true}},
		}},
		{Function: &ffi.Function{
			Path:  cpppath.FromName("ffi_static_cast_up_Base_Derived"),
			Kind:  ffi.KindPlainFunction,
			Plain: &ffi.PlainFunctionData{Cast: &ffi.CastDescriptor{Kind: ffi.CastStatic, Unsafe: false}},
		}},
	})

	resolver := nameresolve.New(nameresolve.Config{})
	b := NewBuilder(db, resolver, "root")
	b.Run()

	if baseEntry.TLItem == nil || baseEntry.TLItem.Function == nil {
		t.Fatalf("expected the ClassBase entry to get a rendered upcast function")
	}
	fn := baseEntry.TLItem.Function
	if fn.FfiPath != "ffi_static_cast_up_Base_Derived" {
		t.Errorf("FfiPath=%q, want the upcast symbol, not the downcast one", fn.FfiPath)
	}
	if fn.Return != "*Base" {
		t.Errorf("Return=%q, want %q", fn.Return, "*Base")
	}
	if got, want := fn.Path.Segments[len(fn.Path.Segments)-2], "Derived"; got != want {
		t.Errorf("receiver type segment=%q, want %q", got, want)
	}
}
