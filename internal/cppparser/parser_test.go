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

package cppparser

import (
	"context"
	"testing"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpptype"
)

func TestParseVisibility(t *testing.T) {
	cases := []struct {
		in   string
		want cppitem.Visibility
	}{
		{"private:", cppitem.Private},
		{"protected:", cppitem.Protected},
		{"public:", cppitem.Public},
		{"", cppitem.Public},
	}
	for _, c := range cases {
		if got := parseVisibility(c.in); got != c.want {
			t.Errorf("parseVisibility(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestWalkerTextHandlesNilNode(t *testing.T) {
	w := &walker{}
	if got := w.text(nil); got != "" {
		t.Errorf("text(nil)=%q, want empty", got)
	}
}

const sampleSource = `
namespace acme {

enum Color { Red, Green, Blue = 5 };

class Base {
public:
	virtual ~Base();
};

class Widget : public Base {
public:
	Widget(int w);
	virtual void resize(int w, int h);
	int width() const;
private:
	int width_;
};

int add(int a, int b);

}
`

func parseSample(t *testing.T) []cppitem.Item {
	t.Helper()
	p := &TreeSitterParser{}
	res, err := p.Parse(context.Background(), Request{
		TranslationUnitPath: "sample.cpp",
		Source:              []byte(sampleSource),
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Items) == 0 {
		t.Fatalf("Parse() reported no items at all")
	}
	return res.Items
}

func findItem(items []cppitem.Item, path string) cppitem.Item {
	for _, it := range items {
		if it.Path().String() == path {
			return it
		}
	}
	return nil
}

func TestParseReportsEnumAndItsValues(t *testing.T) {
	items := parseSample(t)

	typ := findItem(items, "acme::Color")
	ty, ok := typ.(cppitem.Type)
	if !ok || ty.Kind != cppitem.TypeEnum {
		t.Fatalf("acme::Color = %#v, want a TypeEnum Type item", typ)
	}

	cases := []struct {
		path string
		want int64
	}{
		{"acme::Color::Red", 0},
		{"acme::Color::Green", 1},
		{"acme::Color::Blue", 5},
	}
	for _, c := range cases {
		v, ok := findItem(items, c.path).(cppitem.EnumValue)
		if !ok {
			t.Errorf("%s not reported as an EnumValue", c.path)
			continue
		}
		if v.Value != c.want {
			t.Errorf("%s value = %d, want %d", c.path, v.Value, c.want)
		}
	}
}

func TestParseReportsPolymorphicClasses(t *testing.T) {
	items := parseSample(t)

	for _, path := range []string{"acme::Base", "acme::Widget"} {
		ty, ok := findItem(items, path).(cppitem.Type)
		if !ok || ty.Kind != cppitem.TypeClass {
			t.Fatalf("%s not reported as a class Type item", path)
		}
		if !ty.Polymorphic {
			t.Errorf("%s: Polymorphic = false, want true (it declares a virtual member)", path)
		}
	}
}

func TestParseReportsBaseClass(t *testing.T) {
	items := parseSample(t)

	for _, it := range items {
		b, ok := it.(cppitem.ClassBase)
		if !ok {
			continue
		}
		if b.Derived.String() != "acme::Widget" || b.Base.String() != "acme::Base" {
			continue
		}
		if b.Visibility != cppitem.Public {
			t.Errorf("acme::Widget's base acme::Base visibility = %v, want Public", b.Visibility)
		}
		return
	}
	t.Fatalf("no ClassBase reported for acme::Widget : public acme::Base")
}

func TestParseReportsConstructorAndMembers(t *testing.T) {
	items := parseSample(t)

	ctor, ok := findItem(items, "acme::Widget::Widget").(cppitem.CppFunction)
	if !ok || !ctor.IsMember() || ctor.Member.Kind != cppitem.Constructor {
		t.Fatalf("acme::Widget::Widget = %#v, want a Constructor CppFunction", ctor)
	}
	if len(ctor.Arguments) != 1 || ctor.Arguments[0].Name != "w" {
		t.Errorf("Widget(int w) arguments = %#v, want a single arg named w", ctor.Arguments)
	}

	resize, ok := findItem(items, "acme::Widget::resize").(cppitem.CppFunction)
	if !ok || !resize.IsMember() {
		t.Fatalf("acme::Widget::resize = %#v, want a member CppFunction", resize)
	}
	if !resize.Member.Virtual {
		t.Errorf("resize: Virtual = false, want true")
	}
	if len(resize.Arguments) != 2 {
		t.Errorf("resize arguments = %#v, want 2 args", resize.Arguments)
	}

	width, ok := findItem(items, "acme::Widget::width").(cppitem.CppFunction)
	if !ok || !width.Member.Const {
		t.Fatalf("acme::Widget::width = %#v, want a const member function", width)
	}
	if width.Return.Kind != cpptype.KindBuiltInNumeric || width.Return.BuiltIn != cpptype.Int {
		t.Errorf("width() return type = %#v, want built-in int", width.Return)
	}
}

func TestParseReportsDestructor(t *testing.T) {
	items := parseSample(t)

	dtor, ok := findItem(items, "acme::Base::~Base").(cppitem.CppFunction)
	if !ok || !dtor.IsMember() || dtor.Member.Kind != cppitem.Destructor {
		t.Fatalf("acme::Base::~Base = %#v, want a Destructor CppFunction", dtor)
	}
	if !dtor.Member.Virtual {
		t.Errorf("~Base: Virtual = false, want true")
	}
}

func TestParseReportsDataMember(t *testing.T) {
	items := parseSample(t)

	field, ok := findItem(items, "acme::Widget::width_").(cppitem.ClassField)
	if !ok {
		t.Fatalf("acme::Widget::width_ = %#v, want a ClassField", field)
	}
	if field.Visibility != cppitem.Private {
		t.Errorf("width_ visibility = %v, want Private", field.Visibility)
	}
}

func TestParseReportsFreeFunctionPrototype(t *testing.T) {
	items := parseSample(t)

	fn, ok := findItem(items, "acme::add").(cppitem.CppFunction)
	if !ok {
		t.Fatalf("acme::add = %#v, want a CppFunction", fn)
	}
	if fn.IsMember() {
		t.Errorf("acme::add: IsMember() = true, want a free function")
	}
	if len(fn.Arguments) != 2 || fn.Arguments[0].Name != "a" || fn.Arguments[1].Name != "b" {
		t.Errorf("add(int a, int b) arguments = %#v", fn.Arguments)
	}
}
