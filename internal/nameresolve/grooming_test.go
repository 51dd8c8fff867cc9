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

package nameresolve

import (
	"reflect"
	"testing"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
)

func enumValue(name string, value int64) cppitem.EnumValue {
	return cppitem.EnumValue{P: cpppath.FromName(name), Value: value}
}

func TestGroomEnumVariantsStripsCommonPrefix(t *testing.T) {
	got := GroomEnumVariants([]cppitem.EnumValue{
		enumValue("ColorRed", 0),
		enumValue("ColorBlue", 1),
		enumValue("ColorGreen", 2),
	})
	var names []string
	for _, v := range got {
		names = append(names, v.Name)
	}
	if want := []string{"Red", "Blue", "Green"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names=%v, want %v", names, want)
	}
}

func TestGroomEnumVariantsDedupesByFirstSeenValue(t *testing.T) {
	got := GroomEnumVariants([]cppitem.EnumValue{
		enumValue("First", 0),
		enumValue("Alias", 0),
		enumValue("Second", 1),
	})
	if len(got) != 2 {
		t.Fatalf("len(got)=%d, want 2", len(got))
	}
	if got[0].Name != "First" || got[0].Value != 0 {
		t.Errorf("got[0]=%+v, want the first-seen name kept for value 0", got[0])
	}
}

func TestGroomEnumVariantsSynthesizesInvalidWhenFewerThanTwo(t *testing.T) {
	got := GroomEnumVariants([]cppitem.EnumValue{enumValue("Only", 5)})
	if len(got) != 2 {
		t.Fatalf("len(got)=%d, want 2", len(got))
	}
	if got[1].Name != "_Invalid" {
		t.Errorf("got[1].Name=%q, want %q", got[1].Name, "_Invalid")
	}
	if got[1].Value != 0 {
		t.Errorf("got[1].Value=%d, want 0 (not already used)", got[1].Value)
	}
}

func TestGroomEnumVariantsInvalidAvoidsCollidingValue(t *testing.T) {
	got := GroomEnumVariants([]cppitem.EnumValue{enumValue("Only", 0)})
	if got[1].Value != 1 {
		t.Errorf("got[1].Value=%d, want 1 (0 already used)", got[1].Value)
	}
}

func TestGroomEnumVariantsSkipsStripWhenResultWouldStartWithDigit(t *testing.T) {
	got := GroomEnumVariants([]cppitem.EnumValue{
		enumValue("Key_0", 0),
		enumValue("Key_1", 1),
	})
	var names []string
	for _, v := range got {
		names = append(names, v.Name)
	}
	if want := []string{"Key_0", "Key_1"};!reflect.DeepEqual(names, want) {
		t.Errorf("names=%v, want %v (stripping would leave a digit-leading name)", names, want)
	}
}
