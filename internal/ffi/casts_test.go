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

package ffi

import (
	"testing"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
)

type sequentialRegistry struct {
	used map[string]bool
}

func newSequentialRegistry() *sequentialRegistry {
	return &sequentialRegistry{used: map[string]bool{}}
}

func (r *sequentialRegistry) Reserve(candidate string) string {
	if !r.used[candidate] {
		r.used[candidate] = true
		return candidate
	}
	for n := 2; ; n++ {
		next := candidate + "_" + string(rune('0'+n))
		if !r.used[next] {
			r.used[next] = true
			return next
		}
	}
}

type alwaysPolymorphic struct{}

func (alwaysPolymorphic) IsPolymorphic(cpppath.Path) bool { return true }

type neverPolymorphic struct{}

func (neverPolymorphic) IsPolymorphic(cpppath.Path) bool { return false }

func TestLowerCastsDirectPolymorphic(t *testing.T) {
	base := cppitem.ClassBase{
		Derived:   cpppath.FromName("Derived"),
		Base:      cpppath.FromName("Base"),
		BaseIndex: 0,
	}
	fns := LowerCasts(newSequentialRegistry(), alwaysPolymorphic{}, base, false)
	if len(fns) != 3 {
		t.Fatalf("expected 3 cast functions for a direct polymorphic base, got %d", len(fns))
	}
	if fns[2].Plain.Cast.Kind != CastDynamic {
		t.Errorf("third function should be the dynamic cast")
	}
}

func TestLowerCastsNonPolymorphicSkipsDynamic(t *testing.T) {
	base := cppitem.ClassBase{
		Derived:   cpppath.FromName("Derived"),
		Base:      cpppath.FromName("Base"),
		BaseIndex: 0,
	}
	fns := LowerCasts(newSequentialRegistry(), neverPolymorphic{}, base, false)
	if len(fns) != 2 {
		t.Fatalf("expected 2 cast functions when the base is not polymorphic, got %d", len(fns))
	}
}

func TestLowerCastsTransitiveUsesNoBaseIndex(t *testing.T) {
	base := cppitem.ClassBase{
		Derived:   cpppath.FromName("Derived"),
		Base:      cpppath.FromName("Base"),
		BaseIndex: 2,
	}
	fns := LowerCasts(newSequentialRegistry(), alwaysPolymorphic{}, base, true)
	for _, fn := range fns {
		if fn.Plain.Cast.BaseIndex != -1 {
			t.Errorf("transitive cast should record BaseIndex -1, got %d", fn.Plain.Cast.BaseIndex)
		}
	}
}
