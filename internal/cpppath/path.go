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

// Package cpppath implements CppPath, the normalised representation of a
// C++ nested name.
package cpppath

import (
	"strings"

	"github.com/pkg/errors"
)

// Item is one component of a CppPath: a name plus an optional ordered
// list of template arguments. Template arguments are kept as opaque
// Stringer values so this package stays independent of cpptype's
// concrete CppType representation (which itself embeds Path).
type Item struct {
	Name string
	Template []TemplateArg
}

// TemplateArg is satisfied by cpptype.Type; kept as an interface here
// to avoid an import cycle (cpptype embeds Path in its Class variant).
// String is the only method required since it is also the canonical
// rendering used for captions; Item.Equal compares arguments by their
// rendered form rather than requiring a second comparison method.
type TemplateArg interface {
	String() string
}

// HasTemplateArgs reports whether this item carries template arguments
// (possibly an empty-but-present list, e.g. `Foo<>`).
func (it Item) HasTemplateArgs() bool { return it.Template != nil }

// Equal compares two items structurally, including template arguments.
func (it Item) Equal(other Item) bool {
	if it.Name != other.Name {
		return false
	}
	if len(it.Template) != len(other.Template) {
		return false
	}
	for i := range it.Template {
		if it.Template[i].String() != other.Template[i].String() {
			return false
		}
	}
	return true
}

func (it Item) String() string {
	if len(it.Template) == 0 {
		return it.Name
	}
	args := make([]string, len(it.Template))
	for i, a := range it.Template {
		args[i] = a.String()
	}
	return it.Name + "<" + strings.Join(args, ", ") + ">"
}

// Path is an ordered, non-empty sequence of Items.
type Path struct {
	items []Item
}

// New constructs a Path from one or more items. It panics if called with
// zero items: a path is never empty, and violating that is a
// programmer error in calling code, not a soft, recoverable failure.
func New(items ...Item) Path {
	if len(items) == 0 {
		panic("cpppath: empty path constructed")
	}
	return Path{items: append([]Item(nil), items...)}
}

// FromName builds a path from a qualified name, one item per segment,
// splitting on "::" the way the C++ parser collaborator reports nested
// names.
func FromName(qualified string) Path {
	parts := strings.Split(qualified, "::")
	items := make([]Item, len(parts))
	for i, p := range parts {
		items[i] = Item{Name: p}
	}
	return New(items...)
}

// Items returns the path's components.
func (p Path) Items() []Item { return p.items }

// Last returns the final item; always defined per the "never empty"
// invariant.
func (p Path) Last() Item {
	if len(p.items) == 0 {
		panic("cpppath: Last called on empty path")
	}
	return p.items[len(p.items)-1]
}

// Parent drops the last item. Calling Parent on a single-item path
// yields an empty path, which is only valid as an intermediate value —
// callers that need a guaranteed-non-empty parent (e.g. "the enclosing
// class of a field") must check IsEmpty first.
func (p Path) Parent() Path {
	if len(p.items) <= 1 {
		return Path{}
	}
	return Path{items: append([]Item(nil), p.items[:len(p.items)-1]...)}
}

// IsEmpty reports whether the path has no items (only reachable via
// Parent on a root-level item).
func (p Path) IsEmpty() bool { return len(p.items) == 0 }

// Join appends one item and returns the extended path.
func (p Path) Join(it Item) Path {
	return Path{items: append(append([]Item(nil), p.items...), it)}
}

// Equal reports structural equality: pairwise item equality including
// template arguments.
func (p Path) Equal(other Path) bool {
	if len(p.items) != len(other.items) {
		return false
	}
	for i := range p.items {
		if !p.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// String renders the path "::"-joined, the same form the parser
// collaborator and captions consume.
func (p Path) String() string {
	parts := make([]string, len(p.items))
	for i, it := range p.items {
		parts[i] = it.String()
	}
	return strings.Join(parts, "::")
}

// ValidateNonEmpty returns an error (not a panic) for call sites that
// parse a path from untrusted/external input (e.g. a config blocklist
// regex target) where an empty result is a soft, recoverable condition
// rather than an internal invariant violation.
func ValidateNonEmpty(items []Item) error {
	if len(items) == 0 {
		return errors.New("cpppath: path must have at least one item")
	}
	return nil
}
