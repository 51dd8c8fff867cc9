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

// Package database implements the incremental, content-addressed store
// of every C++ item paired with its derived FFI items and TL item, a
// per-item source tag, per-environment check results, and the
// unique-name counter. Grounded directly on kati's serialize.go, which
// already does gob/json encoding and sha1-based content addressing for
// a similar incremental-build database (kati's own dependency graph
// cache).
package database

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/cpppath"
	"github.com/cppbind/cppbind/internal/ffi"
	"github.com/cppbind/cppbind/internal/tlitem"
)

// CheckResult is one (environment, optional error) record.
type CheckResult struct {
	Environment Environment
	Error string // "" means Ok
}

// Entry bundles a database item: the C++ item, its source, and its
// lazily filled derived slots.
type Entry struct {
	Item cppitem.Item
	Source cppitem.Source
	FFIItems []ffi.Item // nil until the ffi lowering step has run over this entry
	Checks []CheckResult // accumulated by the cppchecker step
	TLItem *tlitem.Item // nil until the gogen step has run over this entry

	// Excluded is set by the go_name_resolver step when the item isn't
	// Resolvable yet (a referenced class/enum isn't in the database).
	// The gogen step must skip excluded entries rather than naming them.
	Excluded bool
}

// HasFFIItems reports whether the FFI-generation step has already
// produced derived items for this entry.
func (e *Entry) HasFFIItems() bool { return e.FFIItems != nil }

// Exclude marks e as ineligible for Go generation, logged and dropped
// from the output rather than treated as a hard failure.
func (e *Entry) Exclude() { e.Excluded = true }

// Database is the module-wide incremental store.
type Database struct {
	ModuleName string
	ModuleVersion string
	SchemaVersion int

	entries []*Entry
	byPathKind map[string][]*Entry // index: path.String()+kind -> entries, preserves insertion order within a key's slice
	movable map[string]bool // configured movable-class paths, passed and returned by value
	usedFFINames map[string]bool
	ffiCounter uint64
	environments []Environment
}

// CurrentSchemaVersion must bump whenever the on-disk encoding of Entry
// or its transitive types changes incompatibly.
const CurrentSchemaVersion = 1

// New creates an empty database for the named module.
func New(moduleName, moduleVersion string, movableClasses []string) *Database {
	movable := make(map[string]bool, len(movableClasses))
	for _, m := range movableClasses {
		movable[m] = true
	}
	return &Database{
		ModuleName: moduleName,
		ModuleVersion: moduleVersion,
		SchemaVersion: CurrentSchemaVersion,
		byPathKind: make(map[string][]*Entry),
		movable: movable,
		usedFFINames: make(map[string]bool),
	}
}

func entryKey(item cppitem.Item) string {
	return item.ItemKind() + "\x00" + item.Path().String()
}

// AddCppItem deposits item, deduplicating against an existing entry:
// if an item structurally equal to the incoming one already exists,
// only the source tag may be upgraded (parser source takes priority).
// Otherwise the item is appended, preserving insertion order.
func (db *Database) AddCppItem(item cppitem.Item, source cppitem.Source) *Entry {
	key := entryKey(item)
	for _, e := range db.byPathKind[key] {
		if cppitem.Equal(e.Item, item) {
			if source.Priority() < e.Source.Priority() {
				e.Source = source
			}
			return e
		}
	}
	e := &Entry{Item: item, Source: source}
	db.entries = append(db.entries, e)
	db.byPathKind[key] = append(db.byPathKind[key], e)
	return e
}

// Entries returns all entries in insertion order.
func (db *Database) Entries() []*Entry { return db.entries }

// Lookup returns the entry for the given item-kind/path pair, or nil.
func (db *Database) Lookup(kind string, path cpppath.Path) *Entry {
	for _, e := range db.byPathKind[kind+"\x00"+path.String()] {
		return e
	}
	return nil
}

// FindType returns the Type entry at path, if any.
func (db *Database) FindType(path cpppath.Path) (*Entry, bool) {
	e := db.Lookup("Type", path)
	return e, e != nil
}

// --- ffi.Catalogue ---

// IsMovable implements ffi.Catalogue.
func (db *Database) IsMovable(path cpppath.Path) bool {
	return db.movable[path.String()]
}

// HasConcreteInstantiation implements ffi.Catalogue: true iff a Type
// entry with exactly this path (including template args) exists.
func (db *Database) HasConcreteInstantiation(path cpppath.Path) bool {
	_, ok := db.FindType(path)
	return ok
}

// --- ffi.PolymorphicLookup ---

// IsPolymorphic implements ffi.PolymorphicLookup.
func (db *Database) IsPolymorphic(path cpppath.Path) bool {
	e, ok := db.FindType(path)
	if !ok {
		return false
	}
	t, ok := e.Item.(cppitem.Type)
	return ok && t.Polymorphic
}

// --- ffi.NameRegistry ---

// Reserve implements ffi.NameRegistry, minting "<candidate>" or
// "<candidate>_<n>" on collision, backed by the database's unique-name
// counter.
func (db *Database) Reserve(candidate string) string {
	db.ffiCounter++
	if !db.usedFFINames[candidate] {
		db.usedFFINames[candidate] = true
		return candidate
	}
	for n := 2; ; n++ {
		name := candidate + "_" + strconv.Itoa(n)
		if !db.usedFFINames[name] {
			db.usedFFINames[name] = true
			return name
		}
	}
}

// --- environments ---

// KnownEnvironments returns the set of environments ever checked
// against, in first-seen order.
func (db *Database) KnownEnvironments() []Environment {
	return append([]Environment(nil), db.environments...)
}

func (db *Database) hasEnvironment(env Environment) bool {
	for _, e := range db.environments {
		if e == env {
			return true
		}
	}
	return false
}

// AddCheckResult records a check result for env. Adding a result for
// an already-known environment overwrites the previous error for that
// environment only; adding for a new environment appends.
func (e *Entry) AddCheckResult(db *Database, env Environment, checkErr string) {
	if !db.hasEnvironment(env) {
		db.environments = append(db.environments, env)
	}
	for i := range e.Checks {
		if e.Checks[i].Environment == env {
			e.Checks[i].Error = checkErr
			return
		}
	}
	e.Checks = append(e.Checks, CheckResult{Environment: env, Error: checkErr})
}

// Passes reports whether e has at least one check result and every
// check result recorded on e is error-free — used to gate name
// resolution, which only consumes C++/FFI items that have passed every
// check. Known environments for which e has no recorded result are not
// consulted.
func (e *Entry) Passes() bool {
	if len(e.Checks) == 0 {
		return false
	}
	for _, c := range e.Checks {
		if c.Error != "" {
			return false
		}
	}
	return true
}

// SetFFIItems attaches derived FFI items to e. Per lifecycle,
// calling this on an entry that already has FFI items is a no-op
// (idempotence of the FFI-generation step).
func (e *Entry) SetFFIItems(items []ffi.Item) {
	if e.HasFFIItems() {
		return
	}
	e.FFIItems = items
}

// SetTLItem attaches the generated TL item. TL items are produced last
// and never regenerated in place; callers that need to regenerate must
// clear it first via ClearTLItem.
func (e *Entry) SetTLItem(item tlitem.Item) {
	e.TLItem = &item
}

// ClearTLItem invalidates e's TL item.
func (e *Entry) ClearTLItem() { e.TLItem = nil }

// ClearFFIItems invalidates e's FFI items.
func (e *Entry) ClearFFIItems() { e.FFIItems = nil }

// SortedEntryPaths is a debugging/inspection helper (used by `cppbind
// inspect-db`) that returns every entry's path string in sorted order.
func (db *Database) SortedEntryPaths() []string {
	paths := make([]string, 0, len(db.entries))
	for _, e := range db.entries {
		paths = append(paths, e.Item.Path().String())
	}
	sort.Strings(paths)
	return paths
}

// ValidateSchema returns an error if version does not match
// CurrentSchemaVersion.
func ValidateSchema(version int) error {
	if version != CurrentSchemaVersion {
		return errors.Errorf("database schema version %d does not match current version %d; derived slots must be regenerated", version, CurrentSchemaVersion)
	}
	return nil
}
