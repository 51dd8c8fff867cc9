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

package database

import (
	"bytes"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/cppbind/cppbind/internal/cppitem"
	"github.com/cppbind/cppbind/internal/tlitem"
)

// entryDTO is the on-disk shape of an Entry: the C++ item, its source
// tag, any derived FFI items, and accumulated per-environment checks.
type entryDTO struct {
	Item itemDTO
	Source int
	FFIFuncs []ffiFunctionDTO
	FFISlots []slotWrapperDTO
	Checks []checkResultDTO
	TLItem []byte // gob-encoded tlitem.Item, nil if not yet generated
	Excluded bool
}

type checkResultDTO struct {
	Arch, OS, Family, Env, Version string
	Error string
}

type snapshotDTO struct {
	ModuleName string
	ModuleVersion string
	SchemaVersion int
	Entries []entryDTO
	Environments []checkResultDTO // reuses the same shape minus Error
	FFICounter uint64
	UsedFFINames []string
}

func toSnapshot(db *Database) (snapshotDTO, error) {
	snap := snapshotDTO{
		ModuleName: db.ModuleName, ModuleVersion: db.ModuleVersion, SchemaVersion: db.SchemaVersion,
		FFICounter: db.ffiCounter,
	}
	for name := range db.usedFFINames {
		snap.UsedFFINames = append(snap.UsedFFINames, name)
	}
	sort.Strings(snap.UsedFFINames)
	for _, env := range db.environments {
		snap.Environments = append(snap.Environments, checkResultDTO{Arch: env.Arch, OS: env.OS, Family: env.Family, Env: env.Env, Version: env.Version})
	}
	for _, e := range db.entries {
		ed := entryDTO{Item: itemToDTO(e.Item), Source: int(e.Source), Excluded: e.Excluded}
		for _, fi := range e.FFIItems {
			fn, slot := ffiItemToDTO(fi)
			if fn != nil {
				ed.FFIFuncs = append(ed.FFIFuncs, *fn)
			}
			if slot != nil {
				ed.FFISlots = append(ed.FFISlots, *slot)
			}
		}
		for _, c := range e.Checks {
			ed.Checks = append(ed.Checks, checkResultDTO{
				Arch: c.Environment.Arch, OS: c.Environment.OS, Family: c.Environment.Family,
				Env: c.Environment.Env, Version: c.Environment.Version, Error: c.Error,
			})
		}
		if e.TLItem != nil {
			var buf bytes.Buffer
			if err := gob.NewEncoder(&buf).Encode(*e.TLItem); err != nil {
				return snapshotDTO{}, errors.Wrap(err, "while encoding TL item")
			}
			ed.TLItem = buf.Bytes()
		}
		snap.Entries = append(snap.Entries, ed)
	}
	return snap, nil
}

func fromSnapshot(snap snapshotDTO) (*Database, error) {
	if err := ValidateSchema(snap.SchemaVersion); err != nil {
		return nil, err
	}
	db := New(snap.ModuleName, snap.ModuleVersion, nil)
	db.ffiCounter = snap.FFICounter
	for _, n := range snap.UsedFFINames {
		db.usedFFINames[n] = true
	}
	for _, c := range snap.Environments {
		db.environments = append(db.environments, Environment{Arch: c.Arch, OS: c.OS, Family: c.Family, Env: c.Env, Version: c.Version})
	}
	for _, ed := range snap.Entries {
		item := dtoToItem(ed.Item)
		e := &Entry{Item: item, Source: cppitem.Source(ed.Source), Excluded: ed.Excluded}
		var ffiItems []ffiItemUnion
		for _, fn := range ed.FFIFuncs {
			ffiItems = append(ffiItems, ffiItemUnion{fn: &fn})
		}
		for _, s := range ed.FFISlots {
			ffiItems = append(ffiItems, ffiItemUnion{slot: &s})
		}
		for _, u := range ffiItems {
			e.FFIItems = append(e.FFIItems, dtoToFfiItem(u.fn, u.slot))
		}
		for _, c := range ed.Checks {
			e.Checks = append(e.Checks, CheckResult{
				Environment: Environment{Arch: c.Arch, OS: c.OS, Family: c.Family, Env: c.Env, Version: c.Version},
				Error: c.Error,
			})
		}
		if len(ed.TLItem) > 0 {
			var ti tlitem.Item
			if err := gob.NewDecoder(bytes.NewReader(ed.TLItem)).Decode(&ti); err != nil {
				return nil, errors.Wrap(err, "while decoding TL item")
			}
			e.TLItem = &ti
		}
		db.entries = append(db.entries, e)
		db.byPathKind[entryKey(item)] = append(db.byPathKind[entryKey(item)], e)
	}
	return db, nil
}

type ffiItemUnion struct {
	fn *ffiFunctionDTO
	slot *slotWrapperDTO
}

// SaveJSON and SaveGob mirror kati's LoadSaver split (serialize.go
// "JSON is a json loader/saver" / "GOB is a gob loader/saver"): callers
// pick the encoding by use case (JSON for debuggability, gob for speed
// and compactness on repeated incremental runs).
func SaveJSON(db *Database) ([]byte, error) {
	snap, err := toSnapshot(db)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", " ")
}

// LoadJSON restores a Database from a JSON snapshot produced by SaveJSON.
func LoadJSON(data []byte) (*Database, error) {
	var snap snapshotDTO
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "while decoding database JSON snapshot")
	}
	return fromSnapshot(snap)
}

// SaveGob encodes the database with encoding/gob, the denser format
// used for the workspace's incremental cache between driver runs.
func SaveGob(db *Database) ([]byte, error) {
	snap, err := toSnapshot(db)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, errors.Wrap(err, "while gob-encoding database")
	}
	return buf.Bytes(), nil
}

// LoadGob restores a Database from a gob snapshot produced by SaveGob.
func LoadGob(data []byte) (*Database, error) {
	var snap snapshotDTO
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "while gob-decoding database")
	}
	return fromSnapshot(snap)
}

// ContentHash returns a sha1 hex digest of the database's gob encoding;
// equal databases yield equal digests. The driver does not call it.
// Grounded directly on kati's serialize.go, which hashes encoded
// values with crypto/sha1 for its own cache keys.
func ContentHash(db *Database) (string, error) {
	b, err := SaveGob(db)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:]), nil
}

// DiffJSON renders a human-readable diff between two JSON snapshots.
// No cppbind subcommand calls it; `cppbind inspect-db` has no diff mode.
// Grounded on github.com/sergi/go-diff/diffmatchpatch, a direct
// dependency of google-kati's go.mod though kati itself
// only vendors it for a test helper; here it earns a production home.
func DiffJSON(before, after []byte) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(before), string(after), false)
	return dmp.DiffPrettyText(diffs)
}
