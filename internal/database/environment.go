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

import "fmt"

// Environment identifies a compilation target plus an optional library
// version.
type Environment struct {
	Arch string
	OS string
	Family string
	Env string
	Version string // optional; "" means unspecified
}

// Key returns a stable string form of the environment; String uses it.
// Check results are stored per Entry, not per FFI item, and are matched
// by comparing Environment values, not keys. No byte-size table is
// kept per environment.
func (e Environment) Key() string {
	return fmt.Sprintf("%s-%s-%s-%s@%s", e.Arch, e.OS, e.Family, e.Env, e.Version)
}

func (e Environment) String() string { return e.Key() }
