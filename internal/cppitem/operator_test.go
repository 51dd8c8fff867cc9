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

package cppitem

import "testing"

func TestOperatorArgCount(t *testing.T) {
	if got, want := (Operator{Kind: OpAdd}).ArgCount(), 2; got != want {
		t.Errorf("ArgCount()=%d, want %d", got, want)
	}
	if got, want := (Operator{Kind: OpNew}).ArgCount(), 0; got != want {
		t.Errorf("ArgCount()=%d, want %d", got, want)
	}
}

func TestOperatorArgCountPanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("ArgCount() on an unregistered operator kind should panic")
		}
	}()
	(Operator{Kind: OperatorKind(999)}).ArgCount()
}

func TestOperatorVariadic(t *testing.T) {
	if !(Operator{Kind: OpCall}).Variadic() {
		t.Errorf("operator() should be variadic")
	}
	if (Operator{Kind: OpAdd}).Variadic() {
		t.Errorf("operator+ should not be variadic")
	}
}

func TestOperatorSuffix(t *testing.T) {
	if got, want := (Operator{Kind: OpAdd}).Suffix(), "add"; got != want {
		t.Errorf("Suffix()=%q, want %q", got, want)
	}
	if got, want := (Operator{Kind: OpConversion}).Suffix(), "conversion"; got != want {
		t.Errorf("Suffix()=%q, want %q", got, want)
	}
}
