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

// Equal reports whether a and b are the same C++ item: same concrete
// variant and variant-specific structural equality.
func Equal(a, b Item) bool {
	if a.ItemKind() != b.ItemKind() {
		return false
	}
	switch av := a.(type) {
	case Namespace:
		return av.P.Equal(b.(Namespace).P)
	case Type:
		bv := b.(Type)
		return av.P.Equal(bv.P) && av.Kind == bv.Kind
	case EnumValue:
		bv := b.(EnumValue)
		return av.P.Equal(bv.P) && av.Value == bv.Value
	case ClassField:
		bv := b.(ClassField)
		return av.P.Equal(bv.P)
	case ClassBase:
		bv := b.(ClassBase)
		return av.Derived.Equal(bv.Derived) && av.Base.Equal(bv.Base) &&
			av.BaseIndex == bv.BaseIndex && av.IsVirtual == bv.IsVirtual &&
			av.Visibility == bv.Visibility
	case CppFunction:
		return av.Equal(b.(CppFunction))
	default:
		panic("cppitem: Equal called on unknown item variant")
	}
}
