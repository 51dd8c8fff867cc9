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

import (
	"fmt"

	"github.com/cppbind/cppbind/internal/cpptype"
)

// OperatorKind is the closed enumeration of overloadable C++ operators.
type OperatorKind int

const (
	OpAssign OperatorKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpUnaryPlus
	OpUnaryMinus
	OpNot
	OpBitNot
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpPreIncrement
	OpPostIncrement
	OpPreDecrement
	OpPostDecrement
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpBitAndAssign
	OpBitOrAssign
	OpBitXorAssign
	OpShlAssign
	OpShrAssign
	OpSubscript
	OpCall
	OpDereference
	OpAddressOf
	OpMemberAccess
	OpPointerToMember
	OpComma
	OpNew
	OpNewArray
	OpDelete
	OpDeleteArray
	OpConversion // carries ConvertTo
)

// Operator is a single operator occurrence: the kind, plus the target
// type when Kind == OpConversion.
type Operator struct {
	Kind OperatorKind
	ConvertTo cpptype.Type
}

// operatorInfo is the fixed per-kind metadata table: each operator has
// a fixed argument count and a textual suffix used to recognise it in a
// function name; the call operator is the only one accepting variadic
// arguments.
type operatorInfo struct {
	argCount int // includes implicit `this`
	variadic bool
	suffix string
}

var operatorTable = map[OperatorKind]operatorInfo{
	OpAssign: {2, false, "assign"},
	OpAdd: {2, false, "add"},
	OpSub: {2, false, "sub"},
	OpMul: {2, false, "mul"},
	OpDiv: {2, false, "div"},
	OpMod: {2, false, "rem"},
	OpUnaryPlus: {1, false, "unary_plus"},
	OpUnaryMinus: {1, false, "neg"},
	OpNot: {1, false, "not"},
	OpBitNot: {1, false, "bit_not"},
	OpBitAnd: {2, false, "bit_and"},
	OpBitOr: {2, false, "bit_or"},
	OpBitXor: {2, false, "bit_xor"},
	OpShl: {2, false, "shl"},
	OpShr: {2, false, "shr"},
	OpAnd: {2, false, "and"},
	OpOr: {2, false, "or"},
	OpEq: {2, false, "eq"},
	OpNe: {2, false, "ne"},
	OpLt: {2, false, "lt"},
	OpLe: {2, false, "le"},
	OpGt: {2, false, "gt"},
	OpGe: {2, false, "ge"},
	OpPreIncrement: {1, false, "inc"},
	OpPostIncrement: {2, false, "inc_postfix"},
	OpPreDecrement: {1, false, "dec"},
	OpPostDecrement: {2, false, "dec_postfix"},
	OpAddAssign: {2, false, "add_assign"},
	OpSubAssign: {2, false, "sub_assign"},
	OpMulAssign: {2, false, "mul_assign"},
	OpDivAssign: {2, false, "div_assign"},
	OpModAssign: {2, false, "rem_assign"},
	OpBitAndAssign: {2, false, "bit_and_assign"},
	OpBitOrAssign: {2, false, "bit_or_assign"},
	OpBitXorAssign: {2, false, "bit_xor_assign"},
	OpShlAssign: {2, false, "shl_assign"},
	OpShrAssign: {2, false, "shr_assign"},
	OpSubscript: {2, false, "index"},
	OpCall: {1, true, "call"},
	OpDereference: {1, false, "deref"},
	OpAddressOf: {1, false, "address_of"},
	OpMemberAccess: {1, false, "arrow"},
	OpPointerToMember: {2, false, "ptr_to_member"},
	OpComma: {2, false, "comma"},
	OpNew: {0, false, "new"},
	OpNewArray: {0, false, "new_array"},
	OpDelete: {1, false, "delete"},
	OpDeleteArray: {1, false, "delete_array"},
	OpConversion: {1, false, "conversion"},
}

// ArgCount returns the fixed argument count for op, counting the
// implicit `this`.
func (op Operator) ArgCount() int {
	info, ok := operatorTable[op.Kind]
	if !ok {
		panic(fmt.Sprintf("cppitem: unknown operator kind %d", op.Kind))
	}
	return info.argCount
}

// Variadic reports whether op accepts variadic arguments. Only the call
// operator does.
func (op Operator) Variadic() bool { return operatorTable[op.Kind].variadic }

// Suffix returns the textual suffix used to recognise op in a parsed
// function name, e.g. "operator+" -> "add".
func (op Operator) Suffix() string {
	if op.Kind == OpConversion {
		return "conversion"
	}
	return operatorTable[op.Kind].suffix
}
