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

// Package cppchecker implements the cpp_checker pipeline step: given
// an FFI function and an environment, compile a minimal program
// referencing the function's symbol with the expected signature and
// report Ok or a compile-error string. Grounded on modernc.org/cc/v4,
// the C99 front end retrieved in the pack (other_examples' ccgo/v4
// "decl.go" imports it directly; qjcg-driving vendors its predecessor,
// cznic/cc) — using a real in-process C parser instead of shelling out
// to a system compiler keeps the checker hermetic and fast to run per
// environment.
package cppchecker

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"modernc.org/cc/v4"

	"github.com/cppbind/cppbind/internal/database"
	"github.com/cppbind/cppbind/internal/ffi"
)

// Checker is the narrow interface a compile-backed validator satisfies.
type Checker interface {
	Check(ctx context.Context, fn ffi.Function, env database.Environment) (ok bool, checkErr string, err error)
}

// CcChecker implements Checker by synthesizing a minimal translation
// unit that declares and references the FFI function's symbol, then
// running it through modernc.org/cc/v4's parser/type-checker.
type CcChecker struct {
	// Predefines are extra preprocessor defines applied per environment
	// (e.g. arch-specific __SIZEOF_POINTER__ overrides), mirroring
	// cznic/cc's HostConfig/HostCppConfig split between predefined
	// macros and include paths.
	Predefines string
	Includes []string
}

// Check implements Checker. A hard error (err != nil) means the
// checker itself failed to run; ok == false with checkErr set means
// the compiler rejected the declaration.
func (c *CcChecker) Check(ctx context.Context, fn ffi.Function, env database.Environment) (bool, string, error) {
	select {
	case <-ctx.Done():
		return false, "", ctx.Err()
	default:
	}

	src, err := renderCheckTU(fn)
	if err != nil {
		return false, "", errors.Wrapf(err, "while rendering check translation unit for %s", fn.Path.String())
	}

	cfg, err := cc.NewConfig(hostTriple(env), "")
	if err != nil {
		return false, "", errors.Wrap(err, "while building cc config")
	}
	cfg.Predefine += "\n" + c.Predefines

	sources := []cc.Source{
		{Name: "predefined.h", Value: cfg.Predefine},
		{Name: "builtin.h", Value: cc.Builtin},
		{Name: fn.Path.String() + "_check.c", Value: src},
	}
	_, err = cc.Parse(cfg, sources)
	if err != nil {
		return false, err.Error(), nil
	}
	return true, "", nil
}

func hostTriple(env database.Environment) string {
	return fmt.Sprintf("%s-%s-%s", env.Arch, env.OS, env.Family)
}

// renderCheckTU generates the minimal C source: an extern declaration
// of fn's symbol with its lowered signature, plus a reference to it, so
// that a signature mismatch against the real header (included
// separately by full-pipeline runs) surfaces as a compile error.
func renderCheckTU(fn ffi.Function) (string, error) { //nolint:unparam
	var b strings.Builder
	b.WriteString("extern ")
	b.WriteString(renderCType(fn.Return.Lowered))
	b.WriteString(" ")
	b.WriteString(fn.Path.String())
	b.WriteString("(")
	for i, a := range fn.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(renderCType(a.Type.Lowered))
	}
	if len(fn.Arguments) == 0 {
		b.WriteString("void")
	}
	b.WriteString(");\n")
	b.WriteString("void cppbind_check(void) { (void)&")
	b.WriteString(fn.Path.String())
	b.WriteString("; }\n")
	return b.String(), nil
}
