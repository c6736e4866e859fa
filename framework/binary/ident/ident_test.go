// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ident_test

import (
	"strings"
	"testing"

	"github.com/google/graphcodec/core/assert"
	"github.com/google/graphcodec/core/log"
	"github.com/google/graphcodec/framework/binary/ident"
)

type point struct{ X, Y int }

type name string

func TestOf(t *testing.T) {
	ctx := log.Testing(t)
	p := &point{1, 2}
	m := map[string]int{"a": 1}
	s := []int{1, 2, 3}
	str := strings.Repeat("ab", 3)

	for _, test := range []struct {
		name  string
		value interface{}
		ok    bool
	}{
		{"nil", nil, false},
		{"int", 42, false},
		{"struct", point{}, false},
		{"array", [2]int{1, 2}, false},
		{"pointer", p, true},
		{"nil pointer", (*point)(nil), false},
		{"zero size pointer", &struct{}{}, false},
		{"map", m, true},
		{"nil map", map[string]int(nil), false},
		{"slice", s, true},
		{"empty slice", []int{}, false},
		{"string", str, true},
		{"empty string", "", false},
		{"named string", name(str), true},
	} {
		_, ok := ident.Of(test.value)
		assert.For(ctx, test.name).ThatBoolean(ok).Equals(test.ok)
	}
}

func TestSame(t *testing.T) {
	ctx := log.Testing(t)
	p := &point{1, 2}
	q := &point{1, 2}
	s := []int{1, 2, 3}
	str := strings.Repeat("ab", 3)
	copied := strings.Clone(str)

	assert.For(ctx, "pointer").ThatBoolean(ident.Same(p, p)).IsTrue()
	assert.For(ctx, "equal pointers").ThatBoolean(ident.Same(p, q)).IsFalse()
	assert.For(ctx, "field pointer").ThatBoolean(ident.Same(p, &p.X)).IsFalse()
	assert.For(ctx, "slice").ThatBoolean(ident.Same(s, s)).IsTrue()
	assert.For(ctx, "slice window").ThatBoolean(ident.Same(s, s[:2])).IsFalse()
	assert.For(ctx, "resliced").ThatBoolean(ident.Same(s, s[:3])).IsTrue()
	assert.For(ctx, "string").ThatBoolean(ident.Same(str, str)).IsTrue()
	assert.For(ctx, "cloned string").ThatBoolean(ident.Same(str, copied)).IsFalse()
	assert.For(ctx, "named string").ThatBoolean(ident.Same(str, name(str))).IsFalse()
	assert.For(ctx, "scalars").ThatBoolean(ident.Same(1, 1)).IsFalse()
}

func TestIsNil(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "nil").ThatBoolean(ident.IsNil(nil)).IsTrue()
	assert.For(ctx, "typed nil").ThatBoolean(ident.IsNil((*point)(nil))).IsTrue()
	assert.For(ctx, "nil slice").ThatBoolean(ident.IsNil([]int(nil))).IsTrue()
	assert.For(ctx, "empty slice").ThatBoolean(ident.IsNil([]int{})).IsFalse()
	assert.For(ctx, "zero").ThatBoolean(ident.IsNil(0)).IsFalse()
	assert.For(ctx, "empty string").ThatBoolean(ident.IsNil("")).IsFalse()
}

func TestKeyString(t *testing.T) {
	ctx := log.Testing(t)
	k, _ := ident.Of([]int{1, 2})
	assert.For(ctx, "slice key").ThatString(k.String()).HasPrefix("[]int@0x")
	assert.For(ctx, "slice key").ThatString(k.String()).Contains("[2]")
}
